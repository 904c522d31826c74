// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package validator

import (
	"sync"
	"time"
)

// Scheduler is a cancellable delayed-task table keyed by field index.
// Scheduling under a key cancels any task already pending for that key,
// so at most one task is ever outstanding per key and only the most
// recently scheduled function can run: last write wins.
type Scheduler struct {
	mu     sync.Mutex
	timers map[int]*time.Timer
	closed bool
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{timers: make(map[int]*time.Timer)}
}

// Schedule registers fn to run after delay, replacing any pending task
// under the same key. The pending entry is cleared before fn runs.
func (s *Scheduler) Schedule(key int, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if existing, ok := s.timers[key]; ok {
		existing.Stop()
	}

	var timer *time.Timer
	timer = time.AfterFunc(delay, func() {
		s.mu.Lock()
		// A timer that fired after being superseded or cancelled finds a
		// different entry (or none) under its key and must not run.
		if s.timers[key] != timer {
			s.mu.Unlock()
			return
		}
		delete(s.timers, key)
		s.mu.Unlock()
		fn()
	})
	s.timers[key] = timer
}

// Cancel stops the pending task under key, reporting whether one existed.
func (s *Scheduler) Cancel(key int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	timer, ok := s.timers[key]
	if !ok {
		return false
	}
	timer.Stop()
	delete(s.timers, key)
	return true
}

// Pending reports whether a task is outstanding under key.
func (s *Scheduler) Pending(key int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[key]
	return ok
}

// Close cancels every pending task and rejects further scheduling.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for key, timer := range s.timers {
		timer.Stop()
		delete(s.timers, key)
	}
}
