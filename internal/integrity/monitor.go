// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package integrity fingerprints the field collection on an interval
// and reports divergence. The monitor observes only: it never mutates
// the collection and never blocks its callers.
package integrity

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"topickit/internal/field"
	"topickit/internal/observability"
)

// DefaultInterval is the fingerprint period when none is configured.
const DefaultInterval = 30 * time.Second

// Monitor periodically hashes the serialized collection and logs when
// the fingerprint changes between checks.
type Monitor struct {
	collection *field.Collection
	observer   *observability.StandardObserver
	interval   time.Duration

	mu          sync.Mutex
	lastDigest  string
	divergences int
	stop        chan struct{}
	done        chan struct{}
}

// NewMonitor creates a monitor over the collection. observer may be
// nil; interval <= 0 uses DefaultInterval.
func NewMonitor(collection *field.Collection, observer *observability.StandardObserver, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Monitor{
		collection: collection,
		observer:   observer,
		interval:   interval,
	}
}

// Fingerprint returns the SHA-256 hex digest of the collection's
// serialized (index, value) list.
func Fingerprint(collection *field.Collection) string {
	sum := sha256.Sum256([]byte(collection.Serialize()))
	return hex.EncodeToString(sum[:])
}

// Start begins periodic fingerprinting on a background goroutine.
// Starting an already-running monitor is a no-op.
func (m *Monitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stop != nil {
		return
	}
	m.lastDigest = Fingerprint(m.collection)
	m.stop = make(chan struct{})
	m.done = make(chan struct{})
	go m.run(m.stop, m.done)
}

// Stop halts fingerprinting and waits for the background goroutine to
// exit. Stopping a stopped monitor is a no-op.
func (m *Monitor) Stop() {
	m.mu.Lock()
	stop, done := m.stop, m.done
	m.stop = nil
	m.done = nil
	m.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// Divergences returns how many interval checks observed a changed
// fingerprint since Start.
func (m *Monitor) Divergences() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.divergences
}

// Check runs one fingerprint comparison immediately and reports
// whether the collection changed since the previous check.
func (m *Monitor) Check() bool {
	digest := Fingerprint(m.collection)

	m.mu.Lock()
	changed := m.lastDigest != "" && digest != m.lastDigest
	previous := m.lastDigest
	m.lastDigest = digest
	if changed {
		m.divergences++
	}
	m.mu.Unlock()

	if changed && m.observer != nil {
		m.observer.LogOperation(observability.StandardObservabilityData{
			Component: "integrity_monitor",
			Operation: "fingerprint_changed",
			Success:   true,
			Metadata: map[string]interface{}{
				"previous": previous,
				"current":  digest,
			},
		})
	}
	return changed
}

func (m *Monitor) run(stop, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.Check()
		case <-stop:
			return
		}
	}
}
