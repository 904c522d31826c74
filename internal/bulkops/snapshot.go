// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package bulkops

import (
	"time"

	"github.com/google/uuid"

	"topickit/internal/field"
)

// HistoryCapacity bounds the undo history. Pushing onto a full history
// evicts the oldest snapshot.
const HistoryCapacity = 3

// Snapshot is an immutable capture of the whole field collection taken
// immediately before a bulk operation mutates it.
type Snapshot struct {
	ID          string        `json:"id"`
	Operation   Operation     `json:"operation"`
	Description string        `json:"description"`
	Timestamp   time.Time     `json:"timestamp"`
	Fields      []field.Field `json:"fields"`
}

func newSnapshot(op Operation, description string, fields []field.Field) Snapshot {
	captured := make([]field.Field, len(fields))
	copy(captured, fields)
	return Snapshot{
		ID:          uuid.New().String(),
		Operation:   op,
		Description: description,
		Timestamp:   time.Now(),
		Fields:      captured,
	}
}

// snapshotRing is a fixed-capacity LIFO with FIFO eviction: push beyond
// capacity drops the oldest entry, pop returns the newest. The bound is
// structural, not a trim convention.
type snapshotRing struct {
	entries []Snapshot
	cap     int
}

func newSnapshotRing(capacity int) *snapshotRing {
	return &snapshotRing{cap: capacity}
}

func (r *snapshotRing) push(s Snapshot) {
	if len(r.entries) == r.cap {
		copy(r.entries, r.entries[1:])
		r.entries = r.entries[:r.cap-1]
	}
	r.entries = append(r.entries, s)
}

// pop removes and returns the most recent snapshot.
func (r *snapshotRing) pop() (Snapshot, bool) {
	if len(r.entries) == 0 {
		return Snapshot{}, false
	}
	last := r.entries[len(r.entries)-1]
	r.entries = r.entries[:len(r.entries)-1]
	return last, true
}

func (r *snapshotRing) len() int {
	return len(r.entries)
}

// list returns the snapshots oldest-first.
func (r *snapshotRing) list() []Snapshot {
	out := make([]Snapshot, len(r.entries))
	copy(out, r.entries)
	return out
}
