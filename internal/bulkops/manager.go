// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package bulkops executes whole-collection operations behind an
// explicit confirmation flow, with a bounded snapshot history for undo.
package bulkops

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"topickit/internal/field"
	"topickit/internal/observability"
	"topickit/internal/origin"
)

// Operation names a whole-collection mutation.
type Operation string

const (
	// OpSync replaces all values with freshly-read origin values,
	// discarding unsaved edits.
	OpSync Operation = "sync"
	// OpClear sets every value to empty.
	OpClear Operation = "clear"
	// OpReset has the same effect as sync, framed as restoring the
	// originals after edits have diverged.
	OpReset Operation = "reset"
)

// State is the bulk operation lifecycle state.
type State string

const (
	StateIdle                 State = "idle"
	StateAwaitingConfirmation State = "awaiting_confirmation"
	StateExecuting            State = "executing"
	StateCompleted            State = "completed"
	StateFailed               State = "failed"
)

// Sentinel errors callers branch on.
var (
	ErrNotAwaitingConfirmation = errors.New("no bulk operation awaiting confirmation")
	ErrOperationInProgress     = errors.New("a bulk operation is already in progress")
	ErrNoOriginData            = errors.New("no values available from the content origin")
)

// UndoResult reports the outcome of an undo. An empty history is not
// an error: Performed is false and Message explains why.
type UndoResult struct {
	Performed bool
	Message   string
	Snapshot  Snapshot
}

// Options configures a Manager.
type Options struct {
	// StateChange fires on every lifecycle transition. Optional.
	StateChange func(from, to State, op Operation)
	// Notify carries user-facing messages: severity is one of
	// "success", "info", "warning", "error". Optional.
	Notify func(message, severity string)
	// Observer records operation timings. Optional.
	Observer *observability.StandardObserver
}

// Manager owns the confirmation state machine and the undo history.
// All methods are safe for concurrent use; one logical operation holds
// the manager lock end to end, so a half-applied bulk mutation is
// never observable. StateChange and Notify callbacks are queued while
// the lock is held and fired after it is released, in order, so a
// callback may call back into the Manager without deadlocking.
type Manager struct {
	mu         sync.Mutex
	collection *field.Collection
	source     origin.Source
	history    *snapshotRing
	state      State
	pending    Operation
	options    Options
}

// NewManager creates a manager over the collection. source may be nil
// when no external origin is connected; sync and reset then fail with
// ErrNoOriginData at request time.
func NewManager(collection *field.Collection, source origin.Source, options Options) *Manager {
	return &Manager{
		collection: collection,
		source:     source,
		history:    newSnapshotRing(HistoryCapacity),
		state:      StateIdle,
		options:    options,
	}
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// History returns the undo history, oldest snapshot first.
func (m *Manager) History() []Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history.list()
}

// Request moves Idle to AwaitingConfirmation for op and returns a
// preview of what confirming would do. For sync and reset the origin
// is fetched here so the preview shows the actual incoming values.
// Requesting while another operation is pending or executing returns
// ErrOperationInProgress; the pending operation is unaffected.
func (m *Manager) Request(ctx context.Context, op Operation) (Preview, error) {
	m.mu.Lock()
	var fire []func()

	if m.state != StateIdle {
		m.mu.Unlock()
		return Preview{}, ErrOperationInProgress
	}

	current := m.collection.Values()
	preview := Preview{Operation: op, Current: current}

	switch op {
	case OpSync, OpReset:
		proposed, err := m.fetchOrigin(ctx)
		if err != nil {
			m.mu.Unlock()
			return Preview{}, err
		}
		preview.Proposed = proposed
		preview.Diff = renderDiff(current, proposed)
	case OpClear:
		preview.Proposed = make([]string, len(current))
		preview.Warnings = clearWarnings(current)
	default:
		m.mu.Unlock()
		return Preview{}, fmt.Errorf("unknown bulk operation %q", op)
	}

	m.pending = op
	m.transition(StateAwaitingConfirmation, op, &fire)
	m.mu.Unlock()
	runAll(fire)
	return preview, nil
}

// Cancel abandons the pending operation and returns to Idle with no
// mutation. Only the confirmation step is cancellable.
func (m *Manager) Cancel() error {
	m.mu.Lock()
	var fire []func()

	if m.state != StateAwaitingConfirmation {
		m.mu.Unlock()
		return ErrNotAwaitingConfirmation
	}
	op := m.pending
	m.pending = ""
	m.transition(StateIdle, op, &fire)
	m.notify("Operation cancelled", "info", &fire)
	m.mu.Unlock()
	runAll(fire)
	return nil
}

// Confirm executes the pending operation. The snapshot is pushed
// before mutation; the replacement is computed in full (including the
// awaited origin fetch) before the single collection swap, so a fetch
// failure moves to Failed with the collection untouched and the
// snapshot popped back off. Completed and Failed both settle back to
// Idle before Confirm returns.
func (m *Manager) Confirm(ctx context.Context) error {
	m.mu.Lock()
	var fire []func()

	if m.state != StateAwaitingConfirmation {
		m.mu.Unlock()
		return ErrNotAwaitingConfirmation
	}
	op := m.pending
	m.pending = ""
	m.transition(StateExecuting, op, &fire)

	var finishTiming func(bool, map[string]interface{})
	if m.options.Observer != nil {
		finishTiming = m.options.Observer.StartTiming("bulk_operations", string(op), -1)
	}

	snapshot := newSnapshot(op, snapshotDescription(op), m.collection.Fields())
	m.history.push(snapshot)

	replacement, err := m.computeReplacement(ctx, op)
	if err != nil {
		m.history.pop()
		m.transition(StateFailed, op, &fire)
		m.transition(StateIdle, op, &fire)
		m.notify(fmt.Sprintf("Bulk %s failed: %v", op, err), "error", &fire)
		if finishTiming != nil {
			finishTiming(false, map[string]interface{}{"error": err.Error()})
		}
		m.mu.Unlock()
		runAll(fire)
		return err
	}

	m.collection.ReplaceValues(replacement, mutationSource(op))
	m.transition(StateCompleted, op, &fire)
	m.transition(StateIdle, op, &fire)
	m.notify(successMessage(op), "success", &fire)
	if finishTiming != nil {
		finishTiming(true, map[string]interface{}{"field_count": len(replacement)})
	}
	m.mu.Unlock()
	runAll(fire)
	return nil
}

// Undo pops the most recent snapshot and restores the collection to
// that exact recorded state. Empty history is an informational no-op.
// Undo is unavailable while a confirmation is pending or executing.
func (m *Manager) Undo() (UndoResult, error) {
	m.mu.Lock()
	var fire []func()

	if m.state != StateIdle {
		m.mu.Unlock()
		return UndoResult{}, ErrOperationInProgress
	}

	snapshot, ok := m.history.pop()
	if !ok {
		m.notify("Nothing to undo", "info", &fire)
		m.mu.Unlock()
		runAll(fire)
		return UndoResult{Performed: false, Message: "nothing to undo"}, nil
	}

	m.collection.RestoreFields(snapshot.Fields)
	m.notify("Restored previous topic state", "success", &fire)
	m.mu.Unlock()
	runAll(fire)
	return UndoResult{Performed: true, Message: "restored previous state", Snapshot: snapshot}, nil
}

// fetchOrigin reads the current origin values; an empty read is
// ErrNoOriginData so a misconfigured origin never silently clears
// the collection.
func (m *Manager) fetchOrigin(ctx context.Context) ([]string, error) {
	if m.source == nil {
		return nil, ErrNoOriginData
	}
	values, err := m.source.FetchValues(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching origin values: %w", err)
	}
	if len(values) == 0 {
		return nil, ErrNoOriginData
	}
	return values, nil
}

func (m *Manager) computeReplacement(ctx context.Context, op Operation) ([]string, error) {
	switch op {
	case OpSync, OpReset:
		return m.fetchOrigin(ctx)
	case OpClear:
		return make([]string, m.collection.Size()), nil
	default:
		return nil, fmt.Errorf("unknown bulk operation %q", op)
	}
}

// transition updates state and queues the callback onto fire. Caller
// holds m.mu and runs the queue after unlocking.
func (m *Manager) transition(to State, op Operation, fire *[]func()) {
	from := m.state
	m.state = to
	if cb := m.options.StateChange; cb != nil {
		*fire = append(*fire, func() { cb(from, to, op) })
	}
}

// notify queues a user-facing message onto fire. Caller holds m.mu.
func (m *Manager) notify(message, severity string, fire *[]func()) {
	if cb := m.options.Notify; cb != nil {
		*fire = append(*fire, func() { cb(message, severity) })
	}
}

func runAll(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}

func snapshotDescription(op Operation) string {
	switch op {
	case OpSync:
		return "Before syncing all topics from the content origin"
	case OpClear:
		return "Before clearing all topics"
	case OpReset:
		return "Before restoring original topic values"
	default:
		return "Before bulk operation"
	}
}

func successMessage(op Operation) string {
	switch op {
	case OpSync:
		return "Topics synced from the content origin"
	case OpClear:
		return "All topics cleared"
	case OpReset:
		return "Original topic values restored"
	default:
		return "Bulk operation completed"
	}
}

func mutationSource(op Operation) field.Source {
	if op == OpClear {
		return field.SourceUserEdited
	}
	return field.SourceExternalOrigin
}
