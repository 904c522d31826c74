// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package field

import (
	"fmt"
	"strings"
	"sync"
)

// Source marks where a field's current value came from
type Source string

const (
	SourceUserEdited     Source = "user-edited"
	SourceExternalOrigin Source = "external-origin"
)

// ValidationState tracks where a field is in the validation lifecycle
type ValidationState string

const (
	StateUnvalidated ValidationState = "unvalidated"
	StatePending     ValidationState = "pending"
	StateValid       ValidationState = "valid"
	StateInvalid     ValidationState = "invalid"
)

// Field represents one editable content unit in a fixed-size ordered collection
type Field struct {
	Index           int             `json:"index" yaml:"index"`
	Value           string          `json:"value" yaml:"value"`
	Source          Source          `json:"source" yaml:"source"`
	ValidationState ValidationState `json:"validation_state" yaml:"validation_state"`
}

// Quality holds the scoring output for a single field value
type Quality struct {
	Score     int            `json:"score" yaml:"score"`
	Level     string         `json:"level" yaml:"level"`
	Breakdown map[string]int `json:"breakdown" yaml:"breakdown"`
	Feedback  []string       `json:"feedback,omitempty" yaml:"feedback,omitempty"`
}

// Quality levels, derived from score by fixed thresholds
const (
	LevelExcellent = "excellent"
	LevelGood      = "good"
	LevelFair      = "fair"
	LevelPoor      = "poor"
)

// AutoRepair records what the repair engine did during one validation pass
type AutoRepair struct {
	Performed     bool     `json:"performed" yaml:"performed"`
	Actions       []string `json:"actions,omitempty" yaml:"actions,omitempty"`
	OriginalValue string   `json:"original_value" yaml:"original_value"`
	RepairedValue string   `json:"repaired_value" yaml:"repaired_value"`
}

// ValidationResult is the output of one validation pass for one field.
// Presence of any entry in Errors implies IsValid is false; warnings and
// suggestions never affect validity.
type ValidationResult struct {
	FieldIndex  int        `json:"field_index" yaml:"field_index"`
	Value       string     `json:"value" yaml:"value"`
	IsValid     bool       `json:"is_valid" yaml:"is_valid"`
	Errors      []string   `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings    []string   `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Suggestions []string   `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
	Quality     Quality    `json:"quality" yaml:"quality"`
	AutoRepair  AutoRepair `json:"auto_repair" yaml:"auto_repair"`
}

// Collection is a fixed-size ordered set of fields. It is the single
// shared unit of work for the validator and the bulk operation manager.
// Per-index writes and whole-collection replacement are each atomic;
// a partially-applied bulk mutation is never observable.
type Collection struct {
	mu     sync.RWMutex
	fields []Field
}

// NewCollection creates a collection of size empty, unvalidated fields.
func NewCollection(size int) *Collection {
	fields := make([]Field, size)
	for i := range fields {
		fields[i] = Field{
			Index:           i,
			Source:          SourceUserEdited,
			ValidationState: StateUnvalidated,
		}
	}
	return &Collection{fields: fields}
}

// NewCollectionFromOrigin creates a collection of size fields seeded with
// values fetched from the external origin. Extra values are dropped;
// missing trailing values leave fields empty.
func NewCollectionFromOrigin(size int, values []string) *Collection {
	c := NewCollection(size)
	for i := 0; i < size && i < len(values); i++ {
		c.fields[i].Value = values[i]
		c.fields[i].Source = SourceExternalOrigin
	}
	return c
}

// Size returns the fixed number of fields.
func (c *Collection) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.fields)
}

// Get returns a copy of the field at index.
func (c *Collection) Get(index int) (Field, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if index < 0 || index >= len(c.fields) {
		return Field{}, fmt.Errorf("field index %d out of range [0,%d)", index, len(c.fields))
	}
	return c.fields[index], nil
}

// SetValue updates a single field's value and provenance.
func (c *Collection) SetValue(index int, value string, source Source) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.fields) {
		return fmt.Errorf("field index %d out of range [0,%d)", index, len(c.fields))
	}
	c.fields[index].Value = value
	c.fields[index].Source = source
	c.fields[index].ValidationState = StateUnvalidated
	return nil
}

// SetValidationState updates a single field's validation state.
func (c *Collection) SetValidationState(index int, state ValidationState) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.fields) {
		return fmt.Errorf("field index %d out of range [0,%d)", index, len(c.fields))
	}
	c.fields[index].ValidationState = state
	return nil
}

// Values returns a copy of all field values in index order.
func (c *Collection) Values() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	values := make([]string, len(c.fields))
	for i, f := range c.fields {
		values[i] = f.Value
	}
	return values
}

// Fields returns a copy of all fields in index order.
func (c *Collection) Fields() []Field {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fields := make([]Field, len(c.fields))
	copy(fields, c.fields)
	return fields
}

// ReplaceValues swaps in a complete new set of values in one assignment.
// This is the bulk-mutation entry point: the replacement must be computed
// in full before calling, so a failure during computation leaves the
// collection untouched. Values beyond the collection size are dropped;
// missing trailing values clear the corresponding fields.
func (c *Collection) ReplaceValues(values []string, source Source) {
	c.mu.Lock()
	defer c.mu.Unlock()
	replacement := make([]Field, len(c.fields))
	for i := range replacement {
		value := ""
		if i < len(values) {
			value = values[i]
		}
		replacement[i] = Field{
			Index:           i,
			Value:           value,
			Source:          source,
			ValidationState: StateUnvalidated,
		}
	}
	c.fields = replacement
}

// RestoreFields replaces the collection's fields with a previously
// captured copy, byte-for-byte. Used by undo; provenance and validation
// state come back exactly as recorded.
func (c *Collection) RestoreFields(fields []Field) {
	c.mu.Lock()
	defer c.mu.Unlock()
	restored := make([]Field, len(fields))
	copy(restored, fields)
	c.fields = restored
}

// Serialize renders the collection as a stable "index:value" line list,
// used by the integrity monitor's fingerprinting.
func (c *Collection) Serialize() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var sb strings.Builder
	for _, f := range c.fields {
		fmt.Fprintf(&sb, "%d:%s\n", f.Index, f.Value)
	}
	return sb.String()
}
