// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package field

import "testing"

func TestNewCollectionFromOrigin(t *testing.T) {
	tests := []struct {
		name       string
		size       int
		values     []string
		wantValues []string
	}{
		{
			name:       "exact fit",
			size:       3,
			values:     []string{"One", "Two", "Three"},
			wantValues: []string{"One", "Two", "Three"},
		},
		{
			name:       "extra values dropped",
			size:       2,
			values:     []string{"One", "Two", "Three"},
			wantValues: []string{"One", "Two"},
		},
		{
			name:       "missing trailing values left empty",
			size:       4,
			values:     []string{"One"},
			wantValues: []string{"One", "", "", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCollectionFromOrigin(tt.size, tt.values)
			if c.Size() != tt.size {
				t.Errorf("Size() = %d, want %d", c.Size(), tt.size)
			}
			got := c.Values()
			for i, want := range tt.wantValues {
				if got[i] != want {
					t.Errorf("Values()[%d] = %q, want %q", i, got[i], want)
				}
			}
			for i, f := range c.Fields() {
				wantSource := SourceUserEdited
				if i < len(tt.values) && f.Value != "" {
					wantSource = SourceExternalOrigin
				}
				if f.Source != wantSource {
					t.Errorf("field %d source = %q, want %q", i, f.Source, wantSource)
				}
			}
		})
	}
}

func TestSetValueResetsValidationState(t *testing.T) {
	c := NewCollection(2)
	if err := c.SetValidationState(0, StateValid); err != nil {
		t.Fatalf("SetValidationState failed: %v", err)
	}
	if err := c.SetValue(0, "Edited", SourceUserEdited); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
	f, err := c.Get(0)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if f.ValidationState != StateUnvalidated {
		t.Errorf("state after edit = %q, want %q", f.ValidationState, StateUnvalidated)
	}
}

func TestOutOfRangeErrors(t *testing.T) {
	c := NewCollection(2)
	for _, index := range []int{-1, 2} {
		if _, err := c.Get(index); err == nil {
			t.Errorf("Get(%d) expected error", index)
		}
		if err := c.SetValue(index, "x", SourceUserEdited); err == nil {
			t.Errorf("SetValue(%d) expected error", index)
		}
		if err := c.SetValidationState(index, StateValid); err == nil {
			t.Errorf("SetValidationState(%d) expected error", index)
		}
	}
}

func TestReplaceValues(t *testing.T) {
	c := NewCollectionFromOrigin(3, []string{"One", "Two", "Three"})
	if err := c.SetValidationState(1, StateValid); err != nil {
		t.Fatalf("SetValidationState failed: %v", err)
	}

	c.ReplaceValues([]string{"New one"}, SourceExternalOrigin)

	got := c.Fields()
	if got[0].Value != "New one" || got[1].Value != "" || got[2].Value != "" {
		t.Errorf("values after replace = %q, %q, %q", got[0].Value, got[1].Value, got[2].Value)
	}
	for i, f := range got {
		if f.ValidationState != StateUnvalidated {
			t.Errorf("field %d state = %q, want %q", i, f.ValidationState, StateUnvalidated)
		}
		if f.Index != i {
			t.Errorf("field %d carries index %d", i, f.Index)
		}
	}
}

func TestRestoreFieldsVerbatim(t *testing.T) {
	c := NewCollectionFromOrigin(2, []string{"One", "Two"})
	if err := c.SetValidationState(0, StateValid); err != nil {
		t.Fatalf("SetValidationState failed: %v", err)
	}
	captured := c.Fields()

	c.ReplaceValues(nil, SourceUserEdited)
	c.RestoreFields(captured)

	restored := c.Fields()
	for i := range captured {
		if restored[i] != captured[i] {
			t.Errorf("field %d = %+v, want %+v", i, restored[i], captured[i])
		}
	}
}

func TestSerialize(t *testing.T) {
	c := NewCollectionFromOrigin(2, []string{"One", "Two"})
	want := "0:One\n1:Two\n"
	if got := c.Serialize(); got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}
