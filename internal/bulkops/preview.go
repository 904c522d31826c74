// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package bulkops

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Preview describes what a requested bulk operation would do, before
// the user confirms it. For sync and reset it carries the proposed
// values and a rendered diff; for clear it carries warnings listing
// the values about to be discarded.
type Preview struct {
	Operation Operation `json:"operation"`
	Current   []string  `json:"current"`
	Proposed  []string  `json:"proposed"`
	Diff      string    `json:"diff,omitempty"`
	Warnings  []string  `json:"warnings,omitempty"`
}

// renderDiff produces a unified-diff-style rendering of the value
// change, one line per field. Identical before/after yields "".
func renderDiff(before, after []string) string {
	src := strings.Join(before, "\n")
	dst := strings.Join(after, "\n")
	if src == dst {
		return ""
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(src, dst, true)
	patches := dmp.PatchMake(src, diffs)
	return dmp.PatchToText(patches)
}

// clearWarnings lists the non-empty values a clear would discard.
func clearWarnings(current []string) []string {
	var warnings []string
	for i, value := range current {
		if strings.TrimSpace(value) == "" {
			continue
		}
		warnings = append(warnings, fmt.Sprintf("Topic %d will be cleared: %q", i+1, value))
	}
	if warnings == nil {
		warnings = []string{"All topics are already empty"}
	}
	return warnings
}
