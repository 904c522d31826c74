// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package quality

import (
	"regexp"
	"strings"
)

// maxPrimaryKeywords caps the keyword set extracted at load time.
const maxPrimaryKeywords = 20

var alphabeticWord = regexp.MustCompile(`^[a-zA-Z]+$`)

// ExtractPrimaryKeywords derives the primary keyword set from the
// external-origin field values: lowercased alphabetic words of at
// least three characters, deduplicated in first-seen order, capped at
// maxPrimaryKeywords. This is deliberately simple token extraction,
// not semantic analysis.
func ExtractPrimaryKeywords(originValues []string) []string {
	var keywords []string
	seen := make(map[string]bool)
	for _, value := range originValues {
		for _, word := range strings.Fields(strings.ToLower(value)) {
			if len(word) < 3 || !alphabeticWord.MatchString(word) {
				continue
			}
			if seen[word] {
				continue
			}
			seen[word] = true
			keywords = append(keywords, word)
			if len(keywords) >= maxPrimaryKeywords {
				return keywords
			}
		}
	}
	return keywords
}
