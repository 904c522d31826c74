// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package validator

import (
	"sync"
	"time"

	"topickit/internal/field"
)

// cacheEntry records one validation result together with the exact
// value it was computed for.
type cacheEntry struct {
	result    field.ValidationResult
	value     string
	timestamp time.Time
}

// resultCache holds the most recent validation result per field index.
// An entry is only usable when the requested value matches the value
// recorded in the entry; a field edit therefore invalidates it.
type resultCache struct {
	mu      sync.RWMutex
	entries map[int]cacheEntry
}

func newResultCache() *resultCache {
	return &resultCache{entries: make(map[int]cacheEntry)}
}

// get returns the cached result for (index, value) when present.
func (c *resultCache) get(index int, value string) (field.ValidationResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[index]
	if !ok || entry.value != value {
		return field.ValidationResult{}, false
	}
	return entry.result, true
}

// put stores the result for (index, value), replacing any prior entry.
func (c *resultCache) put(index int, value string, result field.ValidationResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[index] = cacheEntry{
		result:    result,
		value:     value,
		timestamp: time.Now(),
	}
}

// invalidate drops the entry for index.
func (c *resultCache) invalidate(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, index)
}

// clear drops every entry.
func (c *resultCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[int]cacheEntry)
}

// size returns the number of cached entries.
func (c *resultCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
