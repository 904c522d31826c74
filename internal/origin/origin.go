// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package origin abstracts the external content system that supplies
// initial and current field values. The engine only ever reads from an
// origin; it never writes back.
package origin

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Source supplies the current field values from the external origin,
// in field-index order.
type Source interface {
	FetchValues(ctx context.Context) ([]string, error)
}

// StaticSource is a fixed in-memory origin, used in tests and for
// collections without a connected content source.
type StaticSource struct {
	values []string
	err    error
}

// NewStaticSource creates an origin that always returns the given values.
func NewStaticSource(values []string) *StaticSource {
	return &StaticSource{values: values}
}

// NewFailingSource creates an origin that always returns err, for
// exercising failure paths.
func NewFailingSource(err error) *StaticSource {
	return &StaticSource{err: err}
}

// FetchValues implements Source.
func (s *StaticSource) FetchValues(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	values := make([]string, len(s.values))
	copy(values, s.values)
	return values, nil
}

// fileDocument is the on-disk shape of an origin file.
type fileDocument struct {
	Topics []string `yaml:"topics"`
}

// FileSource reads field values from a YAML file on every fetch, so
// edits to the file between fetches are picked up by sync/reset.
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed origin.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// FetchValues implements Source by re-reading the backing file.
func (s *FileSource) FetchValues(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Clean(s.path))
	if err != nil {
		return nil, fmt.Errorf("error reading origin file: %w", err)
	}

	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing origin file: %w", err)
	}
	return doc.Topics, nil
}
