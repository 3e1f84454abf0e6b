// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

package products

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/rdv-project/rdv/lib/treehash"
)

// Product is one output file.
type Product struct {
	// SHA256 is the lowercase hex content digest.
	SHA256 string `json:"sha256"`

	// Path is the absolute location of the file when it was collected.
	Path string `json:"path"`
}

// Set maps slash-separated paths relative to the output directory to
// their products.
type Set map[string]Product

// Collector walks an output directory.
type Collector struct {
	// ReservedName is excluded when it appears directly under the
	// output directory. Files with the same name in subdirectories
	// are collected.
	ReservedName string

	// Parallelism bounds concurrent hashing; zero uses the number of CPUs.
	Parallelism int

	Logger *slog.Logger
}

// Collect returns every readable regular file under outputDirectory.
// An absent directory yields an empty set; any other failure to walk
// the directory is logged and also yields an empty set.
func (c *Collector) Collect(ctx context.Context, outputDirectory string) Set {
	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	set := make(Set)
	root, err := filepath.Abs(outputDirectory)
	if err != nil {
		logger.Warn("cannot resolve output directory, collecting no products", "path", outputDirectory, "error", err)
		return set
	}

	entries, err := treehash.Walk(ctx, root, treehash.Options{
		Parallelism: c.Parallelism,
		Logger:      logger,
		Exclude: func(relative string) bool {
			return c.ReservedName != "" && relative == c.ReservedName
		},
	})
	if err != nil {
		logger.Warn("cannot walk output directory, collecting no products", "path", root, "error", err)
		return set
	}

	for _, entry := range entries {
		set[entry.Path] = Product{
			SHA256: entry.Digest.String(),
			Path:   filepath.Join(root, filepath.FromSlash(entry.Path)),
		}
	}
	return set
}

// Paths returns the set's keys in sorted order.
func (s Set) Paths() []string {
	paths := make([]string, 0, len(s))
	for path := range s {
		paths = append(paths, path)
	}
	slices.Sort(paths)
	return paths
}
