// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

package attestation

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/rdv-project/rdv/lib/products"
)

// MismatchKind classifies a difference between a record and the
// output directory it describes.
type MismatchKind string

const (
	// MismatchMissing is a product listed in the record that is no
	// longer present.
	MismatchMissing MismatchKind = "missing"

	// MismatchChanged is a product whose content digest differs.
	MismatchChanged MismatchKind = "changed"

	// MismatchUnattested is a file present in the directory but not
	// listed in the record.
	MismatchUnattested MismatchKind = "unattested"
)

// Mismatch is one difference found by [Verify].
type Mismatch struct {
	Path     string
	Kind     MismatchKind
	Expected string
	Actual   string
}

// VerifyOptions mirrors the collection settings used when the record
// was written.
type VerifyOptions struct {
	AttestationName string
	Parallelism     int
	Logger          *slog.Logger
}

// Verify re-collects the products in outputDirectory and compares
// their digests with the record. Mismatches are sorted by path. An
// empty result means the directory still matches the record.
func Verify(ctx context.Context, record *Record, outputDirectory string, options VerifyOptions) []Mismatch {
	collector := &products.Collector{
		ReservedName: options.AttestationName,
		Parallelism:  options.Parallelism,
		Logger:       options.Logger,
	}
	current := collector.Collect(ctx, outputDirectory)

	var mismatches []Mismatch
	for path, attested := range record.Products {
		found, ok := current[path]
		switch {
		case !ok:
			mismatches = append(mismatches, Mismatch{Path: path, Kind: MismatchMissing, Expected: attested.SHA256})
		case found.SHA256 != attested.SHA256:
			mismatches = append(mismatches, Mismatch{
				Path:     path,
				Kind:     MismatchChanged,
				Expected: attested.SHA256,
				Actual:   found.SHA256,
			})
		}
	}
	for path, found := range current {
		if _, ok := record.Products[path]; !ok {
			mismatches = append(mismatches, Mismatch{Path: path, Kind: MismatchUnattested, Actual: found.SHA256})
		}
	}
	slices.SortFunc(mismatches, func(a, b Mismatch) int {
		return strings.Compare(a.Path, b.Path)
	})
	return mismatches
}
