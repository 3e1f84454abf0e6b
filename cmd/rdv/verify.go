// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/rdv-project/rdv/lib/attestation"
	"github.com/rdv-project/rdv/lib/config"
)

func verifyCmd(args []string, stdout io.Writer, logger *slog.Logger) error {
	var name string
	flagSet := newFlagSet("verify", "[--name FILE] <output-directory>")
	flagSet.StringVar(&name, "name", config.DefaultAttestationName, "attestation file name inside the output directory")

	directory, err := parseOne(flagSet, args, "output directory")
	if err != nil {
		return err
	}

	record, err := attestation.Read(filepath.Join(directory, name))
	if err != nil {
		return fmt.Errorf("reading attestation: %w", err)
	}

	mismatches := attestation.Verify(context.Background(), record, directory, attestation.VerifyOptions{
		AttestationName: name,
		Logger:          logger,
	})
	for _, mismatch := range mismatches {
		switch mismatch.Kind {
		case attestation.MismatchChanged:
			fmt.Fprintf(stdout, "changed     %s (attested %s, found %s)\n", mismatch.Path, mismatch.Expected, mismatch.Actual)
		case attestation.MismatchMissing:
			fmt.Fprintf(stdout, "missing     %s\n", mismatch.Path)
		case attestation.MismatchUnattested:
			fmt.Fprintf(stdout, "unattested  %s\n", mismatch.Path)
		}
	}
	if len(mismatches) > 0 {
		return &exitError{code: 1}
	}
	fmt.Fprintf(stdout, "ok: %d products match invocation %s\n", len(record.Products), record.InvocationID)
	return nil
}
