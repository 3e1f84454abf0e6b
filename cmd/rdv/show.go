// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rdv-project/rdv/lib/attestation"
)

func showCmd(args []string, stdout io.Writer) error {
	var compact bool
	flagSet := newFlagSet("show", "[--compact] <attestation-file>")
	flagSet.BoolVar(&compact, "compact", false, "print on one line even when writing to a terminal")

	path, err := parseOne(flagSet, args, "attestation file")
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if _, err := attestation.Parse(data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	var formatted bytes.Buffer
	if compact || !isTerminal(stdout) {
		err = json.Compact(&formatted, data)
	} else {
		err = json.Indent(&formatted, data, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("formatting %s: %w", path, err)
	}
	formatted.WriteByte('\n')
	_, err = stdout.Write(formatted.Bytes())
	return err
}
