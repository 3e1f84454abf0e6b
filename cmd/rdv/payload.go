// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/rdv-project/rdv/lib/attestation"
	"github.com/rdv-project/rdv/lib/codec"
)

func payloadCmd(args []string, stdout io.Writer) error {
	var diagnose bool
	flagSet := newFlagSet("payload", "[--diagnose] <attestation-file>")
	flagSet.BoolVar(&diagnose, "diagnose", false, "print CBOR diagnostic notation instead of hex")

	path, err := parseOne(flagSet, args, "attestation file")
	if err != nil {
		return err
	}

	record, err := attestation.Read(path)
	if err != nil {
		return err
	}
	payload, err := attestation.SigningPayload(record)
	if err != nil {
		return err
	}

	if diagnose {
		notation, err := codec.Diagnose(payload)
		if err != nil {
			return fmt.Errorf("rendering payload: %w", err)
		}
		fmt.Fprintln(stdout, notation)
	} else {
		fmt.Fprintln(stdout, hex.EncodeToString(payload))
	}
	fmt.Fprintf(stdout, "payload-digest: %s\n", attestation.PayloadDigest(payload))
	return nil
}
