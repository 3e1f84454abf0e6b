// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"

	"github.com/rdv-project/rdv/lib/version"
)

func versionCmd(stdout io.Writer) error {
	fmt.Fprintf(stdout, "rdv %s\n", version.Full())
	digest, path, err := version.SelfDigest()
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "  Binary: %s\n  SHA-256: %s\n", path, digest)
	return nil
}
