// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/rdv-project/rdv/lib/treehash"
)

func hashCmd(args []string, stdout io.Writer, logger *slog.Logger) error {
	var (
		strict      bool
		list        bool
		parallelism int
	)
	flagSet := newFlagSet("hash", "[--strict] [--list] [--parallelism N] <directory>")
	flagSet.BoolVar(&strict, "strict", false, "fail on unreadable files instead of skipping them")
	flagSet.BoolVar(&list, "list", false, "print each file's digest before the fingerprint")
	flagSet.IntVar(&parallelism, "parallelism", 0, "concurrent file hashes (0 = number of CPUs)")

	directory, err := parseOne(flagSet, args, "directory")
	if err != nil {
		return err
	}

	fingerprint, entries, err := treehash.HashTree(context.Background(), directory, treehash.Options{
		Strict:      strict,
		Parallelism: parallelism,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	if list {
		for _, entry := range entries {
			fmt.Fprintf(stdout, "%s  %s\n", entry.Digest, entry.Path)
		}
		fmt.Fprintf(stdout, "fingerprint: %s\n", fingerprint)
		return nil
	}
	fmt.Fprintln(stdout, fingerprint)
	return nil
}
