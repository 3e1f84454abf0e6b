// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"os"

	"github.com/rdv-project/rdv/lib/clock"
	"github.com/rdv-project/rdv/lib/supervisor"
)

func main() {
	entrypoint := &supervisor.Supervisor{
		Getenv:    os.Getenv,
		Args:      os.Args[1:],
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		LogOutput: os.Stderr,
		Clock:     clock.Real(),
		Stat:      os.Stat,
	}
	os.Exit(entrypoint.Run(context.Background()))
}
