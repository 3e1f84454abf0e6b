// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/rdv-project/rdv/lib/process"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		process.Fatal(err)
	}
}

// exitError ends the command with a specific code after its output
// has already been written.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func (e *exitError) ExitCode() int {
	return e.code
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printUsage(stderr)
		return &exitError{code: 1}
	}

	logLevel := slog.LevelWarn
	if os.Getenv("RDV_DEBUG") != "" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel}))

	command, rest := args[0], args[1:]
	switch command {
	case "hash":
		return hashCmd(rest, stdout, logger)
	case "verify":
		return verifyCmd(rest, stdout, logger)
	case "show":
		return showCmd(rest, stdout)
	case "payload":
		return payloadCmd(rest, stdout)
	case "version", "--version":
		return versionCmd(stdout)
	case "help", "--help", "-h":
		printUsage(stdout)
		return nil
	}
	fmt.Fprintf(stderr, "unknown command: %s\n\n", command)
	printUsage(stderr)
	return &exitError{code: 1}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: rdv <command> [flags] [args]

Commands:
  hash      print the tree fingerprint of a directory
  verify    check an output directory against its attestation
  show      print an attestation
  payload   print an attestation's signing payload and digest
  version   print version information
`)
}

// newFlagSet returns a flag set that reports errors instead of exiting.
func newFlagSet(name string, usage string) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("rdv "+name, pflag.ContinueOnError)
	flagSet.Usage = func() {
		fmt.Fprintf(flagSet.Output(), "Usage: rdv %s %s\n\nFlags:\n", name, usage)
		flagSet.PrintDefaults()
	}
	return flagSet
}

// parseOne parses flags and requires exactly one positional argument.
func parseOne(flagSet *pflag.FlagSet, args []string, what string) (string, error) {
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return "", &exitError{code: 0}
		}
		return "", err
	}
	if flagSet.NArg() != 1 {
		return "", fmt.Errorf("expected exactly one %s argument, got %d", what, flagSet.NArg())
	}
	return flagSet.Arg(0), nil
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
