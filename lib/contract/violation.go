// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

package contract

import (
	"errors"
	"fmt"
	"strings"
)

// ExitCode is the process exit code for any contract violation.
const ExitCode = 2

// Check names identify which rule a [Violation] broke.
const (
	CheckBinding     = "binding"
	CheckTrustLevel  = "trust_level"
	CheckMount       = "mount"
	CheckWritable    = "writable"
	CheckBinary      = "binary"
	CheckMaterials   = "materials"
	CheckAttestation = "attestation"
	CheckConfig      = "config"
)

// Violation is one broken rule.
type Violation struct {
	Check string

	// Subject is the binding name or path the rule was applied to.
	Subject string

	Message string
}

func (violation Violation) String() string {
	return violation.Message
}

// ViolationError carries one or more violations.
type ViolationError struct {
	Violations []Violation

	// Err is the underlying cause for single-violation errors built
	// by [Wrap], or nil.
	Err error
}

func (e *ViolationError) Error() string {
	messages := make([]string, len(e.Violations))
	for index, violation := range e.Violations {
		messages[index] = violation.Message
	}
	return "contract violation: " + strings.Join(messages, "; ")
}

func (e *ViolationError) Unwrap() error {
	return e.Err
}

// Violationf returns a ViolationError with a single violation.
func Violationf(check, subject, format string, args ...any) *ViolationError {
	return &ViolationError{Violations: []Violation{{
		Check:   check,
		Subject: subject,
		Message: fmt.Sprintf(format, args...),
	}}}
}

// Wrap returns a single-violation ViolationError whose message is
// "<message>: <err>" and which unwraps to err.
func Wrap(check, subject, message string, err error) *ViolationError {
	violation := Violationf(check, subject, "%s: %v", message, err)
	violation.Err = err
	return violation
}

// IsViolation reports whether err is or wraps a ViolationError.
func IsViolation(err error) bool {
	var violation *ViolationError
	return errors.As(err, &violation)
}
