// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

package contract

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rdv-project/rdv/lib/invocation"
)

const probeName = ".rdv-write-test"

func contextFor(values map[string]string) invocation.Context {
	return invocation.FromEnvironment(func(name string) string { return values[name] }, invocation.UnknownManifest())
}

func validBindings(t *testing.T) map[string]string {
	t.Helper()
	return map[string]string{
		invocation.EnvWorkspace:    t.TempDir(),
		invocation.EnvOutput:       t.TempDir(),
		invocation.EnvTrustLevel:   "local",
		invocation.EnvInvocationID: "inv-1",
	}
}

func violationsOf(t *testing.T, err error) []Violation {
	t.Helper()
	var violationErr *ViolationError
	if !errors.As(err, &violationErr) {
		t.Fatalf("error %v is not a *ViolationError", err)
	}
	return violationErr.Violations
}

func TestValidatePasses(t *testing.T) {
	bindings := validBindings(t)
	validator := &Validator{ProbeName: probeName}
	if err := validator.Validate(contextFor(bindings)); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	entries, err := os.ReadDir(bindings[invocation.EnvOutput])
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("output directory not left empty after probe: %v", entries)
	}
}

func TestValidateReportsEveryMissingBinding(t *testing.T) {
	validator := &Validator{ProbeName: probeName}
	err := validator.Validate(contextFor(nil))

	violations := violationsOf(t, err)
	if len(violations) != 4 {
		t.Fatalf("got %d violations, want 4: %v", len(violations), violations)
	}
	wantSubjects := []string{
		invocation.EnvWorkspace,
		invocation.EnvOutput,
		invocation.EnvTrustLevel,
		invocation.EnvInvocationID,
	}
	for index, violation := range violations {
		if violation.Check != CheckBinding {
			t.Errorf("violation %d check = %s, want %s", index, violation.Check, CheckBinding)
		}
		if violation.Subject != wantSubjects[index] {
			t.Errorf("violation %d subject = %s, want %s", index, violation.Subject, wantSubjects[index])
		}
		if !strings.Contains(violation.Message, "not set") {
			t.Errorf("violation %d message = %q", index, violation.Message)
		}
	}
	if !IsViolation(err) {
		t.Error("IsViolation = false")
	}
}

func TestValidateRejectsUnknownTrustLevel(t *testing.T) {
	bindings := validBindings(t)
	bindings[invocation.EnvTrustLevel] = "paranoid"

	violations := violationsOf(t, (&Validator{ProbeName: probeName}).Validate(contextFor(bindings)))
	if len(violations) != 1 || violations[0].Check != CheckTrustLevel {
		t.Fatalf("violations = %v, want one trust level violation", violations)
	}
	if !strings.Contains(violations[0].Message, `"paranoid"`) {
		t.Errorf("message = %q, want the rejected value quoted", violations[0].Message)
	}
}

func TestValidateMounts(t *testing.T) {
	bindings := validBindings(t)
	notDirectory := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(notDirectory, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	bindings[invocation.EnvWorkspace] = filepath.Join(t.TempDir(), "absent")
	bindings[invocation.EnvOutput] = notDirectory

	probed := false
	validator := &Validator{
		ProbeName: probeName,
		Probe: func(string, string) error {
			probed = true
			return nil
		},
	}
	violations := violationsOf(t, validator.Validate(contextFor(bindings)))
	if len(violations) != 2 {
		t.Fatalf("got %d violations, want 2: %v", len(violations), violations)
	}
	if !strings.Contains(violations[0].Message, "workspace mount not found") {
		t.Errorf("workspace violation = %q", violations[0].Message)
	}
	if !strings.Contains(violations[1].Message, "not a directory") {
		t.Errorf("output violation = %q", violations[1].Message)
	}
	if probed {
		t.Error("writability probe ran against a non-directory output")
	}
}

func TestValidateSkipsMountChecksForMissingBindings(t *testing.T) {
	bindings := validBindings(t)
	delete(bindings, invocation.EnvOutput)

	violations := violationsOf(t, (&Validator{ProbeName: probeName}).Validate(contextFor(bindings)))
	if len(violations) != 1 || violations[0].Subject != invocation.EnvOutput {
		t.Fatalf("violations = %v, want only the missing output binding", violations)
	}
}

func TestValidateUnwritableOutput(t *testing.T) {
	bindings := validBindings(t)
	validator := &Validator{
		ProbeName: probeName,
		Probe: func(directory, name string) error {
			if name != probeName {
				t.Errorf("probe name = %q, want %q", name, probeName)
			}
			return errors.New("read-only file system")
		},
	}

	err := validator.Validate(contextFor(bindings))
	violations := violationsOf(t, err)
	if len(violations) != 1 || violations[0].Check != CheckWritable {
		t.Fatalf("violations = %v, want one writability violation", violations)
	}
	if !strings.Contains(err.Error(), "read-only file system") {
		t.Errorf("error = %q, want the probe failure", err)
	}
}

func TestWriteProbeOnReadOnlyDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions do not restrict root")
	}
	directory := t.TempDir()
	if err := os.Chmod(directory, 0o555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(directory, 0o755) })

	if err := WriteProbe(directory, probeName); err == nil {
		t.Fatal("WriteProbe succeeded on a read-only directory")
	}
}

func TestWriteProbeReusesEmptyStaleProbe(t *testing.T) {
	directory := t.TempDir()
	stale := filepath.Join(directory, probeName)
	if err := os.WriteFile(stale, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteProbe(directory, probeName); err != nil {
		t.Fatalf("WriteProbe: %v", err)
	}
	if _, err := os.Stat(stale); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("probe file still present: %v", err)
	}
}

func TestWriteProbeKeepsExistingFile(t *testing.T) {
	directory := t.TempDir()
	existing := filepath.Join(directory, probeName)
	if err := os.WriteFile(existing, []byte("tool data"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := WriteProbe(directory, probeName); err == nil {
		t.Fatal("WriteProbe succeeded over a non-empty file")
	}
	content, err := os.ReadFile(existing)
	if err != nil {
		t.Fatalf("existing file removed: %v", err)
	}
	if string(content) != "tool data" {
		t.Errorf("existing file content = %q, want it unchanged", content)
	}

	violations := violationsOf(t, (&Validator{ProbeName: probeName}).Validate(contextFor(map[string]string{
		invocation.EnvWorkspace:    t.TempDir(),
		invocation.EnvOutput:       directory,
		invocation.EnvTrustLevel:   "local",
		invocation.EnvInvocationID: "inv-1",
	})))
	if len(violations) != 1 || violations[0].Check != CheckWritable {
		t.Errorf("violations = %v, want one writability violation", violations)
	}
}

func TestWrapUnwrapsToCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(CheckAttestation, "/output/.attestation.json", "writing attestation", cause)
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false")
	}
	if got := err.Error(); got != "contract violation: writing attestation: disk full" {
		t.Errorf("Error() = %q", got)
	}
}
