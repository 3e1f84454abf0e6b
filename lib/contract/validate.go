// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

package contract

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rdv-project/rdv/lib/invocation"
)

// Validator checks an invocation against the runtime contract.
type Validator struct {
	// ProbeName is the file created and removed in the output
	// directory to prove it is writable.
	ProbeName string

	// Probe performs the writability probe. Nil uses [WriteProbe].
	Probe func(directory, name string) error

	// Logger receives one error line per violation. Nil discards.
	Logger *slog.Logger
}

// Validate runs every check and returns nil or a *ViolationError
// listing all failures in check order.
func (v *Validator) Validate(inv invocation.Context) error {
	var violations []Violation
	report := func(violation Violation) {
		violations = append(violations, violation)
		if v.Logger != nil {
			v.Logger.Error(violation.Message, "check", violation.Check, "subject", violation.Subject)
		}
	}

	present := make(map[string]bool)
	for _, binding := range inv.RequiredBindings() {
		if binding.Present() {
			present[binding.Name] = true
			continue
		}
		report(Violation{
			Check:   CheckBinding,
			Subject: binding.Name,
			Message: fmt.Sprintf("%s (%s) not set", binding.Name, binding.Description),
		})
	}

	if present[invocation.EnvTrustLevel] && !inv.TrustLevel.Valid() {
		report(Violation{
			Check:   CheckTrustLevel,
			Subject: invocation.EnvTrustLevel,
			Message: fmt.Sprintf("%s %q is not one of local, attested, hardened",
				invocation.EnvTrustLevel, inv.TrustLevel),
		})
	}

	mounts := []struct {
		binding string
		label   string
		path    string
	}{
		{invocation.EnvWorkspace, "workspace", inv.WorkspacePath},
		{invocation.EnvOutput, "output", inv.OutputPath},
	}
	outputIsDirectory := false
	for _, mount := range mounts {
		if !present[mount.binding] {
			continue
		}
		if violation, ok := checkDirectory(mount.label, mount.path); !ok {
			report(violation)
			continue
		}
		if mount.binding == invocation.EnvOutput {
			outputIsDirectory = true
		}
	}

	if outputIsDirectory {
		probe := v.Probe
		if probe == nil {
			probe = WriteProbe
		}
		if err := probe(inv.OutputPath, v.ProbeName); err != nil {
			report(Violation{
				Check:   CheckWritable,
				Subject: inv.OutputPath,
				Message: fmt.Sprintf("output mount %s is not writable: %v", inv.OutputPath, err),
			})
		}
	}

	if len(violations) > 0 {
		return &ViolationError{Violations: violations}
	}
	return nil
}

func checkDirectory(label, path string) (Violation, bool) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return Violation{
			Check:   CheckMount,
			Subject: path,
			Message: fmt.Sprintf("%s mount not found at %s", label, path),
		}, false
	case err != nil:
		return Violation{
			Check:   CheckMount,
			Subject: path,
			Message: fmt.Sprintf("%s mount at %s cannot be inspected: %v", label, path, err),
		}, false
	case !info.IsDir():
		return Violation{
			Check:   CheckMount,
			Subject: path,
			Message: fmt.Sprintf("%s mount at %s is not a directory", label, path),
		}, false
	}
	return Violation{}, true
}

// WriteProbe creates name inside directory, writes to it, and removes
// it. Once the file has been created it is removed regardless of
// whether the write succeeded. An existing empty regular file with
// that name is treated as a stale probe and reused; any other existing
// entry is left untouched and reported as an error.
func WriteProbe(directory, name string) (err error) {
	path := filepath.Join(directory, name)
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		file, err = reuseStaleProbe(path)
	}
	if err != nil {
		return err
	}
	defer func() {
		if removeErr := os.Remove(path); removeErr != nil && err == nil {
			err = fmt.Errorf("removing probe file: %w", removeErr)
		}
	}()

	if _, err := file.Write([]byte("rdv\n")); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func reuseStaleProbe(path string) (*os.File, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() || info.Size() != 0 {
		return nil, fmt.Errorf("%s already exists and is not an empty probe file", path)
	}
	return os.OpenFile(path, os.O_WRONLY, 0)
}
