// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"io/fs"
	"os"
	"strings"
)

// NotFoundError reports that no discovery candidate exists.
type NotFoundError struct {
	Candidates []string
}

func (e *NotFoundError) Error() string {
	return "tool binary not found, expected one of " + strings.Join(e.Candidates, ", ")
}

// Discover returns the first candidate that stat reports as an
// existing non-directory. stat is normally os.Stat.
func Discover(candidates []string, stat func(string) (fs.FileInfo, error)) (string, error) {
	for _, candidate := range candidates {
		info, err := stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", &NotFoundError{Candidates: append([]string(nil), candidates...)}
}

// EnsureExecutable adds owner, group, and other execute permission to
// path when any of them is missing. changed reports whether the mode
// was modified. Callers treat an error as a warning: the start attempt
// that follows reports the real problem if the file stays
// unexecutable.
func EnsureExecutable(path string) (changed bool, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	mode := info.Mode()
	if mode.Perm()&0o111 == 0o111 {
		return false, nil
	}
	if err := os.Chmod(path, mode|0o111); err != nil {
		return false, err
	}
	return true, nil
}
