// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

package attestation

import (
	"fmt"
	"os"
	"path/filepath"
)

// Write stores record as directory/name and returns the final path.
// The bytes go to a temporary file in the same directory, are synced,
// and are then renamed into place, so a crash never leaves a partial
// attestation. The temporary file is removed on any failure.
func Write(directory, name string, record *Record) (string, error) {
	data, err := Marshal(record)
	if err != nil {
		return "", err
	}

	finalPath := filepath.Join(directory, name)

	tmpFile, err := os.CreateTemp(directory, name+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("creating temp attestation file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("writing attestation: %w", err)
	}
	if err := tmpFile.Chmod(0o644); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("setting attestation permissions: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("syncing attestation: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("closing temp attestation file: %w", err)
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		return "", fmt.Errorf("renaming attestation to %s: %w", finalPath, err)
	}

	success = true
	return finalPath, nil
}
