// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

package invocation

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// Manifest is the tool identity baked into the image. Only name and
// version are read; other keys are ignored.
type Manifest struct {
	Name    string
	Version string
}

// UnknownManifest is the identity used when no manifest is readable.
func UnknownManifest() Manifest {
	return Manifest{Name: Unknown, Version: Unknown}
}

// ReadManifest reads and parses the manifest at path. On any failure
// it returns [UnknownManifest] together with the error so the caller
// can log it; a bad manifest never stops a run. A missing file
// yields an error satisfying errors.Is(err, fs.ErrNotExist).
func ReadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return UnknownManifest(), err
	}
	manifest, err := ParseManifest(data)
	if err != nil {
		return UnknownManifest(), fmt.Errorf("%s: %w", path, err)
	}
	return manifest, nil
}

// ParseManifest parses manifest bytes. Comments and trailing commas
// are accepted. A name or version that is absent or not a string is
// reported as [Unknown].
func ParseManifest(data []byte) (Manifest, error) {
	var fields map[string]any
	if err := json.Unmarshal(jsonc.ToJSON(data), &fields); err != nil {
		return UnknownManifest(), fmt.Errorf("parsing tool manifest: %w", err)
	}
	return Manifest{
		Name:    stringField(fields, "name"),
		Version: stringField(fields, "version"),
	}, nil
}

func stringField(fields map[string]any, key string) string {
	value, ok := fields[key].(string)
	if !ok || value == "" {
		return Unknown
	}
	return value
}
