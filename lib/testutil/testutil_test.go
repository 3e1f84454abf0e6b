// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteTree(t *testing.T) {
	root := t.TempDir()
	WriteTree(t, root, map[string]string{
		"a.txt":         "A",
		"nested/deep/b": "B",
	})

	for relative, want := range map[string]string{"a.txt": "A", "nested/deep/b": "B"} {
		got, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(relative)))
		if err != nil {
			t.Fatalf("reading %s: %v", relative, err)
		}
		if string(got) != want {
			t.Errorf("%s = %q, want %q", relative, got, want)
		}
	}
}

func TestWriteScriptIsExecutable(t *testing.T) {
	path := WriteScript(t, t.TempDir(), "tool", "exit 0")
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0o111 != 0o111 {
		t.Errorf("mode = %v, want executable", info.Mode())
	}
}

func TestUniqueIDIncreases(t *testing.T) {
	first := UniqueID("inv")
	second := UniqueID("inv")
	if first == second {
		t.Errorf("UniqueID returned %q twice", first)
	}
}
