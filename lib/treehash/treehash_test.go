// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

package treehash

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rdv-project/rdv/lib/binhash"
	"github.com/rdv-project/rdv/lib/testutil"
)

func mustHash(t *testing.T, root string, options Options) binhash.Digest {
	t.Helper()
	digest, _, err := HashTree(context.Background(), root, options)
	if err != nil {
		t.Fatalf("HashTree(%s): %v", root, err)
	}
	return digest
}

func TestFingerprintMatchesDocumentedEncoding(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"a.txt":     "A",
		"sub/b.txt": "B",
	})

	manifest := fmt.Sprintf("a.txt:%s\nsub/b.txt:%s\n", binhash.Sum([]byte("A")), binhash.Sum([]byte("B")))
	want := binhash.Digest(sha256.Sum256([]byte(manifest)))

	digest, entries, err := HashTree(context.Background(), root, Options{Strict: true})
	if err != nil {
		t.Fatalf("HashTree: %v", err)
	}
	if digest != want {
		t.Errorf("fingerprint = %s, want %s", digest, want)
	}
	if len(entries) != 2 || entries[0].Path != "a.txt" || entries[1].Path != "sub/b.txt" {
		t.Errorf("entries = %v", entries)
	}
}

func TestFingerprintIndependentOfCreationOrderAndParallelism(t *testing.T) {
	files := map[string]string{}
	for index := range 40 {
		files[fmt.Sprintf("dir%d/file%02d.txt", index%5, index)] = strings.Repeat("x", index)
	}

	first := t.TempDir()
	testutil.WriteTree(t, first, files)

	// Create the same files in reverse path order.
	second := t.TempDir()
	for index := 39; index >= 0; index-- {
		relative := fmt.Sprintf("dir%d/file%02d.txt", index%5, index)
		testutil.WriteTree(t, second, map[string]string{relative: files[relative]})
	}

	serial := mustHash(t, first, Options{Strict: true, Parallelism: 1})
	parallel := mustHash(t, second, Options{Strict: true, Parallelism: 16})
	if serial != parallel {
		t.Errorf("fingerprints differ: %s vs %s", serial, parallel)
	}
	if again := mustHash(t, first, Options{Strict: true}); again != serial {
		t.Errorf("repeat hash differs: %s vs %s", again, serial)
	}
}

func TestFingerprintSensitivity(t *testing.T) {
	base := map[string]string{"a.txt": "A", "sub/b.txt": "B"}
	root := t.TempDir()
	testutil.WriteTree(t, root, base)
	original := mustHash(t, root, Options{Strict: true})

	tests := []struct {
		name   string
		mutate func(t *testing.T, root string)
	}{
		{"content change", func(t *testing.T, root string) {
			testutil.WriteTree(t, root, map[string]string{"a.txt": "a"})
		}},
		{"file added", func(t *testing.T, root string) {
			testutil.WriteTree(t, root, map[string]string{"c.txt": ""})
		}},
		{"file removed", func(t *testing.T, root string) {
			if err := os.Remove(filepath.Join(root, "sub", "b.txt")); err != nil {
				t.Fatal(err)
			}
		}},
		{"file renamed", func(t *testing.T, root string) {
			if err := os.Rename(filepath.Join(root, "a.txt"), filepath.Join(root, "z.txt")); err != nil {
				t.Fatal(err)
			}
		}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			copyRoot := t.TempDir()
			testutil.WriteTree(t, copyRoot, base)
			test.mutate(t, copyRoot)
			if mutated := mustHash(t, copyRoot, Options{Strict: true}); mutated == original {
				t.Errorf("fingerprint unchanged after %s", test.name)
			}
		})
	}
}

func TestEmptyAndAbsentRoots(t *testing.T) {
	if got := mustHash(t, t.TempDir(), Options{Strict: true}); got != EmptyFingerprint {
		t.Errorf("empty directory = %s, want %s", got, EmptyFingerprint)
	}
	absent := filepath.Join(t.TempDir(), "never-created")
	if got := mustHash(t, absent, Options{Strict: true}); got != EmptyFingerprint {
		t.Errorf("absent root = %s, want %s", got, EmptyFingerprint)
	}
	if EmptyFingerprint.String() != "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855" {
		t.Errorf("EmptyFingerprint = %s", EmptyFingerprint)
	}
}

func TestRootThatIsAFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, strict := range []bool{true, false} {
		if _, err := Walk(context.Background(), file, Options{Strict: strict}); err == nil {
			t.Errorf("Walk(file, strict=%v) succeeded", strict)
		}
	}
}

func TestSymlinksAreNotFollowed(t *testing.T) {
	outside := t.TempDir()
	testutil.WriteTree(t, outside, map[string]string{"secret.txt": "outside"})

	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{"real.txt": "inside"})
	without := mustHash(t, root, Options{Strict: true})

	if err := os.Symlink(filepath.Join(outside, "secret.txt"), filepath.Join(root, "link.txt")); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(outside, filepath.Join(root, "linkdir")); err != nil {
		t.Fatal(err)
	}

	entries, err := Walk(context.Background(), root, Options{Strict: true})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(entries) != 1 || entries[0].Path != "real.txt" {
		t.Errorf("entries = %v, want only real.txt", entries)
	}
	if with := Fingerprint(entries); with != without {
		t.Errorf("symlinks changed the fingerprint")
	}
}

func TestSymlinkedRootIsWalked(t *testing.T) {
	target := t.TempDir()
	testutil.WriteTree(t, target, map[string]string{"a.txt": "A", "sub/b.txt": "B"})
	link := filepath.Join(t.TempDir(), "workspace")
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}

	direct, directEntries, err := HashTree(context.Background(), target, Options{Strict: true})
	if err != nil {
		t.Fatal(err)
	}
	linked, linkedEntries, err := HashTree(context.Background(), link, Options{Strict: true})
	if err != nil {
		t.Fatalf("HashTree(symlink): %v", err)
	}
	if len(linkedEntries) != 2 || len(directEntries) != 2 {
		t.Fatalf("entries = %v via link, %v direct; want 2 each", linkedEntries, directEntries)
	}
	if linked != direct {
		t.Errorf("fingerprint via link = %s, want %s", linked, direct)
	}
	if linked == EmptyFingerprint {
		t.Error("symlinked root hashed as an empty tree")
	}
}

func TestExclude(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		".attestation.json":     "{}",
		"sub/.attestation.json": "{}",
		"report.txt":            "ok",
	})
	entries, err := Walk(context.Background(), root, Options{
		Exclude: func(relative string) bool { return relative == ".attestation.json" },
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	var paths []string
	for _, entry := range entries {
		paths = append(paths, entry.Path)
	}
	if strings.Join(paths, ",") != "report.txt,sub/.attestation.json" {
		t.Errorf("paths = %v", paths)
	}
}

func TestUnreadableFileStrictVersusLenient(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{"good.txt": "ok", "bad.txt": "unreadable"})

	original := hashFile
	hashFile = func(path string) (binhash.Digest, error) {
		if filepath.Base(path) == "bad.txt" {
			return binhash.Digest{}, os.ErrPermission
		}
		return original(path)
	}
	t.Cleanup(func() { hashFile = original })

	_, err := Walk(context.Background(), root, Options{Strict: true})
	if !errors.Is(err, os.ErrPermission) {
		t.Errorf("strict walk error = %v, want permission error", err)
	}
	if err != nil && !strings.Contains(err.Error(), "bad.txt") {
		t.Errorf("strict walk error %q does not name the file", err)
	}

	entries, err := Walk(context.Background(), root, Options{})
	if err != nil {
		t.Fatalf("lenient walk: %v", err)
	}
	if len(entries) != 1 || entries[0].Path != "good.txt" {
		t.Errorf("lenient entries = %v, want only good.txt", entries)
	}
}

func TestWalkHonorsCancellation(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{"a": "a", "b": "b"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Walk(ctx, root, Options{Strict: true}); !errors.Is(err, context.Canceled) {
		t.Errorf("Walk with cancelled context = %v, want context.Canceled", err)
	}
}
