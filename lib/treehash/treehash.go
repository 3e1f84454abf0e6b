// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

package treehash

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/rdv-project/rdv/lib/binhash"
)

// EmptyFingerprint is the fingerprint of a tree with no regular files,
// and of a root that does not exist.
var EmptyFingerprint = binhash.Digest(sha256.Sum256(nil))

// hashFile is replaced in tests to simulate unreadable files.
var hashFile = binhash.HashFile

// Entry is one regular file in a tree.
type Entry struct {
	// Path is relative to the root and always uses forward slashes.
	Path   string
	Digest binhash.Digest
}

// Options controls a walk.
type Options struct {
	// Strict makes any unreadable file or directory fail the walk.
	// Otherwise the problem is logged at warn level and the entry is
	// left out of the result.
	Strict bool

	// Parallelism bounds concurrent file hashing. Zero or negative
	// uses the number of CPUs.
	Parallelism int

	// Exclude, when set, drops files whose relative path it accepts.
	Exclude func(relativePath string) bool

	// Logger receives skipped-entry warnings and debug detail. Nil
	// discards.
	Logger *slog.Logger
}

type candidate struct {
	relative string
	absolute string
}

// Walk hashes every regular file under root and returns the entries
// sorted by Path. A root that does not exist yields no entries and no
// error; a root that exists but is not a directory is an error in
// both modes. A symlinked root is resolved before walking.
func Walk(ctx context.Context, root string, options Options) ([]Entry, error) {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	info, err := os.Stat(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("inspecting %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	// A root that is itself a symlink is walked as the directory it
	// names; links below the root are still not followed.
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", root, err)
	}
	root = resolved

	var candidates []candidate
	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root || options.Strict {
				return fmt.Errorf("reading %s: %w", path, walkErr)
			}
			logger.Warn("skipping unreadable entry", "path", path, "error", walkErr)
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			return nil
		}
		if !entry.Type().IsRegular() {
			logger.Debug("skipping non-regular file", "path", path, "type", entry.Type().String())
			return nil
		}

		relative, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		relative = filepath.ToSlash(relative)
		if options.Exclude != nil && options.Exclude(relative) {
			return nil
		}
		candidates = append(candidates, candidate{relative: relative, absolute: path})
		return nil
	})
	if err != nil {
		return nil, err
	}

	digests := make([]binhash.Digest, len(candidates))
	hashed := make([]bool, len(candidates))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(parallelism(options.Parallelism))
	for index, file := range candidates {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			digest, err := hashFile(file.absolute)
			if err != nil {
				if options.Strict {
					return fmt.Errorf("hashing %s: %w", file.relative, err)
				}
				logger.Warn("skipping unreadable file", "path", file.relative, "error", err)
				return nil
			}
			digests[index] = digest
			hashed[index] = true
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(candidates))
	for index, file := range candidates {
		if hashed[index] {
			entries = append(entries, Entry{Path: file.relative, Digest: digests[index]})
		}
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Path, b.Path)
	})
	return entries, nil
}

// Fingerprint folds sorted entries into a single digest.
func Fingerprint(entries []Entry) binhash.Digest {
	hasher := sha256.New()
	for _, entry := range entries {
		fmt.Fprintf(hasher, "%s:%s\n", entry.Path, entry.Digest)
	}
	var digest binhash.Digest
	copy(digest[:], hasher.Sum(nil))
	return digest
}

// HashTree walks root and returns its fingerprint along with the
// entries that produced it.
func HashTree(ctx context.Context, root string, options Options) (binhash.Digest, []Entry, error) {
	entries, err := Walk(ctx, root, options)
	if err != nil {
		return binhash.Digest{}, nil, err
	}
	return Fingerprint(entries), entries, nil
}

func parallelism(requested int) int {
	if requested > 0 {
		return requested
	}
	return runtime.NumCPU()
}
