// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

// Package treehash computes deterministic fingerprints of directory
// trees.
//
// [Walk] lists every regular file under a root with its SHA-256
// content digest, sorted by slash-separated relative path. Symbolic
// links are neither followed nor hashed. [Fingerprint] folds such a
// listing into one digest: the SHA-256 of the concatenation of
//
//	<relative path>:<hex content digest>\n
//
// for each file in order. The fingerprint therefore changes when any
// file's bytes change, when a file is added or removed, and when a
// file is renamed, but not when files are created in a different
// order. An absent root hashes to [EmptyFingerprint].
//
// Files are hashed concurrently; the result does not depend on the
// degree of parallelism or on directory enumeration order.
package treehash
