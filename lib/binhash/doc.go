// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

// Package binhash provides SHA-256 content hashing for files.
//
// Every digest rdv records, per-file product hashes as well as tree
// fingerprints, is a SHA-256 [Digest] rendered as lowercase hex.
//
// The API surface:
//
//   - [HashFile] -- streams a file through SHA-256 with constant
//     memory usage regardless of file size
//   - [HashReader] -- the same for an already-open stream
//   - [Sum] -- digest of an in-memory byte slice
//   - [FormatDigest] / [ParseDigest] -- canonical hex form and back
//
// This package has no dependencies on other rdv packages.
package binhash
