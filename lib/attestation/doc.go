// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

// Package attestation builds, writes, reads, and checks the record the
// supervisor leaves in the output directory after every run that got
// past contract validation.
//
// A [Record] binds a run's inputs (the workspace fingerprint), its
// outputs (every product file with its SHA-256 digest), the tool's
// identity, the trust level, the exit code, and the start and finish
// times. The on-disk form is indented JSON with a fixed field order and
// sorted product keys, so identical runs produce byte-identical files
// apart from the timestamps. Files are written atomically: a reader
// sees either no attestation or a complete one.
//
// Records are unsigned; the signature field is always null. The
// canonical bytes a future signer would sign are available from
// [SigningPayload]: the Core Deterministic CBOR encoding of the record
// with the signature cleared. [PayloadDigest] condenses those bytes
// into a domain-separated BLAKE3 digest.
package attestation
