// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides rdv's canonical CBOR encoding.
//
// Attestations are written to disk as JSON, which is what tools and
// humans read. The bytes a signer signs must not depend on whitespace,
// key order, or number formatting, so the signing payload is the same
// record re-encoded as CBOR with Core Deterministic Encoding (RFC 8949
// §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items. Same logical record, identical bytes.
//
// Types carry `json` tags only. fxamacker/cbor reads `json` tags when
// `cbor` tags are absent, so one tag controls field naming for both
// formats.
package codec
