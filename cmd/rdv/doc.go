// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

// Rdv is the operator command for inspecting tool runs after the fact.
//
// Usage:
//
//	rdv hash [--strict] [--list] [--parallelism N] <directory>
//	rdv verify [--name .attestation.json] <output-directory>
//	rdv show [--compact] <attestation-file>
//	rdv payload [--diagnose] <attestation-file>
//	rdv version
//
// hash prints the same tree fingerprint the entrypoint records as a
// run's materials. verify re-hashes an output directory and compares
// it with the attestation it contains, exiting 1 on any difference.
// show pretty-prints an attestation when writing to a terminal. payload
// prints the canonical CBOR signing payload of an attestation and its
// BLAKE3 payload digest.
package main
