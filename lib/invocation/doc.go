// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

// Package invocation describes one run of a tool container: who the
// tool is, where its mounts are, and how much the host trusts the run.
//
// A [Context] is assembled once at startup from the process
// environment and the image's tool manifest, and is read-only from
// then on. Missing required bindings are recorded, not rejected here;
// the contract package decides whether the run may proceed.
//
// The environment bindings are:
//
//	TOOL_WORKSPACE      input directory, hashed as the run's materials
//	TOOL_OUTPUT         output directory, collected as the run's products
//	TOOL_TRUST_LEVEL    local, attested, or hardened
//	TOOL_INVOCATION_ID  opaque identifier assigned by the orchestrator
//	TOOL_CACHE          optional cache mount, not validated
//	TOOL_CONFIG         optional tool configuration path, passed through
package invocation
