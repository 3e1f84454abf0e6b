// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

// Package logging builds the supervisor's structured logger.
//
// Every line is one JSON object on the diagnostic stream carrying
// timestamp, level, tool, invocation_id, and message, followed by any
// attributes the call site adds:
//
//	{"timestamp":"2026-10-15T08:00:00.123Z","level":"info","tool":"sbom","invocation_id":"inv-1","message":"contract validated"}
//
// The tool name and invocation id are bound once by [New] into the
// returned *slog.Logger, which is passed explicitly to each component.
// There is no package-level logger.
package logging
