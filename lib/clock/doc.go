// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// The supervisor stamps every attestation with start and finish
// times. Production code takes a [Clock] and uses [Real]; tests use
// [Fake], which only moves when told to, so recorded timestamps are
// exact.
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	started := c.Now()
//	c.Advance(3 * time.Second)
//	finished := c.Now() // started + 3s
package clock
