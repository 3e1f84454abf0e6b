// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

// Package products inventories the files a tool left in its output
// directory.
//
// Collection runs after the tool exits, whatever its exit status, and
// never fails: unreadable files are logged and left out. The reserved
// attestation file at the top of the output directory is excluded so
// that a previous run's record never attests itself.
package products
