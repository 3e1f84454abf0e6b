// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"strings"
	"testing"
)

func TestInfoMarksDirtyBuilds(t *testing.T) {
	savedCommit, savedDirty := GitCommit, GitDirty
	t.Cleanup(func() { GitCommit, GitDirty = savedCommit, savedDirty })

	GitCommit = "abc1234"
	GitDirty = "true"
	if info := Info(); !strings.Contains(info, "abc1234-dirty") {
		t.Errorf("Info() = %q, want dirty marker", info)
	}

	GitDirty = "false"
	if info := Info(); strings.Contains(info, "-dirty") {
		t.Errorf("Info() = %q, want no dirty marker", info)
	}
}

func TestSelfDigest(t *testing.T) {
	digest, path, err := SelfDigest()
	if err != nil {
		t.Fatalf("SelfDigest: %v", err)
	}
	if path == "" {
		t.Error("SelfDigest returned empty binary path")
	}
	if len(digest) != 64 {
		t.Errorf("SelfDigest digest length = %d, want 64", len(digest))
	}
}
