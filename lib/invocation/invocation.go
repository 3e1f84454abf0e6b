// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

package invocation

import (
	"fmt"
	"strings"
)

// Environment variable names bound by the orchestrator.
const (
	EnvWorkspace    = "TOOL_WORKSPACE"
	EnvOutput       = "TOOL_OUTPUT"
	EnvTrustLevel   = "TOOL_TRUST_LEVEL"
	EnvInvocationID = "TOOL_INVOCATION_ID"
	EnvCache        = "TOOL_CACHE"
	EnvConfig       = "TOOL_CONFIG"
)

// Unknown is used for identity fields that could not be determined.
const Unknown = "unknown"

// TrustLevel is the host's declared assurance tier for a run.
type TrustLevel string

const (
	TrustLocal    TrustLevel = "local"
	TrustAttested TrustLevel = "attested"
	TrustHardened TrustLevel = "hardened"
)

// TrustLevels lists the accepted levels in increasing order of assurance.
var TrustLevels = []TrustLevel{TrustLocal, TrustAttested, TrustHardened}

// Valid reports whether the level is one of [TrustLevels].
func (level TrustLevel) Valid() bool {
	for _, known := range TrustLevels {
		if level == known {
			return true
		}
	}
	return false
}

// ParseTrustLevel accepts exactly the lowercase level names.
func ParseTrustLevel(value string) (TrustLevel, error) {
	level := TrustLevel(value)
	if !level.Valid() {
		return "", fmt.Errorf("trust level %q is not one of local, attested, hardened", value)
	}
	return level, nil
}

// Binding is one required environment variable and the value it had
// at startup. An empty Value means the binding was missing.
type Binding struct {
	Name        string
	Description string
	Value       string
}

// Present reports whether the binding carried a non-blank value.
func (binding Binding) Present() bool {
	return strings.TrimSpace(binding.Value) != ""
}

// Context is the immutable description of one invocation.
type Context struct {
	ToolName    string
	ToolVersion string

	// InvocationID is the orchestrator's identifier, or [Unknown]
	// when the binding was missing.
	InvocationID string

	// TrustLevel is [TrustLocal] when the binding was missing and
	// otherwise the raw value, which may be invalid. Check
	// [TrustLevel.Valid] before relying on it.
	TrustLevel TrustLevel

	WorkspacePath string
	OutputPath    string
	CachePath     string
	ConfigPath    string

	required []Binding
}

// RequiredBindings returns the four required bindings in a fixed
// order, with the values observed at startup.
func (c Context) RequiredBindings() []Binding {
	bindings := make([]Binding, len(c.required))
	copy(bindings, c.required)
	return bindings
}

// FromEnvironment assembles a Context from getenv and a manifest.
// It never fails; absent bindings are visible through
// [Context.RequiredBindings].
func FromEnvironment(getenv func(string) string, manifest Manifest) Context {
	// Identifiers are trimmed; paths are kept exactly as bound.
	lookup := func(name string) string {
		return strings.TrimSpace(getenv(name))
	}

	result := Context{
		ToolName:      manifest.Name,
		ToolVersion:   manifest.Version,
		InvocationID:  lookup(EnvInvocationID),
		TrustLevel:    TrustLevel(lookup(EnvTrustLevel)),
		WorkspacePath: getenv(EnvWorkspace),
		OutputPath:    getenv(EnvOutput),
		CachePath:     getenv(EnvCache),
		ConfigPath:    getenv(EnvConfig),
	}
	result.required = []Binding{
		{Name: EnvWorkspace, Description: "workspace mount", Value: result.WorkspacePath},
		{Name: EnvOutput, Description: "output mount", Value: result.OutputPath},
		{Name: EnvTrustLevel, Description: "trust level", Value: string(result.TrustLevel)},
		{Name: EnvInvocationID, Description: "invocation id", Value: result.InvocationID},
	}

	if result.TrustLevel == "" {
		result.TrustLevel = TrustLocal
	}
	if result.InvocationID == "" {
		result.InvocationID = Unknown
	}
	if result.ToolName == "" {
		result.ToolName = Unknown
	}
	if result.ToolVersion == "" {
		result.ToolVersion = Unknown
	}
	return result
}
