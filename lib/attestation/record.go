// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

package attestation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rdv-project/rdv/lib/binhash"
	"github.com/rdv-project/rdv/lib/invocation"
	"github.com/rdv-project/rdv/lib/products"
)

// SpecVersion is the record format version written by this package.
const SpecVersion = "0.1"

// Record is one attestation. Field order here is the field order on
// disk.
type Record struct {
	SpecVersion  string       `json:"spec_version"`
	InvocationID string       `json:"invocation_id"`
	Tool         Tool         `json:"tool"`
	Builder      Builder      `json:"builder"`
	Materials    Materials    `json:"materials"`
	Products     products.Set `json:"products"`
	ExitCode     int          `json:"exit_code"`
	StartedAt    string       `json:"started_at"`
	FinishedAt   string       `json:"finished_at"`

	// Signature is reserved for a detached signature over
	// [SigningPayload]. It is always nil in records written here.
	Signature *string `json:"signature"`
}

type Tool struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type Builder struct {
	ID         string `json:"id"`
	TrustLevel string `json:"trust_level"`
}

type Materials struct {
	// Workspace is the hex tree fingerprint of the workspace mount,
	// taken before the tool started.
	Workspace string `json:"workspace"`
}

// Input is everything needed to build a record.
type Input struct {
	Invocation    invocation.Context
	BuilderPrefix string
	Materials     binhash.Digest
	Products      products.Set
	ExitCode      int
	StartedAt     time.Time
	FinishedAt    time.Time
}

// BuilderID names the builder as "<prefix>-<trust level>".
func BuilderID(prefix string, trust invocation.TrustLevel) string {
	return prefix + "-" + string(trust)
}

// FormatTimestamp renders t as RFC 3339 in UTC with fractional seconds.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// Build assembles a record. A finish time earlier than the start time
// is clamped to the start time.
func Build(input Input) *Record {
	finished := input.FinishedAt
	if finished.Before(input.StartedAt) {
		finished = input.StartedAt
	}
	set := input.Products
	if set == nil {
		set = products.Set{}
	}
	return &Record{
		SpecVersion:  SpecVersion,
		InvocationID: input.Invocation.InvocationID,
		Tool: Tool{
			Name:    input.Invocation.ToolName,
			Version: input.Invocation.ToolVersion,
		},
		Builder: Builder{
			ID:         BuilderID(input.BuilderPrefix, input.Invocation.TrustLevel),
			TrustLevel: string(input.Invocation.TrustLevel),
		},
		Materials:  Materials{Workspace: input.Materials.String()},
		Products:   set,
		ExitCode:   input.ExitCode,
		StartedAt:  FormatTimestamp(input.StartedAt),
		FinishedAt: FormatTimestamp(finished),
	}
}

// Marshal renders the record in its on-disk form: two-space indented
// JSON followed by a newline.
func Marshal(record *Record) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(record); err != nil {
		return nil, fmt.Errorf("encoding attestation: %w", err)
	}
	return buffer.Bytes(), nil
}

// Parse decodes an attestation. Unknown fields are ignored; a record
// without spec_version is rejected.
func Parse(data []byte) (*Record, error) {
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decoding attestation: %w", err)
	}
	if record.SpecVersion == "" {
		return nil, fmt.Errorf("decoding attestation: missing spec_version")
	}
	if record.Products == nil {
		record.Products = products.Set{}
	}
	return &record, nil
}

// Read loads the attestation at path.
func Read(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	record, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return record, nil
}
