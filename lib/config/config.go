// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the environment variable holding the
// config file path.
const EnvironmentVariable = "RDV_CONFIG"

// Defaults for a standard tool container image.
const (
	DefaultManifestPath    = "/tool-manifest.json"
	DefaultAttestationName = ".attestation.json"
	DefaultProbeName       = ".rdv-write-test"
	DefaultBuilderPrefix   = "rdv"
	DefaultLogLevel        = "info"
)

// DefaultToolCandidates is the ordered list of locations checked for
// the wrapped tool's entry point.
var DefaultToolCandidates = []string{"/tool", "/tool.bin"}

// Config is the supervisor configuration.
type Config struct {
	// Entrypoint configures the fixed I/O contract locations.
	Entrypoint EntrypointConfig `yaml:"entrypoint"`

	// Hashing configures the tree hasher.
	Hashing HashingConfig `yaml:"hashing"`

	// Logging configures the structured logger.
	Logging LoggingConfig `yaml:"logging"`
}

// EntrypointConfig configures where the supervisor looks for things
// and what it names the files it creates.
type EntrypointConfig struct {
	// ToolCandidates is checked in order; the first existing
	// non-directory entry is executed.
	// Default: /tool, /tool.bin
	ToolCandidates []string `yaml:"tool_candidates"`

	// ManifestPath is the tool's self-description file.
	// Default: /tool-manifest.json
	ManifestPath string `yaml:"manifest_path"`

	// AttestationName is the reserved file name written at the output
	// root. It is never listed as a product.
	// Default: .attestation.json
	AttestationName string `yaml:"attestation_name"`

	// ProbeName is the file created and removed to prove the output
	// mount is writable.
	// Default: .rdv-write-test
	ProbeName string `yaml:"probe_name"`

	// BuilderPrefix forms the attestation builder id
	// "<prefix>-<trust_level>".
	// Default: rdv
	BuilderPrefix string `yaml:"builder_prefix"`
}

// HashingConfig configures file hashing.
type HashingConfig struct {
	// Parallelism bounds concurrent file hashes. Zero selects the
	// number of CPUs.
	Parallelism int `yaml:"parallelism"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	candidates := make([]string, len(DefaultToolCandidates))
	copy(candidates, DefaultToolCandidates)

	return &Config{
		Entrypoint: EntrypointConfig{
			ToolCandidates:  candidates,
			ManifestPath:    DefaultManifestPath,
			AttestationName: DefaultAttestationName,
			ProbeName:       DefaultProbeName,
			BuilderPrefix:   DefaultBuilderPrefix,
		},
		Logging: LoggingConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Load returns the configuration selected by RDV_CONFIG, read through
// getenv. When the variable is unset or empty the defaults are
// returned.
func Load(getenv func(string) string) (*Config, error) {
	path := getenv(EnvironmentVariable)
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path, getenv)
}

// LoadFile loads configuration from path on top of the defaults,
// expands variables, and validates the result.
func LoadFile(path string, getenv func(string) string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.expandVariables(getenv)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in path
// values.
func (c *Config) expandVariables(getenv func(string) string) {
	c.Entrypoint.ManifestPath = expandVars(c.Entrypoint.ManifestPath, getenv)
	for index, candidate := range c.Entrypoint.ToolCandidates {
		c.Entrypoint.ToolCandidates[index] = expandVars(candidate, getenv)
	}
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, getenv func(string) string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		if value := getenv(parts[1]); value != "" {
			return value
		}
		if len(parts) >= 3 {
			return parts[2]
		}
		return ""
	})
}

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Entrypoint.ToolCandidates) == 0 {
		errs = append(errs, fmt.Errorf("entrypoint.tool_candidates must not be empty"))
	}
	for _, candidate := range c.Entrypoint.ToolCandidates {
		if !filepath.IsAbs(candidate) {
			errs = append(errs, fmt.Errorf("entrypoint.tool_candidates: %q is not an absolute path", candidate))
		}
	}
	if c.Entrypoint.ManifestPath == "" {
		errs = append(errs, fmt.Errorf("entrypoint.manifest_path is required"))
	}
	if err := validateBaseName("entrypoint.attestation_name", c.Entrypoint.AttestationName); err != nil {
		errs = append(errs, err)
	}
	if err := validateBaseName("entrypoint.probe_name", c.Entrypoint.ProbeName); err != nil {
		errs = append(errs, err)
	}
	if c.Entrypoint.ProbeName != "" && c.Entrypoint.ProbeName == c.Entrypoint.AttestationName {
		errs = append(errs, fmt.Errorf("entrypoint.probe_name must differ from entrypoint.attestation_name"))
	}
	if strings.TrimSpace(c.Entrypoint.BuilderPrefix) == "" {
		errs = append(errs, fmt.Errorf("entrypoint.builder_prefix is required"))
	}
	if c.Hashing.Parallelism < 0 {
		errs = append(errs, fmt.Errorf("hashing.parallelism must not be negative, got %d", c.Hashing.Parallelism))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level))
	}

	return errors.Join(errs...)
}

// validateBaseName requires a plain file name with no directory part.
func validateBaseName(field, name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%s is required", field)
	case name == "." || name == "..":
		return fmt.Errorf("%s: %q is not a file name", field, name)
	case strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator):
		return fmt.Errorf("%s: %q must not contain a path separator", field, name)
	}
	return nil
}
