// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

package supervisor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/rdv-project/rdv/lib/attestation"
	"github.com/rdv-project/rdv/lib/clock"
	"github.com/rdv-project/rdv/lib/config"
	"github.com/rdv-project/rdv/lib/contract"
	"github.com/rdv-project/rdv/lib/invocation"
	"github.com/rdv-project/rdv/lib/logging"
	"github.com/rdv-project/rdv/lib/process"
	"github.com/rdv-project/rdv/lib/products"
	"github.com/rdv-project/rdv/lib/treehash"
	"github.com/rdv-project/rdv/lib/version"
)

// Environment variables controlling log verbosity. RDV_DEBUG=1 wins
// over RDV_LOG_LEVEL, which wins over the config file.
const (
	EnvLogLevel = "RDV_LOG_LEVEL"
	EnvDebug    = "RDV_DEBUG"
)

// Supervisor holds everything one invocation reads from its process.
// Zero-valued fields fall back to the real process: os.Getenv, the
// standard streams, the wall clock, and os.Stat.
type Supervisor struct {
	// Config overrides loading from RDV_CONFIG when set.
	Config *config.Config

	Getenv func(string) string

	// Args are passed to the tool verbatim.
	Args []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// LogOutput receives the supervisor's JSON log lines. Defaults
	// to Stderr.
	LogOutput io.Writer

	// Env is the tool's environment. Nil inherits the supervisor's.
	Env []string

	Clock clock.Clock

	// Stat is used for binary discovery.
	Stat func(string) (fs.FileInfo, error)

	// ProbeOutput overrides the output writability probe.
	ProbeOutput func(directory, name string) error
}

// Run performs the invocation and returns the process exit code.
func (s *Supervisor) Run(ctx context.Context) int {
	s.applyDefaults()

	cfg, configErr := s.loadConfig()
	manifestPath := config.DefaultManifestPath
	if configErr == nil {
		manifestPath = cfg.Entrypoint.ManifestPath
	}
	manifest, manifestErr := invocation.ReadManifest(manifestPath)
	inv := invocation.FromEnvironment(s.Getenv, manifest)

	levelName := config.DefaultLogLevel
	if configErr == nil {
		levelName = cfg.Logging.Level
	}
	level, levelErr := s.logLevel(levelName)
	logger := logging.New(s.LogOutput, level, inv.ToolName, inv.InvocationID)

	startAttrs := []any{
		"supervisor_version", version.Info(),
		"tool_version", inv.ToolVersion,
		"trust_level", string(inv.TrustLevel),
	}
	if digest, _, err := version.SelfDigest(); err == nil {
		startAttrs = append(startAttrs, "supervisor_sha256", digest)
	}
	logger.Info(fmt.Sprintf("rdv entrypoint starting (attestation format %s)", attestation.SpecVersion), startAttrs...)
	if levelErr != nil {
		logger.Warn("ignoring invalid log level override", "error", levelErr)
	}
	if configErr != nil {
		return s.fail(logger, contract.Wrap(contract.CheckConfig, s.Getenv(config.EnvironmentVariable),
			"supervisor config could not be loaded", configErr))
	}
	switch {
	case errors.Is(manifestErr, fs.ErrNotExist):
		logger.Debug("no tool manifest, identity unknown", "path", manifestPath)
	case manifestErr != nil:
		logger.Warn("tool manifest unreadable, identity unknown", "path", manifestPath, "error", manifestErr)
	}
	if inv.CachePath != "" || inv.ConfigPath != "" {
		logger.Debug("optional bindings", "cache", inv.CachePath, "config", inv.ConfigPath)
	}

	validator := &contract.Validator{
		ProbeName: cfg.Entrypoint.ProbeName,
		Probe:     s.ProbeOutput,
		Logger:    logger,
	}
	if err := validator.Validate(inv); err != nil {
		var violation *contract.ViolationError
		count := 1
		if errors.As(err, &violation) {
			count = len(violation.Violations)
		}
		logger.Error("contract validation failed", "violations", count)
		return contract.ExitCode
	}
	logger.Info("contract validated",
		"workspace", inv.WorkspacePath,
		"output", inv.OutputPath,
	)

	startedAt := s.Clock.Now()

	materials, entries, err := treehash.HashTree(ctx, inv.WorkspacePath, treehash.Options{
		Strict:      true,
		Parallelism: cfg.Hashing.Parallelism,
		Logger:      logger,
	})
	if err != nil {
		return s.fail(logger, contract.Wrap(contract.CheckMaterials, inv.WorkspacePath,
			"workspace materials could not be hashed", err))
	}
	logger.Debug("workspace hashed", "files", len(entries), "fingerprint", materials.String())

	binary, err := process.Discover(cfg.Entrypoint.ToolCandidates, s.Stat)
	if err != nil {
		return s.fail(logger, contract.Wrap(contract.CheckBinary, "", "tool binary unavailable", err))
	}
	if changed, err := process.EnsureExecutable(binary); err != nil {
		logger.Warn("could not make tool binary executable", "path", binary, "error", err)
	} else if changed {
		logger.Debug("added execute permission to tool binary", "path", binary)
	}

	runner := &process.Runner{
		Stdin:  s.Stdin,
		Stdout: s.Stdout,
		Stderr: s.Stderr,
		Env:    s.Env,
		Logger: logger,
	}
	logger.Info("starting tool", "path", binary, "args", len(s.Args))
	status := runner.Run(binary, s.Args)
	finishedAt := s.Clock.Now()
	exitCode := status.ExitCode()
	logStatus(logger, status)

	collector := &products.Collector{
		ReservedName: cfg.Entrypoint.AttestationName,
		Parallelism:  cfg.Hashing.Parallelism,
		Logger:       logger,
	}
	set := collector.Collect(ctx, inv.OutputPath)

	record := attestation.Build(attestation.Input{
		Invocation:    inv,
		BuilderPrefix: cfg.Entrypoint.BuilderPrefix,
		Materials:     materials,
		Products:      set,
		ExitCode:      exitCode,
		StartedAt:     startedAt,
		FinishedAt:    finishedAt,
	})
	path, err := attestation.Write(inv.OutputPath, cfg.Entrypoint.AttestationName, record)
	if err != nil {
		return s.fail(logger, contract.Wrap(contract.CheckAttestation, inv.OutputPath,
			"attestation could not be written", err))
	}
	logger.Info("attestation written", "path", path, "products", len(set))

	logger.Info(fmt.Sprintf("finished with exit code %d", exitCode),
		"exit_code", exitCode,
		"duration", finishedAt.Sub(startedAt).Round(time.Millisecond).String(),
	)
	return exitCode
}

func (s *Supervisor) applyDefaults() {
	if s.Getenv == nil {
		s.Getenv = os.Getenv
	}
	if s.Stdin == nil {
		s.Stdin = os.Stdin
	}
	if s.Stdout == nil {
		s.Stdout = os.Stdout
	}
	if s.Stderr == nil {
		s.Stderr = os.Stderr
	}
	if s.LogOutput == nil {
		s.LogOutput = s.Stderr
	}
	if s.Clock == nil {
		s.Clock = clock.Real()
	}
	if s.Stat == nil {
		s.Stat = os.Stat
	}
}

func (s *Supervisor) loadConfig() (*config.Config, error) {
	if s.Config != nil {
		return s.Config, s.Config.Validate()
	}
	return config.Load(s.Getenv)
}

// logLevel resolves the effective level. An invalid RDV_LOG_LEVEL
// is reported and the configured level is used instead.
func (s *Supervisor) logLevel(configured string) (slog.Level, error) {
	if s.Getenv(EnvDebug) == "1" {
		return slog.LevelDebug, nil
	}
	level, _ := logging.ParseLevel(configured)
	override := s.Getenv(EnvLogLevel)
	if override == "" {
		return level, nil
	}
	overridden, err := logging.ParseLevel(override)
	if err != nil {
		return level, fmt.Errorf("%s: %w", EnvLogLevel, err)
	}
	return overridden, nil
}

// fail logs a contract violation and returns its exit code.
func (s *Supervisor) fail(logger *slog.Logger, violation *contract.ViolationError) int {
	for _, entry := range violation.Violations {
		logger.Error("contract violation: "+entry.Message, "check", entry.Check, "subject", entry.Subject)
	}
	return contract.ExitCode
}

func logStatus(logger *slog.Logger, status process.ExitStatus) {
	switch status.Kind {
	case process.KindSpawnFailed:
		logger.Error("tool could not be started", "reason", status.Reason, "exit_code", status.ExitCode())
	case process.KindSignaled:
		logger.Warn("tool "+status.String(), "exit_code", status.ExitCode())
	default:
		if status.Code == 0 {
			logger.Info("tool exited successfully")
		} else {
			logger.Info("tool "+status.String(), "exit_code", status.Code)
		}
	}
}
