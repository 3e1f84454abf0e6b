// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// Field names written on every line.
const (
	TimestampKey    = "timestamp"
	LevelKey        = "level"
	MessageKey      = "message"
	ToolKey         = "tool"
	InvocationIDKey = "invocation_id"
)

// New returns a logger writing JSON lines to output at or above level,
// with the tool name and invocation id attached to every line.
func New(output io.Writer, level slog.Leveler, tool, invocationID string) *slog.Logger {
	handler := slog.NewJSONHandler(droppingWriter{output}, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceAttr,
	})
	return slog.New(handler).With(ToolKey, tool, InvocationIDKey, invocationID)
}

// droppingWriter reports every write as successful. A diagnostic
// stream that fails must not affect the run it describes.
type droppingWriter struct {
	output io.Writer
}

func (w droppingWriter) Write(data []byte) (int, error) {
	w.output.Write(data)
	return len(data), nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel maps a severity name (debug, info, warn, error) to a
// slog level. Matching is case-insensitive; "warning" is accepted as
// an alias for warn.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug, info, warn, or error)", name)
}

// replaceAttr renames slog's built-in keys and normalizes their values
// for the top-level record only; nested groups are left alone.
func replaceAttr(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return attr
	}
	switch attr.Key {
	case slog.TimeKey:
		return slog.String(TimestampKey, attr.Value.Time().UTC().Format(time.RFC3339Nano))
	case slog.LevelKey:
		level, ok := attr.Value.Any().(slog.Level)
		if !ok {
			return slog.String(LevelKey, strings.ToLower(attr.Value.String()))
		}
		return slog.String(LevelKey, levelName(level))
	case slog.MessageKey:
		return slog.String(MessageKey, attr.Value.String())
	}
	return attr
}

// levelName renders a level as one of the four severities. Levels
// between the named ones round down to the nearest named severity.
func levelName(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "error"
	case level >= slog.LevelWarn:
		return "warn"
	case level >= slog.LevelInfo:
		return "info"
	default:
		return "debug"
	}
}
