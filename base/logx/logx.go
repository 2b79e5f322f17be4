// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx sets up the default structured logger.
// All packages log through [log/slog]; this package installs
// a handler that writes human-readable, optionally colored lines.
package logx

import (
	"io"
	"log/slog"

	charmlog "github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// UserLevel is the verbosity [slog.Level] that the user has selected for
// what logging and printing messages should be shown. Messages at
// levels at or above this level will be shown. The default user
// verbosity level is [slog.LevelWarn], so that recovered parse
// problems are visible but progress messages are not.
var UserLevel = slog.LevelWarn

// LevelFromFlags returns the [slog.Level] object corresponding to the given
// user flag options. The flags correspond to the following values:
//   - vv: [slog.LevelDebug]
//   - v: [slog.LevelInfo]
//   - q: [slog.LevelError]
//   - (default: [slog.LevelWarn])
//
// The flags are evaluated in that order, so, for example, if both
// vv and q are specified, it will still return [slog.LevelDebug].
func LevelFromFlags(vv, v, q bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// NewLogger returns a new charmbracelet logger writing to w at the given level.
// Timestamps are formatted as "HH:MM:SS.ms" and the color profile is
// taken from the environment of w (NO_COLOR etc are respected).
func NewLogger(w io.Writer, level slog.Level) *charmlog.Logger {
	l := charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           charmlog.Level(level),
	})
	l.SetColorProfile(termenv.NewOutput(w).EnvColorProfile())
	return l
}

// SetDefaultLogger sets the default [slog] logger to write
// to w at the current [UserLevel].
func SetDefaultLogger(w io.Writer) {
	slog.SetDefault(slog.New(NewLogger(w, UserLevel)))
}
