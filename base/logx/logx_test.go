// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFromFlags(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelFromFlags(true, true, true))
	assert.Equal(t, slog.LevelInfo, LevelFromFlags(false, true, true))
	assert.Equal(t, slog.LevelError, LevelFromFlags(false, false, true))
	assert.Equal(t, slog.LevelWarn, LevelFromFlags(false, false, false))
}

func TestSetDefaultLogger(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)
	defer func(l slog.Level) { UserLevel = l }(UserLevel)

	var buf bytes.Buffer
	UserLevel = slog.LevelInfo
	SetDefaultLogger(&buf)
	slog.Debug("hidden message")
	slog.Info("shown message", "element", "rect1")
	out := buf.String()
	assert.Contains(t, out, "shown message")
	assert.Contains(t, out, "rect1")
	assert.NotContains(t, out, "hidden message")
}
