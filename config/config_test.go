// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cogentcore.org/svgfit/envelope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, float32(0), cfg.Buffer)
	assert.Equal(t, 32, cfg.Samples)
	assert.Equal(t, 16, cfg.FlattenSegments)
	assert.Equal(t, 0, cfg.Workers)
	assert.Equal(t, float32(3), cfg.BlurFactor)
	assert.Equal(t, "localhost:8080", cfg.Server.Addr)
	assert.Equal(t, int64(10<<20), cfg.Server.MaxBody)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, envelope.Options{Samples: 32, Segments: 16, BlurFactor: 3}, cfg.Options())
}

func TestRead(t *testing.T) {
	cfg, err := Read(strings.NewReader(`
buffer = 4.5
samples = 8

[server]
addr = ":9000"
`))
	require.NoError(t, err)
	assert.Equal(t, float32(4.5), cfg.Buffer)
	assert.Equal(t, 8, cfg.Samples)
	assert.Equal(t, 16, cfg.FlattenSegments)
	assert.Equal(t, ":9000", cfg.Server.Addr)
}

func TestReadErrors(t *testing.T) {
	_, err := Read(strings.NewReader(`bufer = 1`))
	assert.Error(t, err)
	_, err = Read(strings.NewReader(`samples = 0`))
	assert.ErrorContains(t, err, "samples")
	_, err = Read(strings.NewReader(`buffer = -1
blur_factor = 0`))
	assert.ErrorContains(t, err, "buffer")
	assert.ErrorContains(t, err, "blur_factor")
}

func TestOpenSave(t *testing.T) {
	cfg := Defaults()
	cfg.Buffer = 2
	cfg.Workers = 3
	var buf bytes.Buffer
	require.NoError(t, cfg.Save(&buf))

	fname := filepath.Join(t.TempDir(), "svgfit.toml")
	require.NoError(t, os.WriteFile(fname, buf.Bytes(), 0o644))
	got, err := Open(fname)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	_, err = Open(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
