// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration of the envelope
// computation, read from TOML files with defaults from struct tags.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"cogentcore.org/svgfit/base/errors"
	"cogentcore.org/svgfit/base/reflectx"
	"cogentcore.org/svgfit/envelope"
	"github.com/pelletier/go-toml/v2"
)

// Config is the configuration of the envelope computation.
type Config struct {

	// Buffer is the margin added around the envelope to make the viewport.
	Buffer float32 `toml:"buffer" default:"0"`

	// Samples is the number of samples per keyframe interval
	// of a continuous animation.
	Samples int `toml:"samples" default:"32"`

	// FlattenSegments is the number of line segments each curve
	// is flattened into for bounds and motion paths.
	FlattenSegments int `toml:"flatten_segments" default:"16"`

	// Workers is the number of elements computed concurrently;
	// 0 uses GOMAXPROCS.
	Workers int `toml:"workers" default:"0"`

	// BlurFactor is the number of standard deviations a blur
	// extends past its input.
	BlurFactor float32 `toml:"blur_factor" default:"3"`

	// Server is the configuration of the HTTP server.
	Server Server `toml:"server"`
}

// Server is the configuration of the HTTP server.
type Server struct {

	// Addr is the address to listen on.
	Addr string `toml:"addr" default:"localhost:8080"`

	// MaxBody is the largest request body accepted, in bytes.
	MaxBody int64 `toml:"max_body" default:"10485760"`
}

// Defaults returns the default configuration.
func Defaults() *Config {
	cfg := &Config{}
	errors.Log(reflectx.SetFromDefaultTags(cfg))
	return cfg
}

// Open returns the default configuration overridden by the
// values in the given TOML file.
func Open(fname string) (*Config, error) {
	b, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	cfg, err := Read(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", fname, err)
	}
	return cfg, nil
}

// Read returns the default configuration overridden by the
// TOML values read from r. Unknown keys are an error.
func Read(r io.Reader) (*Config, error) {
	cfg := Defaults()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// Validate returns an error for settings out of range.
func (c *Config) Validate() error {
	var errs []error
	if c.Buffer < 0 {
		errs = append(errs, fmt.Errorf("buffer must not be negative, is %g", c.Buffer))
	}
	if c.Samples < 1 {
		errs = append(errs, fmt.Errorf("samples must be at least 1, is %d", c.Samples))
	}
	if c.FlattenSegments < 1 {
		errs = append(errs, fmt.Errorf("flatten_segments must be at least 1, is %d", c.FlattenSegments))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, is %d", c.Workers))
	}
	if c.BlurFactor <= 0 {
		errs = append(errs, fmt.Errorf("blur_factor must be positive, is %g", c.BlurFactor))
	}
	return errors.Join(errs...)
}

// Options returns the envelope options for the configuration.
func (c *Config) Options() envelope.Options {
	return envelope.Options{
		Buffer:     c.Buffer,
		Samples:    c.Samples,
		Segments:   c.FlattenSegments,
		Workers:    c.Workers,
		BlurFactor: c.BlurFactor,
	}
}

// Save writes the configuration as TOML.
func (c *Config) Save(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(c)
}
