// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command svgfit computes the tightest viewBox that contains everything
// an SVG document can render across all of its transforms and animations.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cogentcore.org/svgfit/base/fsx"
	"cogentcore.org/svgfit/base/logx"
	"cogentcore.org/svgfit/cmd/svgfit/cmd"
	"cogentcore.org/svgfit/config"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

// defaultConfig is the configuration file used if present and
// no other file is given.
const defaultConfig = "svgfit.toml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRoot().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// flags are the options shared by all commands.
type flags struct {
	config         string
	vv, v, q       bool
	buffer         float32
	samples        int
	workers        int
	format         cmd.Format
	cfg            *config.Config
	bufferSet      bool
	samplesSet     bool
	workersSet     bool
	configExplicit bool
}

func newRoot() *cobra.Command {
	fl := &flags{format: cmd.Text}
	root := &cobra.Command{
		Use:          "svgfit",
		Short:        "svgfit fits the viewBox of SVG documents to their animated content",
		SilenceUsage: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			logx.UserLevel = logx.LevelFromFlags(fl.vv, fl.v, fl.q)
			logx.SetDefaultLogger(os.Stderr)
			pf := c.Flags()
			fl.configExplicit = pf.Changed("config")
			fl.bufferSet = pf.Changed("buffer")
			fl.samplesSet = pf.Changed("samples")
			fl.workersSet = pf.Changed("workers")
			return fl.load()
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&fl.config, "config", "c", defaultConfig, "TOML configuration file (~ is expanded)")
	pf.BoolVar(&fl.vv, "vv", false, "print debug messages")
	pf.BoolVarP(&fl.v, "verbose", "v", false, "print progress messages")
	pf.BoolVarP(&fl.q, "quiet", "q", false, "only print errors")
	pf.Float32VarP(&fl.buffer, "buffer", "b", 0, "margin added around the envelope")
	pf.IntVar(&fl.samples, "samples", 32, "samples per keyframe interval")
	pf.IntVar(&fl.workers, "workers", 0, "elements computed concurrently (0 for all CPUs)")
	pf.VarP(&fl.format, "format", "f", "output format: text, json or yaml")

	root.AddCommand(fitCommand(fl), elementsCommand(fl), serveCommand(fl), configCommand(fl))
	return root
}

// load reads the configuration file and applies the flags over it.
func (fl *flags) load() error {
	fl.cfg = config.Defaults()
	fname, err := homedir.Expand(fl.config)
	if err != nil {
		return err
	}
	fsys, name, err := fsx.DirFS(fname)
	if err != nil {
		return err
	}
	exists, err := fsx.FileExistsFS(fsys, name)
	if err != nil {
		return err
	}
	switch {
	case exists:
		if fl.cfg, err = config.Open(fname); err != nil {
			return err
		}
	case fl.configExplicit:
		return fmt.Errorf("config file %s not found", fname)
	}
	if fl.bufferSet {
		fl.cfg.Buffer = fl.buffer
	}
	if fl.samplesSet {
		fl.cfg.Samples = fl.samples
	}
	if fl.workersSet {
		fl.cfg.Workers = fl.workers
	}
	return fl.cfg.Validate()
}

func fitCommand(fl *flags) *cobra.Command {
	var watch bool
	c := &cobra.Command{
		Use:   "fit FILE|DIR...",
		Short: "Print the fitted viewBox of SVG files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if watch {
				return cmd.Watch(c.Context(), fl.cfg, args, fl.format, c.OutOrStdout())
			}
			return cmd.Fit(c.Context(), fl.cfg, args, fl.format, c.OutOrStdout())
		},
	}
	c.Flags().BoolVarP(&watch, "watch", "w", false, "refit files when they change")
	return c
}

func elementsCommand(fl *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "elements FILE.yaml",
		Short: "Compute the envelope of a YAML element list",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.Elements(c.Context(), fl.cfg, args[0], fl.format, c.OutOrStdout())
		},
	}
}

func serveCommand(fl *flags) *cobra.Command {
	var addr string
	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve envelope computations over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			if c.Flags().Changed("addr") {
				fl.cfg.Server.Addr = addr
			}
			s := &cmd.Server{Config: fl.cfg}
			return s.Serve(c.Context())
		},
	}
	c.Flags().StringVar(&addr, "addr", "localhost:8080", "address to listen on")
	return c
}

func configCommand(fl *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return fl.cfg.Save(c.OutOrStdout())
		},
	}
}
