// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"cogentcore.org/svgfit/envelope"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Format is an output format.
type Format string

const (
	// Text is a human-readable report.
	Text Format = "text"

	// JSON is indented JSON.
	JSON Format = "json"

	// YAML is YAML.
	YAML Format = "yaml"
)

// Set implements the pflag Value interface.
func (f *Format) Set(s string) error {
	switch Format(strings.ToLower(s)) {
	case Text, JSON, YAML:
		*f = Format(strings.ToLower(s))
		return nil
	}
	return fmt.Errorf("unknown format %q: must be one of text, json, yaml", s)
}

func (f *Format) String() string { return string(*f) }

// Type implements the pflag Value interface.
func (f *Format) Type() string { return "format" }

var (
	styleFile    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	styleLabel   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleValue   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	styleSavings = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

// WriteReports writes document reports to w in the given format.
func WriteReports(w io.Writer, format Format, reps []*Report) error {
	switch format {
	case JSON:
		return writeJSON(w, reps)
	case YAML:
		return writeYAML(w, reps)
	}
	for _, rep := range reps {
		if _, err := io.WriteString(w, reportText(rep)); err != nil {
			return err
		}
	}
	return nil
}

// WriteResult writes an envelope result to w in the given format.
func WriteResult(w io.Writer, format Format, res *envelope.Result) error {
	switch format {
	case JSON:
		return writeJSON(w, res)
	case YAML:
		return writeYAML(w, res)
	}
	_, err := io.WriteString(w, resultText(res))
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func line(sb *strings.Builder, label, value string) {
	fmt.Fprintf(sb, "  %s %s\n", styleLabel.Render(fmt.Sprintf("%-9s", label)), value)
}

func reportText(rep *Report) string {
	var sb strings.Builder
	name := rep.File
	if name == "" {
		name = "<document>"
	}
	sb.WriteString(styleFile.Render(name) + "\n")
	line(&sb, "viewBox", styleValue.Render(rep.Result.Viewport.ViewBoxString()))
	line(&sb, "original", rep.Original.ViewBoxString())
	if rep.Result.Viewport != (envelope.Rect{}) {
		line(&sb, "savings", styleSavings.Render(fmt.Sprintf("%.1f%%", rep.Savings)))
	}
	sb.WriteString(summary(rep.Result))
	return sb.String()
}

func resultText(res *envelope.Result) string {
	var sb strings.Builder
	line(&sb, "viewBox", styleValue.Render(res.Viewport.ViewBoxString()))
	line(&sb, "envelope", res.Envelope.ViewBoxString())
	sb.WriteString(summary(res))
	for _, er := range res.Elements {
		if er.Excluded != "" {
			fmt.Fprintf(&sb, "    %s %s\n", er.ID, styleLabel.Render("excluded: "+er.Excluded))
			continue
		}
		fmt.Fprintf(&sb, "    %s %s\n", er.ID, er.Box.ViewBoxString())
	}
	return sb.String()
}

// summary returns the element counts of a result.
func summary(res *envelope.Result) string {
	var excluded, animated, skipped int
	for _, er := range res.Elements {
		switch {
		case er.Excluded != "":
			excluded++
		case er.Stats.Poses > 1:
			animated++
		}
		skipped += er.Stats.Skipped
	}
	var sb strings.Builder
	line(&sb, "elements", fmt.Sprintf("%d (%d animated, %d excluded)", len(res.Elements), animated, excluded))
	if skipped > 0 {
		line(&sb, "skipped", styleWarning.Render(fmt.Sprintf("%d animations with unsupported timing", skipped)))
	}
	return sb.String()
}
