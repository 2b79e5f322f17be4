// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svg

import (
	"log/slog"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// applyStyleSheets parses the content of every style element and
// records the matching declarations on each element.
func (sv *SVG) applyStyleSheets() {
	var sheets []*css.Stylesheet
	sv.Root.Walk(func(nd *Node) bool {
		if nd.Name != "style" {
			return true
		}
		ss, err := parser.Parse(nd.Text)
		if err != nil {
			slog.Warn("svg: ignoring style sheet", "err", err)
			return false
		}
		sheets = append(sheets, ss)
		return false
	})
	for _, ss := range sheets {
		for _, r := range ss.Rules {
			if r.Kind == css.AtRule {
				continue // not supported
			}
			for _, sel := range r.Selectors {
				ms, ok := parseSelector(sel)
				if !ok {
					slog.Debug("svg: unsupported selector", "selector", sel)
					continue
				}
				sv.Root.Walk(func(nd *Node) bool {
					if !ms.matches(nd) {
						return true
					}
					if nd.sheet == nil {
						nd.sheet = map[string]sheetDecl{}
					}
					for _, d := range r.Declarations {
						old, has := nd.sheet[d.Property]
						if has && old.specificity > ms.specificity {
							continue
						}
						nd.sheet[d.Property] = sheetDecl{d.Value, ms.specificity}
					}
					return true
				})
			}
		}
	}
}

// simpleSelector is a compound selector of the form
// element#id.class1.class2, any part of which may be omitted.
type simpleSelector struct {
	element     string
	id          string
	classes     []string
	specificity int
}

// parseSelector parses a simple selector. Combinators, attribute
// selectors and pseudo classes are not supported.
func parseSelector(sel string) (simpleSelector, bool) {
	sel = strings.TrimSpace(sel)
	var ms simpleSelector
	if sel == "" || strings.ContainsAny(sel, " >+~[:") {
		return ms, false
	}
	i := strings.IndexAny(sel, "#.")
	if i < 0 {
		i = len(sel)
	}
	ms.element = sel[:i]
	if ms.element == "*" {
		ms.element = ""
	} else if ms.element != "" {
		ms.specificity++
	}
	rest := sel[i:]
	for len(rest) > 0 {
		kind := rest[0]
		rest = rest[1:]
		j := strings.IndexAny(rest, "#.")
		if j < 0 {
			j = len(rest)
		}
		name := rest[:j]
		rest = rest[j:]
		if name == "" {
			return ms, false
		}
		if kind == '#' {
			ms.id = name
			ms.specificity += 100
		} else {
			ms.classes = append(ms.classes, name)
			ms.specificity += 10
		}
	}
	return ms, true
}

func (ms simpleSelector) matches(nd *Node) bool {
	if ms.element != "" && ms.element != nd.Name {
		return false
	}
	if ms.id != "" && ms.id != nd.ID {
		return false
	}
	for _, c := range ms.classes {
		if !nd.HasClass(c) {
			return false
		}
	}
	return true
}
