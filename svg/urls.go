// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svg

import "strings"

// NameFromURL returns just the name referred to in a url(#name)
// if it is not a url(#) format then returns empty string.
func NameFromURL(url string) string {
	url = strings.TrimSpace(url)
	if len(url) < 7 {
		return ""
	}
	if url[:5] != "url(#" {
		return ""
	}
	ref := url[5:]
	sz := len(ref)
	if ref[sz-1] == ')' {
		ref = ref[:sz-1]
	}
	return strings.Trim(ref, `"' `)
}

// NameToURL returns url as: url(#name)
func NameToURL(nm string) string {
	return "url(#" + nm + ")"
}

// FindNamedElement returns the element with the given id, or nil.
func (sv *SVG) FindNamedElement(id string) *Node {
	return sv.ids[id]
}

// FindURL finds the element referred to by a url(#name) reference,
// a #name href, or a plain name. Returns nil if not found or "none".
func (sv *SVG) FindURL(url string) *Node {
	url = strings.TrimSpace(url)
	if url == "" || url == "none" {
		return nil
	}
	if ref := NameFromURL(url); ref != "" {
		return sv.ids[ref]
	}
	return sv.ids[strings.TrimPrefix(url, "#")]
}
