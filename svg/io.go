// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svg

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"cogentcore.org/svgfit/base/errors"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html/charset"
)

// SVG is a parsed SVG document.
type SVG struct {

	// Root is the outermost svg element.
	Root *Node

	// Filename is the file the document was read from, if any.
	Filename string

	ids map[string]*Node
}

// errNoRoot is returned for documents without an svg element.
var errNoRoot = errors.New("svg: no svg element found")

// OpenXML opens XML-formatted SVG input from given file.
func OpenXML(fname string) (*SVG, error) {
	fi, err := os.Stat(fname)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("svg.OpenXML: file is a directory: %v", fname)
	}
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	sv, err := ReadXML(bufio.NewReader(fp))
	if sv != nil {
		sv.Filename = fname
	}
	return sv, err
}

// OpenFS opens XML-formatted SVG input from given file, filesystem FS.
func OpenFS(fsys fs.FS, fname string) (*SVG, error) {
	fp, err := fsys.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	sv, err := ReadXML(bufio.NewReader(fp))
	if sv != nil {
		sv.Filename = fname
	}
	return sv, err
}

// ReadXML reads XML-formatted SVG input from io.Reader, and uses
// xml.Decoder to build the element tree. Content before the first
// svg element is skipped. Style sheets in style elements are applied
// to the tree. To process a byte slice, pass: bytes.NewReader([]byte(str)).
func ReadXML(reader io.Reader) (*SVG, error) {
	decoder := xml.NewDecoder(reader)
	decoder.Strict = false
	decoder.AutoClose = xml.HTMLAutoClose
	decoder.Entity = xml.HTMLEntity
	decoder.CharsetReader = charset.NewReaderLabel

	sv := &SVG{ids: map[string]*Node{}}
	var cur *Node
	for {
		t, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("svg: parsing error: %w", err)
		}
		switch se := t.(type) {
		case xml.StartElement:
			if cur == nil && sv.Root != nil {
				continue // content after the root element
			}
			if cur == nil && se.Name.Local != "svg" {
				continue
			}
			nd := sv.newNode(se, cur)
			if cur == nil {
				sv.Root = nd
			} else {
				cur.Children = append(cur.Children, nd)
			}
			cur = nd
		case xml.EndElement:
			if cur != nil && se.Name.Local == cur.Name {
				cur = cur.Parent
			}
		case xml.CharData:
			if cur != nil {
				cur.Text += string(se)
			}
		}
	}
	if sv.Root == nil {
		return nil, errNoRoot
	}
	sv.applyStyleSheets()
	return sv, nil
}

// newNode makes a node from the start element, registering its id.
func (sv *SVG) newNode(se xml.StartElement, parent *Node) *Node {
	nd := &Node{Name: se.Name.Local, Parent: parent, Attrs: make(map[string]string, len(se.Attr))}
	for _, attr := range se.Attr {
		nm := attr.Name.Local
		switch nm {
		case "id":
			nd.ID = attr.Value
			if _, has := sv.ids[nd.ID]; !has {
				sv.ids[nd.ID] = nd
			}
		case "class":
			nd.Class = strings.Fields(attr.Value)
		case "style":
			decls, err := parser.ParseDeclarations(attr.Value)
			if err != nil {
				slog.Warn("svg: ignoring style attribute", "element", se.Name.Local, "err", err)
				break
			}
			nd.style = make(map[string]string, len(decls))
			for _, d := range decls {
				nd.style[d.Property] = d.Value
			}
		}
		if attr.Name.Space == "xmlns" || nm == "xmlns" {
			continue
		}
		// href wins over the deprecated xlink:href
		if nm == "href" && attr.Name.Space == "" {
			nd.Attrs[nm] = attr.Value
			continue
		}
		if _, has := nd.Attrs[nm]; !has || nm != "href" {
			nd.Attrs[nm] = attr.Value
		}
	}
	return nd
}
