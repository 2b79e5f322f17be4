// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package units supports the CSS length units used in SVG attributes
(px, em, %, mm, etc).

The unit is stored along with a value, and converted into user units
(px) using a Context that holds the reference values: the font size
for em / ex and the reference length for percentages.
See https://developer.mozilla.org/en/docs/Web/CSS/length: 1 px = 1/96 in.
*/
package units

import (
	"fmt"
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
)

// standard conversion factors
const (
	PxPerInch = 96.0
	MmPerInch = 25.4
	CmPerInch = 2.54
	PtPerInch = 72.0
	PcPerInch = 6.0
)

// Units is an enum that represents a unit (px, em, etc)
type Units int32

const (
	// UnitPx = pixels -- 1px = 1/96th of 1in, the SVG user unit.
	// A number without a unit is in px.
	UnitPx Units = iota

	// UnitPct = percentage of the reference length given by the context
	UnitPct

	// UnitEm = font size of the element
	UnitEm

	// UnitEx = x-height of the element's font, taken as 0.5em
	UnitEx

	// UnitRem = font size of the root element
	UnitRem

	// UnitCm = centimeters -- 1cm = 96px/2.54
	UnitCm

	// UnitMm = millimeters -- 1mm = 1/10th of cm
	UnitMm

	// UnitQ = quarter-millimeters -- 1q = 1/40th of cm
	UnitQ

	// UnitIn = inches -- 1in = 2.54cm = 96px
	UnitIn

	// UnitPc = picas -- 1pc = 1/6th of 1in
	UnitPc

	// UnitPt = points -- 1pt = 1/72th of 1in
	UnitPt
)

var UnitNames = [...]string{
	UnitPx:  "px",
	UnitPct: "%",
	UnitEm:  "em",
	UnitEx:  "ex",
	UnitRem: "rem",
	UnitCm:  "cm",
	UnitMm:  "mm",
	UnitQ:   "q",
	UnitIn:  "in",
	UnitPc:  "pc",
	UnitPt:  "pt",
}

func (u Units) String() string {
	if u >= 0 && int(u) < len(UnitNames) {
		return UnitNames[u]
	}
	return fmt.Sprintf("Units(%d)", u)
}

// Context holds the reference values needed to convert relative units.
type Context struct {

	// FontSize is the font size of the element, in px.
	FontSize float32

	// RootFontSize is the font size of the root element, in px.
	RootFontSize float32

	// Ref is the length that 100% refers to, in px.
	Ref float32
}

// Defaults sets the font sizes to the CSS default of 16px.
func (uc *Context) Defaults() {
	uc.FontSize = 16
	uc.RootFontSize = 16
}

// Value is a length with its unit.
type Value struct {
	Val float32
	Un  Units
}

// New returns a new value with the given unit.
func New(val float32, un Units) Value {
	return Value{Val: val, Un: un}
}

// Px returns a new px value.
func Px(val float32) Value {
	return Value{Val: val, Un: UnitPx}
}

func (v Value) String() string {
	return fmt.Sprintf("%g%s", v.Val, v.Un)
}

// SetString sets the value from a CSS length such as "12.5mm" or "50%".
func (v *Value) SetString(str string) error {
	b := []byte(strings.TrimSpace(str))
	f, n := strconv.ParseFloat(b)
	if n == 0 {
		return fmt.Errorf("units: %q is not a length", str)
	}
	us := strings.ToLower(strings.TrimSpace(string(b[n:])))
	v.Val = float32(f)
	v.Un = UnitPx
	if us == "" {
		return nil
	}
	for u, nm := range UnitNames {
		if nm == us {
			v.Un = Units(u)
			return nil
		}
	}
	return fmt.Errorf("units: unknown unit %q in %q", us, str)
}

// StringToValue converts a string to a value, as px if it cannot be parsed.
func StringToValue(str string) Value {
	var v Value
	if err := v.SetString(str); err != nil {
		v.Un = UnitPx
	}
	return v
}

// ToPx converts the value into px using the given context.
func (v Value) ToPx(uc *Context) float32 {
	switch v.Un {
	case UnitPct:
		return uc.Ref * v.Val / 100
	case UnitEm:
		return uc.FontSize * v.Val
	case UnitEx:
		return 0.5 * uc.FontSize * v.Val
	case UnitRem:
		return uc.RootFontSize * v.Val
	case UnitCm:
		return v.Val * PxPerInch / CmPerInch
	case UnitMm:
		return v.Val * PxPerInch / MmPerInch
	case UnitQ:
		return v.Val * PxPerInch / (4 * MmPerInch)
	case UnitIn:
		return v.Val * PxPerInch
	case UnitPc:
		return v.Val * PxPerInch / PcPerInch
	case UnitPt:
		return v.Val * PxPerInch / PtPerInch
	}
	return v.Val
}
