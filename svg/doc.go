// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package svg reads SVG documents into a lightweight element tree and
provides the coordinate system machinery needed to place elements:
viewBox / preserveAspectRatio fitting and the accumulation of ancestor
chains (transforms, nested viewports, and use indirection).

Styles from style sheets, style attributes and presentation attributes
are resolved per element, so that callers can ask for the computed
value of a property with [Node.Property].
*/
package svg
