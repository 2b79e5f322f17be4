// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ppath

import (
	"sort"

	"cogentcore.org/svgfit/math32"
)

// DefaultSegments is the number of line segments each curve is
// flattened into by the package-level helpers.
var DefaultSegments = 16

// Flat is a path flattened into polylines, one per subpath,
// with arc-length bookkeeping for sampling.
type Flat struct {
	// Polylines are the flattened subpaths, in path order.
	Polylines [][]math32.Vector2

	edges  []edge
	length float32
}

// edge is one polyline edge, with the cumulative arc length at its ends.
// Jumps between subpaths are not edges.
type edge struct {
	a, b   math32.Vector2
	l0, l1 float32
}

// Flatten flattens the path, approximating each curve and arc
// by the given number of line segments (minimum 1).
func (p Path) Flatten(segments int) *Flat {
	segments = max(segments, 1)
	fl := &Flat{}
	var cur, start math32.Vector2
	var poly []math32.Vector2
	endPoly := func() {
		if len(poly) > 0 {
			fl.Polylines = append(fl.Polylines, poly)
		}
		poly = nil
	}
	lineTo := func(pt math32.Vector2) {
		if len(poly) == 0 {
			poly = append(poly, cur)
		}
		poly = append(poly, pt)
		cur = pt
	}
	for _, s := range p {
		a := s.Args
		switch s.Cmd {
		case MoveTo:
			endPoly()
			cur = math32.Vec2(a[0], a[1])
			start = cur
			poly = append(poly, cur)
		case LineTo:
			lineTo(math32.Vec2(a[0], a[1]))
		case HLineTo:
			lineTo(math32.Vec2(a[0], cur.Y))
		case VLineTo:
			lineTo(math32.Vec2(cur.X, a[0]))
		case CubeTo:
			p0, p1, p2, p3 := cur, math32.Vec2(a[0], a[1]), math32.Vec2(a[2], a[3]), math32.Vec2(a[4], a[5])
			for i := 1; i <= segments; i++ {
				lineTo(cubicAt(p0, p1, p2, p3, float32(i)/float32(segments)))
			}
		case QuadTo:
			p0, p1, p2 := cur, math32.Vec2(a[0], a[1]), math32.Vec2(a[2], a[3])
			for i := 1; i <= segments; i++ {
				lineTo(quadAt(p0, p1, p2, float32(i)/float32(segments)))
			}
		case ArcTo:
			end := math32.Vec2(a[5], a[6])
			arc, ok := arcToCenter(cur, a[0], a[1], a[2], a[3] != 0, a[4] != 0, end)
			if !ok {
				lineTo(end)
				break
			}
			for i := 1; i < segments; i++ {
				lineTo(arc.at(arc.theta0 + arc.dtheta*float32(i)/float32(segments)))
			}
			lineTo(end)
		case Close:
			if len(poly) > 0 && poly[len(poly)-1] != start {
				lineTo(start)
			}
			cur = start
			endPoly()
		}
	}
	endPoly()
	for _, pl := range fl.Polylines {
		for i := 1; i < len(pl); i++ {
			l := pl[i].Sub(pl[i-1]).Length()
			fl.edges = append(fl.edges, edge{pl[i-1], pl[i], fl.length, fl.length + l})
			fl.length += l
		}
	}
	return fl
}

func cubicAt(p0, p1, p2, p3 math32.Vector2, t float32) math32.Vector2 {
	mt := 1 - t
	return p0.MulScalar(mt * mt * mt).Add(p1.MulScalar(3 * mt * mt * t)).Add(p2.MulScalar(3 * mt * t * t)).Add(p3.MulScalar(t * t * t))
}

func quadAt(p0, p1, p2 math32.Vector2, t float32) math32.Vector2 {
	mt := 1 - t
	return p0.MulScalar(mt * mt).Add(p1.MulScalar(2 * mt * t)).Add(p2.MulScalar(t * t))
}

// ellipseArc is an elliptical arc in center parameterization.
type ellipseArc struct {
	center         math32.Vector2
	rx, ry         float32
	sinPhi, cosPhi float32
	theta0, dtheta float32
}

func (e *ellipseArc) at(theta float32) math32.Vector2 {
	s, c := math32.Sincos(theta)
	return math32.Vec2(
		e.center.X+e.rx*c*e.cosPhi-e.ry*s*e.sinPhi,
		e.center.Y+e.rx*c*e.sinPhi+e.ry*s*e.cosPhi)
}

// arcToCenter converts an SVG endpoint arc into center parameterization,
// scaling up radii that are too small to reach the end point.
// It returns false when the arc degenerates to a straight line.
func arcToCenter(start math32.Vector2, rx, ry, phiDeg float32, large, sweep bool, end math32.Vector2) (ellipseArc, bool) {
	if start == end || rx == 0 || ry == 0 {
		return ellipseArc{}, false
	}
	e := ellipseArc{rx: math32.Abs(rx), ry: math32.Abs(ry)}
	e.sinPhi, e.cosPhi = math32.Sincos(math32.DegToRad(phiDeg))
	dx2 := (start.X - end.X) / 2
	dy2 := (start.Y - end.Y) / 2
	x1p := e.cosPhi*dx2 + e.sinPhi*dy2
	y1p := -e.sinPhi*dx2 + e.cosPhi*dy2

	lambda := (x1p*x1p)/(e.rx*e.rx) + (y1p*y1p)/(e.ry*e.ry)
	if lambda > 1 {
		s := math32.Sqrt(lambda)
		e.rx *= s
		e.ry *= s
	}
	rx2, ry2 := e.rx*e.rx, e.ry*e.ry
	num := rx2*ry2 - rx2*y1p*y1p - ry2*x1p*x1p
	den := rx2*y1p*y1p + ry2*x1p*x1p
	coef := float32(0)
	if den != 0 {
		coef = math32.Sqrt(math32.Max(0, num/den))
	}
	if large == sweep {
		coef = -coef
	}
	cxp := coef * e.rx * y1p / e.ry
	cyp := -coef * e.ry * x1p / e.rx
	e.center = math32.Vec2(
		e.cosPhi*cxp-e.sinPhi*cyp+(start.X+end.X)/2,
		e.sinPhi*cxp+e.cosPhi*cyp+(start.Y+end.Y)/2)

	e.theta0 = math32.Atan2((y1p-cyp)/e.ry, (x1p-cxp)/e.rx)
	theta1 := math32.Atan2((-y1p-cyp)/e.ry, (-x1p-cxp)/e.rx)
	e.dtheta = theta1 - e.theta0
	if sweep && e.dtheta < 0 {
		e.dtheta += 2 * math32.Pi
	} else if !sweep && e.dtheta > 0 {
		e.dtheta -= 2 * math32.Pi
	}
	return e, true
}

// Bounds returns the bounding box of all flattened points,
// or an empty box if there are none.
func (fl *Flat) Bounds() math32.Box2 {
	bb := math32.B2Empty()
	for _, pl := range fl.Polylines {
		for _, pt := range pl {
			bb.ExpandByPoint(pt)
		}
	}
	return bb
}

// Length returns the total arc length of the flattened path.
func (fl *Flat) Length() float32 {
	return fl.length
}

// At returns the point at arc-length fraction t in [0, 1] along the
// path, and the direction of travel there as an angle in radians.
// It returns false if the path has no points.
func (fl *Flat) At(t float32) (math32.Vector2, float32, bool) {
	if len(fl.edges) == 0 {
		if len(fl.Polylines) == 0 {
			return math32.Vector2{}, 0, false
		}
		return fl.Polylines[0][0], 0, true
	}
	target := math32.Clamp(t, 0, 1) * fl.length
	i := sort.Search(len(fl.edges), func(i int) bool { return fl.edges[i].l1 >= target })
	i = min(i, len(fl.edges)-1)
	e := fl.edges[i]
	dir := e.b.Sub(e.a)
	if e.l1 == e.l0 {
		return e.a, dir.Angle(), true
	}
	return e.a.Lerp(e.b, (target-e.l0)/(e.l1-e.l0)), dir.Angle(), true
}

// VertexFractions returns the arc-length fraction of every polyline
// vertex, so that sampling at them visits each corner of the path.
func (fl *Flat) VertexFractions() []float32 {
	if fl.length <= 0 {
		return nil
	}
	fs := make([]float32, 0, len(fl.edges)+1)
	for _, e := range fl.edges {
		fs = append(fs, e.l0/fl.length)
	}
	return append(fs, 1)
}

// PointsAlong returns count points evenly spaced by arc length,
// including both ends of the path.
func (fl *Flat) PointsAlong(count int) []math32.Vector2 {
	if count <= 0 {
		return nil
	}
	pts := make([]math32.Vector2, 0, count)
	for i, n := 0, count; i < n; i++ {
		t := float32(0)
		if count > 1 {
			t = float32(i) / float32(count-1)
		}
		pt, _, ok := fl.At(t)
		if !ok {
			return nil
		}
		pts = append(pts, pt)
	}
	return pts
}

// Bounds returns the bounding box of the path flattened with
// the given number of segments per curve.
func (p Path) Bounds(segments int) math32.Box2 {
	return p.Flatten(segments).Bounds()
}
