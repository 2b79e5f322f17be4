// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"fmt"
	"strings"
)

// Matrix2 is a 2D affine transformation matrix with 6 coefficients,
// corresponding to the SVG matrix(a, b, c, d, e, f) function with
// a=XX, b=YX, c=XY, d=YY, e=X0, f=Y0. A point (x, y) is mapped to
// (XX*x + XY*y + X0, YX*x + YY*y + Y0).
// Matrix2 is a value type: no method modifies its receiver
// except the explicit Set* methods.
type Matrix2 struct {
	XX, YX, XY, YY, X0, Y0 float32
}

// Identity2 returns a new identity [Matrix2] matrix.
func Identity2() Matrix2 {
	return Matrix2{
		1, 0,
		0, 1,
		0, 0,
	}
}

// Translate2D returns a Matrix2 2D matrix with given translations
func Translate2D(x, y float32) Matrix2 {
	return Matrix2{
		1, 0,
		0, 1,
		x, y,
	}
}

// Scale2D returns a Matrix2 2D matrix with given scaling factors
func Scale2D(x, y float32) Matrix2 {
	return Matrix2{
		x, 0,
		0, y,
		0, 0,
	}
}

// Rotate2D returns a Matrix2 2D matrix with given rotation, specified in radians.
// Positive angles rotate from the X axis toward the Y axis, which is
// clockwise on screen where Y points down.
func Rotate2D(angle float32) Matrix2 {
	s, c := Sincos(angle)
	return Matrix2{
		c, s,
		-s, c,
		0, 0,
	}
}

// Rotate2DAround returns a Matrix2 2D matrix with given rotation in radians
// about the given center point.
func Rotate2DAround(angle float32, center Vector2) Matrix2 {
	return Translate2D(center.X, center.Y).Mul(Rotate2D(angle)).Mul(Translate2D(-center.X, -center.Y))
}

// SkewX2D returns a Matrix2 2D matrix that skews along the X axis
// by the given angle in radians.
func SkewX2D(angle float32) Matrix2 {
	return Matrix2{
		1, 0,
		Tan(angle), 1,
		0, 0,
	}
}

// SkewY2D returns a Matrix2 2D matrix that skews along the Y axis
// by the given angle in radians.
func SkewY2D(angle float32) Matrix2 {
	return Matrix2{
		1, Tan(angle),
		0, 1,
		0, 0,
	}
}

// IsIdentity returns true if the matrix is the identity matrix.
func (a Matrix2) IsIdentity() bool {
	return a == Identity2()
}

// IsZero returns true if all coefficients are zero,
// which is the zero value of the type.
func (a Matrix2) IsZero() bool {
	return a == Matrix2{}
}

// Mul returns a*b, which applies b first and then a to a point.
// This is the composition order used for SVG transform lists
// and ancestor chains: parent.Mul(child).
func (a Matrix2) Mul(b Matrix2) Matrix2 {
	return Matrix2{
		XX: a.XX*b.XX + a.XY*b.YX,
		YX: a.YX*b.XX + a.YY*b.YX,
		XY: a.XX*b.XY + a.XY*b.YY,
		YY: a.YX*b.XY + a.YY*b.YY,
		X0: a.XX*b.X0 + a.XY*b.Y0 + a.X0,
		Y0: a.YX*b.X0 + a.YY*b.Y0 + a.Y0,
	}
}

// SetMul sets a to a*b.
func (a *Matrix2) SetMul(b Matrix2) {
	*a = a.Mul(b)
}

// MulVector2AsVector multiplies the Vector2 as a vector without adding translations.
func (a Matrix2) MulVector2AsVector(v Vector2) Vector2 {
	tx := a.XX*v.X + a.XY*v.Y
	ty := a.YX*v.X + a.YY*v.Y
	return Vec2(tx, ty)
}

// MulVector2AsPoint multiplies the Vector2 as a point, including adding translations.
func (a Matrix2) MulVector2AsPoint(v Vector2) Vector2 {
	tx := a.XX*v.X + a.XY*v.Y + a.X0
	ty := a.YX*v.X + a.YY*v.Y + a.Y0
	return Vec2(tx, ty)
}

// Det returns the determinant of the linear part of the matrix.
func (a Matrix2) Det() float32 {
	return a.XX*a.YY - a.XY*a.YX
}

// Inverse returns inverse of matrix, for inverting transforms.
// A singular matrix returns the identity.
func (a Matrix2) Inverse() Matrix2 {
	det := a.Det()
	if det == 0 {
		return Identity2()
	}
	di := 1 / det
	return Matrix2{
		XX: a.YY * di,
		YX: -a.YX * di,
		XY: -a.XY * di,
		YY: a.XX * di,
		X0: (a.XY*a.Y0 - a.YY*a.X0) * di,
		Y0: (a.YX*a.X0 - a.XX*a.Y0) * di,
	}
}

// ExtractRot extracts the rotation component from a given matrix, in radians.
func (a Matrix2) ExtractRot() float32 {
	return Atan2(a.YX, a.XX)
}

// ExtractScale extracts the scaling factors from the matrix.
func (a Matrix2) ExtractScale() (scx, scy float32) {
	rot := a.ExtractRot()
	tx := Rotate2D(-rot).Mul(a)
	scxv := tx.MulVector2AsVector(Vec2(1, 0))
	scyv := tx.MulVector2AsVector(Vec2(0, 1))
	return scxv.X, scyv.Y
}

// String returns the SVG transform string for the matrix,
// using the simplest form that represents it.
func (a Matrix2) String() string {
	if a.IsIdentity() {
		return "none"
	}
	if a.YX == 0 && a.XY == 0 {
		var sb strings.Builder
		if a.X0 != 0 || a.Y0 != 0 {
			fmt.Fprintf(&sb, "translate(%g,%g)", a.X0, a.Y0)
		}
		if a.XX != 1 || a.YY != 1 {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "scale(%g,%g)", a.XX, a.YY)
		}
		return sb.String()
	}
	return fmt.Sprintf("matrix(%g,%g,%g,%g,%g,%g)", a.XX, a.YX, a.XY, a.YY, a.X0, a.Y0)
}
