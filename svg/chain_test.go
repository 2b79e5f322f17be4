// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svg

import (
	"testing"

	"cogentcore.org/svgfit/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccumulate(t *testing.T) {
	m, err := Chain{}.Accumulate()
	require.NoError(t, err)
	assert.True(t, m.IsIdentity())

	c := Chain{
		Transform{math32.Translate2D(10, 0)},
		Transform{math32.Scale2D(2, 2)},
	}
	m, err = c.Accumulate()
	require.NoError(t, err)
	// root transform applies last
	assert.Equal(t, math32.Vec2(12, 2), m.MulVector2AsPoint(math32.Vec2(1, 1)))
}

func TestAccumulateViewport(t *testing.T) {
	vb := &ViewBox{Size: math32.Vec2(50, 50)}
	c := Chain{
		Transform{math32.Translate2D(5, 5)},
		Viewport{Pos: math32.Vec2(10, 20), Size: math32.Vec2(100, 80), ViewBox: vb},
	}
	m, err := c.Accumulate()
	require.NoError(t, err)
	// meet: scale 1.6, x offset 10, plus the viewport position and outer translate
	assert.Equal(t, math32.Vec2(25, 25), m.MulVector2AsPoint(math32.Vec2(0, 0)))
	assert.Equal(t, math32.Vec2(105, 105), m.MulVector2AsPoint(math32.Vec2(50, 50)))

	// no viewBox: only the position
	m, err = Chain{Viewport{Pos: math32.Vec2(3, 4), Size: math32.Vec2(10, 10)}}.Accumulate()
	require.NoError(t, err)
	assert.Equal(t, math32.Translate2D(3, 4), m)
}

func TestAccumulateUseSymbol(t *testing.T) {
	sym := &Viewport{Size: math32.Vec2(10, 10), ViewBox: &ViewBox{Size: math32.Vec2(10, 10)}}

	// the size of the use overrides the symbol's own size
	c := Chain{Use{Ref: "icon", Pos: math32.Vec2(100, 0), Size: math32.Vec2(40, 40), Symbol: sym}}
	m, err := c.Accumulate()
	require.NoError(t, err)
	assert.Equal(t, math32.B2(100, 0, 140, 40), math32.B2(0, 0, 10, 10).MulMatrix2(m))

	// without a size on the use, the symbol's size applies
	c = Chain{Use{Ref: "icon", Symbol: sym}}
	m, err = c.Accumulate()
	require.NoError(t, err)
	assert.True(t, m.IsIdentity())

	// nested uses expand recursively
	c = Chain{
		Use{Ref: "outer", Pos: math32.Vec2(5, 5)},
		Transform{math32.Scale2D(2, 2)},
		Use{Ref: "inner", Pos: math32.Vec2(1, 1)},
	}
	m, err = c.Accumulate()
	require.NoError(t, err)
	assert.Equal(t, math32.Vec2(7, 7), m.MulVector2AsPoint(math32.Vec2(0, 0)))
	assert.Equal(t, []string{"outer", "inner"}, c.Uses())
}

func TestAccumulateCycle(t *testing.T) {
	c := Chain{
		Use{Ref: "a"},
		Use{Ref: "b"},
		Transform{math32.Translate2D(1, 1)},
		Use{Ref: "a"},
	}
	m, err := c.Accumulate()
	assert.ErrorIs(t, err, ErrIndirectionCycle)
	assert.ErrorContains(t, err, "#a")
	assert.Equal(t, math32.Identity2(), m)
}
