// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPx(t *testing.T) {
	tests := map[Units]float32{
		UnitPx:  50,
		UnitPct: 200,
		UnitEm:  500,
		UnitEx:  250,
		UnitRem: 800,
		UnitIn:  4800,
		UnitPt:  50 * 96.0 / 72,
		UnitPc:  800,
		UnitCm:  50 * 96 / 2.54,
		UnitMm:  50 * 96 / 25.4,
		UnitQ:   50 * 96 / (4 * 25.4),
	}
	uc := Context{FontSize: 10, RootFontSize: 16, Ref: 400}
	for unit, want := range tests {
		v := New(50, unit)
		assert.InDelta(t, want, v.ToPx(&uc), 0.001, unit.String())
	}
}

func TestSetString(t *testing.T) {
	var uc Context
	uc.Defaults()
	for _, un := range []Units{UnitPx, UnitPct, UnitEm, UnitEx, UnitRem, UnitCm, UnitMm, UnitQ, UnitIn, UnitPc, UnitPt} {
		v1 := New(1.5, un)
		var v2 Value
		assert.NoError(t, v2.SetString(v1.String()))
		assert.Equal(t, v1, v2)
		assert.Equal(t, v1.ToPx(&uc), v2.ToPx(&uc))
	}

	v := StringToValue(" 12 ")
	assert.Equal(t, Px(12), v)

	var bad Value
	assert.Error(t, bad.SetString("wide"))
	assert.Error(t, bad.SetString("3furlongs"))
	assert.Equal(t, Px(3), StringToValue("3furlongs"))
}
