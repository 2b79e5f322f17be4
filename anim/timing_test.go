// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClock(t *testing.T) {
	tests := map[string]float32{
		"2s":         2,
		"500ms":      0.5,
		"1.5min":     90,
		"1h":         3600,
		"5":          5,
		"02:30":      150,
		"01:02:03.5": 3723.5,
		"-1s":        -1,
		" 3s ":       3,
	}
	for s, want := range tests {
		v, ok := ParseClock(s)
		assert.True(t, ok, s)
		assert.InDelta(t, want, v, 1e-4, s)
	}
	for _, s := range []string{"", "click", "2 s", "3days", "1:2:3:4", "a:b"} {
		_, ok := ParseClock(s)
		assert.False(t, ok, s)
	}
}

func TestParseTiming(t *testing.T) {
	tests := []struct {
		begin string
		want  Timing
	}{
		{"", Definite{}},
		{"2s", Definite{2}},
		{"click", EventBased{Event: "click"}},
		{"click+1s", EventBased{Event: "click", Offset: 1}},
		{"button.click", EventBased{Target: "button", Event: "click"}},
		{"my-button.mouseover - 0.5s", EventBased{Target: "my-button", Event: "mouseover", Offset: -0.5}},
		{"a1.end", Syncbase{Ref: "a1", Edge: "end"}},
		{"a1.end-0.5s", Syncbase{Ref: "a1", Edge: "end", Offset: -0.5}},
		{"intro-anim.begin+2s", Syncbase{Ref: "intro-anim", Edge: "begin", Offset: 2}},
		{"indefinite", EventBased{Event: "indefinite"}},
		{"click; 3s; 1s", Definite{1}},
		{"accessKey(a); a1.end", Syncbase{Ref: "a1", Edge: "end"}},
	}
	for _, tt := range tests {
		tm, err := ParseTiming(tt.begin)
		assert.NoError(t, err, tt.begin)
		assert.Equal(t, tt.want, tm, tt.begin)
	}

	for _, s := range []string{"accessKey(a)", "wallclock(2026-01-01T00:00:00Z)", "a1.repeat(2)", "1st.click", "."} {
		tm, err := ParseTiming(s)
		assert.ErrorIs(t, err, ErrUnsupportedTiming, s)
		assert.IsType(t, Unsupported{}, tm, s)
	}

	assert.True(t, IsConditional(EventBased{Event: "click"}))
	assert.True(t, IsConditional(Syncbase{Ref: "a"}))
	assert.False(t, IsConditional(Definite{}))
	assert.False(t, IsConditional(Unsupported{}))
}
