// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errTest = New("test error")

func TestLog(t *testing.T) {
	assert.NoError(t, Log(nil))
	assert.ErrorIs(t, Log(errTest), errTest)
	assert.Equal(t, 3, Log1(3, errTest))
	assert.Equal(t, "a", Warn1("a", nil))
	assert.Equal(t, 4, Ignore1(4, errTest))
}

func TestWrapped(t *testing.T) {
	err := fmt.Errorf("context: %w", errTest)
	assert.True(t, Is(err, errTest))
	assert.ErrorIs(t, Warn(err, "id", "x"), errTest)
	assert.True(t, Is(Join(nil, err), errTest))
}

func TestMust(t *testing.T) {
	assert.NotPanics(t, func() { Must(nil) })
	assert.Panics(t, func() { Must(errTest) })
	assert.Equal(t, 5, Must1(5, nil))
	assert.Panics(t, func() { Must1(5, errTest) })
}
