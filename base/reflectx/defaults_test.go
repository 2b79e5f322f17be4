// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reflectx

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inner struct {
	Name string `default:"inner"`
}

type settings struct {
	Count   int           `default:"32"`
	Factor  float32       `default:"2.5"`
	Enabled bool          `default:"true"`
	Wait    time.Duration `default:"250ms"`
	Label   string
	Inner   inner
	Ptr     *inner
	hidden  int `default:"7"`
}

func TestSetFromDefaultTags(t *testing.T) {
	s := &settings{Label: "kept", Ptr: &inner{}}
	require.NoError(t, SetFromDefaultTags(s))
	assert.Equal(t, 32, s.Count)
	assert.Equal(t, float32(2.5), s.Factor)
	assert.True(t, s.Enabled)
	assert.Equal(t, 250*time.Millisecond, s.Wait)
	assert.Equal(t, "kept", s.Label)
	assert.Equal(t, "inner", s.Inner.Name)
	assert.Equal(t, "inner", s.Ptr.Name)
	assert.Zero(t, s.hidden)
}

func TestSetFromDefaultTagsErrors(t *testing.T) {
	assert.Error(t, SetFromDefaultTags(nil))
	assert.Error(t, SetFromDefaultTags(settings{}))
	n := 1
	assert.Error(t, SetFromDefaultTags(&n))

	type bad struct {
		N int `default:"many"`
	}
	assert.Error(t, SetFromDefaultTags(&bad{}))
}

func TestNonPointer(t *testing.T) {
	assert.Equal(t, reflect.TypeOf((*int)(nil)).Elem(), NonPointerType(reflect.TypeOf((***int)(nil)).Elem()))
	assert.Nil(t, NonPointerType(reflect.TypeOf(nil)))

	v := 1
	p := &v
	assert.True(t, NonPointerValue(reflect.ValueOf(&p)).Equal(reflect.ValueOf(v)))
}
