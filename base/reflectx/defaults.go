// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reflectx provides the reflection helpers used to set
// configuration structs from their struct field tags.
package reflectx

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// SetFromDefaultTags sets the values of the fields of the given struct
// pointer from their `default:` struct field tag values. Nested structs
// are set recursively. Fields without a default tag are left unchanged.
func SetFromDefaultTags(obj any) error {
	if obj == nil {
		return errors.New("reflectx.SetFromDefaultTags: object is nil")
	}
	ov := reflect.ValueOf(obj)
	if ov.Kind() != reflect.Pointer || ov.IsNil() {
		return fmt.Errorf("reflectx.SetFromDefaultTags: object must be a non-nil pointer, not %T", obj)
	}
	val := NonPointerValue(ov)
	if val.Kind() != reflect.Struct {
		return fmt.Errorf("reflectx.SetFromDefaultTags: object must be a pointer to a struct, not %T", obj)
	}
	var errs []error
	typ := val.Type()
	for i, n := 0, typ.NumField(); i < n; i++ {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		fv := val.Field(i)
		if NonPointerType(f.Type).Kind() == reflect.Struct {
			if fv.Kind() == reflect.Pointer {
				if fv.IsNil() {
					continue
				}
				errs = append(errs, SetFromDefaultTags(fv.Interface()))
			} else {
				errs = append(errs, SetFromDefaultTags(fv.Addr().Interface()))
			}
			continue
		}
		def, ok := f.Tag.Lookup("default")
		if !ok {
			continue
		}
		if err := SetFromString(fv, def); err != nil {
			errs = append(errs, fmt.Errorf("reflectx.SetFromDefaultTags: field %s: %w", f.Name, err))
		}
	}
	return errors.Join(errs...)
}

// SetFromString sets a settable value of a basic kind from a string.
func SetFromString(v reflect.Value, s string) error {
	if v.Type() == reflect.TypeOf((*time.Duration)(nil)).Elem() {
		d, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		v.SetInt(int64(d))
		return nil
	}
	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(s, 0, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(s, 0, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)
	default:
		return fmt.Errorf("unsupported kind %s", v.Kind())
	}
	return nil
}
