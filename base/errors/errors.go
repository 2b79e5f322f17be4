// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors provides a set of error handling helpers,
// extending the standard library errors package.
// Recoverable problems in the envelope engine are reported
// through [Warn], which logs them and lets the caller continue
// with a widened (never narrowed) result.
package errors

import (
	"errors"
	"log/slog"
)

// New is the standard [errors.New], re-exported so that
// callers only need to import this package.
func New(text string) error { return errors.New(text) }

// Is is the standard [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// As is the standard [errors.As].
func As(err error, target any) bool { return errors.As(err, target) }

// Join is the standard [errors.Join].
func Join(errs ...error) error { return errors.Join(errs...) }

// Log takes the given error and logs it if it is non-nil.
// The intended usage is:
//
//	errors.Log(MyFunc(v))
//	// or
//	return errors.Log(MyFunc(v))
func Log(err error) error {
	if err != nil {
		slog.Error(err.Error())
	}
	return err
}

// Log1 takes the given value and error and returns the value if
// the error is nil, and logs the error and returns the value
// if the error is non-nil. The intended usage is:
//
//	a := errors.Log1(MyFunc(v))
func Log1[T any](v T, err error) T {
	if err != nil {
		slog.Error(err.Error())
	}
	return v
}

// Warn logs the given error at the warning level if it is non-nil,
// with the optional key-value attributes. It is used for malformed
// input that is recovered locally.
func Warn(err error, args ...any) error {
	if err != nil {
		slog.Warn(err.Error(), args...)
	}
	return err
}

// Warn1 is the [Warn] version of [Log1].
func Warn1[T any](v T, err error) T {
	Warn(err)
	return v
}

// Ignore1 ignores an error return value for a function returning
// a value and an error, allowing direct usage of the value.
// The intended usage is:
//
//	a := errors.Ignore1(MyFunc(v))
func Ignore1[T any](v T, err error) T {
	return v
}

// Must takes the given error and panics if it is non-nil.
// The intended usage is:
//
//	errors.Must(MyFunc(v))
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// Must1 takes the given value and error and returns the value if
// the error is nil, and panics if the error is non-nil. The intended usage is:
//
//	a := errors.Must1(MyFunc(v))
func Must1[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
