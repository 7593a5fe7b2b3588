// SPDX-License-Identifier: GPL-3.0-or-later

// Package test supplies small comparison helpers shared by the test suites
// across the module, so each package doesn't reinvent "is this close enough"
// or "did this call succeed" assertions.
package test

import (
	"math"
	"reflect"
	"testing"
)

// ExpectSuccess fails the test unless v indicates success: true, a nil error,
// or a literal nil.
func ExpectSuccess(t *testing.T, v interface{}) {
	t.Helper()

	switch w := v.(type) {
	case nil:
		return
	case bool:
		if !w {
			t.Errorf("expected success, got false")
		}
	case error:
		if w != nil {
			t.Errorf("expected success, got error: %v", w)
		}
	default:
		t.Errorf("unexpected type passed to ExpectSuccess: %T", v)
	}
}

// ExpectFailure fails the test unless v indicates failure: false or a
// non-nil error.
func ExpectFailure(t *testing.T, v interface{}) {
	t.Helper()

	switch w := v.(type) {
	case bool:
		if w {
			t.Errorf("expected failure, got true")
		}
	case error:
		if w == nil {
			t.Errorf("expected failure, got nil error")
		}
	default:
		t.Errorf("unexpected type passed to ExpectFailure: %T", v)
	}
}

// ExpectEquality fails the test unless a and b are deeply equal.
func ExpectEquality(t *testing.T, a, b interface{}) {
	t.Helper()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("expected equality: %v != %v", a, b)
	}
}

// ExpectInequality fails the test if a and b are deeply equal.
func ExpectInequality(t *testing.T, a, b interface{}) {
	t.Helper()
	if reflect.DeepEqual(a, b) {
		t.Errorf("expected inequality: %v == %v", a, b)
	}
}

// ExpectApproximate fails the test unless a and b differ by no more than
// tolerance.
func ExpectApproximate(t *testing.T, a, b, tolerance float64) {
	t.Helper()
	if math.Abs(a-b) > tolerance {
		t.Errorf("expected %v to be within %v of %v", a, tolerance, b)
	}
}
