// SPDX-License-Identifier: GPL-3.0-or-later

// Package curatederr implements formatted, comparable sentinel errors. A
// curated error is built from a fixed pattern string plus arguments; two
// errors built from the same pattern compare equal under Is() regardless of
// their arguments, which lets callers match on "what kind of problem" rather
// than parsing message text.
package curatederr

import (
	"fmt"
	"strings"
)

type curated struct {
	pattern string
	values  []interface{}
}

// Errorf creates a new curated error from pattern and values. Unlike
// fmt.Errorf, formatting is deferred until Error() is called.
func Errorf(pattern string, values ...interface{}) error {
	return curated{pattern: pattern, values: values}
}

// Error returns the formatted message, with duplicate adjacent
// "x: x: rest" segments collapsed to "x: rest".
//
// Implements the go language error interface.
func (e curated) Error() string {
	s := fmt.Errorf(e.pattern, e.values...).Error()

	p := strings.SplitN(s, ": ", 3)
	if len(p) > 1 && p[0] == p[1] {
		return strings.Join(p[1:], ": ")
	}
	return strings.Join(p, ": ")
}

// IsAny reports whether err is a curated error of any pattern.
func IsAny(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(curated)
	return ok
}

// Is reports whether err is a curated error built from pattern.
func Is(err error, pattern string) bool {
	if err == nil {
		return false
	}
	e, ok := err.(curated)
	return ok && e.pattern == pattern
}

// Has reports whether err, or any curated error nested in its values, was
// built from pattern.
func Has(err error, pattern string) bool {
	if !IsAny(err) {
		return false
	}
	if Is(err, pattern) {
		return true
	}
	for _, v := range err.(curated).values {
		if nested, ok := v.(curated); ok {
			if Has(nested, pattern) {
				return true
			}
		}
	}
	return false
}
