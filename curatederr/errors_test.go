// SPDX-License-Identifier: GPL-3.0-or-later

package curatederr_test

import (
	"fmt"
	"testing"

	"github.com/grace-yuwei-li/gba-emu/curatederr"
	"github.com/grace-yuwei-li/gba-emu/test"
)

const testError = "test error: %s"
const testErrorB = "test error B: %s"

func TestDuplicateErrors(t *testing.T) {
	e := curatederr.Errorf(testError, "foo")
	test.ExpectEquality(t, e.Error(), "test error: foo")

	f := curatederr.Errorf(testError, e)
	test.ExpectEquality(t, f.Error(), "test error: foo")
}

func TestIs(t *testing.T) {
	e := curatederr.Errorf(testError, "foo")
	test.ExpectSuccess(t, curatederr.Is(e, testError))
	test.ExpectFailure(t, curatederr.Has(e, testErrorB))

	f := curatederr.Errorf(testErrorB, e)
	test.ExpectFailure(t, curatederr.Is(f, testError))
	test.ExpectSuccess(t, curatederr.Is(f, testErrorB))
	test.ExpectSuccess(t, curatederr.Has(f, testError))
	test.ExpectSuccess(t, curatederr.Has(f, testErrorB))

	test.ExpectSuccess(t, curatederr.IsAny(e))
	test.ExpectSuccess(t, curatederr.IsAny(f))
}

func TestPlainErrors(t *testing.T) {
	e := fmt.Errorf("plain test error")
	test.ExpectFailure(t, curatederr.IsAny(e))
	test.ExpectFailure(t, curatederr.Has(e, testError))
}

func TestWrapping(t *testing.T) {
	a := 10
	e := curatederr.Errorf("error: value = %d", a)
	f := curatederr.Errorf("fatal: %v", e)

	test.ExpectSuccess(t, curatederr.Has(f, "error: value = %d"))
	test.ExpectFailure(t, curatederr.Is(f, "error: value = %d"))
	test.ExpectSuccess(t, curatederr.Has(f, "fatal: %v"))
	test.ExpectSuccess(t, curatederr.Is(f, "fatal: %v"))

	test.ExpectEquality(t, f.Error(), "fatal: error: value = 10")
}
