// SPDX-License-Identifier: GPL-3.0-or-later

package cpu

import (
	"testing"

	"github.com/grace-yuwei-li/gba-emu/test"
)

func TestRotateImmediateZeroRotateKeepsCarry(t *testing.T) {
	r := rotateImmediate(0x2a, 0, 1)
	test.ExpectEquality(t, r.value, uint32(0x2a))
	test.ExpectEquality(t, r.carryOut, true)
}

func TestRotateImmediateRotates(t *testing.T) {
	r := rotateImmediate(0xff, 4, 0)
	test.ExpectEquality(t, r.value, uint32(0xff000000))
	test.ExpectEquality(t, r.carryOut, true)
}

func TestShiftByImmediateLSRZeroMeansThirtyTwo(t *testing.T) {
	r := shiftByImmediate(shiftLSR, 0x80000000, 0, false)
	test.ExpectEquality(t, r.value, uint32(0))
	test.ExpectEquality(t, r.carryOut, true)
}

func TestShiftByImmediateRORZeroIsRRX(t *testing.T) {
	r := shiftByImmediate(shiftROR, 0x00000001, 0, true)
	test.ExpectEquality(t, r.value, uint32(0x80000000))
	test.ExpectEquality(t, r.carryOut, true)
}

func TestShiftByRegisterBeyondThirtyTwo(t *testing.T) {
	r := shiftByRegister(shiftLSL, 0xffffffff, 40, false)
	test.ExpectEquality(t, r.value, uint32(0))
	test.ExpectEquality(t, r.carryOut, false)
}

func TestShiftByRegisterASRSignFill(t *testing.T) {
	r := shiftByRegister(shiftASR, 0x80000000, 40, false)
	test.ExpectEquality(t, r.value, uint32(0xffffffff))
	test.ExpectEquality(t, r.carryOut, true)
}

func TestShiftByRegisterZeroAmountUnaffected(t *testing.T) {
	r := shiftByRegister(shiftROR, 0x12345678, 0, true)
	test.ExpectEquality(t, r.value, uint32(0x12345678))
	test.ExpectEquality(t, r.carryOut, true)
}
