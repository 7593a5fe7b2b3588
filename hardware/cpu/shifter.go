// SPDX-License-Identifier: GPL-3.0-or-later

package cpu

import "github.com/grace-yuwei-li/gba-emu/hardware/bits"

// shiftType is the 2-bit shift-type field shared by every shifted-register
// operand encoding.
type shiftType uint32

const (
	shiftLSL shiftType = 0
	shiftLSR shiftType = 1
	shiftASR shiftType = 2
	shiftROR shiftType = 3
)

// shifterResult is the value and carry-out of a shifter operand.
type shifterResult struct {
	value    uint32
	carryOut bool
}

// rotateImmediate computes the data-processing immediate operand: an 8-bit
// immediate rotated right by 2×rotate4. Carry-out is bit 31 of the
// result, or the current C flag when rotate4 is 0.
func rotateImmediate(imm8, rotate4, currentCarry uint32) shifterResult {
	if rotate4 == 0 {
		return shifterResult{value: imm8, carryOut: currentCarry != 0}
	}
	shift := rotate4 * 2
	v := bits.Bits(imm8<<(32-shift)|imm8>>shift, 0, 31)
	return shifterResult{value: v, carryOut: v&0x80000000 != 0}
}

// shiftByImmediate applies the shift-type to rm by a 5-bit immediate
// amount, exactly as the instruction field encodes it for register
// shifter operands: LSR/ASR #0 mean "#32", ROR #0 means RRX.
func shiftByImmediate(st shiftType, rm uint32, amount uint32, currentCarry bool) shifterResult {
	switch st {
	case shiftLSL:
		if amount == 0 {
			return shifterResult{value: rm, carryOut: currentCarry}
		}
		return shifterResult{value: rm << amount, carryOut: bits.BitSet(rm, uint(32-amount))}
	case shiftLSR:
		if amount == 0 {
			return shifterResult{value: 0, carryOut: bits.BitSet(rm, 31)}
		}
		return shifterResult{value: rm >> amount, carryOut: bits.BitSet(rm, uint(amount-1))}
	case shiftASR:
		if amount == 0 {
			if bits.BitSet(rm, 31) {
				return shifterResult{value: 0xffffffff, carryOut: true}
			}
			return shifterResult{value: 0, carryOut: false}
		}
		signed := int32(rm) >> amount
		return shifterResult{value: uint32(signed), carryOut: bits.BitSet(rm, uint(amount-1))}
	case shiftROR:
		if amount == 0 {
			// RRX: 33-bit rotate right through carry.
			v := rm >> 1
			if currentCarry {
				v |= 0x80000000
			}
			return shifterResult{value: v, carryOut: bits.BitSet(rm, 0)}
		}
		amount &= 0x1f
		if amount == 0 {
			return shifterResult{value: rm, carryOut: bits.BitSet(rm, 31)}
		}
		v := rm>>amount | rm<<(32-amount)
		return shifterResult{value: v, carryOut: bits.BitSet(rm, uint(amount-1))}
	}
	panic("unreachable shift type")
}

// shiftByRegister applies the shift-type to rm by the low 8 bits of a
// register value, following the register-specified special cases at 0,
// 32 and >32.
func shiftByRegister(st shiftType, rm uint32, rs uint32, currentCarry bool) shifterResult {
	amount := rs & 0xff

	switch st {
	case shiftLSL:
		switch {
		case amount == 0:
			return shifterResult{value: rm, carryOut: currentCarry}
		case amount < 32:
			return shifterResult{value: rm << amount, carryOut: bits.BitSet(rm, uint(32-amount))}
		case amount == 32:
			return shifterResult{value: 0, carryOut: bits.BitSet(rm, 0)}
		default:
			return shifterResult{value: 0, carryOut: false}
		}
	case shiftLSR:
		switch {
		case amount == 0:
			return shifterResult{value: rm, carryOut: currentCarry}
		case amount < 32:
			return shifterResult{value: rm >> amount, carryOut: bits.BitSet(rm, uint(amount-1))}
		case amount == 32:
			return shifterResult{value: 0, carryOut: bits.BitSet(rm, 31)}
		default:
			return shifterResult{value: 0, carryOut: false}
		}
	case shiftASR:
		signFill := uint32(0)
		if bits.BitSet(rm, 31) {
			signFill = 0xffffffff
		}
		switch {
		case amount == 0:
			return shifterResult{value: rm, carryOut: currentCarry}
		case amount < 32:
			signed := int32(rm) >> amount
			return shifterResult{value: uint32(signed), carryOut: bits.BitSet(rm, uint(amount-1))}
		default:
			return shifterResult{value: signFill, carryOut: signFill != 0}
		}
	case shiftROR:
		switch {
		case amount == 0:
			return shifterResult{value: rm, carryOut: currentCarry}
		default:
			rot := amount & 0x1f
			if rot == 0 {
				return shifterResult{value: rm, carryOut: bits.BitSet(rm, 31)}
			}
			v := rm>>rot | rm<<(32-rot)
			return shifterResult{value: v, carryOut: bits.BitSet(rm, uint(rot-1))}
		}
	}
	panic("unreachable shift type")
}
