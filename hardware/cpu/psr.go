// SPDX-License-Identifier: GPL-3.0-or-later

package cpu

import "github.com/grace-yuwei-li/gba-emu/hardware/bits"

// CPSR/SPSR bit positions.
const (
	psrModeMask = 0x1f
	psrT        = 5
	psrF        = 6
	psrI        = 7
	psrV        = 28
	psrC        = 29
	psrZ        = 30
	psrN        = 31
)

func negative(psr uint32) bool { return bits.BitSet(psr, psrN) }
func zero(psr uint32) bool     { return bits.BitSet(psr, psrZ) }
func carry(psr uint32) bool    { return bits.BitSet(psr, psrC) }
func overflow(psr uint32) bool { return bits.BitSet(psr, psrV) }
func thumbState(psr uint32) bool { return bits.BitSet(psr, psrT) }
func irqDisabled(psr uint32) bool { return bits.BitSet(psr, psrI) }

func setNZ(psr *uint32, result uint32) {
	bits.MutBit(psr, psrN, result&0x80000000 != 0)
	bits.MutBit(psr, psrZ, result == 0)
}

func setNZCV(psr *uint32, result uint32, c, v bool) {
	setNZ(psr, result)
	bits.MutBit(psr, psrC, c)
	bits.MutBit(psr, psrV, v)
}

// condition evaluates the 4-bit condition field against psr, following the
// fourteen CPSR-flag predicates plus AL/NV.
func condition(cond uint32, psr uint32) bool {
	n, z, c, v := negative(psr), zero(psr), carry(psr), overflow(psr)
	switch cond {
	case 0x0: // EQ
		return z
	case 0x1: // NE
		return !z
	case 0x2: // CS/HS
		return c
	case 0x3: // CC/LO
		return !c
	case 0x4: // MI
		return n
	case 0x5: // PL
		return !n
	case 0x6: // VS
		return v
	case 0x7: // VC
		return !v
	case 0x8: // HI
		return c && !z
	case 0x9: // LS
		return !c || z
	case 0xa: // GE
		return n == v
	case 0xb: // LT
		return n != v
	case 0xc: // GT
		return !z && n == v
	case 0xd: // LE
		return z || n != v
	case 0xe: // AL
		return true
	default: // 0xf, reserved
		return false
	}
}
