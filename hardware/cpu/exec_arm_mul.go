// SPDX-License-Identifier: GPL-3.0-or-later

package cpu

import (
	"fmt"

	"github.com/grace-yuwei-li/gba-emu/hardware/bits"
)

// execMultiply executes MUL/MLA. The result is undefined in
// real silicon when Rd coincides with Rm; the core does not special-case it.
func execMultiply(c *Cpu, raw uint32) {
	rd := bits.Bits(raw, 16, 19)
	rn := bits.Bits(raw, 12, 15)
	rs := bits.Bits(raw, 8, 11)
	rm := bits.Bits(raw, 0, 3)
	accumulate := bits.BitSet(raw, 21)
	sBit := bits.BitSet(raw, 20)

	result := c.readOperand(rm) * c.readOperand(rs)
	if accumulate {
		result += c.readOperand(rn)
	}

	if sBit {
		psr := c.Regs.CPSR()
		setNZ(&psr, result)
		c.Regs.SetCPSR(psr)
	}

	c.writeRegister(rd, result)
}

func disasmMultiply(raw uint32) string {
	if bits.BitSet(raw, 21) {
		return fmt.Sprintf("MLA R%d, R%d, R%d, R%d", bits.Bits(raw, 16, 19), bits.Bits(raw, 0, 3), bits.Bits(raw, 8, 11), bits.Bits(raw, 12, 15))
	}
	return fmt.Sprintf("MUL R%d, R%d, R%d", bits.Bits(raw, 16, 19), bits.Bits(raw, 0, 3), bits.Bits(raw, 8, 11))
}

// execMultiplyLong executes UMULL/UMLAL/SMULL/SMLAL, producing a 64-bit
// product split across RdHi:RdLo.
func execMultiplyLong(c *Cpu, raw uint32) {
	rdHi := bits.Bits(raw, 16, 19)
	rdLo := bits.Bits(raw, 12, 15)
	rs := bits.Bits(raw, 8, 11)
	rm := bits.Bits(raw, 0, 3)
	signed := bits.BitSet(raw, 22)
	accumulate := bits.BitSet(raw, 21)
	sBit := bits.BitSet(raw, 20)

	var product uint64
	if signed {
		product = uint64(int64(int32(c.readOperand(rm))) * int64(int32(c.readOperand(rs))))
	} else {
		product = uint64(c.readOperand(rm)) * uint64(c.readOperand(rs))
	}

	if accumulate {
		product += uint64(c.readOperand(rdHi))<<32 | uint64(c.readOperand(rdLo))
	}

	lo := uint32(product)
	hi := uint32(product >> 32)

	if sBit {
		psr := c.Regs.CPSR()
		bits.MutBit(&psr, psrN, hi&0x80000000 != 0)
		bits.MutBit(&psr, psrZ, product == 0)
		c.Regs.SetCPSR(psr)
	}

	c.writeRegister(rdLo, lo)
	c.writeRegister(rdHi, hi)
}

func disasmMultiplyLong(raw uint32) string {
	mnemonic := "UMULL"
	switch {
	case bits.BitSet(raw, 22) && bits.BitSet(raw, 21):
		mnemonic = "SMLAL"
	case bits.BitSet(raw, 22):
		mnemonic = "SMULL"
	case bits.BitSet(raw, 21):
		mnemonic = "UMLAL"
	}
	return fmt.Sprintf("%s R%d, R%d, R%d, R%d", mnemonic, bits.Bits(raw, 12, 15), bits.Bits(raw, 16, 19), bits.Bits(raw, 0, 3), bits.Bits(raw, 8, 11))
}

// execSingleDataSwap executes SWP/SWPB: an atomic (from the guest's point of
// view; the core has no other bus master) read-modify-write of memory
//.
func execSingleDataSwap(c *Cpu, raw uint32) {
	rn := bits.Bits(raw, 16, 19)
	rd := bits.Bits(raw, 12, 15)
	rm := bits.Bits(raw, 0, 3)
	byteSwap := bits.BitSet(raw, 22)

	addr := c.readOperand(rn)
	source := c.readOperand(rm)

	if byteSwap {
		old := c.Bus.ReadByte(addr)
		c.Bus.WriteByte(addr, byte(source))
		c.writeRegister(rd, uint32(old))
	} else {
		old := c.Bus.ReadWord(addr)
		c.Bus.WriteWord(addr, source)
		c.writeRegister(rd, old)
	}
}

func disasmSingleDataSwap(raw uint32) string {
	mnemonic := "SWP"
	if bits.BitSet(raw, 22) {
		mnemonic = "SWPB"
	}
	return fmt.Sprintf("%s R%d, R%d, [R%d]", mnemonic, bits.Bits(raw, 12, 15), bits.Bits(raw, 0, 3), bits.Bits(raw, 16, 19))
}
