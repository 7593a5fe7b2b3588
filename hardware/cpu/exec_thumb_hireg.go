// SPDX-License-Identifier: GPL-3.0-or-later

package cpu

import (
	"fmt"

	"github.com/grace-yuwei-li/gba-emu/hardware/bits"
)

// execThumbHiRegisterBX executes format 5: ADD/CMP/MOV operating on any of
// r0-r15 (including the hi registers r8-r15), and BX.
func execThumbHiRegisterBX(c *Cpu, raw uint16) {
	opcode := bits.Bits(uint32(raw), 8, 9)
	h1 := bits.BitSet(uint32(raw), 7)
	h2 := bits.BitSet(uint32(raw), 6)
	rs := bits.Bits(uint32(raw), 3, 6)
	rd := bits.Bits(uint32(raw), 0, 2)
	if h2 {
		rs |= 0x8
	}
	if h1 {
		rd |= 0x8
	}

	switch opcode {
	case 0: // ADD
		result := c.readOperand(rd) + c.readOperand(rs)
		c.writeRegister(rd, result)
	case 1: // CMP
		op1, op2 := c.readOperand(rd), c.readOperand(rs)
		result := op1 - op2
		psr := c.Regs.CPSR()
		setNZCV(&psr, result, bits.SubCarry(op1, op2, 1), bits.SubOverflow(op1, op2, 1))
		c.Regs.SetCPSR(psr)
	case 2: // MOV
		c.writeRegister(rd, c.readOperand(rs))
	default: // BX
		target := c.readOperand(rs)
		psr := c.Regs.CPSR()
		bits.MutBit(&psr, psrT, target&1 != 0)
		c.Regs.SetCPSR(psr)
		c.Regs.SetPC(target &^ 1)
		c.flush()
	}
}

func disasmThumbHiRegisterBX(raw uint16) string {
	mnemonics := [4]string{"ADD", "CMP", "MOV", "BX"}
	return fmt.Sprintf("%s (hi)", mnemonics[bits.Bits(uint32(raw), 8, 9)])
}

// execThumbPCRelativeLoad executes format 6: LDR Rd, [PC, #imm8<<2], with
// the PC word-aligned before the offset is added.
func execThumbPCRelativeLoad(c *Cpu, raw uint16) {
	rd := bits.Bits(uint32(raw), 8, 10)
	imm8 := bits.Bits(uint32(raw), 0, 7)
	base := (c.readOperand(15)) &^ 3
	addr := base + imm8<<2
	c.writeRegister(rd, c.Bus.ReadWord(addr))
}

func disasmThumbPCRelativeLoad(raw uint16) string {
	return fmt.Sprintf("LDR R%d, [PC, #%d]", bits.Bits(uint32(raw), 8, 10), bits.Bits(uint32(raw), 0, 7)<<2)
}

// execThumbLoadStoreRegOffset executes format 7: LDR/STR/LDRB/STRB Rd,
// [Rb, Ro].
func execThumbLoadStoreRegOffset(c *Cpu, raw uint16) {
	load := bits.BitSet(uint32(raw), 11)
	byteAccess := bits.BitSet(uint32(raw), 10)
	ro := bits.Bits(uint32(raw), 6, 8)
	rb := bits.Bits(uint32(raw), 3, 5)
	rd := bits.Bits(uint32(raw), 0, 2)

	addr := c.readOperand(rb) + c.readOperand(ro)

	switch {
	case load && byteAccess:
		c.writeRegister(rd, uint32(c.Bus.ReadByte(addr)))
	case load:
		c.writeRegister(rd, c.Bus.ReadWord(addr))
	case byteAccess:
		c.Bus.WriteByte(addr, byte(c.readOperand(rd)))
	default:
		c.Bus.WriteWord(addr, c.readOperand(rd))
	}
}

func disasmThumbLoadStoreRegOffset(raw uint16) string {
	load := bits.BitSet(uint32(raw), 11)
	byteAccess := bits.BitSet(uint32(raw), 10)
	mnemonic := "STR"
	if load {
		mnemonic = "LDR"
	}
	if byteAccess {
		mnemonic += "B"
	}
	return fmt.Sprintf("%s R%d, [R%d, R%d]", mnemonic, bits.Bits(uint32(raw), 0, 2), bits.Bits(uint32(raw), 3, 5), bits.Bits(uint32(raw), 6, 8))
}

// execThumbLoadStoreHalfwordSigned executes format 8: STRH/LDRH/LDSB/LDSH
// Rd, [Rb, Ro], sharing the ARM LDRSH mis-aligned fallback
// policy.
func execThumbLoadStoreHalfwordSigned(c *Cpu, raw uint16) {
	hFlag := bits.BitSet(uint32(raw), 11)
	sFlag := bits.BitSet(uint32(raw), 10)
	ro := bits.Bits(uint32(raw), 6, 8)
	rb := bits.Bits(uint32(raw), 3, 5)
	rd := bits.Bits(uint32(raw), 0, 2)

	addr := c.readOperand(rb) + c.readOperand(ro)

	switch {
	case !sFlag && !hFlag: // STRH
		c.Bus.WriteHalf(addr, uint16(c.readOperand(rd)))
	case !sFlag && hFlag: // LDRH
		c.writeRegister(rd, uint32(c.Bus.ReadHalf(addr)))
	case sFlag && !hFlag: // LDSB
		c.writeRegister(rd, bits.SignExtend(uint32(c.Bus.ReadByte(addr)), 7))
	default: // LDSH
		c.writeRegister(rd, c.Bus.ReadSignedHalf(addr, c.ins.Config.LDRSHMisalignedFallsBackToLDRSB))
	}
}

func disasmThumbLoadStoreHalfwordSigned(raw uint16) string {
	hFlag := bits.BitSet(uint32(raw), 11)
	sFlag := bits.BitSet(uint32(raw), 10)
	mnemonic := "STRH"
	switch {
	case !sFlag && hFlag:
		mnemonic = "LDRH"
	case sFlag && !hFlag:
		mnemonic = "LDSB"
	case sFlag && hFlag:
		mnemonic = "LDSH"
	}
	return fmt.Sprintf("%s R%d, [R%d, R%d]", mnemonic, bits.Bits(uint32(raw), 0, 2), bits.Bits(uint32(raw), 3, 5), bits.Bits(uint32(raw), 6, 8))
}
