// SPDX-License-Identifier: GPL-3.0-or-later

package cpu

import (
	"fmt"

	"github.com/grace-yuwei-li/gba-emu/hardware/bits"
)

// execThumbMoveShifted executes format 1: LSL/LSR/ASR Rd, Rs, #imm5
//.
func execThumbMoveShifted(c *Cpu, raw uint16) {
	opcode := bits.Bits(uint32(raw), 11, 12)
	amount := bits.Bits(uint32(raw), 6, 10)
	rs := bits.Bits(uint32(raw), 3, 5)
	rd := bits.Bits(uint32(raw), 0, 2)

	var st shiftType
	switch opcode {
	case 0:
		st = shiftLSL
	case 1:
		st = shiftLSR
	default:
		st = shiftASR
	}

	r := shiftByImmediate(st, c.readOperand(rs), amount, carry(c.Regs.CPSR()))
	psr := c.Regs.CPSR()
	setNZCV(&psr, r.value, r.carryOut, overflow(psr))
	c.Regs.SetCPSR(psr)
	c.writeRegister(rd, r.value)
}

func disasmThumbMoveShifted(raw uint16) string {
	mnemonics := [3]string{"LSL", "LSR", "ASR"}
	opcode := bits.Bits(uint32(raw), 11, 12)
	return fmt.Sprintf("%s R%d, R%d, #%d", mnemonics[opcode], bits.Bits(uint32(raw), 0, 2), bits.Bits(uint32(raw), 3, 5), bits.Bits(uint32(raw), 6, 10))
}

// execThumbAddSubtract executes format 2: ADD/SUB Rd, Rs, Rn/#imm3
//.
func execThumbAddSubtract(c *Cpu, raw uint16) {
	immediate := bits.BitSet(uint32(raw), 10)
	subtract := bits.BitSet(uint32(raw), 9)
	rnOrImm := bits.Bits(uint32(raw), 6, 8)
	rs := bits.Bits(uint32(raw), 3, 5)
	rd := bits.Bits(uint32(raw), 0, 2)

	op1 := c.readOperand(rs)
	var op2 uint32
	if immediate {
		op2 = rnOrImm
	} else {
		op2 = c.readOperand(rnOrImm)
	}

	var result uint32
	var c32, v32 bool
	if subtract {
		result = op1 - op2
		c32, v32 = bits.SubCarry(op1, op2, 1), bits.SubOverflow(op1, op2, 1)
	} else {
		result = op1 + op2
		c32, v32 = bits.AddCarry(op1, op2, 0), bits.AddOverflow(op1, op2, 0)
	}

	psr := c.Regs.CPSR()
	setNZCV(&psr, result, c32, v32)
	c.Regs.SetCPSR(psr)
	c.writeRegister(rd, result)
}

func disasmThumbAddSubtract(raw uint16) string {
	mnemonic := "ADD"
	if bits.BitSet(uint32(raw), 9) {
		mnemonic = "SUB"
	}
	return fmt.Sprintf("%s R%d, R%d, #op", mnemonic, bits.Bits(uint32(raw), 0, 2), bits.Bits(uint32(raw), 3, 5))
}

// execThumbImmediate executes format 3: MOV/CMP/ADD/SUB Rd, #imm8
//.
func execThumbImmediate(c *Cpu, raw uint16) {
	opcode := bits.Bits(uint32(raw), 11, 12)
	rd := bits.Bits(uint32(raw), 8, 10)
	imm8 := bits.Bits(uint32(raw), 0, 7)

	op1 := c.readOperand(rd)
	var result uint32
	var c32, v32 bool
	logical := false

	switch opcode {
	case 0: // MOV
		result = imm8
		logical = true
	case 1: // CMP
		result = op1 - imm8
		c32, v32 = bits.SubCarry(op1, imm8, 1), bits.SubOverflow(op1, imm8, 1)
	case 2: // ADD
		result = op1 + imm8
		c32, v32 = bits.AddCarry(op1, imm8, 0), bits.AddOverflow(op1, imm8, 0)
	default: // SUB
		result = op1 - imm8
		c32, v32 = bits.SubCarry(op1, imm8, 1), bits.SubOverflow(op1, imm8, 1)
	}

	psr := c.Regs.CPSR()
	if logical {
		setNZ(&psr, result)
	} else {
		setNZCV(&psr, result, c32, v32)
	}
	c.Regs.SetCPSR(psr)

	if opcode != 1 { // CMP does not write back
		c.writeRegister(rd, result)
	}
}

func disasmThumbImmediate(raw uint16) string {
	mnemonics := [4]string{"MOV", "CMP", "ADD", "SUB"}
	return fmt.Sprintf("%s R%d, #%d", mnemonics[bits.Bits(uint32(raw), 11, 12)], bits.Bits(uint32(raw), 8, 10), bits.Bits(uint32(raw), 0, 7))
}

// thumbALUMnemonics names the 16 format-4 ALU operations.
var thumbALUMnemonics = [16]string{
	"AND", "EOR", "LSL", "LSR", "ASR", "ADC", "SBC", "ROR",
	"TST", "NEG", "CMP", "CMN", "ORR", "MUL", "BIC", "MVN",
}

// execThumbALU executes format 4: the 16 two-operand ALU operations on low
// registers, sharing flag rules with their ARM counterparts.
func execThumbALU(c *Cpu, raw uint16) {
	opcode := bits.Bits(uint32(raw), 6, 9)
	rs := bits.Bits(uint32(raw), 3, 5)
	rd := bits.Bits(uint32(raw), 0, 2)

	op1 := c.readOperand(rd)
	op2 := c.readOperand(rs)
	cIn := carry(c.Regs.CPSR())

	var result uint32
	var c32, v32 bool
	writes := true

	// category controls which flags the opcode updates: "arith" recomputes
	// N/Z/C/V from the operation; "shift" takes C from the shifter's
	// carry-out but leaves V unaffected; "logic" touches only N/Z, leaving
	// both C and V exactly as they were.
	category := "logic"

	switch opcode {
	case 0: // AND
		result = op1 & op2
	case 1: // EOR
		result = op1 ^ op2
	case 2: // LSL (by register)
		r := shiftByRegister(shiftLSL, op1, op2, cIn)
		result, c32 = r.value, r.carryOut
		category = "shift"
	case 3: // LSR
		r := shiftByRegister(shiftLSR, op1, op2, cIn)
		result, c32 = r.value, r.carryOut
		category = "shift"
	case 4: // ASR
		r := shiftByRegister(shiftASR, op1, op2, cIn)
		result, c32 = r.value, r.carryOut
		category = "shift"
	case 5: // ADC
		cin := b2u(cIn)
		result = op1 + op2 + cin
		c32, v32 = bits.AddCarry(op1, op2, cin), bits.AddOverflow(op1, op2, cin)
		category = "arith"
	case 6: // SBC
		cin := b2u(cIn)
		result = op1 - op2 - (1 - cin)
		c32, v32 = bits.SubCarry(op1, op2, cin), bits.SubOverflow(op1, op2, cin)
		category = "arith"
	case 7: // ROR (by register)
		r := shiftByRegister(shiftROR, op1, op2, cIn)
		result, c32 = r.value, r.carryOut
		category = "shift"
	case 8: // TST
		result = op1 & op2
		writes = false
	case 9: // NEG
		result = 0 - op2
		c32, v32 = bits.SubCarry(0, op2, 1), bits.SubOverflow(0, op2, 1)
		category = "arith"
	case 10: // CMP
		result = op1 - op2
		c32, v32 = bits.SubCarry(op1, op2, 1), bits.SubOverflow(op1, op2, 1)
		category = "arith"
		writes = false
	case 11: // CMN
		result = op1 + op2
		c32, v32 = bits.AddCarry(op1, op2, 0), bits.AddOverflow(op1, op2, 0)
		category = "arith"
		writes = false
	case 12: // ORR
		result = op1 | op2
	case 13: // MUL
		// Carry/overflow are left as they were; real hardware leaves the
		// carry-out unspecified, so this core preserves rather than guesses.
		result = op1 * op2
	case 14: // BIC
		result = op1 &^ op2
	default: // MVN
		result = ^op2
	}

	psr := c.Regs.CPSR()
	switch category {
	case "arith":
		setNZCV(&psr, result, c32, v32)
	case "shift":
		setNZCV(&psr, result, c32, overflow(psr))
	default: // logic
		setNZ(&psr, result)
	}
	c.Regs.SetCPSR(psr)

	if writes {
		c.writeRegister(rd, result)
	}
}

func disasmThumbALU(raw uint16) string {
	opcode := bits.Bits(uint32(raw), 6, 9)
	return fmt.Sprintf("%s R%d, R%d", thumbALUMnemonics[opcode], bits.Bits(uint32(raw), 0, 2), bits.Bits(uint32(raw), 3, 5))
}
