// SPDX-License-Identifier: GPL-3.0-or-later

package cpu

import (
	"fmt"

	"github.com/grace-yuwei-li/gba-emu/hardware/bits"
	"github.com/grace-yuwei-li/gba-emu/hardware/cpu/registers"
)

// dpOpcode names the sixteen data-processing operations.
type dpOpcode uint32

const (
	dpAND dpOpcode = iota
	dpEOR
	dpSUB
	dpRSB
	dpADD
	dpADC
	dpSBC
	dpRSC
	dpTST
	dpTEQ
	dpCMP
	dpCMN
	dpORR
	dpMOV
	dpBIC
	dpMVN
)

var dpMnemonics = [16]string{
	"AND", "EOR", "SUB", "RSB", "ADD", "ADC", "SBC", "RSC",
	"TST", "TEQ", "CMP", "CMN", "ORR", "MOV", "BIC", "MVN",
}

// operand2 resolves the data-processing second operand: an 8-bit rotated
// immediate, a register shifted by an immediate amount, or a register
// shifted by the low byte of another register.
func (c *Cpu) operand2(raw uint32) shifterResult {
	carryIn := carry(c.Regs.CPSR())

	if bits.BitSet(raw, 25) {
		imm8 := bits.Bits(raw, 0, 7)
		rotate4 := bits.Bits(raw, 8, 11)
		return rotateImmediate(imm8, rotate4, b2u(carryIn))
	}

	rm := c.readOperand(bits.Bits(raw, 0, 3))
	st := shiftType(bits.Bits(raw, 5, 6))

	if bits.BitSet(raw, 4) {
		rs := c.readOperand(bits.Bits(raw, 8, 11))
		return shiftByRegister(st, rm, rs, carryIn)
	}

	amount := bits.Bits(raw, 7, 11)
	return shiftByImmediate(st, rm, amount, carryIn)
}

func b2u(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// execDataProcessing executes AND/EOR/SUB/.../MVN.
func execDataProcessing(c *Cpu, raw uint32) {
	opcode := dpOpcode(bits.Bits(raw, 21, 24))
	sBit := bits.BitSet(raw, 20)
	rn := bits.Bits(raw, 16, 19)
	rd := bits.Bits(raw, 12, 15)

	op2 := c.operand2(raw)
	op1 := c.readOperand(rn)

	var result uint32
	var carryOut, overflowOut bool
	logical := false

	switch opcode {
	case dpAND:
		result = op1 & op2.value
		logical = true
	case dpEOR:
		result = op1 ^ op2.value
		logical = true
	case dpSUB:
		result = op1 - op2.value
		carryOut, overflowOut = bits.SubCarry(op1, op2.value, 1), bits.SubOverflow(op1, op2.value, 1)
	case dpRSB:
		result = op2.value - op1
		carryOut, overflowOut = bits.SubCarry(op2.value, op1, 1), bits.SubOverflow(op2.value, op1, 1)
	case dpADD:
		result = op1 + op2.value
		carryOut, overflowOut = bits.AddCarry(op1, op2.value, 0), bits.AddOverflow(op1, op2.value, 0)
	case dpADC:
		cin := b2u(carry(c.Regs.CPSR()))
		result = op1 + op2.value + cin
		carryOut, overflowOut = bits.AddCarry(op1, op2.value, cin), bits.AddOverflow(op1, op2.value, cin)
	case dpSBC:
		cin := b2u(carry(c.Regs.CPSR()))
		borrow := 1 - cin
		result = op1 - op2.value - borrow
		carryOut, overflowOut = bits.SubCarry(op1, op2.value, cin), bits.SubOverflow(op1, op2.value, cin)
	case dpRSC:
		cin := b2u(carry(c.Regs.CPSR()))
		borrow := 1 - cin
		result = op2.value - op1 - borrow
		carryOut, overflowOut = bits.SubCarry(op2.value, op1, cin), bits.SubOverflow(op2.value, op1, cin)
	case dpTST:
		result = op1 & op2.value
		logical = true
	case dpTEQ:
		result = op1 ^ op2.value
		logical = true
	case dpCMP:
		result = op1 - op2.value
		carryOut, overflowOut = bits.SubCarry(op1, op2.value, 1), bits.SubOverflow(op1, op2.value, 1)
	case dpCMN:
		result = op1 + op2.value
		carryOut, overflowOut = bits.AddCarry(op1, op2.value, 0), bits.AddOverflow(op1, op2.value, 0)
	case dpORR:
		result = op1 | op2.value
		logical = true
	case dpMOV:
		result = op2.value
		logical = true
	case dpBIC:
		result = op1 &^ op2.value
		logical = true
	case dpMVN:
		result = ^op2.value
		logical = true
	}

	writesResult := opcode != dpTST && opcode != dpTEQ && opcode != dpCMP && opcode != dpCMN

	if sBit {
		if rd == 15 {
			mode := c.Regs.CurrentMode()
			if mode.HasSPSR() {
				c.Regs.SetCPSR(c.Regs.SPSR(mode))
			} else {
				c.unpredictable("S=1 data-processing write to r15 with no SPSR")
			}
		} else {
			psr := c.Regs.CPSR()
			if logical {
				setNZCV(&psr, result, op2.carryOut, overflow(psr))
			} else {
				setNZCV(&psr, result, carryOut, overflowOut)
			}
			c.Regs.SetCPSR(psr)
		}
	}

	if writesResult {
		c.writeRegister(rd, result)
	}
}

func disasmDataProcessing(raw uint32) string {
	opcode := dpOpcode(bits.Bits(raw, 21, 24))
	rd := bits.Bits(raw, 12, 15)
	rn := bits.Bits(raw, 16, 19)
	s := ""
	if bits.BitSet(raw, 20) {
		s = "S"
	}
	switch opcode {
	case dpMOV, dpMVN:
		return fmt.Sprintf("%s%s R%d, #op2", dpMnemonics[opcode], s, rd)
	case dpTST, dpTEQ, dpCMP, dpCMN:
		return fmt.Sprintf("%s R%d, #op2", dpMnemonics[opcode], rn)
	default:
		return fmt.Sprintf("%s%s R%d, R%d, #op2", dpMnemonics[opcode], s, rd, rn)
	}
}

// execPSRTransfer executes MRS/MSR. MRS copies CPSR or
// SPSR into Rd. MSR updates CPSR or SPSR under the 4-bit field mask; in
// User mode only the flag byte is writable, and a requested T-bit change
// is unpredictable (governed by config.MSRControlTBitChangeHalts).
func execPSRTransfer(c *Cpu, raw uint32) {
	spsrBit := bits.BitSet(raw, 22)
	mode := c.Regs.CurrentMode()

	if !bits.BitSet(raw, 21) {
		// MRS
		rd := bits.Bits(raw, 12, 15)
		var value uint32
		if spsrBit {
			value = c.Regs.SPSR(mode)
		} else {
			value = c.Regs.CPSR()
		}
		c.writeRegister(rd, value)
		return
	}

	// MSR
	var operand uint32
	if bits.BitSet(raw, 25) {
		imm8 := bits.Bits(raw, 0, 7)
		rotate4 := bits.Bits(raw, 8, 11)
		operand = rotateImmediate(imm8, rotate4, 0).value
	} else {
		operand = c.readOperand(bits.Bits(raw, 0, 3))
	}

	var mask uint32
	if bits.BitSet(raw, 19) {
		mask |= 0xff000000 // f: flags
	}
	if bits.BitSet(raw, 18) {
		mask |= 0x00ff0000 // s: status
	}
	if bits.BitSet(raw, 17) {
		mask |= 0x0000ff00 // x: extension
	}
	if bits.BitSet(raw, 16) {
		mask |= 0x000000ff // c: control
	}

	if mode == registers.User {
		mask &= 0xff000000 // only flag byte writable in User mode
	}

	if spsrBit {
		if !mode.HasSPSR() {
			c.unpredictable("MSR to SPSR in a mode with no SPSR")
			return
		}
		old := c.Regs.SPSR(mode)
		c.Regs.SetSPSR(mode, (old &^ mask) | (operand & mask))
		return
	}

	old := c.Regs.CPSR()
	newCPSR := (old &^ mask) | (operand & mask)

	if mask&0x000000ff != 0 && thumbState(old) != thumbState(newCPSR) {
		if c.ins.Config.MSRControlTBitChangeHalts {
			c.unimplemented("MSR T-bit change", raw)
			return
		}
		c.unpredictable("MSR changed the T bit")
		newCPSR = (newCPSR &^ (1 << psrT)) | (old & (1 << psrT))
	}

	c.Regs.SetCPSR(newCPSR)
}

func disasmPSRTransfer(raw uint32) string {
	psr := "CPSR"
	if bits.BitSet(raw, 22) {
		psr = "SPSR"
	}
	if !bits.BitSet(raw, 21) {
		return fmt.Sprintf("MRS R%d, %s", bits.Bits(raw, 12, 15), psr)
	}
	return fmt.Sprintf("MSR %s, #op", psr)
}
