// SPDX-License-Identifier: GPL-3.0-or-later

package cpu

import (
	"fmt"

	"github.com/grace-yuwei-li/gba-emu/hardware/bits"
	"github.com/grace-yuwei-li/gba-emu/hardware/cpu/registers"
)

// execThumbConditionalBranch executes format 16: Bcc with an 8-bit signed
// offset scaled ×2. An unmet condition is a no-op; cond 0xf
// is reserved for SWI and never reaches this handler.
func execThumbConditionalBranch(c *Cpu, raw uint16) {
	cond := bits.Bits(uint32(raw), 8, 11)
	if !condition(cond, c.Regs.CPSR()) {
		return
	}
	offset := bits.SignExtend(bits.Bits(uint32(raw), 0, 7), 7) << 1
	target := c.readOperand(15) + offset
	c.Regs.SetPC(target)
	c.flush()
}

func disasmThumbConditionalBranch(raw uint16) string {
	offset := int32(bits.SignExtend(bits.Bits(uint32(raw), 0, 7), 7) << 1)
	return fmt.Sprintf("B{cond} %+d", offset)
}

// execThumbSoftwareInterrupt executes format 17: SWI, identical in effect
// to the ARM encoding but entered from Thumb state.
func execThumbSoftwareInterrupt(c *Cpu, raw uint16) {
	returnAddr := c.executingPC + 2
	oldCPSR := c.Regs.CPSR()

	c.Regs.Set(14, registers.Supervisor, returnAddr)
	c.Regs.SetSPSR(registers.Supervisor, oldCPSR)

	newCPSR := (oldCPSR &^ psrModeMask) | uint32(registers.Supervisor)
	newCPSR &^= 1 << psrT
	newCPSR |= 1 << psrI
	c.Regs.SetCPSR(newCPSR)

	c.Regs.SetPC(0x08)
	c.flush()
}

func disasmThumbSoftwareInterrupt(raw uint16) string {
	return fmt.Sprintf("SWI #%#x", bits.Bits(uint32(raw), 0, 7))
}

// execThumbUnconditionalBranch executes format 18: B with an 11-bit signed
// offset scaled ×2.
func execThumbUnconditionalBranch(c *Cpu, raw uint16) {
	offset := bits.SignExtend(bits.Bits(uint32(raw), 0, 10), 10) << 1
	target := c.readOperand(15) + offset
	c.Regs.SetPC(target)
	c.flush()
}

func disasmThumbUnconditionalBranch(raw uint16) string {
	offset := int32(bits.SignExtend(bits.Bits(uint32(raw), 0, 10), 10) << 1)
	return fmt.Sprintf("B %+d", offset)
}

// execThumbLongBranchLink executes format 19: BL's two-halfword pair. The
// first half sets LR = PC + sign_extend(offset<<12); the second sets
// PC = LR + (offset<<1) and LR = (old next-instruction address) | 1
//.
func execThumbLongBranchLink(c *Cpu, raw uint16) {
	mode := c.Regs.CurrentMode()
	low := bits.BitSet(uint32(raw), 11)
	offset11 := bits.Bits(uint32(raw), 0, 10)

	if !low {
		hi := bits.SignExtend(offset11, 10) << 12
		c.Regs.Set(14, mode, c.readOperand(15)+hi)
		return
	}

	lr := c.Regs.Get(14, mode)
	nextInstr := c.executingPC + 2
	target := lr + offset11<<1
	c.Regs.Set(14, mode, nextInstr|1)
	c.Regs.SetPC(target)
	c.flush()
}

func disasmThumbLongBranchLink(raw uint16) string {
	if !bits.BitSet(uint32(raw), 11) {
		return fmt.Sprintf("BL (high) #%d", bits.Bits(uint32(raw), 0, 10))
	}
	return fmt.Sprintf("BL (low) #%d", bits.Bits(uint32(raw), 0, 10))
}

// execThumbUndefined handles a Thumb bit pattern with no defined meaning
//.
func execThumbUndefined(c *Cpu, raw uint16) {
	c.unimplemented("undefined Thumb", uint32(raw))
}

func disasmThumbUndefined(raw uint16) string {
	return fmt.Sprintf("UNDEFINED %#04x", raw)
}
