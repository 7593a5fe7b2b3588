// SPDX-License-Identifier: GPL-3.0-or-later

package cpu

import (
	"fmt"

	"github.com/grace-yuwei-li/gba-emu/hardware/bits"
	"github.com/grace-yuwei-li/gba-emu/hardware/cpu/registers"
)

// execBranchExchange executes BX: the T bit takes Rm's bit 0, Rm's bit 0 is
// cleared before the value lands in PC, and the pipeline is flushed
//.
func execBranchExchange(c *Cpu, raw uint32) {
	rm := bits.Bits(raw, 0, 3)
	target := c.readOperand(rm)

	psr := c.Regs.CPSR()
	bits.MutBit(&psr, psrT, target&1 != 0)
	c.Regs.SetCPSR(psr)

	c.Regs.SetPC(target &^ 1)
	c.flush()
}

func disasmBranchExchange(raw uint32) string {
	return fmt.Sprintf("BX R%d", bits.Bits(raw, 0, 3))
}

// execSoftwareInterrupt executes SWI: save the return address to r14_svc and
// CPSR to SPSR_svc, enter Supervisor mode in ARM state with IRQs disabled,
// and branch to the fixed vector.
func execSoftwareInterrupt(c *Cpu, raw uint32) {
	returnAddr := c.executingPC + 4
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

func disasmSoftwareInterrupt(raw uint32) string {
	return fmt.Sprintf("SWI #%#x", bits.Bits(raw, 0, 23))
}

// execBranch executes B/BL: a PC-relative branch by a 24-bit signed word
// offset, shifted left 2. BL additionally stores the return address in r14
//.
func execBranch(c *Cpu, raw uint32) {
	offset := bits.SignExtend(bits.Bits(raw, 0, 23), 23) << 2
	link := bits.BitSet(raw, 24)

	if link {
		c.Regs.Set(14, c.Regs.CurrentMode(), c.executingPC+4)
	}

	target := c.readOperand(15) + offset
	c.Regs.SetPC(target)
	c.flush()
}

func disasmBranch(raw uint32) string {
	offset := int32(bits.SignExtend(bits.Bits(raw, 0, 23), 23) << 2)
	mnemonic := "B"
	if bits.BitSet(raw, 24) {
		mnemonic = "BL"
	}
	return fmt.Sprintf("%s %+d", mnemonic, offset)
}

// execUndefinedARM handles an encoding classified as architecturally
// undefined.
func execUndefinedARM(c *Cpu, raw uint32) {
	c.unimplemented("undefined ARM", raw)
}

func disasmUndefinedARM(raw uint32) string {
	return fmt.Sprintf("UNDEFINED %#08x", raw)
}
