// SPDX-License-Identifier: GPL-3.0-or-later

package cpu

import (
	"testing"

	"github.com/grace-yuwei-li/gba-emu/hardware/cpu/registers"
	"github.com/grace-yuwei-li/gba-emu/hardware/instance"
	"github.com/grace-yuwei-li/gba-emu/hardware/memory"
	"github.com/grace-yuwei-li/gba-emu/test"
)

// thumbALURaw builds a format-4 ALU instruction word: opcode (bits 6-9), Rs
// (bits 3-5), Rd (bits 0-2).
func thumbALURaw(opcode, rs, rd uint32) uint16 {
	return uint16(0x4000 | opcode<<6 | rs<<3 | rd)
}

// AND (opcode 0) must update N/Z only, leaving C and V exactly as they were,
// since it carries no shifter operand to derive a carry-out from.
func TestThumbALUAndPreservesCarryAndOverflow(t *testing.T) {
	ins := instance.New()
	bus := memory.NewBus(ins)
	c := New(bus, ins)

	c.Regs.Set(0, registers.System, 0xff)
	c.Regs.Set(1, registers.System, 0x0f)
	psr := c.Regs.CPSR()
	psr |= 1 << psrC
	psr |= 1 << psrV
	c.Regs.SetCPSR(psr)

	execThumbALU(c, thumbALURaw(0, 1, 0)) // AND r0, r1

	test.ExpectEquality(t, c.Regs.Get(0, registers.System), uint32(0x0f))
	test.ExpectEquality(t, carry(c.Regs.CPSR()), true)
	test.ExpectEquality(t, overflow(c.Regs.CPSR()), true)
}

// LSL-by-register (opcode 2) must take C from the shifter's carry-out but
// leave V exactly as it was.
func TestThumbALULSLTakesCarryFromShifterLeavesOverflow(t *testing.T) {
	ins := instance.New()
	bus := memory.NewBus(ins)
	c := New(bus, ins)

	c.Regs.Set(0, registers.System, 0x80000000)
	c.Regs.Set(1, registers.System, 1)
	psr := c.Regs.CPSR()
	psr &^= 1 << psrC
	psr |= 1 << psrV
	c.Regs.SetCPSR(psr)

	execThumbALU(c, thumbALURaw(2, 1, 0)) // LSL r0, r1

	test.ExpectEquality(t, c.Regs.Get(0, registers.System), uint32(0))
	test.ExpectEquality(t, carry(c.Regs.CPSR()), true)
	test.ExpectEquality(t, overflow(c.Regs.CPSR()), true)
}

// ADC (opcode 5) is a true arithmetic op: C and V are both recomputed.
func TestThumbALUAdcRecomputesCarryAndOverflow(t *testing.T) {
	ins := instance.New()
	bus := memory.NewBus(ins)
	c := New(bus, ins)

	c.Regs.Set(0, registers.System, 0x7fffffff)
	c.Regs.Set(1, registers.System, 0)
	psr := c.Regs.CPSR()
	psr |= 1 << psrC // carry-in of 1
	c.Regs.SetCPSR(psr)

	execThumbALU(c, thumbALURaw(5, 1, 0)) // ADC r0, r1

	test.ExpectEquality(t, c.Regs.Get(0, registers.System), uint32(0x80000000))
	test.ExpectEquality(t, carry(c.Regs.CPSR()), false)
	test.ExpectEquality(t, overflow(c.Regs.CPSR()), true)
}
