// SPDX-License-Identifier: GPL-3.0-or-later

package registers_test

import (
	"testing"

	"github.com/grace-yuwei-li/gba-emu/hardware/cpu/registers"
	"github.com/grace-yuwei-li/gba-emu/test"
)

func TestLowRegistersSharedAcrossModes(t *testing.T) {
	f := registers.New()

	modes := []registers.Mode{
		registers.User, registers.FIQ, registers.IRQ,
		registers.Supervisor, registers.Abort, registers.Undefined, registers.System,
	}

	for r := uint32(0); r <= 7; r++ {
		f.Set(r, registers.User, 0x1000+r)
		for _, m := range modes {
			test.ExpectEquality(t, f.Get(r, m), uint32(0x1000+r))
		}
	}

	f.SetPC(0x08000100)
	for _, m := range modes {
		test.ExpectEquality(t, f.Get(15, m), uint32(0x08000100))
	}
}

func TestFIQBanksR8ToR12(t *testing.T) {
	f := registers.New()

	f.Set(9, registers.User, 0xaaaa)
	test.ExpectEquality(t, f.Get(9, registers.FIQ), uint32(0))

	f.Set(9, registers.FIQ, 0xbbbb)
	test.ExpectEquality(t, f.Get(9, registers.User), uint32(0xaaaa))
	test.ExpectEquality(t, f.Get(9, registers.FIQ), uint32(0xbbbb))
	test.ExpectEquality(t, f.Get(9, registers.IRQ), uint32(0xaaaa))
}

func TestR13R14BankedPerPrivilegedMode(t *testing.T) {
	f := registers.New()

	f.Set(13, registers.User, 0x03007f00)
	f.Set(13, registers.IRQ, 0x03007fa0)
	f.Set(13, registers.Supervisor, 0x03007fe0)

	test.ExpectEquality(t, f.Get(13, registers.User), uint32(0x03007f00))
	test.ExpectEquality(t, f.Get(13, registers.System), uint32(0x03007f00))
	test.ExpectEquality(t, f.Get(13, registers.IRQ), uint32(0x03007fa0))
	test.ExpectEquality(t, f.Get(13, registers.Supervisor), uint32(0x03007fe0))

	f.Set(14, registers.Abort, 0xdeadbeef)
	test.ExpectEquality(t, f.Get(14, registers.Abort), uint32(0xdeadbeef))
	test.ExpectInequality(t, f.Get(14, registers.Undefined), uint32(0xdeadbeef))
}

func TestSPSRPerMode(t *testing.T) {
	f := registers.New()
	f.SetCPSR(0x6000001f)

	test.ExpectEquality(t, f.SPSR(registers.User), f.CPSR())
	test.ExpectEquality(t, f.SPSR(registers.System), f.CPSR())

	f.SetSPSR(registers.Supervisor, 0x00000013)
	f.SetSPSR(registers.IRQ, 0x00000012)
	test.ExpectEquality(t, f.SPSR(registers.Supervisor), uint32(0x00000013))
	test.ExpectEquality(t, f.SPSR(registers.IRQ), uint32(0x00000012))
	test.ExpectInequality(t, f.SPSR(registers.Supervisor), f.SPSR(registers.IRQ))
}

func TestModeStringAndValidity(t *testing.T) {
	test.ExpectEquality(t, registers.IRQ.Valid(), true)
	test.ExpectEquality(t, registers.Mode(0).Valid(), false)
	test.ExpectEquality(t, registers.User.HasSPSR(), false)
	test.ExpectEquality(t, registers.Supervisor.HasSPSR(), true)
	test.ExpectEquality(t, registers.FIQ.String(), "fiq")
}
