// SPDX-License-Identifier: GPL-3.0-or-later

package ppu_test

import (
	"testing"

	"github.com/grace-yuwei-li/gba-emu/hardware/ppu"
	"github.com/grace-yuwei-li/gba-emu/test"
)

type fakeSink struct {
	raised []ppu.InterruptKind
}

func (f *fakeSink) SetInterrupt(kind ppu.InterruptKind, value bool) {
	if value {
		f.raised = append(f.raised, kind)
	}
}

func TestHBlankSetsAtScreenWidth(t *testing.T) {
	sink := &fakeSink{}
	vram := make([]byte, 0x18000)
	pal := make([]byte, 0x400)
	p := ppu.New(&vram, &pal, sink)

	// bit 4 (HBlank IRQ enable) set so the rising edge is observable
	p.Regs.GuestWriteDISPSTAT(1 << 4)

	for i := 0; i < (ppu.ScreenWidth)*4; i++ {
		p.Tick()
	}

	test.ExpectEquality(t, len(sink.raised) > 0, true)
	test.ExpectEquality(t, sink.raised[0], ppu.HBlank)
}

func TestVBlankFiresAtScreenHeight(t *testing.T) {
	sink := &fakeSink{}
	vram := make([]byte, 0x18000)
	pal := make([]byte, 0x400)
	p := ppu.New(&vram, &pal, sink)
	p.Regs.GuestWriteDISPSTAT(1 << 3)

	dotsPerFrameLine := (ppu.ScreenWidth + 68) * 4
	for line := 0; line < ppu.ScreenHeight+1; line++ {
		for i := 0; i < dotsPerFrameLine; i++ {
			p.Tick()
		}
	}

	found := false
	for _, k := range sink.raised {
		if k == ppu.VBlank {
			found = true
		}
	}
	test.ExpectEquality(t, found, true)
}

func TestGuestWriteMasksReadOnlyBits(t *testing.T) {
	r := ppu.LcdRegs{}
	r.DISPSTAT = 0x0005
	r.GuestWriteDISPSTAT(0xffff)
	test.ExpectEquality(t, r.DISPSTAT&0x0007, uint16(0x0005))
	test.ExpectEquality(t, r.DISPSTAT&0xfff8, uint16(0xfff8))
}
