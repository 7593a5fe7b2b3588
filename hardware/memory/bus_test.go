// SPDX-License-Identifier: GPL-3.0-or-later

package memory_test

import (
	"testing"

	"github.com/grace-yuwei-li/gba-emu/hardware/instance"
	"github.com/grace-yuwei-li/gba-emu/hardware/memory"
	"github.com/grace-yuwei-li/gba-emu/hardware/ppu"
	"github.com/grace-yuwei-li/gba-emu/test"
)

type fakeOpenBus struct{ v uint32 }

func (f fakeOpenBus) LastPrefetchedOpcode() uint32 { return f.v }

func TestWordReadRotatesOnMisalignment(t *testing.T) {
	b := memory.NewBus(instance.New())
	b.WriteWord(0x03000000, 0x01020304)

	test.ExpectEquality(t, b.ReadWord(0x03000000), uint32(0x01020304))
	test.ExpectEquality(t, b.ReadWord(0x03000001), uint32(0x04010203))
	test.ExpectEquality(t, b.ReadWord(0x03000002), uint32(0x03040102))
	test.ExpectEquality(t, b.ReadWord(0x03000003), uint32(0x02030401))
}

func TestHalfReadRotatesOnMisalignment(t *testing.T) {
	b := memory.NewBus(instance.New())
	b.WriteHalf(0x03000000, 0xabcd)
	test.ExpectEquality(t, b.ReadHalf(0x03000000), uint16(0xabcd))
	test.ExpectEquality(t, b.ReadHalf(0x03000001), uint16(0xcdab))
}

func TestOpenBusReturnsLastPrefetchedOpcode(t *testing.T) {
	b := memory.NewBus(instance.New())
	b.SetOpenBusSource(fakeOpenBus{v: 0xe1a00000})
	test.ExpectEquality(t, b.ReadWord(0x10000000), uint32(0xe1a00000))
}

func TestWritesToBIOSAndROMAreIgnored(t *testing.T) {
	b := memory.NewBus(instance.New())
	before := b.ReadByte(0x00000010)
	b.WriteByte(0x00000010, 0xff)
	test.ExpectEquality(t, b.ReadByte(0x00000010), before)

	b.LoadROM([]byte{1, 2, 3, 4})
	b.WriteByte(0x08000000, 0xff)
	test.ExpectEquality(t, b.ReadByte(0x08000000), byte(1))
}

func TestIFWriteOneToClear(t *testing.T) {
	b := memory.NewBus(instance.New())
	// seed bits via direct poke is not possible; use SetInterrupt path
	b.IO.SetInterrupt(ppu.VBlank, true)
	b.IO.SetInterrupt(ppu.HBlank, true)

	// exercise the documented invariant directly through IoMap's surface:
	// writing 1 clears that pending bit, writing 0 leaves a bit pending.
	before := b.ReadByte(0x04000202)
	b.WriteByte(0x04000202, byte(memory.IntVBlank))
	test.ExpectEquality(t, b.ReadByte(0x04000202), before&^byte(memory.IntVBlank))
	test.ExpectEquality(t, b.ReadByte(0x04000202), byte(memory.IntHBlank))
}

func TestKEYINPUTIsActiveLow(t *testing.T) {
	b := memory.NewBus(instance.New())
	all := b.ReadHalf(0x04000130)
	test.ExpectEquality(t, all&0x3ff, uint16(0x3ff))

	b.SetKey(memory.KeyA, true)
	pressed := b.ReadHalf(0x04000130)
	test.ExpectEquality(t, pressed&0x1, uint16(0))
}

func TestROMTooLargeIsRejected(t *testing.T) {
	b := memory.NewBus(instance.New())
	err := b.LoadROM(make([]byte, 33*1024*1024))
	test.ExpectFailure(t, err)
}
