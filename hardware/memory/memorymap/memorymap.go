// SPDX-License-Identifier: GPL-3.0-or-later

// Package memorymap classifies a 32-bit address into the region of the
// console's address space that owns it. Nothing in this package touches
// memory contents; it only answers "where does this address live".
package memorymap

import "fmt"

// Area identifies which region of the 64MiB address space an address falls
// in.
type Area int

const (
	// OpenBus covers any high nibble not named below; reads return the last
	// prefetched opcode, writes are dropped.
	OpenBus Area = iota
	BIOS
	EWRAM
	IWRAM
	IO
	PaletteRAM
	VRAM
	OAM
	CartROM
	CartSRAM
)

func (a Area) String() string {
	switch a {
	case BIOS:
		return "BIOS"
	case EWRAM:
		return "EWRAM"
	case IWRAM:
		return "IWRAM"
	case IO:
		return "IO"
	case PaletteRAM:
		return "PaletteRAM"
	case VRAM:
		return "VRAM"
	case OAM:
		return "OAM"
	case CartROM:
		return "CartROM"
	case CartSRAM:
		return "CartSRAM"
	default:
		return "OpenBus"
	}
}

// Sizes and masks for the regions that are plain, fully-populated memory.
const (
	BIOSSize  = 0x4000
	EWRAMSize = 0x40000
	IWRAMSize = 0x8000
	IOSize    = 0x400
	PaletteSize = 0x400
	VRAMSize  = 0x18000
	OAMSize   = 0x400

	EWRAMMask = EWRAMSize - 1
	IWRAMMask = IWRAMSize - 1
	IOMask    = IOSize - 1
	PaletteMask = PaletteSize - 1
	OAMMask   = OAMSize - 1
)

// Classify returns the Area addr belongs to and, for bank-mirrored regions,
// the offset already reduced into that area's own index space.
func Classify(addr uint32) (Area, uint32) {
	switch {
	case addr < 0x0000_4000:
		return BIOS, addr
	case addr >= 0x0200_0000 && addr <= 0x02ff_ffff:
		return EWRAM, addr & EWRAMMask
	case addr >= 0x0300_0000 && addr <= 0x03ff_ffff:
		return IWRAM, addr & IWRAMMask
	case addr >= 0x0400_0000 && addr <= 0x0400_03fe:
		return IO, addr & IOMask
	case addr >= 0x0500_0000 && addr <= 0x05ff_ffff:
		return PaletteRAM, addr & PaletteMask
	case addr >= 0x0600_0000 && addr <= 0x06ff_ffff:
		// VRAM mirrors every 128KiB, but the top 32KiB of each 128KiB
		// window repeats the last 32KiB of the 96KiB VRAM bank.
		offset := addr & 0x1ffff
		if offset >= VRAMSize {
			offset -= 0x8000
		}
		return VRAM, offset
	case addr >= 0x0700_0000 && addr <= 0x07ff_ffff:
		return OAM, addr & OAMMask
	case addr >= 0x0800_0000 && addr <= 0x09ff_ffff:
		return CartROM, addr - 0x0800_0000
	case addr >= 0x0a00_0000 && addr <= 0x0dff_ffff:
		// mirrors of cartridge ROM, 32MiB apart
		return CartROM, (addr - 0x0800_0000) % 0x0200_0000
	case addr >= 0x0e00_0000 && addr <= 0x0e00_ffff:
		return CartSRAM, addr & 0xffff
	default:
		return OpenBus, addr
	}
}

// Summary renders the address map as a human-readable table, mirroring the
// layout documented for the console's 64MiB space. Used by tests and
// debugging tools to catch accidental changes to the ranges above.
func Summary() string {
	rows := []struct {
		lo, hi uint32
		name   string
	}{
		{0x0000_0000, 0x0000_3fff, "BIOS"},
		{0x0200_0000, 0x02ff_ffff, "EWRAM"},
		{0x0300_0000, 0x03ff_ffff, "IWRAM"},
		{0x0400_0000, 0x0400_03fe, "IO"},
		{0x0500_0000, 0x05ff_ffff, "PaletteRAM"},
		{0x0600_0000, 0x06ff_ffff, "VRAM"},
		{0x0700_0000, 0x07ff_ffff, "OAM"},
		{0x0800_0000, 0x09ff_ffff, "CartROM"},
		{0x0a00_0000, 0x0dff_ffff, "CartROM (mirror)"},
		{0x0e00_0000, 0x0e00_ffff, "CartSRAM"},
	}

	s := ""
	for _, r := range rows {
		s += fmt.Sprintf("%08x -> %08x\t%s\n", r.lo, r.hi, r.name)
	}
	return s
}
