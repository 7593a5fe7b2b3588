// SPDX-License-Identifier: GPL-3.0-or-later

// Package memory implements the address-space router: BIOS, work RAM,
// video memory and the I/O window, with the alignment, rotation and
// open-bus semantics ARMv4 mandates for mis-aligned accesses.
package memory

import (
	"github.com/grace-yuwei-li/gba-emu/curatederr"
	"github.com/grace-yuwei-li/gba-emu/hardware/instance"
	"github.com/grace-yuwei-li/gba-emu/hardware/memory/memorymap"
	"github.com/grace-yuwei-li/gba-emu/hardware/ppu"
	"github.com/grace-yuwei-li/gba-emu/logger"
)

// OpenBusSource supplies the value returned by reads of the open-bus
// region: the CPU's last prefetched opcode. Defined here, rather than
// imported from the cpu package, so that this package never depends on
// the package that depends on it.
type OpenBusSource interface {
	LastPrefetchedOpcode() uint32
}

// Bus routes every CPU memory access to the region that owns the address,
// and owns the PPU and I/O map by composition: interrupts are function
// calls from PPU into IoMap, not shared state.
type Bus struct {
	bios    [memorymap.BIOSSize]byte
	ewram   [memorymap.EWRAMSize]byte
	iwram   [memorymap.IWRAMSize]byte
	palette [memorymap.PaletteSize]byte
	vram    [memorymap.VRAMSize]byte
	oam     [memorymap.OAMSize]byte
	cartROM []byte
	cartSRAM [0x10000]byte

	lcdRaw [0x60]byte // LCD registers other than DISPCNT/DISPSTAT/VCOUNT

	IO  *IoMap
	Ppu *ppu.Ppu

	openBus OpenBusSource

	ins *instance.Instance
}

const maxCartROM = 32 * 1024 * 1024

// NewBus creates a Bus with empty memory and a freshly constructed PPU.
func NewBus(ins *instance.Instance) *Bus {
	b := &Bus{
		IO:  newIoMap(),
		ins: ins,
	}
	vramSlice := b.vram[:]
	paletteSlice := b.palette[:]
	b.Ppu = ppu.New(&vramSlice, &paletteSlice, b.IO)
	return b
}

// SetOpenBusSource wires the CPU as the open-bus fallback.
func (b *Bus) SetOpenBusSource(src OpenBusSource) {
	b.openBus = src
}

// LoadROM copies up to 32MiB of cartridge ROM bytes from offset 0.
func (b *Bus) LoadROM(data []byte) error {
	if len(data) > maxCartROM {
		return curatederr.Errorf(curatederr.ROMTooLarge, len(data), maxCartROM)
	}
	b.cartROM = make([]byte, len(data))
	copy(b.cartROM, data)
	return nil
}

// SetBIOS replaces the 16KiB BIOS image.
func (b *Bus) SetBIOS(data []byte) error {
	if len(data) != memorymap.BIOSSize {
		return curatederr.Errorf(curatederr.BIOSWrongSize, len(data), memorymap.BIOSSize)
	}
	copy(b.bios[:], data)
	return nil
}

// SetKey forwards to the I/O map's keypad state.
func (b *Bus) SetKey(key Key, pressed bool) {
	b.IO.SetKey(key, pressed)
}

// ReadByte reads a single byte with no alignment concerns.
func (b *Bus) ReadByte(addr uint32) byte {
	area, offset := memorymap.Classify(addr)
	switch area {
	case memorymap.BIOS:
		return b.bios[offset]
	case memorymap.EWRAM:
		return b.ewram[offset]
	case memorymap.IWRAM:
		return b.iwram[offset]
	case memorymap.IO:
		return b.readIOByte(offset)
	case memorymap.PaletteRAM:
		return b.palette[offset]
	case memorymap.VRAM:
		return b.vram[offset]
	case memorymap.OAM:
		return b.oam[offset]
	case memorymap.CartROM:
		if int(offset) < len(b.cartROM) {
			return b.cartROM[offset]
		}
		return 0
	case memorymap.CartSRAM:
		return b.cartSRAM[offset]
	default:
		return byte(b.lastPrefetched())
	}
}

// WriteByte writes a single byte, dropping writes to read-only regions.
func (b *Bus) WriteByte(addr uint32, value byte) {
	area, offset := memorymap.Classify(addr)
	switch area {
	case memorymap.BIOS, memorymap.CartROM, memorymap.OpenBus:
		// read-only or unmapped
	case memorymap.EWRAM:
		b.ewram[offset] = value
	case memorymap.IWRAM:
		b.iwram[offset] = value
	case memorymap.IO:
		b.writeIOByte(offset, value)
	case memorymap.PaletteRAM:
		b.palette[offset] = value
	case memorymap.VRAM:
		b.vram[offset] = value
	case memorymap.OAM:
		b.oam[offset] = value
	case memorymap.CartSRAM:
		b.cartSRAM[offset] = value
	}
}

func (b *Bus) readIOByte(offset uint32) byte {
	if offset < 0x60 {
		switch offset {
		case 0x00:
			return byte(b.Ppu.Regs.DISPCNT)
		case 0x01:
			return byte(b.Ppu.Regs.DISPCNT >> 8)
		case 0x04:
			return byte(b.Ppu.Regs.DISPSTAT)
		case 0x05:
			return byte(b.Ppu.Regs.DISPSTAT >> 8)
		case 0x06:
			return byte(b.Ppu.Regs.VCOUNT)
		case 0x07:
			return byte(b.Ppu.Regs.VCOUNT >> 8)
		default:
			return b.lcdRaw[offset]
		}
	}
	return b.IO.ReadByte(offset)
}

func (b *Bus) writeIOByte(offset uint32, value byte) {
	if offset < 0x60 {
		switch offset {
		case 0x00:
			b.Ppu.Regs.DISPCNT = (b.Ppu.Regs.DISPCNT &^ 0x00ff) | uint16(value)
		case 0x01:
			b.Ppu.Regs.DISPCNT = (b.Ppu.Regs.DISPCNT &^ 0xff00) | uint16(value)<<8
		case 0x04:
			b.Ppu.Regs.GuestWriteDISPSTAT((b.Ppu.Regs.DISPSTAT &^ 0x00ff) | uint16(value))
		case 0x05:
			b.Ppu.Regs.GuestWriteDISPSTAT((b.Ppu.Regs.DISPSTAT &^ 0xff00) | uint16(value)<<8)
		case 0x06, 0x07:
			// VCOUNT is read-only
		default:
			b.lcdRaw[offset] = value
		}
		return
	}
	b.IO.WriteByte(offset, value)
}

func (b *Bus) lastPrefetched() uint32 {
	if b.openBus == nil {
		return 0
	}
	return b.openBus.LastPrefetchedOpcode()
}

// ReadHalf reads a half-word, forcing 2-byte alignment and rotating the
// result by 8×(addr&1).
func (b *Bus) ReadHalf(addr uint32) uint16 {
	aligned := addr &^ 1
	area, _ := memorymap.Classify(aligned)
	if area == memorymap.OpenBus {
		return uint16(b.lastPrefetched() >> (8 * (addr & 2)))
	}
	v := uint16(b.ReadByte(aligned)) | uint16(b.ReadByte(aligned+1))<<8
	rot := uint(8 * (addr & 1))
	return v>>rot | v<<(16-rot)
}

// ReadSignedHalf reads a half-word sign-extended to 32 bits. A mis-aligned
// read sign-extends the byte at the effective address instead, per the
// documented LDRSH quirk, governed by
// instance.Config.LDRSHMisalignedFallsBackToLDRSB.
func (b *Bus) ReadSignedHalf(addr uint32, cfg bool) uint32 {
	if addr&1 != 0 && cfg {
		v := uint32(b.ReadByte(addr))
		return signExtendByte(v)
	}
	half := b.ReadHalf(addr)
	return signExtendHalf(uint32(half))
}

func signExtendByte(v uint32) uint32 {
	if v&0x80 != 0 {
		return v | 0xffffff00
	}
	return v
}

func signExtendHalf(v uint32) uint32 {
	if v&0x8000 != 0 {
		return v | 0xffff0000
	}
	return v
}

// ReadWord reads a word, forcing 4-byte alignment and rotating the result
// right by 8×(addr&3).
func (b *Bus) ReadWord(addr uint32) uint32 {
	aligned := addr &^ 3
	area, _ := memorymap.Classify(aligned)
	var v uint32
	if area == memorymap.OpenBus {
		v = b.lastPrefetched()
	} else {
		v = uint32(b.ReadByte(aligned)) |
			uint32(b.ReadByte(aligned+1))<<8 |
			uint32(b.ReadByte(aligned+2))<<16 |
			uint32(b.ReadByte(aligned+3))<<24
	}
	rot := uint(8 * (addr & 3))
	if rot == 0 {
		return v
	}
	return v>>rot | v<<(32-rot)
}

// WriteHalf writes a half-word at a 2-byte-aligned address.
func (b *Bus) WriteHalf(addr uint32, value uint16) {
	aligned := addr &^ 1
	b.WriteByte(aligned, byte(value))
	b.WriteByte(aligned+1, byte(value>>8))
}

// WriteWord writes a word at a 4-byte-aligned address.
func (b *Bus) WriteWord(addr uint32, value uint32) {
	aligned := addr &^ 3
	b.WriteByte(aligned, byte(value))
	b.WriteByte(aligned+1, byte(value>>8))
	b.WriteByte(aligned+2, byte(value>>16))
	b.WriteByte(aligned+3, byte(value>>24))
}

// Tick advances the PPU by one dot-engine step.
func (b *Bus) Tick() {
	b.Ppu.Tick()
}

// Inspect is a read-only snapshot used by debugging tools.
type Inspect struct {
	DISPCNT, DISPSTAT, VCOUNT uint16
	IE, IF                    uint16
	IME                       bool
	CartROMSize               int
}

// Inspect captures the current state of the bus's memory-mapped registers.
func (b *Bus) Inspect() Inspect {
	return Inspect{
		DISPCNT:     b.Ppu.Regs.DISPCNT,
		DISPSTAT:    b.Ppu.Regs.DISPSTAT,
		VCOUNT:      b.Ppu.Regs.VCOUNT,
		IE:          b.IO.ie,
		IF:          b.IO.iflags,
		IME:         b.IO.ime&1 != 0,
		CartROMSize: len(b.cartROM),
	}
}

// LogUnmapped records a bus error against an access
// outside every mapped region. The bus's own reads and writes do not call
// it: open-bus reads and dropped writes are silent since they are
// architectural, not erroneous.
func (b *Bus) LogUnmapped(op string, addr uint32) {
	logger.Logf(b.ins.LogPermission, "memory", "%s at unmapped address %#08x", op, addr)
}
