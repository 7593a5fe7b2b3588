// SPDX-License-Identifier: GPL-3.0-or-later

// Package ppu implements the thin dot-clock picture processing unit: just
// enough of the display timing and pixel generation to raise the
// interrupt lines the CPU core services. Richer rendering (sprites,
// affine backgrounds, windowing) is out of scope.
package ppu

import "github.com/grace-yuwei-li/gba-emu/hardware/bits"

// Screen dimensions in pixels, and the blanking extents that follow them
// in the dot/line counters.
const (
	ScreenWidth  = 240
	ScreenHeight = 160

	HBlankWidth  = 68
	VBlankHeight = 68

	dotsPerLine  = ScreenWidth + HBlankWidth  // 308
	linesPerFrame = ScreenHeight + VBlankHeight // 228

	cyclesPerDot = 4
)

// InterruptKind identifies which DISPSTAT-driven interrupt source fired.
// Defined here, not in the memory package, so that this package never
// imports the package that owns the interrupt sink (the IoMap).
type InterruptKind int

const (
	VBlank InterruptKind = iota
	HBlank
	VCount
)

// InterruptSink receives interrupt requests raised by the PPU. The memory
// package's IoMap implements this.
type InterruptSink interface {
	SetInterrupt(kind InterruptKind, value bool)
}

// LcdRegs holds the memory-mapped display control and status registers.
type LcdRegs struct {
	DISPCNT  uint16
	DISPSTAT uint16
	VCOUNT   uint16
	VCountSetting uint8
}

// dispstat bit positions.
const (
	dispstatVBlank      = 0
	dispstatHBlank      = 1
	dispstatVCount      = 2
	dispstatVBlankIRQ   = 3
	dispstatHBlankIRQ   = 4
	dispstatVCountIRQ   = 5
)

// GuestWriteDISPSTAT applies a guest write to DISPSTAT, masking off the
// read-only status bits (0xfff8).
func (r *LcdRegs) GuestWriteDISPSTAT(value uint16) {
	r.DISPSTAT = (r.DISPSTAT & 0x0007) | (value & 0xfff8)
	r.VCountSetting = uint8(value >> 8)
}

// Ppu is the dot-clock engine: an x (dot) counter and the VCOUNT line
// counter, advancing one dot every four CPU cycles.
type Ppu struct {
	Regs LcdRegs

	x           int
	dotCountdown int

	// FrameBuffer holds one RGB triple per pixel, row-major.
	FrameBuffer [ScreenWidth * ScreenHeight * 3]byte

	vram    *[]byte
	palette *[]byte

	sink InterruptSink
}

// New creates a Ppu backed by the given VRAM and palette RAM byte slices
// (owned by the memory bus) and wired to sink for interrupt signalling.
func New(vram, palette *[]byte, sink InterruptSink) *Ppu {
	return &Ppu{
		vram:         vram,
		palette:      palette,
		sink:         sink,
		dotCountdown: cyclesPerDot,
	}
}

// Tick advances the dot engine by one CPU cycle. Every
// fourth call advances the dot/line counters and maintains DISPSTAT.
func (p *Ppu) Tick() {
	p.dotCountdown--
	if p.dotCountdown > 0 {
		return
	}
	p.dotCountdown = cyclesPerDot

	if p.x < ScreenWidth && int(p.Regs.VCOUNT) < ScreenHeight {
		p.drawPixel(p.x, int(p.Regs.VCOUNT))
	}

	p.x++

	p.setStatusBit(dispstatHBlank, p.x >= ScreenWidth, HBlank)

	if p.x >= dotsPerLine {
		p.x = 0
		p.setStatusBit(dispstatHBlank, false, HBlank)

		p.Regs.VCOUNT++
		if int(p.Regs.VCOUNT) >= linesPerFrame {
			p.Regs.VCOUNT = 0
		}

		p.setStatusBit(dispstatVBlank, p.Regs.VCOUNT >= ScreenHeight, VBlank)

		match := p.Regs.VCOUNT == uint16(p.Regs.VCountSetting)
		p.setStatusBit(dispstatVCount, match, VCount)
	}
}

// setStatusBit writes DISPSTAT bit index via the force-write path (PPU is
// always allowed to touch its own status bits) and, on a rising edge,
// raises kind's interrupt if its DISPSTAT enable bit is set.
func (p *Ppu) setStatusBit(index uint, value bool, kind InterruptKind) {
	was := bits.BitSet(uint32(p.Regs.DISPSTAT), index)
	var v uint32 = uint32(p.Regs.DISPSTAT)
	bits.MutBit(&v, index, value)
	p.Regs.DISPSTAT = uint16(v)

	if !was && value {
		enableBit := index + 3 // VBlank->3, HBlank->4, VCount->5
		if bits.BitSet(uint32(p.Regs.DISPSTAT), enableBit) {
			p.sink.SetInterrupt(kind, true)
		}
	}
}

// drawPixel computes the colour of pixel (x, y) from DISPCNT's mode and
// writes it into the frame buffer. Modes other than 0, 3 and 4 draw a
// placeholder colour.
func (p *Ppu) drawPixel(x, y int) {
	mode := p.Regs.DISPCNT & 0x7
	offset := (y*ScreenWidth + x) * 3

	var r, g, b byte

	switch mode {
	case 3:
		// 16-bit bitmap mode, one BGR555 pixel per screen pixel.
		idx := (y*ScreenWidth + x) * 2
		if p.vram != nil && idx+1 < len(*p.vram) {
			lo := (*p.vram)[idx]
			hi := (*p.vram)[idx+1]
			pixel := uint16(lo) | uint16(hi)<<8
			r, g, b = bgr555(pixel)
		}
	case 4:
		// 8-bit paletted bitmap mode, indexing palette RAM.
		idx := y*ScreenWidth + x
		if p.vram != nil && idx < len(*p.vram) {
			paletteIndex := (*p.vram)[idx]
			r, g, b = p.paletteColour(paletteIndex)
		}
	case 0:
		// Tile/palette mode: background composition is out of scope;
		// use palette entry 0 as a representative placeholder.
		r, g, b = p.paletteColour(0)
	default:
		r, g, b = 0x40, 0x40, 0x40
	}

	p.FrameBuffer[offset] = r
	p.FrameBuffer[offset+1] = g
	p.FrameBuffer[offset+2] = b
}

// Snapshot is a read-only view of the PPU's display timing state and
// current frame buffer, used by inspection tooling.
type Snapshot struct {
	DISPCNT, DISPSTAT, VCOUNT uint16
	X                         int
	FrameBuffer               [ScreenWidth * ScreenHeight * 3]byte
}

// Inspect captures the PPU's current registers and frame buffer.
func (p *Ppu) Inspect() Snapshot {
	return Snapshot{
		DISPCNT:     p.Regs.DISPCNT,
		DISPSTAT:    p.Regs.DISPSTAT,
		VCOUNT:      p.Regs.VCOUNT,
		X:           p.x,
		FrameBuffer: p.FrameBuffer,
	}
}

func (p *Ppu) paletteColour(index byte) (byte, byte, byte) {
	if p.palette == nil {
		return 0, 0, 0
	}
	i := int(index) * 2
	if i+1 >= len(*p.palette) {
		return 0, 0, 0
	}
	lo := (*p.palette)[i]
	hi := (*p.palette)[i+1]
	pixel := uint16(lo) | uint16(hi)<<8
	return bgr555(pixel)
}

// bgr555 expands a 15-bit BGR555 pixel (5 bits per channel) to 8-bit
// channels.
func bgr555(pixel uint16) (r, g, b byte) {
	r = byte((pixel & 0x1f) << 3)
	g = byte(((pixel >> 5) & 0x1f) << 3)
	b = byte(((pixel >> 10) & 0x1f) << 3)
	return
}
