// SPDX-License-Identifier: GPL-3.0-or-later

package cpu

import "github.com/grace-yuwei-li/gba-emu/hardware/bits"

// thumbClass names the nineteen Thumb encoding classes.
type thumbClass int

const (
	thumbMoveShifted thumbClass = iota
	thumbAddSubtract
	thumbImmediate
	thumbALU
	thumbHiRegisterBX
	thumbPCRelativeLoad
	thumbLoadStoreRegOffset
	thumbLoadStoreHalfwordSigned
	thumbLoadStoreImmOffset
	thumbLoadStoreHalfword
	thumbSPRelativeLoadStore
	thumbLoadAddress
	thumbAddOffsetToSP
	thumbPushPop
	thumbMultipleLoadStore
	thumbConditionalBranch
	thumbSoftwareInterrupt
	thumbUnconditionalBranch
	thumbLongBranchLink
	thumbUndefined
)

type thumbHandler func(c *Cpu, raw uint16)
type thumbDisasmFunc func(raw uint16) string

type thumbEntry struct {
	class   thumbClass
	execute thumbHandler
	disasm  thumbDisasmFunc
}

// thumbLUT is keyed on the top 10 bits (15..6) of the 16-bit instruction,
// the same precomputed-LUT design as armLUT.
var thumbLUT [1024]thumbEntry

func init() {
	for key := 0; key < 1024; key++ {
		thumbLUT[key] = buildThumbEntry(classifyThumb(uint16(key << 6)))
	}
}

// classifyThumb applies the format-disambiguation cascade a classic
// format-1..19 Thumb decoder uses, evaluated once per key at table-build
// time.
func classifyThumb(raw uint16) thumbClass {
	top3 := bits.Bits(uint32(raw), 13, 15)

	switch top3 {
	case 0b000:
		if bits.Bits(uint32(raw), 11, 12) == 0b11 {
			return thumbAddSubtract
		}
		return thumbMoveShifted

	case 0b001:
		return thumbImmediate

	case 0b010:
		if !bits.BitSet(uint32(raw), 12) {
			if !bits.BitSet(uint32(raw), 11) {
				if !bits.BitSet(uint32(raw), 10) {
					return thumbALU
				}
				return thumbHiRegisterBX
			}
			return thumbPCRelativeLoad
		}
		if bits.BitSet(uint32(raw), 9) {
			return thumbLoadStoreHalfwordSigned
		}
		return thumbLoadStoreRegOffset

	case 0b011:
		return thumbLoadStoreImmOffset

	case 0b100:
		if bits.BitSet(uint32(raw), 12) {
			return thumbSPRelativeLoadStore
		}
		return thumbLoadStoreHalfword

	case 0b101:
		if bits.BitSet(uint32(raw), 12) {
			if bits.Bits(uint32(raw), 8, 11) == 0b0000 {
				return thumbAddOffsetToSP
			}
			switch bits.Bits(uint32(raw), 9, 11) {
			case 0b010, 0b110:
				return thumbPushPop
			default:
				return thumbUndefined
			}
		}
		return thumbLoadAddress

	case 0b110:
		if bits.BitSet(uint32(raw), 12) {
			if bits.Bits(uint32(raw), 8, 11) == 0b1111 {
				return thumbSoftwareInterrupt
			}
			return thumbConditionalBranch
		}
		return thumbMultipleLoadStore

	default: // 0b111
		if !bits.BitSet(uint32(raw), 12) {
			return thumbUnconditionalBranch
		}
		return thumbLongBranchLink
	}
}

func buildThumbEntry(class thumbClass) thumbEntry {
	switch class {
	case thumbMoveShifted:
		return thumbEntry{class, execThumbMoveShifted, disasmThumbMoveShifted}
	case thumbAddSubtract:
		return thumbEntry{class, execThumbAddSubtract, disasmThumbAddSubtract}
	case thumbImmediate:
		return thumbEntry{class, execThumbImmediate, disasmThumbImmediate}
	case thumbALU:
		return thumbEntry{class, execThumbALU, disasmThumbALU}
	case thumbHiRegisterBX:
		return thumbEntry{class, execThumbHiRegisterBX, disasmThumbHiRegisterBX}
	case thumbPCRelativeLoad:
		return thumbEntry{class, execThumbPCRelativeLoad, disasmThumbPCRelativeLoad}
	case thumbLoadStoreRegOffset:
		return thumbEntry{class, execThumbLoadStoreRegOffset, disasmThumbLoadStoreRegOffset}
	case thumbLoadStoreHalfwordSigned:
		return thumbEntry{class, execThumbLoadStoreHalfwordSigned, disasmThumbLoadStoreHalfwordSigned}
	case thumbLoadStoreImmOffset:
		return thumbEntry{class, execThumbLoadStoreImmOffset, disasmThumbLoadStoreImmOffset}
	case thumbLoadStoreHalfword:
		return thumbEntry{class, execThumbLoadStoreHalfword, disasmThumbLoadStoreHalfword}
	case thumbSPRelativeLoadStore:
		return thumbEntry{class, execThumbSPRelativeLoadStore, disasmThumbSPRelativeLoadStore}
	case thumbLoadAddress:
		return thumbEntry{class, execThumbLoadAddress, disasmThumbLoadAddress}
	case thumbAddOffsetToSP:
		return thumbEntry{class, execThumbAddOffsetToSP, disasmThumbAddOffsetToSP}
	case thumbPushPop:
		return thumbEntry{class, execThumbPushPop, disasmThumbPushPop}
	case thumbMultipleLoadStore:
		return thumbEntry{class, execThumbMultipleLoadStore, disasmThumbMultipleLoadStore}
	case thumbConditionalBranch:
		return thumbEntry{class, execThumbConditionalBranch, disasmThumbConditionalBranch}
	case thumbSoftwareInterrupt:
		return thumbEntry{class, execThumbSoftwareInterrupt, disasmThumbSoftwareInterrupt}
	case thumbUnconditionalBranch:
		return thumbEntry{class, execThumbUnconditionalBranch, disasmThumbUnconditionalBranch}
	case thumbLongBranchLink:
		return thumbEntry{class, execThumbLongBranchLink, disasmThumbLongBranchLink}
	default:
		return thumbEntry{thumbUndefined, execThumbUndefined, disasmThumbUndefined}
	}
}

// thumbKey extracts the 10-bit LUT discriminator (bits 15..6) from a raw
// Thumb instruction.
func thumbKey(raw uint16) uint32 {
	return bits.Bits(uint32(raw), 6, 15)
}

// executeThumb dispatches raw through the Thumb LUT. Thumb instructions
// carry no per-instruction condition field (only the conditional-branch
// class itself encodes a condition).
func (c *Cpu) executeThumb(raw uint16) {
	thumbLUT[thumbKey(raw)].execute(c, raw)
}

// DisassembleThumb returns the handler's mnemonic text for a raw 16-bit
// Thumb instruction.
func DisassembleThumb(raw uint16) string {
	return thumbLUT[thumbKey(raw)].disasm(raw)
}
