// SPDX-License-Identifier: GPL-3.0-or-later

package cpu

import "github.com/grace-yuwei-li/gba-emu/hardware/bits"

// armClass names the thirteen meta-classes ARM encodings fall into
//.
type armClass int

const (
	classDataProcessing armClass = iota
	classPSRTransfer
	classMultiply
	classMultiplyLong
	classSingleDataSwap
	classBranchExchange
	classHalfwordTransfer
	classSingleDataTransfer
	classUndefined
	classBlockDataTransfer
	classBranch
	classSoftwareInterrupt
	classUnimplemented // coprocessor data/transfer/register: no coprocessor exists
)

type armHandler func(c *Cpu, raw uint32)
type armDisasmFunc func(raw uint32) string

type armEntry struct {
	class   armClass
	execute armHandler
	disasm  armDisasmFunc
}

// armLUT is the pre-built 4096-entry table mapping (bits27..20, bits7..4)
// to a handler, removing the classification cascade from the hot path
//.
var armLUT [4096]armEntry

func init() {
	for key := 0; key < 4096; key++ {
		high := uint32(key >> 4)
		low := uint32(key & 0xf)
		armLUT[key] = buildARMEntry(classifyARM(high, low))
	}
}

// classifyARM applies the priority-ordered decision cascade a classic ARM
// decoder uses, but only once per key at table-build time instead of once
// per fetched instruction.
func classifyARM(high, low uint32) armClass {
	group := high >> 6 // bits27-26

	switch group {
	case 0b00:
		if low == 0x9 {
			switch {
			case high&0xfc == 0x00:
				return classMultiply
			case high&0xf8 == 0x08:
				return classMultiplyLong
			case high&0xfb == 0x10:
				return classSingleDataSwap
			default:
				return classUndefined
			}
		}
		if low&0x9 == 0x9 && high&0xe0 == 0x00 {
			// bits7,4 set and bits6-5 != 00 (SH != 00): halfword/signed transfer
			return classHalfwordTransfer
		}

		opcode := (high >> 1) & 0xf
		sBit := high & 0x1
		if high == 0x12 && low == 0x1 {
			return classBranchExchange
		}
		if opcode >= 0x8 && opcode <= 0xb && sBit == 0 {
			return classPSRTransfer
		}
		return classDataProcessing

	case 0b01:
		if high&0x20 != 0 && low&0x1 != 0 {
			return classUndefined
		}
		return classSingleDataTransfer

	case 0b10:
		if high&0x20 == 0 {
			return classBlockDataTransfer
		}
		return classBranch

	default: // 0b11
		if high&0xf0 == 0xf0 {
			return classSoftwareInterrupt
		}
		return classUnimplemented
	}
}

func buildARMEntry(class armClass) armEntry {
	switch class {
	case classDataProcessing:
		return armEntry{class, execDataProcessing, disasmDataProcessing}
	case classPSRTransfer:
		return armEntry{class, execPSRTransfer, disasmPSRTransfer}
	case classMultiply:
		return armEntry{class, execMultiply, disasmMultiply}
	case classMultiplyLong:
		return armEntry{class, execMultiplyLong, disasmMultiplyLong}
	case classSingleDataSwap:
		return armEntry{class, execSingleDataSwap, disasmSingleDataSwap}
	case classBranchExchange:
		return armEntry{class, execBranchExchange, disasmBranchExchange}
	case classHalfwordTransfer:
		return armEntry{class, execHalfwordTransfer, disasmHalfwordTransfer}
	case classSingleDataTransfer:
		return armEntry{class, execSingleDataTransfer, disasmSingleDataTransfer}
	case classBlockDataTransfer:
		return armEntry{class, execBlockDataTransfer, disasmBlockDataTransfer}
	case classBranch:
		return armEntry{class, execBranch, disasmBranch}
	case classSoftwareInterrupt:
		return armEntry{class, execSoftwareInterrupt, disasmSoftwareInterrupt}
	default:
		return armEntry{classUndefined, execUndefinedARM, disasmUndefinedARM}
	}
}

// armKey extracts the 12-bit LUT discriminator from a raw ARM instruction.
func armKey(raw uint32) uint32 {
	return (bits.Bits(raw, 20, 27) << 4) | bits.Bits(raw, 4, 7)
}

// executeARM condition-checks and dispatches raw through the ARM LUT.
func (c *Cpu) executeARM(raw uint32) {
	cond := bits.Bits(raw, 28, 31)
	if !condition(cond, c.Regs.CPSR()) {
		return
	}
	armLUT[armKey(raw)].execute(c, raw)
}

// DisassembleARM returns the handler's mnemonic text for a raw ARM word,
// independent of condition evaluation.
func DisassembleARM(raw uint32) string {
	return armLUT[armKey(raw)].disasm(raw)
}
