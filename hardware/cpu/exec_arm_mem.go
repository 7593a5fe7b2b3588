// SPDX-License-Identifier: GPL-3.0-or-later

package cpu

import (
	"fmt"

	"github.com/grace-yuwei-li/gba-emu/hardware/bits"
	"github.com/grace-yuwei-li/gba-emu/hardware/cpu/registers"
)

// halfwordOffset resolves the 8-bit immediate or register offset shared by
// halfword and signed transfers.
func (c *Cpu) halfwordOffset(raw uint32) uint32 {
	if bits.BitSet(raw, 22) {
		return bits.Bits(raw, 8, 11)<<4 | bits.Bits(raw, 0, 3)
	}
	return c.readOperand(bits.Bits(raw, 0, 3))
}

// execHalfwordTransfer executes LDRH/STRH/LDRSB/LDRSH,
// including the documented LDRSH mis-aligned-falls-back-to-LDRSB quirk.
func execHalfwordTransfer(c *Cpu, raw uint32) {
	rn := bits.Bits(raw, 16, 19)
	rd := bits.Bits(raw, 12, 15)
	pre := bits.BitSet(raw, 24)
	up := bits.BitSet(raw, 23)
	writeBack := bits.BitSet(raw, 21)
	load := bits.BitSet(raw, 20)
	sh := bits.Bits(raw, 5, 6)

	offset := c.halfwordOffset(raw)
	base := c.readOperand(rn)

	var addr uint32
	if up {
		addr = base + offset
	} else {
		addr = base - offset
	}

	effective := base
	if pre {
		effective = addr
	}

	switch {
	case load && sh == 0b01: // LDRH
		c.writeRegister(rd, uint32(c.Bus.ReadHalf(effective)))
	case load && sh == 0b10: // LDRSB
		c.writeRegister(rd, bits.SignExtend(uint32(c.Bus.ReadByte(effective)), 7))
	case load && sh == 0b11: // LDRSH
		c.writeRegister(rd, c.Bus.ReadSignedHalf(effective, c.ins.Config.LDRSHMisalignedFallsBackToLDRSB))
	case !load && sh == 0b01: // STRH
		c.Bus.WriteHalf(effective, uint16(c.readOperand(rd)))
	default:
		c.unpredictable("halfword transfer with SH=00 or STR of a signed variant")
	}

	if !pre || writeBack {
		if rn != 15 {
			c.Regs.Set(rn, c.Regs.CurrentMode(), addr)
		}
	}
}

func disasmHalfwordTransfer(raw uint32) string {
	sh := bits.Bits(raw, 5, 6)
	load := bits.BitSet(raw, 20)
	mnemonic := "STRH"
	if load {
		switch sh {
		case 0b01:
			mnemonic = "LDRH"
		case 0b10:
			mnemonic = "LDRSB"
		case 0b11:
			mnemonic = "LDRSH"
		}
	}
	return fmt.Sprintf("%s R%d, [R%d, #off]", mnemonic, bits.Bits(raw, 12, 15), bits.Bits(raw, 16, 19))
}

// execSingleDataTransfer executes LDR/STR/LDRB/STRB. The
// scaled-register offset reuses shiftByImmediate, since single data
// transfer never permits a register-specified shift amount.
func execSingleDataTransfer(c *Cpu, raw uint32) {
	rn := bits.Bits(raw, 16, 19)
	rd := bits.Bits(raw, 12, 15)
	pre := bits.BitSet(raw, 24)
	up := bits.BitSet(raw, 23)
	byteAccess := bits.BitSet(raw, 22)
	writeBack := bits.BitSet(raw, 21)
	load := bits.BitSet(raw, 20)

	var offset uint32
	if bits.BitSet(raw, 25) {
		rm := c.readOperand(bits.Bits(raw, 0, 3))
		st := shiftType(bits.Bits(raw, 5, 6))
		amount := bits.Bits(raw, 7, 11)
		offset = shiftByImmediate(st, rm, amount, carry(c.Regs.CPSR())).value
	} else {
		offset = bits.Bits(raw, 0, 11)
	}

	base := c.readOperand(rn)
	var addr uint32
	if up {
		addr = base + offset
	} else {
		addr = base - offset
	}

	effective := base
	if pre {
		effective = addr
	}

	if load {
		if byteAccess {
			c.writeRegister(rd, uint32(c.Bus.ReadByte(effective)))
		} else {
			c.writeRegister(rd, c.Bus.ReadWord(effective))
		}
	} else {
		value := c.readOperand(rd)
		if rd == 15 {
			value += 4 // STR of r15 stores PC+12 overall (already +8 from readOperand)
		}
		if byteAccess {
			c.Bus.WriteByte(effective, byte(value))
		} else {
			c.Bus.WriteWord(effective, value)
		}
	}

	// Write-back is suppressed when Rd==Rn on a load, since the loaded
	// value already overwrote the base register.
	if (!pre || writeBack) && !(load && rd == rn) {
		c.Regs.Set(rn, c.Regs.CurrentMode(), addr)
	}
}

func disasmSingleDataTransfer(raw uint32) string {
	load := bits.BitSet(raw, 20)
	byteAccess := bits.BitSet(raw, 22)
	mnemonic := "STR"
	if load {
		mnemonic = "LDR"
	}
	if byteAccess {
		mnemonic += "B"
	}
	return fmt.Sprintf("%s R%d, [R%d, #off]", mnemonic, bits.Bits(raw, 12, 15), bits.Bits(raw, 16, 19))
}

// execBlockDataTransfer executes LDM/STM across the 16-bit register list, in
// ascending register-index order regardless of addressing mode, with the
// empty-list and S-bit special cases.
func execBlockDataTransfer(c *Cpu, raw uint32) {
	rn := bits.Bits(raw, 16, 19)
	pre := bits.BitSet(raw, 24)
	up := bits.BitSet(raw, 23)
	sBit := bits.BitSet(raw, 22)
	writeBack := bits.BitSet(raw, 21)
	load := bits.BitSet(raw, 20)
	list := bits.Bits(raw, 0, 15)

	base := c.readOperand(rn)

	if list == 0 {
		// Empty list: transfer r15 alone, at the base address (base±4 for
		// the pre-indexed forms), and the base is still updated by ±0x40.
		addr := base
		if pre {
			if up {
				addr += 4
			} else {
				addr -= 4
			}
		}
		if load {
			c.writeRegister(15, c.Bus.ReadWord(addr))
		} else {
			c.Bus.WriteWord(addr, c.readOperand(15)+4)
		}
		if up {
			c.Regs.Set(rn, c.Regs.CurrentMode(), base+0x40)
		} else {
			c.Regs.Set(rn, c.Regs.CurrentMode(), base-0x40)
		}
		return
	}

	count := 0
	for r := 0; r < 16; r++ {
		if bits.BitSet(list, uint(r)) {
			count++
		}
	}

	start := base
	if !up {
		start = base - uint32(count)*4
	}
	addr := start
	if (up && pre) || (!up && !pre) {
		addr += 4
	}

	mode := c.Regs.CurrentMode()
	userBank := sBit && !(load && bits.BitSet(list, 15))

	baseUpdated := false
	firstTransfer := true
	for r := 0; r < 16; r++ {
		if !bits.BitSet(list, uint(r)) {
			continue
		}

		regMode := mode
		if userBank {
			regMode = registers.User
		}

		if load {
			value := c.Bus.ReadWord(addr)
			if uint32(r) == 15 {
				c.writeRegister(15, value)
				if sBit {
					c.Regs.SetCPSR(c.Regs.SPSR(mode))
				}
			} else {
				c.Regs.Set(uint32(r), regMode, value)
			}
		} else {
			c.Bus.WriteWord(addr, c.Regs.Get(uint32(r), regMode))
		}

		if !load && firstTransfer && writeBack {
			// STM writes the updated base back after the first store.
			c.Regs.Set(rn, mode, finalBase(base, up, count))
			baseUpdated = true
		}
		firstTransfer = false

		addr += 4
	}

	if writeBack && !baseUpdated && !(load && bits.BitSet(list, uint(rn))) {
		c.Regs.Set(rn, mode, finalBase(base, up, count))
	}
}

func finalBase(base uint32, up bool, count int) uint32 {
	if up {
		return base + uint32(count)*4
	}
	return base - uint32(count)*4
}

func disasmBlockDataTransfer(raw uint32) string {
	load := bits.BitSet(raw, 20)
	mnemonic := "STM"
	if load {
		mnemonic = "LDM"
	}
	return fmt.Sprintf("%s R%d, {list}", mnemonic, bits.Bits(raw, 16, 19))
}
