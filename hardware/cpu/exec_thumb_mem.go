// SPDX-License-Identifier: GPL-3.0-or-later

package cpu

import (
	"fmt"

	"github.com/grace-yuwei-li/gba-emu/hardware/bits"
)

// execThumbLoadStoreImmOffset executes format 9: LDR/STR/LDRB/STRB Rd,
// [Rb, #imm5]. The immediate is scaled ×4 for word transfers,
// unscaled for byte transfers.
func execThumbLoadStoreImmOffset(c *Cpu, raw uint16) {
	byteAccess := bits.BitSet(uint32(raw), 12)
	load := bits.BitSet(uint32(raw), 11)
	imm5 := bits.Bits(uint32(raw), 6, 10)
	rb := bits.Bits(uint32(raw), 3, 5)
	rd := bits.Bits(uint32(raw), 0, 2)

	offset := imm5
	if !byteAccess {
		offset <<= 2
	}
	addr := c.readOperand(rb) + offset

	switch {
	case load && byteAccess:
		c.writeRegister(rd, uint32(c.Bus.ReadByte(addr)))
	case load:
		c.writeRegister(rd, c.Bus.ReadWord(addr))
	case byteAccess:
		c.Bus.WriteByte(addr, byte(c.readOperand(rd)))
	default:
		c.Bus.WriteWord(addr, c.readOperand(rd))
	}
}

func disasmThumbLoadStoreImmOffset(raw uint16) string {
	byteAccess := bits.BitSet(uint32(raw), 12)
	load := bits.BitSet(uint32(raw), 11)
	mnemonic := "STR"
	if load {
		mnemonic = "LDR"
	}
	if byteAccess {
		mnemonic += "B"
	}
	return fmt.Sprintf("%s R%d, [R%d, #%d]", mnemonic, bits.Bits(uint32(raw), 0, 2), bits.Bits(uint32(raw), 3, 5), bits.Bits(uint32(raw), 6, 10))
}

// execThumbLoadStoreHalfword executes format 10: LDRH/STRH Rd,
// [Rb, #imm5<<1].
func execThumbLoadStoreHalfword(c *Cpu, raw uint16) {
	load := bits.BitSet(uint32(raw), 11)
	imm5 := bits.Bits(uint32(raw), 6, 10)
	rb := bits.Bits(uint32(raw), 3, 5)
	rd := bits.Bits(uint32(raw), 0, 2)

	addr := c.readOperand(rb) + imm5<<1

	if load {
		c.writeRegister(rd, uint32(c.Bus.ReadHalf(addr)))
	} else {
		c.Bus.WriteHalf(addr, uint16(c.readOperand(rd)))
	}
}

func disasmThumbLoadStoreHalfword(raw uint16) string {
	mnemonic := "STRH"
	if bits.BitSet(uint32(raw), 11) {
		mnemonic = "LDRH"
	}
	return fmt.Sprintf("%s R%d, [R%d, #%d]", mnemonic, bits.Bits(uint32(raw), 0, 2), bits.Bits(uint32(raw), 3, 5), bits.Bits(uint32(raw), 6, 10)<<1)
}

// execThumbSPRelativeLoadStore executes format 11: LDR/STR Rd,
// [SP, #imm8<<2].
func execThumbSPRelativeLoadStore(c *Cpu, raw uint16) {
	load := bits.BitSet(uint32(raw), 11)
	rd := bits.Bits(uint32(raw), 8, 10)
	imm8 := bits.Bits(uint32(raw), 0, 7)

	addr := c.Regs.Get(13, c.Regs.CurrentMode()) + imm8<<2

	if load {
		c.writeRegister(rd, c.Bus.ReadWord(addr))
	} else {
		c.Bus.WriteWord(addr, c.readOperand(rd))
	}
}

func disasmThumbSPRelativeLoadStore(raw uint16) string {
	mnemonic := "STR"
	if bits.BitSet(uint32(raw), 11) {
		mnemonic = "LDR"
	}
	return fmt.Sprintf("%s R%d, [SP, #%d]", mnemonic, bits.Bits(uint32(raw), 8, 10), bits.Bits(uint32(raw), 0, 7)<<2)
}

// execThumbLoadAddress executes format 12: ADD Rd, PC/SP, #imm8<<2
//. The PC source is word-aligned first.
func execThumbLoadAddress(c *Cpu, raw uint16) {
	usesSP := bits.BitSet(uint32(raw), 11)
	rd := bits.Bits(uint32(raw), 8, 10)
	imm8 := bits.Bits(uint32(raw), 0, 7)

	var base uint32
	if usesSP {
		base = c.Regs.Get(13, c.Regs.CurrentMode())
	} else {
		base = c.readOperand(15) &^ 3
	}

	c.writeRegister(rd, base+imm8<<2)
}

func disasmThumbLoadAddress(raw uint16) string {
	source := "PC"
	if bits.BitSet(uint32(raw), 11) {
		source = "SP"
	}
	return fmt.Sprintf("ADD R%d, %s, #%d", bits.Bits(uint32(raw), 8, 10), source, bits.Bits(uint32(raw), 0, 7)<<2)
}

// execThumbAddOffsetToSP executes format 13: ADD SP, #+/-imm7<<2
//.
func execThumbAddOffsetToSP(c *Cpu, raw uint16) {
	negative := bits.BitSet(uint32(raw), 7)
	imm7 := bits.Bits(uint32(raw), 0, 6)
	offset := imm7 << 2

	sp := c.Regs.Get(13, c.Regs.CurrentMode())
	if negative {
		sp -= offset
	} else {
		sp += offset
	}
	c.Regs.Set(13, c.Regs.CurrentMode(), sp)
}

func disasmThumbAddOffsetToSP(raw uint16) string {
	sign := "+"
	if bits.BitSet(uint32(raw), 7) {
		sign = "-"
	}
	return fmt.Sprintf("ADD SP, #%s%d", sign, bits.Bits(uint32(raw), 0, 6)<<2)
}

// execThumbPushPop executes format 14: PUSH/POP {list}{, LR/PC}
//. PUSH lowers SP by the transfer size first, then stores in
// ascending order starting at the new SP; POP loads in ascending order
// starting at the old SP.
func execThumbPushPop(c *Cpu, raw uint16) {
	load := bits.BitSet(uint32(raw), 11)
	storeSpecial := bits.BitSet(uint32(raw), 8)
	list := bits.Bits(uint32(raw), 0, 7)
	mode := c.Regs.CurrentMode()

	count := 0
	for r := 0; r < 8; r++ {
		if bits.BitSet(list, uint(r)) {
			count++
		}
	}
	if storeSpecial {
		count++
	}

	sp := c.Regs.Get(13, mode)

	if load {
		addr := sp
		for r := 0; r < 8; r++ {
			if bits.BitSet(list, uint(r)) {
				c.Regs.Set(uint32(r), mode, c.Bus.ReadWord(addr))
				addr += 4
			}
		}
		if storeSpecial {
			c.writeRegister(15, c.Bus.ReadWord(addr)&^1)
			addr += 4
		}
		c.Regs.Set(13, mode, addr)
		return
	}

	addr := sp - uint32(count)*4
	c.Regs.Set(13, mode, addr)
	for r := 0; r < 8; r++ {
		if bits.BitSet(list, uint(r)) {
			c.Bus.WriteWord(addr, c.Regs.Get(uint32(r), mode))
			addr += 4
		}
	}
	if storeSpecial {
		c.Bus.WriteWord(addr, c.Regs.Get(14, mode))
	}
}

func disasmThumbPushPop(raw uint16) string {
	mnemonic := "PUSH"
	if bits.BitSet(uint32(raw), 11) {
		mnemonic = "POP"
	}
	return fmt.Sprintf("%s {list}", mnemonic)
}

// execThumbMultipleLoadStore executes format 15: LDMIA/STMIA Rb!, {list}
//: always ascending addressing with base write-back.
func execThumbMultipleLoadStore(c *Cpu, raw uint16) {
	load := bits.BitSet(uint32(raw), 11)
	rb := bits.Bits(uint32(raw), 8, 10)
	list := bits.Bits(uint32(raw), 0, 7)
	mode := c.Regs.CurrentMode()

	addr := c.Regs.Get(rb, mode)

	for r := 0; r < 8; r++ {
		if bits.BitSet(list, uint(r)) {
			if load {
				c.Regs.Set(uint32(r), mode, c.Bus.ReadWord(addr))
			} else {
				c.Bus.WriteWord(addr, c.Regs.Get(uint32(r), mode))
			}
			addr += 4
		}
	}

	if !load || !bits.BitSet(list, uint(rb)) {
		c.Regs.Set(rb, mode, addr)
	}
}

func disasmThumbMultipleLoadStore(raw uint16) string {
	mnemonic := "STMIA"
	if bits.BitSet(uint32(raw), 11) {
		mnemonic = "LDMIA"
	}
	return fmt.Sprintf("%s R%d!, {list}", mnemonic, bits.Bits(uint32(raw), 8, 10))
}
