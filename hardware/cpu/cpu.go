// SPDX-License-Identifier: GPL-3.0-or-later

// Package cpu implements the ARMv4T core: the banked register file's
// mode-aware wiring, the three-stage pipeline and interrupt entry, and the
// ARM/Thumb decoders and executors. Everything architectural lives in one
// package (decode, execute, disassemble) to keep the decoder LUTs, the
// shifter-operand helpers and the executors free of import cycles, the same
// way a single self-contained interpreter package would.
package cpu

import (
	"github.com/grace-yuwei-li/gba-emu/curatederr"
	"github.com/grace-yuwei-li/gba-emu/hardware/cpu/registers"
	"github.com/grace-yuwei-li/gba-emu/hardware/instance"
	"github.com/grace-yuwei-li/gba-emu/hardware/memory"
	"github.com/grace-yuwei-li/gba-emu/logger"
)

// pcHistoryLen is the size of the ring buffer inspection tooling uses to
// show recently executed instruction addresses.
const pcHistoryLen = 256

// Cpu is the ARMv4T core: register file, two-slot prefetch pipeline, and
// the interrupt/mode state machine.
type Cpu struct {
	Regs *registers.File
	Bus  *memory.Bus
	ins  *instance.Instance

	prefetch  [2]uint32
	fillLevel int

	oldInterrupt bool

	cycles uint64

	stopped  bool
	debugger bool

	armBreakpoints   map[uint32]bool
	thumbBreakpoints map[uint32]bool

	pcHistory    [pcHistoryLen]uint32
	pcHistoryPos int

	// executingPC is the address of the instruction currently being
	// executed by Tick's step 3, valid only while execution is underway.
	executingPC uint32
}

// New creates a Cpu wired to bus, and registers it as the bus's open-bus
// source.
func New(bus *memory.Bus, ins *instance.Instance) *Cpu {
	c := &Cpu{
		Regs:             registers.New(),
		Bus:              bus,
		ins:              ins,
		armBreakpoints:   make(map[uint32]bool),
		thumbBreakpoints: make(map[uint32]bool),
	}
	bus.SetOpenBusSource(c)
	return c
}

// LastPrefetchedOpcode implements memory.OpenBusSource.
func (c *Cpu) LastPrefetchedOpcode() uint32 {
	return c.prefetch[1]
}

// Cycles returns the number of ticks this Cpu has advanced, implementing
// input.Clock for driven/recorded input synchronisation.
func (c *Cpu) Cycles() uint64 {
	return c.cycles
}

// Stopped reports whether the core has halted (unimplemented encoding or
// host request).
func (c *Cpu) Stopped() bool { return c.stopped }

// SetStopped sets or clears the halt flag.
func (c *Cpu) SetStopped(v bool) { c.stopped = v }

// EnableDebugger turns breakpoint matching on or off.
func (c *Cpu) EnableDebugger(v bool) { c.debugger = v }

// AddARMBreakpoint / AddThumbBreakpoint / Remove* manage the breakpoint
// sets matched against the executing-instruction PC.
func (c *Cpu) AddARMBreakpoint(pc uint32) error {
	if pc&0x3 != 0 {
		return curatederr.Errorf(curatederr.InvalidBreakpoint, pc)
	}
	c.armBreakpoints[pc] = true
	return nil
}

func (c *Cpu) RemoveARMBreakpoint(pc uint32) error {
	if !c.armBreakpoints[pc] {
		return curatederr.Errorf(curatederr.BreakpointNotFound, pc)
	}
	delete(c.armBreakpoints, pc)
	return nil
}

func (c *Cpu) AddThumbBreakpoint(pc uint32) error {
	if pc&0x1 != 0 {
		return curatederr.Errorf(curatederr.InvalidBreakpoint, pc)
	}
	c.thumbBreakpoints[pc] = true
	return nil
}

func (c *Cpu) RemoveThumbBreakpoint(pc uint32) error {
	if !c.thumbBreakpoints[pc] {
		return curatederr.Errorf(curatederr.BreakpointNotFound, pc)
	}
	delete(c.thumbBreakpoints, pc)
	return nil
}

// isThumb reports whether the CPSR's T bit is set.
func (c *Cpu) isThumb() bool {
	return thumbState(c.Regs.CPSR())
}

// flush empties the pipeline; execution resumes only once it refills over
// the next two ticks.
func (c *Cpu) flush() {
	c.fillLevel = 0
}

// readOperand returns register r's value as seen by an executing
// instruction. The pipeline already holds the raw PC two fetches ahead of
// the executing instruction (+8 in ARM, +4 in Thumb; see
// currentExecutingPC), so r15 reads as the raw PC with no further
// adjustment; every other register reads the mode-resolved value.
func (c *Cpu) readOperand(r uint32) uint32 {
	if r == 15 {
		return c.Regs.PC()
	}
	return c.Regs.Get(r, c.Regs.CurrentMode())
}

// writeRegister writes r, flushing the pipeline when r15 changes (a
// branch-equivalent write).
func (c *Cpu) writeRegister(r uint32, value uint32) {
	if r == 15 {
		c.Regs.SetPC(value)
		c.flush()
		return
	}
	c.Regs.Set(r, c.Regs.CurrentMode(), value)
}

// SkipBios primes the register file as if the BIOS start-up sequence had
// already run: stack pointers for User/System, IRQ and
// Supervisor modes, entry at the cartridge header, CPSR 0xdf (System
// mode, ARM state, IRQ and FIQ disabled), pipeline cleared.
func (c *Cpu) SkipBios() {
	c.Regs.Set(13, registers.User, 0x03007f00)
	c.Regs.Set(13, registers.System, 0x03007f00)
	c.Regs.Set(13, registers.IRQ, 0x03007fa0)
	c.Regs.Set(13, registers.Supervisor, 0x03007fe0)
	c.Regs.SetPC(0x08000000)
	c.Regs.SetCPSR(0xdf)
	c.flush()
	c.oldInterrupt = false
}

// Tick advances the pipeline by one cycle: account the cycle, sample
// interrupts, execute the oldest prefetched instruction if the pipeline is
// full, then shift the prefetch buffer and fetch at PC. IRQ entry, or an
// executed instruction that flushes the pipeline, ends the tick without a
// fetch, leaving PC at the new target. After a flush fillLevel is 0, so the
// next two ticks only fetch; the third tick is the first to execute.
func (c *Cpu) Tick() {
	if c.stopped {
		return
	}

	c.cycles++

	if c.sampleInterrupt() {
		return
	}

	if c.fillLevel == 2 {
		c.execute(c.prefetch[0])
		if c.fillLevel == 0 {
			return
		}
	}

	c.prefetch[0] = c.prefetch[1]

	pc := c.Regs.PC()
	if c.isThumb() {
		c.prefetch[1] = uint32(c.Bus.ReadHalf(pc))
		c.Regs.SetPC(pc + 2)
	} else {
		c.prefetch[1] = c.Bus.ReadWord(pc)
		c.Regs.SetPC(pc + 4)
	}

	if c.fillLevel < 2 {
		c.fillLevel++
	}
}

// sampleInterrupt evaluates IME∧(IE∧IF), gated by CPSR's I bit, before the
// tick's execute/fetch; a rising edge initiates IRQ entry. It reports
// whether IRQ entry happened.
func (c *Cpu) sampleInterrupt() bool {
	newInterrupt := !irqDisabled(c.Regs.CPSR()) && c.Bus.IO.Pending()
	entered := !c.oldInterrupt && newInterrupt
	if entered {
		c.enterIRQ()
	}
	c.oldInterrupt = newInterrupt
	return entered
}

// enterIRQ saves the executing PC+4 to r14_irq, copies CPSR to SPSR_irq,
// switches to IRQ/ARM with interrupts disabled, and branches to the IRQ
// vector.
func (c *Cpu) enterIRQ() {
	returnAddr := c.Regs.PC() + 4
	oldCPSR := c.Regs.CPSR()

	c.Regs.Set(14, registers.IRQ, returnAddr)
	c.Regs.SetSPSR(registers.IRQ, oldCPSR)

	newCPSR := (oldCPSR &^ psrModeMask) | uint32(registers.IRQ)
	newCPSR &^= 1 << psrT
	newCPSR |= 1 << psrI
	c.Regs.SetCPSR(newCPSR)

	c.Regs.SetPC(0x18)
	c.flush()
}

// execute runs the instruction at raw once condition-checked and decoded,
// recording it in the PC history ring and honouring breakpoints.
func (c *Cpu) execute(raw uint32) {
	pc := c.currentExecutingPC()
	c.executingPC = pc

	c.pcHistory[c.pcHistoryPos] = pc
	c.pcHistoryPos = (c.pcHistoryPos + 1) % pcHistoryLen

	if c.debugger {
		if c.isThumb() && c.thumbBreakpoints[pc] {
			c.stopped = true
		} else if !c.isThumb() && c.armBreakpoints[pc] {
			c.stopped = true
		}
		if c.stopped {
			return
		}
	}

	if c.isThumb() {
		c.executeThumb(uint16(raw))
	} else {
		c.executeARM(raw)
	}
}

// currentExecutingPC derives the address of the instruction about to
// execute from the current PC and pipeline lookahead.
func (c *Cpu) currentExecutingPC() uint32 {
	if c.isThumb() {
		return c.Regs.PC() - 4
	}
	return c.Regs.PC() - 8
}

// PCHistory returns the ring of recently executed instruction addresses,
// oldest first.
func (c *Cpu) PCHistory() []uint32 {
	out := make([]uint32, 0, pcHistoryLen)
	for i := 0; i < pcHistoryLen; i++ {
		idx := (c.pcHistoryPos + i) % pcHistoryLen
		if c.pcHistory[idx] != 0 {
			out = append(out, c.pcHistory[idx])
		}
	}
	return out
}

// Snapshot is a read-only view of the CPU's architectural state for
// inspection tools.
type Snapshot struct {
	Registers   registers.Snapshot
	ExecutingPC uint32
	PipelineFull bool
	Thumb       bool
	Stopped     bool
}

// Inspect captures the current CPU state.
func (c *Cpu) Inspect() Snapshot {
	return Snapshot{
		Registers:    c.Regs.Snapshot(),
		ExecutingPC:  c.executingPC,
		PipelineFull: c.fillLevel == 2,
		Thumb:        c.isThumb(),
		Stopped:      c.stopped,
	}
}

// unimplemented halts the core on encountering a valid-but-unhandled
// encoding.
func (c *Cpu) unimplemented(kind string, raw uint32) {
	logger.Logf(c.ins.LogPermission, "cpu", "unimplemented %s encoding %#08x at pc %#08x", kind, raw, c.executingPC)
	c.stopped = true
}

// unpredictable logs a guest-caused unpredictable condition and proceeds
// with the defensible default the caller already computed.
func (c *Cpu) unpredictable(detail string) {
	logger.Logf(c.ins.LogPermission, "cpu", "unpredictable behavior: %s at pc %#08x", detail, c.executingPC)
}
