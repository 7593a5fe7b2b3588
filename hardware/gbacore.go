// SPDX-License-Identifier: GPL-3.0-or-later

package hardware

import (
	"io"

	"github.com/grace-yuwei-li/gba-emu/hardware/cpu"
	"github.com/grace-yuwei-li/gba-emu/hardware/input"
	"github.com/grace-yuwei-li/gba-emu/hardware/instance"
	"github.com/grace-yuwei-li/gba-emu/hardware/memory"
	"github.com/grace-yuwei-li/gba-emu/hardware/ppu"
	"github.com/grace-yuwei-li/gba-emu/internal/debugdump"
)

// RunState is a host-level convenience distinct from Cpu.Stopped: Stopped
// means the guest program halted the core (a breakpoint, an unimplemented
// encoding); Paused means the host asked GbaCore.TickMultiple to stop
// advancing without touching guest state, distinguishing a debugger halt
// from a user-requested pause.
type RunState int

const (
	StateRunning RunState = iota
	StatePaused
)

func (s RunState) String() string {
	if s == StatePaused {
		return "paused"
	}
	return "running"
}

// GbaCore is the per-tick driver that advances the CPU then the PPU,
// manages breakpoints, and ingests ROM/BIOS/key input.
// It composes, rather than embeds, its sub-systems: a host reaches the
// register file, decoders and memory map only through the methods below.
type GbaCore struct {
	Bus *memory.Bus
	Cpu *cpu.Cpu

	input *input.Input

	ins   *instance.Instance
	state RunState
}

// New creates a GbaCore with a fresh bus, CPU and key-input coordinator,
// wired together so the bus owns the I/O map and PPU by composition, and
// the CPU reaches them only through the bus.
func New(ins *instance.Instance) *GbaCore {
	bus := memory.NewBus(ins)
	c := cpu.New(bus, ins)
	return &GbaCore{
		Bus:   bus,
		Cpu:   c,
		input: input.New(bus, c),
		ins:   ins,
	}
}

// LoadROM copies up to 32MiB of cartridge ROM bytes from offset 0.
func (g *GbaCore) LoadROM(data []byte) error {
	return g.Bus.LoadROM(data)
}

// SetBIOS replaces the 16KiB BIOS image.
func (g *GbaCore) SetBIOS(data []byte) error {
	return g.Bus.SetBIOS(data)
}

// SkipBios primes the register file and pipeline as if the BIOS start-up
// sequence had already run.
func (g *GbaCore) SkipBios() {
	g.Cpu.SkipBios()
}

// SetKey applies a key change immediately. For input arriving from another
// goroutine, use PushKeyEvent instead.
func (g *GbaCore) SetKey(key memory.Key, pressed bool) {
	g.Bus.SetKey(key, pressed)
}

// PushKeyEvent enqueues a key change to be applied on the next Tick,
// without blocking the caller's goroutine.
func (g *GbaCore) PushKeyEvent(key memory.Key, pressed bool) error {
	return g.input.PushEvent(input.Event{Key: key, Pressed: pressed})
}

// Input exposes the key-input coordinator for advanced uses: attaching a
// recorder, a playback trace, or a driver/passenger pair between two
// GbaCore instances.
func (g *GbaCore) Input() *input.Input {
	return g.input
}

// Pause sets or clears the host-level pause state; it does not touch the
// guest-visible Stopped flag.
func (g *GbaCore) Pause(set bool) {
	if set {
		g.state = StatePaused
	} else {
		g.state = StateRunning
	}
}

// State reports the host-level run state.
func (g *GbaCore) State() RunState {
	return g.state
}

// Tick advances the key-input coordinator, then the CPU by one cycle, then
// the PPU by one dot-engine step, unconditionally.
// A CPU halted by Cpu.SetStopped(true) still ticks here, but Cpu.Tick is a
// no-op while stopped; the PPU advances regardless, matching real hardware
// where video timing runs independently of the CPU.
func (g *GbaCore) Tick() error {
	if err := g.input.Tick(); err != nil {
		return err
	}
	g.Cpu.Tick()
	g.Bus.Tick()
	return nil
}

// TickMultiple advances the core up to n times, stopping early if the host
// has paused the core, the CPU has halted, or a breakpoint is hit. Returns
// the number of ticks actually run.
func (g *GbaCore) TickMultiple(n int) (int, error) {
	count := 0
	for i := 0; i < n; i++ {
		if g.state == StatePaused || g.Cpu.Stopped() {
			break
		}
		if err := g.Tick(); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// AddARMBreakpoint / AddThumbBreakpoint / Remove* manage the breakpoint
// sets matched against the executing-instruction PC.
func (g *GbaCore) AddARMBreakpoint(pc uint32) error      { return g.Cpu.AddARMBreakpoint(pc) }
func (g *GbaCore) RemoveARMBreakpoint(pc uint32) error   { return g.Cpu.RemoveARMBreakpoint(pc) }
func (g *GbaCore) AddThumbBreakpoint(pc uint32) error    { return g.Cpu.AddThumbBreakpoint(pc) }
func (g *GbaCore) RemoveThumbBreakpoint(pc uint32) error { return g.Cpu.RemoveThumbBreakpoint(pc) }

// SetStopped sets or clears the guest-visible halt flag.
func (g *GbaCore) SetStopped(v bool) { g.Cpu.SetStopped(v) }

// EnableDebugger turns breakpoint matching on or off.
func (g *GbaCore) EnableDebugger(v bool) { g.Cpu.EnableDebugger(v) }

// PCHistory returns the ring of recently executed instruction addresses,
// oldest first.
func (g *GbaCore) PCHistory() []uint32 {
	return g.Cpu.PCHistory()
}

// FrameBuffer returns the current 240x160 RGB frame buffer, one byte per
// channel, row-major.
func (g *GbaCore) FrameBuffer() *[ppu.ScreenWidth * ppu.ScreenHeight * 3]byte {
	return &g.Bus.Ppu.FrameBuffer
}

// Inspection is the combined read-only snapshot of every inspectable
// sub-system.
type Inspection struct {
	CPU    cpu.Snapshot
	PPU    ppu.Snapshot
	Memory memory.Inspect
}

// InspectCPU returns a snapshot of the CPU's architectural state.
func (g *GbaCore) InspectCPU() cpu.Snapshot {
	return g.Cpu.Inspect()
}

// InspectPPU returns a snapshot of the PPU's display timing state and
// current frame buffer.
func (g *GbaCore) InspectPPU() ppu.Snapshot {
	return g.Bus.Ppu.Inspect()
}

// InspectMemory returns a snapshot of the bus's memory-mapped registers.
func (g *GbaCore) InspectMemory() memory.Inspect {
	return g.Bus.Inspect()
}

// Inspect returns every inspectable snapshot together, for tools that want
// one coherent view of the core at a single tick boundary.
func (g *GbaCore) Inspect() Inspection {
	return Inspection{
		CPU:    g.InspectCPU(),
		PPU:    g.InspectPPU(),
		Memory: g.InspectMemory(),
	}
}

// DisassembleARM returns a human-readable mnemonic for a raw ARM word.
func DisassembleARM(raw uint32) string { return cpu.DisassembleARM(raw) }

// DisassembleThumb returns a human-readable mnemonic for a raw Thumb
// halfword.
func DisassembleThumb(raw uint16) string { return cpu.DisassembleThumb(raw) }

// DumpGraph renders the core's current Inspection as a Graphviz dot graph
// (see internal/debugdump).
func (g *GbaCore) DumpGraph(w io.Writer) error {
	snap := g.Inspect()
	return debugdump.Graph(w, &snap)
}

// DumpText renders the core's current Inspection as a recursive text dump
// via go-spew, for snapshots memviz can't usefully graph.
func (g *GbaCore) DumpText(w io.Writer) {
	snap := g.Inspect()
	debugdump.Text(w, &snap)
}
