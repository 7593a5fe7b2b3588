// SPDX-License-Identifier: GPL-3.0-or-later

package hardware_test

import (
	"bytes"
	"testing"

	"github.com/grace-yuwei-li/gba-emu/hardware"
	"github.com/grace-yuwei-li/gba-emu/hardware/instance"
	"github.com/grace-yuwei-li/gba-emu/hardware/memory"
	"github.com/grace-yuwei-li/gba-emu/test"
)

// le32 packs a little-endian 32-bit ARM word, the form Bus.LoadROM expects.
func le32(w uint32) []byte {
	return []byte{byte(w), byte(w >> 8), byte(w >> 16), byte(w >> 24)}
}

func TestNewGbaCoreSkipsBiosAndRunsFirstInstruction(t *testing.T) {
	core := hardware.New(instance.New())

	test.ExpectSuccess(t, core.LoadROM(le32(0xE3A0102A))) // MOV r1, #0x2a
	core.SkipBios()

	n, err := core.TickMultiple(3)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 3)

	test.ExpectEquality(t, core.InspectCPU().Registers.ByMode[0x1f][1], uint32(0x2a))
}

func TestTickMultipleStopsOnBreakpoint(t *testing.T) {
	core := hardware.New(instance.New())
	test.ExpectSuccess(t, core.LoadROM(le32(0xE3A0102A)))
	core.SkipBios()
	core.EnableDebugger(true)
	test.ExpectSuccess(t, core.AddARMBreakpoint(0x08000000))

	n, err := core.TickMultiple(10)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n < 10, true)
	test.ExpectEquality(t, core.InspectCPU().Stopped, true)
}

func TestTickMultipleHonoursPause(t *testing.T) {
	core := hardware.New(instance.New())
	test.ExpectSuccess(t, core.LoadROM(le32(0xE3A0102A)))
	core.SkipBios()
	core.Pause(true)

	n, err := core.TickMultiple(5)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 0)
	test.ExpectEquality(t, core.State(), hardware.StatePaused)
}

func TestSetKeyReachesBus(t *testing.T) {
	core := hardware.New(instance.New())
	core.SetKey(memory.KeyA, true)
	test.ExpectSuccess(t, core.PushKeyEvent(memory.KeyB, true))
	test.ExpectSuccess(t, core.Tick())
}

func TestInspectAndDumpsDoNotPanic(t *testing.T) {
	core := hardware.New(instance.New())
	test.ExpectSuccess(t, core.LoadROM(le32(0xE3A0102A)))
	core.SkipBios()
	test.ExpectSuccess(t, core.Tick())

	snap := core.Inspect()
	test.ExpectEquality(t, snap.CPU.Stopped, false)

	fb := core.FrameBuffer()
	test.ExpectEquality(t, len(fb) > 0, true)

	var textBuf bytes.Buffer
	core.DumpText(&textBuf)
	test.ExpectEquality(t, textBuf.Len() > 0, true)

	var graphBuf bytes.Buffer
	test.ExpectSuccess(t, core.DumpGraph(&graphBuf))
}

func TestDisassembleHelpers(t *testing.T) {
	test.ExpectEquality(t, hardware.DisassembleARM(0xE3A0102A) != "", true)
	test.ExpectEquality(t, hardware.DisassembleThumb(0x4700) != "", true)
}
