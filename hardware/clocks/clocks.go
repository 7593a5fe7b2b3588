// SPDX-License-Identifier: GPL-3.0-or-later

// Package clocks defines the constant value that fixes the speed of the
// console's main clock, and the conversion between a cycle count and wall
// time it implies. Used by inspection tooling that reports elapsed time
// rather than a raw cycle count; nothing in the core's execution path reads
// from it, since this core makes no attempt at cycle-exact bus timing.
package clocks

import "time"

// CPUHz is the fixed frequency, in Hz, of the console's main clock. Every
// Cpu.Tick accounts for exactly one cycle at this rate.
const CPUHz = 16_777_216

// Duration converts a cycle count to the wall-clock time it represents at
// CPUHz, for reporting purposes only.
func Duration(cycles uint64) time.Duration {
	return time.Duration(cycles) * time.Second / time.Duration(CPUHz)
}
