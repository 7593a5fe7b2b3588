// SPDX-License-Identifier: GPL-3.0-or-later

package curatederr

// Host-facing fallible-operation messages (spec §7.4). These are the
// patterns LoadROM/SetBIOS/breakpoint management compare against with Is().
const (
	ROMTooLarge        = "rom too large: %d bytes, maximum is %d"
	BIOSWrongSize      = "bios wrong size: %d bytes, expected %d"
	InvalidBreakpoint  = "invalid breakpoint address: %#08x"
	BreakpointNotFound = "breakpoint not set: %#08x"
)
