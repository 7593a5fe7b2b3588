// SPDX-License-Identifier: GPL-3.0-or-later

// Package hardware is the base package for the core emulation. It and its
// sub-packages contain everything required for a headless emulation.
//
// The GbaCore type is the root of the emulation and holds references to
// every sub-system: the CPU (and, through it, the register file and
// decoders), the memory bus (and, through it, the I/O map and PPU). From
// here the emulation is driven one tick at a time; GbaCore has no notion of
// threads, channels or a run loop of its own beyond what
// ticking implies.
package hardware
