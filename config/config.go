// SPDX-License-Identifier: GPL-3.0-or-later

// Package config carries the small number of policy knobs the core exposes
// for genuinely unpredictable ARMv4T behavior. Everything else about the
// core's behavior is architecturally fixed and is not configurable.
package config

// Config holds runtime policy for ambiguous or unspecified behavior.
type Config struct {
	// LDRSHMisalignedFallsBackToLDRSB selects the mis-aligned LDRSH policy.
	// When true (the default) a mis-aligned signed halfword load behaves as
	// a sign-extending byte load at the effective address.
	LDRSHMisalignedFallsBackToLDRSB bool

	// MSRControlTBitChangeHalts selects what happens when an MSR to the
	// control byte of CPSR would change the T bit, which is an
	// unpredictable operation. When false (the default) the attempted
	// T-bit change is silently dropped and execution continues. When
	// true, the core halts the same way it does for an unimplemented
	// encoding.
	MSRControlTBitChangeHalts bool
}

// Default returns the Config this module ships with: the policy choices
// this core has settled on for its unpredictable-behavior cases.
func Default() Config {
	return Config{
		LDRSHMisalignedFallsBackToLDRSB: true,
		MSRControlTBitChangeHalts:       false,
	}
}
