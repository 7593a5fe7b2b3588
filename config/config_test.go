// SPDX-License-Identifier: GPL-3.0-or-later

package config_test

import (
	"testing"

	"github.com/grace-yuwei-li/gba-emu/config"
	"github.com/grace-yuwei-li/gba-emu/test"
)

func TestDefaults(t *testing.T) {
	c := config.Default()
	test.ExpectEquality(t, c.LDRSHMisalignedFallsBackToLDRSB, true)
	test.ExpectEquality(t, c.MSRControlTBitChangeHalts, false)
}
