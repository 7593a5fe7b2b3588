// SPDX-License-Identifier: GPL-3.0-or-later

package clocks_test

import (
	"testing"
	"time"

	"github.com/grace-yuwei-li/gba-emu/hardware/clocks"
	"github.com/grace-yuwei-li/gba-emu/test"
)

func TestDurationOneSecondOfCycles(t *testing.T) {
	test.ExpectEquality(t, clocks.Duration(clocks.CPUHz), time.Second)
}

func TestDurationZeroCycles(t *testing.T) {
	test.ExpectEquality(t, clocks.Duration(0), time.Duration(0))
}

func TestDurationHalfASecond(t *testing.T) {
	test.ExpectEquality(t, clocks.Duration(clocks.CPUHz/2), time.Second/2)
}
