// SPDX-License-Identifier: GPL-3.0-or-later

// Package instance defines the parts of the emulation that can differ from
// instance to instance of the core (policy configuration, logging
// permission) without being the core itself. Useful when more than one
// GbaCore runs in the same process.
package instance

import (
	"github.com/grace-yuwei-li/gba-emu/config"
	"github.com/grace-yuwei-li/gba-emu/logger"
)

// Instance carries the parts of an emulation run that are shared by
// reference across every component (CPU, bus, PPU) that a single GbaCore
// owns.
type Instance struct {
	Config config.Config

	// LogPermission gates logger.Log/Logf calls made on behalf of this
	// instance. Defaults to logger.Allow.
	LogPermission logger.Permission
}

// New creates an Instance with default configuration and logging allowed.
func New() *Instance {
	return &Instance{
		Config:        config.Default(),
		LogPermission: logger.Allow,
	}
}
