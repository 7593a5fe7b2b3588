// SPDX-License-Identifier: GPL-3.0-or-later

package input

import "fmt"

// handleDrivenEvents checks for input driven from another emulation,
// ordered by cycle count (this core has no frame/scanline/pixel position,
// only a cycle counter).
func (inp *Input) handleDrivenEvents() error {
	if inp.checkForDriven {
		ev := inp.drivenEvent
		done := false
		for !done {
			now := inp.clock.Cycles()
			switch {
			case now == ev.Cycle:
				if err := inp.applyDriven(ev); err != nil {
					return err
				}
			case now > ev.Cycle:
				return fmt.Errorf("input: driven input seen too late: emulations not synced correctly")
			default:
				return nil
			}

			select {
			case inp.drivenEvent = <-inp.fromDriver:
			default:
				done = true
				inp.checkForDriven = false
			}
			ev = inp.drivenEvent
		}
	}

	if inp.fromDriver != nil {
		select {
		case inp.drivenEvent = <-inp.fromDriver:
			inp.checkForDriven = true
		default:
		}
	}

	return nil
}

// applyDriven applies a driven event to the keypad and records it, without
// forwarding it on to a further passenger (the event already arrived via a
// driver, not a local push/playback).
func (inp *Input) applyDriven(ev TimedEvent) error {
	inp.target.SetKey(ev.Event.Key, ev.Event.Pressed)
	for _, r := range inp.recorder {
		if err := r.RecordEvent(ev); err != nil {
			return err
		}
	}
	return nil
}

// AttachPassenger should be called by an emulation that wants to be driven
// by another emulation.
func (inp *Input) AttachPassenger(driver chan TimedEvent) error {
	if inp.toPassenger != nil {
		return fmt.Errorf("input: attach passenger: emulation already defined as an input driver")
	}
	inp.fromDriver = driver
	inp.setHandleFunc()
	return nil
}

// AttachDriver should be called by an emulation that is prepared to drive
// another emulation.
func (inp *Input) AttachDriver(passenger chan TimedEvent) error {
	if inp.fromDriver != nil {
		return fmt.Errorf("input: attach driver: emulation already defined as being an input passenger")
	}
	inp.toPassenger = passenger
	return nil
}
