// SPDX-License-Identifier: GPL-3.0-or-later

// Package input coordinates the different ways a key change can reach the
// keypad: immediate pushed events from a host running on another goroutine,
// scripted playback of a previously recorded input trace, and driven input
// from another emulation instance kept in lockstep with this one. All three
// ultimately resolve to a call against the Target's SetKey, the core's
// only mutator of keypad state.
//
// Immediate key handling (a host simply calling GbaCore.SetKey itself) is
// the ordinary path and needs nothing from this package; Input exists for
// the less common cases above.
package input

import (
	"fmt"

	"github.com/grace-yuwei-li/gba-emu/hardware/memory"
)

// Target is the keypad surface Input drives. memory.Bus satisfies this.
type Target interface {
	SetKey(key memory.Key, pressed bool)
}

// Clock supplies the monotonically increasing cycle count used to order and
// compare driven/playback events. There is no frame/scanline/pixel position
// to synchronise against here; the core's only notion of "when" is its
// cycle counter.
type Clock interface {
	Cycles() uint64
}

// Event is a single key transition.
type Event struct {
	Key     memory.Key
	Pressed bool
}

// TimedEvent pairs an Event with the cycle count it should be applied at.
type TimedEvent struct {
	Cycle uint64
	Event Event
}

// EventPlayback implementations feed recorded events to the keypad on
// request, in cycle order. Intended for replaying a previously recorded
// input trace, but equally usable to script input for a test.
type EventPlayback interface {
	// GetPlayback returns the next event due at the current cycle and
	// true, or a zero TimedEvent and false when no further event is due
	// now (including once the trace is exhausted). Every event returned
	// with true is applied immediately.
	GetPlayback() (TimedEvent, bool, error)
}

// EventRecorder implementations mirror every handled event, typically to
// persist it for later playback.
type EventRecorder interface {
	RecordEvent(TimedEvent) error
}

// Input handles every form of input into the keypad other than a host
// calling SetKey directly.
type Input struct {
	target Target
	clock  Clock

	playback EventPlayback
	recorder []EventRecorder

	pushed chan Event

	fromDriver     chan TimedEvent
	toPassenger    chan TimedEvent
	checkForDriven bool
	drivenEvent    TimedEvent

	// Handle is called once per Tick; it drains whichever of
	// playback/driven input is currently attached.
	Handle func() error
}

// New creates an Input wired to target and clock, with a bounded queue for
// pushed events.
func New(target Target, clock Clock) *Input {
	inp := &Input{
		target: target,
		clock:  clock,
		pushed: make(chan Event, 64),
	}
	inp.setHandleFunc()
	return inp
}

func (inp *Input) setHandleFunc() {
	switch {
	case inp.fromDriver != nil && inp.playback != nil:
		inp.Handle = func() error {
			if err := inp.handlePlaybackEvents(); err != nil {
				return err
			}
			return inp.handleDrivenEvents()
		}
	case inp.fromDriver != nil:
		inp.Handle = inp.handleDrivenEvents
	case inp.playback != nil:
		inp.Handle = inp.handlePlaybackEvents
	default:
		inp.Handle = func() error { return nil }
	}
}

// HandleEvent applies ev immediately, recording it and forwarding it to an
// attached passenger emulation.
func (inp *Input) HandleEvent(ev Event) error {
	inp.target.SetKey(ev.Key, ev.Pressed)

	timed := TimedEvent{Cycle: inp.clock.Cycles(), Event: ev}
	for _, r := range inp.recorder {
		if err := r.RecordEvent(timed); err != nil {
			return err
		}
	}

	if inp.toPassenger != nil {
		select {
		case inp.toPassenger <- timed:
		default:
			return fmt.Errorf("input: passenger event queue is full: input dropped")
		}
	}

	return nil
}

// PushEvent enqueues ev from another goroutine. Drained on the next Tick.
// Returns an error, without blocking, if the queue is full.
func (inp *Input) PushEvent(ev Event) error {
	select {
	case inp.pushed <- ev:
	default:
		return fmt.Errorf("input: pushed event queue is full: input dropped")
	}
	return nil
}

// Tick drains any pushed events and then runs the attached playback/driven
// handler, if any. Called once per façade tick.
func (inp *Input) Tick() error {
	done := false
	for !done {
		select {
		case ev := <-inp.pushed:
			if err := inp.HandleEvent(ev); err != nil {
				return err
			}
		default:
			done = true
		}
	}
	return inp.Handle()
}
