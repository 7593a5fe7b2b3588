// SPDX-License-Identifier: GPL-3.0-or-later

package input_test

import (
	"testing"

	"github.com/grace-yuwei-li/gba-emu/hardware/input"
	"github.com/grace-yuwei-li/gba-emu/hardware/memory"
	"github.com/grace-yuwei-li/gba-emu/test"
)

type fakeTarget struct {
	calls []input.Event
}

func (f *fakeTarget) SetKey(key memory.Key, pressed bool) {
	f.calls = append(f.calls, input.Event{Key: key, Pressed: pressed})
}

type fakeClock struct {
	cycle uint64
}

func (f *fakeClock) Cycles() uint64 { return f.cycle }

type fakeRecorder struct {
	events []input.TimedEvent
}

func (f *fakeRecorder) RecordEvent(ev input.TimedEvent) error {
	f.events = append(f.events, ev)
	return nil
}

func TestPushEventAppliesOnNextTick(t *testing.T) {
	target := &fakeTarget{}
	clock := &fakeClock{}
	inp := input.New(target, clock)

	test.ExpectSuccess(t, inp.PushEvent(input.Event{Key: memory.KeyA, Pressed: true}))
	test.ExpectEquality(t, len(target.calls), 0)

	test.ExpectSuccess(t, inp.Tick())
	test.ExpectEquality(t, target.calls, []input.Event{{Key: memory.KeyA, Pressed: true}})
}

func TestHandleEventNotifiesRecorders(t *testing.T) {
	target := &fakeTarget{}
	clock := &fakeClock{}
	inp := input.New(target, clock)
	rec := &fakeRecorder{}
	inp.AddRecorder(rec)

	clock.cycle = 7
	test.ExpectSuccess(t, inp.HandleEvent(input.Event{Key: memory.KeyStart, Pressed: true}))

	test.ExpectEquality(t, len(rec.events), 1)
	test.ExpectEquality(t, rec.events[0], input.TimedEvent{
		Cycle: 7,
		Event: input.Event{Key: memory.KeyStart, Pressed: true},
	})

	inp.ClearRecorders()
	test.ExpectSuccess(t, inp.HandleEvent(input.Event{Key: memory.KeyStart, Pressed: false}))
	test.ExpectEquality(t, len(rec.events), 1) // unchanged: recorder was detached
}

func TestDrivenEventAppliesOnceClockReachesItsCycle(t *testing.T) {
	target := &fakeTarget{}
	clock := &fakeClock{}
	inp := input.New(target, clock)

	driver := make(chan input.TimedEvent, 1)
	test.ExpectSuccess(t, inp.AttachPassenger(driver))
	driver <- input.TimedEvent{Cycle: 5, Event: input.Event{Key: memory.KeyB, Pressed: true}}

	// First Tick only picks the event up; the clock hasn't reached it yet.
	test.ExpectSuccess(t, inp.Tick())
	test.ExpectEquality(t, len(target.calls), 0)

	clock.cycle = 5
	test.ExpectSuccess(t, inp.Tick())
	test.ExpectEquality(t, target.calls, []input.Event{{Key: memory.KeyB, Pressed: true}})
}

func TestDrivenEventTooLateIsAnError(t *testing.T) {
	target := &fakeTarget{}
	clock := &fakeClock{}
	inp := input.New(target, clock)

	driver := make(chan input.TimedEvent, 1)
	test.ExpectSuccess(t, inp.AttachPassenger(driver))
	driver <- input.TimedEvent{Cycle: 2, Event: input.Event{Key: memory.KeyL, Pressed: true}}

	test.ExpectSuccess(t, inp.Tick())

	clock.cycle = 9 // jumped past cycle 2 without ever ticking at it
	test.ExpectFailure(t, inp.Tick())
}

func TestAttachPassengerAndDriverAreMutuallyExclusive(t *testing.T) {
	target := &fakeTarget{}
	clock := &fakeClock{}
	inp := input.New(target, clock)

	test.ExpectSuccess(t, inp.AttachDriver(make(chan input.TimedEvent, 1)))
	test.ExpectFailure(t, inp.AttachPassenger(make(chan input.TimedEvent, 1)))
}

type scriptedPlayback struct {
	clock  *fakeClock
	events []input.TimedEvent
	next   int
}

func (p *scriptedPlayback) GetPlayback() (input.TimedEvent, bool, error) {
	if p.next >= len(p.events) {
		return input.TimedEvent{}, false, nil
	}
	ev := p.events[p.next]
	if ev.Cycle > p.clock.Cycles() {
		return input.TimedEvent{}, false, nil
	}
	p.next++
	return ev, true, nil
}

func TestPlaybackAppliesEventsDueAtTheCurrentCycle(t *testing.T) {
	target := &fakeTarget{}
	clock := &fakeClock{}
	inp := input.New(target, clock)

	pb := &scriptedPlayback{
		clock: clock,
		events: []input.TimedEvent{
			{Cycle: 0, Event: input.Event{Key: memory.KeyUp, Pressed: true}},
			{Cycle: 3, Event: input.Event{Key: memory.KeyDown, Pressed: true}},
		},
	}
	inp.AttachPlayback(pb)

	test.ExpectSuccess(t, inp.Tick())
	test.ExpectEquality(t, target.calls, []input.Event{{Key: memory.KeyUp, Pressed: true}})

	clock.cycle = 3
	test.ExpectSuccess(t, inp.Tick())
	test.ExpectEquality(t, target.calls, []input.Event{
		{Key: memory.KeyUp, Pressed: true},
		{Key: memory.KeyDown, Pressed: true},
	})
}
