// SPDX-License-Identifier: GPL-3.0-or-later

// Package input coordinates the ways key state can reach the keypad beyond
// a host simply calling GbaCore.SetKey directly:
//
// 1) Pushed events, arriving from a different goroutine than the one
//    driving Tick (see Input.PushEvent).
// 2) Playback of a previously recorded input trace (see EventPlayback).
// 3) Driven events from another emulation instance kept in lockstep with
//    this one, synchronised by cycle count rather than by screen position
//    (see AttachDriver/AttachPassenger).
//
// Pushed and played-back events go through Input.HandleEvent, which applies
// the key change, mirrors it to any attached EventRecorder, and forwards it
// to an attached passenger emulation. Driven events are applied and
// recorded the same way but are not forwarded to a passenger.
package input
