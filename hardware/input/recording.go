// SPDX-License-Identifier: GPL-3.0-or-later

package input

// AddRecorder attaches an EventRecorder. Implementations should tolerate
// being attached alongside others; RecordEvent is called on every one for
// every handled event.
func (inp *Input) AddRecorder(r EventRecorder) {
	inp.recorder = append(inp.recorder, r)
}

// ClearRecorders removes every registered event recorder.
func (inp *Input) ClearRecorders() {
	inp.recorder = inp.recorder[:0]
}

// AttachPlayback attaches an EventPlayback implementation. Pass nil to
// remove an existing playback.
func (inp *Input) AttachPlayback(pb EventPlayback) {
	inp.playback = pb
	inp.setHandleFunc()
}

// handlePlaybackEvents requests playback events until the trace is
// exhausted for the current cycle, applying each one through HandleEvent
// exactly as a freshly pushed event would be.
func (inp *Input) handlePlaybackEvents() error {
	if inp.playback == nil {
		return nil
	}

	for {
		ev, more, err := inp.playback.GetPlayback()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		if err := inp.HandleEvent(ev.Event); err != nil {
			return err
		}
	}
}
