// playback_status.go - Point-in-time view of a generator for status display

package main

import "fmt"

type PlaybackState int

const (
	PLAYBACK_STOPPED PlaybackState = iota
	PLAYBACK_PLAYING
	PLAYBACK_PAUSED
)

func (s PlaybackState) String() string {
	switch s {
	case PLAYBACK_PLAYING:
		return "playing"
	case PLAYBACK_PAUSED:
		return "paused"
	}
	return "stopped"
}

// PlaybackStatus is a snapshot taken under the generator lock.
type PlaybackStatus struct {
	State           PlaybackState
	Signals         int
	DurationSeconds int
	// BufferFill is the loop progress in percent.
	BufferFill float64
	// Loops counts completed passes over the buffer since Start.
	Loops uint64
}

// bufferFill maps elapsed whole seconds to loop progress. The last second
// of the loop reads 100%.
func bufferFill(elapsedSeconds uint64, durationSeconds int) float64 {
	if durationSeconds < 2 {
		return 0
	}
	d := uint64(durationSeconds)
	return 100 * float64(elapsedSeconds%d) / float64(d-1)
}

func (s PlaybackStatus) Line() string {
	return fmt.Sprintf("[%-7s] %d signal(s) %ds buffer %5.1f%% loop %d",
		s.State, s.Signals, s.DurationSeconds, s.BufferFill, s.Loops+1)
}
