// player_interfaces.go - Common interfaces for signal players

package main

// SignalPlayer is implemented by anything that loads a signal list and
// loops its render.
type SignalPlayer interface {
	// Load loads a signal list (text format, or Lua when the name ends in .lua)
	Load(path string) error
	// LoadData loads a signal list in text format from a byte slice
	LoadData(data []byte) error
	// Play starts looped playback from the start of the buffer
	Play()
	// Stop stops playback and rewinds
	Stop()
	// IsPlaying returns true if audio is currently being served
	IsPlaying() bool
	// DurationSeconds returns the length of one loop in seconds
	DurationSeconds() float64
	// DurationText returns a formatted duration string (e.g., "0:10")
	DurationText() string
}

// PausablePlayer extends SignalPlayer with pause control.
type PausablePlayer interface {
	SignalPlayer
	Pause()
	Resume()
	IsPaused() bool
}
