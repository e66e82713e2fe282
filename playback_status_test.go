// playback_status_test.go - Tests for status reporting

package main

import (
	"strings"
	"testing"
)

func TestBufferFill(t *testing.T) {
	tests := []struct {
		elapsed  uint64
		duration int
		want     float64
	}{
		{0, 10, 0},
		{9, 10, 100},
		{10, 10, 0},
		{13, 5, 75},
		{1, 2, 100},
		{7, 1, 0},
		{7, 0, 0},
	}
	for _, tc := range tests {
		if got := bufferFill(tc.elapsed, tc.duration); got != tc.want {
			t.Errorf("bufferFill(%d, %d) = %v, want %v", tc.elapsed, tc.duration, got, tc.want)
		}
	}
}

func TestPlaybackStatusLine(t *testing.T) {
	st := PlaybackStatus{State: PLAYBACK_PAUSED, Signals: 3, DurationSeconds: 10, BufferFill: 50, Loops: 2}
	line := st.Line()
	for _, want := range []string{"paused", "3 signal(s)", "10s buffer", "50.0%", "loop 3"} {
		if !strings.Contains(line, want) {
			t.Errorf("Line() = %q, want it to contain %q", line, want)
		}
	}
}

func TestPlaybackStateString(t *testing.T) {
	for s, want := range map[PlaybackState]string{
		PLAYBACK_STOPPED: "stopped",
		PLAYBACK_PLAYING: "playing",
		PLAYBACK_PAUSED:  "paused",
	} {
		if got := s.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(s), got, want)
		}
	}
}
