//go:build windows

// terminal_control_windows.go - Raw console reader for playback keys

package main

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// TerminalControl puts the console into raw mode and forwards key presses
// on Keys. Console reads block, so Stop restores the console without
// waiting; the reader exits on the next key or at process exit.
type TerminalControl struct {
	Keys chan byte

	fd    int
	saved *term.State
	quit  chan struct{}
}

func NewTerminalControl() *TerminalControl {
	return &TerminalControl{Keys: make(chan byte, 16)}
}

func (tc *TerminalControl) Start() error {
	tc.fd = int(os.Stdin.Fd())
	saved, err := term.MakeRaw(tc.fd)
	if err != nil {
		return fmt.Errorf("terminal: raw mode: %w", err)
	}
	tc.saved = saved
	tc.quit = make(chan struct{})
	go tc.read(tc.quit)
	return nil
}

func (tc *TerminalControl) read(quit <-chan struct{}) {
	buf := make([]byte, 8)
	for {
		n, err := os.Stdin.Read(buf)
		for _, b := range buf[:n] {
			select {
			case <-quit:
				return
			case tc.Keys <- b:
			default:
			}
		}
		if err != nil {
			return
		}
	}
}

func (tc *TerminalControl) Stop() {
	if tc.quit != nil {
		close(tc.quit)
		tc.quit = nil
	}
	if tc.saved != nil {
		_ = term.Restore(tc.fd, tc.saved)
		tc.saved = nil
	}
}
