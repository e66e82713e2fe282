//go:build !windows

// terminal_control.go - Raw, non-blocking stdin reader for playback keys

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"

	"golang.org/x/term"
)

const TERMINAL_POLL_INTERVAL = 5 * time.Millisecond

// TerminalControl puts stdin into raw mode and forwards key presses on
// Keys until Stop. Keys arriving while Keys is full are dropped.
type TerminalControl struct {
	Keys chan byte

	fd       int
	saved    *term.State
	nonblock bool
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewTerminalControl() *TerminalControl {
	return &TerminalControl{Keys: make(chan byte, 16)}
}

// Start switches stdin to raw non-blocking mode and begins reading. On
// error the terminal is left as it was.
func (tc *TerminalControl) Start() error {
	tc.fd = int(os.Stdin.Fd())
	saved, err := term.MakeRaw(tc.fd)
	if err != nil {
		return fmt.Errorf("terminal: raw mode: %w", err)
	}
	tc.saved = saved
	if err := syscall.SetNonblock(tc.fd, true); err != nil {
		tc.restore()
		return fmt.Errorf("terminal: nonblocking stdin: %w", err)
	}
	tc.nonblock = true

	ctx, cancel := context.WithCancel(context.Background())
	tc.cancel = cancel
	tc.done = make(chan struct{})
	go tc.poll(ctx)
	return nil
}

func (tc *TerminalControl) poll(ctx context.Context) {
	defer close(tc.done)
	buf := make([]byte, 8)
	for ctx.Err() == nil {
		n, err := syscall.Read(tc.fd, buf)
		for _, b := range buf[:max(n, 0)] {
			select {
			case tc.Keys <- b:
			default:
			}
		}
		switch {
		case errors.Is(err, syscall.EAGAIN), err == nil && n == 0:
			time.Sleep(TERMINAL_POLL_INTERVAL)
		case err != nil:
			return
		}
	}
}

// Stop waits for the reader to exit and restores stdin. It is safe to call
// more than once, and after a failed Start.
func (tc *TerminalControl) Stop() {
	if tc.cancel != nil {
		tc.cancel()
		<-tc.done
		tc.cancel = nil
	}
	tc.restore()
}

func (tc *TerminalControl) restore() {
	if tc.nonblock {
		_ = syscall.SetNonblock(tc.fd, false)
		tc.nonblock = false
	}
	if tc.saved != nil {
		_ = term.Restore(tc.fd, tc.saved)
		tc.saved = nil
	}
}
