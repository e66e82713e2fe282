// playback_buffer.go - Wrap-around reader over the rendered PCM buffer

package main

import (
	"errors"
	"sync"
)

var (
	ErrPlaybackStopped = errors.New("playback buffer is not open")
	ErrPlaybackActive  = errors.New("playback buffer is open")
	ErrReadOnly        = errors.New("playback buffer is read-only")
)

// LoopBuffer serves a finite PCM buffer as an endless stream. Its content
// may only be replaced while it is stopped.
type LoopBuffer struct {
	mu     sync.Mutex
	data   []byte
	pos    int
	open   bool
	served uint64 // bytes read since the last Start
}

func NewLoopBuffer(data []byte) *LoopBuffer {
	return &LoopBuffer{data: data}
}

// SetData replaces the buffer content and rewinds the cursor.
func (b *LoopBuffer) SetData(data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.open {
		return ErrPlaybackActive
	}
	b.data = data
	b.pos = 0
	b.served = 0
	return nil
}

// Read fills p from the cursor, wrapping to the start of the buffer as many
// times as needed. An empty buffer reads nothing.
func (b *LoopBuffer) Read(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.open {
		return 0, ErrPlaybackStopped
	}
	if len(b.data) == 0 {
		return 0, nil
	}
	n := 0
	for n < len(p) {
		c := copy(p[n:], b.data[b.pos:])
		b.pos = (b.pos + c) % len(b.data)
		n += c
	}
	b.served += uint64(n)
	return n, nil
}

// Write is a no-op; the buffer is playback only.
func (b *LoopBuffer) Write(p []byte) (int, error) {
	return 0, ErrReadOnly
}

// BytesAvailable reports the full buffer length, since it repeats forever.
func (b *LoopBuffer) BytesAvailable() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.data)
}

func (b *LoopBuffer) Start() {
	b.mu.Lock()
	b.pos = 0
	b.served = 0
	b.open = true
	b.mu.Unlock()
}

func (b *LoopBuffer) Stop() {
	b.mu.Lock()
	b.pos = 0
	b.open = false
	b.mu.Unlock()
}

func (b *LoopBuffer) IsOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.open
}

// Position is the cursor offset in bytes.
func (b *LoopBuffer) Position() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pos
}

// Served is the number of bytes handed out since the last Start.
func (b *LoopBuffer) Served() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.served
}
