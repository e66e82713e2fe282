//go:build headless

// audio_backend_headless.go - Silent audio output for builds without a sound device

package main

import "io"

// OtoPlayer in headless builds tracks state only; nothing reads the source.
type OtoPlayer struct {
	src     io.Reader
	started bool
	paused  bool
}

func NewOtoPlayer(sampleRate int) (*OtoPlayer, error) {
	return &OtoPlayer{}, nil
}

func init() {
	registerFeature("audio:headless")
}

func (op *OtoPlayer) SetupPlayer(src io.Reader) {
	op.src = src
}

func (op *OtoPlayer) Start() {
	if op.src != nil {
		op.started = true
		op.paused = false
	}
}

func (op *OtoPlayer) Pause() {
	if op.started {
		op.paused = true
	}
}

func (op *OtoPlayer) Resume() {
	op.paused = false
}

func (op *OtoPlayer) Stop() {
	op.started = false
	op.paused = false
}

func (op *OtoPlayer) Close() {
	op.Stop()
	op.src = nil
}

func (op *OtoPlayer) IsStarted() bool {
	return op.started && !op.paused
}
