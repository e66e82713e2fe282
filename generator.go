// generator.go - Active signal list, its render and looped playback

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var ErrNotRendered = errors.New("no rendered buffer")

// Generator owns the active signal list and keeps exactly one render of it.
// Every change stops playback, rewinds, and rebuilds the whole buffer.
type Generator struct {
	mu      sync.Mutex
	signals []Signal
	cfg     RenderConfig
	pcm     []byte
	skipped []*LineError

	buffer *LoopBuffer
	output AudioOutput
	state  PlaybackState
}

var _ PausablePlayer = (*Generator)(nil)

func NewGenerator(output AudioOutput, cfg RenderConfig) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Generator{
		cfg:    cfg,
		buffer: NewLoopBuffer(nil),
		output: output,
	}
	if output != nil {
		output.SetupPlayer(g.buffer)
	}
	return g, nil
}

// SetSignals replaces the active list and renders it.
func (g *Generator) SetSignals(signals []Signal) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.replaceLocked(append([]Signal(nil), signals...))
}

func (g *Generator) AddSignal(s Signal) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	next := append(append([]Signal(nil), g.signals...), s)
	return g.replaceLocked(next)
}

func (g *Generator) RemoveSignal(i int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if i < 0 || i >= len(g.signals) {
		return fmt.Errorf("remove signal %d: index out of range (have %d)", i, len(g.signals))
	}
	next := append(append([]Signal(nil), g.signals[:i]...), g.signals[i+1:]...)
	return g.replaceLocked(next)
}

// ClearSignals empties the list and drops the render.
func (g *Generator) ClearSignals() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopLocked()
	g.signals = nil
	g.pcm = nil
	_ = g.buffer.SetData(nil)
}

func (g *Generator) Signals() []Signal {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Signal(nil), g.signals...)
}

// SetDuration changes the buffer length and re-renders.
func (g *Generator) SetDuration(seconds int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	cfg := g.cfg
	cfg.DurationSeconds = seconds
	if err := cfg.Validate(); err != nil {
		return err
	}
	g.cfg = cfg
	return g.rebuildLocked()
}

// SetRenderConfig swaps the whole render configuration and re-renders.
func (g *Generator) SetRenderConfig(cfg RenderConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cfg = cfg
	return g.rebuildLocked()
}

func (g *Generator) RenderConfig() RenderConfig {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cfg
}

// PCM returns the current render. The slice must not be modified.
func (g *Generator) PCM() []byte {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pcm
}

// Skipped returns the lines rejected by the last Load or LoadData.
func (g *Generator) Skipped() []*LineError {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.skipped
}

func (g *Generator) replaceLocked(signals []Signal) error {
	prev := g.signals
	g.signals = signals
	if err := g.rebuildLocked(); err != nil {
		g.signals = prev
		return err
	}
	return nil
}

func (g *Generator) rebuildLocked() error {
	g.stopLocked()
	pcm, err := Render(g.signals, g.cfg)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := g.buffer.SetData(pcm); err != nil {
		return err
	}
	g.pcm = pcm
	return nil
}

// Load reads a signal list file and renders it. Lua scripts may also set
// the buffer duration.
func (g *Generator) Load(path string) error {
	if strings.EqualFold(filepath.Ext(path), ".lua") {
		res, err := LoadSignalScript(path)
		if err != nil {
			return err
		}
		g.mu.Lock()
		defer g.mu.Unlock()
		prev := g.cfg
		if res.DurationSeconds != 0 {
			g.cfg.DurationSeconds = res.DurationSeconds
			if err := g.cfg.Validate(); err != nil {
				g.cfg = prev
				return fmt.Errorf("signal script %s: %w", path, err)
			}
		}
		g.skipped = nil
		if err := g.replaceLocked(res.Signals); err != nil {
			g.cfg = prev
			return err
		}
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("open signal file: %w", err)
	}
	return g.LoadData(data)
}

// LoadData parses text-format signal lines and renders them. On
// ErrNoValidSignals the active list is left unchanged.
func (g *Generator) LoadData(data []byte) error {
	signals, skipped, err := ReadSignals(strings.NewReader(string(data)))
	g.mu.Lock()
	defer g.mu.Unlock()
	g.skipped = skipped
	if err != nil {
		return err
	}
	return g.replaceLocked(signals)
}

// Start begins playback from offset 0.
func (g *Generator) Start() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pcm == nil {
		return ErrNotRendered
	}
	g.stopLocked()
	g.buffer.Start()
	if g.output != nil {
		g.output.Start()
	}
	g.state = PLAYBACK_PLAYING
	return nil
}

// Play is Start for callers that only log failures.
func (g *Generator) Play() {
	if err := g.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "generator: %v\n", err)
	}
}

func (g *Generator) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopLocked()
}

// stopLocked closes the device before the buffer so no read races the
// rewind.
func (g *Generator) stopLocked() {
	if g.output != nil {
		g.output.Stop()
	}
	g.buffer.Stop()
	g.state = PLAYBACK_STOPPED
}

func (g *Generator) Pause() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != PLAYBACK_PLAYING {
		return
	}
	if g.output != nil {
		g.output.Pause()
	}
	g.state = PLAYBACK_PAUSED
}

func (g *Generator) Resume() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != PLAYBACK_PAUSED {
		return
	}
	if g.output != nil {
		g.output.Resume()
	}
	g.state = PLAYBACK_PLAYING
}

func (g *Generator) IsPlaying() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state == PLAYBACK_PLAYING
}

func (g *Generator) IsPaused() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state == PLAYBACK_PAUSED
}

func (g *Generator) DurationSeconds() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return float64(g.cfg.DurationSeconds)
}

func (g *Generator) DurationText() string {
	secs := g.DurationSeconds()
	if secs <= 0 {
		return ""
	}
	mins := int(secs) / 60
	rem := int(math.Round(secs)) % 60
	return fmt.Sprintf("%d:%02d", mins, rem)
}

// Close stops playback and releases the device.
func (g *Generator) Close() {
	g.Stop()
	if g.output != nil {
		g.output.Close()
	}
}

// Status reports the playback state and the loop progress derived from the
// bytes the device has pulled.
func (g *Generator) Status() PlaybackStatus {
	g.mu.Lock()
	defer g.mu.Unlock()
	st := PlaybackStatus{
		State:           g.state,
		Signals:         len(g.signals),
		DurationSeconds: g.cfg.DurationSeconds,
	}
	if g.state == PLAYBACK_STOPPED {
		return st
	}
	served := g.buffer.Served()
	elapsed := served / (SAMPLE_RATE * CHANNEL_COUNT * BYTES_PER_SAMPLE)
	st.BufferFill = bufferFill(elapsed, g.cfg.DurationSeconds)
	if n := uint64(g.buffer.BytesAvailable()); n > 0 {
		st.Loops = served / n
	}
	return st
}

// WriteReport prints the active list the way it would be saved.
func (g *Generator) WriteReport() {
	signals := g.Signals()
	fmt.Printf("Signals: %d, buffer %s (%d samples)\n", len(signals), g.DurationText(), g.RenderConfig().SampleCount())
	for i, s := range signals {
		fmt.Printf("  %2d %-12s %s\n", i+1, s.Kind(), FormatSignal(s))
	}
}
