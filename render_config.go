// render_config.go - Output format constants and render configuration

package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
)

const (
	SAMPLE_RATE      = 44100
	CHANNEL_COUNT    = 1
	BYTES_PER_SAMPLE = 2

	BUFFER_SECONDS_MIN     = 2
	BUFFER_SECONDS_MAX     = 3600
	BUFFER_SECONDS_DEFAULT = 10

	PCM_FULL_SCALE = 32767
)

var ErrInvalidDuration = errors.New("buffer duration out of range")

// RenderConfig controls one render of the active signal list.
type RenderConfig struct {
	DurationSeconds int
	// Seed derives one independent noise stream per Noise signal. Equal
	// seeds give byte-identical renders.
	Seed    int64
	Workers int
	// Clamp saturates out of range samples. Without it the 16-bit
	// conversion wraps around in two's complement.
	Clamp bool
	// DEKReseedEachCall reinitialises DEK sources before every draw.
	DEKReseedEachCall bool
}

func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		DurationSeconds: BUFFER_SECONDS_DEFAULT,
		Seed:            1,
		Workers:         runtime.NumCPU(),
	}
}

func (c RenderConfig) Validate() error {
	if c.DurationSeconds < BUFFER_SECONDS_MIN || c.DurationSeconds > BUFFER_SECONDS_MAX {
		return fmt.Errorf("%w: %d s (allowed %d-%d)", ErrInvalidDuration, c.DurationSeconds, BUFFER_SECONDS_MIN, BUFFER_SECONDS_MAX)
	}
	return nil
}

// SampleCount is the number of mono samples in the rendered buffer.
func (c RenderConfig) SampleCount() int {
	return SAMPLE_RATE * c.DurationSeconds
}

// BufferBytes is the size of the rendered PCM buffer.
func (c RenderConfig) BufferBytes() int {
	return c.SampleCount() * CHANNEL_COUNT * BYTES_PER_SAMPLE
}

func (c RenderConfig) workers() int {
	if c.Workers < 1 {
		return 1
	}
	return c.Workers
}

var sigDebugEnabled = sync.OnceValue(func() bool {
	value := strings.ToLower(os.Getenv("SIGSYNTH_DEBUG"))
	return value == "1" || value == "true" || value == "yes"
})
