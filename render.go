// render.go - Render the active signal list into a looping 16-bit PCM buffer

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
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"
)

// Render synthesises cfg.DurationSeconds of mono 16-bit little-endian PCM.
//
// Deterministic shapes are summed per sample in list order, then the noise
// buffers are added in list order. Work is split across cfg.Workers
// goroutines without changing that order, so the output does not depend on
// the worker count.
func Render(signals []Signal, cfg RenderConfig) ([]byte, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	n := cfg.SampleCount()

	noise, err := renderNoise(signals, cfg)
	if err != nil {
		return nil, err
	}

	pcm := make([]byte, cfg.BufferBytes())
	chunk := (n + cfg.workers() - 1) / cfg.workers()

	var g errgroup.Group
	g.SetLimit(cfg.workers())
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				y := SignalSum(signals, sampleTime(i))
				if noise != nil {
					y += noise[i]
				}
				binary.LittleEndian.PutUint16(pcm[i*BYTES_PER_SAMPLE:], uint16(quantizeSample(y, cfg.Clamp)))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if sigDebugEnabled() {
		fmt.Printf("render: %d signals, %d samples, %d workers, %v\n",
			len(signals), n, cfg.workers(), time.Since(start).Round(time.Millisecond))
	}
	return pcm, nil
}

// renderNoise builds every Noise signal's buffer concurrently and sums them
// in list order. It returns nil when the list has no Noise signal.
func renderNoise(signals []Signal, cfg RenderConfig) ([]float64, error) {
	var specs []Noise
	for _, s := range signals {
		if ns, ok := s.(Noise); ok {
			specs = append(specs, ns)
		}
	}
	if len(specs) == 0 {
		return nil, nil
	}

	sources := make([]RandomSource, len(specs))
	for idx, ns := range specs {
		src, err := newNoiseSource(ns.Algorithm, cfg, idx)
		if err != nil {
			return nil, err
		}
		sources[idx] = src
	}

	n := cfg.SampleCount()
	buffers := make([][]float64, len(specs))

	var g errgroup.Group
	g.SetLimit(cfg.workers())
	for idx, ns := range specs {
		g.Go(func() error {
			buffers[idx] = NoiseBuffer(ns, sources[idx], n)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := make([]float64, n)
	for _, buf := range buffers {
		for i, v := range buf {
			total[i] += v
		}
	}
	return total, nil
}

// NoiseBuffer generates n samples of the signal's white noise from src and
// colors it when Gamma is non-zero. The source only advances once the delay
// has elapsed.
func NoiseBuffer(ns Noise, src RandomSource, n int) []float64 {
	white := make([]float64, n)
	for i := range white {
		if sampleTime(i) >= ns.Delay {
			white[i] = (2*src.Float64()-1)*ns.Amplit + ns.Offset
		}
	}
	if ns.Gamma == 0 {
		return white
	}
	return NewNoiseFilter(ns.Gamma).FilterData(white)
}

// newNoiseSource creates the idx-th noise stream of a render.
func newNoiseSource(alg NoiseAlgorithm, cfg RenderConfig, idx int) (RandomSource, error) {
	seed := noiseSeed(cfg.Seed, idx)
	switch alg {
	case NOISE_DEK:
		if cfg.DEKReseedEachCall {
			return NewLegacyDEKSource(1), nil
		}
		return NewDEKSource(-seed), nil
	case NOISE_NAG:
		return NewNAGSource(seed), nil
	}
	return nil, fmt.Errorf("noise signal %d: unknown algorithm %d", idx, int(alg))
}

// noiseSeed derives a positive 31-bit seed for stream idx.
func noiseSeed(seed int64, idx int) int32 {
	return int32(splitmix64(uint64(seed)+uint64(idx)) & 0x7fffffff)
}

func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// sampleTime composes whole seconds and the in-second fraction separately
// to avoid drift on long buffers.
func sampleTime(i int) float64 {
	return float64(i%SAMPLE_RATE)/SAMPLE_RATE + float64(i/SAMPLE_RATE)
}

// quantizeSample scales y to 16 bits. Without clamping, out of range values
// wrap in two's complement.
func quantizeSample(y float64, clamp bool) int16 {
	v := y * PCM_FULL_SCALE
	if clamp {
		return int16(max(math.MinInt16, min(math.MaxInt16, v)))
	}
	return int16(int64(v))
}
