// noise_filter.go - Colored noise IIR filter (1/f^gamma spectral shaping)

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
	"fmt"
	"math"
)

const (
	NOISE_FILTER_ORDER = 7
	NOISE_POLE_DENSITY = 1.1 // poles per decade
	NOISE_GAMMA_MIN    = -2.0
	NOISE_GAMMA_MAX    = 2.0
	NOISE_FILTER_FLUSH = 512 // delay line is zeroed every this many samples
)

// noiseLastZero offsets the whole pole/zero grid so the last zero sits at
// half the sample rate.
var noiseLastZero = -math.Log10(0.5)

// NoiseFilter is a cascade of first-order sections expanded into one
// direct-form IIR filter.
type NoiseFilter struct {
	gamma float64
	poles [NOISE_FILTER_ORDER]float64
	zeros [NOISE_FILTER_ORDER]float64
	a     [NOISE_FILTER_ORDER + 1]float64 // denominator, a[0] == 1
	b     [NOISE_FILTER_ORDER + 1]float64 // normalised numerator
}

// NewNoiseFilter builds the filter for gamma. Out of range values leave
// the filter white.
func NewNoiseFilter(gamma float64) *NoiseFilter {
	f := &NoiseFilter{}
	f.rebuild()
	f.SetGamma(gamma)
	return f
}

// SetGamma rebuilds the coefficients for gamma in [-2,2] and reports
// whether it did. Out of range values keep the current filter.
func (f *NoiseFilter) SetGamma(gamma float64) bool {
	if math.IsNaN(gamma) || gamma < NOISE_GAMMA_MIN || gamma > NOISE_GAMMA_MAX {
		if sigDebugEnabled() {
			fmt.Printf("noise filter: gamma %g out of range, keeping %g\n", gamma, f.gamma)
		}
		return false
	}
	f.gamma = gamma
	f.rebuild()
	return true
}

func (f *NoiseFilter) Gamma() float64 {
	return f.gamma
}

// Coefficients returns copies of the numerator and denominator polynomials.
func (f *NoiseFilter) Coefficients() (b, a []float64) {
	b = append([]float64(nil), f.b[:]...)
	a = append([]float64(nil), f.a[:]...)
	return b, a
}

func (f *NoiseFilter) rebuild() {
	shift := 0.5 * f.gamma / NOISE_POLE_DENSITY
	for i := 1; i <= NOISE_FILTER_ORDER; i++ {
		e := float64(i-NOISE_FILTER_ORDER)/NOISE_POLE_DENSITY - shift - noiseLastZero
		f.poles[i-1] = math.Exp(-2 * math.Pi * math.Pow(10, e))
		e += shift
		f.zeros[i-1] = math.Exp(-2 * math.Pi * math.Pow(10, e))
	}

	a := expandRoots(f.poles[:])
	b := expandRoots(f.zeros[:])
	gain := noiseGainCorrection(f.gamma)
	for i := range b {
		f.b[i] = b[i] / gain
		f.a[i] = a[i]
	}
	if sigDebugEnabled() {
		fmt.Printf("noise filter: gamma=%g gain=%g b=%v a=%v\n", f.gamma, gain, f.b, f.a)
	}
}

// noiseGainCorrection keeps filtered white noise near unit power. Fitted
// for 7 sections at 1.1 poles/decade over 20 Hz to 22.05 kHz.
func noiseGainCorrection(gamma float64) float64 {
	switch {
	case gamma < 0:
		return 1 + 0.39*math.Pow(math.Abs(gamma), 1.35845)
	case gamma > 0:
		return 1 + 19*math.Pow(gamma, 4.39232)
	}
	return 1
}

// expandRoots returns the coefficients of prod(1 - r_i*z^-1), lowest order
// first: c[k] = (-1)^k * e_k(r), e_k the k-th elementary symmetric
// polynomial of the roots.
func expandRoots(roots []float64) []float64 {
	c := make([]float64, len(roots)+1)
	c[0] = 1
	for n, r := range roots {
		for k := n + 1; k >= 1; k-- {
			c[k] -= r * c[k-1]
		}
	}
	return c
}

// FilterData runs in through the filter into a new slice. The delay line
// starts from zero and is flushed every NOISE_FILTER_FLUSH samples. A white
// filter returns an unmodified copy.
func (f *NoiseFilter) FilterData(in []float64) []float64 {
	out := make([]float64, len(in))
	if f.gamma == 0 {
		copy(out, in)
		return out
	}

	var w [NOISE_FILTER_ORDER + 1]float64
	for i, x := range in {
		if i%NOISE_FILTER_FLUSH == 0 {
			w = [NOISE_FILTER_ORDER + 1]float64{}
		}
		copy(w[1:], w[:NOISE_FILTER_ORDER])
		w[0] = x
		for j := 1; j <= NOISE_FILTER_ORDER; j++ {
			w[0] -= f.a[j] * w[j]
		}
		var y float64
		for j := 0; j <= NOISE_FILTER_ORDER; j++ {
			y += f.b[j] * w[j]
		}
		out[i] = y
	}
	return out
}
