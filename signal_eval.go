// signal_eval.go - Time-domain evaluation of deterministic signal shapes

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

import "math"

// Every Value returns 0 before the shape's delay. All shapes are
// evaluated at absolute time t in seconds.

func (s Triangle) Value(t float64) float64 {
	if t < s.Delay {
		return 0
	}
	tin := foldPeriod(t-s.Delay, s.Period)
	if tin <= s.Rise {
		return s.YMin + (s.YMax-s.YMin)*tin/s.Rise
	}
	return s.YMax - (s.YMax-s.YMin)*(tin-s.Rise)/s.Fall
}

func (s Rectangle) Value(t float64) float64 {
	if t < s.Delay {
		return 0
	}
	if foldPeriod(t-s.Delay, s.Period) <= s.Period*s.FillFactor {
		return s.YMax
	}
	return s.YMin
}

func (s Pulse) Value(t float64) float64 {
	if t < s.Delay {
		return 0
	}
	tin := foldPeriod(t-s.Delay, s.Period)
	switch {
	case tin <= s.Rise:
		return s.YMin + (s.YMax-s.YMin)*tin/s.Rise
	case tin <= s.Rise+s.Width:
		return s.YMax
	case tin <= s.Rise+s.Width+s.Fall:
		return s.YMax - (s.YMax-s.YMin)*(tin-s.Rise-s.Width)/s.Fall
	}
	return s.YMin
}

// Value sums the fall transient on top of the rise transient after
// DelayFall, so the output can overshoot before it settles at YMin.
func (s RiseFall) Value(t float64) float64 {
	if t < s.Delay {
		return 0
	}
	if t <= s.DelayRise {
		return s.YMin
	}
	y := s.YMin + (s.YMax-s.YMin)*(1-math.Exp(-(t-s.DelayRise)/s.RampRise))
	if t > s.DelayFall {
		y += (s.YMin - s.YMax) * (1 - math.Exp(-(t-s.DelayFall)/s.RampFall))
	}
	return y
}

func (s SinDamp) Value(t float64) float64 {
	if t < s.Delay {
		return 0
	}
	dt := t - s.Delay
	return s.Offset + s.Amplit*math.Sin(2*math.Pi*s.FreqHz*dt+s.PhiRad)*math.Exp(-s.Damping*dt)
}

// Value grows towards End and holds Offset from End onwards.
func (s SinRise) Value(t float64) float64 {
	if t < s.Delay {
		return 0
	}
	if t >= s.End {
		return s.Offset
	}
	dt := t - s.End
	return s.Offset + s.Amplit*math.Sin(2*math.Pi*s.FreqHz*dt+s.PhiRad)*math.Exp(s.Damping*dt)
}

func (s WavSin) Value(t float64) float64 {
	if t < s.Delay {
		return 0
	}
	n := wavSinOrder(s.Index)
	b := s.FreqHz / float64(n)
	window := 0.5 / b
	if t >= window+s.Delay {
		return 0
	}
	dt := t - s.Delay
	return s.Offset + s.Amplit*math.Sin(2*math.Pi*b*dt)*math.Sin(2*math.Pi*s.FreqHz*dt)
}

// wavSinOrder maps the stored index to the packet order. The index is held
// in a byte, so values above 255 wrap before the odd/minimum check.
func wavSinOrder(index int) uint8 {
	n := uint8(index)
	if n < 3 || n%2 != 1 {
		n = 3
	}
	return n
}

func (s AmSin) Value(t float64) float64 {
	if t < s.CarrierDelay {
		return 0
	}
	dt := t - s.CarrierDelay
	return s.CarrierOffset + s.CarrierAmplitude*math.Sin(2*math.Pi*s.CarrierFreqHz*dt)*
		(1+s.ModulationIndex*math.Cos(2*math.Pi*s.ModulationFreqHz*dt+s.ModulationPhiRad))
}

func (s SinDampSin) Value(t float64) float64 {
	if t < s.Delay {
		return 0
	}
	dt := t - s.Delay
	k := periodIndex(dt, s.PeriodEnv)
	env := s.Amplit * dampingFactor(s.DampingType, k)
	return s.Offset + env*math.Sin(math.Pi/s.PeriodEnv*dt)*math.Sin(2*math.Pi*s.FreqSinHz*dt)
}

// dampingFactor scales the envelope of the k-th (1-based) period.
func dampingFactor(dampingType int, k float64) float64 {
	switch dampingType {
	case 0:
		return 1
	case -3:
		return math.Exp(k - 1)
	case -2, -1, 1, 2:
		return math.Pow(k, float64(-dampingType))
	case 3:
		return math.Exp(-(k - 1))
	}
	return 0
}

func (s TrapDampSin) Value(t float64) float64 {
	if t < s.Delay {
		return 0
	}
	dt := t - s.Delay
	k := periodIndex(dt, s.Period)
	start := s.Delay + (k-1)*s.Period
	tin := dt - (k-1)*s.Period

	riseEnd := start + s.Rise
	widthEnd := riseEnd + s.Width
	fallEnd := widthEnd + s.Fall
	if t >= s.Cross || (t > fallEnd && t < s.Delay+k*s.Period) {
		return s.Offset
	}

	var y float64
	switch {
	case t > start && t <= riseEnd:
		peak := s.Amplit * (s.Cross - s.Delay - (k-1)*s.Period - s.Rise) / s.Cross
		y = tin / s.Rise * peak
	case t > riseEnd && t <= widthEnd:
		peak := s.Amplit * (s.Cross - s.Delay - (k-1)*s.Period - s.Rise) / s.Cross
		y = peak - s.Amplit*(tin-s.Rise)/s.Cross
	case t > widthEnd && t <= fallEnd:
		peak := s.Amplit * (s.Cross - s.Delay - (k-1)*s.Period - s.Rise - s.Width) / s.Cross
		y = (1 - (tin-s.Rise-s.Width)/s.Fall) * peak
	}
	return y*math.Sin(2*math.Pi*s.FreqHz*tin) + s.Offset
}

// foldPeriod reduces an elapsed time into [0, period) using a whole
// period count.
func foldPeriod(dt, period float64) float64 {
	return dt - math.Floor(dt/period)*period
}

// periodIndex is the 1-based index of the period containing dt.
func periodIndex(dt, period float64) float64 {
	return 1 + math.Floor(dt/period)
}

// signalValue evaluates one signal. Noise has no deterministic value and
// contributes through the render noise path instead.
func signalValue(s Signal, t float64) float64 {
	if w, ok := s.(Waveform); ok {
		return w.Value(t)
	}
	return 0
}

// SignalSum is the superposition of every deterministic signal at t,
// accumulated in list order.
func SignalSum(signals []Signal, t float64) float64 {
	var y float64
	for _, s := range signals {
		y += signalValue(s, t)
	}
	return y
}
