// signal_eval_test.go - Tests for deterministic signal shapes

package main

import (
	"math"
	"testing"
)

const evalTolerance = 1e-12

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= evalTolerance
}

func TestTriangleDefaultValues(t *testing.T) {
	tri := DefaultTriangle()
	tests := []struct{ t, want float64 }{
		{0, -1},
		{0.25, 0},
		{0.5, 1},
		{0.75, 0},
		{1.0, -1},
		{1.25, 0},
	}
	for _, tc := range tests {
		if got := tri.Value(tc.t); !approxEqual(got, tc.want) {
			t.Errorf("Triangle.Value(%v) = %v, want %v", tc.t, got, tc.want)
		}
	}
}

func TestTriangleRiseFallNotNormalised(t *testing.T) {
	// The fall ramp keeps going past YMin when Rise+Fall < Period.
	tri := Triangle{Period: 1, Rise: 0.25, Fall: 0.25, YMax: 1, YMin: -1}
	if got := tri.Value(0.75); !approxEqual(got, -3) {
		t.Fatalf("Triangle.Value(0.75) = %v, want -3", got)
	}
}

func TestRectangleValues(t *testing.T) {
	r := DefaultRectangle()
	if got := r.Value(0.1); got != 1 {
		t.Errorf("Rectangle.Value(0.1) = %v, want 1", got)
	}
	if got := r.Value(0.6); got != -1 {
		t.Errorf("Rectangle.Value(0.6) = %v, want -1", got)
	}
	if got := r.Value(0.5); got != 1 {
		t.Errorf("Rectangle.Value(0.5) = %v, want 1 (boundary is inclusive)", got)
	}
}

func TestPulseSegments(t *testing.T) {
	p := DefaultPulse()
	tests := []struct{ t, want float64 }{
		{0, -1},
		{0.0625, 0}, // half way up the rise
		{0.125, 1},  // top of the rise
		{0.3, 1},    // flat
		{0.4375, 0}, // half way down the fall
		{0.6, -1},   // rest of the period
		{1.0625, 0}, // next period
	}
	for _, tc := range tests {
		if got := p.Value(tc.t); !approxEqual(got, tc.want) {
			t.Errorf("Pulse.Value(%v) = %v, want %v", tc.t, got, tc.want)
		}
	}
}

func TestPeriodicShapesRepeat(t *testing.T) {
	shapes := []Waveform{
		Triangle{Period: 0.01, Rise: 0.004, Fall: 0.006, Delay: 0.5, YMax: 0.8, YMin: -0.6},
		Rectangle{Period: 0.02, FillFactor: 0.3, Delay: 0.25, YMax: 0.5, YMin: -0.5},
		Pulse{Period: 0.04, Rise: 0.005, Width: 0.01, Fall: 0.005, Delay: 0.1, YMax: 1, YMin: 0},
	}
	for _, s := range shapes {
		var period, delay float64
		switch v := s.(type) {
		case Triangle:
			period, delay = v.Period, v.Delay
		case Rectangle:
			period, delay = v.Period, v.Delay
		case Pulse:
			period, delay = v.Period, v.Delay
		}
		for _, frac := range []float64{0.05, 0.2, 0.45, 0.7, 0.9} {
			base := delay + frac*period
			want := s.Value(base)
			for k := 1; k <= 5; k++ {
				if got := s.Value(base + float64(k)*period); math.Abs(got-want) > 1e-9 {
					t.Fatalf("%s: Value(%v) = %v, want %v (period %d)", s.Kind(), base+float64(k)*period, got, want, k)
				}
			}
		}
	}
}

func TestValueZeroBeforeDelay(t *testing.T) {
	shapes := []Waveform{
		Triangle{Period: 1, Rise: 0.5, Fall: 0.5, Delay: 1, YMax: 1, YMin: -1},
		Rectangle{Period: 1, FillFactor: 0.5, Delay: 1, YMax: 1, YMin: -1},
		Pulse{Period: 1, Rise: 0.1, Width: 0.1, Fall: 0.1, Delay: 1, YMax: 1, YMin: -1},
		RiseFall{Delay: 1, DelayRise: 2, RampRise: 0.3, DelayFall: 4, RampFall: 0.3, YMax: 1, YMin: -1},
		SinDamp{FreqHz: 1, PhiRad: 1, Delay: 1, Amplit: 1, Offset: 0.5},
		SinRise{FreqHz: 1, End: 5, Delay: 1, Amplit: 1, Offset: 0.5},
		WavSin{FreqHz: 1, Delay: 1, Amplit: 1, Offset: 0.5, Index: 3},
		AmSin{CarrierFreqHz: 10, CarrierAmplitude: 1, CarrierOffset: 0.5, CarrierDelay: 1},
		SinDampSin{FreqSinHz: 1, PeriodEnv: 1, Delay: 1, Amplit: 1, Offset: 0.5},
		TrapDampSin{Period: 1, Rise: 0.1, Width: 0.1, Fall: 0.1, Delay: 1, Cross: 10, FreqHz: 1, Amplit: 1, Offset: 0.5},
	}
	for _, s := range shapes {
		for _, tt := range []float64{0, 0.5, 0.999} {
			if got := s.Value(tt); got != 0 {
				t.Errorf("%s.Value(%v) = %v before delay, want 0", s.Kind(), tt, got)
			}
		}
	}
}

func TestRiseFallSumsTransients(t *testing.T) {
	rf := DefaultRiseFall()
	if got := rf.Value(1); got != rf.YMin {
		t.Fatalf("Value(1) = %v, want YMin %v", got, rf.YMin)
	}
	rise := rf.YMin + (rf.YMax-rf.YMin)*(1-math.Exp(-(3-rf.DelayRise)/rf.RampRise))
	if got := rf.Value(3); !approxEqual(got, rise) {
		t.Fatalf("Value(3) = %v, want %v", got, rise)
	}
	// Long after the fall both transients have settled: yMin + (yMax-yMin) + (yMin-yMax).
	if got := rf.Value(100); !approxEqual(got, rf.YMin) {
		t.Fatalf("Value(100) = %v, want %v", got, rf.YMin)
	}
	// Just after DelayFall the rise term is still added in full.
	tt := rf.DelayFall + 0.01
	want := rf.YMin + (rf.YMax-rf.YMin)*(1-math.Exp(-(tt-rf.DelayRise)/rf.RampRise)) +
		(rf.YMin-rf.YMax)*(1-math.Exp(-(tt-rf.DelayFall)/rf.RampFall))
	if got := rf.Value(tt); !approxEqual(got, want) {
		t.Fatalf("Value(%v) = %v, want %v", tt, got, want)
	}
}

func TestSinDampQuarterPeriodPeak(t *testing.T) {
	s := SinDamp{FreqHz: 1, Amplit: 1}
	if got := s.Value(0.25); !approxEqual(got, 1) {
		t.Fatalf("SinDamp.Value(0.25) = %v, want 1", got)
	}
	damped := DefaultSinDamp()
	if got, want := damped.Value(0.25), math.Exp(-0.125); !approxEqual(got, want) {
		t.Fatalf("damped SinDamp.Value(0.25) = %v, want %v", got, want)
	}
}

func TestSinRiseFreezesAtEnd(t *testing.T) {
	s := SinRise{FreqHz: 1, End: 2, Amplit: 1, Offset: 0.25, Damping: 0.5}
	for _, tt := range []float64{2, 2.5, 100} {
		if got := s.Value(tt); got != 0.25 {
			t.Errorf("SinRise.Value(%v) = %v, want offset 0.25", tt, got)
		}
	}
	tt := 1.75
	want := 0.25 + math.Sin(2*math.Pi*(tt-2))*math.Exp(0.5*(tt-2))
	if got := s.Value(tt); !approxEqual(got, want) {
		t.Fatalf("SinRise.Value(%v) = %v, want %v", tt, got, want)
	}
}

func TestWavSinWindow(t *testing.T) {
	s := WavSin{FreqHz: 10, Amplit: 1, Index: 5}
	// b = 2 Hz, window = 0.25 s.
	if got := s.Value(0.25); got != 0 {
		t.Fatalf("WavSin.Value(0.25) = %v, want 0 once the window closes", got)
	}
	tt := 0.125
	want := math.Sin(2*math.Pi*2*tt) * math.Sin(2*math.Pi*10*tt)
	if got := s.Value(tt); !approxEqual(got, want) {
		t.Fatalf("WavSin.Value(%v) = %v, want %v", tt, got, want)
	}
}

func TestWavSinOrderFallback(t *testing.T) {
	tests := []struct {
		index int
		want  uint8
	}{
		{19, 19},
		{3, 3},
		{1, 3},
		{4, 3},
		{-5, 251}, // stored as a byte
		{259, 3},
		{261, 5},
	}
	for _, tc := range tests {
		if got := wavSinOrder(tc.index); got != tc.want {
			t.Errorf("wavSinOrder(%d) = %d, want %d", tc.index, got, tc.want)
		}
	}
}

func TestAmSinValue(t *testing.T) {
	s := DefaultAmSin()
	tt := 0.0125 // quarter carrier period
	want := math.Sin(2*math.Pi*10*tt) * (1 + 0.7*math.Cos(2*math.Pi*2*tt))
	if got := s.Value(tt); !approxEqual(got, want) {
		t.Fatalf("AmSin.Value(%v) = %v, want %v", tt, got, want)
	}
}

func TestDampingFactor(t *testing.T) {
	tests := []struct {
		dampingType int
		k           float64
		want        float64
	}{
		{0, 3, 1},
		{1, 4, 0.25},
		{2, 4, 1.0 / 16},
		{-1, 4, 4},
		{-2, 3, 9},
		{3, 3, math.Exp(-2)},
		{-3, 3, math.Exp(2)},
		{4, 1, 0},
		{-7, 2, 0},
	}
	for _, tc := range tests {
		if got := dampingFactor(tc.dampingType, tc.k); !approxEqual(got, tc.want) {
			t.Errorf("dampingFactor(%d, %v) = %v, want %v", tc.dampingType, tc.k, got, tc.want)
		}
	}
}

func TestSinDampSinEnvelopePeriods(t *testing.T) {
	s := SinDampSin{FreqSinHz: 1, PeriodEnv: 2, Amplit: 1, DampingType: 1}
	// Second envelope period (k=2) at dt=2.25: amplitude halves.
	tt := 2.25
	want := 0.5 * math.Sin(math.Pi/2*tt) * math.Sin(2*math.Pi*tt)
	if got := s.Value(tt); !approxEqual(got, want) {
		t.Fatalf("SinDampSin.Value(%v) = %v, want %v", tt, got, want)
	}
	s.DampingType = 9
	s.Offset = 0.1
	if got := s.Value(tt); !approxEqual(got, 0.1) {
		t.Fatalf("unknown damping type Value = %v, want offset 0.1", got)
	}
}

func TestTrapDampSinZones(t *testing.T) {
	s := TrapDampSin{Period: 1, Rise: 0.1, Width: 0.2, Fall: 0.1, Cross: 3, FreqHz: 5, Amplit: 1, Offset: 0.05}

	// Quiet zone after the fall in every period.
	for _, tt := range []float64{0.5, 0.9, 1.6} {
		if got := s.Value(tt); got != s.Offset {
			t.Errorf("Value(%v) = %v in quiet zone, want offset", tt, got)
		}
	}
	// Cross time silences everything afterwards.
	for _, tt := range []float64{3, 3.05, 10} {
		if got := s.Value(tt); got != s.Offset {
			t.Errorf("Value(%v) = %v after cross, want offset", tt, got)
		}
	}

	// Rise zone of the second period.
	tt := 1.05
	peak := 1 * (3 - 0 - 1 - 0.1) / 3
	want := (0.05/0.1)*peak*math.Sin(2*math.Pi*5*0.05) + s.Offset
	if got := s.Value(tt); math.Abs(got-want) > 1e-9 {
		t.Fatalf("Value(%v) = %v, want %v", tt, got, want)
	}

	// Width zone slopes down by Amplit/Cross per second.
	tt = 0.25
	peak = (3 - 0.1) / 3.0
	want = (peak-(0.25-0.1)/3)*math.Sin(2*math.Pi*5*0.25) + s.Offset
	if got := s.Value(tt); math.Abs(got-want) > 1e-9 {
		t.Fatalf("Value(%v) = %v, want %v", tt, got, want)
	}

	// Fall zone.
	tt = 0.35
	peak = (3 - 0.1 - 0.2) / 3.0
	want = (1-(0.35-0.3)/0.1)*peak*math.Sin(2*math.Pi*5*0.35) + s.Offset
	if got := s.Value(tt); math.Abs(got-want) > 1e-9 {
		t.Fatalf("Value(%v) = %v, want %v", tt, got, want)
	}
}

func TestSignalSumSkipsNoise(t *testing.T) {
	signals := []Signal{
		Rectangle{Period: 1, FillFactor: 1, YMax: 0.25, YMin: -1},
		DefaultNoise(),
		SinDamp{FreqHz: 1, Amplit: 0.5},
	}
	got := SignalSum(signals, 0.25)
	if !approxEqual(got, 0.75) {
		t.Fatalf("SignalSum = %v, want 0.75", got)
	}
	if v := signalValue(DefaultNoise(), 1); v != 0 {
		t.Fatalf("signalValue(noise) = %v, want 0", v)
	}
}
