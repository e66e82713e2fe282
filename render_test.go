// render_test.go - Tests for PCM rendering

package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"slices"
	"testing"
)

func testRenderConfig() RenderConfig {
	return RenderConfig{DurationSeconds: BUFFER_SECONDS_MIN, Seed: 99, Workers: 1}
}

func mixedSignals() []Signal {
	return []Signal{
		Triangle{Period: 0.01, Rise: 0.005, Fall: 0.005, YMax: 0.3, YMin: -0.3},
		SinDamp{FreqHz: 440, Amplit: 0.2, Damping: 0.5},
		Noise{Algorithm: NOISE_DEK, Gamma: 1, Amplit: 0.1},
		Noise{Algorithm: NOISE_NAG, Gamma: 0, Delay: 0.5, Amplit: 0.05},
		Noise{Algorithm: NOISE_NAG, Gamma: -1.5, Amplit: 0.05},
	}
}

func sampleAt(pcm []byte, i int) int16 {
	return int16(binary.LittleEndian.Uint16(pcm[i*BYTES_PER_SAMPLE:]))
}

func TestRenderLength(t *testing.T) {
	cfg := testRenderConfig()
	pcm, err := Render(nil, cfg)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if want := SAMPLE_RATE * BUFFER_SECONDS_MIN * BYTES_PER_SAMPLE; len(pcm) != want {
		t.Fatalf("len(pcm) = %d, want %d", len(pcm), want)
	}
	if !bytes.Equal(pcm, make([]byte, len(pcm))) {
		t.Fatal("empty signal list rendered non-silence")
	}
}

func TestRenderRejectsDuration(t *testing.T) {
	for _, d := range []int{0, 1, BUFFER_SECONDS_MAX + 1} {
		cfg := testRenderConfig()
		cfg.DurationSeconds = d
		if _, err := Render(nil, cfg); !errors.Is(err, ErrInvalidDuration) {
			t.Errorf("Render(duration %d) error = %v, want ErrInvalidDuration", d, err)
		}
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	cfg := testRenderConfig()
	a, err := Render(mixedSignals(), cfg)
	if err != nil {
		t.Fatalf("first Render failed: %v", err)
	}
	b, err := Render(mixedSignals(), cfg)
	if err != nil {
		t.Fatalf("second Render failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatal("two renders of the same list differ")
	}
}

func TestRenderIndependentOfWorkers(t *testing.T) {
	cfg := testRenderConfig()
	want, err := Render(mixedSignals(), cfg)
	if err != nil {
		t.Fatalf("Render(workers 1) failed: %v", err)
	}
	for _, w := range []int{0, 3, 8} {
		cfg.Workers = w
		got, err := Render(mixedSignals(), cfg)
		if err != nil {
			t.Fatalf("Render(workers %d) failed: %v", w, err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("Render(workers %d) differs from single worker render", w)
		}
	}
}

func TestRenderSeedChangesNoise(t *testing.T) {
	cfg := testRenderConfig()
	signals := []Signal{Noise{Algorithm: NOISE_DEK, Amplit: 0.5}}
	a, err := Render(signals, cfg)
	if err != nil {
		t.Fatalf("Render(seed %d) failed: %v", cfg.Seed, err)
	}
	cfg.Seed++
	b, err := Render(signals, cfg)
	if err != nil {
		t.Fatalf("Render(seed %d) failed: %v", cfg.Seed, err)
	}
	if bytes.Equal(a, b) {
		t.Fatal("different seeds gave identical noise")
	}
}

func TestRenderDeterministicSamples(t *testing.T) {
	cfg := testRenderConfig()
	sq := Rectangle{Period: 1, FillFactor: 0.5, YMax: 0.5, YMin: -0.25}
	pcm, err := Render([]Signal{sq}, cfg)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got, want := sampleAt(pcm, 100), int16(16383); got != want {
		t.Errorf("sample 100 = %d, want %d", got, want)
	}
	if got, want := sampleAt(pcm, SAMPLE_RATE*3/4), int16(-8191); got != want {
		t.Errorf("sample %d = %d, want %d", SAMPLE_RATE*3/4, got, want)
	}
}

func TestRenderNoiseDelay(t *testing.T) {
	cfg := testRenderConfig()
	signals := []Signal{Noise{Algorithm: NOISE_NAG, Delay: 1, Amplit: 0.5}}
	pcm, err := Render(signals, cfg)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	for i := 0; i < SAMPLE_RATE; i++ {
		if s := sampleAt(pcm, i); s != 0 {
			t.Fatalf("sample %d = %d before the noise delay, want 0", i, s)
		}
	}
	if bytes.Equal(pcm[SAMPLE_RATE*BYTES_PER_SAMPLE:], make([]byte, len(pcm)-SAMPLE_RATE*BYTES_PER_SAMPLE)) {
		t.Fatal("no noise after the delay")
	}
}

func TestNoiseBufferStartsStreamAfterDelay(t *testing.T) {
	ns := Noise{Algorithm: NOISE_NAG, Delay: 10.0 / SAMPLE_RATE, Amplit: 1}
	got := NoiseBuffer(ns, NewNAGSource(5), 20)
	ref := NewNAGSource(5)
	for i := 10; i < 20; i++ {
		if want := 2*ref.Float64() - 1; got[i] != want {
			t.Fatalf("sample %d = %v, want first unused draw %v", i, got[i], want)
		}
	}
}

func TestRenderNoiseColorsAndSumsInOrder(t *testing.T) {
	cfg := testRenderConfig()
	pink := Noise{Algorithm: NOISE_DEK, Gamma: 1, Amplit: 0.2}
	white := Noise{Algorithm: NOISE_NAG, Delay: 0.25, Amplit: 0.1, Offset: 0.05}
	blue := Noise{Algorithm: NOISE_NAG, Gamma: -1.5, Amplit: 0.1}
	signals := []Signal{pink, DefaultTriangle(), white, blue}

	got, err := renderNoise(signals, cfg)
	if err != nil {
		t.Fatalf("renderNoise failed: %v", err)
	}

	n := cfg.SampleCount()
	var parts [][]float64
	for idx, ns := range []Noise{pink, white, blue} {
		src, err := newNoiseSource(ns.Algorithm, cfg, idx)
		if err != nil {
			t.Fatalf("newNoiseSource(%d) failed: %v", idx, err)
		}
		raw := ns
		raw.Gamma = 0
		buf := NoiseBuffer(raw, src, n)
		if ns.Gamma != 0 {
			buf = NewNoiseFilter(ns.Gamma).FilterData(buf)
		}
		parts = append(parts, buf)
	}
	for i := 0; i < n; i++ {
		want := 0.0
		for _, p := range parts {
			want += p[i]
		}
		if got[i] != want {
			t.Fatalf("noise sample %d = %v, want %v", i, got[i], want)
		}
	}

	unfiltered := NoiseBuffer(Noise{Algorithm: NOISE_DEK, Amplit: 0.2}, NewDEKSource(-noiseSeed(cfg.Seed, 0)), n)
	if slices.Equal(parts[0], unfiltered) {
		t.Fatal("gamma 1 noise was not filtered")
	}
}

func TestRenderRejectsUnknownNoiseAlgorithm(t *testing.T) {
	_, err := Render([]Signal{Noise{Algorithm: 9, Amplit: 0.1}}, testRenderConfig())
	if err == nil {
		t.Fatal("Render accepted an unknown noise algorithm")
	}
}

func TestLegacyDEKRenderIsConstant(t *testing.T) {
	cfg := testRenderConfig()
	cfg.DEKReseedEachCall = true
	pcm, err := Render([]Signal{Noise{Algorithm: NOISE_DEK, Amplit: 0.5}}, cfg)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	first := sampleAt(pcm, 0)
	for i := 1; i < cfg.SampleCount(); i += 997 {
		if s := sampleAt(pcm, i); s != first {
			t.Fatalf("sample %d = %d, want constant %d", i, s, first)
		}
	}
}

func TestQuantizeSampleWrapsWithoutClamp(t *testing.T) {
	tests := []struct {
		y     float64
		clamp bool
		want  int16
	}{
		{0, false, 0},
		{1, false, 32767},
		{-1, false, -32767},
		{0.5, false, 16383},
		{1.5, false, -16386}, // 49150 wraps
		{-1.5, false, 16386},
		{1.5, true, 32767},
		{-1.5, true, -32768},
		{0.5, true, 16383},
	}
	for _, tc := range tests {
		if got := quantizeSample(tc.y, tc.clamp); got != tc.want {
			t.Errorf("quantizeSample(%v, clamp=%v) = %d, want %d", tc.y, tc.clamp, got, tc.want)
		}
	}
}

func TestRenderOverflowWraps(t *testing.T) {
	level := Rectangle{Period: 1, FillFactor: 1, YMax: 1.5, YMin: 0}
	cfg := testRenderConfig()
	pcm, _ := Render([]Signal{level}, cfg)
	if s := sampleAt(pcm, 10); s >= 0 {
		t.Fatalf("unclamped 1.5 level rendered %d, want a wrapped negative sample", s)
	}
	cfg.Clamp = true
	pcm, _ = Render([]Signal{level}, cfg)
	if s := sampleAt(pcm, 10); s != 32767 {
		t.Fatalf("clamped 1.5 level rendered %d, want 32767", s)
	}
}

func TestSampleTime(t *testing.T) {
	tests := []struct {
		i    int
		want float64
	}{
		{0, 0},
		{SAMPLE_RATE / 2, 0.5},
		{SAMPLE_RATE, 1},
		{3*SAMPLE_RATE + SAMPLE_RATE/4, 3.25},
		{3600*SAMPLE_RATE - 1, 3599 + float64(SAMPLE_RATE-1)/SAMPLE_RATE},
	}
	for _, tc := range tests {
		if got := sampleTime(tc.i); got != tc.want {
			t.Errorf("sampleTime(%d) = %v, want %v", tc.i, got, tc.want)
		}
	}
}

func TestNoiseSeedsDiffer(t *testing.T) {
	seen := map[int32]bool{}
	for i := 0; i < 64; i++ {
		s := noiseSeed(1, i)
		if s < 0 {
			t.Fatalf("noiseSeed(1, %d) = %d, want non-negative", i, s)
		}
		if seen[s] {
			t.Fatalf("noiseSeed(1, %d) = %d repeats", i, s)
		}
		seen[s] = true
	}
}
