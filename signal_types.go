// signal_types.go - Signal shape definitions and editor defaults

package main

import "fmt"

type SignalKind int

// Values match the shape tag stored in field 0 of a persisted signal line.
const (
	SIGNAL_INVALID SignalKind = iota
	SIGNAL_TRIANGLE
	SIGNAL_RECTANGLE
	SIGNAL_PULSE
	SIGNAL_RISEFALL
	SIGNAL_SINDAMP
	SIGNAL_SINRISE
	SIGNAL_WAVSIN
	SIGNAL_AMSIN
	SIGNAL_SINDAMPSIN
	SIGNAL_TRAPDAMPSIN
	SIGNAL_NOISE
)

var signalKindNames = [...]string{
	SIGNAL_INVALID:     "invalid",
	SIGNAL_TRIANGLE:    "triangle",
	SIGNAL_RECTANGLE:   "rectangle",
	SIGNAL_PULSE:       "pulse",
	SIGNAL_RISEFALL:    "risefall",
	SIGNAL_SINDAMP:     "sindamp",
	SIGNAL_SINRISE:     "sinrise",
	SIGNAL_WAVSIN:      "wavsin",
	SIGNAL_AMSIN:       "amsin",
	SIGNAL_SINDAMPSIN:  "sindampsin",
	SIGNAL_TRAPDAMPSIN: "trapdampsin",
	SIGNAL_NOISE:       "noise",
}

func (k SignalKind) String() string {
	if k < 0 || int(k) >= len(signalKindNames) {
		return fmt.Sprintf("SignalKind(%d)", int(k))
	}
	return signalKindNames[k]
}

// NoiseAlgorithm selects the uniform source behind a Noise signal.
type NoiseAlgorithm int

const (
	NOISE_DEK NoiseAlgorithm = iota // subtractive lagged-Fibonacci
	NOISE_NAG                       // pseudo-DES counter hash
)

// Valid reports whether a names a known source.
func (a NoiseAlgorithm) Valid() bool {
	return a == NOISE_DEK || a == NOISE_NAG
}

func (a NoiseAlgorithm) String() string {
	switch a {
	case NOISE_DEK:
		return "dek"
	case NOISE_NAG:
		return "nag"
	}
	return fmt.Sprintf("NoiseAlgorithm(%d)", int(a))
}

// Signal is one entry of the active signal list. Exactly one concrete shape
// type sits behind it; values are never mutated after construction.
type Signal interface {
	Kind() SignalKind
	fields() []float64
}

// Waveform is implemented by every deterministic shape.
type Waveform interface {
	Signal
	Value(t float64) float64
}

type Triangle struct {
	Period float64
	Rise   float64
	Fall   float64
	Delay  float64
	YMax   float64
	YMin   float64
}

type Rectangle struct {
	Period     float64
	FillFactor float64
	Delay      float64
	YMax       float64
	YMin       float64
}

type Pulse struct {
	Period float64
	Rise   float64
	Width  float64
	Fall   float64
	Delay  float64
	YMax   float64
	YMin   float64
}

// RiseFall is a one-shot pair of exponential transients.
type RiseFall struct {
	Delay     float64
	DelayRise float64
	RampRise  float64
	DelayFall float64
	RampFall  float64
	YMax      float64
	YMin      float64
}

type SinDamp struct {
	FreqHz  float64
	PhiRad  float64
	Delay   float64
	Amplit  float64
	Offset  float64
	Damping float64
}

type SinRise struct {
	FreqHz  float64
	PhiRad  float64
	End     float64
	Delay   float64
	Amplit  float64
	Offset  float64
	Damping float64
}

// WavSin is a single wave packet: a carrier under a half-period sine window
// whose length is Index carrier cycles.
type WavSin struct {
	FreqHz float64
	PhiRad float64
	Delay  float64
	Amplit float64
	Offset float64
	Index  int
}

type AmSin struct {
	CarrierFreqHz    float64
	CarrierAmplitude float64
	CarrierOffset    float64
	CarrierDelay     float64
	ModulationFreqHz float64
	ModulationPhiRad float64
	ModulationIndex  float64
}

type SinDampSin struct {
	FreqSinHz   float64
	PeriodEnv   float64
	Delay       float64
	Amplit      float64
	Offset      float64
	DampingType int
}

type TrapDampSin struct {
	Period float64
	Rise   float64
	Width  float64
	Fall   float64
	Delay  float64
	Cross  float64
	FreqHz float64
	Amplit float64
	Offset float64
}

type Noise struct {
	Algorithm NoiseAlgorithm
	Gamma     float64
	Delay     float64
	Amplit    float64
	Offset    float64
}

func (Triangle) Kind() SignalKind    { return SIGNAL_TRIANGLE }
func (Rectangle) Kind() SignalKind   { return SIGNAL_RECTANGLE }
func (Pulse) Kind() SignalKind       { return SIGNAL_PULSE }
func (RiseFall) Kind() SignalKind    { return SIGNAL_RISEFALL }
func (SinDamp) Kind() SignalKind     { return SIGNAL_SINDAMP }
func (SinRise) Kind() SignalKind     { return SIGNAL_SINRISE }
func (WavSin) Kind() SignalKind      { return SIGNAL_WAVSIN }
func (AmSin) Kind() SignalKind       { return SIGNAL_AMSIN }
func (SinDampSin) Kind() SignalKind  { return SIGNAL_SINDAMPSIN }
func (TrapDampSin) Kind() SignalKind { return SIGNAL_TRAPDAMPSIN }
func (Noise) Kind() SignalKind       { return SIGNAL_NOISE }

// fields returns the parameters in persisted order, shape tag excluded.

func (s Triangle) fields() []float64 {
	return []float64{s.Period, s.Rise, s.Fall, s.Delay, s.YMax, s.YMin}
}

func (s Rectangle) fields() []float64 {
	return []float64{s.Period, s.FillFactor, s.Delay, s.YMax, s.YMin}
}

func (s Pulse) fields() []float64 {
	return []float64{s.Period, s.Rise, s.Width, s.Fall, s.Delay, s.YMax, s.YMin}
}

func (s RiseFall) fields() []float64 {
	return []float64{s.Delay, s.DelayRise, s.RampRise, s.DelayFall, s.RampFall, s.YMax, s.YMin}
}

func (s SinDamp) fields() []float64 {
	return []float64{s.FreqHz, s.PhiRad, s.Delay, s.Amplit, s.Offset, s.Damping}
}

func (s SinRise) fields() []float64 {
	return []float64{s.FreqHz, s.PhiRad, s.End, s.Delay, s.Amplit, s.Offset, s.Damping}
}

func (s WavSin) fields() []float64 {
	return []float64{s.FreqHz, s.PhiRad, s.Delay, s.Amplit, s.Offset, float64(s.Index)}
}

func (s AmSin) fields() []float64 {
	return []float64{s.CarrierFreqHz, s.CarrierAmplitude, s.CarrierOffset, s.CarrierDelay,
		s.ModulationFreqHz, s.ModulationPhiRad, s.ModulationIndex}
}

func (s SinDampSin) fields() []float64 {
	return []float64{s.FreqSinHz, s.PeriodEnv, s.Delay, s.Amplit, s.Offset, float64(s.DampingType)}
}

func (s TrapDampSin) fields() []float64 {
	return []float64{s.Period, s.Rise, s.Width, s.Fall, s.Delay, s.Cross, s.FreqHz, s.Amplit, s.Offset}
}

func (s Noise) fields() []float64 {
	return []float64{float64(s.Algorithm), s.Gamma, s.Delay, s.Amplit, s.Offset}
}

// signalLayout describes the persisted parameter list of one shape.
type signalLayout struct {
	names   []string     // snake_case field names, persisted order
	integer map[int]bool // indices stored as integers
	build   func(v []float64) Signal
}

var signalLayouts = map[SignalKind]signalLayout{
	SIGNAL_TRIANGLE: {
		names: []string{"t_period", "t_rise", "t_fall", "t_delay", "y_max", "y_min"},
		build: func(v []float64) Signal {
			return Triangle{Period: v[0], Rise: v[1], Fall: v[2], Delay: v[3], YMax: v[4], YMin: v[5]}
		},
	},
	SIGNAL_RECTANGLE: {
		names: []string{"t_period", "fill_factor", "t_delay", "y_max", "y_min"},
		build: func(v []float64) Signal {
			return Rectangle{Period: v[0], FillFactor: v[1], Delay: v[2], YMax: v[3], YMin: v[4]}
		},
	},
	SIGNAL_PULSE: {
		names: []string{"t_period", "t_rise", "t_width", "t_fall", "t_delay", "y_max", "y_min"},
		build: func(v []float64) Signal {
			return Pulse{Period: v[0], Rise: v[1], Width: v[2], Fall: v[3], Delay: v[4], YMax: v[5], YMin: v[6]}
		},
	},
	SIGNAL_RISEFALL: {
		names: []string{"t_delay", "t_delay_rise", "t_ramp_rise", "t_delay_fall", "t_ramp_fall", "y_max", "y_min"},
		build: func(v []float64) Signal {
			return RiseFall{Delay: v[0], DelayRise: v[1], RampRise: v[2], DelayFall: v[3], RampFall: v[4], YMax: v[5], YMin: v[6]}
		},
	},
	SIGNAL_SINDAMP: {
		names: []string{"freq_hz", "phi_rad", "t_delay", "amplit", "offset", "damping"},
		build: func(v []float64) Signal {
			return SinDamp{FreqHz: v[0], PhiRad: v[1], Delay: v[2], Amplit: v[3], Offset: v[4], Damping: v[5]}
		},
	},
	SIGNAL_SINRISE: {
		names: []string{"freq_hz", "phi_rad", "t_end", "t_delay", "amplit", "offset", "damping"},
		build: func(v []float64) Signal {
			return SinRise{FreqHz: v[0], PhiRad: v[1], End: v[2], Delay: v[3], Amplit: v[4], Offset: v[5], Damping: v[6]}
		},
	},
	SIGNAL_WAVSIN: {
		names:   []string{"freq_hz", "phi_rad", "t_delay", "amplit", "offset", "index"},
		integer: map[int]bool{5: true},
		build: func(v []float64) Signal {
			return WavSin{FreqHz: v[0], PhiRad: v[1], Delay: v[2], Amplit: v[3], Offset: v[4], Index: int(v[5])}
		},
	},
	SIGNAL_AMSIN: {
		names: []string{"carrier_freq_hz", "carrier_amplitude", "carrier_offset", "carrier_t_delay",
			"modulation_freq_hz", "modulation_phi_rad", "modulation_index"},
		build: func(v []float64) Signal {
			return AmSin{CarrierFreqHz: v[0], CarrierAmplitude: v[1], CarrierOffset: v[2], CarrierDelay: v[3],
				ModulationFreqHz: v[4], ModulationPhiRad: v[5], ModulationIndex: v[6]}
		},
	},
	SIGNAL_SINDAMPSIN: {
		names:   []string{"freq_sin_hz", "t_period_env", "t_delay", "amplit", "offset", "damping_type"},
		integer: map[int]bool{5: true},
		build: func(v []float64) Signal {
			return SinDampSin{FreqSinHz: v[0], PeriodEnv: v[1], Delay: v[2], Amplit: v[3], Offset: v[4], DampingType: int(v[5])}
		},
	},
	SIGNAL_TRAPDAMPSIN: {
		names: []string{"t_period", "t_rise", "t_width", "t_fall", "t_delay", "t_cross", "freq_hz", "amplit", "offset"},
		build: func(v []float64) Signal {
			return TrapDampSin{Period: v[0], Rise: v[1], Width: v[2], Fall: v[3], Delay: v[4], Cross: v[5],
				FreqHz: v[6], Amplit: v[7], Offset: v[8]}
		},
	},
	SIGNAL_NOISE: {
		names:   []string{"algorithm", "gamma", "t_delay", "amplit", "offset"},
		integer: map[int]bool{0: true},
		build: func(v []float64) Signal {
			return Noise{Algorithm: NoiseAlgorithm(v[0]), Gamma: v[1], Delay: v[2], Amplit: v[3], Offset: v[4]}
		},
	},
}

// DefaultSignal returns the editor defaults for a shape.
func DefaultSignal(kind SignalKind) (Signal, error) {
	switch kind {
	case SIGNAL_TRIANGLE:
		return DefaultTriangle(), nil
	case SIGNAL_RECTANGLE:
		return DefaultRectangle(), nil
	case SIGNAL_PULSE:
		return DefaultPulse(), nil
	case SIGNAL_RISEFALL:
		return DefaultRiseFall(), nil
	case SIGNAL_SINDAMP:
		return DefaultSinDamp(), nil
	case SIGNAL_SINRISE:
		return DefaultSinRise(), nil
	case SIGNAL_WAVSIN:
		return DefaultWavSin(), nil
	case SIGNAL_AMSIN:
		return DefaultAmSin(), nil
	case SIGNAL_SINDAMPSIN:
		return DefaultSinDampSin(), nil
	case SIGNAL_TRAPDAMPSIN:
		return DefaultTrapDampSin(), nil
	case SIGNAL_NOISE:
		return DefaultNoise(), nil
	}
	return nil, fmt.Errorf("unknown signal kind %d", int(kind))
}

func DefaultTriangle() Triangle {
	return Triangle{Period: 1, Rise: 0.5, Fall: 0.5, Delay: 0, YMax: 1, YMin: -1}
}

func DefaultRectangle() Rectangle {
	return Rectangle{Period: 1, FillFactor: 0.5, Delay: 0, YMax: 1, YMin: -1}
}

func DefaultPulse() Pulse {
	return Pulse{Period: 1, Rise: 0.125, Width: 0.25, Fall: 0.125, Delay: 0, YMax: 1, YMin: -1}
}

func DefaultRiseFall() RiseFall {
	return RiseFall{Delay: 0, DelayRise: 2, RampRise: 0.3, DelayFall: 4, RampFall: 0.3, YMax: 1, YMin: -1}
}

func DefaultSinDamp() SinDamp {
	return SinDamp{FreqHz: 1, PhiRad: 0, Delay: 0, Amplit: 1, Offset: 0, Damping: 0.5}
}

func DefaultSinRise() SinRise {
	return SinRise{FreqHz: 1, PhiRad: 0, End: 5, Delay: 0, Amplit: 1, Offset: 0, Damping: 0.5}
}

func DefaultWavSin() WavSin {
	return WavSin{FreqHz: 1, PhiRad: 0, Delay: 0, Amplit: 1, Offset: 0, Index: 19}
}

func DefaultAmSin() AmSin {
	return AmSin{CarrierFreqHz: 10, CarrierAmplitude: 1, CarrierOffset: 0, CarrierDelay: 0,
		ModulationFreqHz: 2, ModulationPhiRad: 0, ModulationIndex: 0.7}
}

func DefaultSinDampSin() SinDampSin {
	return SinDampSin{FreqSinHz: 1, PeriodEnv: 5, Delay: 0, Amplit: 1, Offset: 0, DampingType: 1}
}

func DefaultTrapDampSin() TrapDampSin {
	return TrapDampSin{Period: 1, Rise: 0.15, Width: 0.5, Fall: 0.15, Delay: 0, Cross: 15,
		FreqHz: 10, Amplit: 1, Offset: 0}
}

func DefaultNoise() Noise {
	return Noise{Algorithm: NOISE_DEK, Gamma: 0, Delay: 0, Amplit: 0.1, Offset: 0}
}
