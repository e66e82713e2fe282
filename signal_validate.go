// signal_validate.go - Parameter range checks applied when signals are edited or loaded

package main

import (
	"errors"
	"fmt"
	"math"
)

const (
	FREQ_MAX_HZ = 20000.0
	T_MIN_S     = 1.0 / FREQ_MAX_HZ
)

// Validate reports every parameter of s that an editor would reject.
// Rendering never calls it; out of range signals still render with
// whatever their formulas produce.
func Validate(s Signal) error {
	var c checker
	switch v := s.(type) {
	case Triangle:
		c.period("T", v.Period)
		c.check(v.Rise > 0 && v.Rise < v.Period, "t_rise must be >0 and <%g", v.Period)
		c.check(v.Fall > 0, "t_fall must be >0")
		c.delay(v.Delay)
		c.levels(v.YMax, v.YMin)
	case Rectangle:
		c.period("T", v.Period)
		c.check(v.FillFactor >= 0 && v.FillFactor <= 1, "fill factor must be <=1 and >=0")
		c.delay(v.Delay)
		c.levels(v.YMax, v.YMin)
	case Pulse:
		c.period("T", v.Period)
		c.segments(v.Period, v.Rise, v.Width, v.Fall)
		c.delay(v.Delay)
		c.levels(v.YMax, v.YMin)
	case RiseFall:
		c.delay(v.Delay)
		c.check(v.DelayRise >= v.Delay, "t_delay_rise must be >=%g", v.Delay)
		c.check(v.RampRise > 0, "t_ramp_rise must be >0")
		c.check(v.DelayFall > v.DelayRise, "t_delay_fall must be >%g", v.DelayRise)
		c.check(v.RampFall > 0, "t_ramp_fall must be >0")
		c.levels(v.YMax, v.YMin)
	case SinDamp:
		c.freq("f", v.FreqHz)
		c.phase("phi", v.PhiRad)
		c.delay(v.Delay)
		c.amplitude("amplitude", v.Amplit)
		c.offset("offset", v.Offset)
		c.check(v.Damping >= 0, "damping must be >=0")
	case SinRise:
		c.freq("f", v.FreqHz)
		c.phase("phi", v.PhiRad)
		c.check(v.End > v.Delay, "t_end must be >%g", v.Delay)
		c.delay(v.Delay)
		c.amplitude("amplitude", v.Amplit)
		c.offset("offset", v.Offset)
		c.check(v.Damping >= 0, "damping must be >=0")
	case WavSin:
		c.freq("f", v.FreqHz)
		c.phase("phi", v.PhiRad)
		c.delay(v.Delay)
		c.amplitude("amplitude", v.Amplit)
		c.offset("offset", v.Offset)
		c.check(v.Index >= 3 && v.Index%2 == 1 && v.Index <= math.MaxUint8, "N must be >=3 and odd")
	case AmSin:
		c.freq("carrier f", v.CarrierFreqHz)
		c.amplitude("carrier amplitude", v.CarrierAmplitude)
		c.offset("carrier offset", v.CarrierOffset)
		c.check(v.CarrierDelay >= 0, "carrier t_delay must be >=0")
		c.freq("modulation f", v.ModulationFreqHz)
		c.phase("modulation phi", v.ModulationPhiRad)
		c.check(v.ModulationIndex >= 0, "modulation index must be >=0")
	case SinDampSin:
		c.freq("f_sin", v.FreqSinHz)
		c.period("t_env", v.PeriodEnv)
		c.delay(v.Delay)
		c.amplitude("amplitude", v.Amplit)
		c.offset("offset", v.Offset)
		c.check(v.DampingType >= -3 && v.DampingType <= 3, "N must be >=-3 and <=3")
	case TrapDampSin:
		c.period("T", v.Period)
		c.segments(v.Period, v.Rise, v.Width, v.Fall)
		c.delay(v.Delay)
		c.check(v.Cross > v.Delay, "t_cross must be >%g", v.Delay)
		c.freq("f", v.FreqHz)
		c.amplitude("amplitude", v.Amplit)
		c.offset("offset", v.Offset)
	case Noise:
		c.check(v.Algorithm.Valid(), "noise type must be dek or nag")
		c.check(v.Gamma >= NOISE_GAMMA_MIN && v.Gamma <= NOISE_GAMMA_MAX, "gamma must be >=%g and <=%g", NOISE_GAMMA_MIN, NOISE_GAMMA_MAX)
		c.delay(v.Delay)
		c.amplitude("amplitude", v.Amplit)
		c.offset("offset", v.Offset)
	default:
		return fmt.Errorf("unsupported signal type %T", s)
	}
	if len(c.errs) == 0 {
		return nil
	}
	return fmt.Errorf("%s: %w", s.Kind(), errors.Join(c.errs...))
}

type checker struct {
	errs []error
}

func (c *checker) check(ok bool, format string, args ...any) {
	if !ok {
		c.errs = append(c.errs, fmt.Errorf(format, args...))
	}
}

func (c *checker) period(name string, v float64) {
	c.check(v >= T_MIN_S, "%s must be >=%g", name, T_MIN_S)
}

func (c *checker) delay(v float64) {
	c.check(v >= 0, "t_delay must be >=0")
}

func (c *checker) levels(yMax, yMin float64) {
	c.check(yMax <= 1 && yMax > yMin, "max must be <=1 and >%g", yMin)
	c.check(yMin >= -1 && yMin < yMax, "min must be >=-1 and <%g", yMax)
}

func (c *checker) freq(name string, v float64) {
	c.check(v > 0 && v <= FREQ_MAX_HZ, "%s must be >0 and <=%g", name, FREQ_MAX_HZ)
}

// phase is entered in degrees [0,360) and stored in radians.
func (c *checker) phase(name string, rad float64) {
	c.check(rad >= 0 && rad < 2*math.Pi, "%s must be >=0 and <360", name)
}

func (c *checker) amplitude(name string, v float64) {
	c.check(v > 0 && v <= 1, "%s must be >0 and <=1", name)
}

func (c *checker) offset(name string, v float64) {
	c.check(v > -1 && v < 1, "%s must be >-1 and <1", name)
}

// segments requires rise, width and fall to be positive and fit the period.
func (c *checker) segments(period, rise, width, fall float64) {
	c.check(rise > 0 && rise < period-fall-width, "t_rise must be >0 and <%g", period-fall-width)
	c.check(width > 0 && width < period-rise-fall, "t_width must be >0 and <%g", period-rise-fall)
	c.check(fall > 0 && fall < period-rise-width, "t_fall must be >0 and <%g", period-rise-width)
}
