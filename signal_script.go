// signal_script.go - Build signal lists from Lua scripts

package main

import (
	"fmt"
	"math"
	"os"

	lua "github.com/yuin/gopher-lua"
)

// ScriptResult is what a signal script produced. DurationSeconds is 0 when
// the script did not set the global "duration".
type ScriptResult struct {
	Signals         []Signal
	DurationSeconds int
}

// LoadSignalScript runs the Lua file at path.
func LoadSignalScript(path string) (*ScriptResult, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read signal script: %w", err)
	}
	return RunSignalScript(path, string(src))
}

// RunSignalScript executes src with one constructor per shape registered as
// a global (triangle{...}, noise{...}, ...). Each call appends a signal built
// from the shape's defaults overridden by the table's fields and returns
// its 1-based position in the list.
func RunSignalScript(name, src string) (*ScriptResult, error) {
	L := lua.NewState()
	defer L.Close()

	res := &ScriptResult{}
	for kind := SIGNAL_TRIANGLE; kind <= SIGNAL_NOISE; kind++ {
		L.SetGlobal(kind.String(), L.NewFunction(signalConstructor(kind, res)))
	}

	if err := L.DoString(src); err != nil {
		return nil, fmt.Errorf("signal script %s: %w", name, err)
	}

	switch d := L.GetGlobal("duration").(type) {
	case *lua.LNilType:
	case lua.LNumber:
		secs := float64(d)
		if secs != math.Trunc(secs) {
			return nil, fmt.Errorf("signal script %s: duration %g is not a whole number of seconds", name, secs)
		}
		res.DurationSeconds = int(secs)
	default:
		return nil, fmt.Errorf("signal script %s: duration must be a number, got %s", name, d.Type())
	}

	if len(res.Signals) == 0 {
		return nil, fmt.Errorf("signal script %s: %w", name, ErrNoValidSignals)
	}
	return res, nil
}

func signalConstructor(kind SignalKind, res *ScriptResult) lua.LGFunction {
	layout := signalLayouts[kind]
	index := make(map[string]int, len(layout.names))
	for i, n := range layout.names {
		index[n] = i
	}

	return func(L *lua.LState) int {
		def, err := DefaultSignal(kind)
		if err != nil {
			L.RaiseError("%v", err)
		}
		values := def.fields()

		tbl := L.OptTable(1, L.NewTable())
		tbl.ForEach(func(k, v lua.LValue) {
			key, ok := k.(lua.LString)
			if !ok {
				L.ArgError(1, fmt.Sprintf("%s: field names must be strings, got %s", kind, k.Type()))
			}
			i, ok := index[string(key)]
			if !ok {
				L.ArgError(1, fmt.Sprintf("%s: unknown field %q", kind, string(key)))
			}
			values[i] = scriptFieldValue(L, kind, layout, i, v)
		})

		s := layout.build(values)
		res.Signals = append(res.Signals, s)
		if sigDebugEnabled() {
			fmt.Printf("signal script: %s\n", FormatSignal(s))
		}
		L.Push(lua.LNumber(len(res.Signals)))
		return 1
	}
}

func scriptFieldValue(L *lua.LState, kind SignalKind, layout signalLayout, i int, v lua.LValue) float64 {
	name := layout.names[i]
	if kind == SIGNAL_NOISE && name == "algorithm" {
		if s, ok := v.(lua.LString); ok {
			switch string(s) {
			case "dek":
				return float64(NOISE_DEK)
			case "nag":
				return float64(NOISE_NAG)
			}
			L.ArgError(1, fmt.Sprintf("noise: algorithm must be \"dek\" or \"nag\", got %q", string(s)))
		}
	}
	n, ok := v.(lua.LNumber)
	if !ok {
		L.ArgError(1, fmt.Sprintf("%s: %s must be a number, got %s", kind, name, v.Type()))
	}
	f := float64(n)
	if layout.integer[i] && f != math.Trunc(f) {
		L.ArgError(1, fmt.Sprintf("%s: %s must be an integer, got %g", kind, name, f))
	}
	if kind == SIGNAL_NOISE && name == "algorithm" && !NoiseAlgorithm(f).Valid() {
		L.ArgError(1, fmt.Sprintf("noise: unknown algorithm %g", f))
	}
	return f
}
