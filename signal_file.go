// signal_file.go - Signal list text format (one comma separated line per signal)

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const SIGNAL_FIELD_DELIM = ", "

var ErrNoValidSignals = errors.New("file does not contain any valid signal")

// LineError describes a signal line the loader skipped.
type LineError struct {
	Line   int
	Text   string
	Reason string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// FormatSignal renders s as its persisted line, without a newline. Numbers
// use the shortest form that parses back to the same value.
func FormatSignal(s Signal) string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(int(s.Kind())))
	layout := signalLayouts[s.Kind()]
	for i, v := range s.fields() {
		sb.WriteString(SIGNAL_FIELD_DELIM)
		if layout.integer[i] {
			sb.WriteString(strconv.Itoa(int(v)))
		} else {
			sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
	}
	return sb.String()
}

// ParseSignal parses one persisted line. The field count must match the
// shape exactly and every field must be numeric; surrounding blanks are
// ignored.
func ParseSignal(line string) (Signal, error) {
	parts := strings.Split(strings.TrimRight(line, "\r\n"), SIGNAL_FIELD_DELIM)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	if len(parts) < 2 {
		return nil, fmt.Errorf("expected a shape tag and parameters, got %d fields", len(parts))
	}

	tag, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, fmt.Errorf("shape tag %q is not an integer", parts[0])
	}
	kind := SignalKind(tag)
	layout, ok := signalLayouts[kind]
	if !ok {
		return nil, fmt.Errorf("unknown shape tag %d", tag)
	}
	params := parts[1:]
	if len(params) != len(layout.names) {
		return nil, fmt.Errorf("%s expects %d parameters, got %d", kind, len(layout.names), len(params))
	}

	values := make([]float64, len(params))
	for i, p := range params {
		if layout.integer[i] {
			n, err := strconv.Atoi(p)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %q is not an integer", kind, layout.names[i], p)
			}
			values[i] = float64(n)
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %q is not a number", kind, layout.names[i], p)
		}
		values[i] = v
	}
	s := layout.build(values)
	if ns, ok := s.(Noise); ok && !ns.Algorithm.Valid() {
		return nil, fmt.Errorf("noise algorithm: unknown source %d", int(ns.Algorithm))
	}
	return s, nil
}

// ReadSignals parses every line of r. Invalid lines are skipped and returned
// as LineErrors. ErrNoValidSignals is returned when nothing parsed.
func ReadSignals(r io.Reader) ([]Signal, []*LineError, error) {
	var (
		signals []Signal
		skipped []*LineError
	)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		s, err := ParseSignal(text)
		if err != nil {
			skipped = append(skipped, &LineError{Line: lineNo, Text: text, Reason: err.Error()})
			if sigDebugEnabled() {
				fmt.Fprintf(os.Stderr, "signal file: skipping line %d: %v\n", lineNo, err)
			}
			continue
		}
		signals = append(signals, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("read signals: %w", err)
	}
	if len(signals) == 0 {
		return nil, skipped, ErrNoValidSignals
	}
	return signals, skipped, nil
}

// WriteSignals writes one line per signal, newline terminated.
func WriteSignals(w io.Writer, signals []Signal) error {
	bw := bufio.NewWriter(w)
	for _, s := range signals {
		if _, err := bw.WriteString(FormatSignal(s) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func LoadSignalFile(path string) ([]Signal, []*LineError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open signal file: %w", err)
	}
	defer f.Close()
	return ReadSignals(f)
}

func SaveSignalFile(path string, signals []Signal) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create signal file: %w", err)
	}
	if err := WriteSignals(f, signals); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
