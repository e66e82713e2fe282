// features.go - Version, build options and supported signal shapes

package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"strings"
)

// Version is overridden at link time with -ldflags "-X main.Version=...".
var Version = "dev"

// buildFeatures is filled by init() in the files that provide each option.
var buildFeatures []string

func registerFeature(names ...string) {
	for _, n := range names {
		if !slices.Contains(buildFeatures, n) {
			buildFeatures = append(buildFeatures, n)
		}
	}
}

func writeFeatureReport(w io.Writer) {
	fmt.Fprintf(w, "sigsynth %s (%s, %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(w, "output:  %d Hz, %d channel, %d-bit signed LE, %d-%d s loop\n",
		SAMPLE_RATE, CHANNEL_COUNT, BYTES_PER_SAMPLE*8, BUFFER_SECONDS_MIN, BUFFER_SECONDS_MAX)

	var shapes []string
	for kind := SIGNAL_TRIANGLE; kind <= SIGNAL_NOISE; kind++ {
		shapes = append(shapes, fmt.Sprintf("%d=%s", int(kind), kind))
	}
	fmt.Fprintf(w, "shapes:  %s\n", strings.Join(shapes, " "))
	fmt.Fprintf(w, "noise:   %s %s, gamma %g..%g\n", NOISE_DEK, NOISE_NAG, NOISE_GAMMA_MIN, NOISE_GAMMA_MAX)

	features := slices.Sorted(slices.Values(buildFeatures))
	if len(features) == 0 {
		features = []string{"(none)"}
	}
	fmt.Fprintf(w, "build:   %s\n", strings.Join(features, " "))
}

func init() {
	registerFeature("script:lua", "export:wav", "plot:png")
}
