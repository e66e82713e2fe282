// main.go - Command line entry point for the sigsynth signal generator

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
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"golang.org/x/term"
)

func boilerPlate() {
	fmt.Println("\n\033[38;2;255;20;147msigsynth\033[0m - composite waveform and colored noise generator")
	fmt.Printf("%d Hz mono 16-bit, looped buffer of %d-%d s\n\n", SAMPLE_RATE, BUFFER_SECONDS_MIN, BUFFER_SECONDS_MAX)
}

type cliOptions struct {
	render     RenderConfig
	wavPath    string
	plotPath   string
	plotWindow float64
	savePath   string
	noPlay     bool
	version    bool
}

func parseFlags(args []string) (cliOptions, []string, error) {
	opts := cliOptions{render: DefaultRenderConfig()}

	flagSet := flag.NewFlagSet("sigsynth", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.IntVar(&opts.render.DurationSeconds, "duration", BUFFER_SECONDS_DEFAULT, "Buffer length in seconds (2-3600)")
	flagSet.Int64Var(&opts.render.Seed, "seed", 1, "Seed for the noise streams")
	flagSet.IntVar(&opts.render.Workers, "workers", opts.render.Workers, "Parallel render workers")
	flagSet.BoolVar(&opts.render.Clamp, "clamp", false, "Saturate samples instead of wrapping on overflow")
	flagSet.BoolVar(&opts.render.DEKReseedEachCall, "dek-legacy", false, "Reseed DEK noise before every sample (constant output)")
	flagSet.StringVar(&opts.wavPath, "wav", "", "Write the rendered buffer to a WAV file")
	flagSet.StringVar(&opts.plotPath, "plot", "", "Write a PNG preview of the rendered buffer")
	flagSet.Float64Var(&opts.plotWindow, "plot-window", 0.02, "Seconds shown in the PNG preview")
	flagSet.StringVar(&opts.savePath, "save", "", "Save the loaded signal list in text format")
	flagSet.BoolVar(&opts.noPlay, "no-play", false, "Render and export only, do not open the audio device")
	flagSet.BoolVar(&opts.version, "version", false, "Print version and compiled features")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: ./sigsynth [-duration 10] [-seed 1] [-clamp] [-wav out.wav] [-plot out.png] [-no-play] signals.txt|signals.lua")
		fmt.Println()
		fmt.Println("Keys while playing: space pause/resume, p play from start, s stop, q quit")
		fmt.Println()
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		return opts, nil, err
	}
	return opts, flagSet.Args(), nil
}

func main() {
	opts, args, err := parseFlags(os.Args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if opts.version {
		writeFeatureReport(os.Stdout)
		return
	}
	if len(args) != 1 {
		fmt.Println("Error: expected exactly one signal file")
		os.Exit(1)
	}

	boilerPlate()
	if err := run(opts, args[0]); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts cliOptions, filename string) error {
	var output AudioOutput
	if !opts.noPlay {
		op, err := NewOtoPlayer(SAMPLE_RATE)
		if err != nil {
			return fmt.Errorf("failed to initialize audio: %w", err)
		}
		output = op
	}

	gen, err := NewGenerator(output, opts.render)
	if err != nil {
		return err
	}
	defer gen.Close()

	start := time.Now()
	err = gen.Load(filename)
	for _, le := range gen.Skipped() {
		fmt.Printf("Skipped %v\n", le)
	}
	if errors.Is(err, ErrNoValidSignals) {
		return errors.New("The selected file does not contain any valid signal.")
	}
	if err != nil {
		return err
	}
	fmt.Printf("Rendered %s in %v\n", filename, time.Since(start).Round(time.Millisecond))

	gen.WriteReport()
	for i, s := range gen.Signals() {
		if err := Validate(s); err != nil {
			fmt.Printf("Warning: signal %d: %v\n", i+1, err)
		}
	}

	if err := exportOutputs(gen, opts); err != nil {
		return err
	}
	if opts.noPlay {
		return nil
	}
	return playLoop(gen)
}

func exportOutputs(gen *Generator, opts cliOptions) error {
	if opts.savePath != "" {
		if err := SaveSignalFile(opts.savePath, gen.Signals()); err != nil {
			return err
		}
		fmt.Printf("Saved signal list to %s\n", opts.savePath)
	}
	if opts.wavPath != "" {
		if err := SaveWaveFile(opts.wavPath, gen.PCM()); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", opts.wavPath)
	}
	if opts.plotPath != "" {
		img, err := PlotWaveform(gen.PCM(), opts.plotWindow, PLOT_WIDTH_DEFAULT, PLOT_HEIGHT_DEFAULT)
		if err != nil {
			return err
		}
		if err := SavePlotPNG(opts.plotPath, img); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", opts.plotPath)
	}
	return nil
}

// playLoop loops the buffer until quit. Keys are read only when stdin is a
// terminal; otherwise playback runs until interrupted.
func playLoop(gen *Generator) error {
	if err := gen.Start(); err != nil {
		return err
	}
	fmt.Printf("Playing %s loop\n", gen.DurationText())

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	var keys <-chan byte
	if term.IsTerminal(int(os.Stdin.Fd())) {
		tc := NewTerminalControl()
		if err := tc.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		} else {
			defer tc.Stop()
			keys = tc.Keys
		}
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-interrupt:
			fmt.Println()
			return nil
		case k := <-keys:
			if handlePlaybackKey(gen, k) == KEY_QUIT {
				fmt.Print("\r\n")
				return nil
			}
			fmt.Printf("\r%s", gen.Status().Line())
		case <-ticker.C:
			fmt.Printf("\r%s", gen.Status().Line())
		}
	}
}
