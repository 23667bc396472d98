package main

import (
	"context"
	"fmt"
	"io"
	"maps"
	"math"
	"os"
	"os/signal"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/cwbudde/algo-route/dsp/meter"
	"github.com/cwbudde/algo-route/dsp/snapshot"
	"github.com/cwbudde/algo-route/engine"
	"github.com/cwbudde/algo-route/record"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type simulateOptions struct {
	duration   time.Duration
	sampleRate float64
	frames     int
	channels   int
	freq       float64
	amplitude  float64
	recordPath string
	fftSize    int
}

type simulateResult struct {
	blocks  int
	played  int
	silent  int
	frame   meter.Frame
	peakHz  float64
	stats   engine.Stats
	dropped uint64
}

func newSimulateCmd(log *logrus.Logger) *cobra.Command {
	opts := simulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate <config.json>",
		Short: "Run a test tone through the engine",
		Long: `Run a sine tone through the configured graphs as fast as possible,
with the capture and playback sides on separate goroutines, then print
the final levels and the strongest frequency of the output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := snapshot.LoadFile(args[0])
			if snap == nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			res, err := simulate(ctx, log, snap, opts)
			if err != nil {
				return err
			}

			return printResult(cmd.OutOrStdout(), res)
		},
	}

	f := cmd.Flags()
	f.DurationVar(&opts.duration, "duration", time.Second, "Length of the simulated signal")
	f.Float64Var(&opts.sampleRate, "rate", 48000, "Sample rate in Hz")
	f.IntVar(&opts.frames, "frames", 256, "Frames per block")
	f.IntVar(&opts.channels, "channels", 2, "Channel count")
	f.Float64Var(&opts.freq, "freq", 440, "Test tone frequency in Hz")
	f.Float64Var(&opts.amplitude, "amplitude", 0.5, "Test tone amplitude")
	f.StringVarP(&opts.recordPath, "record", "r", "", "Record the output to a 16-bit WAV file")
	f.IntVar(&opts.fftSize, "fft", 1024, "Analyzer size for the peak frequency")

	return cmd
}

func simulate(ctx context.Context, log logrus.FieldLogger, snap *snapshot.Snapshot, opts simulateOptions) (simulateResult, error) {
	if opts.frames <= 0 || opts.channels <= 0 || opts.sampleRate <= 0 {
		return simulateResult{}, fmt.Errorf("invalid block format: %d frames, %d channels, %g Hz",
			opts.frames, opts.channels, opts.sampleRate)
	}

	analyzer, err := meter.NewAnalyzer(opts.fftSize)
	if err != nil {
		return simulateResult{}, err
	}

	engineOpts := []engine.Option{
		engine.WithLogger(log),
		engine.WithTapSize(opts.fftSize),
	}

	var recorder *record.WAVRecorder

	if opts.recordPath != "" {
		recorder = record.NewWAVRecorder(record.WithLogger(log))
		engineOpts = append(engineOpts, engine.WithRecorder(recorder))

		if err := recorder.Start(opts.recordPath); err != nil {
			return simulateResult{}, err
		}
	}

	eng := engine.New(engineOpts...)

	if err := eng.Publish(snap); err != nil {
		if recorder != nil {
			_ = recorder.Stop()
		}

		return simulateResult{}, err
	}

	total := int(opts.duration.Seconds() * opts.sampleRate / float64(opts.frames))
	res := simulateResult{}
	done := make(chan struct{})

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		played int
		silent int
	)

	wg.Go(func() {
		dst := make([]float64, opts.frames*opts.channels)
		for {
			ok := eng.DequeueOutput(dst, len(dst))

			mu.Lock()
			if ok {
				played++
			} else {
				silent++
			}
			mu.Unlock()

			if !ok {
				runtime.Gosched()
			}

			select {
			case <-done:
				for eng.DequeueOutput(dst, len(dst)) {
					mu.Lock()
					played++
					mu.Unlock()
				}

				return
			default:
			}
		}
	})

	wg.Go(func() {
		defer close(done)

		raw := make([][]float64, opts.channels)
		for ch := range raw {
			raw[ch] = make([]float64, opts.frames)
		}

		step := 2 * math.Pi * opts.freq / opts.sampleRate

		for block := range total {
			if ctx.Err() != nil {
				return
			}

			for i := range opts.frames {
				v := opts.amplitude * math.Sin(step*float64(block*opts.frames+i))
				for ch := range raw {
					raw[ch][i] = v
				}
			}

			eng.ProcessBlock(raw, opts.frames, opts.channels, opts.sampleRate)
			res.blocks++
		}
	})

	wg.Wait()

	if recorder != nil && recorder.Active() {
		res.dropped = recorder.Dropped()

		if err := recorder.Stop(); err != nil {
			return res, err
		}
	}

	res.played, res.silent = played, silent
	res.frame = eng.CurrentLevelSnapshot()
	res.stats = eng.Stats()

	if len(res.frame.Tap) >= analyzer.Size() {
		spectrum, err := analyzer.Spectrum(nil, res.frame.Tap)
		if err != nil {
			return res, err
		}

		res.peakHz = analyzer.BinFrequency(argMax(spectrum), opts.sampleRate)
	}

	return res, nil
}

func printResult(w io.Writer, res simulateResult) error {
	fmt.Fprintf(w, "blocks processed: %d\n", res.blocks)
	fmt.Fprintf(w, "blocks played:    %d (%d underruns)\n", res.played, res.silent)
	fmt.Fprintf(w, "ring drops:       %d\n", res.stats.RingDrops)

	if res.dropped > 0 {
		fmt.Fprintf(w, "record drops:     %d\n", res.dropped)
	}

	for ch := range res.frame.Peaks {
		fmt.Fprintf(w, "channel %d peak:   %.1f dB\n", ch, res.frame.PeakDB(ch))
	}

	for _, id := range slices.Sorted(maps.Keys(res.frame.Levels)) {
		level, _ := res.frame.Level(id)
		fmt.Fprintf(w, "node %-12s %.3f\n", id+":", level)
	}

	_, err := fmt.Fprintf(w, "peak frequency:   %.1f Hz\n", res.peakHz)

	return err
}

func argMax(x []float64) int {
	best := 0
	for i, v := range x {
		if v > x[best] {
			best = i
		}
	}

	return best
}
