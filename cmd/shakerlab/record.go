package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/shakerlab/internal/automation"
	"github.com/san-kum/shakerlab/internal/export"
	"github.com/san-kum/shakerlab/internal/lab"
	"github.com/san-kum/shakerlab/internal/recorder"
)

func runRecord(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("duration") {
		cfg.Recording.Duration = recordFor
	}
	if cmd.Flags().Changed("indefinite") {
		cfg.Recording.Indefinite = indefinite
	}
	if cmd.Flags().Changed("fps") {
		cfg.FPS = frameRate
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	sc, err := automation.CaptureScenario(automation.Capture{
		Warmup:     warmup,
		Duration:   cfg.Recording.Duration,
		Indefinite: cfg.Recording.Indefinite,
		StopAfter:  stopAfter,
	}, cfg.FPS, cfg.Seed)
	if err != nil {
		return err
	}

	logger, closeLog, err := openLog(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	l := lab.New(cfg.Params(), lab.Options{
		Seed:     cfg.Seed,
		Duration: cfg.Recording.Duration,
		Logger:   logger,
	})
	defer l.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("recording %s (%.1f Hz, amplitude %.2f) at %d fps\n",
		cfg.Preset, cfg.Shake.Frequency, cfg.Shake.Amplitude, cfg.FPS)
	if _, err := automation.RunScenario(ctx, sc, l, nil); err != nil {
		return err
	}

	samples := l.Recorder.Samples()
	printTrace(samples)
	return writeExports(samples, l.Recorder.Duration())
}

func runScript(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if sc.Seed != 0 && !cmd.Flags().Changed("seed") {
		cfg.Seed = sc.Seed
	}
	if sc.FPS == 0 {
		sc.FPS = cfg.FPS
	}

	logger, closeLog, err := openLog(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	l := lab.New(cfg.Params(), lab.Options{
		Seed:       cfg.Seed,
		Duration:   cfg.Recording.Duration,
		Indefinite: cfg.Recording.Indefinite,
		Logger:     logger,
	})
	defer l.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if sc.Name != "" {
		fmt.Printf("scenario %s\n", sc.Name)
	}
	if _, err := automation.RunScenario(ctx, sc, l, os.Stdout); err != nil {
		return err
	}
	if l.Recorder.State() != recorder.Idle {
		printTrace(l.Recorder.Samples())
	}
	return nil
}

func printTrace(samples []float64) {
	fmt.Printf("\n%d samples (%.2fs at %d Hz)\n", len(samples), float64(len(samples))/recorder.SampleRate, recorder.SampleRate)
	if len(samples) < 2 {
		return
	}
	mm := make([]float64, len(samples))
	for i, v := range samples {
		mm[i] = v * 1000
	}
	graph := asciigraph.Plot(mm,
		asciigraph.Height(12),
		asciigraph.Width(72),
		asciigraph.Caption("cable tip displacement (mm)"))
	fmt.Println(graph)
}

func writeExports(samples []float64, duration float64) error {
	if pngOut != "" {
		if err := export.SaveChartPNG(pngOut, samples, "Cable tip displacement"); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", pngOut)
	}
	if svgOut != "" {
		if err := export.SaveSVG(svgOut, export.ChartSVG(samples, duration, 800, 240)); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgOut)
	}
	return nil
}
