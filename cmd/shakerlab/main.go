package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/shakerlab/internal/config"
	"github.com/san-kum/shakerlab/internal/tui"
	"github.com/san-kum/shakerlab/internal/window"
)

var (
	configFile string
	preset     string
	seed       int64
	logFile    string
	theme      string
	exportDir  string

	// record
	warmup     float64
	recordFor  float64
	indefinite bool
	stopAfter  float64
	frameRate  int
	pngOut     string
	svgOut     string
)

// main registers the commands and runs the terminal control deck when no
// subcommand is given. It exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "shakerlab",
		Short:        "robotic arm fiber shaking simulator",
		SilenceUsage: true,
		RunE:         runTUI,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", config.DefaultPreset, "shake preset")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", config.DefaultSeed, "cable phase seed")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "write diagnostics to this file")
	rootCmd.Flags().StringVar(&theme, "theme", "", "colour theme")
	rootCmd.Flags().StringVar(&exportDir, "export-dir", ".", "directory for exported charts")

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "open the desktop window",
		RunE:  runWindow,
	}
	windowCmd.Flags().StringVar(&exportDir, "export-dir", ".", "directory for exported charts")

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "record the cable tip headless and print the trace",
		RunE:  runRecord,
	}
	recordCmd.Flags().Float64Var(&warmup, "warmup", 0, "seconds to simulate before recording")
	recordCmd.Flags().Float64Var(&recordFor, "duration", config.DefaultDuration, "recording length in seconds")
	recordCmd.Flags().BoolVar(&indefinite, "indefinite", false, "record until --stop-after")
	recordCmd.Flags().Float64Var(&stopAfter, "stop-after", 0, "seconds before an indefinite recording stops")
	recordCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "simulated frame rate")
	recordCmd.Flags().StringVar(&pngOut, "png", "", "write the chart as PNG")
	recordCmd.Flags().StringVar(&svgOut, "svg", "", "write the chart as SVG")

	scriptCmd := &cobra.Command{
		Use:   "script [file.yaml]",
		Short: "run an automation scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list shake presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tLABEL\tSEVERITY\tFREQ\tAMP\tDETAIL")
			for _, p := range config.Presets {
				fmt.Fprintf(w, "%s\t%s\t%s\t%.0f Hz\t%.2f\t%s\n", p.Name, p.Label, p.Severity, p.Frequency, p.Amplitude, p.Detail)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage the config file",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "shakerlab.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(windowCmd, recordCmd, scriptCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads --config over the defaults; --preset and --seed override
// the file only when given on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	if cmd.Flags().Changed("preset") {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	return cfg, nil
}

// openLog returns a logger writing to --log, or to fallback without it.
func openLog(fallback io.Writer) (*log.Logger, func(), error) {
	if logFile == "" {
		return log.New(fallback, "shakerlab: ", log.LstdFlags), func() {}, nil
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log: %w", err)
	}
	return log.New(f, "shakerlab: ", log.LstdFlags), func() { f.Close() }, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// the terminal belongs to the deck, so diagnostics go to a file or nowhere
	logger := log.New(io.Discard, "", 0)
	if logFile != "" {
		f, err := tea.LogToFile(logFile, "shakerlab")
		if err != nil {
			return fmt.Errorf("failed to open log: %w", err)
		}
		defer f.Close()
		logger = log.Default()
	}

	m := tui.NewModel(cfg, tui.Options{Theme: theme, ExportDir: exportDir, Logger: logger})
	return tui.Run(m)
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := openLog(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	return window.Run(window.New(cfg, window.Options{ExportDir: exportDir, Logger: logger}))
}
