package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-nota/config"
	"github.com/RyanBlaney/sonido-nota/detect"
	"github.com/RyanBlaney/sonido-nota/logging"
	"github.com/RyanBlaney/sonido-nota/pitch"
	"github.com/RyanBlaney/sonido-nota/waveform"
)

type options struct {
	mode       string
	metric     string
	instrument string
	configPath string
	chunkSize  int
	jsonOutput bool
	logLevel   string
	noColor    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "nota <file.wav>",
		Short: "Identify the note or chord played in a WAV recording",
		Long: `nota analyzes a PCM WAV recording chunk by chunk, finds the dominant
frequency of each chunk and reports the closest musical note, or in chord
mode the closest of the known chord templates.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd, opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, opts, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.mode, "mode", "m", string(detect.ModeNote), "what to detect: note or chord")
	flags.StringVar(&opts.metric, "metric", string(config.ChordMetricPositional), "chord distance: positional or sorted")
	flags.StringVarP(&opts.instrument, "instrument", "i", "", "preset: guitar, piano or voice")
	flags.StringVarP(&opts.configPath, "config", "c", "", "JSON detector configuration file")
	flags.IntVar(&opts.chunkSize, "chunk-size", 2048, "frames per analysis chunk")

	persistent := cmd.PersistentFlags()
	persistent.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	persistent.BoolVar(&opts.jsonOutput, "json", false, "print the result as JSON")
	persistent.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(newProbeCmd(opts))
	return cmd
}

func setupLogging(cmd *cobra.Command, opts *options) error {
	level, ok := logging.ParseLevel(opts.logLevel)
	if !ok {
		return fmt.Errorf("unknown log level %q", opts.logLevel)
	}
	if opts.noColor {
		color.NoColor = true
	}

	logger := logging.NewDefaultLoggerWithWriters(cmd.ErrOrStderr(), cmd.ErrOrStderr(), !color.NoColor)
	logger.SetLevel(level)
	logging.SetGlobalLogger(logger)
	return nil
}

// resolveConfig layers the preset or config file, then explicit flags
func resolveConfig(cmd *cobra.Command, opts *options) (*config.DetectorConfig, error) {
	cfg := config.DefaultDetectorConfig()

	if opts.instrument != "" {
		switch instrument := config.Instrument(opts.instrument); instrument {
		case config.InstrumentGeneric, config.InstrumentGuitar, config.InstrumentPiano, config.InstrumentVoice:
			cfg = config.ConfigForInstrument(instrument)
		default:
			return nil, fmt.Errorf("unknown instrument %q", opts.instrument)
		}
	}

	if opts.configPath != "" {
		if opts.instrument != "" {
			return nil, fmt.Errorf("--instrument and --config cannot be combined")
		}
		loaded, err := config.LoadDetectorConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("chunk-size") {
		cfg.ChunkSize = opts.chunkSize
	}
	if flags.Changed("metric") {
		cfg.ChordMetric = config.ChordMetric(opts.metric)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runDetect(cmd *cobra.Command, opts *options, path string) error {
	mode, err := detect.ParseMode(opts.mode)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}

	detector, err := detect.NewDetector(cfg)
	if err != nil {
		return err
	}

	result, err := detector.DetectFile(path, mode)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	_, err = fmt.Fprintln(out, result.String())
	return err
}

func newProbeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "probe <file.wav>",
		Short: "Print the format of a WAV recording",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := waveform.Probe(args[0])
			if err != nil {
				return fmt.Errorf("%w: %w", pitch.ErrInputUnreadable, err)
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(meta)
			}

			_, err = fmt.Fprintf(out, "%s: %d Hz, %d channel(s), %d-bit PCM, %s\n",
				meta.Path, meta.Format.FrameRate, meta.Format.Channels, meta.BitDepth, meta.Duration)
			return err
		},
	}
}

// diagnose turns pipeline failures into a message for the terminal
func diagnose(err error) string {
	switch {
	case errors.Is(err, pitch.ErrInputUnreadable):
		return fmt.Sprintf("cannot read input: %v", err)
	case errors.Is(err, pitch.ErrInsufficientData):
		return fmt.Sprintf("recording is too short to analyze: %v", err)
	case errors.Is(err, pitch.ErrNoDominantFrequency):
		return fmt.Sprintf("no clear pitch found: %v", err)
	case errors.Is(err, pitch.ErrClassificationUnavailable):
		return fmt.Sprintf("cannot classify: %v", err)
	default:
		return err.Error()
	}
}
