package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"marblesort/host/board"
	"marblesort/host/serial"
)

// Environment overrides for the persistent flags
const (
	envDevice = "MARBLE_DEVICE"
	envBaud   = "MARBLE_BAUD"
)

// options holds the persistent flag values
type options struct {
	device  string
	baud    int
	verbose bool

	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	defaults := loadDefaults(".env")

	root := &cobra.Command{
		Use:           "marble-host",
		Short:         "Host tool for the marble sorter",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(opts.verbose)
			if err != nil {
				return err
			}
			opts.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.log != nil {
				_ = opts.log.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.device, "device", "d", defaults.device, "serial device (auto-detected when empty, env "+envDevice+")")
	flags.IntVarP(&opts.baud, "baud", "b", defaults.baud, "baud rate (env "+envBaud+")")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log every line sent and received")

	root.AddCommand(
		newPortsCmd(),
		newSendCmd(opts),
		newMonitorCmd(opts),
		newReplCmd(opts),
		newRouteCmd(opts),
	)
	return root
}

// defaults are the flag defaults after applying the environment
type defaults struct {
	device string
	baud   int
}

// loadDefaults reads an optional dotenv file into the process
// environment, then reads the overrides from it. Variables already set
// in the environment win over the file.
func loadDefaults(path string) defaults {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: ignoring %s: %v\n", path, err)
	}

	d := defaults{
		device: os.Getenv(envDevice),
		baud:   serial.DefaultBaud,
	}
	if v := os.Getenv(envBaud); v != "" {
		baud, err := strconv.Atoi(v)
		if err != nil || baud <= 0 {
			fmt.Fprintf(os.Stderr, "warning: ignoring %s=%q\n", envBaud, v)
		} else {
			d.baud = baud
		}
	}
	return d
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// openBoard connects to the configured or detected device
func (o *options) openBoard() (*board.Board, error) {
	device := o.device
	if device == "" {
		detected, err := serial.Detect()
		if err != nil {
			return nil, fmt.Errorf("no --device given and auto-detection failed: %w", err)
		}
		device = detected
		o.log.Info("using detected port", zap.String("device", device))
	}

	cfg := serial.DefaultConfig(device)
	cfg.Baud = o.baud
	b, err := board.Open(cfg, o.log)
	if err != nil {
		return nil, err
	}
	o.log.Debug("connected", zap.String("device", device), zap.Int("baud", o.baud))
	return b, nil
}
