package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkadit/qris"
	"github.com/mkadit/qris/internal/config"
	"github.com/mkadit/qris/internal/render"
)

var Version = "dev"

// errInvalid is returned once the failure has already been printed.
var errInvalid = errors.New("invalid payload")

// app carries the state shared by every command after flags and config are
// resolved.
type app struct {
	configPath string
	format     string
	noColor    bool
	level      string
	logLevel   string

	cfg       *config.Config
	log       *slog.Logger
	validator *qris.Validator
	out       *render.Renderer
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "qris",
		Short:         "Validate QRIS payloads and convert dynamic ones to static",
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.interactive(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Config file (default $HOME/.qris/config.yaml, then ./.qris.yaml)")
	flags.StringVarP(&a.format, "format", "f", "", "Output format (text, json, yaml)")
	flags.BoolVar(&a.noColor, "no-color", false, "Disable coloured output")
	flags.StringVar(&a.level, "level", "", "Validation level (basic, strict)")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(validateCmd(a))
	rootCmd.AddCommand(decodeCmd(a))
	rootCmd.AddCommand(convertCmd(a))
	rootCmd.AddCommand(checksumCmd(a))
	rootCmd.AddCommand(configCmd())

	return rootCmd
}

// setup loads the configuration, applies flag overrides and builds the
// logger, validator and renderer.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = a.format
	}
	if flags.Changed("no-color") && a.noColor {
		cfg.Output.Color = false
	}
	if flags.Changed("level") {
		cfg.Validation.Level = a.level
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logLevel, _ := config.ParseLogLevel(cfg.Log.Level)
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: logLevel}))

	level, _ := qris.ParseValidationLevel(cfg.Validation.Level)
	a.validator = qris.NewValidator(
		qris.WithRequiredTags(cfg.Validation.RequiredTags...),
		qris.WithValidationLevel(level),
		qris.WithLogger(a.log),
	)

	format, _ := render.ParseFormat(cfg.Output.Format)
	a.out = render.New(cmd.OutOrStdout(), format, cfg.Output.Color)
	return nil
}
