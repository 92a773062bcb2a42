// Copyright (c) 2025 Sentiscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the Sentiscope CLI.
// It implements subcommands for one-shot searches, the interactive dashboard,
// a local stub of the analysis service and configuration, using the Cobra CLI
// framework.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sentiscope/cli/internal/backend"
	"sentiscope/cli/internal/config"
	"sentiscope/cli/internal/logging"
)

var (
	showVersion bool
	verbose     bool
	serverURL   string
	logLevel    string

	// cfg is resolved before every command runs.
	cfg = config.Defaults()
	// logger writes diagnostics; commands never print request failures through it.
	logger = zap.NewNop()
)

// errReported marks a failure the command already showed to the user.
var errReported = errors.New("already reported")

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "sentiscope",
	Short: "Terminal dashboard for a remote sentiment-analysis service",
	Long: `Sentiscope sends a topic or keyword to a sentiment-analysis service and shows
the aggregate result: how many items were analyzed and which share of them is
positive, negative or neutral.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Resolve()
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		if cmd.Flags().Changed("server") {
			c.ServerURL = serverURL
		}
		if cmd.Flags().Changed("log-level") {
			c.LogLevel = logLevel
		}
		if err := c.Validate(); err != nil {
			return err
		}
		cfg = c

		l, err := logging.New(cfg.LogLevel, verbose)
		if err != nil {
			return err
		}
		logger = l
		logger.Debug("configuration resolved",
			zap.String("server", logging.Mask(cfg.ServerURL)),
			zap.String("request_timeout", cfg.RequestTimeout),
			zap.Bool("cancel_superseded", cfg.CancelSuperseded))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			printVersion(cmd)
			return nil
		}
		// If no flag is set, show help
		return cmd.Help()
	},
}

// Execute runs the CLI application.
// It executes the root command and handles any errors that occur during execution.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, logging.PresentError("", err))
		}
		os.Exit(1)
	}
}

// newClient builds the analysis service client from the resolved configuration.
func newClient() *backend.HTTP {
	return backend.New(cfg.ServerURL, cfg.Endpoints,
		backend.WithLogger(logger),
		backend.WithUserAgent("sentiscope-cli/"+Version))
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version information")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Analysis service base URL (default from config, "+config.EnvServerURL+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
