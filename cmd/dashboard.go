// Copyright (c) 2025 Sentiscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sentiscope/cli/internal/logging"
	"sentiscope/cli/internal/terminal"
	"sentiscope/cli/internal/tui"
	"sentiscope/cli/internal/xdg"
)

var (
	dashboardTimeout          time.Duration
	dashboardCancelSuperseded bool
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive sentiment dashboard",
	Long: `Dashboard opens a full-screen view with a query box, the latest result and a
bar chart. Type a query and press Enter; press Esc or Ctrl+C to quit.

Queries can be submitted while an earlier one is still running; only the most
recent submission is ever shown. Logs go to dashboard.log in the XDG state
directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !terminal.IsInteractive() {
			return fmt.Errorf("dashboard needs an interactive terminal; use 'sentiscope search' instead")
		}

		dir, err := xdg.StateDir()
		if err != nil {
			return err
		}
		logPath := filepath.Join(dir, "dashboard.log")
		fileLogger, err := logging.NewFile(cfg.LogLevel, verbose, logPath)
		if err != nil {
			return err
		}
		logger = fileLogger
		logger.Info("dashboard started", zap.String("server", logging.Mask(cfg.ServerURL)))

		ctrl, err := newController(cmd, dashboardTimeout, dashboardCancelSuperseded)
		if err != nil {
			return err
		}
		defer ctrl.Close()

		return tui.Run(cmd.Context(), ctrl)
	},
}

func init() {
	dashboardCmd.Flags().DurationVar(&dashboardTimeout, "timeout", 0, "Bound each request, e.g. 30s (0 waits indefinitely)")
	dashboardCmd.Flags().BoolVar(&dashboardCancelSuperseded, "cancel-superseded", false, "Abort a running request when a newer query is submitted")
	rootCmd.AddCommand(dashboardCmd)
}
