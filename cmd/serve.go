// Copyright (c) 2025 Sentiscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/gin-gonic/gin"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sentiscope/cli/internal/server"
)

var (
	serveAddr     string
	serveFixtures string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local stub of the analysis service",
	Long: `Serve answers POST /api/variable and GET /api/users from canned fixtures so
the CLI and the dashboard can be tried without the real analysis service.

A fixture file is YAML:

  default:
    response: {message: "ok", total: 3, positive_percentage: 66.7}
  queries:
    slow:
      delay: 5s
      response: {message: "ok", total: 1}
    boom:
      status: 500
  users: [ada, grace]

Per-query delays make it easy to submit overlapping searches in the dashboard.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fx := server.DefaultFixtures()
		if serveFixtures != "" {
			var err error
			if fx, err = server.LoadFixtures(serveFixtures); err != nil {
				return err
			}
		}

		gin.SetMode(gin.ReleaseMode)
		pterm.Info.Printfln("Stub analysis service on %s (Ctrl+C to stop)", serveAddr)
		logger.Debug("fixtures loaded", zap.Int("queries", len(fx.Queries)), zap.Bool("default", fx.Default != nil))

		return server.New(fx, logger).ListenAndServe(cmd.Context(), serveAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:5000", "Listen address")
	serveCmd.Flags().StringVar(&serveFixtures, "fixtures", "", "YAML fixture file (default: built-in fixtures)")
	rootCmd.AddCommand(serveCmd)
}
