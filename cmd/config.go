// Copyright (c) 2025 Sentiscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"sentiscope/cli/internal/config"
	"sentiscope/cli/internal/logging"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change persisted settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := config.Path()
		if err != nil {
			return err
		}
		data := pterm.TableData{{"Setting", "Value"}}
		for _, f := range cfg.Fields() {
			v := f[1]
			if f[0] == "server_url" {
				v = logging.Mask(v)
			}
			data = append(data, []string{f[0], v})
		}
		pterm.Println(pterm.NewStyle(pterm.FgLightCyan).Sprint("→ Config file: ") + p)
		pterm.Println()
		return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(cmd.OutOrStdout()).Render()
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Persist a setting",
	Long:  "Persist a setting to the config file. Environment variables and flags still take precedence.",
	Example: `  sentiscope config set server_url http://localhost:5000
  sentiscope config set request_timeout 30s
  sentiscope config set cancel_superseded true`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: config.Keys(),
	RunE: func(cmd *cobra.Command, args []string) error {
		// start from the file, not the effective settings, so env overrides are not persisted
		c, err := config.Load()
		if err != nil {
			return err
		}
		if err := c.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := config.Save(c); err != nil {
			return err
		}
		pterm.Success.Printfln("%s = %s", args[0], args[1])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}
