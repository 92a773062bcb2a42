// Copyright (c) 2025 Sentiscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"sentiscope/cli/internal/httperrors"
	"sentiscope/cli/internal/logging"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List users known to the analysis service",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if d, err := cfg.Timeout(); err != nil {
			return err
		} else if d > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d)
			defer cancel()
		}

		var (
			users []any
			err   error
		)
		spinWhile("Fetching users", false, func() {
			users, err = newClient().ListUsers(ctx)
		})
		if err != nil {
			logging.PresentRequestError(os.Stderr, httperrors.ExtractHostFromURL(cfg.ServerURL), err)
			return errReported
		}

		if len(users) == 0 {
			pterm.Info.Println("No users.")
			return nil
		}
		items := make([]pterm.BulletListItem, 0, len(users))
		for _, u := range users {
			items = append(items, pterm.BulletListItem{Level: 0, Text: fmt.Sprint(u)})
		}
		return pterm.DefaultBulletList.WithItems(items).WithWriter(cmd.OutOrStdout()).Render()
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
}
