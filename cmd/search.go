// Copyright (c) 2025 Sentiscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"sentiscope/cli/internal/chart"
	"sentiscope/cli/internal/controller"
	apperrors "sentiscope/cli/internal/errors"
	"sentiscope/cli/internal/sentiment"
	"sentiscope/cli/internal/terminal"
	"sentiscope/cli/internal/view"
)

var (
	searchJSON             bool
	searchTimeout          time.Duration
	searchCancelSuperseded bool
)

// searchCmd runs one search, or a prompt loop when no query is given.
var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Analyze the sentiment of a topic or keyword",
	Long: `Search sends the query to the analysis service and prints the total number of
analyzed items, the positive, negative and neutral percentages, and a bar chart.

Without arguments it prompts for queries until end of input.`,
	Example: `  sentiscope search climate change
  sentiscope search --json golang
  sentiscope search --timeout 10s "world cup"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := newController(cmd, searchTimeout, searchCancelSuperseded)
		if err != nil {
			return err
		}
		defer ctrl.Close()

		out := cmd.OutOrStdout()
		if len(args) == 0 {
			return promptLoop(ctrl, cmd.InOrStdin(), out)
		}

		ctrl.SetQueryText(strings.Join(args, " "))
		state, ok := runOnce(ctrl)
		if !ok {
			return apperrors.New(apperrors.EmptyQuery, "nothing to search for")
		}
		if err := printState(out, state); err != nil {
			return err
		}
		return exitStatus(state)
	},
}

// exitStatus fails the command unless the search settled successfully. The
// outcome has already been printed.
func exitStatus(s sentiment.State) error {
	if !s.Settled() || s.Status == sentiment.StatusFailure {
		return errReported
	}
	return nil
}

// newController wires a query controller to the configured client. Flags win over configuration.
func newController(cmd *cobra.Command, timeout time.Duration, cancelSuperseded bool) (*controller.Controller, error) {
	d, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("timeout") {
		d = timeout
	}
	cancel := cfg.CancelSuperseded
	if cmd.Flags().Changed("cancel-superseded") {
		cancel = cancelSuperseded
	}
	return controller.New(newClient(),
		controller.WithContext(cmd.Context()),
		controller.WithLogger(logger),
		controller.WithRequestTimeout(d),
		controller.WithCancelSuperseded(cancel),
	), nil
}

// runOnce submits the stored query and waits for it to settle.
func runOnce(ctrl *controller.Controller) (sentiment.State, bool) {
	if _, ok := ctrl.Submit(); !ok {
		return ctrl.Snapshot(), false
	}
	spinWhile(view.StatusLine(ctrl.Snapshot()), searchJSON, ctrl.Wait)
	return ctrl.Snapshot(), true
}

func promptLoop(ctrl *controller.Controller, in io.Reader, out io.Writer) error {
	const prompt = "Search: "
	interactive := terminal.IsInteractive()
	scanner := bufio.NewScanner(in)
	for {
		if interactive {
			pterm.Print(pterm.NewStyle(pterm.FgLightCyan, pterm.Bold).Sprint(prompt))
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := scanner.Text()
		if interactive {
			terminal.ClearPreviousLines(len(prompt) + len(line))
		}

		ctrl.SetQueryText(line)
		state, ok := runOnce(ctrl)
		if !ok {
			continue
		}
		if err := printState(out, state); err != nil {
			return err
		}
		if !searchJSON {
			fmt.Fprintln(out)
		}
	}
}

// searchOutput is the --json document.
type searchOutput struct {
	sentiment.State
	Chart chart.Input `json:"chart"`
}

func printState(out io.Writer, s sentiment.State) error {
	if searchJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(searchOutput{State: s, Chart: chart.FromState(s)})
	}
	return view.NewRenderer(out, chartWidth()).Render(s)
}

func chartWidth() int {
	return max(terminal.Width()-20, 20)
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Print the result state as JSON")
	searchCmd.Flags().DurationVar(&searchTimeout, "timeout", 0, "Bound each request, e.g. 30s (0 waits indefinitely)")
	searchCmd.Flags().BoolVar(&searchCancelSuperseded, "cancel-superseded", false, "Abort a running request when a newer query is submitted")
	rootCmd.AddCommand(searchCmd)
}
