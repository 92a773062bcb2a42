// Package main is the entry point for the Sentiscope CLI application.
// It searches a remote sentiment-analysis service and charts the results.
package main

import (
	"sentiscope/cli/cmd"
)

// main is the entry point for the Sentiscope CLI application.
// It initializes and executes the command-line interface.
func main() {
	cmd.Execute()
}
