// Copyright (c) 2025 Sentiscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"sentiscope/cli/internal/httperrors"
)

// PresentError formats an error for user display with masking.
func PresentError(context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Mask(err.Error())
	}
	return fmt.Sprintf("%s: %s", context, Mask(err.Error()))
}

// FormatRequestError explains a failed request to the analysis service,
// with hints chosen by the classified cause and masked technical details.
func FormatRequestError(host string, err error) string {
	var b strings.Builder

	b.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint("Request Failed"))
	b.WriteString("\n\n")

	switch httperrors.Classify(err) {
	case httperrors.CauseConnectionRefused:
		fmt.Fprintf(&b, "Nothing is listening at %s.\n", host)
		b.WriteString("  • Start the analysis service, or run 'sentiscope serve' for a local stub\n")
		b.WriteString("  • Check --server or SENTISCOPE_SERVER_URL\n")
	case httperrors.CauseDNS:
		fmt.Fprintf(&b, "The host %s could not be resolved.\n", host)
		b.WriteString("  • Check the server URL for typos\n")
	case httperrors.CauseTimeout:
		b.WriteString("The analysis service did not answer in time.\n")
		b.WriteString("  • Raise --timeout or SENTISCOPE_REQUEST_TIMEOUT\n")
	case httperrors.CauseTLS:
		b.WriteString("The TLS handshake with the analysis service failed.\n")
	case httperrors.CauseServerError:
		b.WriteString("The analysis service reported an internal error.\n")
	case httperrors.CauseClientError:
		b.WriteString("The analysis service rejected the request.\n")
	case httperrors.CauseMalformed:
		b.WriteString("The analysis service sent a response that could not be read.\n")
	case httperrors.CauseCanceled:
		b.WriteString("The request was cancelled.\n")
	default:
		b.WriteString("The request could not be completed.\n")
	}

	b.WriteString("\n")
	b.WriteString(pterm.NewStyle(pterm.FgGray).Sprint("Technical details: " + PresentError("", err)))
	return b.String()
}

// PresentRequestError writes FormatRequestError to w surrounded by blank lines.
func PresentRequestError(w io.Writer, host string, err error) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, FormatRequestError(host, err))
	fmt.Fprintln(w)
}
