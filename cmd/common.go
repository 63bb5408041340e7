package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/helmcode/logtriage/pkg/clipboard"
	"github.com/helmcode/logtriage/pkg/controller"
	"github.com/helmcode/logtriage/pkg/formatter"
	"github.com/helmcode/logtriage/pkg/model"
	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// copyTarget values accepted by --copy.
const (
	copyNone   = ""
	copyTicket = "ticket"
	copyGrep   = "grep"
)

func addCopyFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(target, "copy", copyNone, "Copy part of the report to the clipboard (ticket, grep)")
}

func validateCopy(target string) error {
	switch target {
	case copyNone, copyTicket, copyGrep:
		return nil
	default:
		return fmt.Errorf("unsupported copy target: %s (supported: ticket, grep)", target)
	}
}

// newController builds a controller on the configured service and the
// system clipboard.
func newController(s settings) *controller.Controller {
	return controller.New(newTriageClient(s), clipboard.New())
}

// runAnalysis drives one analysis with a spinner, then renders the outcome.
func runAnalysis(ctx context.Context, cmd *cobra.Command, ctrl *controller.Controller, s settings, copyTo string,
	analyze func(context.Context) error) error {
	stderr := cmd.ErrOrStderr()
	human := s.Output == "human"

	sp := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(stderr))
	sp.Suffix = " Analyzing log..."
	if human {
		sp.Start()
	}
	err := analyze(ctx)
	sp.Stop()

	if errors.Is(err, controller.ErrDisabled) {
		return fmt.Errorf("nothing to analyze")
	}
	if err != nil {
		return err
	}

	if msg := ctrl.Error(); msg != "" {
		if human {
			formatter.DisplayError(stderr, msg)
		}
		return fmt.Errorf("analysis failed: %s", msg)
	}

	if human {
		printSuccess(stderr, "Analysis complete")
	}
	if err := formatter.DisplayResults(cmd.OutOrStdout(), ctrl.Result(), s.Output); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	copyReport(stderr, ctrl, copyTo)
	return nil
}

// copyReport is best-effort: a failed copy is reported but never fails the command.
func copyReport(w io.Writer, ctrl *controller.Controller, target string) {
	var err error
	switch target {
	case copyNone:
		return
	case copyTicket:
		err = ctrl.CopyTicket()
	case copyGrep:
		err = ctrl.CopyGrep()
	}

	switch {
	case errors.Is(err, controller.ErrDisabled):
		printError(w, fmt.Sprintf("Nothing to copy: the report has no %s section", target))
	case err != nil:
		log.WithError(err).Warn("copy to clipboard failed")
		printError(w, fmt.Sprintf("Could not copy %s: %v", target, err))
	default:
		printSuccess(w, fmt.Sprintf("Copied %s to clipboard", target))
	}
}

// setLogText loads text into the controller and warns when it was cut.
func setLogText(w io.Writer, ctrl *controller.Controller, text string) {
	ctrl.SetLogText(text)
	if n := len([]rune(text)); n > model.MaxLogChars {
		log.WithFields(log.Fields{"chars": n, "max": model.MaxLogChars}).Debug("log text truncated")
		printWarning(w, fmt.Sprintf("Log truncated to the first %d of %d characters", model.MaxLogChars, n))
	}
}

func printHeader(w io.Writer, source string, s settings) {
	cyan := color.New(color.FgCyan, color.Bold)
	fmt.Fprintln(w)
	cyan.Fprintln(w, "🔍 Log Triage")
	fmt.Fprintf(w, "📝 Source: %s\n", source)
	fmt.Fprintf(w, "📍 Service: %s\n", strings.TrimRight(s.APIURL, "/"))
	fmt.Fprintln(w)
}

func printSuccess(w io.Writer, msg string) {
	green := color.New(color.FgGreen)
	green.Fprintf(w, "✓ %s\n", msg)
}

func printWarning(w io.Writer, msg string) {
	yellow := color.New(color.FgYellow)
	yellow.Fprintf(w, "! %s\n", msg)
}

func printError(w io.Writer, msg string) {
	red := color.New(color.FgRed)
	red.Fprintf(w, "✗ %s\n", msg)
}

// interactive reports whether r is a terminal nobody is piping into.
func interactive(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
