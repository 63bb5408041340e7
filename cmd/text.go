package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func NewTextCmd() *cobra.Command {
	var (
		fromPath string
		copyTo   string
	)

	cmd := &cobra.Command{
		Use:   "text [LOG...]",
		Short: "Analyze pasted log text",
		Long: `Send log text to the analysis service as JSON. Text longer than 20000
characters is cut to its first 20000 characters.

Examples:
  # Analyze a line passed as an argument
  logtriage text "ERROR java.net.ConnectException: Connection refused"

  # Pipe a log in
  tail -n 300 app.log | logtriage text

  # Read the text from a file and copy the ticket draft
  logtriage text --from app.log --copy ticket`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateCopy(copyTo); err != nil {
				return err
			}

			text, source, err := readLogText(cmd.InOrStdin(), args, fromPath)
			if err != nil {
				return err
			}

			s := loadSettings()
			ctrl := newController(s)
			stderr := cmd.ErrOrStderr()
			if s.Output == "human" {
				printHeader(stderr, source, s)
			}
			setLogText(stderr, ctrl, text)
			if !ctrl.CanAnalyzeText() {
				return fmt.Errorf("log text is empty")
			}

			return runAnalysis(cmd.Context(), cmd, ctrl, s, copyTo, ctrl.AnalyzeByText)
		},
	}

	cmd.Flags().StringVarP(&fromPath, "from", "f", "", "Read the log text from a file instead of arguments or stdin")
	addCopyFlag(cmd, &copyTo)

	return cmd
}

func readLogText(in io.Reader, args []string, fromPath string) (text, source string, err error) {
	switch {
	case fromPath != "" && len(args) > 0:
		return "", "", fmt.Errorf("pass log text either as arguments or with --from, not both")
	case fromPath != "":
		data, err := os.ReadFile(fromPath)
		if err != nil {
			return "", "", fmt.Errorf("failed to read %s: %w", fromPath, err)
		}
		return string(data), fromPath, nil
	case len(args) > 0:
		return strings.Join(args, " "), "arguments", nil
	case interactive(in):
		return "", "", fmt.Errorf("no log text: pass it as arguments, with --from, or on stdin")
	default:
		data, err := io.ReadAll(in)
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), "stdin", nil
	}
}
