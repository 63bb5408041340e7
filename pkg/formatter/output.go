package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/helmcode/logtriage/pkg/model"
	"gopkg.in/yaml.v3"
)

// DisplayResults formats and writes the triage report
func DisplayResults(w io.Writer, r *model.AnalyzeResponse, format string) error {
	switch format {
	case "json":
		return displayJSON(w, r)
	case "yaml":
		return displayYAML(w, r)
	case "human":
		fallthrough
	default:
		displayHuman(w, r)
	}
	return nil
}

// DisplayError writes the single-line failure of an analysis
func DisplayError(w io.Writer, msg string) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprint(w, "Error: ")
	fmt.Fprintln(w, msg)
}

func displayJSON(w io.Writer, r *model.AnalyzeResponse) error {
	output, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(output))
	return nil
}

func displayYAML(w io.Writer, r *model.AnalyzeResponse) error {
	output, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	fmt.Fprint(w, string(output))
	return nil
}

func displayHuman(w io.Writer, r *model.AnalyzeResponse) {
	yellow := color.New(color.FgYellow, color.Bold)
	cyan := color.New(color.FgCyan, color.Bold)
	white := color.New(color.FgWhite, color.Bold)

	panels := Panels(r)
	fmt.Fprintln(w)

	if r.Severity != "" {
		getSeverityColor(r.Severity).Fprintf(w, "📊 SEVERITY: %s\n\n", r.Severity)
	}

	if panels.Findings {
		yellow.Fprintln(w, "💡 FINDINGS:")
		fmt.Fprintf(w, "   Possible root cause: %s\n", r.PossibleRootCause)
		fmt.Fprintln(w, "   Detected issues:")
		for _, issue := range r.DetectedIssues {
			fmt.Fprintf(w, "     • %s\n", issue)
		}
		if panels.DetectedIDs {
			fmt.Fprintf(w, "   Detected IDs: %s\n", color.CyanString(strings.Join(r.DetectedIDs, "  ")))
		}
		fmt.Fprintln(w)
	}

	if panels.Signatures {
		yellow.Fprintln(w, "⚠️  TOP ERROR SIGNATURES:")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "   EXCEPTION\tMESSAGE EXAMPLE\tCOUNT")
		for _, s := range r.TopErrorSignatures {
			fmt.Fprintf(tw, "   %s\t%s\t%d\n", s.ExceptionType, s.Message, s.Count)
		}
		tw.Flush()
		fmt.Fprintln(w)
	}

	if panels.NextSteps {
		cyan.Fprintln(w, "🚀 NEXT STEPS:")
		for i, step := range r.NextSteps {
			fmt.Fprintf(w, "   %d. %s\n", i+1, step)
		}
		fmt.Fprintln(w)
	}

	if panels.Grep {
		cyan.Fprintln(w, "🔍 SUGGESTED GREP QUERIES:")
		for _, q := range r.SuggestedGrepQueries {
			fmt.Fprintf(w, "   %s\n", color.CyanString(q))
		}
		fmt.Fprintln(w)
	}

	if panels.Ticket {
		white.Fprintln(w, "📄 TICKET SUMMARY:")
		if panels.TicketTitle {
			fmt.Fprintf(w, "   Title: %s\n", color.New(color.Bold).Sprint(r.TicketTitle))
		}
		if panels.TicketBody {
			fmt.Fprintln(w, "   Body:")
			fmt.Fprintln(w, wrapText(r.TicketBody, 80, "     "))
		}
		fmt.Fprintln(w)
	}

	if panels.Telemetry {
		t := TelemetryValues(r)
		white.Fprintln(w, "🤖 AI / TELEMETRY:")
		fmt.Fprintf(w, "   aiUsed: %s  aiProvider: %s  aiLatencyMs: %s  aiError: %s\n\n",
			t.AIUsed, t.AIProvider, t.AILatencyMs, t.AIError)
	}

	// Footer
	fmt.Fprintln(w, strings.Repeat("─", 80))
	fmt.Fprintf(w, "💡 %s\n", color.HiBlackString("Run with -o json or -o yaml for machine-readable output, --copy ticket|grep to copy"))
}

func getSeverityColor(sev model.Severity) *color.Color {
	switch BadgeTier(sev) {
	case TierHigh:
		return color.New(color.FgRed, color.Bold)
	case TierMed:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgGreen, color.Bold)
	}
}

func wrapText(text string, width int, indent string) string {
	var result strings.Builder
	lines := strings.Split(text, "\n")

	for _, line := range lines {
		words := strings.Fields(line)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}

		currentLine := indent
		for _, word := range words {
			if currentLine == indent {
				currentLine += word
			} else if len(currentLine)+len(word)+1 > width {
				result.WriteString(currentLine + "\n")
				currentLine = indent + word
			} else {
				currentLine += " " + word
			}
		}

		if currentLine != indent {
			result.WriteString(currentLine + "\n")
		}
	}

	return strings.TrimSuffix(result.String(), "\n")
}
