package formatter

import (
	"strconv"
	"strings"

	"github.com/helmcode/logtriage/pkg/model"
)

type Tier string

const (
	TierLow  Tier = "low"
	TierMed  Tier = "med"
	TierHigh Tier = "high"
)

// BadgeTier maps a severity to its badge tier. Unknown or empty severities
// fall into the low tier.
func BadgeTier(sev model.Severity) Tier {
	switch sev {
	case model.SeverityHigh:
		return TierHigh
	case model.SeverityMed:
		return TierMed
	default:
		return TierLow
	}
}

// BadgeClass is the CSS class list for the severity badge.
func BadgeClass(sev model.Severity) string {
	return "badge badge-" + string(BadgeTier(sev))
}

// Visibility says which result panels are rendered for a response.
type Visibility struct {
	Findings    bool
	DetectedIDs bool
	Signatures  bool
	NextSteps   bool
	Grep        bool
	Ticket      bool
	TicketTitle bool
	TicketBody  bool
	TicketCopy  bool
	Telemetry   bool
}

func Panels(r *model.AnalyzeResponse) Visibility {
	if r == nil {
		return Visibility{}
	}
	return Visibility{
		Findings:    true,
		DetectedIDs: len(r.DetectedIDs) > 0,
		// An empty signature list still renders the table header.
		Signatures:  true,
		NextSteps:   true,
		Grep:        len(r.SuggestedGrepQueries) > 0,
		Ticket:      r.TicketTitle != "" || r.TicketBody != "",
		TicketTitle: r.TicketTitle != "",
		TicketBody:  r.TicketBody != "",
		TicketCopy:  r.TicketBody != "",
		Telemetry:   true,
	}
}

func GrepCopyText(r *model.AnalyzeResponse) string {
	return strings.Join(r.SuggestedGrepQueries, "\n")
}

func TicketCopyText(r *model.AnalyzeResponse) string {
	if r.TicketTitle != "" {
		return r.TicketTitle + "\n\n" + r.TicketBody
	}
	return r.TicketBody
}

const absent = "-"

// Telemetry holds the display values of the AI / telemetry block. Zero and
// false are real values and are shown as such.
type Telemetry struct {
	AIUsed      string
	AIProvider  string
	AILatencyMs string
	AIError     string
}

func TelemetryValues(r *model.AnalyzeResponse) Telemetry {
	t := Telemetry{AIUsed: absent, AIProvider: absent, AILatencyMs: absent, AIError: absent}
	if r.AIUsed != nil {
		t.AIUsed = strconv.FormatBool(*r.AIUsed)
	}
	if r.AIProvider != "" {
		t.AIProvider = r.AIProvider
	}
	if r.AILatencyMs != nil {
		t.AILatencyMs = strconv.FormatInt(*r.AILatencyMs, 10)
	}
	if r.AIError != nil {
		t.AIError = *r.AIError
	}
	return t
}
