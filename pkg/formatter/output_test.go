package formatter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/helmcode/logtriage/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func init() {
	color.NoColor = true
}

func sampleResult() *model.AnalyzeResponse {
	used := true
	latency := int64(812)
	return &model.AnalyzeResponse{
		Severity:           model.SeverityHigh,
		DetectedIssues:     []string{"Connection refused"},
		PossibleRootCause:  "Postgres is down",
		NextSteps:          []string{"Check the database pod"},
		TopErrorSignatures: []model.ErrorSignature{{ExceptionType: "java.net.ConnectException", Message: "Connection refused", Count: 42}},
		TicketTitle:        "DB outage",
		TicketBody:         "Service cannot reach Postgres.",
		AIUsed:             &used,
		AIProvider:         "huggingface",
		AILatencyMs:        &latency,
	}
}

func TestDisplayHuman(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DisplayResults(&buf, sampleResult(), "human"))
	out := buf.String()

	assert.Contains(t, out, "SEVERITY: HIGH")
	assert.Contains(t, out, "Possible root cause: Postgres is down")
	assert.Contains(t, out, "java.net.ConnectException")
	assert.Contains(t, out, "1. Check the database pod")
	assert.Contains(t, out, "Title: DB outage")
	assert.Contains(t, out, "aiUsed: true  aiProvider: huggingface  aiLatencyMs: 812  aiError: -")
	assert.NotContains(t, out, "SUGGESTED GREP QUERIES")
	assert.NotContains(t, out, "Detected IDs")
}

func TestDisplayHumanEmptySignatureTable(t *testing.T) {
	var buf bytes.Buffer
	r := sampleResult()
	r.TopErrorSignatures = []model.ErrorSignature{}
	require.NoError(t, DisplayResults(&buf, r, ""))

	lines := strings.Split(buf.String(), "\n")
	header := -1
	for i, l := range lines {
		if strings.Contains(l, "EXCEPTION") {
			header = i
			break
		}
	}
	require.NotEqual(t, -1, header)
	require.Greater(t, len(lines), header+1)
	assert.Equal(t, "", lines[header+1])
}

func TestDisplayJSONAndYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DisplayResults(&buf, sampleResult(), "json"))

	var back model.AnalyzeResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, "Postgres is down", back.PossibleRootCause)

	buf.Reset()
	require.NoError(t, DisplayResults(&buf, sampleResult(), "yaml"))
	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "HIGH", doc["severity"])
}

func TestDisplayError(t *testing.T) {
	var buf bytes.Buffer
	DisplayError(&buf, "HTTP 404 - not found")
	assert.Equal(t, "Error: HTTP 404 - not found\n", buf.String())
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, "  aaa bbb\n  ccc", wrapText("aaa bbb ccc", 10, "  "))
	assert.Equal(t, "  averyveryverylongword", wrapText("averyveryverylongword", 10, "  "))
}
