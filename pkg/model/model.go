package model

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MaxLogChars is the client-side cap on pasted log text, in characters.
const MaxLogChars = 20000

type Severity string

const (
	SeverityLow  Severity = "LOW"
	SeverityMed  Severity = "MED"
	SeverityHigh Severity = "HIGH"
)

type AnalyzeRequest struct {
	LogContent string `json:"logContent"`
}

type AnalyzeResponse struct {
	Severity             Severity         `json:"severity" yaml:"severity"`
	DetectedIssues       []string         `json:"detectedIssues" yaml:"detectedIssues"`
	PossibleRootCause    string           `json:"possibleRootCause" yaml:"possibleRootCause"`
	NextSteps            []string         `json:"nextSteps" yaml:"nextSteps"`
	TopErrorSignatures   []ErrorSignature `json:"topErrorSignatures" yaml:"topErrorSignatures"`
	DetectedIDs          []string         `json:"detectedIds,omitempty" yaml:"detectedIds,omitempty"`
	TicketTitle          string           `json:"ticketTitle,omitempty" yaml:"ticketTitle,omitempty"`
	TicketBody           string           `json:"ticketBody,omitempty" yaml:"ticketBody,omitempty"`
	SuggestedGrepQueries []string         `json:"suggestedGrepQueries,omitempty" yaml:"suggestedGrepQueries,omitempty"`
	AIUsed               *bool            `json:"aiUsed,omitempty" yaml:"aiUsed,omitempty"`
	AIProvider           string           `json:"aiProvider,omitempty" yaml:"aiProvider,omitempty"`
	AIError              *string          `json:"aiError" yaml:"aiError"`
	AILatencyMs          *int64           `json:"aiLatencyMs" yaml:"aiLatencyMs"`
}

type ErrorSignature struct {
	ExceptionType string `json:"exceptionType" yaml:"exceptionType"`
	Message       string `json:"message" yaml:"message"`
	Count         int    `json:"count" yaml:"count"`
}

// FileHandle is a log file selected for upload. Open is called once per
// upload, so the same handle can be analyzed again.
type FileHandle struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

// AcceptedExtensions lists the extensions offered by the file picker.
var AcceptedExtensions = []string{".log", ".txt"}

// HasAcceptedExtension reports whether name ends in one of AcceptedExtensions.
// The check is advisory and is never enforced before an upload.
func (f *FileHandle) HasAcceptedExtension() bool {
	ext := strings.ToLower(filepath.Ext(f.Name))
	for _, e := range AcceptedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// FileFromPath builds a handle for a file on disk.
func FileFromPath(path string) (*FileHandle, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return &FileHandle{
		Name: filepath.Base(path),
		Size: info.Size(),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}, nil
}

// FileFromBytes builds a handle over an in-memory payload.
func FileFromBytes(name string, data []byte) *FileHandle {
	return &FileHandle{
		Name: name,
		Size: int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}
