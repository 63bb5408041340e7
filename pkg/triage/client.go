// Package triage talks to the remote log analysis service.
package triage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/helmcode/logtriage/pkg/model"
	log "github.com/sirupsen/logrus"
	"gopkg.in/resty.v1"
)

const (
	AnalyzeTextPath = "/api/logs/analyze"
	AnalyzeFilePath = "/api/logs/analyze/file"

	// DefaultBaseURL is where the analysis service listens in a local setup.
	DefaultBaseURL = "http://localhost:8080"
)

type Config struct {
	BaseURL string
	// Timeout of zero keeps the platform default.
	Timeout time.Duration
	// HTTPClient overrides the transport, mostly for tests.
	HTTPClient *http.Client
}

type Client struct {
	baseURL string
	client  *resty.Client
}

func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	client := resty.NewWithClient(hc)
	client.SetHostURL(baseURL)
	client.SetHeader("Accept", "application/json")
	client.SetLogger(log.StandardLogger().WriterLevel(log.DebugLevel))
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &Client{baseURL: baseURL, client: client}
}

// BaseURL returns the service root the client posts to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// AnalyzeText posts pasted log content as JSON.
func (c *Client) AnalyzeText(ctx context.Context, req model.AnalyzeRequest) (*model.AnalyzeResponse, error) {
	log.WithFields(log.Fields{"path": AnalyzeTextPath, "chars": len([]rune(req.LogContent))}).Debug("analyze text")

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(AnalyzeTextPath)
	if err != nil {
		return nil, err
	}
	return decodeResponse(resp)
}

// AnalyzeFile uploads a log file as a multipart form with a single "file" part.
func (c *Client) AnalyzeFile(ctx context.Context, file *model.FileHandle) (*model.AnalyzeResponse, error) {
	if file == nil || file.Open == nil {
		return nil, fmt.Errorf("no file selected")
	}
	log.WithFields(log.Fields{"path": AnalyzeFilePath, "file": file.Name, "size": file.Size}).Debug("analyze file")

	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", file.Name, err)
	}
	defer rc.Close()

	resp, err := c.client.R().
		SetContext(ctx).
		SetFileReader("file", file.Name, rc).
		Post(AnalyzeFilePath)
	if err != nil {
		return nil, err
	}
	return decodeResponse(resp)
}

func decodeResponse(resp *resty.Response) (*model.AnalyzeResponse, error) {
	status := resp.StatusCode()
	log.WithFields(log.Fields{"status": status, "bytes": len(resp.Body())}).Debug("analysis service replied")

	if status < 200 || status > 299 {
		apiErr := newAPIError(status, resp.Body())
		apiErr.RetryAfter = resp.Header().Get("Retry-After")
		if apiErr.RetryAfter != "" {
			log.WithField("retry_after", apiErr.RetryAfter).Warn("analysis service is rate limiting requests")
		}
		return nil, apiErr
	}

	var out model.AnalyzeResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &out, nil
}
