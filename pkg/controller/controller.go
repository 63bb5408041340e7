// Package controller holds the state behind the triage form: the pasted
// text, the selected file, the in-flight flag and the outcome of the last
// analysis.
package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/helmcode/logtriage/pkg/formatter"
	"github.com/helmcode/logtriage/pkg/model"
	"github.com/helmcode/logtriage/pkg/triage"
	log "github.com/sirupsen/logrus"
)

// ErrDisabled is returned by actions whose control would be disabled in the
// current state. The state is left untouched.
var ErrDisabled = errors.New("action not available")

// Analyzer is the remote analysis service.
type Analyzer interface {
	AnalyzeText(ctx context.Context, req model.AnalyzeRequest) (*model.AnalyzeResponse, error)
	AnalyzeFile(ctx context.Context, file *model.FileHandle) (*model.AnalyzeResponse, error)
}

// Clipboard receives copy actions.
type Clipboard interface {
	WriteAll(text string) error
}

type Controller struct {
	analyzer  Analyzer
	clipboard Clipboard

	mu         sync.Mutex
	logContent string
	file       *model.FileHandle
	loading    bool
	result     *model.AnalyzeResponse
	err        string
}

func New(analyzer Analyzer, clipboard Clipboard) *Controller {
	return &Controller{analyzer: analyzer, clipboard: clipboard}
}

// SetLogText replaces the pasted text, silently cutting it to model.MaxLogChars.
func (c *Controller) SetLogText(v string) {
	v = truncate(v, model.MaxLogChars)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.logContent = v
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}

// SelectFile replaces the selected file; nil clears it.
func (c *Controller) SelectFile(f *model.FileHandle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.file = f
}

func (c *Controller) ClearText() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading || c.logContent == "" {
		return ErrDisabled
	}
	c.logContent = ""
	return nil
}

func (c *Controller) RemoveFile() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading || c.file == nil {
		return ErrDisabled
	}
	c.file = nil
	return nil
}

func (c *Controller) CanAnalyzeText() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.loading && strings.TrimSpace(c.logContent) != ""
}

func (c *Controller) CanAnalyzeFile() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.loading && c.file != nil
}

func (c *Controller) CanClearText() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.loading && c.logContent != ""
}

func (c *Controller) CanRemoveFile() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.loading && c.file != nil
}

// AnalyzeByText sends the pasted text for analysis. It returns ErrDisabled
// when there is nothing to send or another analysis is running; any other
// outcome is recorded in Result or Error.
func (c *Controller) AnalyzeByText(ctx context.Context) error {
	c.mu.Lock()
	if c.loading || strings.TrimSpace(c.logContent) == "" {
		c.mu.Unlock()
		return ErrDisabled
	}
	req := model.AnalyzeRequest{LogContent: c.logContent}
	c.begin()
	c.mu.Unlock()

	return c.run(func() (*model.AnalyzeResponse, error) {
		return c.analyzer.AnalyzeText(ctx, req)
	})
}

// AnalyzeByFile uploads the selected file for analysis, with the same
// contract as AnalyzeByText.
func (c *Controller) AnalyzeByFile(ctx context.Context) error {
	c.mu.Lock()
	if c.loading || c.file == nil {
		c.mu.Unlock()
		return ErrDisabled
	}
	file := c.file
	c.begin()
	c.mu.Unlock()

	return c.run(func() (*model.AnalyzeResponse, error) {
		return c.analyzer.AnalyzeFile(ctx, file)
	})
}

// begin must be called with mu held.
func (c *Controller) begin() {
	c.loading = true
	c.result = nil
	c.err = ""
}

func (c *Controller) run(call func() (*model.AnalyzeResponse, error)) error {
	defer func() {
		c.mu.Lock()
		c.loading = false
		c.mu.Unlock()
	}()

	res, err := safeCall(call)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.err = triage.ExtractErr(err)
		log.WithError(err).Debug("analysis failed")
		return nil
	}
	if res == nil {
		c.err = triage.ExtractErr(nil)
		return nil
	}
	c.result = res
	return nil
}

// safeCall converts a panicking analyzer into an error so the outcome is
// still recorded.
func safeCall(call func() (*model.AnalyzeResponse, error)) (res *model.AnalyzeResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("analyzer panicked")
			res, err = nil, fmt.Errorf("analyzer panicked: %v", r)
		}
	}()
	return call()
}

// CopyToClipboard writes text to the clipboard. Failures are returned as-is
// and never touch the analysis outcome.
func (c *Controller) CopyToClipboard(text string) error {
	if c.clipboard == nil {
		return errors.New("clipboard not available")
	}
	return c.clipboard.WriteAll(text)
}

// CopyGrep copies the suggested grep queries, one per line.
func (c *Controller) CopyGrep() error {
	r := c.Result()
	if r == nil || !formatter.Panels(r).Grep {
		return ErrDisabled
	}
	return c.CopyToClipboard(formatter.GrepCopyText(r))
}

// CopyTicket copies the ticket draft as title, blank line, body.
func (c *Controller) CopyTicket() error {
	r := c.Result()
	if r == nil || !formatter.Panels(r).TicketCopy {
		return ErrDisabled
	}
	return c.CopyToClipboard(formatter.TicketCopyText(r))
}

func (c *Controller) LogContent() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.logContent
}

func (c *Controller) File() *model.FileHandle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.file
}

func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *Controller) Result() *model.AnalyzeResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

func (c *Controller) Error() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}
