package web

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/helmcode/logtriage/pkg/model"
	"github.com/helmcode/logtriage/pkg/triage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAnalyzer struct {
	res      *model.AnalyzeResponse
	err      error
	gotText  string
	gotFile  string
	gotBytes string
}

func (s *stubAnalyzer) AnalyzeText(ctx context.Context, req model.AnalyzeRequest) (*model.AnalyzeResponse, error) {
	s.gotText = req.LogContent
	return s.res, s.err
}

func (s *stubAnalyzer) AnalyzeFile(ctx context.Context, file *model.FileHandle) (*model.AnalyzeResponse, error) {
	s.gotFile = file.Name
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	s.gotBytes = string(data)
	return s.res, s.err
}

func init() {
	gin.SetMode(gin.TestMode)
}

func postForm(t *testing.T, r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func TestIndex(t *testing.T) {
	r := NewRouter(&stubAnalyzer{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `maxlength="20000"`)
	assert.Contains(t, body, `accept=".log,.txt"`)
	assert.NotContains(t, body, `id="findings"`)
}

func TestAnalyzeTextRendersResult(t *testing.T) {
	used := false
	stub := &stubAnalyzer{res: &model.AnalyzeResponse{
		Severity:           model.SeverityHigh,
		PossibleRootCause:  "Postgres is down",
		TopErrorSignatures: []model.ErrorSignature{},
		TicketTitle:        "DB outage",
		TicketBody:         "Service cannot reach Postgres.",
		AIUsed:             &used,
	}}
	r := NewRouter(stub)

	w := postForm(t, r, "/analyze/text", url.Values{"logContent": {"ERROR connection refused"}})
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	assert.Equal(t, "ERROR connection refused", stub.gotText)
	assert.Contains(t, body, `class="badge badge-high"`)
	assert.Contains(t, body, "Postgres is down")
	assert.Contains(t, body, `<tbody></tbody>`)
	assert.NotContains(t, body, `id="grep"`)
	assert.Contains(t, body, `id="ticket"`)
	assert.Contains(t, body, `data-copy="DB outage

Service cannot reach Postgres."`)
	assert.Contains(t, body, "<div>false</div>")
}

func TestAnalyzeTextBlankIsNoop(t *testing.T) {
	stub := &stubAnalyzer{}
	r := NewRouter(stub)

	w := postForm(t, r, "/analyze/text", url.Values{"logContent": {"   "}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, stub.gotText)
	assert.NotContains(t, w.Body.String(), "alert error")
}

func TestAnalyzeTextTruncates(t *testing.T) {
	stub := &stubAnalyzer{res: &model.AnalyzeResponse{}}
	r := NewRouter(stub)

	postForm(t, r, "/analyze/text", url.Values{"logContent": {strings.Repeat("x", model.MaxLogChars+10)}})
	assert.Len(t, stub.gotText, model.MaxLogChars)
}

func TestAnalyzeTextRendersError(t *testing.T) {
	r := NewRouter(&stubAnalyzer{err: &triage.APIError{Status: 404, Message: "not found"}})

	w := postForm(t, r, "/analyze/text", url.Values{"logContent": {"x"}})
	body := w.Body.String()
	assert.Contains(t, body, "<b>Error:</b> HTTP 404 - not found")
	assert.NotContains(t, body, `id="findings"`)
}

func TestAnalyzeFileUpload(t *testing.T) {
	stub := &stubAnalyzer{res: &model.AnalyzeResponse{
		Severity:             model.SeverityMed,
		SuggestedGrepQueries: []string{"grep -n OOM app.log"},
	}}
	r := NewRouter(stub)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "app.log")
	require.NoError(t, err)
	_, _ = part.Write([]byte("java.lang.OutOfMemoryError"))
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/analyze/file", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "app.log", stub.gotFile)
	assert.Equal(t, "java.lang.OutOfMemoryError", stub.gotBytes)
	body := w.Body.String()
	assert.Contains(t, body, `class="badge badge-med"`)
	assert.Contains(t, body, `id="grep"`)
	assert.NotContains(t, body, `id="ticket"`)
}

func TestAnalyzeFileWithoutFileIsNoop(t *testing.T) {
	stub := &stubAnalyzer{}
	r := NewRouter(stub)

	w := postForm(t, r, "/analyze/file", url.Values{})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, stub.gotFile)
}

func TestPing(t *testing.T) {
	r := NewRouter(&stubAnalyzer{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}
