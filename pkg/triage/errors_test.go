package triage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractErr(t *testing.T) {
	assert.Equal(t, "HTTP 404 - not found", ExtractErr(&APIError{Status: 404, Message: "not found"}))
	assert.Equal(t, "Network Error", ExtractErr(errors.New("Network Error")))
	assert.Equal(t, "Unknown error", ExtractErr(nil))
	assert.Equal(t, "Unknown error", ExtractErr(errors.New("")))
	assert.Equal(t, "HTTP 503 - Unknown error", ExtractErr(&APIError{Status: 503}))
	assert.Equal(t, "boom", ExtractErr(&APIError{Message: "boom"}))
}

func TestExtractErrUnwrapsAPIError(t *testing.T) {
	err := fmt.Errorf("analyze: %w", &APIError{Status: 413, Message: "Uploaded file is too large. Please upload a smaller log file."})
	assert.Equal(t, "HTTP 413 - Uploaded file is too large. Please upload a smaller log file.", ExtractErr(err))
}

func TestNewAPIErrorPrecedence(t *testing.T) {
	assert.Equal(t, "m", newAPIError(400, []byte(`{"message":"m","error":"e"}`)).Message)
	assert.Equal(t, "e", newAPIError(400, []byte(`{"message":"","error":"e"}`)).Message)
	assert.Equal(t, "Request failed with status code 418", newAPIError(418, []byte(`{}`)).Message)
}
