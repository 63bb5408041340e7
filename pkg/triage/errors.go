package triage

import (
	"encoding/json"
	"errors"
	"fmt"
)

const unknownError = "Unknown error"

// APIError is a non-2xx reply from the analysis service.
type APIError struct {
	Status     int
	Message    string
	RetryAfter string
}

func (e *APIError) Error() string {
	return ExtractErr(e)
}

// errorBody covers both the service's exception body and its rate limit body.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func newAPIError(status int, body []byte) *APIError {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)

	msg := eb.Message
	if msg == "" {
		msg = eb.Error
	}
	if msg == "" {
		msg = fmt.Sprintf("Request failed with status code %d", status)
	}
	return &APIError{Status: status, Message: msg}
}

// ExtractErr turns any failure from an analysis call into the single line
// shown to the user. Service messages win over transport messages, and a
// known HTTP status is prefixed as "HTTP <status> - <message>".
func ExtractErr(err error) string {
	if err == nil {
		return unknownError
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = unknownError
		}
		if apiErr.Status != 0 {
			return fmt.Sprintf("HTTP %d - %s", apiErr.Status, msg)
		}
		return msg
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return unknownError
}
