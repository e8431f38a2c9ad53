package errs

import (
	"encoding/json"
	"errors"
	"strings"
)

// apiErrorBody is the error shape the banking API uses. Every field is
// optional.
type apiErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ServerMessage extracts the human readable `error` field from a JSON body,
// falling back to `message`. It returns "" for empty or non-JSON bodies.
func ServerMessage(body []byte) string {
	if len(strings.TrimSpace(string(body))) == 0 {
		return ""
	}
	var b apiErrorBody
	if err := json.Unmarshal(body, &b); err != nil {
		return ""
	}
	if msg := strings.TrimSpace(b.Error); msg != "" {
		return msg
	}
	return strings.TrimSpace(b.Message)
}

// FromAPIResponse converts a non-2xx banking API response into an
// ExternalServiceError, keeping the server message when one is present.
func FromAPIResponse(service string, status int, body []byte) error {
	return NewStatusError(service, status, ServerMessage(body))
}

// Display normalizes any error into the single string a page shows inline.
// Server messages win, then client-side validation messages, then the
// page-specific fallback.
func Display(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var ext *ExternalServiceError
	if errors.As(err, &ext) && ext.ServerMessage != "" {
		return ext.ServerMessage
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return fallback
}

// IsRejected reports whether err is a success=false answer rather than a
// transport or HTTP failure.
func IsRejected(err error) bool {
	var ext *ExternalServiceError
	return errors.As(err, &ext) && ext.Rejected
}
