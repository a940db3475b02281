package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Error codes carried in the response envelope. Clients branch on the code,
// not the message.
const (
	codeMissingHeader  = "MISSING_OR_INVALID_HEADER"
	codeTokenInvalid   = "TOKEN_INVALID_OR_EXPIRED"
	codeBadCredentials = "INVALID_CREDENTIALS"
	codeDisabled       = "ACCOUNT_DISABLED"
	codeForbidden      = "FORBIDDEN"
	codeUnauthed       = "UNAUTHENTICATED"
	codeValidation     = "VALIDATION_ERROR"
	codeConflict       = "CONFLICT"
	codeNotFound       = "NOT_FOUND"
	codeRateLimited    = "RATE_LIMITED"
	codeInternal       = "INTERNAL_ERROR"
)

// envelope is the wire shape of every response. Data and Error are always
// present so clients can test them against null without key checks.
type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data"`
	Error   *errorBody `json:"error"`
	Meta    meta       `json:"meta"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type meta struct {
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeOK(w http.ResponseWriter, r *http.Request, status int, data any) {
	writeJSON(w, status, envelope{
		Success: true,
		Data:    data,
		Meta:    meta{Timestamp: time.Now().UTC(), RequestID: requestIDFrom(r)},
	})
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, status, envelope{
		Success: false,
		Error:   &errorBody{Code: code, Message: message},
		Meta:    meta{Timestamp: time.Now().UTC(), RequestID: requestIDFrom(r)},
	})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, r, http.StatusMethodNotAllowed, codeValidation, "method not allowed")
}

// decodeJSON reads one JSON object from the body and rejects trailing input
// and unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("request body exceeds %d bytes", maxErr.Limit)
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	_, _ = io.Copy(io.Discard, r.Body)
	return nil
}
