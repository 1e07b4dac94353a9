package httpapi

import (
	"encoding/json"
	"net/http"
)

// ErrorCode is the machine-readable reason carried in every error envelope.
type ErrorCode string

const (
	// export
	CodePageTooLarge ErrorCode = "too_large"
	CodeBadBody      ErrorCode = "bad_body"
	CodeEmptyBody    ErrorCode = "empty_body"
	CodeParseFailed  ErrorCode = "parse_failed"

	// config
	CodeInvalidJSON  ErrorCode = "invalid_json"
	CodeSaveFailed   ErrorCode = "save_failed"
	CodeReloadFailed ErrorCode = "reload_failed"

	// transport
	CodeOriginForbidden   ErrorCode = "origin_forbidden"
	CodeMethodNotAllowed  ErrorCode = "method_not_allowed"
	CodeStreamUnsupported ErrorCode = "stream_unsupported"
	CodeInternal          ErrorCode = "internal_error"
)

var codeStatus = map[ErrorCode]int{
	CodePageTooLarge:      http.StatusRequestEntityTooLarge,
	CodeBadBody:           http.StatusBadRequest,
	CodeEmptyBody:         http.StatusBadRequest,
	CodeParseFailed:       http.StatusUnprocessableEntity,
	CodeInvalidJSON:       http.StatusBadRequest,
	CodeSaveFailed:        http.StatusInternalServerError,
	CodeReloadFailed:      http.StatusInternalServerError,
	CodeOriginForbidden:   http.StatusForbidden,
	CodeMethodNotAllowed:  http.StatusMethodNotAllowed,
	CodeStreamUnsupported: http.StatusInternalServerError,
	CodeInternal:          http.StatusInternalServerError,
}

// Status is the HTTP status a code is answered with. Unknown codes are 500.
func (c ErrorCode) Status() int {
	if s, ok := codeStatus[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

type APIError struct {
	Error struct {
		Code      ErrorCode `json:"code"`
		Message   string    `json:"message"`
		RequestID string    `json:"request_id,omitempty"`
	} `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError answers with the JSON envelope and the status that belongs to code.
func WriteError(w http.ResponseWriter, r *http.Request, code ErrorCode, message string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = RequestIDFrom(r.Context())
	WriteJSON(w, code.Status(), e)
}
