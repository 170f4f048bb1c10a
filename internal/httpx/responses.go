package httpx

import (
	"encoding/json"
	"net/http"
)

// Error codes carried in the error envelope.
const (
	CodeBadRequest    = "BAD_REQUEST"
	CodeValidation    = "VALIDATION_ERROR"
	CodeNotFound      = "NOT_FOUND"
	CodeAlreadyExists = "ALREADY_EXISTS"
	CodeRateLimited   = "RATE_LIMIT_EXCEEDED"
	CodeTooLarge      = "PAYLOAD_TOO_LARGE"
	CodeInternal      = "INTERNAL_ERROR"
)

type ErrorResponse struct {
	Success bool              `json:"success"`
	Error   ErrorResponseBody `json:"error"`
	Meta    map[string]any    `json:"meta,omitempty"`
}

type ErrorResponseBody struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// JSON writes v as the response body. Resources are returned bare, without
// an envelope.
func JSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

func JSONCreated(w http.ResponseWriter, v any) {
	JSON(w, http.StatusCreated, v)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func JSONError(w http.ResponseWriter, r *http.Request, statusCode int, code string, message string, details []ErrorDetail) {
	var meta map[string]any
	if requestID := RequestIDFrom(r); requestID != "" {
		meta = map[string]any{"request_id": requestID}
	}
	JSON(w, statusCode, ErrorResponse{
		Success: false,
		Error: ErrorResponseBody{
			Code:    code,
			Message: message,
			Details: details,
		},
		Meta: meta,
	})
}

// NotFound is a JSON replacement for http.NotFound.
func NotFound(w http.ResponseWriter, r *http.Request) {
	JSONError(w, r, http.StatusNotFound, CodeNotFound, "The requested resource could not be found", nil)
}
