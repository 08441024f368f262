package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// errInvalidBody is returned by ParseJSON for any unusable request body.
// The one message covers missing/wrong Content-Type and malformed JSON so
// the response doesn't leak decoder internals.
var errInvalidBody = errors.New("Request body must be valid JSON with Content-Type: application/json")

// errorResponse is the standard error envelope: a stable machine-readable
// code plus a human-readable message.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code and data.
// Sets Content-Type to application/json before writing the status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data) // Write error intentionally ignored in response helper
}

// WriteError writes the standard error envelope with the given status code,
// error code, and message.
func WriteError(w http.ResponseWriter, status int, errorCode, message string) {
	WriteJSON(w, status, errorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// WriteValidationError writes the 400 envelope every endpoint uses for
// request validation failures.
func WriteValidationError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, "validation_error", message)
}

// ParseJSON decodes the request body as JSON into v, rejecting unknown
// fields. It returns errInvalidBody when the Content-Type header is not
// application/json or the body does not decode.
func ParseJSON(r *http.Request, v any) error {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(ct, "application/json") {
		return errInvalidBody
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errInvalidBody
	}

	return nil
}
