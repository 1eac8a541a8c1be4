// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"gonih.org/daydiff"
)

// Error codes of ErrorBody.
const (
	CodeInvalidDate       = "invalid_date"
	CodeInvalidDateFormat = "invalid_date_format"
	CodeBadRequest        = "bad_request"
	CodeTooLarge          = "request_too_large"
	CodeNotFound          = "not_found"
	CodeMethodNotAllowed  = "method_not_allowed"
	CodeInternal          = "internal"
)

// ErrorBody is the JSON body of every failed request.
type ErrorBody struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// StatusFor maps an error returned by a calculation to an HTTP status and
// an error code.
func StatusFor(err error) (status int, code string) {
	switch {
	case errors.Is(err, daydiff.ErrInvalidDateFormat):
		return http.StatusBadRequest, CodeInvalidDateFormat
	case errors.Is(err, daydiff.ErrInvalidDate):
		return http.StatusBadRequest, CodeInvalidDate
	}
	return http.StatusInternalServerError, CodeInternal
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

func fail(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, status, ErrorBody{Error: code, Message: message, RequestID: RequestIDFrom(r.Context())})
}
