// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/danielhkuo/meo-custom/models"
)

// RequestIDHeader carries the caller's correlation id.
const RequestIDHeader = "X-Request-Id"

// RequestID returns the caller's request id, or a fresh one when absent.
func RequestID(r *http.Request) string {
	if id := r.Header.Get(RequestIDHeader); id != "" {
		return id
	}
	return uuid.NewString()
}

// APIResponse writes the business envelope. Business outcomes always travel
// with HTTP 200; code carries the result.
func APIResponse(w http.ResponseWriter, r *http.Request, code int, message string, data any) {
	id := RequestID(r)
	w.Header().Set(RequestIDHeader, id)
	JSONResponse(w, http.StatusOK, models.Response[any]{
		Code:      code,
		Message:   message,
		Data:      data,
		RequestID: id,
	})
}

// Success writes a code 0 envelope.
func Success(w http.ResponseWriter, r *http.Request, data any) {
	APIResponse(w, r, models.SuccessCode, "success", data)
}
