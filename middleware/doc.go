// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions for the
reference intake API.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote, request_id) and completion
(status, duration_ms).

# Envelope

Business results always travel as HTTP 200 inside {code, message, data,
requestId}:

	middleware.Success(w, r, result)
	middleware.APIResponse(w, r, models.CodeFileTooLarge, "file too large", nil)

The request id is taken from X-Request-Id or generated.

Malformed requests still use plain HTTP errors:

	middleware.ErrorResponse(w, http.StatusBadRequest, "missing file part")

# Rate Limiting

	rl := middleware.NewRateLimiter(cfg.UploadsPerMinute)
	mux.HandleFunc("POST /custom-info/upload-photo", rl.Limit(handler))

Keyed by GetClientIP; over-limit requests get 429.

# Metrics

	m := middleware.NewMetrics()
	mux.HandleFunc("POST /custom-info/save", m.Instrument("POST /custom-info/save", h))
	mux.Handle("GET /metrics", m.Handler())

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows GET, POST, PUT, DELETE, OPTIONS with Content-Type, Authorization and
X-Request-Id.
*/
package middleware
