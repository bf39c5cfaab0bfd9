// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/meo-custom/cliparse"
	"github.com/danielhkuo/meo-custom/handlers"
	"github.com/danielhkuo/meo-custom/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	metrics := middleware.NewMetrics()
	limiter := middleware.NewRateLimiter(cfg.UploadsPerMinute)

	// Initialize handlers
	customInfo := handlers.NewCustomInfoHandler(db, cfg, metrics)

	route := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, metrics.Instrument(pattern, middleware.WithLogging(h)))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", metrics.Handler())

	// Material uploads (rate limited per client IP)
	route("POST /custom-info/upload-photo", limiter.Limit(customInfo.UploadPhoto))
	route("POST /custom-info/upload-audio", limiter.Limit(customInfo.UploadAudio))

	// Intake
	route("POST /custom-info/save", customInfo.Save)
	route("GET /custom-info/{orderNo}", customInfo.Get)

	// Signed media
	route("GET /media/{name}", customInfo.Media)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("meo-custom API v1"))
	})

	return mux
}
