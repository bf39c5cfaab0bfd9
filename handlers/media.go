// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/danielhkuo/meo-custom/auth"
	"github.com/danielhkuo/meo-custom/middleware"
)

// Media handles GET /media/{name}?sig=
func (h *CustomInfoHandler) Media(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		middleware.ErrorResponse(w, http.StatusNotFound, "Media not found")
		return
	}

	if err := auth.ValidateMediaSignature(name, r.URL.Query().Get("sig"), h.cfg.MediaSigningSalt); err != nil {
		middleware.ErrorResponse(w, http.StatusForbidden, "Invalid media signature")
		return
	}

	var contentType string
	err := h.db.QueryRow(`
		SELECT content_type FROM media WHERE stored_name = $1
	`, name).Scan(&contentType)
	if errors.Is(err, sql.ErrNoRows) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Media not found")
		return
	}
	if err != nil {
		slog.Error("failed to query media", "error", err, "stored_name", name)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	f, err := os.Open(filepath.Join(h.cfg.MediaDir, name))
	if err != nil {
		slog.Error("media row without file", "error", err, "stored_name", name)
		middleware.ErrorResponse(w, http.StatusNotFound, "Media not found")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=86400")
	http.ServeContent(w, r, name, time.Time{}, f)
}
