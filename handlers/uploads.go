// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/danielhkuo/meo-custom/auth"
	"github.com/danielhkuo/meo-custom/cliparse"
	"github.com/danielhkuo/meo-custom/detect"
	"github.com/danielhkuo/meo-custom/middleware"
	"github.com/danielhkuo/meo-custom/models"
	"github.com/danielhkuo/meo-custom/validation"
)

// multipartSlack covers the multipart framing and the query around the file.
const multipartSlack = 1 << 20

// Upload outcomes, as counted in metrics.
const (
	outcomeAccepted = "accepted"
	outcomeDetected = "detection_failed"
	outcomeInvalid  = "invalid"
)

type CustomInfoHandler struct {
	db      *sql.DB
	cfg     cliparse.Config
	limits  validation.Limits
	detect  detect.Config
	metrics *middleware.Metrics
}

// NewCustomInfoHandler builds the intake API. metrics may be nil.
func NewCustomInfoHandler(db *sql.DB, cfg cliparse.Config, metrics *middleware.Metrics) *CustomInfoHandler {
	dc := detect.DefaultConfig()
	if cfg.MinPhotoEdge > 0 {
		dc.MinPhotoEdge = cfg.MinPhotoEdge
	}
	if cfg.MinAudioDuration > 0 {
		dc.MinAudioDuration = cfg.MinAudioDuration
	}
	return &CustomInfoHandler{
		db:      db,
		cfg:     cfg,
		limits:  cfg.Limits(),
		detect:  dc,
		metrics: metrics,
	}
}

// upload describes one material kind accepted by uploadMedia.
type upload struct {
	kind     string
	maxBytes int64
	types    []string
	check    func(data []byte, contentType string) detect.Result
}

// UploadPhoto handles POST /custom-info/upload-photo?orderNo=&gender=
func (h *CustomInfoHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	h.uploadMedia(w, r, upload{
		kind:     models.KindPhoto,
		maxBytes: h.limits.ImageMaxBytes,
		types:    h.limits.ImageTypes,
		check: func(data []byte, _ string) detect.Result {
			return detect.Photo(h.detect, data)
		},
	})
}

// UploadAudio handles POST /custom-info/upload-audio?orderNo=
func (h *CustomInfoHandler) UploadAudio(w http.ResponseWriter, r *http.Request) {
	h.uploadMedia(w, r, upload{
		kind:     models.KindAudio,
		maxBytes: h.limits.AudioMaxBytes,
		types:    h.limits.AudioTypes,
		check: func(data []byte, contentType string) detect.Result {
			return detect.Audio(h.detect, data, contentType)
		},
	})
}

func (h *CustomInfoHandler) uploadMedia(w http.ResponseWriter, r *http.Request, u upload) {
	r.Body = http.MaxBytesReader(w, r.Body, u.maxBytes+multipartSlack)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			h.metrics.RecordUpload(u.kind, outcomeInvalid)
			middleware.APIResponse(w, r, models.CodeFileTooLarge, tooLargeMessage(u.maxBytes), nil)
			return
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, "Expected multipart/form-data body")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "file part is required")
		return
	}
	defer file.Close()

	orderNo := strings.TrimSpace(r.FormValue("orderNo"))
	if !h.limits.OrderNumberValid(orderNo) {
		h.metrics.RecordUpload(u.kind, outcomeInvalid)
		middleware.APIResponse(w, r, models.CodeInvalidOrderNo,
			fmt.Sprintf("order number must be %d-%d characters", h.limits.OrderNoMin, h.limits.OrderNoMax), nil)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, u.maxBytes+1))
	if err != nil {
		slog.Error("failed to read upload", "error", err, "order_no", orderNo)
		middleware.ErrorResponse(w, http.StatusBadRequest, "Failed to read file part")
		return
	}
	if !validation.FileSizeValid(int64(len(data)), u.maxBytes) {
		h.metrics.RecordUpload(u.kind, outcomeInvalid)
		middleware.APIResponse(w, r, models.CodeFileTooLarge, tooLargeMessage(u.maxBytes), nil)
		return
	}

	contentType, err := detect.Sniff(data, u.types)
	if err != nil {
		slog.Warn("rejected upload type", "kind", u.kind, "order_no", orderNo, "error", err)
		h.metrics.RecordUpload(u.kind, outcomeInvalid)
		middleware.APIResponse(w, r, models.CodeUnsupportedType,
			"unsupported file type, allowed: "+strings.Join(u.types, ", "), nil)
		return
	}

	result := u.check(data, contentType)

	id, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate media ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store file")
		return
	}
	storedName := id + mimetype.Detect(data).Extension()
	if err := os.WriteFile(filepath.Join(h.cfg.MediaDir, storedName), data, 0o644); err != nil {
		slog.Error("failed to write media", "error", err, "stored_name", storedName)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	url := auth.MediaURL(h.cfg.BaseURL(), storedName, h.cfg.MediaSigningSalt)
	fileName := header.Filename
	if fileName == "" {
		fileName = storedName
	}

	var gender any
	if u.kind == models.KindPhoto {
		gender = string(models.ParseGender(r.FormValue("gender")))
	}
	var reason any
	if !result.OK {
		reason = result.Reason
	}

	_, err = h.db.Exec(`
		INSERT INTO media (id, order_no, kind, file_name, stored_name, content_type, size_bytes, url, upload_success, failure_reason, gender, ip_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, id, orderNo, u.kind, fileName, storedName, contentType, len(data), url, result.OK, reason, gender,
		auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt))
	if err != nil {
		slog.Error("failed to insert media", "error", err)
		os.Remove(filepath.Join(h.cfg.MediaDir, storedName))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	res := models.UploadResult{
		OrderNo:       orderNo,
		UploadSuccess: result.OK,
		FileName:      fileName,
		FileSize:      int64(len(data)),
		FileType:      contentType,
	}
	if !result.OK {
		slog.Info("upload failed detection", "kind", u.kind, "order_no", orderNo, "reason", result.Reason)
		h.metrics.RecordUpload(u.kind, outcomeDetected)
		res.DetectionFailureReason = result.Reason
		middleware.Success(w, r, res)
		return
	}

	slog.Info("media uploaded", "kind", u.kind, "order_no", orderNo, "media_id", id, "size", len(data))
	h.metrics.RecordUpload(u.kind, outcomeAccepted)
	res.URL = url
	middleware.Success(w, r, res)
}

func tooLargeMessage(maxBytes int64) string {
	return fmt.Sprintf("file too large, at most %d MB", maxBytes>>20)
}
