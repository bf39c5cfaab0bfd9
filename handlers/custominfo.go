// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/meo-custom/middleware"
	"github.com/danielhkuo/meo-custom/models"
	"github.com/danielhkuo/meo-custom/validation"
)

var errUnknownMaterial = errors.New("unknown material")

// Save handles POST /custom-info/save
func (h *CustomInfoHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req models.CustomInfo
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	info := normalize(req)

	if failures := h.limits.CheckIntake(info.Intake()); len(failures) > 0 {
		msgs := make([]string, len(failures))
		for i, f := range failures {
			msgs[i] = f.String()
		}
		middleware.APIResponse(w, r, models.CodeInvalidIntake, strings.Join(msgs, "; "), failures)
		return
	}

	// Materials must be confirmed uploads of this order.
	if err := h.checkMaterial(info.OrderNo, models.KindAudio, info.AudioURL); err != nil {
		h.materialError(w, r, validation.FieldAudio, err)
		return
	}
	if info.AvatarURL != "" {
		if err := h.checkMaterial(info.OrderNo, models.KindPhoto, info.AvatarURL); err != nil {
			h.materialError(w, r, validation.FieldAvatar, err)
			return
		}
	}

	_, err := h.db.Exec(`
		INSERT INTO custom_info (order_no, user_name, phone, address, personality_desc, audio_url, avatar_url, original_photo_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (order_no) DO UPDATE SET
			user_name = excluded.user_name,
			phone = excluded.phone,
			address = excluded.address,
			personality_desc = excluded.personality_desc,
			audio_url = excluded.audio_url,
			avatar_url = excluded.avatar_url,
			original_photo_url = excluded.original_photo_url,
			updated_at = CURRENT_TIMESTAMP
	`, info.OrderNo, info.UserName, info.Phone, info.Address, info.PersonalityDesc,
		info.AudioURL, info.AvatarURL, info.OriginalPhotoURL)
	if err != nil {
		slog.Error("failed to save intake", "error", err, "order_no", info.OrderNo)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save intake")
		return
	}

	slog.Info("intake saved", "order_no", info.OrderNo, "has_avatar", info.AvatarURL != "")
	middleware.Success(w, r, true)
}

// Get handles GET /custom-info/{orderNo}
func (h *CustomInfoHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderNo := strings.TrimSpace(r.PathValue("orderNo"))
	if orderNo == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Order number required")
		return
	}

	var info models.CustomInfo
	var userName, phone, address, avatarURL, originalPhotoURL sql.NullString
	err := h.db.QueryRow(`
		SELECT order_no, user_name, phone, address, personality_desc, audio_url, avatar_url, original_photo_url
		FROM custom_info
		WHERE order_no = $1
	`, orderNo).Scan(&info.OrderNo, &userName, &phone, &address, &info.PersonalityDesc,
		&info.AudioURL, &avatarURL, &originalPhotoURL)

	if errors.Is(err, sql.ErrNoRows) {
		middleware.APIResponse(w, r, models.CodeNotFound, "intake not found", nil)
		return
	}
	if err != nil {
		slog.Error("failed to query intake", "error", err, "order_no", orderNo)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	info.UserName = userName.String
	info.Phone = phone.String
	info.Address = address.String
	info.AvatarURL = avatarURL.String
	info.OriginalPhotoURL = originalPhotoURL.String

	middleware.Success(w, r, info)
}

func (h *CustomInfoHandler) checkMaterial(orderNo, kind, url string) error {
	var ok bool
	err := h.db.QueryRow(`
		SELECT upload_success FROM media
		WHERE url = $1 AND order_no = $2 AND kind = $3
	`, url, orderNo, kind).Scan(&ok)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !ok) {
		return errUnknownMaterial
	}
	return err
}

func (h *CustomInfoHandler) materialError(w http.ResponseWriter, r *http.Request, field string, err error) {
	if errors.Is(err, errUnknownMaterial) {
		slog.Warn("intake references unknown material", "field", field)
		middleware.APIResponse(w, r, models.CodeUnknownMaterial,
			field+": material was not uploaded for this order", nil)
		return
	}
	slog.Error("failed to look up material", "error", err, "field", field)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
}

func normalize(c models.CustomInfo) models.CustomInfo {
	c.OrderNo = strings.TrimSpace(c.OrderNo)
	c.UserName = strings.TrimSpace(c.UserName)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Address = strings.TrimSpace(c.Address)
	c.PersonalityDesc = strings.TrimSpace(c.PersonalityDesc)
	c.AudioURL = strings.TrimSpace(c.AudioURL)
	c.AvatarURL = strings.TrimSpace(c.AvatarURL)
	return c
}
