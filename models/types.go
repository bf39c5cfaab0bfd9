// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"strings"

	"github.com/danielhkuo/meo-custom/validation"
)

// SuccessCode marks business success in a response envelope.
const SuccessCode = 0

// Business failure codes returned inside the envelope
const (
	CodeInvalidOrderNo  = 1001
	CodeFileTooLarge    = 1002
	CodeUnsupportedType = 1003
	CodeInvalidIntake   = 1004
	CodeUnknownMaterial = 1005
	CodeNotFound        = 1404
)

// Media kinds
const (
	KindPhoto = "photo"
	KindAudio = "audio"
)

// Gender is the avatar style hint sent with a photo upload.
type Gender string

const (
	GenderFemale Gender = "female"
	GenderMale   Gender = "male"
)

// ParseGender maps free text onto a Gender, defaulting to female.
func ParseGender(s string) Gender {
	if strings.EqualFold(strings.TrimSpace(s), string(GenderMale)) {
		return GenderMale
	}
	return GenderFemale
}

// Wire types

// Response is the envelope every API call answers with.
type Response[T any] struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Data      T      `json:"data"`
	RequestID string `json:"requestId"`
}

// UploadResult is the data of an upload-photo or upload-audio response.
type UploadResult struct {
	OrderNo                string `json:"orderNo,omitempty"`
	UploadSuccess          bool   `json:"uploadSuccess"`
	URL                    string `json:"url,omitempty"`
	FileName               string `json:"fileName,omitempty"`
	FileSize               int64  `json:"fileSize,omitempty"`
	FileType               string `json:"fileType,omitempty"`
	DetectionFailureReason string `json:"detectionFailureReason,omitempty"`
}

// CustomInfo is the saved intake, as sent to /custom-info/save and returned by
// GET /custom-info/{orderNo}.
type CustomInfo struct {
	OrderNo          string `json:"orderNo"`
	UserName         string `json:"userName,omitempty"`
	Phone            string `json:"phone,omitempty"`
	Address          string `json:"address,omitempty"`
	PersonalityDesc  string `json:"personalityDesc"`
	AudioURL         string `json:"audioUrl"`
	AvatarURL        string `json:"avatarUrl,omitempty"`
	OriginalPhotoURL string `json:"originalPhotoUrl,omitempty"`
}

// Intake returns the fields the validation rules look at.
func (c CustomInfo) Intake() validation.Intake {
	return validation.Intake{
		OrderNo:     c.OrderNo,
		Phone:       c.Phone,
		Personality: c.PersonalityDesc,
		AudioURL:    c.AudioURL,
		AvatarURL:   c.AvatarURL,
	}
}

// Client-side types

// File is an in-memory payload ready for upload.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Size returns the payload length in bytes.
func (f File) Size() int64 { return int64(len(f.Data)) }

// FormDraft is the aggregate state of one intake being filled in.
// Optional fields are empty when absent. The URL fields only ever hold
// values a server confirmed.
type FormDraft struct {
	OrderNumber            string
	RecipientName          string
	RecipientPhone         string
	PersonalityDescription string
	ConfirmedAudioURL      string
	ConfirmedAvatarURL     string
	OriginalPhotoURL       string
}

// Intake returns the fields the validation rules look at.
func (d FormDraft) Intake() validation.Intake {
	return validation.Intake{
		OrderNo:     d.OrderNumber,
		Phone:       d.RecipientPhone,
		Personality: d.PersonalityDescription,
		AudioURL:    d.ConfirmedAudioURL,
		AvatarURL:   d.ConfirmedAvatarURL,
	}
}

// CustomInfo converts the draft into the save request body.
func (d FormDraft) CustomInfo() CustomInfo {
	return CustomInfo{
		OrderNo:          strings.TrimSpace(d.OrderNumber),
		UserName:         strings.TrimSpace(d.RecipientName),
		Phone:            strings.TrimSpace(d.RecipientPhone),
		PersonalityDesc:  strings.TrimSpace(d.PersonalityDescription),
		AudioURL:         d.ConfirmedAudioURL,
		AvatarURL:        d.ConfirmedAvatarURL,
		OriginalPhotoURL: d.OriginalPhotoURL,
	}
}

// DraftFromCustomInfo rebuilds a draft from a stored intake.
func DraftFromCustomInfo(c CustomInfo) FormDraft {
	return FormDraft{
		OrderNumber:            c.OrderNo,
		RecipientName:          c.UserName,
		RecipientPhone:         c.Phone,
		PersonalityDescription: c.PersonalityDesc,
		ConfirmedAudioURL:      c.AudioURL,
		ConfirmedAvatarURL:     c.AvatarURL,
		OriginalPhotoURL:       c.OriginalPhotoURL,
	}
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
