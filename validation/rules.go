// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validation

import (
	"fmt"
	"mime"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// Field names used in failures; they match the JSON keys of the save request.
const (
	FieldOrderNo     = "orderNo"
	FieldPhone       = "phone"
	FieldPersonality = "personalityDesc"
	FieldAudio       = "audioUrl"
	FieldAvatar      = "avatarUrl"
)

var phonePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)

// Limits are the configurable bounds behind every rule.
type Limits struct {
	OrderNoMin     int
	OrderNoMax     int
	PersonalityMin int
	PersonalityMax int

	ImageMaxBytes int64
	AudioMaxBytes int64
	ImageTypes    []string
	AudioTypes    []string

	// RequireAvatar makes a missing avatar a CheckIntake failure.
	RequireAvatar bool
}

// DefaultLimits returns the production bounds.
func DefaultLimits() Limits {
	return Limits{
		OrderNoMin:     6,
		OrderNoMax:     20,
		PersonalityMin: 10,
		PersonalityMax: 200,
		ImageMaxBytes:  5 * 1024 * 1024,
		AudioMaxBytes:  10 * 1024 * 1024,
		ImageTypes:     []string{"image/jpeg", "image/jpg", "image/png", "image/webp"},
		AudioTypes:     []string{"audio/mp3", "audio/wav", "audio/m4a"},
		RequireAvatar:  true,
	}
}

var defaults = DefaultLimits()

// OrderNumberValid reports whether the trimmed order number length is within bounds.
func OrderNumberValid(s string) bool { return defaults.OrderNumberValid(s) }

// PersonalityValid reports whether the trimmed description length is within bounds.
func PersonalityValid(s string) bool { return defaults.PersonalityValid(s) }

// PhoneValid reports whether s is an 11-digit mobile number starting with 1[3-9].
// The empty string is not valid; callers treat it as "not provided".
func PhoneValid(s string) bool {
	return phonePattern.MatchString(s)
}

// FileSizeValid reports whether a payload of size bytes is non-empty and within maxBytes.
func FileSizeValid(size, maxBytes int64) bool {
	return size > 0 && size <= maxBytes
}

// FileTypeValid reports whether contentType is one of allowed, after canonicalisation.
func FileTypeValid(contentType string, allowed []string) bool {
	ct := CanonicalType(contentType)
	if ct == "" {
		return false
	}
	return slices.ContainsFunc(allowed, func(a string) bool {
		return CanonicalType(a) == ct
	})
}

// typeAliases folds the spellings browsers and sniffers use onto one name.
var typeAliases = map[string]string{
	"image/jpg":      "image/jpeg",
	"image/pjpeg":    "image/jpeg",
	"audio/mpeg":     "audio/mp3",
	"audio/mpeg3":    "audio/mp3",
	"audio/x-mp3":    "audio/mp3",
	"audio/x-wav":    "audio/wav",
	"audio/wave":     "audio/wav",
	"audio/vnd.wave": "audio/wav",
	"audio/x-m4a":    "audio/m4a",
	"audio/mp4":      "audio/m4a",
	"audio/x-mp4":    "audio/m4a",
	"audio/aac-adts": "audio/m4a",
	"audio/m4a-latm": "audio/m4a",
}

// CanonicalType lowercases a MIME type, drops parameters and folds known aliases.
func CanonicalType(contentType string) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if ct == "" {
		return ""
	}
	if mediaType, _, err := mime.ParseMediaType(ct); err == nil {
		ct = mediaType
	}
	if alias, ok := typeAliases[ct]; ok {
		return alias
	}
	return ct
}

// OrderNumberValid reports whether the trimmed order number length is within l's bounds.
func (l Limits) OrderNumberValid(s string) bool {
	return lengthWithin(s, l.OrderNoMin, l.OrderNoMax)
}

// PersonalityValid reports whether the trimmed description length is within l's bounds.
func (l Limits) PersonalityValid(s string) bool {
	return lengthWithin(s, l.PersonalityMin, l.PersonalityMax)
}

// ImageValid checks an image payload against the image size and type limits.
func (l Limits) ImageValid(size int64, contentType string) bool {
	return FileSizeValid(size, l.ImageMaxBytes) && FileTypeValid(contentType, l.ImageTypes)
}

// AudioValid checks an audio payload against the audio size and type limits.
func (l Limits) AudioValid(size int64, contentType string) bool {
	return FileSizeValid(size, l.AudioMaxBytes) && FileTypeValid(contentType, l.AudioTypes)
}

func lengthWithin(s string, lo, hi int) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(s))
	return n >= lo && n <= hi
}

// Intake is the subset of an intake the rules look at.
type Intake struct {
	OrderNo     string
	Phone       string
	Personality string
	AudioURL    string
	AvatarURL   string
}

// Failure is one rule that did not hold.
type Failure struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (f Failure) String() string {
	return f.Field + ": " + f.Message
}

// CheckIntake runs every rule and returns all failures, in field order.
func (l Limits) CheckIntake(in Intake) []Failure {
	var failures []Failure

	if !l.OrderNumberValid(in.OrderNo) {
		failures = append(failures, Failure{
			Field:   FieldOrderNo,
			Message: fmt.Sprintf("order number must be %d-%d characters", l.OrderNoMin, l.OrderNoMax),
		})
	}
	if phone := strings.TrimSpace(in.Phone); phone != "" && !PhoneValid(phone) {
		failures = append(failures, Failure{
			Field:   FieldPhone,
			Message: "phone must be an 11-digit mobile number",
		})
	}
	if !l.PersonalityValid(in.Personality) {
		failures = append(failures, Failure{
			Field:   FieldPersonality,
			Message: fmt.Sprintf("personality description must be %d-%d characters", l.PersonalityMin, l.PersonalityMax),
		})
	}
	if strings.TrimSpace(in.AudioURL) == "" {
		failures = append(failures, Failure{
			Field:   FieldAudio,
			Message: "voice material is required",
		})
	}
	if l.RequireAvatar && strings.TrimSpace(in.AvatarURL) == "" {
		failures = append(failures, Failure{
			Field:   FieldAvatar,
			Message: "avatar material is required",
		})
	}

	return failures
}
