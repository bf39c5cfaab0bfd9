// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package detect

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"time"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp"

	"github.com/danielhkuo/meo-custom/audio"
	"github.com/danielhkuo/meo-custom/validation"
)

var ErrUnsupportedType = errors.New("unsupported file type")

// Failure reasons reported back to uploaders
const (
	ReasonUnreadablePhoto = "photo could not be read"
	ReasonPhotoTooSmall   = "photo resolution too low"
	ReasonPhotoAspect     = "photo is not a head close-up"
	ReasonUnreadableAudio = "recording could not be read"
	ReasonAudioTooShort   = "recording too short"
	ReasonNoVoice         = "no voice detected"
	ReasonNoise           = "noise too high"
)

// Config holds detection thresholds.
type Config struct {
	MinPhotoEdge     int
	MaxAspectRatio   float64
	MinAudioDuration time.Duration
	SilenceRMS       float64
	MaxClippedRatio  float64
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		MinPhotoEdge:     256,
		MaxAspectRatio:   2,
		MinAudioDuration: 3 * time.Second,
		SilenceRMS:       0.01,
		MaxClippedRatio:  0.05,
	}
}

// Result is the outcome of a detection pass.
type Result struct {
	OK     bool
	Reason string
}

func pass() Result { return Result{OK: true} }

func fail(reason string) Result { return Result{Reason: reason} }

// Sniff detects the content type from the bytes themselves and checks it
// against allowed. The declared part type is never trusted.
func Sniff(data []byte, allowed []string) (string, error) {
	mt := mimetype.Detect(data)
	for m := mt; m != nil; m = m.Parent() {
		if validation.FileTypeValid(m.String(), allowed) {
			return validation.CanonicalType(m.String()), nil
		}
		for _, a := range allowed {
			if m.Is(a) {
				return validation.CanonicalType(a), nil
			}
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mt.String())
}

// Photo checks that data decodes as an image large enough and close enough
// to a portrait crop to be usable.
func Photo(cfg Config, data []byte) Result {
	ic, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fail(ReasonUnreadablePhoto)
	}

	short, long := ic.Width, ic.Height
	if short > long {
		short, long = long, short
	}
	if short < cfg.MinPhotoEdge {
		return fail(ReasonPhotoTooSmall)
	}
	if cfg.MaxAspectRatio > 0 && float64(long) > cfg.MaxAspectRatio*float64(short) {
		return fail(ReasonPhotoAspect)
	}
	return pass()
}

// Audio checks a recording of the given canonical type. Only WAV is
// inspected; other containers pass once sniffed.
func Audio(cfg Config, data []byte, contentType string) Result {
	if contentType != "audio/wav" {
		return pass()
	}

	f, pcm, err := audio.DecodeWAV(data)
	if err != nil {
		return fail(ReasonUnreadableAudio)
	}
	if f.Duration(len(pcm)) < cfg.MinAudioDuration {
		return fail(ReasonAudioTooShort)
	}

	lv := audio.Analyze(f, pcm)
	if lv.RMS < cfg.SilenceRMS {
		return fail(ReasonNoVoice)
	}
	if lv.Clipped > cfg.MaxClippedRatio {
		return fail(ReasonNoise)
	}
	return pass()
}
