// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	ErrInvalidSignature = errors.New("invalid media signature")
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// SignMedia creates an HMAC signature for a stored media file name.
// This is deterministic and verifiable
func SignMedia(name, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte("media:"))
	h.Write([]byte(name))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner query strings
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateMediaSignature checks if sig was issued for name
func ValidateMediaSignature(name, sig, salt string) error {
	if sig == "" {
		return ErrInvalidSignature
	}
	expected := SignMedia(name, salt)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return ErrInvalidSignature
	}
	return nil
}

// MediaURL builds the signed public URL of a stored media file
func MediaURL(baseURL, name, salt string) string {
	q := url.Values{"sig": {SignMedia(name, salt)}}
	return strings.TrimRight(baseURL, "/") + "/media/" + url.PathEscape(name) + "?" + q.Encode()
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}
