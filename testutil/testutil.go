// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"

	"github.com/danielhkuo/meo-custom/audio"
	"github.com/danielhkuo/meo-custom/auth"
	"github.com/danielhkuo/meo-custom/cliparse"
	"github.com/danielhkuo/meo-custom/db"
	"github.com/danielhkuo/meo-custom/validation"
)

// TestOrderNo is a valid order number used across handler tests.
const TestOrderNo = "MEO20250001"

// TestPersonality satisfies the personality length rule.
const TestPersonality = "活泼开朗，喜欢唱歌，说话温柔又有耐心"

// SetupTestDB opens a fresh file-backed SQLite database with the full schema.
// It is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration with media stored in a
// per-test directory.
func GetTestConfig(t *testing.T) cliparse.Config {
	t.Helper()

	limits := validation.DefaultLimits()
	return cliparse.Config{
		Port:             3318,
		DatabaseURL:      "test.db",
		DatabaseType:     "sqlite",
		MediaDir:         t.TempDir(),
		PublicURL:        "http://media.test",
		MediaSigningSalt: "test-signing-salt",
		IPHashSalt:       "test-ip-salt",
		UploadsPerMinute: 1000,
		LimitsConfig: cliparse.LimitsConfig{
			ImageMaxBytes:  limits.ImageMaxBytes,
			AudioMaxBytes:  limits.AudioMaxBytes,
			ImageTypes:     limits.ImageTypes,
			AudioTypes:     limits.AudioTypes,
			OrderNoMin:     limits.OrderNoMin,
			OrderNoMax:     limits.OrderNoMax,
			PersonalityMin: limits.PersonalityMin,
			PersonalityMax: limits.PersonalityMax,
		},
	}
}

// CreateTestMedia records a media row (without a file on disk) and returns
// its signed URL.
func CreateTestMedia(t *testing.T, conn *sql.DB, cfg cliparse.Config, orderNo, kind string, success bool) string {
	t.Helper()

	id, _ := auth.GenerateID(16)
	storedName := id + ".bin"
	url := auth.MediaURL(cfg.BaseURL(), storedName, cfg.MediaSigningSalt)

	_, err := conn.Exec(`
		INSERT INTO media (id, order_no, kind, file_name, stored_name, content_type, size_bytes, url, upload_success)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, id, orderNo, kind, "test.bin", storedName, "application/octet-stream", 1, url, success)
	if err != nil {
		t.Fatalf("Failed to create test media: %v", err)
	}

	return url
}

// PNG renders a solid w x h PNG image.
func PNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 180, B: 160, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	return buf.Bytes()
}

// VoiceWAV renders a mono 16 kHz WAV of a steady tone at amp (0..1).
func VoiceWAV(t *testing.T, seconds float64, amp float64) []byte {
	t.Helper()

	f := audio.VoiceFormat
	data, err := audio.WAV(f, audio.Tone(f, 220, amp, int(seconds*float64(f.SampleRate))))
	if err != nil {
		t.Fatalf("Failed to encode WAV: %v", err)
	}
	return data
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeMultipartRequest creates a POST request carrying data as the "file" part.
func MakeMultipartRequest(t *testing.T, path, fileName, contentType string, data []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatalf("Failed to create multipart part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("Failed to write multipart part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertCode decodes a business envelope and checks its code.
func AssertCode[T any](t *testing.T, w *httptest.ResponseRecorder, expected int) T {
	t.Helper()
	AssertStatus(t, w, http.StatusOK)

	var env struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Data    T      `json:"data"`
	}
	AssertJSON(t, w, &env)
	if env.Code != expected {
		t.Errorf("Expected code %d, got %d (%s)", expected, env.Code, env.Message)
	}
	return env.Data
}
