// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path"
	"testing"

	"github.com/danielhkuo/meo-custom/models"
	"github.com/danielhkuo/meo-custom/testutil"
)

func TestMedia(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)
	handler := NewCustomInfoHandler(db, cfg, nil)

	data := testutil.VoiceWAV(t, 4, 0.3)
	w := httptest.NewRecorder()
	handler.UploadAudio(w, testutil.MakeMultipartRequest(t,
		"/custom-info/upload-audio?orderNo="+testutil.TestOrderNo, "voice.wav", "audio/wav", data))
	res := testutil.AssertCode[models.UploadResult](t, w, models.SuccessCode)

	u, err := url.Parse(res.URL)
	if err != nil {
		t.Fatalf("Failed to parse media URL: %v", err)
	}
	name := path.Base(u.Path)
	sig := u.Query().Get("sig")

	tests := []struct {
		name           string
		file           string
		sig            string
		expectedStatus int
	}{
		{"signed fetch", name, sig, http.StatusOK},
		{"missing signature", name, "", http.StatusForbidden},
		{"tampered signature", name, sig + "x", http.StatusForbidden},
		{"signature for another file", "other.wav", sig, http.StatusForbidden},
		{"path traversal", "../secret", sig, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/media/x?sig="+url.QueryEscape(tt.sig), nil)
			req.SetPathValue("name", tt.file)
			w := httptest.NewRecorder()
			handler.Media(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}
			if ct := w.Header().Get("Content-Type"); ct != "audio/wav" {
				t.Errorf("Expected Content-Type 'audio/wav', got '%s'", ct)
			}
			if !bytes.Equal(w.Body.Bytes(), data) {
				t.Error("Expected served bytes to match the upload")
			}
		})
	}
}

func TestMedia_RowWithoutFile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)
	handler := NewCustomInfoHandler(db, cfg, nil)

	mediaURL := testutil.CreateTestMedia(t, db, cfg, testutil.TestOrderNo, models.KindAudio, true)
	u, _ := url.Parse(mediaURL)

	req := httptest.NewRequest("GET", u.RequestURI(), nil)
	req.SetPathValue("name", path.Base(u.Path))
	w := httptest.NewRecorder()
	handler.Media(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}
