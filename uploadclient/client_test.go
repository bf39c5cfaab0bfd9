// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package uploadclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/meo-custom/models"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, Timeout: 2 * time.Second})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func wavFile() models.File {
	return models.File{Name: "ORDER001_1.wav", ContentType: "audio/wav", Data: []byte("RIFF....WAVE")}
}

func TestUploadAudio_Confirmed(t *testing.T) {
	var gotOrder, gotType, gotName, gotReqID string
	var gotBody []byte
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/custom-info/upload-audio", r.URL.Path)
		gotOrder = r.URL.Query().Get("orderNo")
		gotReqID = r.Header.Get("X-Request-Id")

		f, fh, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		gotBody, _ = io.ReadAll(f)
		gotType = fh.Header.Get("Content-Type")
		gotName = fh.Filename

		writeJSON(w, models.Response[models.UploadResult]{
			Code: 0, Message: "ok", RequestID: "srv-1",
			Data: models.UploadResult{UploadSuccess: true, URL: "https://cdn/voice.wav", FileName: "voice.wav", FileSize: 12},
		})
	})

	out := c.UploadAudio(context.Background(), "ORDER001", wavFile())

	require.True(t, out.OK(), "reason: %s", out.Reason)
	assert.Equal(t, "https://cdn/voice.wav", out.Value.URL)
	assert.Equal(t, "srv-1", out.RequestID)
	assert.Equal(t, "ORDER001", gotOrder)
	assert.Equal(t, "audio/wav", gotType)
	assert.Equal(t, "ORDER001_1.wav", gotName)
	assert.Equal(t, []byte("RIFF....WAVE"), gotBody)
	assert.NotEmpty(t, gotReqID)
	assert.NoError(t, out.Err())
}

func TestUploadAudio_DetectionFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"code":    0,
			"message": "ok",
			"data":    map[string]any{"uploadSuccess": false, "detectionFailureReason": "noise too high"},
		})
	})

	out := c.UploadAudio(context.Background(), "ORDER001", wavFile())

	assert.Equal(t, Rejected, out.Status)
	assert.Equal(t, "noise too high", out.Reason)
	assert.True(t, models.IsKind(out.Err(), models.KindBusinessRejected))
}

func TestUpload_Mapping(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus Status
		wantReason string
	}{
		{"non-2xx", http.StatusBadGateway, `{"code":0}`, TransportFailed, "server returned 502 Bad Gateway"},
		{"undecodable body", http.StatusOK, `<html>`, TransportFailed, ""},
		{"business code", http.StatusOK, `{"code":1001,"message":"invalid order number"}`, Rejected, "invalid order number"},
		{"business code no message", http.StatusOK, `{"code":1003}`, Rejected, "upload rejected"},
		{"upload failed without reason", http.StatusOK, `{"code":0,"message":"file rejected","data":{"uploadSuccess":false}}`, Rejected, "file rejected"},
		{"missing url", http.StatusOK, `{"code":0,"data":{"uploadSuccess":true}}`, Rejected, "server returned no file url"},
		{"null data", http.StatusOK, `{"code":0,"data":null}`, Rejected, "upload failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})

			out := c.UploadPhoto(context.Background(), "ORDER001", models.GenderMale, models.File{Name: "p.png", ContentType: "image/png", Data: []byte{1}})

			assert.Equal(t, tt.wantStatus, out.Status)
			if tt.wantReason != "" {
				assert.Equal(t, tt.wantReason, out.Reason)
			}
			assert.NotEmpty(t, out.Reason)
			assert.Error(t, out.Err())
		})
	}
}

func TestUploadPhoto_SendsGender(t *testing.T) {
	var genders []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/custom-info/upload-photo", r.URL.Path)
		genders = append(genders, r.URL.Query().Get("gender"))
		writeJSON(w, map[string]any{"code": 0, "data": map[string]any{"uploadSuccess": true, "url": "u"}})
	})

	file := models.File{Name: "p.png", ContentType: "image/png", Data: []byte{1}}
	c.UploadPhoto(context.Background(), "ORDER001", "", file)
	c.UploadPhoto(context.Background(), "ORDER001", models.GenderMale, file)

	assert.Equal(t, []string{"female", "male"}, genders)
}

func TestTransport_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	c := New(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	out := c.UploadAudio(context.Background(), "ORDER001", wavFile())

	assert.Equal(t, TransportFailed, out.Status)
	assert.Equal(t, "request timed out, please try again", out.Reason)
	assert.True(t, models.IsKind(out.Err(), models.KindTransport))
}

func TestTransport_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(Config{BaseURL: url})
	out := c.SaveIntake(context.Background(), models.FormDraft{OrderNumber: "ORDER001"})

	assert.Equal(t, TransportFailed, out.Status)
	assert.NotEmpty(t, out.Reason)
}

func TestSaveIntake(t *testing.T) {
	draft := models.FormDraft{
		OrderNumber:            " ORDER001 ",
		RecipientName:          "Lin",
		RecipientPhone:         "13800138000",
		PersonalityDescription: "cheerful and kind",
		ConfirmedAudioURL:      "https://cdn/a.wav",
		ConfirmedAvatarURL:     "https://cdn/b.png",
		OriginalPhotoURL:       "local.png",
	}

	tests := []struct {
		name       string
		body       string
		wantStatus Status
		wantReason string
	}{
		{"accepted", `{"code":0,"data":true,"requestId":"r"}`, Confirmed, ""},
		{"data false", `{"code":0,"data":false}`, Rejected, "save was not accepted"},
		{"business code", `{"code":1004,"message":"invalid intake","data":false}`, Rejected, "invalid intake"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got models.CustomInfo
			calls := 0
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				calls++
				assert.Equal(t, "/custom-info/save", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				io.WriteString(w, tt.body)
			})

			out := c.SaveIntake(context.Background(), draft)

			assert.Equal(t, tt.wantStatus, out.Status)
			assert.Equal(t, tt.wantReason, out.Reason)
			assert.Equal(t, 1, calls)
			assert.Equal(t, models.CustomInfo{
				OrderNo:          "ORDER001",
				UserName:         "Lin",
				Phone:            "13800138000",
				PersonalityDesc:  "cheerful and kind",
				AudioURL:         "https://cdn/a.wav",
				AvatarURL:        "https://cdn/b.png",
				OriginalPhotoURL: "local.png",
			}, got)
		})
	}
}

func TestGetIntake(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		if r.URL.Path != "/custom-info/ORDER001" {
			io.WriteString(w, `{"code":1404,"message":"intake not found","data":null}`)
			return
		}
		writeJSON(w, models.Response[models.CustomInfo]{Data: models.CustomInfo{OrderNo: "ORDER001", PersonalityDesc: "cheerful and kind"}})
	})

	out := c.GetIntake(context.Background(), "ORDER001")
	require.True(t, out.OK())
	assert.Equal(t, "ORDER001", out.Value.OrderNo)

	missing := c.GetIntake(context.Background(), "NOPE0001")
	assert.Equal(t, Rejected, missing.Status)
	assert.Equal(t, "intake not found", missing.Reason)
}

func TestNew_TrimsBaseURL(t *testing.T) {
	c := New(Config{BaseURL: "https://api.example.com/manage/"})
	assert.Equal(t, "https://api.example.com/manage", c.baseURL)
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
}
