// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package uploadclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/meo-custom/models"
)

const (
	DefaultTimeout = 10 * time.Second

	maxResponseBytes = 1 << 20
)

// Config holds client configuration.
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	SuccessCode int

	// HTTPClient overrides the default client. Its Timeout is replaced by
	// Config.Timeout when that is set.
	HTTPClient *http.Client
}

// Client talks to the custom-info API.
type Client struct {
	baseURL     string
	successCode int
	httpClient  *http.Client
}

// New creates a client.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	hc := &http.Client{}
	if cfg.HTTPClient != nil {
		copied := *cfg.HTTPClient
		hc = &copied
	}
	hc.Timeout = timeout

	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		successCode: cfg.SuccessCode,
		httpClient:  hc,
	}
}

// =============================================================================
// API Methods
// =============================================================================

// UploadPhoto uploads a portrait for avatar generation. The outcome is
// Confirmed only when the server accepted the file and its detection passed.
func (c *Client) UploadPhoto(ctx context.Context, orderNo string, gender models.Gender, file models.File) Outcome[Media] {
	if gender == "" {
		gender = models.GenderFemale
	}
	q := url.Values{"orderNo": {orderNo}, "gender": {string(gender)}}
	return c.upload(ctx, "/custom-info/upload-photo", q, file)
}

// UploadAudio uploads a voice sample.
func (c *Client) UploadAudio(ctx context.Context, orderNo string, file models.File) Outcome[Media] {
	q := url.Values{"orderNo": {orderNo}}
	return c.upload(ctx, "/custom-info/upload-audio", q, file)
}

// SaveIntake submits the full intake.
func (c *Client) SaveIntake(ctx context.Context, draft models.FormDraft) Outcome[struct{}] {
	body, err := json.Marshal(draft.CustomInfo())
	if err != nil {
		return transportFailed[struct{}](fmt.Sprintf("encode request: %v", err), "")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/custom-info/save", bytes.NewReader(body))
	if err != nil {
		return transportFailed[struct{}](fmt.Sprintf("create request: %v", err), "")
	}
	req.Header.Set("Content-Type", "application/json")

	env, failure := send[bool](c, req)
	if failure != "" {
		return transportFailed[struct{}](failure, req.Header.Get("X-Request-Id"))
	}
	if env.Code != c.successCode {
		return rejected[struct{}](messageOr(env.Message, "save rejected"), env.RequestID)
	}
	if !env.Data {
		return rejected[struct{}](messageOr(env.Message, "save was not accepted"), env.RequestID)
	}

	slog.Info("intake saved", "order_no", draft.OrderNumber, "request_id", env.RequestID)
	return confirmed(struct{}{}, env.RequestID)
}

// GetIntake fetches a stored intake.
func (c *Client) GetIntake(ctx context.Context, orderNo string) Outcome[models.CustomInfo] {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/custom-info/"+url.PathEscape(orderNo), nil)
	if err != nil {
		return transportFailed[models.CustomInfo](fmt.Sprintf("create request: %v", err), "")
	}

	env, failure := send[*models.CustomInfo](c, req)
	if failure != "" {
		return transportFailed[models.CustomInfo](failure, req.Header.Get("X-Request-Id"))
	}
	if env.Code != c.successCode {
		return rejected[models.CustomInfo](messageOr(env.Message, "intake not found"), env.RequestID)
	}
	if env.Data == nil {
		return rejected[models.CustomInfo]("intake not found", env.RequestID)
	}
	return confirmed(*env.Data, env.RequestID)
}

// =============================================================================
// Transport
// =============================================================================

func (c *Client) upload(ctx context.Context, path string, q url.Values, file models.File) Outcome[Media] {
	body, contentType, err := multipartBody(file)
	if err != nil {
		return transportFailed[Media](fmt.Sprintf("encode upload: %v", err), "")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path+"?"+q.Encode(), body)
	if err != nil {
		return transportFailed[Media](fmt.Sprintf("create request: %v", err), "")
	}
	req.Header.Set("Content-Type", contentType)

	env, failure := send[*models.UploadResult](c, req)
	if failure != "" {
		return transportFailed[Media](failure, req.Header.Get("X-Request-Id"))
	}
	if env.Code != c.successCode {
		slog.Warn("upload rejected", "path", path, "code", env.Code, "message", env.Message)
		return rejected[Media](messageOr(env.Message, "upload rejected"), env.RequestID)
	}

	res := env.Data
	if res == nil {
		return rejected[Media](messageOr(env.Message, "upload failed"), env.RequestID)
	}
	if !res.UploadSuccess {
		reason := res.DetectionFailureReason
		if reason == "" {
			reason = messageOr(env.Message, "upload failed")
		}
		slog.Warn("upload failed detection", "path", path, "order_no", q.Get("orderNo"), "reason", reason)
		return rejected[Media](reason, env.RequestID)
	}
	if res.URL == "" {
		return rejected[Media]("server returned no file url", env.RequestID)
	}

	slog.Info("upload confirmed", "path", path, "order_no", q.Get("orderNo"), "url", res.URL)
	return confirmed(Media{
		URL:      res.URL,
		FileName: res.FileName,
		FileSize: res.FileSize,
		FileType: res.FileType,
	}, env.RequestID)
}

// send performs req and decodes the envelope. A non-empty failure string
// means the call failed at the transport layer.
func send[T any](c *Client, req *http.Request) (env models.Response[T], failure string) {
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Warn("request failed", "method", req.Method, "path", req.URL.Path, "error", err)
		return env, describeTransportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return env, describeTransportError(err)
	}

	slog.Debug("request completed",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return env, fmt.Sprintf("server returned %s", resp.Status)
	}

	if err := json.Unmarshal(respBody, &env); err != nil {
		return env, fmt.Sprintf("unreadable server response: %v", err)
	}
	if env.RequestID == "" {
		env.RequestID = requestID
	}
	return env, ""
}

func multipartBody(file models.File) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Name))
	ct := file.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h.Set("Content-Type", ct)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func describeTransportError(err error) string {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return "request timed out, please try again"
	case errors.Is(err, context.Canceled):
		return "request cancelled"
	default:
		return "network error, please check your connection and try again"
	}
}

func messageOr(msg, fallback string) string {
	if strings.TrimSpace(msg) == "" {
		return fallback
	}
	return msg
}
