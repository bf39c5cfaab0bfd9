// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package avatar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/danielhkuo/meo-custom/material"
	"github.com/danielhkuo/meo-custom/models"
	"github.com/danielhkuo/meo-custom/uploadclient"
	"github.com/danielhkuo/meo-custom/validation"
)

var (
	ErrBusy         = errors.New("avatar: upload in progress")
	ErrInvalidState = errors.New("avatar: action not allowed in current state")
	ErrClosed       = errors.New("avatar: dialog closed")
	ErrSuperseded   = errors.New("avatar: response arrived for a superseded submission")
)

// Requirements lists what a usable portrait looks like.
var Requirements = []string{
	"完整正面",
	"不佩戴饰品",
	"头部特写",
	"背景干净",
}

// State is the photo submission status.
type State int

const (
	Empty State = iota
	LocalPreview
	Uploading
	Confirmed
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case LocalPreview:
		return "local_preview"
	case Uploading:
		return "uploading"
	case Confirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// Uploader sends a photo for detection and avatar generation.
type Uploader interface {
	UploadPhoto(ctx context.Context, orderNo string, gender models.Gender, file models.File) uploadclient.Outcome[uploadclient.Media]
}

// Submission is a snapshot of the dialog.
type Submission struct {
	Status          State
	Preview         *models.File
	ConfirmedURL    string
	RejectionReason string
	Gender          models.Gender
	Saving          bool
}

// Options wires a dialog to the upload client and its parent.
type Options struct {
	Uploader Uploader
	Listener material.Listener
	Gender   models.Gender
	Limits   *validation.Limits
}

// Dialog is one avatar acquisition session.
type Dialog struct {
	orderNo  string
	uploader Uploader
	listener material.Listener
	limits   validation.Limits

	mu           sync.Mutex
	state        State
	gen          uint64
	closed       bool
	gender       models.Gender
	preview      *models.File
	confirmedURL string
	reason       string
}

// Open starts an acquisition session for orderNo.
func Open(orderNo string, opts Options) *Dialog {
	d := &Dialog{
		orderNo:  orderNo,
		uploader: opts.Uploader,
		listener: opts.Listener,
		limits:   validation.DefaultLimits(),
		gender:   opts.Gender,
	}
	if d.listener == nil {
		d.listener = material.Discard
	}
	if opts.Limits != nil {
		d.limits = *opts.Limits
	}
	if d.gender == "" {
		d.gender = models.GenderFemale
	}
	return d
}

// Submission returns a snapshot of the current state.
func (d *Dialog) Submission() Submission {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := Submission{
		Status:          d.state,
		ConfirmedURL:    d.confirmedURL,
		RejectionReason: d.reason,
		Gender:          d.gender,
		Saving:          d.state == Uploading,
	}
	if d.preview != nil {
		p := *d.preview
		s.Preview = &p
	}
	return s
}

// SetGender changes the style hint sent with the next upload.
func (d *Dialog) SetGender(g models.Gender) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	if d.state == Uploading {
		return ErrBusy
	}
	d.gender = g
	return nil
}

// Select shows file as the local preview and uploads it straight away.
// The call returns once the upload settles: nil when the server confirmed the
// photo, otherwise the rejection with the preview kept for Retry or Discard.
func (d *Dialog) Select(ctx context.Context, file models.File) error {
	if !d.limits.ImageValid(file.Size(), file.ContentType) {
		msg := fmt.Sprintf("unsupported photo: allowed types %s, at most %d MB",
			strings.Join(d.limits.ImageTypes, ", "), d.limits.ImageMaxBytes>>20)
		return models.NewError(models.KindValidation, "avatar.Select", msg, nil)
	}

	d.mu.Lock()
	if err := d.checkIdleLocked(); err != nil {
		d.mu.Unlock()
		return err
	}
	d.gen++
	d.preview = &file
	d.confirmedURL = ""
	d.reason = ""
	d.state = LocalPreview
	slog.Debug("avatar photo selected", "order_no", d.orderNo, "file", file.Name, "size", file.Size())
	return d.uploadLocked(ctx)
}

// Retry uploads the current preview again after a rejection.
func (d *Dialog) Retry(ctx context.Context) error {
	d.mu.Lock()
	if err := d.checkIdleLocked(); err != nil {
		d.mu.Unlock()
		return err
	}
	if d.state != LocalPreview {
		d.mu.Unlock()
		return fmt.Errorf("%w: retry from %s", ErrInvalidState, d.state)
	}
	return d.uploadLocked(ctx)
}

// uploadLocked moves LocalPreview to Uploading and settles the result. It is
// entered with d.mu held and returns with it released.
func (d *Dialog) uploadLocked(ctx context.Context) error {
	if d.uploader == nil {
		d.mu.Unlock()
		return models.NewError(models.KindTransport, "avatar.upload", "upload is not configured", nil)
	}
	d.state = Uploading
	d.reason = ""
	gen := d.gen
	file := *d.preview
	gender := d.gender
	d.mu.Unlock()

	out := d.uploader.UploadPhoto(ctx, d.orderNo, gender, file)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || d.gen != gen {
		slog.Debug("dropping stale photo upload response", "order_no", d.orderNo, "status", out.Status)
		return ErrSuperseded
	}

	if !out.OK() {
		d.state = LocalPreview
		d.reason = out.Reason
		slog.Warn("photo upload failed", "order_no", d.orderNo, "status", out.Status, "reason", out.Reason)
		return out.Err()
	}

	d.state = Confirmed
	d.confirmedURL = out.Value.URL
	slog.Info("photo upload confirmed", "order_no", d.orderNo, "url", out.Value.URL)
	return nil
}

// Discard clears the preview and confirmed URL and tells the parent no avatar
// is attached. It is valid in every state and repeatable. An upload still in
// flight is detached.
func (d *Dialog) Discard() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	d.gen++
	d.preview = nil
	d.confirmedURL = ""
	d.reason = ""
	d.state = Empty
	d.mu.Unlock()

	slog.Debug("avatar discarded", "order_no", d.orderNo)
	d.listener.OnMaterial(material.MaterialCleared(material.Avatar))
	return nil
}

// Confirm hands the confirmed URL and the local photo reference to the parent
// and closes the dialog.
func (d *Dialog) Confirm() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	if d.state != Confirmed || d.preview == nil || d.confirmedURL == "" {
		d.mu.Unlock()
		return fmt.Errorf("%w: confirm from %s", ErrInvalidState, d.state)
	}
	ev := material.MaterialConfirmed(material.Avatar, d.confirmedURL, d.preview.Name)
	d.closed = true
	d.gen++
	d.mu.Unlock()

	d.listener.OnMaterial(ev)
	return nil
}

// Close tears the session down without notifying the parent. Whatever the
// parent already holds stays attached. Close is idempotent.
func (d *Dialog) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	d.gen++
	d.preview = nil
	d.confirmedURL = ""
	d.reason = ""
	d.state = Empty
	return nil
}

func (d *Dialog) checkIdleLocked() error {
	if d.closed {
		return ErrClosed
	}
	if d.state == Uploading {
		return ErrBusy
	}
	return nil
}
