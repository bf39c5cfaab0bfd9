// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/danielhkuo/meo-custom/audio"
	"github.com/danielhkuo/meo-custom/material"
	"github.com/danielhkuo/meo-custom/models"
	"github.com/danielhkuo/meo-custom/uploadclient"
)

var (
	ErrInvalidState = errors.New("voice: action not allowed in current state")
	ErrClosed       = errors.New("voice: dialog closed")
	ErrSuperseded   = errors.New("voice: response arrived for a superseded session")
	ErrNoPlayer     = errors.New("voice: no playback device")
	ErrBusy         = errors.New("voice: microphone acquisition in progress")
)

// State is the recording session status.
type State int

const (
	Idle State = iota
	Recording
	Recorded
	Uploading
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Recording:
		return "recording"
	case Recorded:
		return "recorded"
	case Uploading:
		return "uploading"
	default:
		return "unknown"
	}
}

// Stream is an open microphone delivering PCM in Format(). Close must
// unblock a pending Read.
type Stream interface {
	io.ReadCloser
	Format() audio.Format
}

// Microphone acquires input streams.
type Microphone interface {
	Open(ctx context.Context) (Stream, error)
}

// Player previews a local recording.
type Player interface {
	Play(wav []byte) error
	Pause() error
}

// Uploader sends a finished recording to the remote service.
type Uploader interface {
	UploadAudio(ctx context.Context, orderNo string, file models.File) uploadclient.Outcome[uploadclient.Media]
}

// Take is a finished local capture.
type Take struct {
	File     models.File
	Duration time.Duration
}

// Session is a snapshot of the dialog.
type Session struct {
	Status         State
	Local          *Take
	ElapsedSeconds int
	Playing        bool
	LastError      string
}

// Options wires a dialog to its devices and parent.
type Options struct {
	Microphone Microphone
	Player     Player
	Uploader   Uploader
	Listener   material.Listener

	// OnTick observes the elapsed counter. It runs on the ticker goroutine
	// and must not call Dialog methods other than Elapsed.
	OnTick func(elapsedSeconds int)

	Now          func() time.Time
	TickInterval time.Duration
}

type captureResult struct {
	pcm []byte
	err error
}

// Dialog is one voice capture session, created when the dialog opens and
// torn down by Close.
type Dialog struct {
	orderNo  string
	mic      Microphone
	player   Player
	uploader Uploader
	listener material.Listener
	onTick   func(int)
	now      func() time.Time
	interval time.Duration

	mu        sync.Mutex
	state     State
	gen       uint64
	closed    bool
	acquiring bool
	playing   bool
	recording *Take
	lastErr   string

	stream   Stream
	captured chan captureResult
	stopTick chan struct{}
	tickDone chan struct{}
	elapsed  atomic.Int64
}

// Open starts a capture session for orderNo.
func Open(orderNo string, opts Options) *Dialog {
	d := &Dialog{
		orderNo:  orderNo,
		mic:      opts.Microphone,
		player:   opts.Player,
		uploader: opts.Uploader,
		listener: opts.Listener,
		onTick:   opts.OnTick,
		now:      opts.Now,
		interval: opts.TickInterval,
	}
	if d.listener == nil {
		d.listener = material.Discard
	}
	if d.now == nil {
		d.now = time.Now
	}
	if d.interval <= 0 {
		d.interval = time.Second
	}
	slog.Debug("voice dialog opened", "order_no", orderNo)
	return d
}

// Session returns a snapshot of the current state.
func (d *Dialog) Session() Session {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := Session{
		Status:         d.state,
		ElapsedSeconds: int(d.elapsed.Load()),
		Playing:        d.playing,
		LastError:      d.lastErr,
	}
	if d.recording != nil {
		r := *d.recording
		s.Local = &r
	}
	return s
}

// Elapsed returns the recording counter in seconds.
func (d *Dialog) Elapsed() int { return int(d.elapsed.Load()) }

// Start acquires the microphone and begins recording. From Recorded it
// discards the current capture once the microphone is acquired. A device
// failure leaves the session unchanged.
func (d *Dialog) Start(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	if d.acquiring || (d.state != Idle && d.state != Recorded) {
		d.mu.Unlock()
		return fmt.Errorf("%w: start from %s", ErrInvalidState, d.state)
	}
	if d.mic == nil {
		d.mu.Unlock()
		return models.DeviceError("voice.Start", errors.New("no microphone"))
	}
	d.acquiring = true
	gen := d.gen
	d.mu.Unlock()

	stream, err := d.mic.Open(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.acquiring = false

	if err != nil {
		d.lastErr = "microphone unavailable or permission denied"
		slog.Warn("microphone acquisition failed", "order_no", d.orderNo, "error", err)
		return models.DeviceError("voice.Start", err)
	}
	if d.closed || d.gen != gen || (d.state != Idle && d.state != Recorded) {
		stream.Close()
		return ErrSuperseded
	}
	d.gen++

	d.stopPlaybackLocked()
	d.recording = nil
	d.lastErr = ""
	d.elapsed.Store(0)

	d.stream = stream
	d.captured = make(chan captureResult, 1)
	d.stopTick = make(chan struct{})
	d.tickDone = make(chan struct{})
	go capture(stream, d.captured)
	go d.tick(d.stopTick, d.tickDone)

	d.state = Recording
	slog.Debug("voice recording started", "order_no", d.orderNo)
	return nil
}

// Stop finalizes the capture into a WAV payload named {orderNo}_{millis}.wav
// and releases the microphone.
func (d *Dialog) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}
	if d.state != Recording {
		return fmt.Errorf("%w: stop from %s", ErrInvalidState, d.state)
	}

	format := d.stream.Format()
	res := d.releaseLocked()
	if res.err != nil {
		slog.Warn("capture ended with error", "order_no", d.orderNo, "error", res.err)
	}

	data, err := audio.WAV(format, res.pcm)
	if err != nil {
		d.state = Idle
		d.lastErr = "recording could not be encoded"
		return models.NewError(models.KindDevice, "voice.Stop", d.lastErr, err)
	}

	d.recording = &Take{
		File: models.File{
			Name:        fmt.Sprintf("%s_%d.wav", d.orderNo, d.now().UnixMilli()),
			ContentType: "audio/wav",
			Data:        data,
		},
		Duration: format.Duration(len(res.pcm)),
	}
	d.state = Recorded
	slog.Debug("voice recording stopped",
		"order_no", d.orderNo,
		"file", d.recording.File.Name,
		"duration_ms", d.recording.Duration.Milliseconds(),
	)
	return nil
}

// TogglePlayback plays or pauses the local recording and reports whether it
// is now playing.
func (d *Dialog) TogglePlayback() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return false, ErrClosed
	}
	if d.acquiring {
		return false, ErrBusy
	}
	if d.state != Recorded {
		return false, fmt.Errorf("%w: playback from %s", ErrInvalidState, d.state)
	}
	if d.player == nil {
		return false, ErrNoPlayer
	}

	if d.playing {
		if err := d.player.Pause(); err != nil {
			return true, models.NewError(models.KindDevice, "voice.TogglePlayback", "playback failed", err)
		}
		d.playing = false
		return false, nil
	}
	if err := d.player.Play(d.recording.File.Data); err != nil {
		return false, models.NewError(models.KindDevice, "voice.TogglePlayback", "playback failed", err)
	}
	d.playing = true
	return true, nil
}

// PlaybackEnded marks playback finished. Players call it when the preview
// reaches its end.
func (d *Dialog) PlaybackEnded() {
	d.mu.Lock()
	d.playing = false
	d.mu.Unlock()
}

// Discard drops the local recording and tells the parent no voice material
// is attached.
func (d *Dialog) Discard() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	if d.acquiring {
		d.mu.Unlock()
		return ErrBusy
	}
	if d.state != Recorded && d.state != Idle {
		d.mu.Unlock()
		return fmt.Errorf("%w: discard from %s", ErrInvalidState, d.state)
	}
	d.stopPlaybackLocked()
	d.recording = nil
	d.lastErr = ""
	d.elapsed.Store(0)
	d.state = Idle
	d.mu.Unlock()

	slog.Debug("voice recording discarded", "order_no", d.orderNo)
	d.listener.OnMaterial(material.MaterialCleared(material.Voice))
	return nil
}

// Confirm uploads the recording. On success the dialog closes and the parent
// receives the confirmed URL. On failure the session returns to Recorded with
// the local capture intact and the reason is returned.
func (d *Dialog) Confirm(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	if d.acquiring {
		d.mu.Unlock()
		return ErrBusy
	}
	if d.state != Recorded {
		d.mu.Unlock()
		return fmt.Errorf("%w: confirm from %s", ErrInvalidState, d.state)
	}
	if d.uploader == nil {
		d.mu.Unlock()
		return models.NewError(models.KindTransport, "voice.Confirm", "upload is not configured", nil)
	}
	d.stopPlaybackLocked()
	d.state = Uploading
	d.lastErr = ""
	gen := d.gen
	file := d.recording.File
	d.mu.Unlock()

	out := d.uploader.UploadAudio(ctx, d.orderNo, file)

	d.mu.Lock()
	if d.closed || d.gen != gen {
		d.mu.Unlock()
		slog.Debug("dropping stale audio upload response", "order_no", d.orderNo, "status", out.Status)
		return ErrSuperseded
	}

	if !out.OK() {
		d.state = Recorded
		d.lastErr = out.Reason
		d.mu.Unlock()
		slog.Warn("voice upload failed", "order_no", d.orderNo, "status", out.Status, "reason", out.Reason)
		return out.Err()
	}

	if d.stream != nil {
		d.releaseLocked()
	}
	d.state = Idle
	d.recording = nil
	d.closed = true
	d.gen++
	d.mu.Unlock()

	slog.Info("voice material confirmed", "order_no", d.orderNo, "url", out.Value.URL)
	d.listener.OnMaterial(material.MaterialConfirmed(material.Voice, out.Value.URL, file.Name))
	return nil
}

// Close tears the session down: any recording is stopped and the microphone
// released, playback stops, local state is cleared and the parent is told no
// voice material is attached. Close is safe to call more than once and after
// a successful Confirm, in which case it does nothing.
func (d *Dialog) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	d.gen++

	if d.state == Recording {
		if res := d.releaseLocked(); res.err != nil {
			slog.Debug("capture ended with error during close", "order_no", d.orderNo, "error", res.err)
		}
	}
	d.stopPlaybackLocked()
	d.recording = nil
	d.lastErr = ""
	d.state = Idle
	d.mu.Unlock()

	slog.Debug("voice dialog closed", "order_no", d.orderNo)
	d.listener.OnMaterial(material.MaterialCleared(material.Voice))
	return nil
}

// releaseLocked closes the stream and waits for both goroutines to exit.
func (d *Dialog) releaseLocked() captureResult {
	close(d.stopTick)
	<-d.tickDone

	closeErr := d.stream.Close()
	res := <-d.captured
	if closeErr != nil && res.err == nil {
		res.err = closeErr
	}

	d.stream = nil
	d.captured = nil
	d.stopTick = nil
	d.tickDone = nil
	return res
}

func (d *Dialog) stopPlaybackLocked() {
	if !d.playing {
		return
	}
	d.playing = false
	if err := d.player.Pause(); err != nil {
		slog.Debug("pause failed", "order_no", d.orderNo, "error", err)
	}
}

func (d *Dialog) tick(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	t := time.NewTicker(d.interval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			n := d.elapsed.Add(1)
			if d.onTick != nil {
				d.onTick(int(n))
			}
		}
	}
}

// capture drains s until it ends or is closed.
func capture(s Stream, out chan<- captureResult) {
	var buf bytes.Buffer
	_, err := io.Copy(&buf, s)
	if isClosedErr(err) {
		err = nil
	}
	out <- captureResult{pcm: buf.Bytes(), err: err}
}
