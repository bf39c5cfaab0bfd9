// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voice

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/danielhkuo/meo-custom/audio"
)

// FileMicrophone replays a WAV file as a microphone. Headless drivers use it
// in place of a capture device.
type FileMicrophone struct {
	Path string
}

func (m FileMicrophone) Open(ctx context.Context) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(m.Path)
	if err != nil {
		return nil, fmt.Errorf("open microphone file: %w", err)
	}
	f, pcm, err := audio.DecodeWAV(data)
	if err != nil {
		return nil, fmt.Errorf("open microphone file %s: %w", m.Path, err)
	}
	return &readerStream{r: bytes.NewReader(pcm), format: f}, nil
}

// readerStream yields the whole file even when closed early, so a quick
// Start/Stop still captures the complete sample.
type readerStream struct {
	r      io.Reader
	format audio.Format
}

func (s *readerStream) Read(p []byte) (int, error) { return s.r.Read(p) }

func (s *readerStream) Close() error { return nil }

func (s *readerStream) Format() audio.Format { return s.format }
