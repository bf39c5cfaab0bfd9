// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"
)

var (
	ErrNotWAV            = errors.New("audio: not a RIFF/WAVE file")
	ErrUnsupportedFormat = errors.New("audio: unsupported wav encoding")
)

const (
	pcmFormat  = 1
	headerSize = 44
)

// Format describes interleaved signed little-endian PCM.
type Format struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
}

// VoiceFormat is the capture format used for voice samples.
var VoiceFormat = Format{SampleRate: 16000, Channels: 1, BitsPerSample: 16}

// Validate reports whether the format is encodable.
func (f Format) Validate() error {
	if f.SampleRate <= 0 || f.Channels <= 0 {
		return fmt.Errorf("%w: rate=%d channels=%d", ErrUnsupportedFormat, f.SampleRate, f.Channels)
	}
	if f.BitsPerSample != 8 && f.BitsPerSample != 16 {
		return fmt.Errorf("%w: %d bits per sample", ErrUnsupportedFormat, f.BitsPerSample)
	}
	return nil
}

// FrameSize is the byte size of one sample across all channels.
func (f Format) FrameSize() int { return f.Channels * f.BitsPerSample / 8 }

// ByteRate is the number of PCM bytes per second.
func (f Format) ByteRate() int { return f.SampleRate * f.FrameSize() }

// Duration returns the playback length of n PCM bytes.
func (f Format) Duration(n int) time.Duration {
	if f.ByteRate() == 0 {
		return 0
	}
	return time.Duration(int64(n) * int64(time.Second) / int64(f.ByteRate()))
}

// EncodeWAV writes a canonical 44-byte header followed by pcm. A trailing
// partial frame is dropped.
func EncodeWAV(w io.Writer, f Format, pcm []byte) error {
	if err := f.Validate(); err != nil {
		return err
	}
	n := len(pcm) - len(pcm)%f.FrameSize()
	pcm = pcm[:n]

	var h [headerSize]byte
	copy(h[0:4], "RIFF")
	binary.LittleEndian.PutUint32(h[4:8], uint32(36+n))
	copy(h[8:12], "WAVE")
	copy(h[12:16], "fmt ")
	binary.LittleEndian.PutUint32(h[16:20], 16)
	binary.LittleEndian.PutUint16(h[20:22], pcmFormat)
	binary.LittleEndian.PutUint16(h[22:24], uint16(f.Channels))
	binary.LittleEndian.PutUint32(h[24:28], uint32(f.SampleRate))
	binary.LittleEndian.PutUint32(h[28:32], uint32(f.ByteRate()))
	binary.LittleEndian.PutUint16(h[32:34], uint16(f.FrameSize()))
	binary.LittleEndian.PutUint16(h[34:36], uint16(f.BitsPerSample))
	copy(h[36:40], "data")
	binary.LittleEndian.PutUint32(h[40:44], uint32(n))

	if _, err := w.Write(h[:]); err != nil {
		return fmt.Errorf("write wav header: %w", err)
	}
	if _, err := w.Write(pcm); err != nil {
		return fmt.Errorf("write wav data: %w", err)
	}
	return nil
}

// WAV encodes pcm into an in-memory WAV file.
func WAV(f Format, pcm []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(headerSize + len(pcm))
	if err := EncodeWAV(&buf, f, pcm); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeWAV parses a PCM WAV file and returns its format and sample data.
// Unknown chunks are skipped.
func DecodeWAV(data []byte) (Format, []byte, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return Format{}, nil, ErrNotWAV
	}

	var (
		f       Format
		haveFmt bool
	)
	pos := 12
	for pos+8 <= len(data) {
		id := string(data[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := pos + 8
		end := body + size
		if size < 0 || end > len(data) {
			if id == "data" && haveFmt {
				// Truncated stream recorders leave the size unset.
				end = len(data)
			} else {
				return Format{}, nil, fmt.Errorf("%w: chunk %q overruns file", ErrNotWAV, id)
			}
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return Format{}, nil, fmt.Errorf("%w: short fmt chunk", ErrNotWAV)
			}
			if tag := binary.LittleEndian.Uint16(data[body : body+2]); tag != pcmFormat {
				return Format{}, nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedFormat, tag)
			}
			f = Format{
				Channels:      int(binary.LittleEndian.Uint16(data[body+2 : body+4])),
				SampleRate:    int(binary.LittleEndian.Uint32(data[body+4 : body+8])),
				BitsPerSample: int(binary.LittleEndian.Uint16(data[body+14 : body+16])),
			}
			if err := f.Validate(); err != nil {
				return Format{}, nil, err
			}
			haveFmt = true
		case "data":
			if !haveFmt {
				return Format{}, nil, fmt.Errorf("%w: data before fmt", ErrNotWAV)
			}
			return f, data[body:end], nil
		}

		pos = end + size%2
	}
	return Format{}, nil, fmt.Errorf("%w: no data chunk", ErrNotWAV)
}
