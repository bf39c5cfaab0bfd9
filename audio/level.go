// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package audio

import (
	"encoding/binary"
	"math"
)

// Levels summarises the amplitude of a PCM buffer on a 0..1 scale.
type Levels struct {
	Peak    float64
	RMS     float64
	Clipped float64 // fraction of samples at full scale
	Samples int
}

// Analyze computes Levels over every sample of every channel.
func Analyze(f Format, pcm []byte) Levels {
	if f.Validate() != nil {
		return Levels{}
	}

	var (
		lv     Levels
		sumSq  float64
		clip   int
		stride = f.BitsPerSample / 8
	)
	for i := 0; i+stride <= len(pcm); i += stride {
		var v float64
		var full bool
		switch f.BitsPerSample {
		case 8:
			s := int(pcm[i]) - 128
			v = float64(s) / 128
			full = s <= -128 || s >= 127
		case 16:
			s := int16(binary.LittleEndian.Uint16(pcm[i : i+2]))
			v = float64(s) / 32768
			full = s <= math.MinInt16+1 || s >= math.MaxInt16-1
		}
		if full {
			clip++
		}
		a := math.Abs(v)
		if a > lv.Peak {
			lv.Peak = a
		}
		sumSq += v * v
		lv.Samples++
	}
	if lv.Samples > 0 {
		lv.RMS = math.Sqrt(sumSq / float64(lv.Samples))
		lv.Clipped = float64(clip) / float64(lv.Samples)
	}
	return lv
}

// Tone renders a 16-bit sine wave at amp (0..1) for the given number of
// frames, duplicated across channels.
func Tone(f Format, hz float64, amp float64, frames int) []byte {
	out := make([]byte, 0, frames*f.FrameSize())
	for n := 0; n < frames; n++ {
		s := int16(amp * 32767 * math.Sin(2*math.Pi*hz*float64(n)/float64(f.SampleRate)))
		for c := 0; c < f.Channels; c++ {
			out = binary.LittleEndian.AppendUint16(out, uint16(s))
		}
	}
	return out
}
