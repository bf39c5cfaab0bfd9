// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package audio encodes and decodes PCM WAV files and measures their levels.

The voice dialog records raw PCM from a microphone stream and packages it
with EncodeWAV into the audio/wav payload it uploads. The reference server
runs DecodeWAV and Analyze on uploaded samples to decide whether a recording
is usable: too short, silent, or clipped.

Only uncompressed PCM (format tag 1) at 8 or 16 bits is handled.
*/
package audio
