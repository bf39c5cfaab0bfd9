// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package detect performs the reference server's content checks on uploads.

Sniff identifies a file by its bytes (github.com/gabriel-vasile/mimetype)
and returns the canonical type if it is allowed.

Photo decodes only the image header (JPEG, PNG, WebP) and fails when the
short edge is below MinPhotoEdge or the long edge exceeds MaxAspectRatio
times the short edge.

Audio inspects WAV recordings: shorter than MinAudioDuration, RMS below
SilenceRMS ("no voice detected"), or more than MaxClippedRatio of samples at
full scale ("noise too high") all fail. MP3 and M4A pass once sniffed.

A failed Result is not an error. The handler answers it with code 0,
uploadSuccess false and the Reason as detectionFailureReason.
*/
package detect
