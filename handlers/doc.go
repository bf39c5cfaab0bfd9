// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the reference intake API.

# Handler Types

CustomInfoHandler serves every route. It is created with the database, the
server config and an optional metrics sink:

	h := handlers.NewCustomInfoHandler(db, cfg, metrics)

# Uploads

	POST /custom-info/upload-photo?orderNo=&gender= → UploadPhoto
	POST /custom-info/upload-audio?orderNo=         → UploadAudio

The body is multipart/form-data with one part named "file". The content type
is sniffed from the bytes, the file is stored under MediaDir, and detection
runs (see package detect). A detection failure still answers code 0 with
uploadSuccess false and detectionFailureReason; only accepted uploads carry a
signed url.

# Intake

	POST /custom-info/save      → Save
	GET  /custom-info/{orderNo} → Get

Save aggregates every failing rule into code 1004 and requires the audio (and
avatar, when present) URLs to be accepted uploads of the same order (1005).
Saving again for the same order replaces the stored intake.

# Media

	GET /media/{name}?sig= → Media

Requires the HMAC signature issued with the upload URL.

# Codes

Business results travel as HTTP 200 with a code: 0 success, 1001 invalid
order number, 1002 file too large, 1003 unsupported type, 1004 invalid
intake, 1005 unknown material, 1404 intake not found. Malformed requests are
plain HTTP 400.
*/
package handlers
