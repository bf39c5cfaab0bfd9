// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package uploadclient is the HTTP client for the custom-info API.

# Operations

	UploadPhoto(ctx, orderNo, gender, file)  POST /custom-info/upload-photo
	UploadAudio(ctx, orderNo, file)          POST /custom-info/upload-audio
	SaveIntake(ctx, draft)                   POST /custom-info/save
	GetIntake(ctx, orderNo)                  GET  /custom-info/{orderNo}

Every operation returns an Outcome instead of an error:

  - Confirmed: the server accepted the call. Uploads carry the resource URL.
  - Rejected: HTTP succeeded but the envelope code was not the success code,
    uploadSuccess was false, or a save answered data=false. Reason holds the
    server's detectionFailureReason or message.
  - TransportFailed: network error, timeout, non-2xx status, or an
    unreadable body.

The client never retries and never caches. The only deadline is the
configured request timeout (default 10s) plus whatever the caller's context
imposes. Each request carries a fresh X-Request-Id.

Uploads are multipart with a single part named "file" whose Content-Type
is the file's declared type.
*/
package uploadclient
