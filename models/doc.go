// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the wire types, the client-side form draft, and the
error taxonomy shared by every other package.

# Wire Types

Every API answer is wrapped in a Response envelope:

	{"code": 0, "message": "ok", "data": ..., "requestId": "..."}

Code SuccessCode (0) means business success. Non-zero codes are business
failures even when the HTTP status is 200:

  - CodeInvalidOrderNo (1001)
  - CodeFileTooLarge (1002)
  - CodeUnsupportedType (1003)
  - CodeInvalidIntake (1004)
  - CodeUnknownMaterial (1005)
  - CodeNotFound (1404)

Data shapes:

  - UploadResult: uploadSuccess, url, detectionFailureReason, file metadata
  - CustomInfo: orderNo, userName, phone, address, personalityDesc,
    audioUrl, avatarUrl, originalPhotoUrl

# Client Types

  - File: an in-memory payload (name, content type, bytes)
  - FormDraft: the intake being edited; converts to CustomInfo for saving

# Errors

Error carries a Kind so callers can decide how to recover:

	KindValidation       fix the field and resubmit
	KindDevice           grant microphone permission and retry
	KindTransport        network or HTTP failure, retry
	KindBusinessRejected server refused the content, submit different material

ValidationError aggregates every failing rule and is always KindValidation.
*/
package models
