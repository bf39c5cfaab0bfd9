// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides ID generation, media URL signing and IP hashing.

# Media Signatures

Media signatures use HMAC-SHA256 over the stored file name:

	sig := auth.SignMedia(storedName, salt)
	err := auth.ValidateMediaSignature(storedName, sig, salt)

The signature is URL-safe base64 encoded without padding. Since it's
deterministic, the same name and salt always produce the same signature, so
nothing needs to be stored to validate it.

MediaURL builds the public link handed back to uploaders:

	url := auth.MediaURL("https://api.example.com", "3f2a9c.wav", salt)
	// https://api.example.com/media/3f2a9c.wav?sig=...

# ID Generation

Random hex IDs for database records and stored file names:

	id, err := auth.GenerateID(16)  // 32 hex characters

# IP Hashing

For privacy-preserving abuse tracking on uploads:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
