// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Server Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Environment variables are read first (with defaults), then flags override
them. A .env file is loaded by main before parsing.

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: connection string or SQLite file (required)
  - DatabaseType: sqlite (default) or postgres
  - MediaDir: where uploaded files are stored (default: media)
  - PublicURL: base for media links (default: http://localhost:<port>)
  - MediaSigningSalt: secret for media URL signatures (required)
  - IPHashSalt: secret for uploader IP hashes (required)
  - UploadsPerMinute: per-IP upload rate (default: 30)
  - MinPhotoEdge, MinAudioDuration: detection thresholds (256px, 3s)

# CLI Flags

	-p             Server port
	-d             Database URL
	-t             Database type
	-media-dir     Media directory
	-public-url    Public base URL
	-signing-salt  Media signing salt
	-ip-salt       IP hash salt

# Environment Variables

	PORT               → -p
	DATABASE_URL       → -d
	DATABASE_TYPE      → -t
	MEDIA_DIR          → -media-dir
	PUBLIC_URL         → -public-url
	MEDIA_SIGNING_SALT → -signing-salt
	IP_HASH_SALT       → -ip-salt
	UPLOADS_PER_MINUTE, MIN_PHOTO_EDGE, MIN_AUDIO_DURATION

CLI flags take precedence over environment variables.

# Limits

Both server and client embed LimitsConfig:

	IMAGE_MAX_BYTES (5MB)   AUDIO_MAX_BYTES (10MB)
	IMAGE_TYPES             AUDIO_TYPES
	ORDER_NO_MIN/MAX (6/20) PERSONALITY_MIN/MAX (10/200)

# Client Configuration

ParseClientEnv reads ClientConfig for the intake client:

	MEO_API_BASE_URL      default https://api.wwwfuture.gd.cn/openapi/manage
	MEO_API_TIMEOUT       default 10s
	MEO_API_SUCCESS_CODE  default 0

ClientConfig.Limits requires both materials; Config.Limits accepts an intake
without an avatar.
*/
package cliparse
