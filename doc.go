// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the reference MEO custom intake API.

Buyers of a personalised companion product submit an intake per order: a
voice sample, a head-shot photo and a short personality description. The
client core lives in packages intake, voice, avatar, steps and uploadclient;
this binary serves the remote API they talk to.

# Starting the Server

The server reads a .env file, the environment, then CLI flags:

	DATABASE_URL=meo.db MEDIA_SIGNING_SALT=... IP_HASH_SALT=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -media-dir ./media

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string
  - MEDIA_SIGNING_SALT (-signing-salt): Secret for media URL signatures
  - IP_HASH_SALT (-ip-salt): Secret for uploader IP hashing

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - MEDIA_DIR (-media-dir): Where uploads are stored (default: media)
  - PUBLIC_URL (-public-url): Prefix of issued media URLs
  - UPLOADS_PER_MINUTE, MIN_PHOTO_EDGE, MIN_AUDIO_DURATION
  - IMAGE_MAX_BYTES, AUDIO_MAX_BYTES, IMAGE_TYPES, AUDIO_TYPES, ORDER_NO_MIN,
    ORDER_NO_MAX, PERSONALITY_MIN, PERSONALITY_MAX

# Architecture

  - handlers: upload, intake and media handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, envelope, rate limiting, metrics
  - detect: content sniffing and structural photo/voice checks
  - auth: IDs, signed media URLs, IP hashing
  - db: driver selection and schema creation
  - cliparse: Configuration parsing

The headless intake client is cmd/intake.
*/
package main
