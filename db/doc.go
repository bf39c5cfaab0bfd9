// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Connecting

Open selects the driver by type and pings the database:

	conn, err := db.Open("sqlite", "meo.db")
	conn, err := db.Open("postgres", "postgres://...")

SQLite uses modernc.org/sqlite (pure Go) and is limited to one open
connection. PostgreSQL uses github.com/lib/pq.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The DDL only uses types and defaults both engines accept.

# Tables

  - media: every uploaded photo or audio file with its detection outcome,
    stored file name, public URL and a salted uploader IP hash
  - custom_info: the saved intake, keyed by order number

# Relationships

	custom_info.audio_url  ──> media.url (kind = 'audio')
	custom_info.avatar_url ──> media.url (kind = 'photo')

These are checked by the save handler rather than foreign keys, since a URL
carries a signature query string.

# Indexes

  - media.order_no
  - media.url
*/
package db
