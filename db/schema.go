// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the database of the given type ("postgres" or "sqlite")
// and verifies the connection.
func Open(dbType, url string) (*sql.DB, error) {
	var driver string
	switch dbType {
	case "postgres":
		driver = "postgres"
	case "sqlite", "":
		driver = "sqlite"
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if driver == "sqlite" {
		// a single writer avoids SQLITE_BUSY under concurrent requests
		conn.SetMaxOpenConns(1)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The schema sticks to types and defaults PostgreSQL and SQLite share.
const schema = `
-- Uploaded media, including uploads that failed detection
CREATE TABLE IF NOT EXISTS media (
    id TEXT PRIMARY KEY,
    order_no TEXT NOT NULL,
    kind TEXT NOT NULL CHECK (kind IN ('photo', 'audio')),
    file_name TEXT NOT NULL,
    stored_name TEXT NOT NULL UNIQUE,
    content_type TEXT NOT NULL,
    size_bytes INTEGER NOT NULL,
    url TEXT NOT NULL,
    upload_success BOOLEAN NOT NULL,
    failure_reason TEXT,
    gender TEXT,
    ip_hash TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_media_order_no ON media(order_no);
CREATE INDEX IF NOT EXISTS idx_media_url ON media(url);

-- Saved intakes, one per order
CREATE TABLE IF NOT EXISTS custom_info (
    order_no TEXT PRIMARY KEY,
    user_name TEXT,
    phone TEXT,
    address TEXT,
    personality_desc TEXT NOT NULL,
    audio_url TEXT NOT NULL,
    avatar_url TEXT,
    original_photo_url TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
