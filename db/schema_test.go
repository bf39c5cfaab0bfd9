// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"path/filepath"
	"testing"
)

func TestOpenSQLiteAndCreateSchema(t *testing.T) {
	conn, err := Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	// idempotent
	for i := 0; i < 2; i++ {
		if err := CreateSchema(conn); err != nil {
			t.Fatalf("CreateSchema pass %d: %v", i, err)
		}
	}

	_, err = conn.Exec(`
		INSERT INTO custom_info (order_no, personality_desc, audio_url)
		VALUES ($1, $2, $3)
		ON CONFLICT (order_no) DO UPDATE SET personality_desc = excluded.personality_desc
	`, "ORDER001", "first description", "a")
	if err != nil {
		t.Fatal(err)
	}
	_, err = conn.Exec(`
		INSERT INTO custom_info (order_no, personality_desc, audio_url)
		VALUES ($1, $2, $3)
		ON CONFLICT (order_no) DO UPDATE SET personality_desc = excluded.personality_desc
	`, "ORDER001", "second description", "a")
	if err != nil {
		t.Fatal(err)
	}

	var desc string
	if err := conn.QueryRow(`SELECT personality_desc FROM custom_info WHERE order_no = $1`, "ORDER001").Scan(&desc); err != nil {
		t.Fatal(err)
	}
	if desc != "second description" {
		t.Errorf("upsert not applied, got %q", desc)
	}
}

func TestMediaKindCheck(t *testing.T) {
	conn, err := Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	if err := CreateSchema(conn); err != nil {
		t.Fatal(err)
	}

	_, err = conn.Exec(`
		INSERT INTO media (id, order_no, kind, file_name, stored_name, content_type, size_bytes, url, upload_success)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, "m1", "ORDER001", "video", "a.mp4", "m1.mp4", "video/mp4", 10, "u", true)
	if err == nil {
		t.Error("expected CHECK constraint to reject kind 'video'")
	}
}

func TestOpenUnknownType(t *testing.T) {
	if _, err := Open("mysql", "x"); err == nil {
		t.Error("expected error for unsupported type")
	}
}
