// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"testing"
	"time"

	"github.com/danielhkuo/meo-custom/validation"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("MEDIA_SIGNING_SALT", "sign-salt")
	t.Setenv("IP_HASH_SALT", "ip-salt")
}

func TestParseFlags_EnvVars(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9000")
	t.Setenv("MIN_AUDIO_DURATION", "5s")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default sqlite, got %q", cfg.DatabaseType)
	}
	if cfg.MinAudioDuration != 5*time.Second {
		t.Errorf("expected 5s, got %v", cfg.MinAudioDuration)
	}
	if cfg.BaseURL() != "http://localhost:9000" {
		t.Errorf("unexpected base url %q", cfg.BaseURL())
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-signing-salt", "s1", "-ip-salt", "s2"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
}

func TestParseFlags_Required(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing database", []string{"-signing-salt", "a", "-ip-salt", "b"}},
		{"missing signing salt", []string{"-d", "x", "-ip-salt", "b"}},
		{"missing ip salt", []string{"-d", "x", "-signing-salt", "a"}},
		{"bad database type", []string{"-d", "x", "-t", "mysql", "-signing-salt", "a", "-ip-salt", "b"}},
		{"unknown flag", []string{"-nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "")
			t.Setenv("MEDIA_SIGNING_SALT", "")
			t.Setenv("IP_HASH_SALT", "")
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestConfigLimits(t *testing.T) {
	setRequired(t)
	t.Setenv("IMAGE_TYPES", "image/png")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatal(err)
	}

	l := cfg.Limits()
	if l.RequireAvatar {
		t.Error("server limits should not require an avatar")
	}
	if len(l.ImageTypes) != 1 || l.ImageTypes[0] != "image/png" {
		t.Errorf("unexpected image types %v", l.ImageTypes)
	}
	if l.AudioMaxBytes != 10*1024*1024 {
		t.Errorf("unexpected audio max %d", l.AudioMaxBytes)
	}
}

func TestParseClientEnv_Defaults(t *testing.T) {
	cfg, err := ParseClientEnv()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.BaseURL != "https://api.wwwfuture.gd.cn/openapi/manage" {
		t.Errorf("unexpected base url %q", cfg.BaseURL)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("unexpected timeout %v", cfg.Timeout)
	}

	want := validation.DefaultLimits()
	got := cfg.Limits()
	if got.OrderNoMin != want.OrderNoMin || got.PersonalityMax != want.PersonalityMax ||
		got.ImageMaxBytes != want.ImageMaxBytes || !got.RequireAvatar {
		t.Errorf("client limits %+v differ from defaults %+v", got, want)
	}
	if len(got.AudioTypes) != 3 {
		t.Errorf("unexpected audio types %v", got.AudioTypes)
	}

	up := cfg.Upload()
	if up.Timeout != 10*time.Second || up.SuccessCode != 0 {
		t.Errorf("unexpected upload config %+v", up)
	}
}

func TestParseClientEnv_Override(t *testing.T) {
	t.Setenv("MEO_API_BASE_URL", "http://localhost:3318")
	t.Setenv("MEO_API_TIMEOUT", "2s")
	t.Setenv("MEO_API_SUCCESS_CODE", "200")

	cfg, err := ParseClientEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseURL != "http://localhost:3318" || cfg.Timeout != 2*time.Second || cfg.SuccessCode != 200 {
		t.Errorf("env not applied: %+v", cfg)
	}
}
