// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/danielhkuo/meo-custom/uploadclient"
	"github.com/danielhkuo/meo-custom/validation"
)

// LimitsConfig is the static validation surface shared by server and client.
type LimitsConfig struct {
	ImageMaxBytes  int64    `env:"IMAGE_MAX_BYTES" envDefault:"5242880"`
	AudioMaxBytes  int64    `env:"AUDIO_MAX_BYTES" envDefault:"10485760"`
	ImageTypes     []string `env:"IMAGE_TYPES" envDefault:"image/jpeg,image/jpg,image/png,image/webp"`
	AudioTypes     []string `env:"AUDIO_TYPES" envDefault:"audio/mp3,audio/wav,audio/m4a"`
	OrderNoMin     int      `env:"ORDER_NO_MIN" envDefault:"6"`
	OrderNoMax     int      `env:"ORDER_NO_MAX" envDefault:"20"`
	PersonalityMin int      `env:"PERSONALITY_MIN" envDefault:"10"`
	PersonalityMax int      `env:"PERSONALITY_MAX" envDefault:"200"`
}

func (l LimitsConfig) limits(requireAvatar bool) validation.Limits {
	return validation.Limits{
		OrderNoMin:     l.OrderNoMin,
		OrderNoMax:     l.OrderNoMax,
		PersonalityMin: l.PersonalityMin,
		PersonalityMax: l.PersonalityMax,
		ImageMaxBytes:  l.ImageMaxBytes,
		AudioMaxBytes:  l.AudioMaxBytes,
		ImageTypes:     l.ImageTypes,
		AudioTypes:     l.AudioTypes,
		RequireAvatar:  requireAvatar,
	}
}

// Config is the reference server configuration.
type Config struct {
	Port         int    `env:"PORT" envDefault:"3318"`
	DatabaseURL  string `env:"DATABASE_URL"`
	DatabaseType string `env:"DATABASE_TYPE" envDefault:"sqlite"`

	MediaDir  string `env:"MEDIA_DIR" envDefault:"media"`
	PublicURL string `env:"PUBLIC_URL"`

	// Secrets
	MediaSigningSalt string `env:"MEDIA_SIGNING_SALT"`
	IPHashSalt       string `env:"IP_HASH_SALT"`

	UploadsPerMinute int           `env:"UPLOADS_PER_MINUTE" envDefault:"30"`
	MinPhotoEdge     int           `env:"MIN_PHOTO_EDGE" envDefault:"256"`
	MinAudioDuration time.Duration `env:"MIN_AUDIO_DURATION" envDefault:"3s"`

	LimitsConfig
}

// Limits returns the server-side rules. The server accepts an intake without
// an avatar.
func (c Config) Limits() validation.Limits { return c.limits(false) }

// BaseURL is the public prefix for media links.
func (c Config) BaseURL() string {
	if c.PublicURL != "" {
		return c.PublicURL
	}
	return "http://localhost:" + strconv.Itoa(c.Port)
}

// ParseFlags reads the environment, then applies flags on top of it
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("meo-custom", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", cfg.Port, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", cfg.DatabaseType, "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.MediaDir, "media-dir", cfg.MediaDir, "Directory for uploaded media")
	fs.StringVar(&cfg.PublicURL, "public-url", cfg.PublicURL, "Public base URL for media links")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.MediaSigningSalt, "signing-salt", cfg.MediaSigningSalt, "Media URL signing salt (prefer env)")
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", cfg.IPHashSalt, "Uploader IP hash salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	// Secrets - MUST be provided
	if cfg.MediaSigningSalt == "" {
		return Config{}, errors.New("MEDIA_SIGNING_SALT required")
	}
	if cfg.IPHashSalt == "" {
		return Config{}, errors.New("IP_HASH_SALT required")
	}

	return cfg, nil
}

// ClientConfig configures the intake client.
type ClientConfig struct {
	BaseURL     string        `env:"MEO_API_BASE_URL" envDefault:"https://api.wwwfuture.gd.cn/openapi/manage"`
	Timeout     time.Duration `env:"MEO_API_TIMEOUT" envDefault:"10s"`
	SuccessCode int           `env:"MEO_API_SUCCESS_CODE" envDefault:"0"`

	LimitsConfig
}

// ParseClientEnv reads the client configuration from the environment.
func ParseClientEnv() (ClientConfig, error) {
	var cfg ClientConfig
	if err := env.Parse(&cfg); err != nil {
		return ClientConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Limits returns the client-side rules. Both materials are required.
func (c ClientConfig) Limits() validation.Limits { return c.limits(true) }

// Upload returns the upload client configuration.
func (c ClientConfig) Upload() uploadclient.Config {
	return uploadclient.Config{
		BaseURL:     c.BaseURL,
		Timeout:     c.Timeout,
		SuccessCode: c.SuccessCode,
	}
}
