// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/meo-custom/models"
	"github.com/danielhkuo/meo-custom/validation"
)

// Answers is the YAML intake file. Photo and Voice are paths relative to the
// file itself.
type Answers struct {
	OrderNo     string `yaml:"orderNo"`
	Name        string `yaml:"name"`
	Phone       string `yaml:"phone"`
	Personality string `yaml:"personality"`
	UseTemplate bool   `yaml:"useTemplate"`
	Gender      string `yaml:"gender"`
	Photo       string `yaml:"photo"`
	Voice       string `yaml:"voice"`
}

func loadAnswers(path string) (Answers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Answers{}, fmt.Errorf("read answers: %w", err)
	}

	var a Answers
	if err := yaml.Unmarshal(data, &a); err != nil {
		return Answers{}, fmt.Errorf("parse answers %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	a.Photo = resolve(dir, a.Photo)
	a.Voice = resolve(dir, a.Voice)
	return a, nil
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// readMaterial loads a file with its content type sniffed from the bytes.
func readMaterial(path string) (models.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.File{}, fmt.Errorf("read %s: %w", path, err)
	}
	return models.File{
		Name:        filepath.Base(path),
		ContentType: validation.CanonicalType(mimetype.Detect(data).String()),
		Data:        data,
	}, nil
}

// storedIntake is the printable view of a saved intake.
type storedIntake struct {
	OrderNo          string `yaml:"orderNo"`
	Name             string `yaml:"name,omitempty"`
	Phone            string `yaml:"phone,omitempty"`
	Address          string `yaml:"address,omitempty"`
	Personality      string `yaml:"personality"`
	AudioURL         string `yaml:"audioUrl"`
	AvatarURL        string `yaml:"avatarUrl,omitempty"`
	OriginalPhotoURL string `yaml:"originalPhotoUrl,omitempty"`
}

func newStoredIntake(c models.CustomInfo) storedIntake {
	return storedIntake{
		OrderNo:          c.OrderNo,
		Name:             c.UserName,
		Phone:            c.Phone,
		Address:          c.Address,
		Personality:      c.PersonalityDesc,
		AudioURL:         c.AudioURL,
		AvatarURL:        c.AvatarURL,
		OriginalPhotoURL: c.OriginalPhotoURL,
	}
}
