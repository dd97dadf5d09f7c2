// Copyright 2026 The Callsight Authors
// SPDX-License-Identifier: MIT

// Package config loads callsight configuration from the process environment,
// an optional .env file, and an optional .callsight.yaml file.
//
// Precedence, highest first: process environment, .env file, .callsight.yaml,
// built-in defaults. godotenv never overrides variables already present in the
// environment, which gives the env > .env ordering for free.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the expected config file name in the working directory.
const FileName = ".callsight.yaml"

// EnvFileName is the dotenv file loaded from the working directory.
const EnvFileName = ".env"

const (
	// DefaultLogFile is the CSV log path when none is configured.
	DefaultLogFile = "call_analysis.csv"

	// DefaultModel is the Groq model used when none is configured.
	DefaultModel = "llama-3.1-8b-instant"

	// DefaultAddr is the listen address for the web interface.
	DefaultAddr = ":8080"
)

// Config holds the resolved callsight configuration.
type Config struct {
	// APIKey is the Groq API key. Sourced from GROQ_API_KEY only; it is
	// deliberately not a yaml field so keys never end up in config files.
	APIKey string `yaml:"-"`

	// Model is the chat model used for analysis.
	Model string `yaml:"model,omitempty"`

	// LogFile is the path of the CSV call log.
	LogFile string `yaml:"log_file,omitempty"`

	// BaseURL overrides the API endpoint. Empty means the Groq default.
	BaseURL string `yaml:"base_url,omitempty"`

	// Addr is the listen address for `callsight serve`.
	Addr string `yaml:"addr,omitempty"`
}

// Load resolves configuration for the given working directory.
// A missing .env or .callsight.yaml is not an error. A missing API key is not
// an error either: commands that only read the log must work without one, and
// the provider constructor enforces the key before any network call.
func Load(dir string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(dir, EnvFileName)); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", EnvFileName, err)
		}
	}

	cfg := &Config{}
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path) //nolint:gosec // user config path
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", FileName, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", FileName, err)
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

// applyEnv overlays environment variables onto cfg.
func applyEnv(cfg *Config) {
	cfg.APIKey = os.Getenv("GROQ_API_KEY")
	if v := os.Getenv("GROQ_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("CALLSIGHT_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("CALLSIGHT_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("CALLSIGHT_ADDR"); v != "" {
		cfg.Addr = v
	}
}

// applyDefaults fills any still-empty fields.
func applyDefaults(cfg *Config) {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.LogFile == "" {
		cfg.LogFile = DefaultLogFile
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
}
