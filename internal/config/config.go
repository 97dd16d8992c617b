// Package config reads estimator settings from the environment. A .env file
// in the working directory, when present, is loaded first; variables already
// set in the environment win over the file.
package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var prefixPattern = regexp.MustCompile(`^[A-Z]{2,6}$`)

// Config holds all runtime settings for the estimator binary.
type Config struct {
	DBPath      string
	LogUseCases bool
	Locale      string // "en" or "tr"
	CodePrefix  string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	dbPath := "estimator.db"
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".estimator", "estimator.db")
	}
	return Config{
		DBPath:     dbPath,
		Locale:     "en",
		CodePrefix: "PRJ",
	}
}

// LoadConfig loads .env (if any) and reads configuration from environment
// variables, falling back to defaults for unset or malformed values.
func LoadConfig() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads configuration from the process environment only.
func FromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("ESTIMATOR_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("ESTIMATOR_LOG_USE_CASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("ESTIMATOR_LOCALE"))); v == "en" || v == "tr" {
		cfg.Locale = v
	}
	if v := strings.ToUpper(strings.TrimSpace(os.Getenv("ESTIMATOR_CODE_PREFIX"))); prefixPattern.MatchString(v) {
		cfg.CodePrefix = v
	}

	return cfg
}
