// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config loads wordscope service configuration from the
// environment.
//
// # Description
//
// Every setting has a default, so an empty environment yields a working
// service on port 5000 with grammar checking off. Load parses values;
// Validate checks ranges and formats using validator struct tags.
// LoadEnvFile may seed the environment from a dotenv file first
// (WORDSCOPE_ENV_FILE, default ".env").
//
// # Environment
//
//	PORT                         listen port (5000)
//	WORDSCOPE_MODE               gin mode: release | debug (release)
//	GRAMMAR_ENABLED              enable grammar checking (false)
//	LANGUAGETOOL_URL             LanguageTool base URL
//	LANGUAGETOOL_LANGUAGE        language code (en-US)
//	LANGUAGETOOL_RPS             client-side requests per second, 0 is unlimited (0.33)
//	GRAMMAR_CACHE_TTL            result cache TTL, 0 disables (1h)
//	DICTIONARY_PATH              frequency list; empty uses the embedded list
//	DICTIONARY_THRESHOLD         minimum count for a dictionary term (1)
//	AFFIX_FILE                   YAML vocabulary; empty uses the defaults
//	CORS_ALLOWED_ORIGINS         comma-separated origins (*)
//	LOG_LEVEL                    debug | info | warn | error (info)
//	LOG_DIR                      JSON log file directory (disabled)
//	OTEL_EXPORTER_OTLP_ENDPOINT  OTLP gRPC collector, or "stdout"; empty disables tracing
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/AleutianAI/wordscope/pkg/logging"
)

// Defaults.
const (
	DefaultPort                = "5000"
	DefaultMode                = "release"
	DefaultLanguageToolURL     = "https://api.languagetool.org"
	DefaultLanguage            = "en-US"
	DefaultLanguageToolRPS     = 0.33
	DefaultGrammarCacheTTL     = time.Hour
	DefaultDictionaryThreshold = 1
	DefaultAllowedOrigins      = "*"
	DefaultLogLevel            = "info"
)

var configValidate *validator.Validate

func init() {
	configValidate = validator.New()
	_ = configValidate.RegisterValidation("loglevel", validateLogLevel)
	_ = configValidate.RegisterValidation("listenport", validateListenPort)
}

// validateListenPort accepts decimal strings in 1..65535.
func validateListenPort(fl validator.FieldLevel) bool {
	port, err := strconv.ParseUint(fl.Field().String(), 10, 16)
	return err == nil && port > 0
}

func validateLogLevel(fl validator.FieldLevel) bool {
	_, err := logging.ParseLevel(fl.Field().String())
	return err == nil
}

// Config is the resolved service configuration.
type Config struct {
	Port string `validate:"listenport"`
	Mode string `validate:"oneof=release debug"`

	GrammarEnabled  bool
	LanguageToolURL string        `validate:"required,url"`
	Language        string        `validate:"required"`
	LanguageToolRPS float64       `validate:"gte=0"`
	GrammarCacheTTL time.Duration `validate:"gte=0"`

	DictionaryPath      string
	DictionaryThreshold uint32 `validate:"gte=1"`
	AffixFile           string

	AllowedOrigins []string `validate:"min=1,dive,required"`

	LogLevel string `validate:"loglevel"`
	LogDir   string

	OTLPEndpoint string
}

// Load reads the configuration from the process environment.
//
// # Outputs
//
//   - *Config: Parsed configuration. Not yet validated.
//   - error: Non-nil when a value cannot be parsed (bad bool, number or
//     duration). The error names the variable.
func Load() (*Config, error) {
	return LoadFrom(os.Getenv)
}

// LoadFrom reads the configuration through getenv. Tests pass a map lookup.
func LoadFrom(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Port:            withDefault(getenv("PORT"), DefaultPort),
		Mode:            strings.ToLower(withDefault(getenv("WORDSCOPE_MODE"), DefaultMode)),
		LanguageToolURL: withDefault(getenv("LANGUAGETOOL_URL"), DefaultLanguageToolURL),
		Language:        withDefault(getenv("LANGUAGETOOL_LANGUAGE"), DefaultLanguage),
		DictionaryPath:  strings.TrimSpace(getenv("DICTIONARY_PATH")),
		AffixFile:       strings.TrimSpace(getenv("AFFIX_FILE")),
		AllowedOrigins:  splitList(withDefault(getenv("CORS_ALLOWED_ORIGINS"), DefaultAllowedOrigins)),
		LogLevel:        withDefault(getenv("LOG_LEVEL"), DefaultLogLevel),
		LogDir:          strings.TrimSpace(getenv("LOG_DIR")),
		OTLPEndpoint:    strings.TrimSpace(getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
	}

	var err error
	if cfg.GrammarEnabled, err = parseBool(getenv, "GRAMMAR_ENABLED", false); err != nil {
		return nil, err
	}
	if cfg.LanguageToolRPS, err = parseFloat(getenv, "LANGUAGETOOL_RPS", DefaultLanguageToolRPS); err != nil {
		return nil, err
	}
	if cfg.GrammarCacheTTL, err = parseDuration(getenv, "GRAMMAR_CACHE_TTL", DefaultGrammarCacheTTL); err != nil {
		return nil, err
	}
	threshold, err := parseUint(getenv, "DICTIONARY_THRESHOLD", DefaultDictionaryThreshold)
	if err != nil {
		return nil, err
	}
	cfg.DictionaryThreshold = threshold

	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Addr returns the listen address, e.g. ":5000".
func (c *Config) Addr() string {
	return ":" + c.Port
}

// Debug reports whether the service runs in the fixed development mode.
func (c *Config) Debug() bool {
	return c.Mode == "debug"
}

// LoggingConfig maps the service settings onto a logging.Config.
func (c *Config) LoggingConfig() logging.Config {
	level, _ := logging.ParseLevel(c.LogLevel)
	return logging.Config{
		Level:   level,
		LogDir:  c.LogDir,
		Service: "wordscope",
		JSON:    true,
	}
}

func withDefault(v, def string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	return v
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseBool(getenv func(string) string, key string, def bool) (bool, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func parseFloat(getenv func(string) string, key string, def float64) (float64, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func parseUint(getenv func(string) string, key string, def uint32) (uint32, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return uint32(v), nil
}

func parseDuration(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return def, nil
	}
	if raw == "0" {
		return 0, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
