// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/wordscope/pkg/logging"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

// =============================================================================
// Load Tests
// =============================================================================

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadFrom(envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, "release", cfg.Mode)
	assert.False(t, cfg.Debug())
	assert.False(t, cfg.GrammarEnabled)
	assert.Equal(t, DefaultLanguageToolURL, cfg.LanguageToolURL)
	assert.Equal(t, "en-US", cfg.Language)
	assert.InDelta(t, 0.33, cfg.LanguageToolRPS, 1e-9)
	assert.Equal(t, time.Hour, cfg.GrammarCacheTTL)
	assert.Equal(t, uint32(1), cfg.DictionaryThreshold)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.OTLPEndpoint)

	assert.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := LoadFrom(envMap(map[string]string{
		"PORT":                        "8080",
		"WORDSCOPE_MODE":              "DEBUG",
		"GRAMMAR_ENABLED":             "true",
		"LANGUAGETOOL_URL":            "http://languagetool:8010",
		"LANGUAGETOOL_LANGUAGE":       "en-GB",
		"LANGUAGETOOL_RPS":            "2.5",
		"GRAMMAR_CACHE_TTL":           "0",
		"DICTIONARY_PATH":             "/data/words.txt",
		"DICTIONARY_THRESHOLD":        "5",
		"AFFIX_FILE":                  "/data/affixes.yaml",
		"CORS_ALLOWED_ORIGINS":        "https://a.example, https://b.example,",
		"LOG_LEVEL":                   "debug",
		"LOG_DIR":                     "/var/log/wordscope",
		"OTEL_EXPORTER_OTLP_ENDPOINT": "otel-collector:4317",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.True(t, cfg.Debug())
	assert.True(t, cfg.GrammarEnabled)
	assert.Equal(t, "http://languagetool:8010", cfg.LanguageToolURL)
	assert.Equal(t, "en-GB", cfg.Language)
	assert.InDelta(t, 2.5, cfg.LanguageToolRPS, 1e-9)
	assert.Equal(t, time.Duration(0), cfg.GrammarCacheTTL)
	assert.Equal(t, "/data/words.txt", cfg.DictionaryPath)
	assert.Equal(t, uint32(5), cfg.DictionaryThreshold)
	assert.Equal(t, "/data/affixes.yaml", cfg.AffixFile)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "otel-collector:4317", cfg.OTLPEndpoint)

	assert.NoError(t, cfg.Validate())
}

func TestLoad_ParseErrorsNameTheVariable(t *testing.T) {
	tests := map[string]string{
		"GRAMMAR_ENABLED":      "maybe",
		"LANGUAGETOOL_RPS":     "fast",
		"GRAMMAR_CACHE_TTL":    "forever",
		"DICTIONARY_THRESHOLD": "-1",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			_, err := LoadFrom(envMap(map[string]string{key: value}))
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoad_ReadsProcessEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
}

// =============================================================================
// Validate Tests
// =============================================================================

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"port not numeric", map[string]string{"PORT": "http"}},
		{"port zero", map[string]string{"PORT": "0"}},
		{"port too large", map[string]string{"PORT": "70000"}},
		{"unknown mode", map[string]string{"WORDSCOPE_MODE": "test"}},
		{"bad url", map[string]string{"LANGUAGETOOL_URL": "not a url"}},
		{"negative rps", map[string]string{"LANGUAGETOOL_RPS": "-1"}},
		{"negative ttl", map[string]string{"GRAMMAR_CACHE_TTL": "-1m"}},
		{"zero threshold", map[string]string{"DICTIONARY_THRESHOLD": "0"}},
		{"unknown log level", map[string]string{"LOG_LEVEL": "chatty"}},
		{"no origins", map[string]string{"CORS_ALLOWED_ORIGINS": " , "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFrom(envMap(tt.env))
			require.NoError(t, err)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_ZeroRPSMeansUnlimited(t *testing.T) {
	cfg, err := LoadFrom(envMap(map[string]string{"LANGUAGETOOL_RPS": "0"}))
	require.NoError(t, err)

	assert.NoError(t, cfg.Validate())
	assert.Zero(t, cfg.LanguageToolRPS)
}

func TestLoggingConfig(t *testing.T) {
	cfg, err := LoadFrom(envMap(map[string]string{"LOG_LEVEL": "warn", "LOG_DIR": "/tmp/logs"}))
	require.NoError(t, err)

	lc := cfg.LoggingConfig()
	assert.Equal(t, logging.LevelWarn, lc.Level)
	assert.Equal(t, "/tmp/logs", lc.LogDir)
	assert.Equal(t, "wordscope", lc.Service)
	assert.True(t, lc.JSON)
}

// =============================================================================
// LoadAffixFile Tests
// =============================================================================

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "affixes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadAffixFile_EmptyPathUsesDefaults(t *testing.T) {
	vocab, err := LoadAffixFile("")
	require.NoError(t, err)
	assert.Len(t, vocab.Prefixes(), 29)
	assert.Len(t, vocab.Suffixes(), 25)
}

func TestLoadAffixFile(t *testing.T) {
	path := writeFile(t, "prefixes: [un, Re]\nsuffixes:\n  - ness\n  - ing\n")

	vocab, err := LoadAffixFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"un", "re"}, vocab.Prefixes())
	assert.Equal(t, []string{"ness", "ing"}, vocab.Suffixes())
}

func TestLoadAffixFile_SuffixesOnly(t *testing.T) {
	vocab, err := LoadAffixFile(writeFile(t, "suffixes: [ly]\n"))
	require.NoError(t, err)
	assert.Empty(t, vocab.Prefixes())
	assert.Equal(t, []string{"ly"}, vocab.Suffixes())
}

func TestLoadAffixFile_Errors(t *testing.T) {
	_, err := LoadAffixFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadAffixFile(writeFile(t, "prefixes: [un\n"))
	assert.Error(t, err)

	_, err = LoadAffixFile(writeFile(t, "prefixes: []\n"))
	assert.Error(t, err)
}
