// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/wordscope/services/wordscope/affix"
)

// runCLI executes a fresh root command and returns its stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// =============================================================================
// decompose
// =============================================================================

func TestDecompose_JSON(t *testing.T) {
	out, err := runCLI(t, "decompose", "--json", "Unhappy", "running")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)

	var first decomposeResult
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "unhappy", first.Word)
	assert.Equal(t, []affix.Match{{Kind: affix.KindPrefix, Affix: "un", Root: "happy"}}, first.AffixInfo)

	var second decomposeResult
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	require.Len(t, second.AffixInfo, 1)
	assert.True(t, second.AffixInfo[0].IsNone())
}

func TestDecompose_PlainOutput(t *testing.T) {
	out, err := runCLI(t, "decompose", "unhappy", "happy")
	require.NoError(t, err)

	assert.Contains(t, out, "word\tunhappy\n")
	assert.Contains(t, out, "prefix\tun")
	assert.Contains(t, out, "OK: ")
	assert.Contains(t, out, "word\thappy\n")
	assert.Contains(t, out, "WARN: "+affix.NoMatchMessage)
}

func TestDecompose_InvalidWord(t *testing.T) {
	out, err := runCLI(t, "decompose", "123abc")
	require.Error(t, err)
	assert.ErrorIs(t, err, errInvalidWord)
	assert.Contains(t, err.Error(), "Invalid word.")
	assert.Empty(t, out)
}

func TestDecompose_RequiresArgument(t *testing.T) {
	_, err := runCLI(t, "decompose")
	assert.Error(t, err)
}

func TestDecompose_CustomDictionary(t *testing.T) {
	dict := writeFile(t, "words.txt", "kind 10\nkindness 4\n")

	out, err := runCLI(t, "--dictionary", dict, "--json", "decompose", "unkindness")
	require.NoError(t, err)

	var got decomposeResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []affix.Match{
		{Kind: affix.KindPrefix, Affix: "un", Root: "kindness"},
		{Kind: affix.KindSuffix, Affix: "ness", Root: "kind"},
	}, got.AffixInfo)
}

func TestDecompose_ThresholdHidesRareWords(t *testing.T) {
	dict := writeFile(t, "words.txt", "happy 2\n")

	out, err := runCLI(t, "--dictionary", dict, "--threshold", "5", "--json", "decompose", "unhappy")
	require.NoError(t, err)

	var got decomposeResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.AffixInfo, 1)
	assert.True(t, got.AffixInfo[0].IsNone())
}

func TestDecompose_MissingDictionary(t *testing.T) {
	_, err := runCLI(t, "--dictionary", filepath.Join(t.TempDir(), "nope.txt"), "decompose", "unhappy")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// =============================================================================
// related
// =============================================================================

func TestRelated_JSON(t *testing.T) {
	out, err := runCLI(t, "related", "--json", "happy")
	require.NoError(t, err)
	assert.JSONEq(t, `{"prefixes":["unhappy"],"suffixes":[]}`, out)
}

func TestRelated_PlainOutput(t *testing.T) {
	dict := writeFile(t, "words.txt", "do\nundo\nredo\ndoer\n")

	out, err := runCLI(t, "--dictionary", dict, "related", "do")
	require.NoError(t, err)
	assert.Equal(t, "word\tdo\nprefixes\tredo undo\nsuffixes\tdoer\n", out)
}

func TestRelated_InvalidWord(t *testing.T) {
	_, err := runCLI(t, "related", "well-known")
	assert.ErrorIs(t, err, errInvalidWord)
}

func TestRelated_ExactlyOneArgument(t *testing.T) {
	_, err := runCLI(t, "related", "happy", "kind")
	assert.Error(t, err)
}

// =============================================================================
// affixes
// =============================================================================

func TestAffixes_DefaultJSON(t *testing.T) {
	out, err := runCLI(t, "affixes", "--json")
	require.NoError(t, err)

	var got struct {
		Prefixes []string `json:"prefixes"`
		Suffixes []string `json:"suffixes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, affix.DefaultVocabulary().Prefixes(), got.Prefixes)
	assert.Equal(t, affix.DefaultVocabulary().Suffixes(), got.Suffixes)
}

func TestAffixes_FromFile(t *testing.T) {
	path := writeFile(t, "affixes.yaml", "prefixes: [un, re]\nsuffixes: [ly]\n")

	out, err := runCLI(t, "--affix-file", path, "affixes")
	require.NoError(t, err)
	assert.Equal(t, "Prefixes: 2: [un re]\nSuffixes: 1: [ly]\n", out)
}

func TestAffixes_BadFile(t *testing.T) {
	path := writeFile(t, "affixes.yaml", "prefixes: []\nsuffixes: []\n")

	_, err := runCLI(t, "--affix-file", path, "affixes")
	assert.Error(t, err)
}
