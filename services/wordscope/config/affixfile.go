// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/wordscope/services/wordscope/affix"
)

// AffixFile is the YAML layout of a custom vocabulary:
//
//	prefixes: [un, re, pre]
//	suffixes: [ness, ing, ly]
type AffixFile struct {
	Prefixes []string `yaml:"prefixes" json:"prefixes"`
	Suffixes []string `yaml:"suffixes" json:"suffixes"`
}

// LoadAffixFile reads a vocabulary file. An empty path returns the default
// vocabulary.
//
// # Outputs
//
//   - affix.Vocabulary: The parsed vocabulary.
//   - error: Non-nil if the file cannot be read or parsed, or declares no
//     affixes at all.
func LoadAffixFile(path string) (affix.Vocabulary, error) {
	if path == "" {
		return affix.DefaultVocabulary(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return affix.Vocabulary{}, fmt.Errorf("read affix file: %w", err)
	}

	var file AffixFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return affix.Vocabulary{}, fmt.Errorf("parse affix file %s: %w", path, err)
	}

	vocab := affix.NewVocabulary(file.Prefixes, file.Suffixes)
	if vocab.Empty() {
		return affix.Vocabulary{}, errors.New("affix file declares no prefixes or suffixes")
	}
	return vocab, nil
}
