// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package validation provides input validation for words submitted to the
// analysis API.
//
// A word is accepted only when it is non-empty and made entirely of letters.
// Letters are Unicode letters, so "café" passes while "abc123", "don't"
// and "two words" do not.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalidWord is wrapped by every validation failure.
var ErrInvalidWord = errors.New("invalid word")

// NormalizeWord trims surrounding whitespace and lowercases word.
func NormalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// ValidateWord checks that word is non-empty and purely alphabetic.
//
// Returns an error wrapping ErrInvalidWord if the word is invalid.
//
// Example:
//
//	if err := validation.ValidateWord(word); err != nil {
//	    c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid word."})
//	    return
//	}
func ValidateWord(word string) error {
	if word == "" {
		return fmt.Errorf("%w: empty", ErrInvalidWord)
	}
	for i, r := range word {
		if !unicode.IsLetter(r) {
			return fmt.Errorf("%w: %q has non-letter %q at byte %d", ErrInvalidWord, word, r, i)
		}
	}
	return nil
}

// SanitizeWord normalizes and validates a word.
// Returns the normalized word if valid, or an error if invalid.
//
// Use this when you need both validation and normalization:
//
//	word, err := validation.SanitizeWord(req.Word)
//	if err != nil {
//	    return err
//	}
//	// word is trimmed, lowercase and alphabetic
func SanitizeWord(word string) (string, error) {
	normalized := NormalizeWord(word)
	if err := ValidateWord(normalized); err != nil {
		return "", err
	}
	return normalized, nil
}
