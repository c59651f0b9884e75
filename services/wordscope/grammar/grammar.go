// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package grammar provides grammar-checking collaborators.
//
// # Description
//
// The Checker interface hides the grammar service. Three implementations
// are provided:
//
//   - LanguageToolClient: calls a LanguageTool server over HTTP
//   - CachedChecker: memoizes another Checker in an in-memory BadgerDB
//   - NopChecker: returns no suggestions (grammar checking disabled)
//
// # Errors
//
// Failures wrap one of three sentinels, inspected with errors.Is:
//
//   - ErrUnavailable: the service could not be reached
//   - ErrRateLimited: the client-side limit or the server refused the call
//   - ErrBadResponse: the service answered with an error status or a body
//     that could not be parsed
package grammar

import (
	"context"
	"errors"
)

var (
	// ErrUnavailable is wrapped when the grammar service cannot be reached.
	ErrUnavailable = errors.New("grammar service unavailable")

	// ErrBadResponse is wrapped when the service answers but not usefully.
	ErrBadResponse = errors.New("grammar service returned a bad response")

	// ErrRateLimited is wrapped when the client-side rate limit is exhausted.
	ErrRateLimited = errors.New("grammar service rate limited")
)

// Suggestion is one grammar or style issue found in the checked text.
type Suggestion struct {
	Message      string   `json:"message"`
	Replacements []string `json:"replacements"`
	Offset       int      `json:"offset"`
	ErrorLength  int      `json:"errorLength"`
	Context      string   `json:"context"`
	Sentence     string   `json:"sentence"`
}

// Checker checks text and returns suggestions.
type Checker interface {
	Check(ctx context.Context, text string) ([]Suggestion, error)
}

// NopChecker never finds anything.
type NopChecker struct{}

// Check returns an empty, non-nil slice.
func (NopChecker) Check(context.Context, string) ([]Suggestion, error) {
	return []Suggestion{}, nil
}

var _ Checker = NopChecker{}
