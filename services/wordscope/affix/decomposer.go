// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package affix splits words into prefix, root and suffix and synthesizes
// related words from a fixed affix vocabulary.
//
// # Description
//
// Both operations are gated by a dictionary oracle: a strip or a synthesized
// candidate only counts when the resulting string is a known word longer
// than two characters. The package holds no mutable state.
//
//	"unhappiness"
//	   │
//	   ├─► prefix scan (longest first) ──► "un" + "happiness"
//	   │
//	   └─► suffix scan on "happiness"  ──► "ness" leaves "happi": unknown, no strip
//
// # Thread Safety
//
// A Decomposer is safe for concurrent use as long as its SpellOracle is.
package affix

import (
	"errors"
	"sort"
	"strings"
	"unicode/utf8"
)

// MinRootLength is the shortest root a strip or synthesis may produce.
const MinRootLength = 3

// NoMatchMessage is carried by the sentinel record.
const NoMatchMessage = "No meaningful prefix/suffix found"

// ErrNilOracle is returned by NewDecomposer when no oracle is supplied.
var ErrNilOracle = errors.New("affix: spell oracle is nil")

// SpellOracle answers whether a string is a known dictionary word.
type SpellOracle interface {
	Known(word string) bool
}

// OracleFunc adapts a plain function to SpellOracle.
type OracleFunc func(word string) bool

// Known calls f(word).
func (f OracleFunc) Known(word string) bool { return f(word) }

// Kind identifies the type of a Match.
type Kind string

const (
	KindPrefix Kind = "prefix"
	KindSuffix Kind = "suffix"
	KindNone   Kind = "none"
)

// Match is one affix record of a decomposition.
//
// Prefix and suffix records carry Affix and Root. The sentinel record
// (KindNone) carries only Message.
type Match struct {
	Kind    Kind   `json:"type"`
	Affix   string `json:"affix,omitempty"`
	Root    string `json:"root_word,omitempty"`
	Message string `json:"message,omitempty"`
}

// IsNone reports whether m is the sentinel record.
func (m Match) IsNone() bool { return m.Kind == KindNone }

// RelatedWords holds dictionary words built by attaching affixes to a word.
type RelatedWords struct {
	Prefixes []string `json:"prefixes"`
	Suffixes []string `json:"suffixes"`
}

// Decomposer applies a Vocabulary against a SpellOracle.
type Decomposer struct {
	vocab  Vocabulary
	oracle SpellOracle
}

// NewDecomposer creates a Decomposer.
//
// # Inputs
//
//   - vocab: Affix vocabulary. An empty vocabulary is allowed and always
//     yields the sentinel record.
//   - oracle: Dictionary membership check. Must not be nil.
//
// # Outputs
//
//   - *Decomposer: Ready for use.
//   - error: ErrNilOracle when oracle is nil.
func NewDecomposer(vocab Vocabulary, oracle SpellOracle) (*Decomposer, error) {
	if oracle == nil {
		return nil, ErrNilOracle
	}
	return &Decomposer{vocab: vocab, oracle: oracle}, nil
}

// Vocabulary returns the vocabulary the decomposer was built with.
func (d *Decomposer) Vocabulary() Vocabulary {
	return d.vocab
}

// Decompose strips at most one prefix and then at most one suffix from word.
//
// # Description
//
// Prefixes are tried longest first; the first one that is a literal prefix
// of word and leaves a meaningful remainder is recorded and becomes the
// working root. Suffixes are then tried the same way against the working
// root. A remainder is meaningful when it is longer than two characters and
// known to the oracle; a strip that fails either check is never recorded.
//
// A word that is itself a dictionary word but admits no valid strip yields
// the sentinel record like any other word.
//
// # Inputs
//
//   - word: Normalized (lowercase, alphabetic) word. Validation is the
//     caller's job.
//
// # Outputs
//
//   - []Match: Prefix record then suffix record, either optional, or exactly
//     one sentinel record when nothing was stripped. Never empty.
//
// # Examples
//
//	d.Decompose("unhappy")
//	// [{Kind: prefix, Affix: "un", Root: "happy"}]
func (d *Decomposer) Decompose(word string) []Match {
	matches := make([]Match, 0, 2)
	root := word

	for _, pre := range d.vocab.prefixesByLength {
		if !strings.HasPrefix(root, pre) {
			continue
		}
		candidate := root[len(pre):]
		if d.meaningful(candidate) {
			root = candidate
			matches = append(matches, Match{Kind: KindPrefix, Affix: pre, Root: root})
			break
		}
	}

	for _, suf := range d.vocab.suffixesByLength {
		if !strings.HasSuffix(root, suf) {
			continue
		}
		candidate := root[:len(root)-len(suf)]
		if d.meaningful(candidate) {
			root = candidate
			matches = append(matches, Match{Kind: KindSuffix, Affix: suf, Root: root})
			break
		}
	}

	if len(matches) == 0 {
		matches = append(matches, Match{Kind: KindNone, Message: NoMatchMessage})
	}
	return matches
}

// Related finds dictionary words formed by attaching each affix to word.
//
// # Description
//
// Every prefix is tried as prefix+word and every suffix as word+suffix, in
// declaration order. Candidates that are meaningful (known, longer than two
// characters) are kept. No composition of several affixes is attempted.
//
// # Outputs
//
//   - RelatedWords: Deduplicated, ascending sorted. Both slices are non-nil
//     so they serialize as [] rather than null.
func (d *Decomposer) Related(word string) RelatedWords {
	return RelatedWords{
		Prefixes: d.synthesize(d.vocab.prefixes, func(a string) string { return a + word }),
		Suffixes: d.synthesize(d.vocab.suffixes, func(a string) string { return word + a }),
	}
}

func (d *Decomposer) synthesize(affixes []string, join func(string) string) []string {
	seen := make(map[string]struct{})
	for _, a := range affixes {
		candidate := join(a)
		if d.meaningful(candidate) {
			seen[candidate] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for w := range seen {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// meaningful checks length (in characters) before asking the oracle, so
// short remainders never reach it.
func (d *Decomposer) meaningful(s string) bool {
	return utf8.RuneCountInString(s) >= MinRootLength && d.oracle.Known(s)
}
