// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package affix

import (
	"sort"
	"strings"
)

// =============================================================================
// Default Vocabulary
// =============================================================================

// defaultPrefixes is the hand-curated English prefix list, in declaration order.
var defaultPrefixes = []string{
	"un", "re", "pre", "in", "dis", "mis", "im", "ir", "il", "non", "post", "inter",
	"sub", "super", "under", "over", "anti", "auto", "bi", "tri", "mono", "multi",
	"trans", "co", "ex", "pro", "en", "semi", "de",
}

// defaultSuffixes is the hand-curated English suffix list, in declaration order.
var defaultSuffixes = []string{
	"ward", "ive", "en", "y", "ible", "less", "ful", "ous", "al", "ity", "ship", "ence", "ance",
	"sion", "tion", "ment", "ness", "ian", "ist", "or", "er", "able", "ing", "ed", "ly",
}

// =============================================================================
// Vocabulary
// =============================================================================

// Vocabulary is an immutable pair of prefix and suffix lists.
//
// # Description
//
// Holds each list twice: in declaration order (used for synthesis, where
// every candidate is evaluated) and sorted by descending length (used for
// decomposition, where the first valid strip wins and longer affixes must
// be tried before their shorter prefixes, e.g. "inter" before "in").
//
// # Thread Safety
//
// A Vocabulary is never mutated after NewVocabulary returns. Accessors
// return copies, so it is safe to share across goroutines.
type Vocabulary struct {
	prefixes []string
	suffixes []string

	prefixesByLength []string
	suffixesByLength []string
}

// NewVocabulary builds a Vocabulary from the given affix lists.
//
// # Description
//
// Inputs are copied, trimmed and lowercased. Empty entries are dropped and
// duplicates collapse to their first occurrence, so declaration order is
// preserved. The length-descending views use a stable sort: affixes of
// equal length keep their declaration order.
//
// # Inputs
//
//   - prefixes: Prefix particles. May be nil.
//   - suffixes: Suffix particles. May be nil.
//
// # Outputs
//
//   - Vocabulary: Ready-to-use vocabulary.
//
// # Examples
//
//	vocab := affix.NewVocabulary([]string{"un", "re"}, []string{"ly", "ness"})
func NewVocabulary(prefixes, suffixes []string) Vocabulary {
	p := normalizeAffixes(prefixes)
	s := normalizeAffixes(suffixes)
	return Vocabulary{
		prefixes:         p,
		suffixes:         s,
		prefixesByLength: byLengthDesc(p),
		suffixesByLength: byLengthDesc(s),
	}
}

// DefaultVocabulary returns the built-in English vocabulary.
func DefaultVocabulary() Vocabulary {
	return NewVocabulary(defaultPrefixes, defaultSuffixes)
}

// Prefixes returns a copy of the prefixes in declaration order.
func (v Vocabulary) Prefixes() []string {
	return append([]string(nil), v.prefixes...)
}

// Suffixes returns a copy of the suffixes in declaration order.
func (v Vocabulary) Suffixes() []string {
	return append([]string(nil), v.suffixes...)
}

// Empty reports whether the vocabulary holds no affixes at all.
func (v Vocabulary) Empty() bool {
	return len(v.prefixes) == 0 && len(v.suffixes) == 0
}

func normalizeAffixes(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, a := range in {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" {
			continue
		}
		if _, dup := seen[a]; dup {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}

func byLengthDesc(in []string) []string {
	out := append([]string(nil), in...)
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i]) > len(out[j])
	})
	return out
}
