// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package dictionary provides the word-membership oracle used by affix
// decomposition.
//
// # Description
//
// A Dictionary is loaded from a frequency list: one term per line, followed
// by an optional count ("happy 51"). Terms whose accumulated count stays
// below the configured threshold are held back and never reported as known.
// Plain word lists (one field per line) are accepted with a count of 1, and
// lines starting with '#' are comments.
//
// The embedded default list holds real corpus counts (see the header of
// data/en_common.txt); SymSpell's frequency_dictionary_en_82_765.txt loads
// unchanged through LoadFile.
//
// # Thread Safety
//
// Loading is not safe to run concurrently with lookups. Once loading is
// finished the Dictionary is read-only and Known/Count may be called from
// any number of goroutines.
package dictionary

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

//go:embed data/en_common.txt
var defaultWordList string

const maxUint32 = ^uint32(0)

// ErrEmptyPath is returned by LoadFile when no path is given.
var ErrEmptyPath = errors.New("dictionary: path cannot be empty")

// Options configures a Dictionary.
type Options struct {
	// CountThreshold is the minimum accumulated count for a term to be
	// admitted. Default: 1
	CountThreshold uint32
}

// Option mutates Options.
type Option func(*Options)

// WithCountThreshold sets the admission threshold.
func WithCountThreshold(threshold uint32) Option {
	return func(o *Options) { o.CountThreshold = threshold }
}

// Dictionary is a frequency-weighted set of known words.
type Dictionary struct {
	opts Options

	words       map[string]uint32
	belowThresh map[string]uint32
}

// New creates an empty Dictionary.
//
// # Outputs
//
//   - *Dictionary: Empty dictionary; load it with Load, LoadFile or LoadDefault.
//   - error: Non-nil when the options are invalid (threshold of 0).
func New(opts ...Option) (*Dictionary, error) {
	o := Options{CountThreshold: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.CountThreshold == 0 {
		return nil, errors.New("dictionary: count threshold must be at least 1")
	}
	return &Dictionary{
		opts:        o,
		words:       make(map[string]uint32),
		belowThresh: make(map[string]uint32),
	}, nil
}

// Load reads term/count lines from r.
//
// # Description
//
// Terms are lowercased. Blank lines, comments, lines with an unparsable
// count and zero counts are skipped. Counts saturate at the uint32 maximum,
// both when parsed and when repeated terms accumulate.
//
// # Outputs
//
//   - int: Number of terms newly admitted by this call.
//   - error: Read error from r, if any.
func (d *Dictionary) Load(r io.Reader) (int, error) {
	added := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		term, count, ok := d.parseLine(scanner.Text())
		if !ok {
			continue
		}
		if d.addEntry(term, count) {
			added++
		}
	}
	if err := scanner.Err(); err != nil {
		return added, fmt.Errorf("dictionary: read: %w", err)
	}
	return added, nil
}

// LoadFile reads a frequency list from disk.
func (d *Dictionary) LoadFile(path string) (int, error) {
	if path == "" {
		return 0, ErrEmptyPath
	}
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("dictionary: open %s: %w", path, err)
	}
	defer file.Close()
	return d.Load(file)
}

// LoadDefault loads the embedded English word list.
func (d *Dictionary) LoadDefault() (int, error) {
	return d.Load(strings.NewReader(defaultWordList))
}

// Known reports whether word is an admitted term. Lookup is case-insensitive.
func (d *Dictionary) Known(word string) bool {
	_, ok := d.words[strings.ToLower(word)]
	return ok
}

func (d *Dictionary) parseLine(line string) (string, uint32, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", 0, false
	}
	fields := strings.Fields(line)
	term := strings.ToLower(fields[0])
	if len(fields) == 1 {
		return term, 1, true
	}
	c, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil || c == 0 {
		return "", 0, false
	}
	if c > uint64(maxUint32) {
		return term, maxUint32, true
	}
	return term, uint32(c), true
}

// addEntry admits or accumulates a term. It returns true only when the term
// is admitted for the first time.
func (d *Dictionary) addEntry(term string, count uint32) bool {
	if prev, ok := d.words[term]; ok {
		d.words[term] = incrementCount(count, prev)
		return false
	}
	if prev, ok := d.belowThresh[term]; ok {
		count = incrementCount(count, prev)
		delete(d.belowThresh, term)
	}
	if count < d.opts.CountThreshold {
		d.belowThresh[term] = count
		return false
	}
	d.words[term] = count
	return true
}

func incrementCount(count, previous uint32) uint32 {
	if maxUint32-previous > count {
		return previous + count
	}
	return maxUint32
}
