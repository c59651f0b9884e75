// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/wordscope/pkg/ux"
	"github.com/AleutianAI/wordscope/pkg/validation"
	"github.com/AleutianAI/wordscope/services/wordscope/affix"
	"github.com/AleutianAI/wordscope/services/wordscope/config"
	"github.com/AleutianAI/wordscope/services/wordscope/dictionary"
)

// errInvalidWord is printed verbatim by cobra as "Error: Invalid word.".
var errInvalidWord = errors.New("Invalid word.")

// loadDecomposer builds a decomposer from the global flags.
func loadDecomposer(opts *cliOptions) (*affix.Decomposer, error) {
	dict, err := dictionary.New(dictionary.WithCountThreshold(opts.threshold))
	if err != nil {
		return nil, err
	}
	if opts.dictionaryPath != "" {
		_, err = dict.LoadFile(opts.dictionaryPath)
	} else {
		_, err = dict.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	vocab, err := config.LoadAffixFile(opts.affixFile)
	if err != nil {
		return nil, err
	}
	return affix.NewDecomposer(vocab, dict)
}

// newPrinter returns a styled printer for terminals and a plain one for
// pipes and files.
func newPrinter(w io.Writer) *ux.Printer {
	plain := true
	if f, ok := w.(*os.File); ok {
		fd := f.Fd()
		plain = !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
	}
	return ux.NewPrinter(w, plain)
}

// decomposeResult is one line of `decompose --json` output.
type decomposeResult struct {
	Word      string        `json:"word"`
	AffixInfo []affix.Match `json:"affix_info"`
}

func runDecompose(cmd *cobra.Command, opts *cliOptions, args []string) error {
	words := make([]string, 0, len(args))
	for _, arg := range args {
		word, err := validation.SanitizeWord(arg)
		if err != nil {
			return fmt.Errorf("%w (%q)", errInvalidWord, arg)
		}
		words = append(words, word)
	}

	d, err := loadDecomposer(opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		enc := json.NewEncoder(out)
		for _, word := range words {
			if err := enc.Encode(decomposeResult{Word: word, AffixInfo: d.Decompose(word)}); err != nil {
				return err
			}
		}
		return nil
	}

	p := newPrinter(out)
	for _, word := range words {
		printDecomposition(p, word, d.Decompose(word))
	}
	return nil
}

func printDecomposition(p *ux.Printer, word string, matches []affix.Match) {
	p.Field("word", word)
	if len(matches) == 1 && matches[0].IsNone() {
		p.Warning(matches[0].Message)
		return
	}

	var prefix, suffix string
	root := word
	for _, m := range matches {
		switch m.Kind {
		case affix.KindPrefix:
			prefix = m.Affix
			p.Field("prefix", m.Affix+" "+string(ux.IconArrow)+" "+m.Root)
		case affix.KindSuffix:
			suffix = m.Affix
			p.Field("suffix", m.Affix+" "+string(ux.IconArrow)+" "+m.Root)
		}
		root = m.Root
	}
	p.Success(ux.Segments(prefix, root, suffix))
}

func runRelated(cmd *cobra.Command, opts *cliOptions, arg string) error {
	word, err := validation.SanitizeWord(arg)
	if err != nil {
		return fmt.Errorf("%w (%q)", errInvalidWord, arg)
	}

	d, err := loadDecomposer(opts)
	if err != nil {
		return err
	}
	related := d.Related(word)

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		return json.NewEncoder(out).Encode(related)
	}

	p := newPrinter(out)
	p.Field("word", word)
	p.List("prefixes", related.Prefixes)
	p.List("suffixes", related.Suffixes)
	return nil
}

func runAffixes(cmd *cobra.Command, opts *cliOptions) error {
	vocab, err := config.LoadAffixFile(opts.affixFile)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		return json.NewEncoder(out).Encode(config.AffixFile{
			Prefixes: vocab.Prefixes(),
			Suffixes: vocab.Suffixes(),
		})
	}

	p := newPrinter(out)
	p.Box("Prefixes", fmt.Sprintf("%d: %v", len(vocab.Prefixes()), vocab.Prefixes()))
	p.Box("Suffixes", fmt.Sprintf("%d: %v", len(vocab.Suffixes()), vocab.Suffixes()))
	return nil
}
