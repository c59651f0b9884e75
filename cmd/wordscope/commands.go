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
	"github.com/spf13/cobra"
)

// cliOptions holds the global flags.
type cliOptions struct {
	dictionaryPath string
	affixFile      string
	threshold      uint32
	jsonOutput     bool
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:   "wordscope",
		Short: "Explore the prefix/root/suffix structure of English words",
		Long: `wordscope splits words into prefix, root and suffix using a fixed
affix vocabulary and a frequency dictionary, and lists words formed by
adding affixes to a root.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.dictionaryPath, "dictionary", "",
		"Frequency dictionary file (\"word count\" per line). Default: embedded English list")
	rootCmd.PersistentFlags().StringVar(&opts.affixFile, "affix-file", "",
		"YAML affix vocabulary {prefixes: [...], suffixes: [...]}. Default: built-in lists")
	rootCmd.PersistentFlags().Uint32Var(&opts.threshold, "threshold", 1,
		"Minimum dictionary count for a word to be known")
	rootCmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false,
		"Print JSON in the HTTP API's format")

	decomposeCmd := &cobra.Command{
		Use:     "decompose <word>...",
		Short:   "Split each word into prefix, root and suffix",
		Aliases: []string{"d"},
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecompose(cmd, opts, args)
		},
	}

	relatedCmd := &cobra.Command{
		Use:     "related <word>",
		Short:   "List dictionary words formed by adding one affix",
		Aliases: []string{"r"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelated(cmd, opts, args[0])
		},
	}

	affixesCmd := &cobra.Command{
		Use:   "affixes",
		Short: "Print the affix vocabulary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAffixes(cmd, opts)
		},
	}

	rootCmd.AddCommand(decomposeCmd, relatedCmd, affixesCmd)
	return rootCmd
}
