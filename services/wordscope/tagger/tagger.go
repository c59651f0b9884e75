// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package tagger wraps part-of-speech tagging behind the Tokenizer interface.
//
// # Description
//
// Each token carries two tags: the fine-grained Penn Treebank tag ("NNS",
// "VBG") and the coarse Universal POS tag ("NOUN", "VERB") derived from it.
//
// # Thread Safety
//
// ProseTagger holds no state and is safe for concurrent use.
package tagger

import (
	"context"
	"errors"
	"fmt"

	"github.com/jdkato/prose/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("wordscope.tagger")

// ErrTagger is wrapped by every tagging failure.
var ErrTagger = errors.New("tagger failed")

// Token is one tagged token.
type Token struct {
	Word string `json:"word"`
	POS  string `json:"pos"`
	Tag  string `json:"tag"`
}

// Tokenizer splits text into tokens and tags each one.
type Tokenizer interface {
	Tag(ctx context.Context, text string) ([]Token, error)
}

// ProseTagger tags text with the prose averaged-perceptron model.
type ProseTagger struct{}

// NewProseTagger creates a ProseTagger.
func NewProseTagger() *ProseTagger {
	return &ProseTagger{}
}

// Tag implements Tokenizer.
//
// # Outputs
//
//   - []Token: Tokens in input order; empty (not nil) for empty text.
//   - error: Wraps ErrTagger when the model fails or ctx is done.
func (p *ProseTagger) Tag(ctx context.Context, text string) ([]Token, error) {
	_, span := tracer.Start(ctx, "ProseTagger.Tag")
	defer span.End()

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: %w", ErrTagger, err)
	}

	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithExtraction(false))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: %w", ErrTagger, err)
	}

	proseTokens := doc.Tokens()
	tokens := make([]Token, 0, len(proseTokens))
	for _, tok := range proseTokens {
		tokens = append(tokens, Token{
			Word: tok.Text,
			POS:  UniversalPOS(tok.Tag),
			Tag:  tok.Tag,
		})
	}
	span.SetAttributes(attribute.Int("tagger.tokens", len(tokens)))
	return tokens, nil
}

var _ Tokenizer = (*ProseTagger)(nil)
