// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package handlers implements the wordscope HTTP endpoints.
//
// # Description
//
// Each exported Handle* function returns a gin.HandlerFunc closed over its
// collaborators. Requests carry a JSON body {"word": "..."}; the word is
// trimmed, lowercased and must consist of letters only.
//
// # Error Responses
//
//	400 {"error": "invalid request body"}              body is not JSON
//	413 {"error": "request body too large"}            body exceeds MaxRequestBodyBytes
//	400 {"error": "Invalid word."}                     word empty or not alphabetic
//	502 {"error": "upstream NLP service unavailable"}  collaborator failed
//	503 {"error": "upstream NLP service unavailable"}  grammar service unreachable or rate limited
//
// No partial results are returned when a collaborator fails.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/wordscope/pkg/validation"
	"github.com/AleutianAI/wordscope/services/wordscope/affix"
	"github.com/AleutianAI/wordscope/services/wordscope/grammar"
	"github.com/AleutianAI/wordscope/services/wordscope/observability"
	"github.com/AleutianAI/wordscope/services/wordscope/tagger"
)

var tracer = otel.Tracer("wordscope.handlers")

// Response messages.
const (
	MsgInvalidWord         = "Invalid word."
	MsgInvalidBody         = "invalid request body"
	MsgUpstreamUnavailable = "upstream NLP service unavailable"
	MsgBodyTooLarge        = "request body too large"
)

// MaxRequestBodyBytes caps the JSON body read by /analyze and /related.
const MaxRequestBodyBytes = 4 << 10

// WordRequest is the body of /analyze and /related.
type WordRequest struct {
	Word string `json:"word"`
}

// AnalyzeResponse is the body of a successful /analyze call. Grammar is nil,
// and therefore omitted, when grammar checking is disabled; when enabled it
// points at a possibly empty list.
type AnalyzeResponse struct {
	POSInfo   []tagger.Token        `json:"pos_info"`
	AffixInfo []affix.Match         `json:"affix_info"`
	Grammar   *[]grammar.Suggestion `json:"grammar,omitempty"`
}

// Deps bundles the collaborators shared by the handlers.
type Deps struct {
	Decomposer *affix.Decomposer
	Tagger     tagger.Tokenizer

	// Checker is nil when grammar checking is disabled.
	Checker grammar.Checker

	// Metrics is optional.
	Metrics *observability.Metrics
}

// HandleAnalyze serves POST /analyze.
//
// # Description
//
// Validates the word, then runs the tagger and (if configured) the grammar
// checker concurrently while decomposing the word inline. The first
// collaborator failure cancels the other call and fails the request.
//
// # Outputs
//
//	200 {"pos_info": [...], "affix_info": [...], "grammar": [...]}
func HandleAnalyze(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "HandleAnalyze")
		defer span.End()

		word, ok := bindWord(c)
		if !ok {
			return
		}
		span.SetAttributes(attribute.Int("word.length", len(word)))

		var (
			tokens      []tagger.Token
			suggestions []grammar.Suggestion
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			tokens, err = deps.Tagger.Tag(gctx, word)
			if err != nil {
				return &collaboratorError{who: observability.CollaboratorTagger, err: err}
			}
			return nil
		})
		if deps.Checker != nil {
			g.Go(func() error {
				var err error
				suggestions, err = deps.Checker.Check(gctx, word)
				if err != nil {
					return &collaboratorError{who: observability.CollaboratorGrammar, err: err}
				}
				return nil
			})
		}

		matches := deps.Decomposer.Decompose(word)

		if err := g.Wait(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			respondUpstreamError(c, deps.Metrics, err)
			return
		}

		if deps.Metrics != nil {
			deps.Metrics.RecordMatches(matches)
		}

		resp := AnalyzeResponse{POSInfo: tokens, AffixInfo: matches}
		if resp.POSInfo == nil {
			resp.POSInfo = []tagger.Token{}
		}
		if deps.Checker != nil {
			if suggestions == nil {
				suggestions = []grammar.Suggestion{}
			}
			resp.Grammar = &suggestions
		}
		c.JSON(http.StatusOK, resp)
	}
}

// bindWord parses the request body and sanitizes the word. On failure it
// writes the 400 or 413 response and returns false.
func bindWord(c *gin.Context) (string, bool) {
	var req WordRequest
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxRequestBodyBytes)
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			slog.Warn("Word request body too large", "limit", tooLarge.Limit)
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": MsgBodyTooLarge})
			return "", false
		}
		slog.Warn("Failed to parse word request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": MsgInvalidBody})
		return "", false
	}
	word, err := validation.SanitizeWord(req.Word)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": MsgInvalidWord})
		return "", false
	}
	return word, true
}

// collaboratorError tags an error with the collaborator that produced it.
type collaboratorError struct {
	who observability.Collaborator
	err error
}

func (e *collaboratorError) Error() string { return string(e.who) + ": " + e.err.Error() }
func (e *collaboratorError) Unwrap() error { return e.err }

// respondUpstreamError maps a collaborator failure to 502 or 503.
func respondUpstreamError(c *gin.Context, metrics *observability.Metrics, err error) {
	status := http.StatusBadGateway
	if errors.Is(err, grammar.ErrRateLimited) || errors.Is(err, grammar.ErrUnavailable) {
		status = http.StatusServiceUnavailable
	}

	var ce *collaboratorError
	who := "unknown"
	if errors.As(err, &ce) {
		who = string(ce.who)
		if metrics != nil {
			metrics.RecordUpstreamError(ce.who)
		}
	}
	slog.Error("NLP collaborator failed", "collaborator", who, "status", status, "error", err)
	c.JSON(status, gin.H{"error": MsgUpstreamUnavailable})
}
