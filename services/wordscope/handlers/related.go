// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"github.com/AleutianAI/wordscope/services/wordscope/affix"
)

// HandleRelated serves POST /related.
//
// Responds 200 {"prefixes": [...], "suffixes": [...]} with both lists
// sorted and never null. The word is validated like /analyze.
func HandleRelated(d *affix.Decomposer) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracer.Start(c.Request.Context(), "HandleRelated")
		defer span.End()

		word, ok := bindWord(c)
		if !ok {
			return
		}

		related := d.Related(word)
		span.SetAttributes(
			attribute.Int("related.prefixes", len(related.Prefixes)),
			attribute.Int("related.suffixes", len(related.Suffixes)),
		)
		c.JSON(http.StatusOK, related)
	}
}

// HandleAffixes serves GET /affixes with the vocabulary in declaration
// order.
func HandleAffixes(vocab affix.Vocabulary) gin.HandlerFunc {
	body := gin.H{
		"prefixes": vocab.Prefixes(),
		"suffixes": vocab.Suffixes(),
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, body)
	}
}
