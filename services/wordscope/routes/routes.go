// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AleutianAI/wordscope/services/wordscope/handlers"
	"github.com/AleutianAI/wordscope/services/wordscope/middleware"
)

// Options carries what SetupRoutes needs beyond the handler collaborators.
type Options struct {
	// AllowedOrigins for CORS. Empty means "*".
	AllowedOrigins []string

	// Logger for access logs. Default: slog.Default()
	Logger *slog.Logger

	// Gatherer backs /metrics. Default: prometheus.DefaultGatherer
	Gatherer prometheus.Gatherer
}

// SetupRoutes installs middleware and registers every endpoint.
func SetupRoutes(router *gin.Engine, deps handlers.Deps, opts Options) {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	router.Use(
		middleware.RequestID(),
		middleware.CORS(origins),
		middleware.RequestLogger(opts.Logger, deps.Metrics),
	)

	router.GET("/", handlers.Index)
	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	router.GET("/affixes", handlers.HandleAffixes(deps.Decomposer.Vocabulary()))
	router.POST("/analyze", handlers.HandleAnalyze(deps))
	router.POST("/related", handlers.HandleRelated(deps.Decomposer))
}
