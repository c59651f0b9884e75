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
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/AleutianAI/wordscope/pkg/logging"
	"github.com/AleutianAI/wordscope/services/wordscope/affix"
	"github.com/AleutianAI/wordscope/services/wordscope/config"
	"github.com/AleutianAI/wordscope/services/wordscope/dictionary"
	"github.com/AleutianAI/wordscope/services/wordscope/grammar"
	"github.com/AleutianAI/wordscope/services/wordscope/handlers"
	"github.com/AleutianAI/wordscope/services/wordscope/observability"
	"github.com/AleutianAI/wordscope/services/wordscope/routes"
	"github.com/AleutianAI/wordscope/services/wordscope/tagger"

	// --- OpenTelemetry imports ---
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc"
)

const serviceName = "wordscope-service"

// stdoutEndpoint selects the pretty-printing stdout exporter instead of OTLP.
const stdoutEndpoint = "stdout"

// newSpanExporter returns the exporter for endpoint and a closer for any
// connection it opened.
func newSpanExporter(ctx context.Context, endpoint string) (sdktrace.SpanExporter, func(), error) {
	if endpoint == stdoutEndpoint {
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		return exporter, func() {}, err
	}

	conn, err := grpc.NewClient(endpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, err
	}
	exporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return exporter, func() { _ = conn.Close() }, nil
}

func initTracer(endpoint string) (func(context.Context), error) {
	ctx := context.Background()

	traceExporter, closeConn, err := newSpanExporter(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String(serviceName)))
	if err != nil {
		closeConn()
		return nil, err
	}
	bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp))
	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.
		TraceContext{}, propagation.Baggage{}))

	return func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, time.Second*5)
		defer cancel()
		if err := traceProvider.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown tracer provider", "error", err)
		}
		closeConn()
	}, nil
}

// buildDeps loads the dictionary and vocabulary and constructs the NLP
// collaborators. The returned cleanup releases the grammar cache.
func buildDeps(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) (handlers.Deps, func(), error) {
	noop := func() {}

	dict, err := dictionary.New(dictionary.WithCountThreshold(cfg.DictionaryThreshold))
	if err != nil {
		return handlers.Deps{}, noop, err
	}
	var loaded int
	if cfg.DictionaryPath != "" {
		loaded, err = dict.LoadFile(cfg.DictionaryPath)
	} else {
		loaded, err = dict.LoadDefault()
	}
	if err != nil {
		return handlers.Deps{}, noop, fmt.Errorf("load dictionary: %w", err)
	}
	slog.Info("Dictionary loaded", "terms", loaded, "path", cfg.DictionaryPath)

	vocab, err := config.LoadAffixFile(cfg.AffixFile)
	if err != nil {
		return handlers.Deps{}, noop, err
	}
	decomposer, err := affix.NewDecomposer(vocab, dict)
	if err != nil {
		return handlers.Deps{}, noop, err
	}

	deps := handlers.Deps{
		Decomposer: decomposer,
		Tagger:     tagger.NewProseTagger(),
		Metrics:    metrics,
	}
	if !cfg.GrammarEnabled {
		slog.Info("Grammar checking disabled")
		return deps, noop, nil
	}

	client, err := grammar.NewLanguageToolClient(grammar.LanguageToolConfig{
		BaseURL:           cfg.LanguageToolURL,
		Language:          cfg.Language,
		RequestsPerSecond: cfg.LanguageToolRPS,
	})
	if err != nil {
		return handlers.Deps{}, noop, err
	}
	if cfg.GrammarCacheTTL == 0 {
		deps.Checker = client
		return deps, noop, nil
	}

	cached, err := grammar.NewCachedChecker(client, grammar.CacheConfig{
		TTL:       cfg.GrammarCacheTTL,
		Namespace: client.Language(),
		Logger:    logger,
	})
	if err != nil {
		return handlers.Deps{}, noop, err
	}
	deps.Checker = cached
	return deps, func() {
		if err := cached.Close(); err != nil {
			slog.Error("failed to close grammar cache", "error", err)
		}
	}, nil
}

// newRouter builds the gin engine for cfg.
func newRouter(cfg *config.Config, deps handlers.Deps, logger *slog.Logger, gatherer prometheus.Gatherer) *gin.Engine {
	if cfg.Debug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	routes.SetupRoutes(router, deps, routes.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
		Gatherer:       gatherer,
	})
	return router
}

func main() {
	if err := config.LoadEnvFile(os.Getenv("WORDSCOPE_ENV_FILE")); err != nil {
		log.Fatalf("Failed to load env file: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.New(cfg.LoggingConfig())
	defer logger.Close()
	slog.SetDefault(logger.Slog())

	// --- Init the tracer ---
	if cfg.OTLPEndpoint != "" {
		cleanup, err := initTracer(cfg.OTLPEndpoint)
		if err != nil {
			log.Fatalf("failed to setup the OTLP tracer: %v", err)
		}
		defer cleanup(context.Background())
	} else {
		slog.Info("OTEL_EXPORTER_OTLP_ENDPOINT not set, tracing disabled")
	}

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	deps, closeDeps, err := buildDeps(cfg, metrics, logger.Slog())
	if err != nil {
		slog.Error("Failed to initialize collaborators", "error", err)
		os.Exit(1)
	}
	defer closeDeps()

	router := newRouter(cfg, deps, logger.Slog(), prometheus.DefaultGatherer)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Starting the wordscope server", "addr", srv.Addr,
			"mode", cfg.Mode, "grammar_enabled", cfg.GrammarEnabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
