// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package grammar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

var tracer = otel.Tracer("wordscope.grammar")

// HTTPClient allows injecting a custom HTTP client for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// LanguageToolConfig configures a LanguageToolClient.
type LanguageToolConfig struct {
	// BaseURL is the server root, e.g. "https://api.languagetool.org".
	BaseURL string

	// Language is the LanguageTool language code. Default: "en-US"
	Language string

	// RequestsPerSecond caps outgoing calls. Zero or negative disables
	// the limit.
	RequestsPerSecond float64

	// Burst is the limiter bucket size. Default: 1
	Burst int

	// MaxWait is how long a call may wait for a limiter token before
	// failing with ErrRateLimited. Default: 2s
	MaxWait time.Duration

	// Timeout bounds each HTTP call. Default: 10s
	Timeout time.Duration

	// HTTPClient overrides the default client. Optional.
	HTTPClient HTTPClient
}

// LanguageToolClient checks text against the LanguageTool /v2/check API.
//
// # Thread Safety
//
// Safe for concurrent use. The rate limiter is shared by all callers.
type LanguageToolClient struct {
	httpClient HTTPClient
	checkURL   string
	language   string
	limiter    *rate.Limiter
	maxWait    time.Duration
}

// languageToolResponse mirrors the subset of the /v2/check payload we use.
type languageToolResponse struct {
	Matches []struct {
		Message      string `json:"message"`
		Replacements []struct {
			Value string `json:"value"`
		} `json:"replacements"`
		Offset  int `json:"offset"`
		Length  int `json:"length"`
		Context struct {
			Text string `json:"text"`
		} `json:"context"`
		Sentence string `json:"sentence"`
	} `json:"matches"`
}

// NewLanguageToolClient creates a client.
//
// # Outputs
//
//   - *LanguageToolClient: Ready for use.
//   - error: Non-nil when BaseURL is missing or not an absolute URL.
func NewLanguageToolClient(cfg LanguageToolConfig) (*LanguageToolClient, error) {
	base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("languagetool: invalid base URL %q", cfg.BaseURL)
	}
	if cfg.Language == "" {
		cfg.Language = "en-US"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxWait <= 0 {
		cfg.MaxWait = 2 * time.Second
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	slog.Info("Initializing LanguageTool client",
		"base_url", base.String(), "language", cfg.Language, "rps", cfg.RequestsPerSecond)
	return &LanguageToolClient{
		httpClient: httpClient,
		checkURL:   base.String() + "/v2/check",
		language:   cfg.Language,
		limiter:    rate.NewLimiter(limit, cfg.Burst),
		maxWait:    cfg.MaxWait,
	}, nil
}

// Language returns the configured language code.
func (c *LanguageToolClient) Language() string {
	return c.language
}

// Check implements Checker.
func (c *LanguageToolClient) Check(ctx context.Context, text string) ([]Suggestion, error) {
	ctx, span := tracer.Start(ctx, "LanguageToolClient.Check",
		trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(attribute.String("grammar.language", c.language))

	if err := c.wait(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	form := url.Values{}
	form.Set("text", text)
	form.Set("language", c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.checkURL, strings.NewReader(form.Encode()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: build request: %w", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.Error("LanguageTool API call failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: read response: %w", ErrBadResponse, err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		slog.Warn("LanguageTool rate limited the request")
		err := fmt.Errorf("%w: server returned 429", ErrRateLimited)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	case resp.StatusCode != http.StatusOK:
		slog.Error("LanguageTool returned an error", "status_code", resp.StatusCode, "response", string(body))
		err := fmt.Errorf("%w: status %d", ErrBadResponse, resp.StatusCode)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var parsed languageToolResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: parse response: %w", ErrBadResponse, err)
	}

	suggestions := make([]Suggestion, 0, len(parsed.Matches))
	for _, m := range parsed.Matches {
		replacements := make([]string, 0, len(m.Replacements))
		for _, r := range m.Replacements {
			replacements = append(replacements, r.Value)
		}
		suggestions = append(suggestions, Suggestion{
			Message:      m.Message,
			Replacements: replacements,
			Offset:       m.Offset,
			ErrorLength:  m.Length,
			Context:      m.Context.Text,
			Sentence:     m.Sentence,
		})
	}
	span.SetAttributes(attribute.Int("grammar.suggestions", len(suggestions)))
	return suggestions, nil
}

// wait blocks for a limiter token for at most maxWait.
func (c *LanguageToolClient) wait(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, c.maxWait)
	defer cancel()
	if err := c.limiter.Wait(waitCtx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %w", ErrUnavailable, ctxErr)
		}
		return fmt.Errorf("%w: %w", ErrRateLimited, err)
	}
	return nil
}

var _ Checker = (*LanguageToolClient)(nil)
