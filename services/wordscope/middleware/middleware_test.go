// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/wordscope/services/wordscope/observability"
)

// =============================================================================
// Test Setup
// =============================================================================

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(mw...)
	router.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": GetRequestID(c)})
	})
	router.POST("/bad", func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid word."})
	})
	return router
}

func do(router *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// =============================================================================
// RequestID Tests
// =============================================================================

func TestRequestID_Generated(t *testing.T) {
	w := do(newRouter(RequestID()), "GET", "/ok", nil)

	id := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, id, body["request_id"])
}

func TestRequestID_Propagated(t *testing.T) {
	w := do(newRouter(RequestID()), "GET", "/ok", map[string]string{RequestIDHeader: "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRequestID_OversizedReplaced(t *testing.T) {
	long := strings.Repeat("x", maxRequestIDLength+1)
	w := do(newRouter(RequestID()), "GET", "/ok", map[string]string{RequestIDHeader: long})
	assert.NotEqual(t, long, w.Header().Get(RequestIDHeader))
}

func TestGetRequestID_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, "", GetRequestID(c))
}

// =============================================================================
// CORS Tests
// =============================================================================

func TestCORS_Wildcard(t *testing.T) {
	w := do(newRouter(CORS([]string{"*"})), "GET", "/ok", map[string]string{"Origin": "https://any.example"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_AllowListMatch(t *testing.T) {
	router := newRouter(CORS([]string{"https://app.example"}))

	w := do(router, "GET", "/ok", map[string]string{"Origin": "https://app.example"})
	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", w.Header().Get("Vary"))

	w = do(router, "GET", "/ok", map[string]string{"Origin": "https://evil.example"})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_NoOriginNoHeaders(t *testing.T) {
	w := do(newRouter(CORS([]string{"*"})), "GET", "/ok", nil)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	w := do(newRouter(CORS([]string{"*"})), "OPTIONS", "/bad", map[string]string{
		"Origin":                        "https://any.example",
		"Access-Control-Request-Method": "POST",
	})

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
	assert.Empty(t, w.Body.String())
}

// =============================================================================
// RequestLogger Tests
// =============================================================================

func TestRequestLogger_LogsAndRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	router := newRouter(RequestID(), RequestLogger(logger, metrics))

	do(router, "GET", "/ok", map[string]string{RequestIDHeader: "req-1"})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "request", line["msg"])
	assert.Equal(t, "INFO", line["level"])
	assert.Equal(t, "/ok", line["route"])
	assert.Equal(t, float64(200), line["status"])
	assert.Equal(t, "req-1", line["request_id"])

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("/ok", "200")))
}

func TestRequestLogger_ClientErrorLoggedAsWarn(t *testing.T) {
	var buf bytes.Buffer
	router := newRouter(RequestLogger(slog.New(slog.NewJSONHandler(&buf, nil)), nil))

	do(router, "POST", "/bad", nil)

	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), `"status":400`)
}

func TestRequestLogger_UnmatchedRoute(t *testing.T) {
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	router := newRouter(RequestLogger(slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil)), metrics))

	w := do(router, "GET", "/nope/123", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("unmatched", "404")))
}
