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
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// DefaultCacheTTL is how long a cached result stays valid.
const DefaultCacheTTL = time.Hour

// CacheConfig configures a CachedChecker.
type CacheConfig struct {
	// TTL for cached results. Default: DefaultCacheTTL
	TTL time.Duration

	// Namespace is mixed into cache keys, typically the language code.
	Namespace string

	// Logger receives badger internals at debug level and cache faults at
	// warn level. Optional.
	Logger *slog.Logger
}

// CachedChecker memoizes a Checker in an in-memory BadgerDB.
//
// # Description
//
// Results are keyed by SHA-256 of namespace and text and expire after TTL.
// Cache failures never fail a check: they are logged and the inner
// Checker is consulted directly. Errors from the inner Checker are not
// cached.
//
// # Thread Safety
//
// Safe for concurrent use.
type CachedChecker struct {
	inner     Checker
	db        *badger.DB
	ttl       time.Duration
	namespace string
	logger    *slog.Logger
}

// NewCachedChecker opens an in-memory cache in front of inner.
//
// # Outputs
//
//   - *CachedChecker: Ready for use. Call Close when done.
//   - error: Non-nil if inner is nil or the database cannot be opened.
func NewCachedChecker(inner Checker, cfg CacheConfig) (*CachedChecker, error) {
	if inner == nil {
		return nil, errors.New("grammar: inner checker must not be nil")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultCacheTTL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	opts := badger.DefaultOptions("").WithInMemory(true)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger cache: %w", err)
	}

	return &CachedChecker{
		inner:     inner,
		db:        db,
		ttl:       cfg.TTL,
		namespace: cfg.Namespace,
		logger:    logger,
	}, nil
}

// Check implements Checker.
func (c *CachedChecker) Check(ctx context.Context, text string) ([]Suggestion, error) {
	key := c.key(text)

	if cached, ok := c.get(key); ok {
		return cached, nil
	}

	suggestions, err := c.inner.Check(ctx, text)
	if err != nil {
		return nil, err
	}
	c.put(key, suggestions)
	return suggestions, nil
}

// Close releases the underlying database.
func (c *CachedChecker) Close() error {
	return c.db.Close()
}

func (c *CachedChecker) key(text string) []byte {
	sum := sha256.Sum256([]byte(c.namespace + "\x00" + text))
	return []byte("grammar:" + hex.EncodeToString(sum[:]))
}

func (c *CachedChecker) get(key []byte) ([]Suggestion, bool) {
	var suggestions []Suggestion
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &suggestions)
		})
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			c.logger.Warn("grammar cache read failed", "error", err)
		}
		return nil, false
	}
	if suggestions == nil {
		suggestions = []Suggestion{}
	}
	return suggestions, true
}

func (c *CachedChecker) put(key []byte, suggestions []Suggestion) {
	val, err := json.Marshal(suggestions)
	if err != nil {
		c.logger.Warn("grammar cache encode failed", "error", err)
		return
	}
	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(key, val).WithTTL(c.ttl))
	})
	if err != nil {
		c.logger.Warn("grammar cache write failed", "error", err)
	}
}

var _ Checker = (*CachedChecker)(nil)

// badgerLogger adapts slog.Logger to badger.Logger.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
