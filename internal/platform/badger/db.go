// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package badger opens the embedded key-value database used by the
// single-node revocation backend.
package badger

import (
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// Open opens (or creates) a Badger database at path.
//
// An empty path opens an in-memory database, which loses all data on exit.
func Open(path string, logger *slog.Logger) (*badger.DB, error) {
	options := badger.DefaultOptions(path).
		WithLogger(&slogAdapter{logger: logger.With(slog.String("component", "badger"))})

	if path == "" {
		options = options.WithInMemory(true)
	}

	db, err := badger.Open(options)
	if err != nil {
		return nil, fmt.Errorf("badger: failed to open database at %q: %w", path, err)
	}

	logger.Info("badger database opened", slog.String("path", path), slog.Bool("in_memory", path == ""))
	return db, nil
}

// slogAdapter bridges badger.Logger onto slog.
type slogAdapter struct {
	logger *slog.Logger
}

// Errorf implements badger.Logger.
func (adapter *slogAdapter) Errorf(format string, args ...any) {
	adapter.logger.Error(fmt.Sprintf(format, args...))
}

// Warningf implements badger.Logger.
func (adapter *slogAdapter) Warningf(format string, args ...any) {
	adapter.logger.Warn(fmt.Sprintf(format, args...))
}

// Infof implements badger.Logger. Badger is chatty at info level, so it is demoted.
func (adapter *slogAdapter) Infof(format string, args ...any) {
	adapter.logger.Debug(fmt.Sprintf(format, args...))
}

// Debugf implements badger.Logger.
func (adapter *slogAdapter) Debugf(format string, args ...any) {
	adapter.logger.Debug(fmt.Sprintf(format, args...))
}

var _ badger.Logger = (*slogAdapter)(nil)
