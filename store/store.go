// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/poll-bot/cliparse"
	"github.com/danielhkuo/poll-bot/models"
)

// Store reads and writes the whole poll collection as one document
type Store interface {
	// Load returns an empty collection when no document has been saved yet
	Load(ctx context.Context) (models.PollCollection, error)
	Save(ctx context.Context, polls models.PollCollection) error
	Close() error
}

// Open creates the store selected by the config
func Open(ctx context.Context, cfg cliparse.Config) (Store, error) {
	switch cfg.StoreType {
	case cliparse.StoreFile:
		return NewFileStore(cfg.StoreURL), nil
	case cliparse.StoreSQLite, cliparse.StorePostgres:
		return OpenSQLStore(ctx, cfg.StoreType, cfg.StoreURL)
	case cliparse.StoreRedis:
		return OpenRedisStore(ctx, cfg.StoreURL)
	case cliparse.StoreS3:
		return OpenS3Store(ctx, S3Config{
			URL:       cfg.StoreURL,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	default:
		return nil, fmt.Errorf("unknown store type %q", cfg.StoreType)
	}
}

// Encode renders the collection the way it is persisted: tab-indented JSON.
// Map keys are sorted, so encoding a decoded document gives the same bytes.
func Encode(polls models.PollCollection) ([]byte, error) {
	if polls == nil {
		polls = models.PollCollection{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	// Names and mentions like A&W or <@id> are stored as written
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "\t")
	if err := enc.Encode(polls); err != nil {
		return nil, fmt.Errorf("failed to encode polls: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Decode parses a persisted document. Empty or unparseable documents yield an
// empty collection; the parse error is logged and dropped.
func Decode(data []byte, source string) models.PollCollection {
	polls := models.PollCollection{}
	if len(bytes.TrimSpace(data)) == 0 {
		return polls
	}
	if err := json.Unmarshal(data, &polls); err != nil {
		slog.Warn("poll document unreadable, starting empty", "source", source, "error", err)
		return models.PollCollection{}
	}
	if polls == nil {
		// document was the JSON literal null
		return models.PollCollection{}
	}
	return polls
}
