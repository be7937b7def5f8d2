// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/poll-bot/cliparse"
	"github.com/danielhkuo/poll-bot/db"
	"github.com/danielhkuo/poll-bot/models"
)

// SQLStore keeps the poll document in one row of the poll_document table
type SQLStore struct {
	db         *sql.DB
	selectStmt string
	upsertStmt string
}

// OpenSQLStore connects to SQLite or PostgreSQL and creates the schema
func OpenSQLStore(ctx context.Context, storeType, dsn string) (*SQLStore, error) {
	driver := "sqlite"
	if storeType == cliparse.StorePostgres {
		driver = "postgres"
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	s, err := NewSQLStore(ctx, conn, storeType)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLStore wraps an open connection. The store owns conn from here on.
func NewSQLStore(ctx context.Context, conn *sql.DB, storeType string) (*SQLStore, error) {
	if err := db.CreateSchema(ctx, conn); err != nil {
		return nil, err
	}

	// lib/pq only understands $n placeholders
	p1, p2, p3 := "?", "?", "?"
	if storeType == cliparse.StorePostgres {
		p1, p2, p3 = "$1", "$2", "$3"
	}

	return &SQLStore{
		db:         conn,
		selectStmt: "SELECT body FROM poll_document WHERE id = " + p1,
		upsertStmt: fmt.Sprintf(`
			INSERT INTO poll_document (id, body, updated_at)
			VALUES (%s, %s, %s)
			ON CONFLICT (id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
		`, p1, p2, p3),
	}, nil
}

func (s *SQLStore) Load(ctx context.Context) (models.PollCollection, error) {
	var body string
	err := s.db.QueryRowContext(ctx, s.selectStmt, db.DocumentID).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PollCollection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query poll document: %w", err)
	}

	return Decode([]byte(body), "poll_document"), nil
}

func (s *SQLStore) Save(ctx context.Context, polls models.PollCollection) error {
	data, err := Encode(polls)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, s.upsertStmt, db.DocumentID, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save poll document: %w", err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
