// Package sqlstore persists aggregate records in SQLite or PostgreSQL.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/lib/pq" // Register postgres driver
	"go.uber.org/multierr"
	_ "modernc.org/sqlite" // Register sqlite driver

	"github.com/smottahedi/find-political-donors/internal/core/aggregation"
	"github.com/smottahedi/find-political-donors/internal/core/storage"
	"github.com/smottahedi/find-political-donors/internal/migrations"
)

const (
	DriverSQLite   = migrations.DriverSQLite
	DriverPostgres = migrations.DriverPostgres

	connectPingTimeout = 5 * time.Second
	sqliteParams       = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
)

// Options configures Open.
type Options struct {
	Driver       string
	DSN          string // sqlite file path or postgres connection string
	MaxOpenConns int
	AutoMigrate  bool
}

// Store implements storage.Repository on database/sql.
type Store struct {
	db        *sql.DB
	driver    string
	stmtFetch *sql.Stmt
	queries   map[string]string

	tempDir string // removed on Close when the sqlite database is temporary
}

var _ storage.Repository = (*Store)(nil)

// Open connects to the database, applies migrations and prepares statements.
// An empty sqlite DSN opens a temporary database that Close removes.
func Open(ctx context.Context, opts Options) (*Store, error) {
	var (
		dsn     = opts.DSN
		tempDir string
	)
	switch opts.Driver {
	case DriverSQLite:
		if strings.TrimSpace(dsn) == "" {
			dir, err := os.MkdirTemp("", "donors-store-")
			if err != nil {
				return nil, fmt.Errorf("failed to create temporary store directory: %w", err)
			}
			tempDir = dir
			dsn = filepath.Join(dir, "aggregates.db")
		}
		if !strings.Contains(dsn, "?") {
			dsn = filepath.Clean(dsn) + sqliteParams
		}
	case DriverPostgres:
		if strings.TrimSpace(dsn) == "" {
			return nil, fmt.Errorf("postgres store requires a DSN")
		}
	default:
		return nil, fmt.Errorf("unsupported store driver %q", opts.Driver)
	}

	db, err := sql.Open(opts.Driver, dsn)
	if err != nil {
		removeTemp(tempDir)
		return nil, fmt.Errorf("failed to open %s database: %w", opts.Driver, err)
	}

	maxOpen := opts.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 1
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxOpen)
	db.SetConnMaxLifetime(5 * time.Minute)

	slog.Debug("[Store] Connection pool configured", "driver", opts.Driver, "max_open_conns", maxOpen)

	pingCtx, cancel := context.WithTimeout(ctx, connectPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		removeTemp(tempDir)
		return nil, fmt.Errorf("failed to ping %s database: %w", opts.Driver, err)
	}

	if err := migrations.RunMigrations(db, opts.Driver, opts.AutoMigrate || tempDir != ""); err != nil {
		db.Close()
		removeTemp(tempDir)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	s, err := New(ctx, db, opts.Driver)
	if err != nil {
		db.Close()
		removeTemp(tempDir)
		return nil, err
	}
	s.tempDir = tempDir

	slog.Info("[Store] Opened", "driver", opts.Driver, "temporary", tempDir != "")
	return s, nil
}

// New wraps an open database whose schema is already in place.
func New(ctx context.Context, db *sql.DB, driver string) (*Store, error) {
	s := &Store{
		db:      db,
		driver:  driver,
		queries: make(map[string]string),
	}
	for _, q := range []string{
		queryFetchAggregate, queryUpsertAggregate, queryUpsertCheckpoint,
		queryEachAggregate, queryListByRecipient, queryLatestCheckpoint,
		queryDeleteAggregates, queryDeleteCheckpoints,
	} {
		s.queries[q] = rebind(driver, q)
	}

	stmt, err := db.PrepareContext(ctx, s.q(queryFetchAggregate))
	if err != nil {
		return nil, fmt.Errorf("failed to prepare fetch statement: %w", err)
	}
	s.stmtFetch = stmt
	return s, nil
}

func (s *Store) q(query string) string {
	return s.queries[query]
}

// Fetch returns the stored record for key.
func (s *Store) Fetch(ctx context.Context, key aggregation.Key) (*aggregation.Record, bool, error) {
	var (
		amountsJSON  []byte
		lastSequence int64
	)
	err := s.stmtFetch.QueryRowContext(ctx, string(key.Grouping), key.RecipientID, key.Secondary).
		Scan(&amountsJSON, &lastSequence)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("fetch %s: %w", key, err)
	}
	rec, err := restore(key, amountsJSON, lastSequence)
	if err != nil {
		return nil, false, fmt.Errorf("fetch %s: %w", key, err)
	}
	return rec, true, nil
}

// Flush upserts records and writes the run checkpoint in one transaction.
// The checkpoint is written first; a stale one rolls the whole flush back.
func (s *Store) Flush(ctx context.Context, records []*aggregation.Record, cp storage.Checkpoint) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("flush: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	result, err := tx.ExecContext(ctx, s.q(queryUpsertCheckpoint),
		cp.RunID, cp.Sequence, cp.Flushes, toMillis(cp.FlushedAt))
	if err != nil {
		return fmt.Errorf("flush: write checkpoint: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("flush: check checkpoint write: %w", err)
	}
	if rowsAffected == 0 {
		slog.Warn("[Store] Skipping stale flush",
			"run_id", cp.RunID,
			"sequence", cp.Sequence,
			"records", len(records))
		return nil
	}

	upsertStmt, err := tx.PrepareContext(ctx, s.q(queryUpsertAggregate))
	if err != nil {
		return fmt.Errorf("flush: prepare upsert: %w", err)
	}
	defer upsertStmt.Close()

	for _, rec := range records {
		amountsJSON, err := marshalAmounts(rec.Amounts)
		if err != nil {
			return fmt.Errorf("flush: %s: %w", rec.Key, err)
		}
		if _, err := upsertStmt.ExecContext(ctx,
			string(rec.Key.Grouping),
			rec.Key.RecipientID,
			rec.Key.Secondary,
			amountsJSON,
			rec.LastSequence,
		); err != nil {
			return fmt.Errorf("flush: upsert %s: %w", rec.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("flush: commit: %w", err)
	}
	return nil
}

// Each streams the records of grouping ordered by recipient and secondary.
// fn must not call back into the store.
func (s *Store) Each(ctx context.Context, grouping aggregation.Grouping, fn func(*aggregation.Record) error) error {
	rows, err := s.db.QueryContext(ctx, s.q(queryEachAggregate), string(grouping))
	if err != nil {
		return fmt.Errorf("query %s aggregates: %w", grouping, err)
	}
	defer rows.Close()

	for rows.Next() {
		rec, err := scanRecordRow(rows, grouping)
		if err != nil {
			return err
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate %s aggregates: %w", grouping, err)
	}
	return nil
}

func (s *Store) ListByRecipient(ctx context.Context, grouping aggregation.Grouping, recipientID string) ([]*aggregation.Record, error) {
	rows, err := s.db.QueryContext(ctx, s.q(queryListByRecipient), string(grouping), recipientID)
	if err != nil {
		return nil, fmt.Errorf("query %s aggregates of %s: %w", grouping, recipientID, err)
	}
	defer rows.Close()

	var results []*aggregation.Record
	for rows.Next() {
		rec, err := scanRecordRow(rows, grouping)
		if err != nil {
			return nil, err
		}
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return results, nil
}

func (s *Store) LatestCheckpoint(ctx context.Context) (storage.Checkpoint, bool, error) {
	var (
		cp        storage.Checkpoint
		flushedAt int64
	)
	err := s.db.QueryRowContext(ctx, s.q(queryLatestCheckpoint)).
		Scan(&cp.RunID, &cp.Sequence, &cp.Flushes, &flushedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Checkpoint{}, false, nil
	}
	if err != nil {
		return storage.Checkpoint{}, false, fmt.Errorf("read latest checkpoint: %w", err)
	}
	cp.FlushedAt = fromMillis(flushedAt)
	return cp, true, nil
}

// Reset deletes all aggregates and checkpoints in one transaction.
func (s *Store) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("reset: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, s.q(queryDeleteAggregates)); err != nil {
		return fmt.Errorf("reset: delete aggregates: %w", err)
	}
	if _, err := tx.ExecContext(ctx, s.q(queryDeleteCheckpoints)); err != nil {
		return fmt.Errorf("reset: delete checkpoints: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("reset: commit: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the prepared statements and the connection pool, then
// removes a temporary database.
func (s *Store) Close() error {
	var err error
	if s.stmtFetch != nil {
		err = multierr.Append(err, s.stmtFetch.Close())
	}
	err = multierr.Append(err, s.db.Close())
	if s.tempDir != "" {
		err = multierr.Append(err, os.RemoveAll(s.tempDir))
	}
	return err
}

func removeTemp(dir string) {
	if dir != "" {
		_ = os.RemoveAll(dir)
	}
}
