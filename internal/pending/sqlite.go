package pending

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore is the durable queue implementation. Use ":memory:" as the
// path for tests.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (and creates if needed) the queue database and brings
// its schema up to date.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open queue database: %w", err)
	}
	// The queue is single-writer; one connection also keeps :memory:
	// databases from evaporating between calls.
	db.SetMaxOpenConns(1)

	if err := migrateSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func migrateSchema(db *sql.DB) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load queue migrations: %w", err)
	}

	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("queue migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("queue migrator: %w", err)
	}

	preVersion, _, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		preVersion = 0
	} else if err != nil {
		return fmt.Errorf("queue migration version: %w", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("queue migration up: %w", err)
	}

	postVersion, _, err := m.Version()
	if err != nil {
		return fmt.Errorf("queue migration version: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"preMigrationVersion":  preVersion,
		"postMigrationVersion": postVersion,
	}).Debug("PendingStore.migrate")
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Put upserts the record for m.ID. A replaced record moves to the end of the
// queue: delete-then-insert keeps the seq column as pure insertion order.
func (s *SQLiteStore) Put(ctx context.Context, m Mutation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pending_mutations WHERE id = ?`, m.ID); err != nil {
		return err
	}

	enqueuedAt := m.EnqueuedAt
	if enqueuedAt.IsZero() {
		enqueuedAt = time.Now().UTC()
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO pending_mutations (id, kind, payload, enqueued_at) VALUES (?, ?, ?, ?)`,
		m.ID, string(m.Kind), m.Payload, enqueuedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) All(ctx context.Context) ([]Mutation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, payload, enqueued_at FROM pending_mutations ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mutations []Mutation
	for rows.Next() {
		var m Mutation
		var kind, enqueuedAt string
		if err := rows.Scan(&m.ID, &kind, &m.Payload, &enqueuedAt); err != nil {
			return nil, err
		}
		m.Kind = Kind(kind)
		m.EnqueuedAt, err = time.Parse(time.RFC3339Nano, enqueuedAt)
		if err != nil {
			return nil, fmt.Errorf("queue record %s enqueued_at: %w", m.ID, err)
		}
		mutations = append(mutations, m)
	}
	return mutations, rows.Err()
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM pending_mutations WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM pending_mutations`)
	return err
}

func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pending_mutations`).Scan(&count)
	return count, err
}
