// Package postgres is the durable storage engine. It keeps every guarantee
// of the in-memory engine; CreateOrder runs in a single transaction so the
// order and its items commit or fail together.
package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ariefcatur/go-marketplace.git/internal/session"
	"github.com/ariefcatur/go-marketplace.git/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

type Store struct {
	DB       *pgxpool.Pool
	sessions session.Store
	now      func() time.Time
}

var _ storage.Storage = (*Store)(nil)

func New(db *pgxpool.Pool, sessions session.Store) *Store {
	return &Store{DB: db, sessions: sessions, now: time.Now}
}

func (s *Store) SessionStore() session.Store { return s.sessions }

// Migrate creates any missing tables and indexes.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		if strings.TrimSpace(stripComments(stmt)) == "" {
			continue
		}
		if _, err := s.DB.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func stripComments(stmt string) string {
	var b strings.Builder
	for _, line := range strings.Split(stmt, "\n") {
		if !strings.HasPrefix(strings.TrimSpace(line), "--") {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// stamp is the creation time written to a new row. Postgres keeps
// microseconds, so the value is truncated up front and what we return is
// what a later read gives back.
func (s *Store) stamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// readTx runs fn in a read-only snapshot so joins see one consistent state.
func (s *Store) readTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// one maps pgx.ErrNoRows to the absent result.
func one[T any](v T, err error) (T, bool, error) {
	if errors.Is(err, pgx.ErrNoRows) {
		var zero T
		return zero, false, nil
	}
	if err != nil {
		var zero T
		return zero, false, err
	}
	return v, true, nil
}

func collect[T any](rows pgx.Rows, err error, scan func(pgx.Row) (T, error)) ([]T, error) {
	if err != nil {
		return nil, err
	}
	out, err := pgx.CollectRows(rows, func(r pgx.CollectableRow) (T, error) { return scan(r) })
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// setList accumulates "col = $n" assignments for a partial update.
type setList struct {
	cols []string
	args []any
}

func addSet[T any](l *setList, col string, v *T) {
	if v == nil {
		return
	}
	l.args = append(l.args, *v)
	l.cols = append(l.cols, fmt.Sprintf("%s = $%d", col, len(l.args)))
}

func (l *setList) empty() bool { return len(l.cols) == 0 }

// update renders an UPDATE ... RETURNING statement; the id is the last arg.
func (l *setList) update(table string, id int64, returning string) (string, []any) {
	args := append(l.args, id)
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		table, strings.Join(l.cols, ", "), len(args), returning)
	return sql, args
}
