// Package postgres implements store.Store over a PostgreSQL table.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"todolist/internal/store"
)

// QueryTimeout bounds each statement.
const QueryTimeout = 5 * time.Second

const schema = `CREATE TABLE IF NOT EXISTS tasks (
	id        TEXT PRIMARY KEY,
	text      TEXT NOT NULL,
	completed BOOLEAN NOT NULL DEFAULT FALSE,
	deadline  TEXT NOT NULL
)`

// Store keeps tasks in the tasks table.
type Store struct {
	db *pgxpool.Pool
}

// Open connects to databaseURL and creates the tasks table if missing.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	if databaseURL == "" {
		return nil, errors.New("database_url not set (edit config.json or set TODOLIST_DATABASE_URL)")
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	s := New(pool)
	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing pool.
func New(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Close releases the pool.
func (s *Store) Close() {
	s.db.Close()
}

// EnsureSchema creates the tasks table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()

	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", wrapError(err))
	}
	return nil
}

// List returns every task, ordered by id.
func (s *Store) List(ctx context.Context) ([]store.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()

	rows, err := s.db.Query(ctx, `SELECT id, text, completed, deadline FROM tasks ORDER BY id`)
	if err != nil {
		return nil, wrapError(err)
	}
	defer rows.Close()

	var res []store.Task
	for rows.Next() {
		var t store.Task
		if err := rows.Scan(&t.ID, &t.Text, &t.Completed, &t.Deadline); err != nil {
			return nil, wrapError(err)
		}
		res = append(res, t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError(err)
	}
	return res, nil
}

// Create inserts a task under a new random id.
func (s *Store) Create(ctx context.Context, rec store.Record) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()

	var id string
	err := s.db.QueryRow(ctx,
		`INSERT INTO tasks (id, text, completed, deadline) VALUES ($1, $2, $3, $4) RETURNING id`,
		uuid.NewString(), rec.Text, rec.Completed, rec.Deadline,
	).Scan(&id)
	if err != nil {
		return "", wrapError(err)
	}
	return id, nil
}

// Update sets the columns p names.
func (s *Store) Update(ctx context.Context, id string, p store.Patch) error {
	query, args := updateStatement(id, p)
	if query == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()

	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return wrapError(err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Delete removes a task.
func (s *Store) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()

	tag, err := s.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return wrapError(err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// updateStatement builds the UPDATE for p, or "" if p sets nothing.
func updateStatement(id string, p store.Patch) (string, []any) {
	var sets []string
	var args []any
	add := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if p.Text != nil {
		add("text", *p.Text)
	}
	if p.Completed != nil {
		add("completed", *p.Completed)
	}
	if p.Deadline != nil {
		add("deadline", *p.Deadline)
	}
	if len(sets) == 0 {
		return "", nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE tasks SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
	return query, args
}

func wrapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return store.ErrTimeout
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "28") {
		// class 28: invalid authorization specification
		return fmt.Errorf("%w: %s", store.ErrAuth, pgErr.Message)
	}
	return err
}
