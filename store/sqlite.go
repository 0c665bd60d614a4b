package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/nao1215/tsvenn/domain/model"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver
)

const (
	// driverName is the database/sql name modernc.org/sqlite registers under
	driverName = "sqlite"

	// Memory is the path of a private in-memory database
	Memory = ":memory:"
)

// SQLite is a single-connection, single-transaction SQLite session.
// It is not safe for concurrent use.
type SQLite struct {
	path   string
	db     *sql.DB
	tx     *sql.Tx
	logger *slog.Logger
	abort  bool
	closed bool
}

// Option configures a SQLite store.
type Option func(*SQLite)

// WithLogger sets the logger used for open/close tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(s *SQLite) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Open opens (or creates) the database at path and begins the session
// transaction. Any failure is reported wrapped in ErrOpen.
func Open(ctx context.Context, path string, opts ...Option) (*SQLite, error) {
	s := &SQLite{
		path:   path,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrOpen, path, err)
	}
	// An in-memory database lives and dies with its connection, and the
	// session transaction must stay on one connection anyway.
	db.SetMaxOpenConns(1)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		_ = db.Close() // Ignore close error, the open error is reported
		return nil, fmt.Errorf("%w: %s: %w", ErrOpen, path, err)
	}

	s.db = db
	s.tx = tx
	s.logger.Info("opened store", slog.String("path", path))
	return s, nil
}

// Path returns the database path the store was opened with.
func (s *SQLite) Path() string {
	return s.path
}

// Exec runs one or more semicolon separated statements.
func (s *SQLite) Exec(ctx context.Context, query string) error {
	if s.closed {
		return ErrClosed
	}
	_, err := s.tx.ExecContext(ctx, query)
	return err
}

// Query runs a single statement and returns all of its rows as text.
func (s *SQLite) Query(ctx context.Context, query string) ([]model.Row, error) {
	if s.closed {
		return nil, ErrClosed
	}

	rows, err := s.tx.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	result := make([]model.Row, 0)
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(model.Row, len(values))
		for i, v := range values {
			row[i] = textValue(v)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Tables lists the user tables of the database in name order.
func (s *SQLite) Tables(ctx context.Context) ([]string, error) {
	rows, err := s.Query(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row[0])
	}
	return names, nil
}

// Abort makes Close roll the session transaction back instead of
// committing it.
func (s *SQLite) Abort() {
	s.abort = true
}

// Close ends the session transaction and closes the database. Calling
// Close more than once is a no-op.
func (s *SQLite) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var txErr error
	if s.abort {
		if err := s.tx.Rollback(); err != nil {
			txErr = fmt.Errorf("failed to roll back %s: %w", s.path, err)
		}
	} else {
		if err := s.tx.Commit(); err != nil {
			txErr = fmt.Errorf("failed to commit %s: %w", s.path, err)
		}
	}

	var closeErr error
	if err := s.db.Close(); err != nil {
		closeErr = fmt.Errorf("failed to close %s: %w", s.path, err)
	}

	s.logger.Info("closed store", slog.String("path", s.path), slog.Bool("committed", !s.abort && txErr == nil))
	return errors.Join(txErr, closeErr)
}

// textValue converts a scanned value to the text the store reports.
func textValue(v any) string {
	switch val := v.(type) {
	case nil:
		return model.NullMarker
	case string:
		return val
	case []byte:
		return string(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case bool:
		if val {
			return "1"
		}
		return "0"
	case time.Time:
		return val.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(val)
	}
}
