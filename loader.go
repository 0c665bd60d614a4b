package tsvenn

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dustin/go-humanize"
)

// loadSavepoint is the savepoint each table load runs inside.
const loadSavepoint = "tsvenn_load"

// LoadResult describes one completed table load.
type LoadResult struct {
	// Source is the source identifier the table was loaded from
	Source string
	// Table is the name of the created table
	Table string
	// Columns is the inferred column count
	Columns int
	// Rows is the number of inserted rows
	Rows int
	// Adjusted is the number of rows padded or truncated under ArityLenient
	Adjusted int
	// Bytes is the decompressed size of the source
	Bytes int
}

// Loader loads one source file into one new table, and drops it again.
type Loader struct {
	logger *slog.Logger
	arity  ArityPolicy
	naming TableNaming
}

// NewLoader returns a Loader configured by opts.
func NewLoader(opts ...Option) *Loader {
	s := newSettings(opts)
	return &Loader{
		logger: s.logger,
		arity:  s.arity,
		naming: s.naming,
	}
}

// TableName returns the table a source is loaded into.
func (l *Loader) TableName(source string) string {
	return l.naming.TableName(source)
}

// Load reads source, creates its table and inserts every record after the
// first headerSkip ones in file order.
//
// The create and the insert batch run inside a savepoint. If either is
// rejected the savepoint is rolled back, so the table either exists with
// every data row or does not exist at all. Loading a table name that already
// exists fails with a *StatementError.
func (l *Loader) Load(ctx context.Context, st Store, source string, headerSkip int) (LoadResult, error) {
	table := l.TableName(source)
	ec := NewErrorContext("load", source).WithTable(table)

	if err := ctx.Err(); err != nil {
		return LoadResult{}, ec.Error(err)
	}

	l.logger.InfoContext(ctx, "reading source", slog.String("file", source), slog.Int("header_skip", headerSkip))
	src, err := readSource(ctx, source)
	if err != nil {
		return LoadResult{}, ec.Error(err)
	}

	schema, err := inferSchema(src.records, headerSkip, table)
	if err != nil {
		return LoadResult{}, ec.Error(err)
	}

	batch, err := compileInserts(schema, src.records, headerSkip, source, l.arity)
	if err != nil {
		return LoadResult{}, ec.Error(err)
	}
	if batch.adjusted > 0 {
		l.logger.WarnContext(ctx, "records adjusted to schema arity",
			slog.String("file", source), slog.Int("adjusted", batch.adjusted), slog.Int("columns", schema.Arity()))
	}

	if err := st.Exec(ctx, "SAVEPOINT "+loadSavepoint+";"); err != nil {
		return LoadResult{}, ec.Error(&StatementError{Kind: StatementSavepoint, Table: table, Err: err})
	}

	if err := st.Exec(ctx, createStatement(schema)); err != nil {
		return LoadResult{}, ec.Error(l.rollback(ctx, st, &StatementError{Kind: StatementCreate, Table: table, Err: err}))
	}

	if batch.rows > 0 {
		l.logger.DebugContext(ctx, "executing insert batch",
			slog.String("table", table), slog.Int("rows", batch.rows), slog.String("size", humanize.Bytes(uint64(len(batch.sql)))))
		if err := st.Exec(ctx, batch.sql); err != nil {
			return LoadResult{}, ec.Error(l.rollback(ctx, st, &StatementError{Kind: StatementInsert, Table: table, Err: err}))
		}
	}

	if err := st.Exec(ctx, "RELEASE "+loadSavepoint+";"); err != nil {
		return LoadResult{}, ec.Error(l.rollback(ctx, st, &StatementError{Kind: StatementSavepoint, Table: table, Err: err}))
	}

	result := LoadResult{
		Source:   source,
		Table:    table,
		Columns:  schema.Arity(),
		Rows:     batch.rows,
		Adjusted: batch.adjusted,
		Bytes:    src.size,
	}
	l.logger.InfoContext(ctx, "loaded table",
		slog.String("file", source),
		slog.String("table", table),
		slog.Int("columns", result.Columns),
		slog.Int("rows", result.Rows),
		slog.String("size", humanize.Bytes(uint64(result.Bytes))))
	return result, nil
}

// rollback undoes everything since the load savepoint and removes it.
// The returned error holds cause and any rollback failure.
func (l *Loader) rollback(ctx context.Context, st Store, cause error) error {
	err := st.Exec(ctx, "ROLLBACK TO "+loadSavepoint+"; RELEASE "+loadSavepoint+";")
	if err != nil {
		l.logger.ErrorContext(ctx, "failed to roll back load", slog.Any("error", err))
		return errors.Join(cause, &StatementError{Kind: StatementSavepoint, Err: err})
	}
	return cause
}

// Drop drops the table a source was loaded into.
func (l *Loader) Drop(ctx context.Context, st Store, source string) error {
	table := l.TableName(source)
	if err := ctx.Err(); err != nil {
		return NewErrorContext("drop", source).WithTable(table).Error(err)
	}
	if err := st.Exec(ctx, dropStatement(table)); err != nil {
		return NewErrorContext("drop", source).WithTable(table).Error(
			&StatementError{Kind: StatementDrop, Table: table, Err: err})
	}
	l.logger.InfoContext(ctx, "dropped table", slog.String("table", table))
	return nil
}
