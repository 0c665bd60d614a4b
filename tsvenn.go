package tsvenn

import (
	"context"

	"github.com/nao1215/tsvenn/domain/model"
	"github.com/nao1215/tsvenn/store"
)

// Store is the relational engine boundary. Exec runs statement text that
// may hold several statements; Query runs one statement and returns every
// result row as text, NULL values reported as model.NullMarker.
//
// *store.SQLite implements Store.
type Store interface {
	Exec(ctx context.Context, query string) error
	Query(ctx context.Context, query string) ([]model.Row, error)
}

var _ Store = (*store.SQLite)(nil)

// Re-exported model types so that callers need a single import.
type (
	// Record is one delimited line of a source file
	Record = model.Record
	// Row is one result row of a query
	Row = model.Row
	// Schema describes a loaded table
	Schema = model.Schema
	// LoadPair is one (source, header skip) entry of a descriptor
	LoadPair = model.LoadPair
	// Descriptor is an ordered list of load pairs
	Descriptor = model.Descriptor
	// Relation is a declarative (name, code) projection
	Relation = model.Relation
	// TableRef names a table of a relation
	TableRef = model.TableRef
	// Field is a column of a relation table
	Field = model.Field
	// Condition is an equality filter of a relation
	Condition = model.Condition
	// JoinSpec is the inner join of a relation
	JoinSpec = model.JoinSpec
	// Pair is one (name, code) tuple
	Pair = model.Pair
	// VennCounts holds the three Venn region cardinalities
	VennCounts = model.VennCounts
)

// ParseDescriptor decodes a flat "source|skip|source|skip" descriptor.
func ParseDescriptor(s string) (Descriptor, error) {
	return model.ParseDescriptor(s)
}

// OpenStore opens the SQLite database at path and begins the run-wide
// transaction. Use store.Memory for a private in-memory database.
func OpenStore(ctx context.Context, path string, opts ...store.Option) (*store.SQLite, error) {
	return store.Open(ctx, path, opts...)
}
