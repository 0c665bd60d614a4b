// Package model provides domain model for tsvenn
package model

// NullMarker is the text a NULL field is reported as in a query Row.
const NullMarker = "NULL"

// Record is one delimited line of a source file, split into fields.
type Record []string

// NewRecord create new Record.
func NewRecord(r []string) Record {
	return Record(r)
}

// Arity returns the number of fields.
func (r Record) Arity() int {
	return len(r)
}

// Row is one result row returned by the store. Every value is text;
// NULL values are reported as NullMarker.
type Row []string

// Schema describes a table created from a source file.
// Columns are positionally named A1..An and always TEXT NOT NULL.
type Schema struct {
	// Table is the unquoted table name.
	Table string
	// Columns holds the generated column names in order.
	Columns []string
}

// Arity returns the number of columns.
func (s Schema) Arity() int {
	return len(s.Columns)
}
