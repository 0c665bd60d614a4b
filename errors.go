package tsvenn

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nao1215/tsvenn/domain/model"
	"github.com/nao1215/tsvenn/store"
)

// Standard error values. Use errors.Is to test for them.
var (
	// ErrSourceUnreadable indicates that a source file is missing, cannot be
	// opened, or has no line left after the header skip
	ErrSourceUnreadable = errors.New("tsvenn: source unreadable or empty after header skip")

	// ErrStoreOpen indicates that the relational store cannot be opened
	ErrStoreOpen = store.ErrOpen

	// ErrStatement indicates that the store rejected a statement
	ErrStatement = errors.New("tsvenn: statement failed")

	// ErrArityMismatch indicates a record whose field count differs from
	// the inferred schema
	ErrArityMismatch = errors.New("tsvenn: record arity does not match schema")

	// ErrUnsupportedFormat indicates a source or artifact format that cannot be handled
	ErrUnsupportedFormat = errors.New("tsvenn: unsupported file format")

	// ErrInvalidDescriptor indicates a malformed load descriptor
	ErrInvalidDescriptor = model.ErrInvalidDescriptor

	// ErrInvalidRelation indicates an incomplete comparison relation
	ErrInvalidRelation = model.ErrInvalidRelation
)

// StatementKind names the kind of statement that failed
type StatementKind string

const (
	// StatementCreate is a CREATE TABLE statement
	StatementCreate StatementKind = "create"
	// StatementInsert is the bulk INSERT batch
	StatementInsert StatementKind = "insert"
	// StatementDrop is a DROP TABLE statement
	StatementDrop StatementKind = "drop"
	// StatementSelect is a comparison query
	StatementSelect StatementKind = "select"
	// StatementSavepoint is a SAVEPOINT, RELEASE or ROLLBACK TO statement
	StatementSavepoint StatementKind = "savepoint"
)

// StatementError reports a statement rejected by the store together with
// the table it was aimed at. It matches ErrStatement with errors.Is.
type StatementError struct {
	Kind  StatementKind
	Table string
	Err   error
}

// Error returns the engine message with its context.
func (e *StatementError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("tsvenn: %s statement failed: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("tsvenn: %s statement failed, table: %s: %v", e.Kind, e.Table, e.Err)
}

// Unwrap returns the engine error.
func (e *StatementError) Unwrap() error {
	return e.Err
}

// Is reports ErrStatement as a match.
func (e *StatementError) Is(target error) bool {
	return target == ErrStatement
}

// ArityError reports the first record whose field count differs from the
// schema. Line is 1-based and counts header lines.
type ArityError struct {
	File string
	Line int
	Want int
	Got  int
}

// Error returns a description of the mismatch.
func (e *ArityError) Error() string {
	return fmt.Sprintf("tsvenn: record arity does not match schema, file: %s, line %d: want %d fields, got %d",
		e.File, e.Line, e.Want, e.Got)
}

// Is reports ErrArityMismatch as a match.
func (e *ArityError) Is(target error) bool {
	return target == ErrArityMismatch
}

// ErrorContext provides context for where an error occurred
type ErrorContext struct {
	Operation string
	FilePath  string
	TableName string
	Details   string
}

// NewErrorContext creates a new error context
func NewErrorContext(operation, filePath string) *ErrorContext {
	return &ErrorContext{
		Operation: operation,
		FilePath:  filePath,
	}
}

// WithTable adds table context to the error
func (ec *ErrorContext) WithTable(tableName string) *ErrorContext {
	ec.TableName = tableName
	return ec
}

// WithDetails adds details to the error context
func (ec *ErrorContext) WithDetails(details string) *ErrorContext {
	ec.Details = details
	return ec
}

// Error creates a formatted error with context
func (ec *ErrorContext) Error(baseErr error) error {
	parts := []string{fmt.Sprintf("tsvenn: %s failed", ec.Operation)}

	if ec.FilePath != "" {
		parts = append(parts, "file: "+ec.FilePath)
	}
	if ec.TableName != "" {
		parts = append(parts, "table: "+ec.TableName)
	}
	if ec.Details != "" {
		parts = append(parts, "details: "+ec.Details)
	}

	context := strings.Join(parts, ", ")
	if baseErr != nil {
		return fmt.Errorf("%s: %w", context, baseErr)
	}
	return errors.New(context)
}
