package tsvenn

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nao1215/tsvenn/domain/model"
)

// FailurePolicy decides what a batch does after a pair fails
type FailurePolicy int

const (
	// ContinueOnError attempts every pair and reports all failures (default)
	ContinueOnError FailurePolicy = iota
	// AbortOnError stops at the first failed pair
	AbortOnError
)

// String returns the configuration name of the policy
func (p FailurePolicy) String() string {
	if p == AbortOnError {
		return "abort"
	}
	return "continue"
}

// ParseFailurePolicy parses "continue" or "abort"; the empty string means "continue".
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "continue":
		return ContinueOnError, nil
	case "abort":
		return AbortOnError, nil
	default:
		return ContinueOnError, fmt.Errorf("tsvenn: unknown failure policy %q", s)
	}
}

// Operation is applied by a Batch to every pair of a descriptor.
type Operation interface {
	// Name is a short verb used in logs and reports
	Name() string
	// Apply performs the operation for one pair and returns the affected table.
	Apply(ctx context.Context, st Store, pair model.LoadPair) (string, error)
}

// LoadOperation loads every pair's source into a new table.
type LoadOperation struct {
	Loader *Loader
}

// Name returns "load".
func (LoadOperation) Name() string { return "load" }

// Apply loads pair.Source skipping pair.HeaderSkip lines.
func (o LoadOperation) Apply(ctx context.Context, st Store, pair model.LoadPair) (string, error) {
	res, err := o.Loader.Load(ctx, st, pair.Source, pair.HeaderSkip)
	if err != nil {
		return o.Loader.TableName(pair.Source), err
	}
	return res.Table, nil
}

// DropOperation drops every pair's table. The header skip is ignored.
type DropOperation struct {
	Loader *Loader
}

// Name returns "drop".
func (DropOperation) Name() string { return "drop" }

// Apply drops the table of pair.Source.
func (o DropOperation) Apply(ctx context.Context, st Store, pair model.LoadPair) (string, error) {
	return o.Loader.TableName(pair.Source), o.Loader.Drop(ctx, st, pair.Source)
}

// PairResult is the outcome of one pair.
type PairResult struct {
	Pair  model.LoadPair
	Table string
	Err   error
}

// BatchReport lists the outcome of every attempted pair in descriptor order.
type BatchReport struct {
	// Operation is the name of the applied operation
	Operation string
	// Results holds one entry per attempted pair
	Results []PairResult
	// Skipped holds the pairs not attempted after an abort
	Skipped []model.LoadPair
}

// Succeeded returns the number of pairs that completed.
func (r *BatchReport) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the pairs that failed.
func (r *BatchReport) Failed() []PairResult {
	failed := make([]PairResult, 0)
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// Loaded returns the pairs that succeeded, in descriptor order. After a
// load pass these are the tables the pass created.
func (r *BatchReport) Loaded() model.Descriptor {
	loaded := make(model.Descriptor, 0, len(r.Results))
	for _, res := range r.Results {
		if res.Err == nil {
			loaded = append(loaded, res.Pair)
		}
	}
	return loaded
}

// Err joins every pair failure, or returns nil.
func (r *BatchReport) Err() error {
	errs := make([]error, 0)
	for _, res := range r.Failed() {
		errs = append(errs, res.Err)
	}
	return errors.Join(errs...)
}

// Batch walks a load descriptor and applies one Operation per pair.
type Batch struct {
	logger *slog.Logger
	policy FailurePolicy
}

// NewBatch returns a Batch configured by opts.
func NewBatch(opts ...Option) *Batch {
	s := newSettings(opts)
	return &Batch{
		logger: s.logger,
		policy: s.failure,
	}
}

// Run parses descriptor and applies op to each pair in order.
// A malformed descriptor is reported before any pair is attempted.
func (b *Batch) Run(ctx context.Context, st Store, descriptor string, op Operation) (*BatchReport, error) {
	desc, err := model.ParseDescriptor(descriptor)
	if err != nil {
		return nil, err
	}
	return b.RunPairs(ctx, st, desc, op)
}

// RunPairs applies op to each pair in order. The returned report is never
// nil; the returned error joins every pair failure.
func (b *Batch) RunPairs(ctx context.Context, st Store, desc model.Descriptor, op Operation) (*BatchReport, error) {
	report := &BatchReport{
		Operation: op.Name(),
		Results:   make([]PairResult, 0, len(desc)),
	}

	for i, pair := range desc {
		if err := ctx.Err(); err != nil {
			report.Skipped = append(report.Skipped, desc[i:]...)
			return report, errors.Join(report.Err(), err)
		}

		table, err := op.Apply(ctx, st, pair)
		report.Results = append(report.Results, PairResult{Pair: pair, Table: table, Err: err})
		if err == nil {
			continue
		}

		b.logger.ErrorContext(ctx, "batch pair failed",
			slog.String("operation", op.Name()),
			slog.String("file", pair.Source),
			slog.String("table", table),
			slog.String("statement", statementKind(err)),
			slog.Any("error", err))

		if b.policy == AbortOnError {
			report.Skipped = append(report.Skipped, desc[i+1:]...)
			break
		}
	}

	b.logger.InfoContext(ctx, "batch finished",
		slog.String("operation", op.Name()),
		slog.Int("succeeded", report.Succeeded()),
		slog.Int("failed", len(report.Failed())),
		slog.Int("skipped", len(report.Skipped)))
	return report, report.Err()
}

// statementKind returns the kind of the failed statement in err, if any.
func statementKind(err error) string {
	var stmtErr *StatementError
	if errors.As(err, &stmtErr) {
		return string(stmtErr.Kind)
	}
	return ""
}
