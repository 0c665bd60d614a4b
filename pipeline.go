package tsvenn

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nao1215/tsvenn/domain/model"
)

// Pipeline loads a descriptor, compares two relations over the loaded
// tables, writes the intersection list and the Venn diagram, then drops the
// loaded tables again. Create one with NewBuilder.
type Pipeline struct {
	descriptor  model.Descriptor
	left        model.Relation
	right       model.Relation
	listPath    string
	diagramPath string
	layout      VennLayout
	keepTables  bool
	opts        []Option
	logger      *slog.Logger
}

// RunResult collects what one pipeline run produced.
type RunResult struct {
	// RunID identifies the run in logs
	RunID string
	// Load is the report of the load pass
	Load *BatchReport
	// Drop is the report of the drop pass, nil when tables are kept
	Drop *BatchReport
	// Counts holds the three Venn region counts
	Counts model.VennCounts
	// Intersection holds the pairs present in both relations
	Intersection []model.Pair
	// ListPath and DiagramPath are the artifacts written, empty when skipped
	ListPath    string
	DiagramPath string
}

// Descriptor returns the load descriptor the pipeline runs.
func (p *Pipeline) Descriptor() model.Descriptor {
	return p.descriptor
}

// Run executes the whole pipeline against st. A failed pair does not stop
// the run: the artifacts are produced from whatever was loaded and the
// returned error joins every failure. Only the tables this run created are
// dropped. The result is never nil.
func (p *Pipeline) Run(ctx context.Context, st Store) (*RunResult, error) {
	result := &RunResult{RunID: uuid.NewString()}
	logger := p.logger.With(slog.String("run_id", result.RunID))
	opts := append(append([]Option{}, p.opts...), WithLogger(logger))

	loader := NewLoader(opts...)
	batch := NewBatch(opts...)
	comparer := NewComparer(st, opts...)

	logger.InfoContext(ctx, "run started", slog.Int("pairs", len(p.descriptor)))

	var errs []error
	report, err := batch.RunPairs(ctx, st, p.descriptor, LoadOperation{Loader: loader})
	result.Load = report
	if err != nil {
		errs = append(errs, err)
	}

	if err := p.compare(ctx, comparer, logger, result); err != nil {
		logger.ErrorContext(ctx, "comparison failed", slog.Any("error", err))
		errs = append(errs, err)
	}

	if !p.keepTables {
		report, err := batch.RunPairs(ctx, st, result.Load.Loaded(), DropOperation{Loader: loader})
		result.Drop = report
		if err != nil {
			errs = append(errs, err)
		}
	}

	runErr := errors.Join(errs...)
	logger.InfoContext(ctx, "run finished", slog.Bool("ok", runErr == nil))
	return result, runErr
}

// compare computes the intersection list and counts and writes both
// artifacts. The diagram is still drawn when the list cannot be written.
func (p *Pipeline) compare(ctx context.Context, comparer *Comparer, logger *slog.Logger, result *RunResult) error {
	var errs []error

	pairs, err := comparer.Intersection(ctx, p.left, p.right)
	if err != nil {
		errs = append(errs, err)
	} else {
		result.Intersection = pairs
		if p.listPath != "" {
			logger.InfoContext(ctx, "writing list", slog.String("file", p.listPath), slog.Int("pairs", len(pairs)))
			if err := WriteIntersectionList(p.listPath, pairs); err != nil {
				errs = append(errs, err)
			} else {
				result.ListPath = p.listPath
			}
		}
	}

	counts, err := comparer.Counts(ctx, p.left, p.right)
	if err != nil {
		return errors.Join(append(errs, err)...)
	}
	result.Counts = counts

	if p.diagramPath != "" {
		logger.InfoContext(ctx, "writing diagram", slog.String("file", p.diagramPath))
		c := RenderVenn(NewVennText(counts, p.left.Label, p.right.Label), p.layout)
		if err := WriteDiagram(p.diagramPath, c); err != nil {
			errs = append(errs, err)
		} else {
			result.DiagramPath = p.diagramPath
		}
	}
	return errors.Join(errs...)
}
