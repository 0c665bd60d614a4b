package tsvenn

import (
	"context"
	"errors"
	"fmt"

	"github.com/nao1215/tsvenn/domain/model"
)

// Builder configures a Pipeline.
// Use NewBuilder to create a new instance, then chain method calls to configure it.
//
// The typical usage pattern is:
//
//	pipeline, err := tsvenn.NewBuilder().
//		AddDescriptor("input/a.tsv|0|input/b.tsv|9").
//		Compare(left, right).
//		WriteListTo("output/common.tsv").
//		WriteDiagramTo("output/venn.txt").
//		Build(ctx)
//	if err != nil {
//		return err
//	}
//	st, err := tsvenn.OpenStore(ctx, "output/survey.db")
//	if err != nil {
//		return err
//	}
//	defer st.Close()
//	result, err := pipeline.Run(ctx, st)
type Builder struct {
	// descriptors holds the encoded descriptors added so far
	descriptors []string
	// pairs holds pairs added one by one
	pairs       model.Descriptor
	left        *model.Relation
	right       *model.Relation
	listPath    string
	diagramPath string
	layout      VennLayout
	keepTables  bool
	opts        []Option
}

// NewBuilder creates a new pipeline builder with the default Venn layout.
func NewBuilder() *Builder {
	return &Builder{
		descriptors: make([]string, 0),
		pairs:       make(model.Descriptor, 0),
		layout:      DefaultVennLayout(),
	}
}

// AddDescriptor appends every pair of an encoded "source|skip|..." descriptor.
// The descriptor is parsed by Build.
//
// Returns the builder for method chaining.
func (b *Builder) AddDescriptor(descriptor string) *Builder {
	b.descriptors = append(b.descriptors, descriptor)
	return b
}

// AddSource appends one source with its header skip.
//
// Returns the builder for method chaining.
func (b *Builder) AddSource(source string, headerSkip int) *Builder {
	b.pairs = append(b.pairs, model.LoadPair{Source: source, HeaderSkip: headerSkip})
	return b
}

// Compare sets the two relations whose pairs are compared.
//
// Returns the builder for method chaining.
func (b *Builder) Compare(left, right model.Relation) *Builder {
	b.left = &left
	b.right = &right
	return b
}

// WriteListTo sets the path of the intersection list. The format follows
// the extension (.tsv, .xlsx, .parquet, optionally compressed). An empty
// path skips the list.
//
// Returns the builder for method chaining.
func (b *Builder) WriteListTo(path string) *Builder {
	b.listPath = path
	return b
}

// WriteDiagramTo sets the path of the text diagram. An empty path skips it.
//
// Returns the builder for method chaining.
func (b *Builder) WriteDiagramTo(path string) *Builder {
	b.diagramPath = path
	return b
}

// WithLayout replaces the default Venn layout.
//
// Returns the builder for method chaining.
func (b *Builder) WithLayout(layout VennLayout) *Builder {
	b.layout = layout
	return b
}

// KeepTables leaves the loaded tables in the store after the run instead
// of dropping them.
//
// Returns the builder for method chaining.
func (b *Builder) KeepTables(keep bool) *Builder {
	b.keepTables = keep
	return b
}

// WithOptions adds options passed to the loader, batch and comparer.
//
// Returns the builder for method chaining.
func (b *Builder) WithOptions(opts ...Option) *Builder {
	b.opts = append(b.opts, opts...)
	return b
}

// Build validates the configuration and returns a ready Pipeline.
// It checks that:
//
// 1. At least one load pair is configured and every descriptor parses
// 2. Every pair names a source and a non-negative header skip
// 3. Both relations are set and valid
// 4. The artifact paths can be written in their format
//
// Sources are not opened here; a missing source fails only its own pair
// when the pipeline runs.
//
// The context is reserved for cancellation of file checks.
func (b *Builder) Build(ctx context.Context) (*Pipeline, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	desc := make(model.Descriptor, 0, len(b.pairs))
	for _, s := range b.descriptors {
		parsed, err := model.ParseDescriptor(s)
		if err != nil {
			return nil, err
		}
		desc = append(desc, parsed...)
	}
	desc = append(desc, b.pairs...)
	if len(desc) == 0 {
		return nil, fmt.Errorf("%w: at least one load pair must be provided", ErrInvalidDescriptor)
	}

	v := newValidator()
	for _, pair := range desc {
		if err := v.validatePair(pair); err != nil {
			return nil, err
		}
	}

	if b.left == nil || b.right == nil {
		return nil, fmt.Errorf("%w: two relations must be provided", ErrInvalidRelation)
	}
	if err := errors.Join(b.left.Validate(), b.right.Validate()); err != nil {
		return nil, err
	}

	if err := v.validateArtifactPath(b.listPath, true); err != nil {
		return nil, err
	}
	if err := v.validateArtifactPath(b.diagramPath, false); err != nil {
		return nil, err
	}
	if err := v.validateLayout(b.layout); err != nil {
		return nil, err
	}

	s := newSettings(b.opts)
	return &Pipeline{
		descriptor:  desc,
		left:        *b.left,
		right:       *b.right,
		listPath:    b.listPath,
		diagramPath: b.diagramPath,
		layout:      b.layout,
		keepTables:  b.keepTables,
		opts:        append([]Option{}, b.opts...),
		logger:      s.logger,
	}, nil
}
