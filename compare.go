package tsvenn

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/nao1215/tsvenn/domain/model"
)

// Set operators understood by the store.
const (
	opExcept    = "EXCEPT"
	opIntersect = "INTERSECT"
)

// Comparer runs set algebra between two comparison relations.
// All queries read the same store snapshot as long as nothing is loaded or
// dropped between calls.
type Comparer struct {
	store  Store
	logger *slog.Logger
}

// NewComparer returns a Comparer that queries st.
func NewComparer(st Store, opts ...Option) *Comparer {
	s := newSettings(opts)
	return &Comparer{
		store:  st,
		logger: s.logger,
	}
}

// Counts returns the three Venn region counts of left and right under
// set semantics: duplicate pairs within one side count once.
func (c *Comparer) Counts(ctx context.Context, left, right model.Relation) (model.VennCounts, error) {
	l, r, err := compilePair(left, right)
	if err != nil {
		return model.VennCounts{}, err
	}

	var counts model.VennCounts
	if counts.LeftOnly, err = c.count(ctx, compound(l, opExcept, r), left.Label+" only"); err != nil {
		return model.VennCounts{}, err
	}
	if counts.Both, err = c.count(ctx, compound(l, opIntersect, r), left.Label+" and "+right.Label); err != nil {
		return model.VennCounts{}, err
	}
	if counts.RightOnly, err = c.count(ctx, compound(r, opExcept, l), right.Label+" only"); err != nil {
		return model.VennCounts{}, err
	}

	c.logger.InfoContext(ctx, "compared relations",
		slog.String("left", left.Label),
		slog.String("right", right.Label),
		slog.Int64("left_only", counts.LeftOnly),
		slog.Int64("both", counts.Both),
		slog.Int64("right_only", counts.RightOnly))
	return counts, nil
}

// Intersection returns the pairs present in both relations ordered by
// name, then code.
func (c *Comparer) Intersection(ctx context.Context, left, right model.Relation) ([]model.Pair, error) {
	l, r, err := compilePair(left, right)
	if err != nil {
		return nil, err
	}
	return c.pairs(ctx, compound(l, opIntersect, r), left.Label+" and "+right.Label)
}

// Difference returns the pairs of left that are not in right ordered by
// name, then code.
func (c *Comparer) Difference(ctx context.Context, left, right model.Relation) ([]model.Pair, error) {
	l, r, err := compilePair(left, right)
	if err != nil {
		return nil, err
	}
	return c.pairs(ctx, compound(l, opExcept, r), left.Label+" only")
}

// Cardinality returns the number of distinct pairs of rel.
func (c *Comparer) Cardinality(ctx context.Context, rel model.Relation) (int64, error) {
	q, err := compileRelation(rel)
	if err != nil {
		return 0, err
	}
	return c.count(ctx, "SELECT DISTINCT name, code FROM ("+q+")", rel.Label)
}

func (c *Comparer) count(ctx context.Context, query, label string) (int64, error) {
	stmt := "SELECT count(*) FROM (" + query + ");"
	c.logger.DebugContext(ctx, "counting", slog.String("region", label), slog.String("sql", stmt))

	rows, err := c.store.Query(ctx, stmt)
	if err != nil {
		return 0, &StatementError{Kind: StatementSelect, Table: label, Err: err}
	}
	if len(rows) != 1 || len(rows[0]) != 1 {
		return 0, &StatementError{Kind: StatementSelect, Table: label, Err: fmt.Errorf("expected one count, got %d rows", len(rows))}
	}
	n, err := strconv.ParseInt(rows[0][0], 10, 64)
	if err != nil {
		return 0, &StatementError{Kind: StatementSelect, Table: label, Err: err}
	}
	return n, nil
}

func (c *Comparer) pairs(ctx context.Context, query, label string) ([]model.Pair, error) {
	stmt := "SELECT name, code FROM (" + query + ") ORDER BY name, code;"
	c.logger.DebugContext(ctx, "listing", slog.String("region", label), slog.String("sql", stmt))

	rows, err := c.store.Query(ctx, stmt)
	if err != nil {
		return nil, &StatementError{Kind: StatementSelect, Table: label, Err: err}
	}
	pairs := make([]model.Pair, 0, len(rows))
	for _, row := range rows {
		pairs = append(pairs, model.Pair{Name: row[0], Code: row[1]})
	}
	return pairs, nil
}

func compilePair(left, right model.Relation) (string, string, error) {
	l, err := compileRelation(left)
	if err != nil {
		return "", "", err
	}
	r, err := compileRelation(right)
	if err != nil {
		return "", "", err
	}
	return l, r, nil
}

func compound(left, op, right string) string {
	return left + " " + op + " " + right
}

// compileRelation renders rel as
//
//	SELECT lower(f."A2") AS name, lower(f."A9") AS code FROM "t" AS "f"
//	    [INNER JOIN "u" AS "j" ON f."A1" = j."A1"] [WHERE f."A4" = 'PT' AND ...]
//
// with every identifier and literal quoted.
func compileRelation(rel model.Relation) (string, error) {
	if err := rel.Validate(); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(normalized(rel, rel.Name))
	b.WriteString(" AS name, ")
	b.WriteString(normalized(rel, rel.Code))
	b.WriteString(" AS code FROM ")
	b.WriteString(tableClause(rel.From))

	if rel.Join != nil {
		b.WriteString(" INNER JOIN ")
		b.WriteString(tableClause(rel.Join.Table))
		b.WriteString(" ON ")
		b.WriteString(column(rel, rel.Join.Left))
		b.WriteString(" = ")
		b.WriteString(column(rel, rel.Join.Right))
	}

	for i, cond := range rel.Where {
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		b.WriteString(column(rel, cond.Field))
		b.WriteString(" = ")
		b.WriteString(QuoteLiteral(cond.Equals))
	}
	return b.String(), nil
}

func tableClause(t model.TableRef) string {
	if t.Alias == "" {
		return QuoteIdentifier(t.Name)
	}
	return QuoteIdentifier(t.Name) + " AS " + QuoteIdentifier(t.Alias)
}

func column(rel model.Relation, f model.Field) string {
	table := f.Table
	if table == "" {
		table = rel.From.Ref()
	}
	return QuoteIdentifier(table) + "." + QuoteIdentifier(f.Column)
}

func normalized(rel model.Relation, f model.Field) string {
	switch rel.Normalize.OrDefault() {
	case model.NormalizeUpper:
		return "upper(" + column(rel, f) + ")"
	case model.NormalizeNone:
		return column(rel, f)
	default:
		return "lower(" + column(rel, f) + ")"
	}
}
