package model

import (
	"fmt"
	"strings"
)

// Normalization is the case folding applied to both projected fields
// before two relations are compared.
type Normalization string

const (
	// NormalizeLower folds text to lower case (default)
	NormalizeLower Normalization = "lower"
	// NormalizeUpper folds text to upper case
	NormalizeUpper Normalization = "upper"
	// NormalizeNone compares text as stored
	NormalizeNone Normalization = "none"
)

// Valid reports whether n is a known normalization. The zero value is valid
// and means NormalizeLower.
func (n Normalization) Valid() bool {
	switch n {
	case "", NormalizeLower, NormalizeUpper, NormalizeNone:
		return true
	default:
		return false
	}
}

// OrDefault returns NormalizeLower for the zero value.
func (n Normalization) OrDefault() Normalization {
	if n == "" {
		return NormalizeLower
	}
	return n
}

// TableRef names a base table and the alias it is referred to by.
type TableRef struct {
	Name  string `yaml:"name"`
	Alias string `yaml:"alias,omitempty"`
}

// Ref returns the alias, or the table name when no alias is set.
func (t TableRef) Ref() string {
	if t.Alias != "" {
		return t.Alias
	}
	return t.Name
}

// Field is a column of one of the relation's tables. An empty Table means
// the relation's From table.
type Field struct {
	Table  string `yaml:"table,omitempty"`
	Column string `yaml:"column"`
}

// Condition keeps only rows whose field equals a literal value.
type Condition struct {
	Field  Field  `yaml:"field"`
	Equals string `yaml:"equals"`
}

// JoinSpec inner-joins a second table on one key pair.
type JoinSpec struct {
	Table TableRef `yaml:"table"`
	Left  Field    `yaml:"left"`
	Right Field    `yaml:"right"`
}

// Relation is a declarative (name, code) projection over one or two base
// tables. It is compiled to a SELECT and used only as a set-algebra operand.
type Relation struct {
	Label     string        `yaml:"label"`
	From      TableRef      `yaml:"from"`
	Join      *JoinSpec     `yaml:"join,omitempty"`
	Name      Field         `yaml:"name"`
	Code      Field         `yaml:"code"`
	Where     []Condition   `yaml:"where,omitempty"`
	Normalize Normalization `yaml:"normalize,omitempty"`
}

// Tables returns the references the relation's fields may use.
func (r Relation) Tables() []TableRef {
	refs := []TableRef{r.From}
	if r.Join != nil {
		refs = append(refs, r.Join.Table)
	}
	return refs
}

// Validate checks that every field resolves to one of the relation's tables.
func (r Relation) Validate() error {
	if strings.TrimSpace(r.From.Name) == "" {
		return fmt.Errorf("%w: %s: from table is empty", ErrInvalidRelation, r.Label)
	}
	if !r.Normalize.Valid() {
		return fmt.Errorf("%w: %s: unknown normalization %q", ErrInvalidRelation, r.Label, r.Normalize)
	}
	if r.Join != nil {
		if strings.TrimSpace(r.Join.Table.Name) == "" {
			return fmt.Errorf("%w: %s: join table is empty", ErrInvalidRelation, r.Label)
		}
		if r.Join.Table.Ref() == r.From.Ref() {
			return fmt.Errorf("%w: %s: join table needs an alias distinct from %q", ErrInvalidRelation, r.Label, r.From.Ref())
		}
	}

	fields := map[string]Field{"name": r.Name, "code": r.Code}
	if r.Join != nil {
		fields["join left"] = r.Join.Left
		fields["join right"] = r.Join.Right
	}
	for i, c := range r.Where {
		fields[fmt.Sprintf("where[%d]", i)] = c.Field
	}
	for role, f := range fields {
		if strings.TrimSpace(f.Column) == "" {
			return fmt.Errorf("%w: %s: %s column is empty", ErrInvalidRelation, r.Label, role)
		}
		if !r.resolves(f) {
			return fmt.Errorf("%w: %s: %s refers to unknown table %q", ErrInvalidRelation, r.Label, role, f.Table)
		}
	}
	return nil
}

func (r Relation) resolves(f Field) bool {
	if f.Table == "" {
		return true
	}
	for _, t := range r.Tables() {
		if f.Table == t.Ref() {
			return true
		}
	}
	return false
}
