package model

import (
	"errors"
	"testing"
)

func joinedRelation() Relation {
	return Relation{
		Label: "sider",
		From:  TableRef{Name: "meddra_all_se.tsv", Alias: "se"},
		Join: &JoinSpec{
			Table: TableRef{Name: "drug_names.tsv", Alias: "drug"},
			Left:  Field{Table: "drug", Column: "A1"},
			Right: Field{Table: "se", Column: "A1"},
		},
		Name:  Field{Table: "drug", Column: "A2"},
		Code:  Field{Table: "se", Column: "A6"},
		Where: []Condition{{Field: Field{Table: "se", Column: "A4"}, Equals: "PT"}},
	}
}

func TestRelation_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(r *Relation)
		wantErr bool
	}{
		{name: "Valid joined relation", mutate: func(_ *Relation) {}},
		{
			name: "Valid single table relation",
			mutate: func(r *Relation) {
				r.Join = nil
				r.Where = nil
				r.Name = Field{Column: "A2"}
				r.Code = Field{Column: "A9"}
			},
		},
		{name: "Empty from", mutate: func(r *Relation) { r.From.Name = "" }, wantErr: true},
		{name: "Empty name column", mutate: func(r *Relation) { r.Name.Column = "" }, wantErr: true},
		{name: "Unknown table", mutate: func(r *Relation) { r.Code.Table = "nope" }, wantErr: true},
		{name: "Unknown normalization", mutate: func(r *Relation) { r.Normalize = "title" }, wantErr: true},
		{name: "Join without table", mutate: func(r *Relation) { r.Join.Table.Name = "" }, wantErr: true},
		{
			name: "Join alias clashes with from",
			mutate: func(r *Relation) {
				r.Join.Table.Alias = "se"
			},
			wantErr: true,
		},
		{name: "Empty where column", mutate: func(r *Relation) { r.Where[0].Field.Column = "" }, wantErr: true},
		{name: "Join referencing where table is missing", mutate: func(r *Relation) { r.Join = nil }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := joinedRelation()
			tt.mutate(&r)
			err := r.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRelation) {
					t.Errorf("expected ErrInvalidRelation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestNormalization_OrDefault(t *testing.T) {
	t.Parallel()

	if Normalization("").OrDefault() != NormalizeLower {
		t.Error("zero normalization should default to lower")
	}
	if NormalizeNone.OrDefault() != NormalizeNone {
		t.Error("explicit normalization should be kept")
	}
}

func TestTableRef_Ref(t *testing.T) {
	t.Parallel()

	if (TableRef{Name: "a.tsv"}).Ref() != "a.tsv" {
		t.Error("expected table name without alias")
	}
	if (TableRef{Name: "a.tsv", Alias: "a"}).Ref() != "a" {
		t.Error("expected alias")
	}
}
