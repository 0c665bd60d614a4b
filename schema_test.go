package tsvenn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/tsvenn/domain/model"
)

func TestInferSchema(t *testing.T) {
	t.Parallel()

	records := []model.Record{
		{"title line"},
		{"id", "name", "code"},
		{"1", "aspirin", "PT"},
	}

	tests := []struct {
		name       string
		headerSkip int
		want       []string
	}{
		{name: "no skip uses the first line", headerSkip: 0, want: []string{"A1"}},
		{name: "skip one", headerSkip: 1, want: []string{"A1", "A2", "A3"}},
		{name: "skip to last line", headerSkip: 2, want: []string{"A1", "A2", "A3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			schema, err := inferSchema(records, tt.headerSkip, "t")
			require.NoError(t, err)
			assert.Equal(t, "t", schema.Table)
			assert.Equal(t, tt.want, schema.Columns)
		})
	}
}

func TestInferSchema_Errors(t *testing.T) {
	t.Parallel()

	records := []model.Record{{"a"}, {"b"}}

	_, err := inferSchema(records, 2, "t")
	require.ErrorIs(t, err, ErrSourceUnreadable)

	_, err = inferSchema(nil, 0, "t")
	require.ErrorIs(t, err, ErrSourceUnreadable)

	_, err = inferSchema(records, -1, "t")
	require.ErrorIs(t, err, ErrSourceUnreadable)
}

func TestCreateStatement(t *testing.T) {
	t.Parallel()

	schema := model.Schema{Table: `in"put.tsv`, Columns: []string{"A1", "A2"}}
	assert.Equal(t, `CREATE TABLE "in""put.tsv" (A1 TEXT NOT NULL, A2 TEXT NOT NULL);`, createStatement(schema))
}

func TestDropStatement(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `DROP TABLE "input\meddra.tsv";`, dropStatement(`input\meddra.tsv`))
}

func TestColumnName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "A1", columnName(0))
	assert.Equal(t, "A10", columnName(9))
}
