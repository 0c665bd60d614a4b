package tsvenn

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nao1215/tsvenn/domain/model"
)

func TestParseText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []model.Record
	}{
		{name: "empty", input: "", want: nil},
		{
			name:  "trailing newline is not a record",
			input: "a\tb\nc\td\n",
			want:  []model.Record{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "no trailing newline",
			input: "a\tb\nc\td",
			want:  []model.Record{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "carriage returns are stripped",
			input: "a\tb\r\nc\td\r\n",
			want:  []model.Record{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "empty fields are kept",
			input: "\t\tx\n",
			want:  []model.Record{{"", "", "x"}},
		},
		{
			name:  "blank line inside the file is a one field record",
			input: "a\n\nb\n",
			want:  []model.Record{{"a"}, {""}, {"b"}},
		},
		{
			name:  "quotes are not interpreted",
			input: "\"a\tb\"\tO'Brien\n",
			want:  []model.Record{{"\"a", "b\"", "O'Brien"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, parseText(tt.input))
		})
	}
}

func TestReadSource_Text(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, t.TempDir(), "drugs.tsv", "id\tname\n1\taspirin\n")
	src, err := readSource(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, path, src.path)
	assert.Equal(t, model.FormatText, src.format)
	assert.Equal(t, 18, src.size)
	assert.Equal(t, []model.Record{{"id", "name"}, {"1", "aspirin"}}, src.records)
}

func TestReadSource_Missing(t *testing.T) {
	t.Parallel()

	_, err := readSource(context.Background(), filepath.Join(t.TempDir(), "nope.tsv"))
	require.ErrorIs(t, err, ErrSourceUnreadable)
}

func TestReadSource_XLSX(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "id"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "name"))
	require.NoError(t, f.SetCellValue("Sheet1", "C1", "note"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "1"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", "aspirin"))

	path := filepath.Join(t.TempDir(), "drugs.xlsx")
	require.NoError(t, f.SaveAs(path))

	src, err := readSource(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, model.FormatXLSX, src.format)
	assert.Equal(t, []model.Record{{"id", "name", "note"}, {"1", "aspirin", ""}}, src.records)
}

func TestReadSource_Parquet(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pairs.parquet")
	pairs := []model.Pair{{Name: "aspirin", Code: "headache"}, {Name: "ibuprofen", Code: "nausea"}}
	require.NoError(t, WriteIntersectionList(path, pairs))

	src, err := readSource(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, model.FormatParquet, src.format)
	assert.Equal(t, []model.Record{
		{"name", "code"},
		{"aspirin", "headache"},
		{"ibuprofen", "nausea"},
	}, src.records)
}

func TestReadSource_EmptyBinaryFormats(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"empty.xlsx", "empty.parquet"} {
		path := writeTestFile(t, dir, name, "")
		_, err := readSource(context.Background(), path)
		require.ErrorIs(t, err, ErrSourceUnreadable, name)
	}
}
