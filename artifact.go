package tsvenn

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/apache/arrow/go/v18/parquet"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
	"github.com/xuri/excelize/v2"

	"github.com/nao1215/tsvenn/canvas"
	"github.com/nao1215/tsvenn/domain/model"
)

const (
	// listSheet is the sheet an XLSX intersection list is written to
	listSheet = "Sheet1"
	// parquetChunkSize is the row group size of a Parquet intersection list
	parquetChunkSize = 1024 * 1024
)

// listHeader names the two columns of XLSX and Parquet lists. Text lists
// carry no header line.
var listHeader = []string{"name", "code"}

// WriteIntersectionList writes pairs to path in the format implied by its
// extension: one "name<TAB>code" line per pair for text, a single sheet for
// .xlsx, two string columns for .parquet. A compression suffix such as
// ".gz" or ".zst" compresses the output. Missing parent directories are
// created.
func WriteIntersectionList(path string, pairs []model.Pair) error {
	ec := NewErrorContext("write list", path)

	var buf bytes.Buffer
	var err error
	switch model.DetectFormat(path) {
	case model.FormatXLSX:
		err = encodeXLSXList(&buf, pairs)
	case model.FormatParquet:
		err = encodeParquetList(&buf, pairs)
	default:
		err = encodeTextList(&buf, pairs)
	}
	if err != nil {
		return ec.Error(err)
	}

	if err := writeArtifact(path, &buf); err != nil {
		return ec.Error(err)
	}
	return nil
}

// WriteDiagram writes the printed canvas to path as plain text, compressed
// when path has a compression suffix.
func WriteDiagram(path string, c *canvas.Canvas) error {
	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return NewErrorContext("write diagram", path).Error(err)
	}
	if err := writeArtifact(path, &buf); err != nil {
		return NewErrorContext("write diagram", path).Error(err)
	}
	return nil
}

// writeArtifact copies r to a newly created file at path.
func writeArtifact(path string, r io.Reader) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	w, cleanup, err := createArtifact(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := cleanup(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", closeErr)
		}
	}()

	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func encodeTextList(w io.Writer, pairs []model.Pair) error {
	for _, p := range pairs {
		if _, err := io.WriteString(w, p.Name+Delimiter+p.Code+lineSeparator); err != nil {
			return err
		}
	}
	return nil
}

func encodeXLSXList(w io.Writer, pairs []model.Pair) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close() // Ignore close error, the workbook is already written
	}()

	header := []any{listHeader[0], listHeader[1]}
	if err := f.SetSheetRow(listSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write XLSX header: %w", err)
	}
	for i, p := range pairs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address XLSX row %d: %w", i+2, err)
		}
		row := []any{p.Name, p.Code}
		if err := f.SetSheetRow(listSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write XLSX row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write XLSX file: %w", err)
	}
	return nil
}

func encodeParquetList(w io.Writer, pairs []model.Pair) error {
	fields := make([]arrow.Field, len(listHeader))
	for i, name := range listHeader {
		fields[i] = arrow.Field{Name: name, Type: arrow.BinaryTypes.String}
	}
	schema := arrow.NewSchema(fields, nil)

	names := array.NewStringBuilder(memory.DefaultAllocator)
	defer names.Release()
	codes := array.NewStringBuilder(memory.DefaultAllocator)
	defer codes.Release()
	for _, p := range pairs {
		names.Append(p.Name)
		codes.Append(p.Code)
	}

	cols := []arrow.Array{names.NewArray(), codes.NewArray()}
	defer func() {
		for _, col := range cols {
			col.Release()
		}
	}()

	record := array.NewRecord(schema, cols, int64(len(pairs)))
	defer record.Release()

	table := array.NewTableFromRecords(schema, []arrow.Record{record})
	defer table.Release()

	if err := pqarrow.WriteTable(table, w, parquetChunkSize, parquet.NewWriterProperties(), pqarrow.DefaultWriterProps()); err != nil {
		return fmt.Errorf("failed to write parquet file: %w", err)
	}
	return nil
}
