package tsvenn

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	pqfile "github.com/apache/arrow/go/v18/parquet/file"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
	"github.com/xuri/excelize/v2"

	"github.com/nao1215/tsvenn/domain/model"
)

const (
	// Delimiter separates the fields of a text record
	Delimiter = "\t"
	// lineSeparator separates the records of a text source
	lineSeparator = "\n"
)

// source is a fully read source file.
type source struct {
	path    string
	format  model.Format
	records []model.Record
	// size is the number of bytes read after decompression
	size int
}

// readSource reads the whole file at path into memory and splits it into
// records. Text files are split on newlines and tabs; the first sheet of an
// XLSX workbook and every row of a Parquet file are returned with the
// header (sheet row 1, Parquet field names) as the first record.
func readSource(ctx context.Context, path string) (*source, error) {
	reader, cleanup, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cleanup() // Ignore close error, all data is already read
	}()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnreadable, path, err)
	}

	src := &source{
		path:   path,
		format: model.DetectFormat(path),
		size:   len(data),
	}

	switch src.format {
	case model.FormatXLSX:
		src.records, err = parseXLSX(data)
	case model.FormatParquet:
		src.records, err = parseParquet(ctx, data)
	default:
		src.records = parseText(string(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnreadable, path, err)
	}
	return src, nil
}

// parseText splits delimited text into records. A trailing carriage
// return is dropped from every line, and the empty string after a final
// newline is not a record. Fields are not unquoted.
func parseText(data string) []model.Record {
	if data == "" {
		return nil
	}

	lines := strings.Split(data, lineSeparator)
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	records := make([]model.Record, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		records = append(records, model.NewRecord(strings.Split(line, Delimiter)))
	}
	return records
}

// parseXLSX returns the rows of the first sheet. excelize trims trailing
// empty cells, so every row is padded to the widest one.
func parseXLSX(data []byte) ([]model.Record, error) {
	if len(data) == 0 {
		return nil, errors.New("empty XLSX file")
	}

	xlsxFile, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer func() {
		_ = xlsxFile.Close() // Ignore close error
	}()

	sheets := xlsxFile.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("no sheets found in XLSX file")
	}

	rows, err := xlsxFile.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}

	records := make([]model.Record, 0, len(rows))
	for _, row := range rows {
		record := make(model.Record, width)
		copy(record, row)
		records = append(records, record)
	}
	return records, nil
}

// parseParquet returns the field names followed by every row rendered as
// text. Null values become empty strings.
func parseParquet(ctx context.Context, data []byte) ([]model.Record, error) {
	if len(data) == 0 {
		return nil, errors.New("empty parquet file")
	}

	pqReader, err := pqfile.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer pqReader.Close()

	arrowReader, err := pqarrow.NewFileReader(pqReader, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	table, err := arrowReader.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}
	defer table.Release()

	fields := table.Schema().Fields()
	header := make(model.Record, len(fields))
	for i, field := range fields {
		header[i] = field.Name
	}

	records := make([]model.Record, 0, table.NumRows()+1)
	records = append(records, header)

	tableReader := array.NewTableReader(table, 0)
	defer tableReader.Release()

	for tableReader.Next() {
		batch := tableReader.Record()
		for i := 0; i < int(batch.NumRows()); i++ {
			record := make(model.Record, batch.NumCols())
			for j, col := range batch.Columns() {
				if col.IsNull(i) {
					continue
				}
				record[j] = col.ValueStr(i)
			}
			records = append(records, record)
		}
	}
	if err := tableReader.Err(); err != nil {
		return nil, fmt.Errorf("error reading table records: %w", err)
	}
	return records, nil
}
