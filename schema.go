package tsvenn

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nao1215/tsvenn/domain/model"
)

// columnPrefix is prepended to the 1-based column position
const columnPrefix = "A"

// columnName returns the generated name of the column at 0-based index i.
func columnName(i int) string {
	return columnPrefix + strconv.Itoa(i+1)
}

// inferSchema derives the schema of table from the records of a source:
// exactly headerSkip records are discarded and the field count of the next
// one becomes the column count.
func inferSchema(records []model.Record, headerSkip int, table string) (model.Schema, error) {
	if headerSkip < 0 {
		return model.Schema{}, fmt.Errorf("%w: negative header skip %d", ErrSourceUnreadable, headerSkip)
	}
	if len(records) <= headerSkip {
		return model.Schema{}, fmt.Errorf("%w: %d lines, header skip %d", ErrSourceUnreadable, len(records), headerSkip)
	}

	arity := records[headerSkip].Arity()
	columns := make([]string, arity)
	for i := range columns {
		columns[i] = columnName(i)
	}
	return model.Schema{Table: table, Columns: columns}, nil
}

// createStatement returns the CREATE TABLE statement for schema.
func createStatement(schema model.Schema) string {
	defs := make([]string, 0, schema.Arity())
	for _, col := range schema.Columns {
		defs = append(defs, col+" TEXT NOT NULL")
	}
	return fmt.Sprintf("CREATE TABLE %s (%s);", QuoteIdentifier(schema.Table), strings.Join(defs, ", "))
}

// dropStatement returns the DROP TABLE statement for table.
func dropStatement(table string) string {
	return "DROP TABLE " + QuoteIdentifier(table) + ";"
}
