package tsvenn

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nao1215/tsvenn/domain/model"
)

// TableNaming decides how a source identifier becomes a table name
type TableNaming int

const (
	// TableNamePath uses the source identifier verbatim, e.g.
	// "input/drug_names.tsv" becomes table "input/drug_names.tsv" (default)
	TableNamePath TableNaming = iota
	// TableNameBase uses the file name without directory and extensions,
	// e.g. "input/drug_names.tsv.gz" becomes table "drug_names"
	TableNameBase
)

// String returns the configuration name of the naming mode
func (n TableNaming) String() string {
	if n == TableNameBase {
		return "base"
	}
	return "path"
}

// ParseTableNaming parses "path" or "base"; the empty string means "path".
func ParseTableNaming(s string) (TableNaming, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "path":
		return TableNamePath, nil
	case "base":
		return TableNameBase, nil
	default:
		return TableNamePath, fmt.Errorf("tsvenn: unknown table naming %q", s)
	}
}

// TableName returns the table a source identifier is loaded into.
func (n TableNaming) TableName(source string) string {
	if n == TableNameBase {
		return tableFromFilePath(source)
	}
	return source
}

// tableFromFilePath creates table name from file path
func tableFromFilePath(filePath string) string {
	fileName := filepath.Base(model.TrimCompression(filePath))
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}
