package tsvenn

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nao1215/tsvenn/domain/model"
	"github.com/nao1215/tsvenn/store"
)

// newTestStore opens a private in-memory store closed at test end.
func newTestStore(t *testing.T) *store.SQLite {
	t.Helper()

	st, err := store.Open(context.Background(), store.Memory)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

// writeTestFile writes content to name inside dir and returns the path.
func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// queryAll returns every row of table in insertion order.
func queryAll(t *testing.T, st Store, table string) []model.Row {
	t.Helper()

	rows, err := st.Query(context.Background(), "SELECT * FROM "+QuoteIdentifier(table)+" ORDER BY rowid;")
	require.NoError(t, err)
	return rows
}

// tableNames lists the tables of a store.
func tableNames(t *testing.T, st *store.SQLite) []string {
	t.Helper()

	names, err := st.Tables(context.Background())
	require.NoError(t, err)
	return names
}
