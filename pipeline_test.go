package tsvenn

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/tsvenn/domain/model"
)

// writeComparisonSources writes the files of the comparison fixture and
// returns their descriptor.
func writeComparisonSources(t *testing.T, dir string) string {
	t.Helper()

	imi := writeTestFile(t, dir, "imi.tsv", "IMI export\nname\tcode\nAspirin\tHeadache\nIbuprofen\tNausea\nWarfarin\tBleeding\n")
	drugs := writeTestFile(t, dir, "drugs.tsv", "1\taspirin\n2\tibuprofen\n3\tparacetamol\n")
	allSe := writeTestFile(t, dir, "all_se.tsv", "1\tPT\tHeadache\n2\tPT\tRash\n3\tPT\tNausea\n2\tPT\tnausea\n")
	return strings.Join([]string{imi, "2", drugs, "0", allSe, "0"}, model.DescriptorSeparator)
}

func TestPipeline_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes both artifacts and drops the tables", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		descriptor := writeComparisonSources(t, dir)
		listPath := filepath.Join(dir, "output", "common.tsv")
		diagramPath := filepath.Join(dir, "output", "venn.txt")

		p, err := NewBuilder().
			AddDescriptor(descriptor).
			Compare(imiRelation(), siderRelation()).
			WriteListTo(listPath).
			WriteDiagramTo(diagramPath).
			WithOptions(WithTableNaming(TableNameBase)).
			Build(context.Background())
		require.NoError(t, err)

		st := newTestStore(t)
		result, err := p.Run(context.Background(), st)
		require.NoError(t, err)

		_, err = uuid.Parse(result.RunID)
		require.NoError(t, err)
		assert.Equal(t, model.VennCounts{LeftOnly: 1, Both: 2, RightOnly: 2}, result.Counts)
		assert.Equal(t, []model.Pair{{Name: "aspirin", Code: "headache"}, {Name: "ibuprofen", Code: "nausea"}}, result.Intersection)
		assert.Equal(t, 3, result.Load.Succeeded())
		require.NotNil(t, result.Drop)
		assert.Equal(t, 3, result.Drop.Succeeded())
		assert.Empty(t, tableNames(t, st))

		list, err := os.ReadFile(listPath)
		require.NoError(t, err)
		assert.Equal(t, "aspirin\theadache\nibuprofen\tnausea\n", string(list))

		diagram, err := os.ReadFile(diagramPath)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSuffix(string(diagram), "\n"), "\n")
		require.Len(t, lines, 24)
		assert.Equal(t, "1", string(lines[12][10]))
		assert.Equal(t, "2", string(lines[12][28]))
		assert.Equal(t, "2", string(lines[12][46]))
		assert.Contains(t, lines[22], "I M I")
		assert.Contains(t, lines[22], "S i d e r")
	})

	t.Run("keep tables", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		p, err := NewBuilder().
			AddDescriptor(writeComparisonSources(t, dir)).
			Compare(imiRelation(), siderRelation()).
			KeepTables(true).
			WithOptions(WithTableNaming(TableNameBase)).
			Build(context.Background())
		require.NoError(t, err)

		st := newTestStore(t)
		result, err := p.Run(context.Background(), st)
		require.NoError(t, err)
		assert.Nil(t, result.Drop)
		assert.Empty(t, result.ListPath)
		assert.Empty(t, result.DiagramPath)
		assert.Equal(t, []string{"all_se", "drugs", "imi"}, tableNames(t, st))
	})

	t.Run("failed comparison still drops the tables", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		diagramPath := filepath.Join(dir, "venn.txt")
		p, err := NewBuilder().
			AddDescriptor(writeComparisonSources(t, dir)).
			Compare(imiRelation(), siderRelation()).
			WriteDiagramTo(diagramPath).
			Build(context.Background())
		require.NoError(t, err)

		st := newTestStore(t)
		result, err := p.Run(context.Background(), st)
		require.ErrorIs(t, err, ErrStatement)
		assert.Equal(t, 3, result.Load.Succeeded())
		assert.Equal(t, 3, result.Drop.Succeeded())
		assert.NoFileExists(t, diagramPath)
		assert.Empty(t, tableNames(t, st))
	})
	t.Run("missing source fails only its own pair", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		missing := filepath.Join(dir, "missing.tsv")
		listPath := filepath.Join(dir, "output", "common.tsv")
		diagramPath := filepath.Join(dir, "output", "venn.txt")
		p, err := NewBuilder().
			AddDescriptor(writeComparisonSources(t, dir)).
			AddSource(missing, 0).
			Compare(imiRelation(), siderRelation()).
			WriteListTo(listPath).
			WriteDiagramTo(diagramPath).
			WithOptions(WithTableNaming(TableNameBase)).
			Build(context.Background())
		require.NoError(t, err)

		st := newTestStore(t)
		result, err := p.Run(context.Background(), st)
		require.ErrorIs(t, err, ErrSourceUnreadable)

		assert.Equal(t, 3, result.Load.Succeeded())
		require.Len(t, result.Load.Failed(), 1)
		assert.Equal(t, missing, result.Load.Failed()[0].Pair.Source)
		assert.Equal(t, model.VennCounts{LeftOnly: 1, Both: 2, RightOnly: 2}, result.Counts)
		assert.Equal(t, listPath, result.ListPath)
		assert.Equal(t, diagramPath, result.DiagramPath)
		assert.FileExists(t, listPath)
		assert.FileExists(t, diagramPath)
		assert.Equal(t, 3, result.Drop.Succeeded())
		assert.Empty(t, result.Drop.Failed())
		assert.Empty(t, tableNames(t, st))
	})

	t.Run("tables the run did not create are kept", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		descriptor := writeComparisonSources(t, dir)
		st := newTestStore(t)

		loader := NewLoader(WithTableNaming(TableNameBase))
		_, err := loader.Load(context.Background(), st, filepath.Join(dir, "drugs.tsv"), 0)
		require.NoError(t, err)
		before := tableNames(t, st)

		p, err := NewBuilder().
			AddDescriptor(descriptor).
			Compare(imiRelation(), siderRelation()).
			WithOptions(WithTableNaming(TableNameBase)).
			Build(context.Background())
		require.NoError(t, err)

		result, err := p.Run(context.Background(), st)
		require.ErrorIs(t, err, ErrStatement)
		require.Len(t, result.Load.Failed(), 1)
		assert.Equal(t, "drugs", result.Load.Failed()[0].Table)
		assert.Equal(t, 2, result.Drop.Succeeded())
		assert.Empty(t, result.Drop.Failed())
		assert.Equal(t, []string{"drugs"}, before)
		assert.Equal(t, before, tableNames(t, st))
	})
}
