package tsvenn

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/tsvenn/canvas"
	"github.com/nao1215/tsvenn/domain/model"
)

func TestDefaultVennLayout(t *testing.T) {
	t.Parallel()

	layout := DefaultVennLayout()
	assert.Equal(t, 24, layout.Rows)
	assert.Equal(t, 48, layout.Cols)
	assert.Equal(t, 9, layout.Radius)
	assert.Equal(t, layout.Radius, layout.RightCentre.Col-layout.LeftCentre.Col)
}

func TestRenderVenn(t *testing.T) {
	t.Parallel()

	layout := DefaultVennLayout()
	text := VennText{LeftOnly: "5", Both: "12", RightOnly: "7", LeftLabel: "IMI", RightLabel: "Sider"}
	got := RenderVenn(text, layout)

	require.Equal(t, 24, got.Rows())
	require.Equal(t, 48, got.Cols())

	readAt := func(p Point, n int) string {
		var b strings.Builder
		for i := range n {
			b.WriteByte(got.At(p.Col+i, p.Row))
		}
		return b.String()
	}
	assert.Equal(t, "5", readAt(layout.LeftCount, 1))
	assert.Equal(t, "12", readAt(layout.BothCount, 2))
	assert.Equal(t, "7", readAt(layout.RightCount, 1))
	assert.Equal(t, "IMI", readAt(layout.LeftLabel, 3))
	assert.Equal(t, "Sider", readAt(layout.RightLabel, 5))

	t.Run("counts sit between the ring crossings of their lobe", func(t *testing.T) {
		t.Parallel()

		row := layout.LeftCount.Row
		crossings := make([]int, 0)
		for col := range layout.Cols {
			if got.At(col, row) == canvas.Ring {
				crossings = append(crossings, col)
			}
		}
		require.Equal(t, []int{3, 12, 21, 30}, crossings)

		assert.True(t, crossings[0] < 5 && 5 < crossings[1])
		assert.True(t, crossings[1] < 14 && 15 < crossings[2])
		assert.True(t, crossings[2] < 23 && 23 < crossings[3])
	})

	t.Run("ring outside the overlays is untouched", func(t *testing.T) {
		t.Parallel()

		circles := canvas.New(layout.Rows, layout.Cols)
		circles.DrawCircle(layout.Radius, layout.LeftCentre.Col, layout.LeftCentre.Row)
		circles.DrawCircle(layout.Radius, layout.RightCentre.Col, layout.RightCentre.Row)

		overlays := map[Point]int{
			layout.LeftCount:  1,
			layout.BothCount:  2,
			layout.RightCount: 1,
			layout.LeftLabel:  3,
			layout.RightLabel: 5,
		}
		covered := func(col, row int) bool {
			for p, n := range overlays {
				if row == p.Row && col >= p.Col && col < p.Col+n {
					return true
				}
			}
			return false
		}

		for row := range layout.Rows {
			for col := range layout.Cols {
				if covered(col, row) {
					continue
				}
				assert.Equal(t, circles.At(col, row), got.At(col, row), "cell (%d, %d)", col, row)
			}
		}
	})

	t.Run("printed form", func(t *testing.T) {
		t.Parallel()

		lines := strings.Split(strings.TrimSuffix(got.String(), "\n"), "\n")
		require.Len(t, lines, 24)
		for _, line := range lines {
			assert.Len(t, line, 96)
		}
		assert.True(t, strings.HasPrefix(lines[22], "          I M I "))
	})
}

func TestNewVennText(t *testing.T) {
	t.Parallel()

	text := NewVennText(model.VennCounts{LeftOnly: 5, Both: 12, RightOnly: 7}, "IMI", "Sider")
	assert.Equal(t, VennText{LeftOnly: "5", Both: "12", RightOnly: "7", LeftLabel: "IMI", RightLabel: "Sider"}, text)
}
