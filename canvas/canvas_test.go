package canvas

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	c := New(3, 4)
	assert.Equal(t, 3, c.Rows())
	assert.Equal(t, 4, c.Cols())
	for row := range 3 {
		for col := range 4 {
			assert.Equal(t, byte(Blank), c.At(col, row))
		}
	}

	empty := New(-1, -5)
	assert.Equal(t, 0, empty.Rows())
	assert.Equal(t, 0, empty.Cols())
	assert.Empty(t, empty.String())
}

func TestCanvas_DrawCircle(t *testing.T) {
	t.Parallel()

	t.Run("small circle hits exactly the axis points", func(t *testing.T) {
		t.Parallel()

		c := New(5, 5)
		c.DrawCircle(2, 2, 2)

		want := []string{
			"  *  ",
			"     ",
			"*   *",
			"     ",
			"  *  ",
		}
		for row, line := range want {
			for col := range line {
				assert.Equal(t, line[col], c.At(col, row), "cell (%d, %d)", col, row)
			}
		}
	})

	t.Run("ring of radius 9 is closed around the centre", func(t *testing.T) {
		t.Parallel()

		c := New(24, 48)
		c.DrawCircle(9, 12, 12)

		assert.Equal(t, byte(Ring), c.At(12, 3), "top")
		assert.Equal(t, byte(Ring), c.At(12, 21), "bottom")
		assert.Equal(t, byte(Ring), c.At(3, 12), "left")
		assert.Equal(t, byte(Ring), c.At(21, 12), "right")
		assert.Equal(t, byte(Blank), c.At(12, 12), "centre")
		assert.Equal(t, byte(Blank), c.At(40, 12), "outside")
	})

	t.Run("circle partly outside the grid is clipped", func(t *testing.T) {
		t.Parallel()

		c := New(4, 4)
		assert.NotPanics(t, func() { c.DrawCircle(3, 0, 0) })
		assert.Equal(t, byte(Ring), c.At(3, 0))
	})
}

func TestCanvas_DrawText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		col  int
		row  int
		want string
	}{
		{name: "inside", text: "ab", col: 1, row: 0, want: " ab   "},
		{name: "clipped at right edge", text: "abcdef", col: 3, row: 0, want: "   abc"},
		{name: "clipped at left edge", text: "abc", col: -1, row: 0, want: "bc    "},
		{name: "row below grid is ignored", text: "abc", col: 0, row: 5, want: "      "},
		{name: "negative row is ignored", text: "abc", col: 0, row: -1, want: "      "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := New(1, 6)
			c.DrawText(tt.text, tt.col, tt.row)

			got := make([]byte, 0, 6)
			for col := range 6 {
				got = append(got, c.At(col, 0))
			}
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestCanvas_DrawTextOverwritesRing(t *testing.T) {
	t.Parallel()

	c := New(5, 5)
	c.DrawCircle(2, 2, 2)
	c.DrawText("xyz", 0, 2)

	assert.Equal(t, byte('x'), c.At(0, 2))
	assert.Equal(t, byte('y'), c.At(1, 2))
	assert.Equal(t, byte('z'), c.At(2, 2))
	assert.Equal(t, byte(Ring), c.At(4, 2))
}

func TestCanvas_WriteTo(t *testing.T) {
	t.Parallel()

	c := New(2, 3)
	c.DrawText("ab", 0, 1)

	var buf bytes.Buffer
	n, err := c.WriteTo(&buf)
	require.NoError(t, err)

	want := "      \na b   \n"
	assert.Equal(t, want, buf.String())
	assert.Equal(t, int64(len(want)), n)
	assert.Equal(t, want, c.String())

	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	for _, line := range lines {
		assert.Len(t, line, 2*c.Cols())
	}
}
