// Package canvas draws circles and text onto a fixed-size character grid.
package canvas

import (
	"bufio"
	"io"
	"strings"
)

const (
	// Blank fills every cell of a new canvas
	Blank = ' '
	// Ring is plotted for every cell on a circle outline
	Ring = '*'
	// ringTolerance scales the radius into the accepted band around r²
	ringTolerance = 0.8
)

// Canvas is a grid of single-byte cells addressed by (col, row) from the
// top left corner. Text is treated as bytes.
type Canvas struct {
	cells [][]byte
	cols  int
}

// New returns a blank canvas. Negative sizes are treated as zero.
func New(rows, cols int) *Canvas {
	rows = max(rows, 0)
	cols = max(cols, 0)
	cells := make([][]byte, rows)
	for i := range cells {
		line := make([]byte, cols)
		for j := range line {
			line[j] = Blank
		}
		cells[i] = line
	}
	return &Canvas{cells: cells, cols: cols}
}

// Rows returns the number of rows.
func (c *Canvas) Rows() int {
	return len(c.cells)
}

// Cols returns the number of columns.
func (c *Canvas) Cols() int {
	return c.cols
}

// At returns the cell at (col, row), or Blank outside the grid.
func (c *Canvas) At(col, row int) byte {
	if row < 0 || row >= len(c.cells) || col < 0 || col >= c.cols {
		return Blank
	}
	return c.cells[row][col]
}

// DrawCircle plots the outline of a circle of the given radius centred on
// (cx, cy). A cell at offset (x, y) from the centre, y growing upwards, is
// plotted when r²-d < x²+y² < r²+d with d = int(0.8*r), which keeps the ring
// continuous despite integer rounding.
func (c *Canvas) DrawCircle(radius, cx, cy int) {
	delta := int(ringTolerance * float64(radius))
	minsq := radius*radius - delta
	maxsq := radius*radius + delta

	for row := range c.cells {
		for col := range c.cells[row] {
			x := col - cx
			y := cy - row
			sumsq := x*x + y*y
			if minsq < sumsq && sumsq < maxsq {
				c.cells[row][col] = Ring
			}
		}
	}
}

// DrawText overwrites the cells starting at (col, row) with text. Text
// running past the right edge is clipped; a row outside the grid is ignored.
func (c *Canvas) DrawText(text string, col, row int) {
	if row < 0 || row >= len(c.cells) {
		return
	}
	for i := 0; i < len(text); i++ {
		x := col + i
		if x < 0 {
			continue
		}
		if x >= c.cols {
			return
		}
		c.cells[row][x] = text[i]
	}
}

// WriteTo prints every row with a space after each cell and a newline after
// each row.
func (c *Canvas) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, line := range c.cells {
		for _, cell := range line {
			written, err := bw.Write([]byte{cell, ' '})
			n += int64(written)
			if err != nil {
				return n, err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return n, err
		}
		n++
	}
	return n, bw.Flush()
}

// String returns what WriteTo prints.
func (c *Canvas) String() string {
	var b strings.Builder
	_, _ = c.WriteTo(&b) // strings.Builder never fails
	return b.String()
}
