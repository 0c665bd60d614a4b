package tsvenn

import (
	"github.com/nao1215/tsvenn/canvas"
	"github.com/nao1215/tsvenn/domain/model"
)

// Point is a (column, row) position on the diagram grid.
type Point struct {
	Col int
	Row int
}

// VennLayout holds the fixed geometry of a two-circle diagram. Text
// positions are constants of the layout and are not derived from the
// circles; text wider than its lobe overwrites whatever it spans.
type VennLayout struct {
	Rows   int
	Cols   int
	Radius int
	// LeftCentre and RightCentre are the circle centres
	LeftCentre  Point
	RightCentre Point
	// LeftCount, BothCount and RightCount are where the region counts start
	LeftCount  Point
	BothCount  Point
	RightCount Point
	// LeftLabel and RightLabel are where the relation labels start
	LeftLabel  Point
	RightLabel Point
}

// DefaultVennLayout returns the 24x48 layout with two radius 9 circles
// whose centres are one radius apart.
func DefaultVennLayout() VennLayout {
	return VennLayout{
		Rows:        24,
		Cols:        48,
		Radius:      9,
		LeftCentre:  Point{Col: 12, Row: 12},
		RightCentre: Point{Col: 21, Row: 12},
		LeftCount:   Point{Col: 5, Row: 12},
		BothCount:   Point{Col: 14, Row: 12},
		RightCount:  Point{Col: 23, Row: 12},
		LeftLabel:   Point{Col: 5, Row: 22},
		RightLabel:  Point{Col: 23, Row: 22},
	}
}

// VennText is the text drawn onto a diagram.
type VennText struct {
	LeftOnly   string
	Both       string
	RightOnly  string
	LeftLabel  string
	RightLabel string
}

// NewVennText returns the display text for counts under the two labels.
func NewVennText(counts model.VennCounts, leftLabel, rightLabel string) VennText {
	left, both, right := counts.Strings()
	return VennText{
		LeftOnly:   left,
		Both:       both,
		RightOnly:  right,
		LeftLabel:  leftLabel,
		RightLabel: rightLabel,
	}
}

// RenderVenn draws both circle outlines, then overlays the three region
// texts and the two labels.
func RenderVenn(text VennText, layout VennLayout) *canvas.Canvas {
	c := canvas.New(layout.Rows, layout.Cols)
	c.DrawCircle(layout.Radius, layout.LeftCentre.Col, layout.LeftCentre.Row)
	c.DrawCircle(layout.Radius, layout.RightCentre.Col, layout.RightCentre.Row)
	c.DrawText(text.LeftOnly, layout.LeftCount.Col, layout.LeftCount.Row)
	c.DrawText(text.Both, layout.BothCount.Col, layout.BothCount.Row)
	c.DrawText(text.RightOnly, layout.RightCount.Col, layout.RightCount.Row)
	c.DrawText(text.LeftLabel, layout.LeftLabel.Col, layout.LeftLabel.Row)
	c.DrawText(text.RightLabel, layout.RightLabel.Col, layout.RightLabel.Row)
	return c
}
