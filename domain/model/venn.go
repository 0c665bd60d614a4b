package model

import "strconv"

// Pair is one (name, code) tuple of a comparison relation.
type Pair struct {
	Name string
	Code string
}

// VennCounts holds the three region cardinalities of two relations.
type VennCounts struct {
	// LeftOnly is |left EXCEPT right|.
	LeftOnly int64
	// Both is |left INTERSECT right|.
	Both int64
	// RightOnly is |right EXCEPT left|.
	RightOnly int64
}

// Left returns the distinct size of the left relation.
func (v VennCounts) Left() int64 {
	return v.LeftOnly + v.Both
}

// Right returns the distinct size of the right relation.
func (v VennCounts) Right() int64 {
	return v.RightOnly + v.Both
}

// Strings returns the display strings for the left, overlap and right lobes.
func (v VennCounts) Strings() (left, both, right string) {
	return strconv.FormatInt(v.LeftOnly, 10),
		strconv.FormatInt(v.Both, 10),
		strconv.FormatInt(v.RightOnly, 10)
}
