package model

import "fmt"

// Position is a location inside source text. Lines are 1-indexed, columns are
// 0-indexed byte offsets within the line.
type Position struct {
	Line   int
	Column int
}

// Less reports whether p sorts before o.
func (p Position) Less(o Position) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}

	return p.Column < o.Column
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Region is the half-open range [Start, End) of source text covered by a
// syntax node.
type Region struct {
	Start Position
	End   Position
}

func (r Region) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// Edit replaces the text covered by Region with Text. An empty Text deletes
// the region.
type Edit struct {
	Region Region
	Text   string
}
