package splice

import (
	"sort"

	m "github.com/mouse-blink/cherrypick/internal/model"
)

// Index maps byte offsets of a source text to line/column positions.
type Index struct {
	lineStarts []int
}

// NewIndex scans source for line starts.
func NewIndex(source string) *Index {
	starts := []int{0}

	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, i+1)
		}
	}

	return &Index{lineStarts: starts}
}

// Position converts a byte offset into a Position.
func (x *Index) Position(offset int) m.Position {
	line := sort.Search(len(x.lineStarts), func(i int) bool {
		return x.lineStarts[i] > offset
	}) - 1
	if line < 0 {
		line = 0
	}

	return m.Position{Line: line + 1, Column: offset - x.lineStarts[line]}
}

// Region converts the byte range [start, end) into a Region.
func (x *Index) Region(start, end int) m.Region {
	return m.Region{Start: x.Position(start), End: x.Position(end)}
}
