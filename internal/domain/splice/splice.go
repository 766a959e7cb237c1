// Package splice rewrites source text through line/column regions, copying
// everything outside the edited regions verbatim.
package splice

import (
	"sort"
	"strings"

	m "github.com/mouse-blink/cherrypick/internal/model"
)

// Rewrite applies edits to source. Edits must be sorted by start position and
// must not overlap.
func Rewrite(source string, edits []m.Edit) string {
	lines := splitLines(source)

	var b strings.Builder
	b.Grow(len(source))

	next, col := 0, 0

	for _, edit := range edits {
		start := edit.Region.Start.Line - 1
		for ; next < start && next < len(lines); next++ {
			b.WriteString(cut(lines[next], col, len(lines[next])))
			col = 0
		}

		if next < len(lines) {
			b.WriteString(cut(lines[next], col, edit.Region.Start.Column))
		}

		b.WriteString(edit.Text)

		next = edit.Region.End.Line - 1
		col = edit.Region.End.Column
	}

	for ; next < len(lines); next++ {
		b.WriteString(cut(lines[next], col, len(lines[next])))
		col = 0
	}

	return b.String()
}

// Delete removes every region from source. Regions must be sorted and must not
// overlap.
func Delete(source string, regions []m.Region) string {
	edits := make([]m.Edit, 0, len(regions))
	for _, region := range regions {
		edits = append(edits, m.Edit{Region: region})
	}

	return Rewrite(source, edits)
}

// Replace substitutes text for every region. Regions must be sorted and must
// not overlap.
func Replace(source string, regions []m.Region, text string) string {
	edits := make([]m.Edit, 0, len(regions))
	for _, region := range regions {
		edits = append(edits, m.Edit{Region: region, Text: text})
	}

	return Rewrite(source, edits)
}

// Extract returns the text covered by region.
func Extract(source string, region m.Region) string {
	lines := splitLines(source)

	first, last := region.Start.Line-1, region.End.Line-1
	if first < 0 || first >= len(lines) {
		return ""
	}

	if first == last {
		return cut(lines[first], region.Start.Column, region.End.Column)
	}

	var b strings.Builder

	b.WriteString(cut(lines[first], region.Start.Column, len(lines[first])))

	for i := first + 1; i < last && i < len(lines); i++ {
		b.WriteString(lines[i])
	}

	if last < len(lines) {
		b.WriteString(cut(lines[last], 0, region.End.Column))
	}

	return b.String()
}

// Sort orders edits by start position, keeping the relative order of edits
// that start at the same place.
func Sort(edits []m.Edit) {
	sort.SliceStable(edits, func(i, j int) bool {
		return edits[i].Region.Start.Less(edits[j].Region.Start)
	})
}

// splitLines keeps each line's terminator so that joining the result gives
// back the input.
func splitLines(source string) []string {
	return strings.SplitAfter(source, "\n")
}

func cut(line string, from, to int) string {
	from = min(max(from, 0), len(line))
	to = min(max(to, from), len(line))

	return line[from:to]
}
