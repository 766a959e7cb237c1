package splice

import (
	"testing"

	m "github.com/mouse-blink/cherrypick/internal/model"
	"github.com/stretchr/testify/assert"
)

func region(sl, sc, el, ec int) m.Region {
	return m.Region{Start: m.Position{Line: sl, Column: sc}, End: m.Position{Line: el, Column: ec}}
}

func TestRewrite_NoEditsIsIdentity(t *testing.T) {
	inputs := []string{
		"",
		"no newline",
		"fn main() {}\n",
		"a\r\nb\r\n",
		"\n\n\n",
		"use std::io;\n// trailing comment",
	}

	for _, input := range inputs {
		assert.Equal(t, input, Rewrite(input, nil))
	}
}

func TestRewrite(t *testing.T) {
	source := "use a;\nmod b;\nfn c() {}\n"

	tests := []struct {
		name  string
		edits []m.Edit
		want  string
	}{
		{
			name:  "delete single line item",
			edits: []m.Edit{{Region: region(1, 0, 1, 6)}},
			want:  "\nmod b;\nfn c() {}\n",
		},
		{
			name:  "replace token inside a line",
			edits: []m.Edit{{Region: region(2, 5, 2, 6), Text: " {\n}"}},
			want:  "use a;\nmod b {\n}\nfn c() {}\n",
		},
		{
			name: "two edits on the same line",
			edits: []m.Edit{
				{Region: region(3, 0, 3, 2), Text: "pub fn"},
				{Region: region(3, 3, 3, 4), Text: "d"},
			},
			want: "use a;\nmod b;\npub fn d() {}\n",
		},
		{
			name:  "multi line region",
			edits: []m.Edit{{Region: region(1, 4, 3, 2), Text: "X"}},
			want:  "use X c() {}\n",
		},
		{
			name: "sequential edits across lines",
			edits: []m.Edit{
				{Region: region(1, 0, 1, 6)},
				{Region: region(2, 5, 2, 6), Text: " {}"},
			},
			want: "\nmod b {}\nfn c() {}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Rewrite(source, tt.edits))
		})
	}
}

func TestRewrite_PreservesLineTerminators(t *testing.T) {
	source := "use a;\r\nmod b;\r\n"

	got := Rewrite(source, []m.Edit{{Region: region(1, 0, 1, 6)}})

	assert.Equal(t, "\r\nmod b;\r\n", got)
}

func TestExtract(t *testing.T) {
	source := "use std::{\n    io,\n    fmt,\n};\nmod a;\n"

	assert.Equal(t, "mod a;", Extract(source, region(5, 0, 5, 6)))
	assert.Equal(t, "use std::{\n    io,\n    fmt,\n};", Extract(source, region(1, 0, 4, 2)))
	assert.Equal(t, "", Extract(source, region(9, 0, 9, 1)))
}

func TestExtractThenRespliceIsIdentity(t *testing.T) {
	source := "fn a() {}\nuse std::{\n    io,\n};\nfn b() {}\n"
	r := region(2, 0, 4, 2)

	text := Extract(source, r)

	assert.Equal(t, source, Rewrite(source, []m.Edit{{Region: r, Text: text}}))
}

func TestDeleteAndReplace(t *testing.T) {
	source := "crate::a();\ncrate::b();\n"
	regions := []m.Region{region(1, 0, 1, 5), region(2, 0, 2, 5)}

	assert.Equal(t, "::a();\n::b();\n", Delete(source, regions))
	assert.Equal(t, "super::super::a();\nsuper::super::b();\n", Replace(source, regions, "super::super"))
}

func TestSort(t *testing.T) {
	edits := []m.Edit{
		{Region: region(3, 0, 3, 1), Text: "c"},
		{Region: region(1, 5, 1, 6), Text: "b"},
		{Region: region(1, 0, 1, 1), Text: "a"},
	}

	Sort(edits)

	assert.Equal(t, []string{"a", "b", "c"}, []string{edits[0].Text, edits[1].Text, edits[2].Text})
}

func TestIndex(t *testing.T) {
	idx := NewIndex("ab\ncd\n\nef")

	assert.Equal(t, m.Position{Line: 1, Column: 0}, idx.Position(0))
	assert.Equal(t, m.Position{Line: 1, Column: 2}, idx.Position(2))
	assert.Equal(t, m.Position{Line: 2, Column: 0}, idx.Position(3))
	assert.Equal(t, m.Position{Line: 3, Column: 0}, idx.Position(6))
	assert.Equal(t, m.Position{Line: 4, Column: 2}, idx.Position(9))
	assert.Equal(t, region(2, 1, 4, 1), idx.Region(4, 8))
}
