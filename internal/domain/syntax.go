package domain

import (
	"context"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mouse-blink/cherrypick/internal/adapter"
	"github.com/mouse-blink/cherrypick/internal/domain/splice"
	m "github.com/mouse-blink/cherrypick/internal/model"
)

// tree-sitter-rust node kinds the bundler cares about.
const (
	kindModItem         = "mod_item"
	kindUseDeclaration  = "use_declaration"
	kindAttributeItem   = "attribute_item"
	kindInnerAttribute  = "inner_attribute_item"
	kindLineComment     = "line_comment"
	kindBlockComment    = "block_comment"
	kindCrate           = "crate"
	kindVisibility      = "visibility_modifier"
	kindExternCrate     = "extern_crate_declaration"
	kindMacroDefinition = "macro_definition"
	kindTokenTree       = "token_tree"
)

// syntaxFile is one parsed version of a file's text.
type syntaxFile struct {
	path  m.Path
	src   []byte
	tree  *sitter.Tree
	index *splice.Index
}

func parseFile(ctx context.Context, rust adapter.RustFileAdapter, path m.Path, content string) (*syntaxFile, error) {
	src := []byte(content)

	tree, err := rust.Parse(ctx, string(path), src)
	if err != nil {
		return nil, err
	}

	return &syntaxFile{
		path:  path,
		src:   src,
		tree:  tree,
		index: splice.NewIndex(content),
	}, nil
}

func (f *syntaxFile) close() {
	f.tree.Close()
}

func (f *syntaxFile) content() string {
	return string(f.src)
}

func (f *syntaxFile) root() *sitter.Node {
	return f.tree.RootNode()
}

func (f *syntaxFile) text(n *sitter.Node) string {
	return n.Utf8Text(f.src)
}

func (f *syntaxFile) region(n *sitter.Node) m.Region {
	return f.index.Region(int(n.StartByte()), int(n.EndByte()))
}

// itemRegion covers an item together with the outer attributes and outer doc
// comments written in front of it.
func (f *syntaxFile) itemRegion(n *sitter.Node) m.Region {
	start := n.StartByte()

	for _, attr := range f.outerAttributes(n) {
		start = min(start, attr.StartByte())
	}

	return f.index.Region(int(start), int(n.EndByte()))
}

// outerAttributes returns the attribute items and outer doc comments directly
// preceding n, nearest first. Plain comments between them are skipped.
func (f *syntaxFile) outerAttributes(n *sitter.Node) []*sitter.Node {
	var attrs []*sitter.Node

	for prev := n.PrevSibling(); prev != nil; prev = prev.PrevSibling() {
		switch {
		case prev.Kind() == kindAttributeItem:
			attrs = append(attrs, prev)
		case f.isOuterDocComment(prev):
			attrs = append(attrs, prev)
		case isComment(prev):
			continue
		default:
			return attrs
		}
	}

	return attrs
}

// commentRegion covers a comment without the line terminator tree-sitter may
// attach to line comments.
func (f *syntaxFile) commentRegion(n *sitter.Node) m.Region {
	start, end := int(n.StartByte()), int(n.EndByte())
	for end > start && (f.src[end-1] == '\n' || f.src[end-1] == '\r') {
		end--
	}

	return f.index.Region(start, end)
}

// topLevelItems returns the use declarations and module items that are direct
// children of the file, in source order.
func (f *syntaxFile) topLevelItems() (uses, mods []*sitter.Node) {
	root := f.root()

	for i := uint(0); i < root.NamedChildCount(); i++ {
		child := root.NamedChild(i)

		switch child.Kind() {
		case kindUseDeclaration:
			uses = append(uses, child)
		case kindModItem:
			mods = append(mods, child)
		}
	}

	return uses, mods
}

func (f *syntaxFile) isDocComment(n *sitter.Node) bool {
	return f.isOuterDocComment(n) || f.isInnerDocComment(n)
}

func (f *syntaxFile) isOuterDocComment(n *sitter.Node) bool {
	text := f.text(n)

	switch n.Kind() {
	case kindLineComment:
		return strings.HasPrefix(text, "///") && !strings.HasPrefix(text, "////")
	case kindBlockComment:
		return strings.HasPrefix(text, "/**") && !strings.HasPrefix(text, "/***") && text != "/**/"
	default:
		return false
	}
}

func (f *syntaxFile) isInnerDocComment(n *sitter.Node) bool {
	text := f.text(n)

	switch n.Kind() {
	case kindLineComment:
		return strings.HasPrefix(text, "//!")
	case kindBlockComment:
		return strings.HasPrefix(text, "/*!")
	default:
		return false
	}
}

func isComment(n *sitter.Node) bool {
	return n.Kind() == kindLineComment || n.Kind() == kindBlockComment
}

// walk visits n and its named descendants depth first. Returning false from
// visit skips the node's children. macro_rules! bodies and the token trees of
// macro invocations and attribute arguments are never entered.
func walk(n *sitter.Node, visit func(*sitter.Node) bool) {
	switch n.Kind() {
	case kindMacroDefinition, kindTokenTree:
		return
	}

	if !visit(n) {
		return
	}

	for i := uint(0); i < n.NamedChildCount(); i++ {
		walk(n.NamedChild(i), visit)
	}
}

// attributePath returns the path of an attribute item, e.g. "doc" for
// `#[doc = "..."]` and "cfg" for `#![cfg(test)]`.
func attributePath(text string) string {
	text = strings.TrimPrefix(text, "#")
	text = strings.TrimLeft(text, " \t\r\n")
	text = strings.TrimPrefix(text, "!")
	text = strings.TrimLeft(text, " \t\r\n")
	text = strings.TrimPrefix(text, "[")
	text = strings.TrimSuffix(text, "]")
	text = strings.TrimSpace(text)

	if i := strings.IndexAny(text, "(=[{ \t\r\n"); i >= 0 {
		text = text[:i]
	}

	return text
}

// cfgTestAttribute is `#[cfg(test)]` with whitespace removed.
const cfgTestAttribute = "#[cfg(test)]"

func isCfgTest(text string) bool {
	return stripSpace(text) == cfgTestAttribute
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
