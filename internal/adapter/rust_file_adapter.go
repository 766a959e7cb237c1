package adapter

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
	rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
)

// ErrParse is returned when a Rust source file contains syntax errors.
var ErrParse = errors.New("parse error")

var rustLanguage = sitter.NewLanguage(rust.Language())

// RustFileAdapter encapsulates Rust parsing so the domain layer can work on
// syntax trees without knowing which parser produced them.
type RustFileAdapter interface {
	// Parse builds a syntax tree for src. Sources with syntax errors are
	// rejected with ErrParse.
	Parse(ctx context.Context, filename string, src []byte) (*sitter.Tree, error)
}

// TreeSitterRustAdapter provides a RustFileAdapter backed by tree-sitter-rust.
type TreeSitterRustAdapter struct{}

// NewTreeSitterRustAdapter constructs a TreeSitterRustAdapter.
func NewTreeSitterRustAdapter() *TreeSitterRustAdapter {
	return &TreeSitterRustAdapter{}
}

// Parse builds a syntax tree for the provided filename/source pair.
func (a *TreeSitterRustAdapter) Parse(ctx context.Context, filename string, src []byte) (*sitter.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(rustLanguage); err != nil {
		return nil, fmt.Errorf("failed to load Rust grammar: %w", err)
	}

	tree := parser.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse %s", filename)
	}

	root := tree.RootNode()
	if !root.HasError() {
		return tree, nil
	}

	defer tree.Close()

	bad := firstErrorNode(root)
	if bad == nil {
		return nil, fmt.Errorf("%w: %s", ErrParse, filename)
	}

	point := bad.StartPosition()
	what := "syntax error"

	if bad.IsMissing() {
		what = fmt.Sprintf("missing %q", bad.Kind())
	}

	return nil, fmt.Errorf("%w: %s:%d:%d: %s", ErrParse, filename, point.Row+1, point.Column+1, what)
}

// firstErrorNode returns the first ERROR or MISSING node in source order.
func firstErrorNode(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}

	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil || !child.HasError() && !child.IsMissing() {
			continue
		}

		if found := firstErrorNode(child); found != nil {
			return found
		}
	}

	return nil
}
