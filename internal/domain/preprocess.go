package domain

import (
	"context"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mouse-blink/cherrypick/internal/adapter"
	"github.com/mouse-blink/cherrypick/internal/domain/splice"
	m "github.com/mouse-blink/cherrypick/internal/model"
)

const (
	parentSegment = "super"
	pathSeparator = "::"
)

// Preprocessor prepares a file's text for inlining. Each pass re-parses the
// output of the previous one because deletions move node boundaries.
type Preprocessor struct {
	rust adapter.RustFileAdapter
}

// NewPreprocessor creates a Preprocessor parsing through rust.
func NewPreprocessor(rust adapter.RustFileAdapter) *Preprocessor {
	return &Preprocessor{rust: rust}
}

// Run strips test modules and documentation, then rewrites `crate` paths for
// a file that will be nested depth modules below the crate module.
func (p *Preprocessor) Run(ctx context.Context, path m.Path, depth int, content string) (string, error) {
	replacement := parentPath(depth)

	passes := []func(*syntaxFile) string{
		func(f *syntaxFile) string { return splice.Delete(f.content(), testModuleRegions(f)) },
		func(f *syntaxFile) string { return splice.Delete(f.content(), docRegions(f)) },
		func(f *syntaxFile) string { return splice.Replace(f.content(), crateKeywordRegions(f), replacement) },
	}

	for _, pass := range passes {
		var err error

		content, err = p.apply(ctx, path, content, pass)
		if err != nil {
			return "", err
		}
	}

	return content, nil
}

// StripTestModules runs only the test-module pass.
func (p *Preprocessor) StripTestModules(ctx context.Context, path m.Path, content string) (string, error) {
	return p.apply(ctx, path, content, func(f *syntaxFile) string {
		return splice.Delete(f.content(), testModuleRegions(f))
	})
}

func (p *Preprocessor) apply(ctx context.Context, path m.Path, content string, pass func(*syntaxFile) string) (string, error) {
	f, err := parseFile(ctx, p.rust, path, content)
	if err != nil {
		return "", err
	}
	defer f.close()

	return pass(f), nil
}

// testModuleRegions covers every `#[cfg(test)]` module with its attributes.
// Children of a matched module are not visited. Regions come out in source
// order.
func testModuleRegions(f *syntaxFile) []m.Region {
	var regions []m.Region

	walk(f.root(), func(n *sitter.Node) bool {
		if n.Kind() != kindModItem {
			return true
		}

		for _, attr := range f.outerAttributes(n) {
			if attr.Kind() == kindAttributeItem && isCfgTest(f.text(attr)) {
				regions = append(regions, f.itemRegion(n))
				return false
			}
		}

		return true
	})

	return regions
}

// docRegions covers `doc` attributes and doc comments, inner and outer.
// Macro token trees are left as written.
func docRegions(f *syntaxFile) []m.Region {
	var regions []m.Region

	walk(f.root(), func(n *sitter.Node) bool {
		switch n.Kind() {
		case kindAttributeItem, kindInnerAttribute:
			if attributePath(f.text(n)) == "doc" {
				regions = append(regions, f.region(n))
			}

			return false
		case kindLineComment, kindBlockComment:
			if f.isDocComment(n) {
				regions = append(regions, f.commentRegion(n))
			}

			return false
		}

		return true
	})

	return regions
}

// crateKeywordRegions covers `crate` path keywords. The pub(crate) shorthand,
// extern crate declarations, attributes and macro token trees keep theirs.
func crateKeywordRegions(f *syntaxFile) []m.Region {
	var regions []m.Region

	walk(f.root(), func(n *sitter.Node) bool {
		switch n.Kind() {
		case kindExternCrate, kindAttributeItem, kindInnerAttribute:
			return false
		case kindCrate:
			if parent := n.Parent(); parent != nil && parent.Kind() == kindVisibility {
				return false
			}

			regions = append(regions, f.region(n))

			return false
		}

		return true
	})

	return regions
}

// parentPath joins depth `super` segments, e.g. "super::super" for depth 2.
func parentPath(depth int) string {
	segments := make([]string, depth)
	for i := range segments {
		segments[i] = parentSegment
	}

	return strings.Join(segments, pathSeparator)
}
