package controller

import (
	"errors"
	"fmt"
	"regexp"

	m "github.com/mouse-blink/cherrypick/internal/model"
	"github.com/pelletier/go-toml/v2"
)

// ErrPolicy is returned for policy files that cannot be decoded.
var ErrPolicy = errors.New("invalid policy")

type policyFile struct {
	Modules struct {
		Default m.ModuleSelection            `toml:"default"`
		Select  map[string]m.ModuleSelection `toml:"select"`
	} `toml:"modules"`
	Imports struct {
		Default *bool    `toml:"default"`
		Keep    []string `toml:"keep"`
		Drop    []string `toml:"drop"`
	} `toml:"imports"`
}

// PolicySelector answers module and import questions from a fixed policy
// instead of asking anybody.
type PolicySelector struct {
	moduleDefault m.ModuleSelection
	modules       map[string]m.ModuleSelection
	importDefault bool
	keep          []*regexp.Regexp
	drop          []*regexp.Regexp
}

// ParsePolicy decodes a TOML policy document.
func ParsePolicy(data []byte) (*PolicySelector, error) {
	var file policyFile

	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPolicy, err)
	}

	policy := &PolicySelector{
		moduleDefault: file.Modules.Default,
		modules:       file.Modules.Select,
		importDefault: true,
	}

	if file.Imports.Default != nil {
		policy.importDefault = *file.Imports.Default
	}

	var err error

	if policy.keep, err = compilePatterns("keep", file.Imports.Keep); err != nil {
		return nil, err
	}

	if policy.drop, err = compilePatterns("drop", file.Imports.Drop); err != nil {
		return nil, err
	}

	return policy, nil
}

// NewKeepEverythingPolicy keeps every module and every use declaration.
func NewKeepEverythingPolicy() *PolicySelector {
	return &PolicySelector{moduleDefault: m.SelectAll, importDefault: true}
}

// SelectModule looks the identifier up in the policy, falling back to the
// default selection.
func (p *PolicySelector) SelectModule(ident string, _ m.Path) (m.ModuleSelection, error) {
	if selection, ok := p.modules[ident]; ok {
		return selection, nil
	}

	return p.moduleDefault, nil
}

// SelectImport keeps declarations matching a keep pattern, drops those
// matching a drop pattern and applies the default to the rest.
func (p *PolicySelector) SelectImport(text string) (bool, error) {
	for _, re := range p.keep {
		if re.MatchString(text) {
			return true, nil
		}
	}

	for _, re := range p.drop {
		if re.MatchString(text) {
			return false, nil
		}
	}

	return p.importDefault, nil
}

func compilePatterns(field string, patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: imports.%s %q: %w", ErrPolicy, field, pattern, err)
		}

		compiled = append(compiled, re)
	}

	return compiled, nil
}
