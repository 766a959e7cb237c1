package model

import "fmt"

// ModuleSelection is the decision taken for one module declaration.
type ModuleSelection int

const (
	// SelectNone drops the module declaration entirely.
	SelectNone ModuleSelection = iota
	// SelectPartial inlines the module but keeps asking about its children.
	SelectPartial
	// SelectAll inlines the whole subtree without further questions.
	SelectAll
)

func (s ModuleSelection) String() string {
	switch s {
	case SelectAll:
		return "all"
	case SelectPartial:
		return "partial"
	case SelectNone:
		return "none"
	default:
		return fmt.Sprintf("ModuleSelection(%d)", int(s))
	}
}

// ParseModuleSelection accepts the long and single-letter spellings used by
// prompts and policy files.
func ParseModuleSelection(s string) (ModuleSelection, error) {
	switch s {
	case "a", "all":
		return SelectAll, nil
	case "p", "partial":
		return SelectPartial, nil
	case "n", "none":
		return SelectNone, nil
	default:
		return SelectNone, fmt.Errorf("unknown module selection %q", s)
	}
}

// UnmarshalText lets selections be decoded straight from TOML strings.
func (s *ModuleSelection) UnmarshalText(text []byte) error {
	parsed, err := ParseModuleSelection(string(text))
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}
