package model

// ModuleStatus describes whether a module declaration can be inlined.
type ModuleStatus string

const (
	// ModuleOK means exactly one backing file was found.
	ModuleOK ModuleStatus = "ok"
	// ModuleMissing means no backing file exists.
	ModuleMissing ModuleStatus = "missing"
	// ModuleAmbiguous means both <name>.rs and <name>/mod.rs exist.
	ModuleAmbiguous ModuleStatus = "ambiguous"
	// ModuleInline means the module body is written in its parent file.
	ModuleInline ModuleStatus = "inline"
)

// ModuleEntry is one node of a crate's module tree.
type ModuleEntry struct {
	// Path is the full module path, e.g. "crate::io::reader".
	Path  string
	Depth int
	File  Path // empty unless Status is ModuleOK
	// RelFile is File relative to the crate directory.
	RelFile Path
	Status  ModuleStatus
	Err     error
}
