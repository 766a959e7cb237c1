// Package model defines the data structures shared by the bundler layers.
package model

import "strings"

// Path represents a file system path.
type Path string

// Crate describes the library crate being bundled.
type Crate struct {
	// Name is the crate identifier used for the enclosing module.
	Name string
	// Dir is the directory holding Cargo.toml.
	Dir Path
	// Root is the crate root file, usually src/lib.rs.
	Root Path
}

// CrateIdent turns a package name into the identifier rustc uses for it.
func CrateIdent(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
