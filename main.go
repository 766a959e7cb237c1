// Command cherrypick bundles selected modules of a Rust crate into one file.
package main

import "github.com/mouse-blink/cherrypick/cmd"

func main() {
	cmd.Execute()
}
