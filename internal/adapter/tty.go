package adapter

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTTY checks if the given stream is a terminal.
// Returns false if the stream is redirected to a file or pipe.
func IsTTY(stream any) bool {
	file, ok := stream.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(file.Fd()))
}

// IsInteractive reports whether prompts can be shown on out and answered on in.
func IsInteractive(in io.Reader, out io.Writer) bool {
	return IsTTY(in) && IsTTY(out)
}
