// Package terminal provides terminal detection utilities.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// fdFile is satisfied by *os.File.
type fdFile interface {
	Fd() uintptr
}

var isTerminalFunc = term.IsTerminal

// IsInteractive reports whether stdin and stdout are both interactive terminals.
func IsInteractive() bool {
	return IsTerminal(os.Stdin) && IsTerminal(os.Stdout)
}

// IsTerminal reports whether v is a file attached to a terminal. Values that
// are not files (buffers, pipes wrapped in writers) are never terminals.
func IsTerminal(v any) bool {
	f, ok := v.(fdFile)
	if !ok {
		return false
	}
	return isTerminalFunc(int(f.Fd()))
}
