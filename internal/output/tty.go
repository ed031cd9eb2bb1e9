package output

import (
	"os"

	"golang.org/x/term"
)

// IsTTY reports whether both stdout and stderr are terminals.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
}

// UseColor reports whether output should be colored: stdout is a terminal
// and NO_COLOR is unset.
func UseColor() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
