package report

import (
	"os"

	"golang.org/x/term"
)

// Mode selects how the summary is rendered.
type Mode int

const (
	// ModePlain is used for CI pipelines, redirected output and NO_COLOR.
	ModePlain Mode = iota
	// ModeStyled is used when a human is watching stderr.
	ModeStyled
)

// DetectMode reports ModePlain when NO_COLOR or CI is set, or when f is not
// a terminal, and ModeStyled otherwise.
func DetectMode(f *os.File) Mode {
	if os.Getenv("NO_COLOR") != "" {
		return ModePlain
	}
	if os.Getenv("CI") != "" {
		return ModePlain
	}
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return ModePlain
	}
	return ModeStyled
}
