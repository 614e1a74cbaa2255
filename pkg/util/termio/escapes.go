package termio

import (
	"fmt"
	"slices"
	"strings"
)

// TERM_BLACK represents black
const TERM_BLACK = uint(0)

// TERM_RED represents red
const TERM_RED = uint(1)

// TERM_GREEN represents green
const TERM_GREEN = uint(2)

// TERM_YELLOW represents yellow
const TERM_YELLOW = uint(3)

// TERM_BLUE represents blue
const TERM_BLUE = uint(4)

// TERM_MAGENTA represents magenta
const TERM_MAGENTA = uint(5)

// TERM_CYAN represents cyan
const TERM_CYAN = uint(6)

// TERM_WHITE represents white
const TERM_WHITE = uint(7)

// AnsiEscape accumulates ANSI formatting codes for terminal output.
type AnsiEscape struct {
	codes []uint
}

// NewAnsiEscape constructs an empty escape.
func NewAnsiEscape() AnsiEscape {
	return AnsiEscape{}
}

// ResetAnsiEscape constructs an escape cancelling all formatting.
func ResetAnsiEscape() AnsiEscape {
	return AnsiEscape{[]uint{0}}
}

// BoldAnsiEscape constructs an escape for bold text.
func BoldAnsiEscape() AnsiEscape {
	return AnsiEscape{[]uint{1}}
}

// FgColour adds a foreground colour.
func (p AnsiEscape) FgColour(col uint) AnsiEscape {
	return AnsiEscape{append(slices.Clone(p.codes), col+30)}
}

// Build constructs the final escape sequence.
func (p AnsiEscape) Build() string {
	parts := make([]string, len(p.codes))
	//
	for i, code := range p.codes {
		parts[i] = fmt.Sprintf("%d", code)
	}
	//
	return "\033[" + strings.Join(parts, ";") + "m"
}
