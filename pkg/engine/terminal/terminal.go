// Package terminal queries the controlling terminal.
package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// GetSize returns the current terminal width and height.
// Falls back to defaults if the size cannot be determined.
func GetSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// Viewport returns how many map cells fit on screen when reserved rows are
// kept free for status lines. Both results are at least 1.
func Viewport(reservedRows int) (cols, rows int) {
	w, h := GetSize()
	return max(w, 1), max(h-reservedRows, 1)
}

// ClearScreen returns the escape sequence that clears the screen and homes
// the cursor.
func ClearScreen() string {
	return "\x1b[2J\x1b[H"
}
