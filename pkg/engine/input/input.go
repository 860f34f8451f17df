package input

import (
	"bufio"
	"errors"
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

// KeyReader decodes single key presses from a byte stream, such as a
// terminal in raw mode.
type KeyReader struct {
	r *bufio.Reader
}

// NewKeyReader wraps r.
func NewKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{r: bufio.NewReader(r)}
}

// ReadKey returns the code of the next key press: the character itself for
// printable keys, "arrow_up" and friends for cursor keys, "escape", "enter"
// or "ctrl_c". Unknown escape sequences and control bytes yield "".
func (k *KeyReader) ReadKey() (string, error) {
	b, err := k.r.ReadByte()
	if err != nil {
		return "", err
	}
	switch {
	case b == 0x1b:
		return k.readEscape()
	case b == 3:
		return "ctrl_c", nil
	case b == '\r' || b == '\n':
		return "enter", nil
	case b >= 32 && b < 127:
		return string(rune(b)), nil
	}
	return "", nil
}

// readEscape handles the bytes after ESC. A lone ESC (nothing buffered
// behind it) is the escape key.
func (k *KeyReader) readEscape() (string, error) {
	if k.r.Buffered() == 0 {
		return "escape", nil
	}
	b2, err := k.r.ReadByte()
	if err != nil {
		return "escape", nil
	}
	// CSI (ESC [) and SS3 (ESC O) both carry arrow keys
	if b2 != '[' && b2 != 'O' {
		return "", nil
	}
	b3, err := k.r.ReadByte()
	if err != nil {
		return "", err
	}
	switch b3 {
	case 'A':
		return "arrow_up", nil
	case 'B':
		return "arrow_down", nil
	case 'C':
		return "arrow_right", nil
	case 'D':
		return "arrow_left", nil
	}
	return "", nil
}

// ReadIntent reads keys until one maps to an action.
func (k *KeyReader) ReadIntent() (Intent, error) {
	for {
		code, err := k.ReadKey()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Intent{Action: ActionQuit}, nil
			}
			return Intent{}, err
		}
		if code == "" {
			continue
		}
		raw := RawInput{Device: DeviceTerminal, Code: code, Timestamp: time.Now()}
		if intent := MapToIntent(NewDebouncedInput(raw)); intent.Action != ActionNone {
			return intent, nil
		}
	}
}

// RawTerminal puts stdin into raw mode and returns a reader for it plus a
// function that restores the previous mode.
func RawTerminal() (*KeyReader, func(), error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, nil, err
	}
	restore := func() {
		_ = term.Restore(fd, oldState)
	}
	return NewKeyReader(os.Stdin), restore, nil
}

// IsTerminal reports whether stdin is an interactive terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
