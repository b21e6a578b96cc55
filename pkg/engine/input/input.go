package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// KeyReader turns a byte stream from a terminal into key codes understood by
// the bindings table ("r", "arrow_up", "escape", "f12", ...).
type KeyReader struct {
	r *bufio.Reader
}

// NewKeyReader reads keys from r.
func NewKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{r: bufio.NewReader(r)}
}

// escape sequences after ESC that map to named keys
var sequences = map[string]string{
	"[A":   "arrow_up",
	"[B":   "arrow_down",
	"[C":   "arrow_right",
	"[D":   "arrow_left",
	"OA":   "arrow_up",
	"OB":   "arrow_down",
	"OC":   "arrow_right",
	"OD":   "arrow_left",
	"[H":   "home",
	"OH":   "home",
	"[1~":  "home",
	"[Z":   "shift_tab",
	"OQ":   "f2",
	"[12~": "f2",
	"[15~": "f5",
	"[24~": "f12",
}

// ReadKey returns the next key code. Unknown escape sequences come back as
// an empty code so callers can ignore them.
func (k *KeyReader) ReadKey() (string, error) {
	b, err := k.r.ReadByte()
	if err != nil {
		return "", err
	}

	switch b {
	case 0x1b:
		return k.readEscape()
	case 3:
		return "ctrl_c", nil
	case '\r', '\n':
		return "enter", nil
	case '\t':
		return "tab", nil
	case 127, 8:
		return "backspace", nil
	}

	if b >= 32 && b < 127 {
		return string(b), nil
	}
	return "", nil
}

// readEscape consumes the rest of an escape sequence. A lone ESC with
// nothing buffered behind it is the escape key itself.
func (k *KeyReader) readEscape() (string, error) {
	if k.r.Buffered() == 0 {
		return "escape", nil
	}

	b2, err := k.r.ReadByte()
	if err != nil {
		return "escape", nil
	}
	if b2 != '[' && b2 != 'O' {
		// Alt+key; treat as the plain key
		if b2 >= 32 && b2 < 127 {
			return string(b2), nil
		}
		return "", nil
	}

	seq := []byte{b2}
	for len(seq) < 6 {
		b, err := k.r.ReadByte()
		if err != nil {
			return "", nil
		}
		seq = append(seq, b)
		// Final byte of a CSI/SS3 sequence is a letter or '~'
		if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~' {
			break
		}
	}
	return sequences[string(seq)], nil
}

// ReadTerminalKey puts stdin into raw mode, reads one key and restores the
// terminal.
func ReadTerminalKey(k *KeyReader) (string, error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return "", fmt.Errorf("cannot set terminal to raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	return k.ReadKey()
}

// ReadLine reads a line of cooked-mode input, without the line ending.
func (k *KeyReader) ReadLine() (string, error) {
	line, err := k.r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
