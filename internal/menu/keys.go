package menu

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Key is a decoded menu key press
type Key int

const (
	KeyUnknown Key = iota
	KeyUp
	KeyDown
	KeyEnter
	KeyQuit
	KeyInterrupt
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyEnter:
		return "enter"
	case KeyQuit:
		return "quit"
	case KeyInterrupt:
		return "interrupt"
	default:
		return "unknown"
	}
}

// KeyReader delivers one key press per call
type KeyReader interface {
	ReadKey() (Key, error)
}

// Decode maps the bytes of a single raw terminal read to a Key.
// ANSI arrow sequences and the Windows console 0xE0/0x00 prefixes are
// both understood.
func Decode(b []byte) Key {
	if len(b) == 0 {
		return KeyUnknown
	}

	switch b[0] {
	case 0x03:
		return KeyInterrupt
	case '\r', '\n':
		return KeyEnter
	case 'q', 'Q':
		return KeyQuit
	case 0x1b:
		if len(b) >= 3 && (b[1] == '[' || b[1] == 'O') {
			return arrow(b[2], 'A', 'B')
		}
	case 0xe0, 0x00:
		if len(b) >= 2 {
			return arrow(b[1], 'H', 'P')
		}
	}

	return KeyUnknown
}

func arrow(c, up, down byte) Key {
	switch c {
	case up:
		return KeyUp
	case down:
		return KeyDown
	default:
		return KeyUnknown
	}
}

// TerminalKeyReader reads keys from a terminal, switching it to raw mode for
// the duration of each read
type TerminalKeyReader struct {
	In *os.File
}

// NewTerminalKeyReader creates a reader on stdin
func NewTerminalKeyReader() *TerminalKeyReader {
	return &TerminalKeyReader{In: os.Stdin}
}

// ReadKey blocks until one key press is available
func (r *TerminalKeyReader) ReadKey() (Key, error) {
	fd := int(r.In.Fd())

	if term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return KeyUnknown, fmt.Errorf("enter raw mode: %w", err)
		}
		defer func() { _ = term.Restore(fd, state) }()
	}

	buf := make([]byte, 3)
	n, err := r.In.Read(buf)
	if n == 0 && err != nil {
		return KeyUnknown, err
	}

	return Decode(buf[:n]), nil
}

// ScriptedKeyReader replays a fixed sequence of keys and then reports io.EOF
type ScriptedKeyReader struct {
	Keys []Key
	pos  int
}

// NewScriptedKeyReader creates a reader replaying keys in order
func NewScriptedKeyReader(keys ...Key) *ScriptedKeyReader {
	return &ScriptedKeyReader{Keys: keys}
}

// ReadKey returns the next scripted key
func (r *ScriptedKeyReader) ReadKey() (Key, error) {
	if r.pos >= len(r.Keys) {
		return KeyUnknown, io.EOF
	}
	k := r.Keys[r.pos]
	r.pos++
	return k, nil
}
