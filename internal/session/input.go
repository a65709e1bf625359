package session

import (
	"fmt"
	"unicode/utf8"
)

// InputKind classifies one keystroke.
type InputKind int

const (
	InputIgnore InputKind = iota
	InputCancel
	InputConfirm
	InputNext
	InputPrev
	InputErase
	InputChar
)

// String returns a short name for logs.
func (k InputKind) String() string {
	switch k {
	case InputIgnore:
		return "ignore"
	case InputCancel:
		return "cancel"
	case InputConfirm:
		return "confirm"
	case InputNext:
		return "next"
	case InputPrev:
		return "prev"
	case InputErase:
		return "erase"
	case InputChar:
		return "char"
	default:
		return fmt.Sprintf("input(%d)", int(k))
	}
}

// Input is one decoded keystroke. Rune is set only for InputChar.
type Input struct {
	Kind InputKind
	Rune rune
}

// Key constructors used by hosts that decode keys themselves.
var (
	Cancel  = Input{Kind: InputCancel}
	Confirm = Input{Kind: InputConfirm}
	Next    = Input{Kind: InputNext}
	Prev    = Input{Kind: InputPrev}
	Erase   = Input{Kind: InputErase}
	Ignore  = Input{Kind: InputIgnore}
)

// Char returns a text input for r. Control runes become Ignore.
func Char(r rune) Input {
	if r < 0x20 || r == 0x7f || r == utf8.RuneError {
		return Ignore
	}
	return Input{Kind: InputChar, Rune: r}
}

const (
	keyCtrlC     = "\x03"
	keyCtrlH     = "\x08"
	keyTab       = "\t"
	keyLF        = "\n"
	keyCtrlN     = "\x0e"
	keyCR        = "\r"
	keyCtrlP     = "\x10"
	keyEsc       = "\x1b"
	keyDel       = "\x7f"
	keyUp        = "\x1b[A"
	keyDown      = "\x1b[B"
	keyUpApp     = "\x1bOA"
	keyDownApp   = "\x1bOB"
	keyShiftTab  = "\x1b[Z"
	keyCRLF      = "\r\n"
	maxCharChunk = utf8.UTFMax
)

// ParseInput decodes one raw terminal read. Chunks that are not a known key
// or a single printable rune decode to Ignore.
func ParseInput(chunk string) Input {
	switch chunk {
	case keyEsc, keyCtrlC:
		return Cancel
	case keyCR, keyLF, keyCRLF:
		return Confirm
	case keyDown, keyDownApp, keyTab, keyCtrlN:
		return Next
	case keyUp, keyUpApp, keyShiftTab, keyCtrlP:
		return Prev
	case keyDel, keyCtrlH:
		return Erase
	}

	if chunk == "" || len(chunk) > maxCharChunk {
		return Ignore
	}
	r, size := utf8.DecodeRuneInString(chunk)
	if size != len(chunk) {
		return Ignore
	}
	return Char(r)
}
