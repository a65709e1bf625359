package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInput(t *testing.T) {
	tests := []struct {
		name  string
		chunk string
		want  Input
	}{
		{"esc", "\x1b", Cancel},
		{"ctrl-c", "\x03", Cancel},
		{"cr", "\r", Confirm},
		{"lf", "\n", Confirm},
		{"crlf", "\r\n", Confirm},
		{"down", "\x1b[B", Next},
		{"down app mode", "\x1bOB", Next},
		{"tab", "\t", Next},
		{"ctrl-n", "\x0e", Next},
		{"up", "\x1b[A", Prev},
		{"up app mode", "\x1bOA", Prev},
		{"shift-tab", "\x1b[Z", Prev},
		{"ctrl-p", "\x10", Prev},
		{"del", "\x7f", Erase},
		{"backspace", "\x08", Erase},
		{"letter", "a", Char('a')},
		{"space", " ", Char(' ')},
		{"colon", ":", Char(':')},
		{"multibyte", "ñ", Input{Kind: InputChar, Rune: 'ñ'}},
		{"emoji", "🙂", Input{Kind: InputChar, Rune: '🙂'}},
		{"empty", "", Ignore},
		{"right arrow", "\x1b[C", Ignore},
		{"pasted text", "abc", Ignore},
		{"ctrl-a", "\x01", Ignore},
		{"invalid utf8", "\xff", Ignore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseInput(tt.chunk))
		})
	}
}

func TestChar_RejectsControls(t *testing.T) {
	assert.Equal(t, Ignore, Char(0x1f))
	assert.Equal(t, Ignore, Char(0x7f))
	assert.Equal(t, InputChar, Char('~').Kind)
}

func TestInputKind_String(t *testing.T) {
	assert.Equal(t, "next", InputNext.String())
	assert.Equal(t, "input(42)", InputKind(42).String())
}
