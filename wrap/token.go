package wrap

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/filltext/chunk"
)

// Kind classifies tokens.
type Kind uint8

// Token kinds
const (
	Word    Kind = iota // maximal run of non-whitespace
	Space               // single whitespace character
	Tab                 // '\t'
	Break               // hard line break
	Control             // control chunk
)

func (k Kind) String() string {
	switch k {
	case Word:
		return "Word"
	case Space:
		return "Space"
	case Tab:
		return "Tab"
	case Break:
		return "Break"
	case Control:
		return "Control"
	}
	return "Kind(?)"
}

// Token is a unit of text for line breaking. Control tokens carry their
// chunk and no text.
type Token struct {
	Kind    Kind
	Text    string
	Control chunk.Chunk
}

func (t Token) String() string {
	if t.Kind == Control {
		return t.Control.Syntax()
	}
	return t.Kind.String() + "(" + t.Text + ")"
}

// Tokenize renders chunks in a given mode and cuts the result into tokens.
//
// Words may span several chunks: "{a}{b}" with a=x and b=y yields a single
// word "xy". "\r\n", "\n" and "\r" all become a single Break token. Control
// chunks become Control tokens, except in Force mode, where they render as
// text like any other fill point.
func Tokenize(chunks iter.Seq[chunk.Chunk], mode chunk.Mode) []Token {
	t := tokenizer{}
	for c := range chunks {
		if c.IsControl() && mode != chunk.Force {
			t.flush()
			t.tokens = append(t.tokens, Token{Kind: Control, Control: c})
			t.cr = false
			continue
		}
		t.scan(c.Render(mode))
	}
	t.flush()
	return t.tokens
}

type tokenizer struct {
	tokens []Token
	word   strings.Builder
	cr     bool // last token was a break from '\r'
}

func (t *tokenizer) flush() {
	if t.word.Len() > 0 {
		t.tokens = append(t.tokens, Token{Kind: Word, Text: t.word.String()})
		t.word.Reset()
	}
}

func (t *tokenizer) scan(s string) {
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if !isSpace(r) {
			t.word.WriteString(s[:size])
			t.cr = false
			s = s[size:]
			continue
		}
		t.flush()
		switch r {
		case '\n':
			if !t.cr {
				t.tokens = append(t.tokens, Token{Kind: Break, Text: "\r"})
			}
			t.cr = false
		case '\r':
			t.tokens = append(t.tokens, Token{Kind: Break, Text: "\r"})
			t.cr = true
		case '\t':
			t.tokens = append(t.tokens, Token{Kind: Tab, Text: "\t"})
			t.cr = false
		default:
			if r < ' ' {
				r = ' ' // \v, \f
			}
			t.tokens = append(t.tokens, Token{Kind: Space, Text: string(r)})
			t.cr = false
		}
		s = s[size:]
	}
}

// isSpace is unicode.IsSpace without the non-breaking spaces, which glue
// words together.
func isSpace(r rune) bool {
	switch r {
	case '\u00a0', '\u2007', '\u202f':
		return false
	}
	return unicode.IsSpace(r)
}
