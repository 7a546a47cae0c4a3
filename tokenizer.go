package prattle

import (
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// pattern is one compiled entry of the tokenizer's match table.
type pattern struct {
	typ string
	re  *regexp2.Regexp
}

// Tokenizer turns an input string into a lazy sequence of tokens. A
// Tokenizer reads forward only; to rescan, construct a new one with
// Parser.Tokenize.
type Tokenizer struct {
	src  string
	pos  int
	skip *regexp2.Regexp
	pats []pattern
	err  error
}

// Tokenize constructs a Tokenizer over input using the parser's
// compiled patterns.
func (p *Parser[V]) Tokenize(input string) *Tokenizer {
	return &Tokenizer{src: input, skip: p.skip, pats: p.pats}
}

// Next scans the next token. At the end of the input it returns io.EOF.
// Once Next returns an error, every subsequent call returns the same
// error.
func (t *Tokenizer) Next() (Token, error) {
	if t.err != nil {
		return Token{}, t.err
	}
	t.skipIgnored()
	if t.pos == len(t.src) {
		t.err = io.EOF
		return Token{}, t.err
	}
	rest := t.src[t.pos:]
	for _, p := range t.pats {
		m := matchAnchored(p.re, rest)
		if m == nil {
			continue
		}
		text := m.String()
		if text == "" {
			// New rejects patterns that match no text, so this means
			// the tokenizer itself is broken.
			panic("prattle: pattern " + strconv.Quote(p.typ) + " matched no text")
		}
		tok := Token{Type: p.typ, Value: text, Pos: t.pos}
		t.pos += len(text)
		return tok, nil
	}
	t.err = &SyntaxError{Pos: t.pos, Msg: "unrecognized input " + strconv.Quote(snippet(rest))}
	return Token{}, t.err
}

// skipIgnored advances the cursor past ignored text.
func (t *Tokenizer) skipIgnored() {
	if t.skip == nil {
		return
	}
	for {
		m := matchAnchored(t.skip, t.src[t.pos:])
		if m == nil || len(m.String()) == 0 {
			return
		}
		t.pos += len(m.String())
	}
}

// matchAnchored matches re against the start of s. The expressions the
// tokenizer compiles are all anchored with \A.
func matchAnchored(re *regexp2.Regexp, s string) *regexp2.Match {
	m, err := re.FindStringMatch(s)
	if err != nil {
		// FindStringMatch can only fail on a match timeout, and the
		// tokenizer never sets one.
		panic("prattle: " + err.Error())
	}
	return m
}

// snippet truncates s to a short context string for error messages.
func snippet(s string) string {
	const max = 16
	if len(s) <= max {
		return s
	}
	n := max
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
