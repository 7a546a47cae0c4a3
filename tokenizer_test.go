package prattle

import (
	"errors"
	"io"
	"testing"
)

func lexParser(t *testing.T, types []string) *Parser[any] {
	t.Helper()
	p, err := New(Grammar[any]{
		Skip:       `\s+`,
		TokenTypes: types,
		Patterns: map[string]string{
			"number":     `[0-9]+(?:\.[0-9]+)?`,
			"identifier": `[a-zA-Z_][a-zA-Z_0-9]*`,
			"true":       `true(?![a-zA-Z_0-9])`,
		},
	})
	if err != nil {
		t.Fatalf("compile grammar: %v", err)
	}
	return p
}

func TestTokenize(t *testing.T) {
	p := lexParser(t, []string{"**", "*", "(", ")", "true", "number", "identifier"})
	cases := []struct {
		src    string
		tokens []Token
		errpos int
	}{
		// nothing but skipped text
		{"", nil, -1},
		{" \t \r\n ", nil, -1},
		// numbers
		{"0", []Token{{"number", "0", 0}}, -1},
		{"23.67", []Token{{"number", "23.67", 0}}, -1},
		{"  12", []Token{{"number", "12", 2}}, -1},
		{"1 0", []Token{{"number", "1", 0}, {"number", "0", 2}}, -1},
		{"1.5x", []Token{{"number", "1.5", 0}, {"identifier", "x", 3}}, -1},
		// declaration order decides, so ** wins over *
		{"**", []Token{{"**", "**", 0}}, -1},
		{"***", []Token{{"**", "**", 0}, {"*", "*", 2}}, -1},
		{"* *", []Token{{"*", "*", 0}, {"*", "*", 2}}, -1},
		// keywords use lookahead, so they never match as a prefix
		{"true", []Token{{"true", "true", 0}}, -1},
		{"trueish", []Token{{"identifier", "trueish", 0}}, -1},
		{"true ish", []Token{{"true", "true", 0}, {"identifier", "ish", 5}}, -1},
		// brackets are bare symbols
		{"(x)", []Token{{"(", "(", 0}, {"identifier", "x", 1}, {")", ")", 2}}, -1},
		// unrecognized input
		{"№", nil, 0},
		{"1 §", []Token{{"number", "1", 0}}, 2},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			toks, err := drain(p.Tokenize(c.src))
			if len(toks) != len(c.tokens) {
				t.Fatalf("wrong tokens: want %v, got %v", c.tokens, toks)
			}
			for i, tok := range toks {
				if tok != c.tokens[i] {
					t.Errorf("token %d: want %v, got %v", i, c.tokens[i], tok)
				}
			}
			checkEnd(t, err, c.errpos)
		})
	}
}

// drain collects tokens until the end of the input or an error.
func drain(toks *Tokenizer) ([]Token, error) {
	var v []Token
	for {
		tok, err := toks.Next()
		if err != nil {
			return v, err
		}
		v = append(v, tok)
	}
}

func checkEnd(t *testing.T, err error, errpos int) {
	t.Helper()
	if errpos < 0 {
		if err != io.EOF {
			t.Errorf("want io.EOF, got %v", err)
		}
		return
	}
	var serr *SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("want *SyntaxError, got %v", err)
	}
	if serr.Pos != errpos {
		t.Errorf("wrong error position: want %d, got %d (%v)", errpos, serr.Pos, err)
	}
}

func TestTokenizeOrderMatters(t *testing.T) {
	// With * declared first, ** can never match. This is the documented
	// most-specific-first contract; the tokenizer does not second-guess
	// the declaration order.
	p := lexParser(t, []string{"*", "**", "number", "identifier"})
	toks, err := drain(p.Tokenize("2**3"))
	if err != io.EOF {
		t.Fatalf("want io.EOF, got %v", err)
	}
	want := []Token{{"number", "2", 0}, {"*", "*", 1}, {"*", "*", 2}, {"number", "3", 3}}
	if len(toks) != len(want) {
		t.Fatalf("wrong tokens: want %v, got %v", want, toks)
	}
	for i, tok := range toks {
		if tok != want[i] {
			t.Errorf("token %d: want %v, got %v", i, want[i], tok)
		}
	}
}

func TestTokenizeErrorSticks(t *testing.T) {
	p := lexParser(t, []string{"number"})
	toks := p.Tokenize("1 §")
	if _, err := toks.Next(); err != nil {
		t.Fatalf("first token: %v", err)
	}
	_, err1 := toks.Next()
	_, err2 := toks.Next()
	if err1 == nil || err1 != err2 {
		t.Errorf("error not sticky: %v then %v", err1, err2)
	}
}

func TestTokenizeRestart(t *testing.T) {
	p := lexParser(t, []string{"number", "identifier"})
	for i := 0; i < 2; i++ {
		toks, err := drain(p.Tokenize("1 x"))
		if err != io.EOF {
			t.Fatalf("pass %d: want io.EOF, got %v", i, err)
		}
		if len(toks) != 2 {
			t.Fatalf("pass %d: want 2 tokens, got %v", i, toks)
		}
	}
}
