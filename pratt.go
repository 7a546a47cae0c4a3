package prattle

import (
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/dlclark/regexp2"
)

// Parser is a compiled grammar. A Parser is read-only after New and
// safe for concurrent Parse calls.
type Parser[V any] struct {
	skip   *regexp2.Regexp
	pats   []pattern
	ranks  map[string]int
	prefix map[string]PrefixRule[V]
	infix  map[string]InfixRule[V]
}

// New compiles a grammar. The grammar is validated here rather than at
// parse time: every token type must have a pattern or be a bare
// symbol, no pattern may match empty text, and every precedence entry
// must name a declared token type unless it is a pseudo level standing
// alone.
func New[V any](g Grammar[V]) (*Parser[V], error) {
	p := &Parser[V]{
		ranks:  make(map[string]int),
		prefix: make(map[string]PrefixRule[V], len(g.Prefix)),
		infix:  make(map[string]InfixRule[V], len(g.Infix)),
	}
	if g.Skip != "" {
		re, err := compileAnchored(g.Skip)
		if err != nil {
			return nil, configErr("skip pattern does not compile: " + err.Error())
		}
		if m := matchAnchored(re, ""); m != nil {
			return nil, configErr("skip pattern can match no text")
		}
		p.skip = re
	}
	declared := make(map[string]bool, len(g.TokenTypes))
	for _, typ := range g.TokenTypes {
		if declared[typ] {
			return nil, configErr("token type " + strconv.Quote(typ) + " declared twice")
		}
		declared[typ] = true
		src, ok := g.Patterns[typ]
		if !ok {
			if !bareSymbol(typ) {
				return nil, configErr("token type " + strconv.Quote(typ) + " has no pattern and is not a bare symbol")
			}
			src = regexp2.Escape(typ)
		}
		re, err := compileAnchored(src)
		if err != nil {
			return nil, configErr("pattern for " + strconv.Quote(typ) + " does not compile: " + err.Error())
		}
		if m := matchAnchored(re, ""); m != nil {
			return nil, configErr("pattern for " + strconv.Quote(typ) + " can match no text")
		}
		p.pats = append(p.pats, pattern{typ: typ, re: re})
	}
	for i, level := range g.Precedence {
		// Level i binds at rank i+1 so that a minimum precedence of 0
		// admits every level, including the loosest.
		rank := i + 1
		for _, name := range level {
			if _, ok := p.ranks[name]; ok {
				return nil, configErr(strconv.Quote(name) + " appears in more than one precedence level")
			}
			if !declared[name] && len(level) != 1 {
				return nil, configErr("precedence level " + strconv.Itoa(i) + " references unknown token type " + strconv.Quote(name))
			}
			p.ranks[name] = rank
		}
	}
	for typ, rule := range g.Prefix {
		p.prefix[typ] = rule
	}
	for typ, rule := range g.Infix {
		p.infix[typ] = rule
	}
	return p, nil
}

func configErr(msg string) error {
	return &SyntaxError{Pos: -1, Msg: msg}
}

func compileAnchored(src string) (*regexp2.Regexp, error) {
	return regexp2.Compile(`\A(?:`+src+`)`, regexp2.None)
}

// bareSymbol reports whether a token type may stand for itself as a
// literal. Wordlike types are excluded: matched verbatim they would
// also match as a prefix of longer identifiers, so they need an
// explicit pattern with a lookahead.
func bareSymbol(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// Precedence returns the binding rank of a token type or pseudo level,
// or 0 if the name appears in no precedence level. Rules pass ranks to
// Context.Parse to bound how tightly a subexpression may bind.
func (p *Parser[V]) Precedence(name string) int {
	return p.ranks[name]
}

// Parse parses input and returns the value produced by the grammar's
// rules. bindings are made available to rules through the Context; nil
// is allowed. minPrec is the minimum binding rank for infix rules,
// normally 0. Parsing stops at the first token that does not bind,
// leaving any remaining input unread.
func (p *Parser[V]) Parse(input string, bindings map[string]V, minPrec int) (V, error) {
	ctx := &Context[V]{p: p, toks: p.Tokenize(input), bindings: bindings}
	return ctx.Parse(minPrec)
}

// ParseAll is Parse with minimum precedence 0, plus the requirement
// that the whole input is consumed.
func (p *Parser[V]) ParseAll(input string, bindings map[string]V) (V, error) {
	ctx := &Context[V]{p: p, toks: p.Tokenize(input), bindings: bindings}
	v, err := ctx.Parse(0)
	if err != nil {
		var zero V
		return zero, err
	}
	tok, ok, err := ctx.next()
	if err != nil {
		var zero V
		return zero, err
	}
	if ok {
		var zero V
		return zero, &SyntaxError{Pos: tok.Pos, Msg: "unexpected token " + strconv.Quote(tok.Value)}
	}
	return v, nil
}

// Context is the state of one parse: the token stream, the caller's
// bindings, and the re-entrant parse loop. The engine threads a single
// Context through every rule invocation of a parse; a Context must not
// be shared outside that call stack.
type Context[V any] struct {
	p        *Parser[V]
	toks     *Tokenizer
	bindings map[string]V
	pushed   Token
	haspush  bool
	eof      bool
}

// next scans the next token. ok is false at the end of the input.
func (c *Context[V]) next() (tok Token, ok bool, err error) {
	if c.haspush {
		c.haspush = false
		return c.pushed, true, nil
	}
	if c.eof {
		return Token{}, false, nil
	}
	tok, err = c.toks.Next()
	if err == io.EOF {
		c.eof = true
		return Token{}, false, nil
	}
	if err != nil {
		return Token{}, false, err
	}
	return tok, true, nil
}

// push unreads a token so that it is the next token returned from next.
// Panics if there is already a pushed token.
func (c *Context[V]) push(tok Token) {
	if c.haspush {
		panic("prattle: double push")
	}
	c.pushed = tok
	c.haspush = true
}

// Parse parses one expression from the remaining input. It applies the
// prefix rule of the first token, then loops applying infix rules while
// the next token's binding rank exceeds minPrec. A token in no
// precedence level has rank 0 and therefore ends the expression rather
// than failing it; unmatched closers and separators terminate parses
// this way.
func (c *Context[V]) Parse(minPrec int) (V, error) {
	var zero V
	tok, ok, err := c.next()
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, &SyntaxError{Pos: c.toks.pos, Msg: "unexpected end of input"}
	}
	rule := c.p.prefix[tok.Type]
	if rule == nil {
		return zero, &SyntaxError{Pos: tok.Pos, Msg: "no prefix rule for token " + strconv.Quote(tok.Type)}
	}
	left, err := rule(tok, c)
	if err != nil {
		return zero, err
	}
	for {
		tok, ok, err := c.next()
		if err != nil {
			return zero, err
		}
		if !ok {
			return left, nil
		}
		if c.p.ranks[tok.Type] <= minPrec {
			c.push(tok)
			return left, nil
		}
		rule := c.p.infix[tok.Type]
		if rule == nil {
			return zero, &SyntaxError{Pos: tok.Pos, Msg: "no infix rule for token " + strconv.Quote(tok.Type)}
		}
		left, err = rule(left, tok, c)
		if err != nil {
			return zero, err
		}
	}
}

// Precedence returns the binding rank of a token type or pseudo level.
// See Parser.Precedence.
func (c *Context[V]) Precedence(name string) int {
	return c.p.ranks[name]
}

// Attempt consumes and returns the next token if its type is one of
// types, or any token if no types are given. If the next token does not
// match, or the input is exhausted, the token stream is left unchanged
// and ok is false.
func (c *Context[V]) Attempt(types ...string) (tok Token, ok bool, err error) {
	tok, ok, err = c.next()
	if err != nil || !ok {
		return Token{}, false, err
	}
	if len(types) == 0 {
		return tok, true, nil
	}
	for _, typ := range types {
		if tok.Type == typ {
			return tok, true, nil
		}
	}
	c.push(tok)
	return Token{}, false, nil
}

// Require consumes and returns the next token, which must have one of
// the given types (any type, if none are given). A missing or
// mismatched token is a SyntaxError.
func (c *Context[V]) Require(types ...string) (Token, error) {
	tok, ok, err := c.next()
	if err != nil {
		return Token{}, err
	}
	if !ok {
		return Token{}, &SyntaxError{Pos: c.toks.pos, Msg: "unexpected end of input, expected " + quoteList(types)}
	}
	if len(types) == 0 {
		return tok, nil
	}
	for _, typ := range types {
		if tok.Type == typ {
			return tok, nil
		}
	}
	return Token{}, &SyntaxError{Pos: tok.Pos, Msg: "unexpected token " + strconv.Quote(tok.Value) + ", expected " + quoteList(types)}
}

// Binding looks up a caller-supplied binding by name.
func (c *Context[V]) Binding(name string) (V, bool) {
	v, ok := c.bindings[name]
	return v, ok
}

func quoteList(types []string) string {
	if len(types) == 0 {
		return "a token"
	}
	q := make([]string, len(types))
	for i, t := range types {
		q[i] = strconv.Quote(t)
	}
	return strings.Join(q, " or ")
}
