package prattle

import "strconv"

// Token is a single lexical unit recognized by a Tokenizer.
type Token struct {
	// Type is the token type, one of the grammar's TokenTypes.
	Type string
	// Value is the matched text.
	Value string
	// Pos is the byte offset of the match in the input.
	Pos int
}

func (t Token) String() string {
	return t.Type + ":" + t.Value + "@" + strconv.Itoa(t.Pos)
}

// PrefixRule parses a construct that begins with tok, e.g. a literal, a
// unary operator, or an open bracket. The rule may consume further
// tokens through ctx.
type PrefixRule[V any] func(tok Token, ctx *Context[V]) (V, error)

// InfixRule parses a construct that continues an already-parsed left
// value with tok, e.g. a binary operator or a call. The rule may
// consume further tokens through ctx.
type InfixRule[V any] func(left V, tok Token, ctx *Context[V]) (V, error)

// Grammar configures a Parser. It is purely descriptive; compile it
// with New.
type Grammar[V any] struct {
	// Skip is a regular expression for ignored text between tokens,
	// typically whitespace. Empty means nothing is skipped.
	Skip string
	// TokenTypes lists every token type in matching priority order.
	// The tokenizer tries patterns in this order and the first match
	// wins, so more specific types ("**", keywords with lookahead)
	// must precede the types they could be mistaken for ("*",
	// identifiers). A type with no entry in Patterns must be a bare
	// symbol, which is matched verbatim.
	TokenTypes []string
	// Patterns maps a token type to the regular expression that
	// recognizes it. Patterns use regexp2 syntax, so lookarounds such
	// as `true(?![a-zA-Z_0-9])` are available.
	Patterns map[string]string
	// Precedence lists precedence levels from loosest to tightest
	// binding. Each level holds the token types that bind equally. A
	// name that is not a token type may appear alone in a level as a
	// pseudo level; rules reference it by name to recurse below a
	// neighboring level, which is how right-associativity is spelled.
	Precedence [][]string
	// Prefix and Infix assign rules to token types. A token type may
	// have either or both.
	Prefix map[string]PrefixRule[V]
	Infix  map[string]InfixRule[V]
}
