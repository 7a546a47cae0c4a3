// Package jsonexpr evaluates expressions over JSON-shaped values.
//
// The language has JSON's literals plus identifiers, arithmetic,
// comparisons, boolean logic, membership tests, indexing and slicing,
// member access, and calls of functions supplied through bindings.
// Values are the encoding/json object model: nil, bool, float64,
// string, []any, and map[string]any, plus Func for callables.
//
// The whole language is one prattle grammar; this package contains no
// parsing logic of its own.
package jsonexpr

import (
	"github.com/prattle-lang/prattle"
)

// Func is a callable value. Bindings of this type can be invoked with
// the call syntax, e.g. len(x).
type Func func(args []any) (any, error)

// New compiles the expression grammar. Most callers can use Parse
// instead; New is for callers that want to manage bindings themselves
// or parse at a nonzero minimum precedence.
func New() (*prattle.Parser[any], error) {
	return prattle.New(prattle.Grammar[any]{
		Skip: `\s+`,
		TokenTypes: []string{
			"**", "+", "-", "*", "/",
			"[", "]", ".", "(", ")", "{", "}", ":", ",",
			">=", "<=", "<", ">", "==", "!=", "!", "&&", "||",
			"true", "false", "in", "null",
			"number", "identifier", "string",
		},
		Patterns: map[string]string{
			"number":     `[0-9]+(?:\.[0-9]+)?`,
			"identifier": `[a-zA-Z_][a-zA-Z_0-9]*`,
			"string":     `'[^']*'|"[^"]*"`,
			// Keywords must not match as a prefix of a longer
			// identifier, e.g. the in of insinuation.
			"true":  `true(?![a-zA-Z_0-9])`,
			"false": `false(?![a-zA-Z_0-9])`,
			"in":    `in(?![a-zA-Z_0-9])`,
			"null":  `null(?![a-zA-Z_0-9])`,
		},
		Precedence: [][]string{
			{"||"},
			{"&&"},
			{"in"},
			{"==", "!="},
			{">=", "<=", "<", ">"},
			{"+", "-"},
			{"*", "/"},
			{"**-right-associative"},
			{"**"},
			{"[", "."},
			{"("},
			{"unary"},
		},
		Prefix: map[string]prattle.PrefixRule[any]{
			"number":     numberLiteral,
			"identifier": identifier,
			"string":     stringLiteral,
			"true":       boolLiteral,
			"false":      boolLiteral,
			"null":       nullLiteral,
			"-":          unaryArith,
			"+":          unaryArith,
			"!":          unaryNot,
			"(":          group,
			"[":          listLiteral,
			"{":          objectLiteral,
		},
		Infix: map[string]prattle.InfixRule[any]{
			"+":  arith,
			"-":  arith,
			"*":  arith,
			"/":  arith,
			"**": power,
			">=": compare,
			"<=": compare,
			"<":  compare,
			">":  compare,
			"==": equality,
			"!=": equality,
			"in": membership,
			"&&": logical,
			"||": logical,
			"[":  index,
			".":  member,
			"(":  call,
		},
	})
}

// std is the shared parser behind Parse. It is read-only after
// construction, so concurrent parses are safe.
var std = func() *prattle.Parser[any] {
	p, err := New()
	if err != nil {
		panic("jsonexpr: " + err.Error())
	}
	return p
}()

// Parse evaluates one expression. bindings resolve identifiers and may
// be nil; names in bindings shadow Builtins. The whole of src must be
// consumed.
func Parse(src string, bindings map[string]any) (any, error) {
	b := Builtins()
	for k, v := range bindings {
		b[k] = v
	}
	return std.ParseAll(src, b)
}
