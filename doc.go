// Package prattle implements a configurable Pratt (top-down operator
// precedence) expression parser.
//
// A Grammar describes a language as data: regular-expression token
// patterns tried in declaration order, a table of precedence levels,
// and per-token-type prefix and infix rules producing values of any
// type. The engine owns tokenization and the precedence-climbing loop;
// the rules own every language-specific decision, including how
// grouping, unary operators, and right-associativity behave. Rules
// recurse through a Context, so an entire interpreter can be expressed
// as a table of small functions.
//
// The jsonexpr subpackage is a complete configuration producing
// JSON-shaped values.
package prattle
