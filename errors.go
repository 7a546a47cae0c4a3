package prattle

import "strconv"

// SyntaxError indicates input the grammar cannot parse: unrecognized
// text, a token with no applicable rule, a premature end of input, or
// an invalid Grammar rejected by New.
type SyntaxError struct {
	// Pos is the byte offset of the error in the input, or -1 when the
	// error is not tied to a position (configuration errors, end of
	// input).
	Pos int
	// Msg describes the error.
	Msg string
}

func (err *SyntaxError) Error() string {
	if err.Pos < 0 {
		return "syntax error: " + err.Msg
	}
	return "syntax error at offset " + strconv.Itoa(err.Pos) + ": " + err.Msg
}

// InterpreterError indicates a semantic failure raised by a rule, e.g.
// an operator applied to an operand of the wrong kind.
type InterpreterError struct {
	// Msg describes the error.
	Msg string
}

func (err *InterpreterError) Error() string {
	return "interpreter error: " + err.Msg
}

var (
	_ error = (*SyntaxError)(nil)
	_ error = (*InterpreterError)(nil)
)
