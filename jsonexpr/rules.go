package jsonexpr

import (
	"math"
	"strconv"
	"strings"

	"github.com/prattle-lang/prattle"
)

func numberLiteral(tok prattle.Token, ctx *prattle.Context[any]) (any, error) {
	n, err := strconv.ParseFloat(tok.Value, 64)
	if err != nil {
		return nil, interpErrf("invalid number %q", tok.Value)
	}
	return n, nil
}

func identifier(tok prattle.Token, ctx *prattle.Context[any]) (any, error) {
	v, ok := ctx.Binding(tok.Value)
	if !ok {
		return nil, interpErrf("undefined variable %q", tok.Value)
	}
	return v, nil
}

func stringLiteral(tok prattle.Token, ctx *prattle.Context[any]) (any, error) {
	// The pattern guarantees matching quotes around the text.
	return tok.Value[1 : len(tok.Value)-1], nil
}

func boolLiteral(tok prattle.Token, ctx *prattle.Context[any]) (any, error) {
	return tok.Type == "true", nil
}

func nullLiteral(tok prattle.Token, ctx *prattle.Context[any]) (any, error) {
	return nil, nil
}

func unaryArith(tok prattle.Token, ctx *prattle.Context[any]) (any, error) {
	v, err := ctx.Parse(ctx.Precedence("unary"))
	if err != nil {
		return nil, err
	}
	n, ok := asNumber(v)
	if !ok {
		return nil, interpErrf("this operator expects a number")
	}
	if tok.Type == "-" {
		return -n, nil
	}
	return n, nil
}

func unaryNot(tok prattle.Token, ctx *prattle.Context[any]) (any, error) {
	v, err := ctx.Parse(ctx.Precedence("unary"))
	if err != nil {
		return nil, err
	}
	return !truthy(v), nil
}

func group(tok prattle.Token, ctx *prattle.Context[any]) (any, error) {
	v, err := ctx.Parse(0)
	if err != nil {
		return nil, err
	}
	if _, err := ctx.Require(")"); err != nil {
		return nil, err
	}
	return v, nil
}

func listLiteral(tok prattle.Token, ctx *prattle.Context[any]) (any, error) {
	list := []any{}
	if _, ok, err := ctx.Attempt("]"); err != nil || ok {
		return list, err
	}
	for {
		v, err := ctx.Parse(0)
		if err != nil {
			return nil, err
		}
		list = append(list, v)
		end, err := ctx.Require(",", "]")
		if err != nil {
			return nil, err
		}
		if end.Type == "]" {
			return list, nil
		}
	}
}

func objectLiteral(tok prattle.Token, ctx *prattle.Context[any]) (any, error) {
	obj := map[string]any{}
	if _, ok, err := ctx.Attempt("}"); err != nil || ok {
		return obj, err
	}
	for {
		k, err := ctx.Require("identifier", "string")
		if err != nil {
			return nil, err
		}
		key := k.Value
		if k.Type == "string" {
			key = key[1 : len(key)-1]
		}
		if _, err := ctx.Require(":"); err != nil {
			return nil, err
		}
		v, err := ctx.Parse(0)
		if err != nil {
			return nil, err
		}
		obj[key] = v
		end, err := ctx.Require(",", "}")
		if err != nil {
			return nil, err
		}
		if end.Type == "}" {
			return obj, nil
		}
	}
}

func arith(left any, tok prattle.Token, ctx *prattle.Context[any]) (any, error) {
	right, err := ctx.Parse(ctx.Precedence(tok.Type))
	if err != nil {
		return nil, err
	}
	if tok.Type == "+" {
		// + concatenates strings as well as adding numbers.
		if l, ok := left.(string); ok {
			r, ok := right.(string)
			if !ok {
				return nil, interpErrf("cannot concatenate %s and %s", typeName(left), typeName(right))
			}
			return l + r, nil
		}
	}
	l, lok := asNumber(left)
	r, rok := asNumber(right)
	if !lok || !rok {
		return nil, interpErrf("%q expects numbers, got %s and %s", tok.Type, typeName(left), typeName(right))
	}
	switch tok.Type {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		if r == 0 {
			return nil, interpErrf("division by zero")
		}
		return l / r, nil
	}
	panic("jsonexpr: arith on " + tok.Type)
}

func power(left any, tok prattle.Token, ctx *prattle.Context[any]) (any, error) {
	// Recursing below our own level keeps ** right-associative: an
	// immediately following ** still binds.
	right, err := ctx.Parse(ctx.Precedence("**-right-associative"))
	if err != nil {
		return nil, err
	}
	l, lok := asNumber(left)
	r, rok := asNumber(right)
	if !lok || !rok {
		return nil, interpErrf("%q expects numbers, got %s and %s", tok.Type, typeName(left), typeName(right))
	}
	return math.Pow(l, r), nil
}

func compare(left any, tok prattle.Token, ctx *prattle.Context[any]) (any, error) {
	right, err := ctx.Parse(ctx.Precedence(tok.Type))
	if err != nil {
		return nil, err
	}
	var cmp int
	switch l := left.(type) {
	case float64:
		r, ok := right.(float64)
		if !ok {
			return nil, interpErrf("cannot compare %s and %s", typeName(left), typeName(right))
		}
		switch {
		case l < r:
			cmp = -1
		case l > r:
			cmp = 1
		}
	case string:
		r, ok := right.(string)
		if !ok {
			return nil, interpErrf("cannot compare %s and %s", typeName(left), typeName(right))
		}
		cmp = strings.Compare(l, r)
	default:
		return nil, interpErrf("cannot compare %s and %s", typeName(left), typeName(right))
	}
	switch tok.Type {
	case "<":
		return cmp < 0, nil
	case "<=":
		return cmp <= 0, nil
	case ">":
		return cmp > 0, nil
	case ">=":
		return cmp >= 0, nil
	}
	panic("jsonexpr: compare on " + tok.Type)
}

func equality(left any, tok prattle.Token, ctx *prattle.Context[any]) (any, error) {
	right, err := ctx.Parse(ctx.Precedence(tok.Type))
	if err != nil {
		return nil, err
	}
	eq := deepEqual(left, right)
	if tok.Type == "!=" {
		eq = !eq
	}
	return eq, nil
}

func membership(left any, tok prattle.Token, ctx *prattle.Context[any]) (any, error) {
	right, err := ctx.Parse(ctx.Precedence("in"))
	if err != nil {
		return nil, err
	}
	switch r := right.(type) {
	case []any:
		for _, v := range r {
			if deepEqual(left, v) {
				return true, nil
			}
		}
		return false, nil
	case string:
		l, ok := left.(string)
		if !ok {
			return nil, interpErrf("in on a string expects a string, got %s", typeName(left))
		}
		return strings.Contains(r, l), nil
	case map[string]any:
		l, ok := left.(string)
		if !ok {
			return nil, interpErrf("in on an object expects a string key, got %s", typeName(left))
		}
		_, ok = r[l]
		return ok, nil
	}
	return nil, interpErrf("in expects an array, object, or string, got %s", typeName(right))
}

// logical evaluates && and ||. Parsing is evaluation here, so the right
// operand is always parsed and its errors always surface; there is no
// short-circuiting.
func logical(left any, tok prattle.Token, ctx *prattle.Context[any]) (any, error) {
	right, err := ctx.Parse(ctx.Precedence(tok.Type))
	if err != nil {
		return nil, err
	}
	if tok.Type == "&&" {
		return truthy(left) && truthy(right), nil
	}
	return truthy(left) || truthy(right), nil
}

func index(left any, tok prattle.Token, ctx *prattle.Context[any]) (any, error) {
	start, end := absent, absent
	isSlice := false
	_, ok, err := ctx.Attempt(":")
	if err != nil {
		return nil, err
	}
	if ok {
		isSlice = true
	} else {
		start, err = ctx.Parse(0)
		if err != nil {
			return nil, err
		}
		_, ok, err = ctx.Attempt(":")
		if err != nil {
			return nil, err
		}
		isSlice = ok
	}
	if isSlice {
		_, ok, err = ctx.Attempt("]")
		if err != nil {
			return nil, err
		}
		if !ok {
			end, err = ctx.Parse(0)
			if err != nil {
				return nil, err
			}
			if _, err := ctx.Require("]"); err != nil {
				return nil, err
			}
		}
		return sliceValue(left, start, end)
	}
	if _, err := ctx.Require("]"); err != nil {
		return nil, err
	}
	return indexValue(left, start)
}

func member(left any, tok prattle.Token, ctx *prattle.Context[any]) (any, error) {
	name, err := ctx.Require("identifier")
	if err != nil {
		return nil, err
	}
	obj, ok := left.(map[string]any)
	if !ok {
		return nil, interpErrf("cannot access property %q of %s", name.Value, typeName(left))
	}
	v, ok := obj[name.Value]
	if !ok {
		return nil, interpErrf("object has no property %q", name.Value)
	}
	return v, nil
}

func call(left any, tok prattle.Token, ctx *prattle.Context[any]) (any, error) {
	fn, ok := left.(Func)
	if !ok {
		return nil, interpErrf("%s is not callable", typeName(left))
	}
	var args []any
	_, ok, err := ctx.Attempt(")")
	if err != nil {
		return nil, err
	}
	for !ok {
		v, err := ctx.Parse(0)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
		end, err := ctx.Require(",", ")")
		if err != nil {
			return nil, err
		}
		ok = end.Type == ")"
	}
	return fn(args)
}
