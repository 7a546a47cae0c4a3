package jsonexpr

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Builtins returns the built-in function bindings. Parse merges these
// under the caller's bindings, so a caller may shadow or omit any of
// them; the map is freshly built on every call.
func Builtins() map[string]any {
	return map[string]any{
		"abs":       numeric1("abs", math.Abs),
		"floor":     numeric1("floor", math.Floor),
		"ceil":      numeric1("ceil", math.Ceil),
		"sqrt":      Func(sqrt),
		"min":       extremum("min", func(a, b float64) bool { return a < b }),
		"max":       extremum("max", func(a, b float64) bool { return a > b }),
		"len":       Func(length),
		"str":       Func(str),
		"number":    Func(tonumber),
		"lowercase": string1("lowercase", strings.ToLower),
		"uppercase": string1("uppercase", strings.ToUpper),
	}
}

func numeric1(name string, f func(float64) float64) Func {
	return func(args []any) (any, error) {
		if len(args) != 1 {
			return nil, interpErrf("%s expects one argument", name)
		}
		n, ok := asNumber(args[0])
		if !ok {
			return nil, interpErrf("%s expects a number, got %s", name, typeName(args[0]))
		}
		return f(n), nil
	}
}

func string1(name string, f func(string) string) Func {
	return func(args []any) (any, error) {
		if len(args) != 1 {
			return nil, interpErrf("%s expects one argument", name)
		}
		s, ok := args[0].(string)
		if !ok {
			return nil, interpErrf("%s expects a string, got %s", name, typeName(args[0]))
		}
		return f(s), nil
	}
}

func sqrt(args []any) (any, error) {
	if len(args) != 1 {
		return nil, interpErrf("sqrt expects one argument")
	}
	n, ok := asNumber(args[0])
	if !ok {
		return nil, interpErrf("sqrt expects a number, got %s", typeName(args[0]))
	}
	if n < 0 {
		return nil, interpErrf("sqrt of a negative number")
	}
	return math.Sqrt(n), nil
}

func extremum(name string, better func(a, b float64) bool) Func {
	return func(args []any) (any, error) {
		if len(args) == 0 {
			return nil, interpErrf("%s expects at least one argument", name)
		}
		best, ok := asNumber(args[0])
		if !ok {
			return nil, interpErrf("%s expects numbers, got %s", name, typeName(args[0]))
		}
		for _, a := range args[1:] {
			n, ok := asNumber(a)
			if !ok {
				return nil, interpErrf("%s expects numbers, got %s", name, typeName(a))
			}
			if better(n, best) {
				best = n
			}
		}
		return best, nil
	}
}

func length(args []any) (any, error) {
	if len(args) != 1 {
		return nil, interpErrf("len expects one argument")
	}
	switch v := args[0].(type) {
	case string:
		return float64(utf8.RuneCountInString(v)), nil
	case []any:
		return float64(len(v)), nil
	case map[string]any:
		return float64(len(v)), nil
	}
	return nil, interpErrf("len expects a string, array, or object, got %s", typeName(args[0]))
}

func str(args []any) (any, error) {
	if len(args) != 1 {
		return nil, interpErrf("str expects one argument")
	}
	switch v := args[0].(type) {
	case nil:
		return "null", nil
	case bool:
		return strconv.FormatBool(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case string:
		return v, nil
	}
	return nil, interpErrf("str expects a scalar, got %s", typeName(args[0]))
}

func tonumber(args []any) (any, error) {
	if len(args) != 1 {
		return nil, interpErrf("number expects one argument")
	}
	switch v := args[0].(type) {
	case float64:
		return v, nil
	case string:
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, interpErrf("cannot convert %q to a number", v)
		}
		return n, nil
	}
	return nil, interpErrf("number expects a number or string, got %s", typeName(args[0]))
}
