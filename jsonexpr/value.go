package jsonexpr

import (
	"fmt"
	"math"
	"reflect"

	"github.com/prattle-lang/prattle"
)

func interpErrf(format string, args ...any) error {
	return &prattle.InterpreterError{Msg: fmt.Sprintf(format, args...)}
}

// truthy reports whether a value counts as true in a boolean position.
// null, false, 0, the empty string, and empty collections are false;
// everything else is true.
func truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	}
	return true
}

func asNumber(v any) (float64, bool) {
	n, ok := v.(float64)
	return n, ok
}

// deepEqual compares two values structurally. The value model is maps,
// slices, and scalars, which reflect.DeepEqual handles; functions are
// never equal.
func deepEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

// typeName names a value's kind for error messages.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "a boolean"
	case float64:
		return "a number"
	case string:
		return "a string"
	case []any:
		return "an array"
	case map[string]any:
		return "an object"
	case Func:
		return "a function"
	}
	return fmt.Sprintf("%T", v)
}

// intIndex converts an index value to an int, requiring it to be an
// integral number.
func intIndex(v any) (int, error) {
	n, ok := asNumber(v)
	if !ok || n != math.Trunc(n) {
		return 0, interpErrf("index must be an integer, got %s", typeName(v))
	}
	return int(n), nil
}

func indexValue(left, idx any) (any, error) {
	switch l := left.(type) {
	case []any:
		i, err := intIndex(idx)
		if err != nil {
			return nil, err
		}
		if i < 0 {
			i += len(l)
		}
		if i < 0 || i >= len(l) {
			return nil, interpErrf("index %v out of bounds", idx)
		}
		return l[i], nil
	case string:
		r := []rune(l)
		i, err := intIndex(idx)
		if err != nil {
			return nil, err
		}
		if i < 0 {
			i += len(r)
		}
		if i < 0 || i >= len(r) {
			return nil, interpErrf("index %v out of bounds", idx)
		}
		return string(r[i]), nil
	case map[string]any:
		k, ok := idx.(string)
		if !ok {
			return nil, interpErrf("object index must be a string, got %s", typeName(idx))
		}
		v, ok := l[k]
		if !ok {
			return nil, interpErrf("object has no property %q", k)
		}
		return v, nil
	}
	return nil, interpErrf("cannot index %s", typeName(left))
}

func sliceValue(left, start, end any) (any, error) {
	switch l := left.(type) {
	case []any:
		i, j, err := sliceBounds(len(l), start, end)
		if err != nil {
			return nil, err
		}
		return append([]any{}, l[i:j]...), nil
	case string:
		r := []rune(l)
		i, j, err := sliceBounds(len(r), start, end)
		if err != nil {
			return nil, err
		}
		return string(r[i:j]), nil
	}
	return nil, interpErrf("cannot slice %s", typeName(left))
}

// absentBound marks a slice endpoint that was not written, so that
// a[:2] stays distinguishable from a[null:2]: the latter is an invalid
// index, not a default bound.
type absentBound struct{}

var absent any = absentBound{}

// sliceBounds resolves optional slice endpoints over a length n,
// counting negatives from the end and clamping to the valid range.
func sliceBounds(n int, start, end any) (int, int, error) {
	i, j := 0, n
	if start != absent {
		var err error
		if i, err = intIndex(start); err != nil {
			return 0, 0, err
		}
		if i < 0 {
			i += n
		}
	}
	if end != absent {
		var err error
		if j, err = intIndex(end); err != nil {
			return 0, 0, err
		}
		if j < 0 {
			j += n
		}
	}
	i = clamp(i, 0, n)
	j = clamp(j, i, n)
	return i, j, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
