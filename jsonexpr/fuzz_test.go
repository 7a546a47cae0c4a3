//go:build go1.18
// +build go1.18

package jsonexpr_test

import (
	"testing"

	"github.com/prattle-lang/prattle/jsonexpr"
)

func FuzzParse(f *testing.F) {
	f.Add("2 + 3 * 4")
	f.Add("{a: [1, 'b', true]}.a[-1] && 'x' in 'xyz'")
	f.Add("min(len('abcd'), 2 ** 3 ** 2)")
	f.Fuzz(func(t *testing.T, s string) {
		jsonexpr.Parse(s, nil)
	})
}
