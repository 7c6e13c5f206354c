//go:build go1.18
// +build go1.18

package calc_test

import (
	"testing"

	"github.com/zephyrtronium/calc"
)

func FuzzEval(f *testing.F) {
	f.Add("x")
	f.Add("2+3*4")
	f.Add("x = 5\nx + 1")
	f.Add("-abs(-3)")
	f.Add("y = 2^100 y/3 > 1e29")
	f.Fuzz(func(t *testing.T, s string) {
		calc.EvalString(s, calc.SetVar("x", calc.IntValue(1)))
	})
}
