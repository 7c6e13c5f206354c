//go:build go1.18
// +build go1.18

package calc

import "testing"

func FuzzBracket(f *testing.F) {
	f.Add("1")
	f.Add("x = 1 + 2*3^-y")
	f.Add("a-b < f(c, -d)")
	f.Add("x = 5-3 (-x)")
	f.Fuzz(func(t *testing.T, s string) {
		a, err := BracketString(s)
		if err != nil {
			return
		}
		// Every bracketed subexpression is one more level of nesting.
		b, err := BracketString(a, GreedySigns(), MaxDepth(len(a)+2))
		if err != nil {
			t.Fatalf("error reparsing %q from %q: %v", a, s, err)
		}
		if a != b {
			t.Errorf("bracketing %q is not stable:\nfirst  %q\nsecond %q", s, a, b)
		}
	})
}
