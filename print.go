package calc

import (
	"io"
	"strings"
)

// printer reduces a program to a string with every arithmetic operation in
// parentheses.
type printer struct{}

func (printer) reduce(r rule, text string, args ...string) string {
	switch r {
	case ruleNum, ruleName:
		return text
	case ruleCall:
		return text + "(" + strings.Join(args, ", ") + ")"
	case ruleAssign:
		return text + " = " + args[0]
	case ruleStart:
		return strings.Join(args, "\n")
	case ruleGt, ruleGe, ruleLt, ruleLe, ruleNe, ruleEq:
		// Comparisons never nest.
		return args[0] + " " + text + " " + args[1]
	case ruleNone:
		panic("calc: invalid reduction " + r.String())
	default:
		return "(" + args[0] + " " + text + " " + args[1] + ")"
	}
}

// Bracket parses a program without evaluating it and returns it with each
// statement on its own line and each arithmetic operation enclosed in
// parentheses, showing how the grammar groups it. E.g., "x = 1 + 2*3^-y"
// becomes "x = (1 + (2 * (3 ^ -y)))". The result parses with GreedySigns to
// the same groupings.
func Bracket(src io.RuneScanner, opts ...ParseOption) (string, error) {
	return parse[string](src, printer{}, opts...)
}

// BracketString is a shortcut to bracket a program in a string.
func BracketString(src string, opts ...ParseOption) (string, error) {
	return Bracket(strings.NewReader(src), opts...)
}
