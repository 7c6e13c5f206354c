package calc

// The grammar, from the loosest binding production to the tightest:
//
//	Program    = { Assign } [ Comparison ]
//	Assign     = name '=' Comparison
//	Comparison = Arith [ ( '<' | '<=' | '>' | '>=' | '!=' | '==' ) Arith ]
//	Arith      = Arith ( '+' | '-' ) Term | Term
//	Term       = Term ( '*' | '/' ) Power | Power
//	Power      = Atom '^' Power | Atom
//	Atom       = num | name '(' Arith { ',' Arith } ')' | name | '(' Arith ')'
//
// Statements are not delimited. An assignment ends where its comparison can
// no longer continue, so "x = 1 y = x" is two assignments.

// rule identifies the production a reduction completes.
type rule int8

const (
	ruleNone rule = iota

	ruleNum    // text is the literal
	ruleName   // text is the name, possibly signed
	ruleCall   // text is the function name, possibly signed; args in order
	ruleAssign // text is the target name; one arg

	ruleAdd // two args
	ruleSub
	ruleMul
	ruleDiv
	rulePow

	ruleGt // two args
	ruleGe
	ruleLt
	ruleLe
	ruleNe
	ruleEq

	ruleStart // one arg per statement
)

//go:generate stringer -type=rule -trimprefix=rule

// reducer receives reductions from the parser as each production completes.
// args are the results of earlier reductions, in source order. The parser
// never retains args after reduce returns.
type reducer[T any] interface {
	reduce(r rule, text string, args ...T) T
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the rule to reduce when this operator is selected.
	op rule
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets an arithmetic operator for a token string. If there is no such
// operator, then the result has an op of ruleNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, ruleAdd}
	case "-":
		return operator{1, false, ruleSub}
	case "*":
		return operator{5, false, ruleMul}
	case "/":
		return operator{5, false, ruleDiv}
	case "^":
		return operator{15, true, rulePow}
	default:
		return operator{}
	}
}

// cmpop gets the comparison rule for a token string, or ruleNone.
// Comparisons do not chain, so they need no precedence.
func cmpop(text string) rule {
	switch text {
	case "<":
		return ruleLt
	case "<=":
		return ruleLe
	case ">":
		return ruleGt
	case ">=":
		return ruleGe
	case "!=":
		return ruleNe
	case "==":
		return ruleEq
	default:
		return ruleNone
	}
}

// exprprec is the precedence required to parse an entire arithmetic
// subexpression.
var exprprec = operator{-128, true, ruleNone}
