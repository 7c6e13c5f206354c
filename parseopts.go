package calc

import "strconv"

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsecfg) parsecfg
}

// parsecfg holds the settings for one parse. It is also a ParseOption.
type parsecfg struct {
	// greedy makes a sign immediately followed by a name or digit part of that
	// name or number even in operator position.
	greedy bool
	// maxdepth bounds the nesting of subexpressions.
	maxdepth int
}

// DefaultMaxDepth is the nesting bound used when MaxDepth is not given.
const DefaultMaxDepth = 1000

func defaultcfg() parsecfg {
	return parsecfg{maxdepth: DefaultMaxDepth}
}

type (
	greedyopt bool
	depthopt int
)

// GreedySigns tells the lexer that a + or - immediately followed by a name or
// digit is part of that name or number wherever it appears. By default, a sign
// following a complete operand is an operator, so "a-b" and "x = 5-3" are
// subtractions. With GreedySigns, "a-b" is the two names "a" and "-b", and
// "x = 5-3" assigns 5 to x and then evaluates -3. Signed names and numbers are
// recognized where an operand is expected in either mode, as in "2*-pi".
func GreedySigns() ParseOption {
	return greedyopt(true)
}

func (o greedyopt) parseOption(p parsecfg) parsecfg {
	p.greedy = bool(o)
	return p
}

// MaxDepth sets the deepest nesting of parentheses, function arguments, and
// exponents that the parser accepts before failing with a DepthError.
// Panics if n is not positive.
func MaxDepth(n int) ParseOption {
	if n <= 0 {
		panic("calc: invalid max depth " + strconv.Itoa(n))
	}
	return depthopt(n)
}

func (o depthopt) parseOption(p parsecfg) parsecfg {
	p.maxdepth = int(o)
	return p
}

// ParsingPreset combines parsing options into one, which is more efficient
// when using the same options for many calls to Eval. Options applied after a
// preset override it.
func ParsingPreset(opts ...ParseOption) ParseOption {
	p := defaultcfg()
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	return &p
}

func (o *parsecfg) parseOption(p parsecfg) parsecfg {
	return *o
}
