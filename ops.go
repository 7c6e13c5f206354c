package calc

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// maxPowBits bounds the size of exact integer powers. Larger results are
// computed in floating point, which overflows to infinity.
const maxPowBits = 1 << 20

// number parses a literal. Literals without a fraction or exponent are Ints.
func number(text string) Value {
	if !strings.ContainsAny(text, ".eE") {
		x, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return errValue(&strconv.NumError{Func: "ParseInt", Num: text, Err: strconv.ErrSyntax})
		}
		return intval(x)
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		// Out of range literals parse to ±Inf, the same as float64 arithmetic
		// that overflows.
		if ne, _ := err.(*strconv.NumError); ne == nil || ne.Err != strconv.ErrRange {
			return errValue(err)
		}
	}
	return FloatValue(f)
}

// poisoned returns the first Error operand.
func poisoned(x, y Value) (Value, bool) {
	if x.kind == Error {
		return x, true
	}
	if y.kind == Error {
		return y, true
	}
	return Value{}, false
}

func add(x, y Value) Value {
	if v, ok := poisoned(x, y); ok {
		return v
	}
	if x.integral() && y.integral() {
		return intval(new(big.Int).Add(x.bigint(), y.bigint()))
	}
	return FloatValue(x.Float64() + y.Float64())
}

func sub(x, y Value) Value {
	if v, ok := poisoned(x, y); ok {
		return v
	}
	if x.integral() && y.integral() {
		return intval(new(big.Int).Sub(x.bigint(), y.bigint()))
	}
	return FloatValue(x.Float64() - y.Float64())
}

func mul(x, y Value) Value {
	if v, ok := poisoned(x, y); ok {
		return v
	}
	if x.integral() && y.integral() {
		return intval(new(big.Int).Mul(x.bigint(), y.bigint()))
	}
	return FloatValue(x.Float64() * y.Float64())
}

// div is true division. Division by zero gives ±Inf or NaN.
func div(x, y Value) Value {
	if v, ok := poisoned(x, y); ok {
		return v
	}
	if x.integral() && y.integral() && y.bigint().Sign() != 0 {
		// Exact quotient, rounded once.
		f, _ := new(big.Rat).SetFrac(x.bigint(), y.bigint()).Float64()
		return FloatValue(f)
	}
	return FloatValue(x.Float64() / y.Float64())
}

func pow(x, y Value) Value {
	if v, ok := poisoned(x, y); ok {
		return v
	}
	if x.integral() && y.integral() && y.bigint().Sign() >= 0 {
		b, e := x.bigint(), y.bigint()
		switch {
		case b.CmpAbs(bigOne) <= 0:
			// 0, 1, and -1 stay small for any exponent.
			return intval(new(big.Int).Exp(b, e, nil))
		case e.IsInt64() && e.Int64() <= maxPowBits/int64(b.BitLen()):
			return intval(new(big.Int).Exp(b, e, nil))
		}
	}
	return FloatValue(math.Pow(x.Float64(), y.Float64()))
}

// neg negates a number. Bools negate to Ints.
func neg(x Value) Value {
	switch x.kind {
	case Int, Bool:
		return intval(new(big.Int).Neg(x.bigint()))
	case Float:
		return FloatValue(-x.f)
	default:
		return x
	}
}

// compare compares two numbers exactly. ok is false if either is NaN.
func compare(x, y Value) (c int, ok bool) {
	if x.integral() && y.integral() {
		return x.bigint().Cmp(y.bigint()), true
	}
	if x.kind == Float && math.IsNaN(x.f) || y.kind == Float && math.IsNaN(y.f) {
		return 0, false
	}
	if x.kind == Float && y.kind == Float {
		switch {
		case x.f < y.f:
			return -1, true
		case x.f > y.f:
			return 1, true
		default:
			return 0, true
		}
	}
	return exactfloat(x).Cmp(exactfloat(y)), true
}

// exactfloat converts a non-NaN number to a big.Float without rounding.
func exactfloat(x Value) *big.Float {
	if x.kind == Float {
		return new(big.Float).SetFloat64(x.f)
	}
	return new(big.Float).SetInt(x.bigint())
}

// comparison evaluates a comparison rule.
func comparison(r rule, x, y Value) Value {
	if v, ok := poisoned(x, y); ok {
		return v
	}
	c, ok := compare(x, y)
	switch r {
	case ruleGt:
		return BoolValue(ok && c > 0)
	case ruleGe:
		return BoolValue(ok && c >= 0)
	case ruleLt:
		return BoolValue(ok && c < 0)
	case ruleLe:
		return BoolValue(ok && c <= 0)
	case ruleNe:
		return BoolValue(!ok || c != 0)
	case ruleEq:
		return BoolValue(ok && c == 0)
	default:
		panic("calc: not a comparison: " + r.String())
	}
}
