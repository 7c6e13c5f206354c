package calc

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Kind is the kind of a Value.
type Kind int8

const (
	// Int is an integer of any size. The zero Value is the Int 0.
	Int Kind = iota
	// Float is a float64.
	Float
	// Bool is the result of a comparison. It behaves as the Int 0 or 1 in
	// arithmetic.
	Bool
	// Error is a failed evaluation. It poisons any arithmetic it is part of.
	Error
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Error:
		return "error"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is the result of evaluating an expression: a number, a boolean, or an
// error marker. Values are immutable.
type Value struct {
	kind Kind
	// i is the value of an Int or Bool. nil means 0. The big.Int is never
	// modified after the Value is created.
	i   *big.Int
	f   float64
	err error
}

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
)

// IntValue returns an Int value.
func IntValue(n int64) Value {
	return Value{kind: Int, i: big.NewInt(n)}
}

// BigIntValue returns an Int value holding a copy of x.
func BigIntValue(x *big.Int) Value {
	return Value{kind: Int, i: new(big.Int).Set(x)}
}

// FloatValue returns a Float value.
func FloatValue(f float64) Value {
	return Value{kind: Float, f: f}
}

// BoolValue returns a Bool value.
func BoolValue(b bool) Value {
	if b {
		return Value{kind: Bool, i: bigOne}
	}
	return Value{kind: Bool, i: bigZero}
}

// errValue returns an Error value. err must be non-nil.
func errValue(err error) Value {
	if err == nil {
		panic("calc: error value without an error")
	}
	return Value{kind: Error, err: err}
}

// intval wraps x without copying. x must not be modified afterward.
func intval(x *big.Int) Value {
	return Value{kind: Int, i: x}
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// Err returns the error an Error value carries, or nil for any other kind.
// The error is a *NameError for an unresolved name, a *CallError for a failed
// function call, or whatever a number literal failed to parse with.
func (v Value) Err() error {
	return v.err
}

// integral reports whether v is an Int or Bool.
func (v Value) integral() bool {
	return v.kind == Int || v.kind == Bool
}

// bigint returns the integer of an Int or Bool without copying.
func (v Value) bigint() *big.Int {
	if v.i == nil {
		return bigZero
	}
	return v.i
}

// Float64 returns the value as a float64. Integers too large for float64
// become ±Inf. Error values are NaN.
func (v Value) Float64() float64 {
	switch v.kind {
	case Float:
		return v.f
	case Int, Bool:
		x := v.bigint()
		if x.IsInt64() {
			return float64(x.Int64())
		}
		f, _ := new(big.Float).SetInt(x).Float64()
		return f
	default:
		return math.NaN()
	}
}

// BigInt returns a copy of the integer of an Int or Bool value. ok is false
// for other kinds.
func (v Value) BigInt() (x *big.Int, ok bool) {
	if !v.integral() {
		return nil, false
	}
	return new(big.Int).Set(v.bigint()), true
}

// Int64 returns the integer of an Int or Bool value. ok is false for other
// kinds or if the integer does not fit.
func (v Value) Int64() (n int64, ok bool) {
	if !v.integral() || !v.bigint().IsInt64() {
		return 0, false
	}
	return v.bigint().Int64(), true
}

// Truth reports whether v is a nonzero number. NaN is true. Error values are
// false.
func (v Value) Truth() bool {
	switch v.kind {
	case Int, Bool:
		return v.bigint().Sign() != 0
	case Float:
		return v.f != 0
	default:
		return false
	}
}

// Equal reports whether v and w are the same kind and the same value. NaNs
// are equal to each other. Error values are equal if their messages are.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case Int, Bool:
		return v.bigint().Cmp(w.bigint()) == 0
	case Float:
		return v.f == w.f || math.IsNaN(v.f) && math.IsNaN(w.f)
	default:
		return v.err.Error() == w.err.Error()
	}
}

// String formats the value. Floats always have a decimal point or exponent so
// that they are distinguishable from integers.
func (v Value) String() string {
	switch v.kind {
	case Int:
		return v.bigint().String()
	case Float:
		return formatFloat(v.f)
	case Bool:
		if v.bigint().Sign() != 0 {
			return "true"
		}
		return "false"
	default:
		return "error: " + v.err.Error()
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	if a := math.Abs(f); a != 0 && (a < 1e-4 || a >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
