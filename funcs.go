package calc

import (
	"errors"
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a function of numbers. Functions are looked up by name in an
// evaluator's builtins when a call is reduced.
type Func interface {
	// Call evaluates the function. args has a length for which CanCall
	// returned true and holds no Error values. Call must not modify args.
	// An error, or a panic, becomes a *CallError marker wrapping it.
	Call(args []Value) (Value, error)

	// CanCall returns whether the function can be called with n arguments.
	CanCall(n int) bool
}

// Builtin is a name the evaluator knows without assignment, either a constant
// or a function. The zero Builtin is neither.
type Builtin struct {
	val Value
	fn  Func
	ok  bool
}

// Constant creates a Builtin for a constant value.
func Constant(v Value) Builtin {
	return Builtin{val: v, ok: true}
}

// Function creates a Builtin for a function.
func Function(fn Func) Builtin {
	return Builtin{fn: fn, ok: fn != nil}
}

// value returns the value of the builtin used as a bare name.
func (b Builtin) value(name string) Value {
	if b.fn != nil {
		return errValue(&CallError{Func: name, Err: ErrNotValue})
	}
	return b.val
}

// maxFactorial bounds the arguments of factorial, comb, and perm.
const maxFactorial = 100000

// logPrec is the precision in bits of intermediate logarithms.
const logPrec = 128

var globalfuncs = map[string]Builtin{
	// constants
	"pi":  Constant(FloatValue(math.Pi)),
	"e":   Constant(FloatValue(math.E)),
	"tau": Constant(FloatValue(2 * math.Pi)),
	"inf": Constant(FloatValue(math.Inf(1))),
	"nan": Constant(FloatValue(math.NaN())),

	// trig
	"acos":  Function(Monadic(math.Acos)),
	"acosh": Function(Monadic(math.Acosh)),
	"asin":  Function(Monadic(math.Asin)),
	"asinh": Function(Monadic(math.Asinh)),
	"atan":  Function(Monadic(math.Atan)),
	"atan2": Function(Dyadic(math.Atan2)),
	"atanh": Function(Monadic(math.Atanh)),
	"cos":   Function(Monadic(math.Cos)),
	"cosh":  Function(Monadic(math.Cosh)),
	"sin":   Function(Monadic(math.Sin)),
	"sinh":  Function(Monadic(math.Sinh)),
	"tan":   Function(Monadic(math.Tan)),
	"tanh":  Function(Monadic(math.Tanh)),
	"hypot": Function(Variadic(0, -1, hypot)),
	"degrees": Function(Monadic(func(x float64) float64 {
		return x * (180 / math.Pi)
	})),
	"radians": Function(Monadic(func(x float64) float64 {
		return x * (math.Pi / 180)
	})),

	// exponents and logarithms
	"exp":   Function(Monadic(math.Exp)),
	"exp2":  Function(Monadic(math.Exp2)),
	"expm1": Function(Monadic(math.Expm1)),
	"log":   Function(logfunc{}),
	"log2":  Function(logfunc{base: 2}),
	"log10": Function(logfunc{base: 10}),
	"log1p": Function(Monadic(math.Log1p)),
	"pow":   Function(Dyadic(math.Pow)),
	"sqrt":  Function(Monadic(math.Sqrt)),
	"cbrt":  Function(Monadic(math.Cbrt)),

	// special functions
	"erf":   Function(Monadic(math.Erf)),
	"erfc":  Function(Monadic(math.Erfc)),
	"gamma": Function(Monadic(math.Gamma)),
	"lgamma": Function(Monadic(func(x float64) float64 {
		r, _ := math.Lgamma(x)
		return r
	})),

	// representations
	"ceil":      Function(rounding(math.Ceil)),
	"floor":     Function(rounding(math.Floor)),
	"trunc":     Function(rounding(math.Trunc)),
	"fabs":      Function(Monadic(math.Abs)),
	"copysign":  Function(Dyadic(math.Copysign)),
	"fmod":      Function(Dyadic(math.Mod)),
	"remainder": Function(Dyadic(math.Remainder)),
	"nextafter": Function(Dyadic(math.Nextafter)),
	"ulp":       Function(Monadic(ulp)),
	"ldexp":     Function(Variadic(2, 2, ldexp)),
	"isfinite": Function(predicate(func(x float64) bool {
		return !math.IsInf(x, 0) && !math.IsNaN(x)
	})),
	"isinf": Function(predicate(func(x float64) bool {
		return math.IsInf(x, 0)
	})),
	"isnan":   Function(predicate(math.IsNaN)),
	"isclose": Function(Variadic(2, 2, isclose)),

	// integers
	"factorial": Function(Variadic(1, 1, factorial)),
	"comb":      Function(Variadic(2, 2, comb)),
	"perm":      Function(Variadic(1, 2, perm)),
	"gcd":       Function(Variadic(0, -1, gcd)),
	"lcm":       Function(Variadic(0, -1, lcm)),
	"isqrt":     Function(Variadic(1, 1, isqrt)),

	"abs": Function(Variadic(1, 1, abs)),
	"max": Function(Variadic(2, -1, func(args []Value) (Value, error) {
		return extremum(args, 1), nil
	})),
	"min": Function(Variadic(2, -1, func(args []Value) (Value, error) {
		return extremum(args, -1), nil
	})),
}

var (
	// ErrRange is the cause of a call error when a result or an integer
	// argument is too large.
	ErrRange = errors.New("math range error")
	// ErrInteger is the cause of a call error when a function requiring
	// integers is called with a float.
	ErrInteger = errors.New("argument must be an integer")
	// ErrUndefined is the cause of a call error for a name with no builtin.
	ErrUndefined = errors.New("undefined function")
	// ErrNotFunc is the cause of a call error for a call to a constant.
	ErrNotFunc = errors.New("not a function")
	// ErrArity is the cause of a call error for the wrong number of
	// arguments.
	ErrArity = errors.New("wrong number of arguments")
	// ErrNotValue is the cause of a call error for a function name used
	// without a call.
	ErrNotValue = errors.New("function used as a value")
)

// DomainError is an error returned when a function is called on arguments
// outside its domain.
type DomainError struct {
	// X is the out-of-domain argument. It is meaningful only if Arg > 0.
	X Value
	// Arg is the 1-based index of the argument, or 0 if no single argument
	// is responsible.
	Arg int
}

func (err *DomainError) Error() string {
	if err.Arg == 0 {
		return "math domain error"
	}
	return err.X.String() + " outside domain (argument " + strconv.Itoa(err.Arg) + ")"
}

// tofloat converts an argument for a float function.
func tofloat(v Value) (float64, error) {
	f := v.Float64()
	if v.integral() && math.IsInf(f, 0) {
		return 0, ErrRange
	}
	return f, nil
}

// checked makes a result from a float function, failing if the function
// produced NaN from numbers or infinity from finite numbers.
func checked(r float64, in ...float64) (Value, error) {
	nan, inf := false, false
	for _, x := range in {
		nan = nan || math.IsNaN(x)
		inf = inf || math.IsInf(x, 0)
	}
	switch {
	case math.IsNaN(r) && !nan:
		return Value{}, &DomainError{}
	case math.IsInf(r, 0) && !nan && !inf:
		return Value{}, ErrRange
	}
	return FloatValue(r), nil
}

type monadic struct {
	f func(float64) float64
}

func (m monadic) Call(args []Value) (Value, error) {
	x, err := tofloat(args[0])
	if err != nil {
		return Value{}, err
	}
	r, err := checked(m.f(x), x)
	if de, _ := err.(*DomainError); de != nil {
		de.X, de.Arg = args[0], 1
	}
	return r, err
}

func (m monadic) CanCall(n int) bool {
	return n == 1
}

// Monadic wraps a float function of one variable into a Func. Integer
// arguments are converted to float. The result is an error if f returns NaN
// for a non-NaN argument or infinity for a finite one.
func Monadic(f func(float64) float64) Func {
	return monadic{f}
}

type dyadic struct {
	f func(x, y float64) float64
}

func (d dyadic) Call(args []Value) (Value, error) {
	x, err := tofloat(args[0])
	if err != nil {
		return Value{}, err
	}
	y, err := tofloat(args[1])
	if err != nil {
		return Value{}, err
	}
	return checked(d.f(x, y), x, y)
}

func (d dyadic) CanCall(n int) bool {
	return n == 2
}

// Dyadic wraps a float function of two variables into a Func, with the same
// conversions and checks as Monadic.
func Dyadic(f func(x, y float64) float64) Func {
	return dyadic{f}
}

type variadic struct {
	min, max int
	f        func([]Value) (Value, error)
}

func (v variadic) Call(args []Value) (Value, error) {
	return v.f(args)
}

func (v variadic) CanCall(n int) bool {
	return n >= v.min && (v.max < 0 || n <= v.max)
}

// Variadic wraps a function of between min and max arguments, inclusive,
// into a Func. If max is negative, there is no upper limit. f receives the
// arguments unconverted.
func Variadic(min, max int, f func(args []Value) (Value, error)) Func {
	return variadic{min, max, f}
}

type rounding func(float64) float64

func (f rounding) Call(args []Value) (Value, error) {
	v := args[0]
	if v.integral() {
		return intval(v.bigint()), nil
	}
	switch {
	case math.IsNaN(v.f):
		return Value{}, &DomainError{X: v, Arg: 1}
	case math.IsInf(v.f, 0):
		return Value{}, ErrRange
	}
	r, _ := new(big.Float).SetFloat64(f(v.f)).Int(nil)
	return intval(r), nil
}

func (f rounding) CanCall(n int) bool {
	return n == 1
}

type predicate func(float64) bool

func (f predicate) Call(args []Value) (Value, error) {
	x, err := tofloat(args[0])
	if err != nil {
		return Value{}, err
	}
	return BoolValue(f(x)), nil
}

func (f predicate) CanCall(n int) bool {
	return n == 1
}

// logfunc computes logarithms in extended precision, so that exact powers of
// the base have exact logarithms and integers beyond float64 range have
// logarithms at all. A zero base means the natural logarithm with an optional
// second argument giving the base.
type logfunc struct {
	base int64
}

func (l logfunc) Call(args []Value) (Value, error) {
	x := args[0]
	if x.kind == Float && (math.IsNaN(x.f) || math.IsInf(x.f, 1)) {
		return x, nil
	}
	lx, err := ln(x, 1)
	if err != nil {
		return Value{}, err
	}
	var d *big.Float
	switch {
	case len(args) == 2:
		b := args[1]
		if b.kind == Float && (math.IsNaN(b.f) || math.IsInf(b.f, 1)) {
			f, _ := lx.Float64()
			return FloatValue(f / math.Log(b.f)), nil
		}
		if c, _ := compare(b, IntValue(1)); c == 0 {
			return Value{}, &DomainError{X: b, Arg: 2}
		}
		d, err = ln(b, 2)
		if err != nil {
			return Value{}, err
		}
	case l.base != 0:
		d, _ = ln(IntValue(l.base), 0)
	}
	if d != nil {
		lx.Quo(lx, d)
	}
	f, _ := lx.Float64()
	return FloatValue(f), nil
}

func (l logfunc) CanCall(n int) bool {
	return n == 1 || l.base == 0 && n == 2
}

// ln computes the natural logarithm of a positive finite number.
func ln(v Value, arg int) (*big.Float, error) {
	if c, _ := compare(v, Value{}); c <= 0 {
		return nil, &DomainError{X: v, Arg: arg}
	}
	x := new(big.Float).SetPrec(logPrec).Set(exactfloat(v))
	return bigfloat.Log(new(big.Float).SetPrec(logPrec), x), nil
}

func hypot(args []Value) (Value, error) {
	xs := make([]float64, len(args))
	h := 0.0
	for i, v := range args {
		x, err := tofloat(v)
		if err != nil {
			return Value{}, err
		}
		xs[i] = x
		h = math.Hypot(h, x)
	}
	return checked(h, xs...)
}

func ulp(x float64) float64 {
	x = math.Abs(x)
	switch {
	case math.IsNaN(x), math.IsInf(x, 0):
		return x
	case x == math.MaxFloat64:
		return x - math.Nextafter(x, 0)
	}
	return math.Nextafter(x, math.Inf(1)) - x
}

func ldexp(args []Value) (Value, error) {
	x, err := tofloat(args[0])
	if err != nil {
		return Value{}, err
	}
	n, err := intarg(args[1])
	if err != nil {
		return Value{}, err
	}
	// Exponents past ±1<<16 already overflow or underflow every float64.
	e := int(clamp(n, 1<<16))
	return checked(math.Ldexp(x, e), x)
}

// clamp returns n limited to [-lim, lim].
func clamp(n *big.Int, lim int64) int64 {
	switch {
	case n.Cmp(big.NewInt(lim)) > 0:
		return lim
	case n.Cmp(big.NewInt(-lim)) < 0:
		return -lim
	}
	return n.Int64()
}

func isclose(args []Value) (Value, error) {
	a, err := tofloat(args[0])
	if err != nil {
		return Value{}, err
	}
	b, err := tofloat(args[1])
	if err != nil {
		return Value{}, err
	}
	if a == b {
		return BoolValue(true), nil
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return BoolValue(false), nil
	}
	const relTol = 1e-9
	d := math.Abs(a - b)
	return BoolValue(d <= relTol*math.Abs(b) || d <= relTol*math.Abs(a)), nil
}

// intarg gets an integer argument.
func intarg(v Value) (*big.Int, error) {
	if !v.integral() {
		return nil, ErrInteger
	}
	return v.bigint(), nil
}

// natarg gets a nonnegative integer argument no greater than maxFactorial.
// arg is the 1-based argument index for errors.
func natarg(args []Value, arg int) (int64, error) {
	n, err := intarg(args[arg-1])
	if err != nil {
		return 0, err
	}
	if n.Sign() < 0 {
		return 0, &DomainError{X: args[arg-1], Arg: arg}
	}
	if !n.IsInt64() || n.Int64() > maxFactorial {
		return 0, ErrRange
	}
	return n.Int64(), nil
}

func factorial(args []Value) (Value, error) {
	n, err := natarg(args, 1)
	if err != nil {
		return Value{}, err
	}
	return intval(new(big.Int).MulRange(1, n)), nil
}

func comb(args []Value) (Value, error) {
	n, err := natarg(args, 1)
	if err != nil {
		return Value{}, err
	}
	k, err := natarg(args, 2)
	if err != nil {
		return Value{}, err
	}
	if k > n {
		return IntValue(0), nil
	}
	return intval(new(big.Int).Binomial(n, k)), nil
}

func perm(args []Value) (Value, error) {
	n, err := natarg(args, 1)
	if err != nil {
		return Value{}, err
	}
	k := n
	if len(args) == 2 {
		k, err = natarg(args, 2)
		if err != nil {
			return Value{}, err
		}
	}
	if k > n {
		return IntValue(0), nil
	}
	return intval(new(big.Int).MulRange(n-k+1, n)), nil
}

func gcd(args []Value) (Value, error) {
	r := new(big.Int)
	for _, v := range args {
		n, err := intarg(v)
		if err != nil {
			return Value{}, err
		}
		r.GCD(nil, nil, r, n)
	}
	return intval(r), nil
}

func lcm(args []Value) (Value, error) {
	r := big.NewInt(1)
	for _, v := range args {
		n, err := intarg(v)
		if err != nil {
			return Value{}, err
		}
		if n.Sign() == 0 || r.Sign() == 0 {
			r.SetInt64(0)
			continue
		}
		g := new(big.Int).GCD(nil, nil, r, n)
		r.Mul(r, new(big.Int).Quo(n, g))
		r.Abs(r)
	}
	return intval(r), nil
}

func isqrt(args []Value) (Value, error) {
	n, err := intarg(args[0])
	if err != nil {
		return Value{}, err
	}
	if n.Sign() < 0 {
		return Value{}, &DomainError{X: args[0], Arg: 1}
	}
	return intval(new(big.Int).Sqrt(n)), nil
}

func abs(args []Value) (Value, error) {
	v := args[0]
	if v.integral() {
		return intval(new(big.Int).Abs(v.bigint())), nil
	}
	return FloatValue(math.Abs(v.f)), nil
}

// extremum returns the first argument that no later argument is beyond in
// direction dir. Arguments unordered with the current pick never replace it.
func extremum(args []Value, dir int) Value {
	r := args[0]
	for _, v := range args[1:] {
		if c, ok := compare(v, r); ok && c == dir {
			r = v
		}
	}
	return r
}
