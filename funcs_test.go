package calc_test

import (
	"errors"
	"math"
	"testing"

	"github.com/zephyrtronium/calc"
)

func TestBuiltinSurface(t *testing.T) {
	constants := []string{"pi", "e", "tau", "inf", "nan"}
	for _, name := range constants {
		v, err := calc.EvalString(name)
		if err != nil {
			t.Errorf("error evaluating %s: %v", name, err)
			continue
		}
		if v.Kind() != calc.Float {
			t.Errorf("constant %s is %v, not a float", name, v)
		}
	}
	funcs := []string{
		"acos", "acosh", "asin", "asinh", "atan", "atan2", "atanh",
		"cos", "cosh", "sin", "sinh", "tan", "tanh", "hypot", "degrees", "radians",
		"exp", "exp2", "expm1", "log", "log2", "log10", "log1p", "pow", "sqrt", "cbrt",
		"erf", "erfc", "gamma", "lgamma",
		"ceil", "floor", "trunc", "fabs", "copysign", "fmod", "remainder",
		"nextafter", "ulp", "ldexp", "isfinite", "isinf", "isnan", "isclose",
		"factorial", "comb", "perm", "gcd", "lcm", "isqrt",
		"abs", "max", "min",
	}
	for _, name := range funcs {
		v, err := calc.EvalString(name + "(1)")
		if err != nil {
			t.Errorf("error evaluating %s(1): %v", name, err)
			continue
		}
		if errors.Is(v.Err(), calc.ErrUndefined) || errors.Is(v.Err(), calc.ErrNotFunc) {
			t.Errorf("%s is not a builtin function: %v", name, v)
		}
	}
}

func TestFloatFuncs(t *testing.T) {
	cases := []struct {
		src  string
		want float64
	}{
		{"sin(0)", 0},
		{"cos(0)", 1},
		{"tan(pi/4)", 1},
		{"atan2(1, 1)", math.Pi / 4},
		{"asin(1)", math.Pi / 2},
		{"cosh(0)", 1},
		{"degrees(pi)", 180},
		{"radians(180)", math.Pi},
		{"exp2(10)", 1024},
		{"expm1(0)", 0},
		{"log(e)", 1},
		{"log1p(0)", 0},
		{"cbrt(27)", 3},
		{"gamma(5)", 24},
		{"lgamma(1)", 0},
		{"erf(0)", 0},
		{"erfc(0)", 1},
		{"fmod(7, 3)", 1},
		{"remainder(7, 3)", 1},
		{"ldexp(1, 10)", 1024},
		{"ulp(1)", math.Ldexp(1, -52)},
		{"fabs(-2)", 2},
		{"nextafter(1, 2)", math.Nextafter(1, 2)},
		{"hypot(3, 4, 12)", 13},
		{"log(1024, 2)", 10},
		{"log(10^400, 10^200)", 2},
		{"log2(2^2000)", 2000},
		{"sqrt(nan)", math.NaN()},
		{"log(inf)", math.Inf(1)},
		{"exp(inf)", math.Inf(1)},
		{"exp(-inf)", 0},
	}
	for _, c := range cases {
		v, err := calc.EvalString(c.src)
		if err != nil {
			t.Errorf("error evaluating %q: %v", c.src, err)
			continue
		}
		if v.Kind() != calc.Float {
			t.Errorf("%q gave %v (%v), want a float", c.src, v, v.Kind())
			continue
		}
		got := v.Float64()
		switch {
		case math.IsNaN(c.want):
			if !math.IsNaN(got) {
				t.Errorf("%q gave %v, want nan", c.src, got)
			}
		case math.IsInf(c.want, 0) || c.want == 0:
			if got != c.want {
				t.Errorf("%q gave %v, want %v", c.src, got, c.want)
			}
		default:
			if math.Abs(got-c.want) > 1e-12*math.Abs(c.want) {
				t.Errorf("%q gave %v, want %v", c.src, got, c.want)
			}
		}
	}
}

func TestIntFuncs(t *testing.T) {
	cases := []struct {
		src  string
		want calc.Value
	}{
		{"factorial(0)", calc.IntValue(1)},
		{"factorial(25)", bigint("15511210043330985984000000")},
		{"comb(52, 5)", calc.IntValue(2598960)},
		{"comb(3, 5)", calc.IntValue(0)},
		{"perm(5)", calc.IntValue(120)},
		{"perm(3, 5)", calc.IntValue(0)},
		{"gcd(0)", calc.IntValue(0)},
		{"gcd(-4, 6)", calc.IntValue(2)},
		{"gcd(12, 18, 8)", calc.IntValue(2)},
		{"lcm(0, 5)", calc.IntValue(0)},
		{"lcm(-4, 6)", calc.IntValue(12)},
		{"lcm(2, 3, 4)", calc.IntValue(12)},
		{"isqrt(10^40)", bigint("100000000000000000000")},
		{"abs(-10^30)", bigint("1000000000000000000000000000000")},
		{"abs(-0.0)", calc.FloatValue(0)},
		{"ceil(2.1)", calc.IntValue(3)},
		{"floor(-2.1)", calc.IntValue(-3)},
		{"floor(7)", calc.IntValue(7)},
		{"floor(1e20)", bigint("100000000000000000000")},
		{"max(1, 2, 3, 2)", calc.IntValue(3)},
		{"max(nan, 1)", calc.FloatValue(math.NaN())},
		{"min(2.5, 2)", calc.IntValue(2)},
		{"min(10^30, 1e31)", bigint("1000000000000000000000000000000")},
		{"isfinite(inf)", calc.BoolValue(false)},
		{"isinf(-inf)", calc.BoolValue(true)},
		{"isclose(1, 1 + 1e-10)", calc.BoolValue(true)},
		{"isclose(1, 1.1)", calc.BoolValue(false)},
	}
	for _, c := range cases {
		v, err := calc.EvalString(c.src)
		if err != nil {
			t.Errorf("error evaluating %q: %v", c.src, err)
			continue
		}
		if !v.Equal(c.want) {
			t.Errorf("%q gave %v (%v), want %v (%v)", c.src, v, v.Kind(), c.want, c.want.Kind())
		}
	}
}
