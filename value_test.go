package calc_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/zephyrtronium/calc"
)

func TestValueString(t *testing.T) {
	cases := []struct {
		v    calc.Value
		want string
	}{
		{calc.Value{}, "0"},
		{calc.IntValue(-3), "-3"},
		{bigint("123456789012345678901234567890"), "123456789012345678901234567890"},
		{calc.FloatValue(1), "1.0"},
		{calc.FloatValue(-2.5), "-2.5"},
		{calc.FloatValue(0.1), "0.1"},
		{calc.FloatValue(0.0001), "0.0001"},
		{calc.FloatValue(0.00001), "1e-05"},
		{calc.FloatValue(1e15), "1000000000000000.0"},
		{calc.FloatValue(1e16), "1e+16"},
		{calc.FloatValue(math.Inf(1)), "inf"},
		{calc.FloatValue(math.Inf(-1)), "-inf"},
		{calc.FloatValue(math.NaN()), "nan"},
		{calc.BoolValue(true), "true"},
		{calc.BoolValue(false), "false"},
	}
	for _, c := range cases {
		if got := c.v.String(); got != c.want {
			t.Errorf("wrong string for %#v: want %q, got %q", c.v, c.want, got)
		}
	}
}

func TestValueAccessors(t *testing.T) {
	x, _ := new(big.Int).SetString("100000000000000000000", 10)
	v := calc.BigIntValue(x)
	x.SetInt64(1)
	if n, ok := v.BigInt(); !ok || n.String() != "100000000000000000000" {
		t.Errorf("BigIntValue did not copy: %v", n)
	}
	if _, ok := v.Int64(); ok {
		t.Error("Int64 of 1e20 reported ok")
	}
	if f := v.Float64(); f != 1e20 {
		t.Errorf("wrong float: %v", f)
	}
	if n, ok := calc.BoolValue(true).Int64(); !ok || n != 1 {
		t.Errorf("wrong Int64 of true: %d, %t", n, ok)
	}
	if _, ok := calc.FloatValue(1).BigInt(); ok {
		t.Error("BigInt of a float reported ok")
	}
	if calc.IntValue(1).Err() != nil {
		t.Error("Int has an error")
	}
	m, _ := calc.EvalString("nope")
	if !math.IsNaN(m.Float64()) {
		t.Errorf("error marker as float is %v, not nan", m.Float64())
	}
}

func TestValueTruth(t *testing.T) {
	cases := []struct {
		v    calc.Value
		want bool
	}{
		{calc.Value{}, false},
		{calc.IntValue(2), true},
		{calc.FloatValue(0), false},
		{calc.FloatValue(-0.5), true},
		{calc.FloatValue(math.NaN()), true},
		{calc.BoolValue(true), true},
		{calc.BoolValue(false), false},
	}
	for _, c := range cases {
		if got := c.v.Truth(); got != c.want {
			t.Errorf("wrong truth for %v: want %t, got %t", c.v, c.want, got)
		}
	}
	m, _ := calc.EvalString("nope")
	if m.Truth() {
		t.Error("error marker is true")
	}
}

func TestValueEqual(t *testing.T) {
	cases := []struct {
		a, b calc.Value
		want bool
	}{
		{calc.IntValue(1), calc.IntValue(1), true},
		{calc.Value{}, calc.IntValue(0), true},
		{calc.IntValue(1), calc.FloatValue(1), false},
		{calc.IntValue(1), calc.BoolValue(true), false},
		{calc.FloatValue(math.NaN()), calc.FloatValue(math.NaN()), true},
		{calc.FloatValue(0), calc.FloatValue(math.Copysign(0, -1)), true},
	}
	for _, c := range cases {
		if got := c.a.Equal(c.b); got != c.want {
			t.Errorf("%v equal %v: want %t, got %t", c.a, c.b, c.want, got)
		}
	}
}
