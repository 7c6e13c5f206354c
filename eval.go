package calc

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Evaluator evaluates programs. It holds a table of builtin constants and
// functions, fixed when the evaluator is created, and the variables assigned
// by the programs it has evaluated. It is not safe to use an Evaluator
// concurrently; use Clone to give each goroutine its own.
type Evaluator struct {
	builtins map[string]Builtin
	vars     map[string]Value
	log      zerolog.Logger
}

// Option is an option used when creating an evaluator.
type Option interface {
	evalOption()
}

type (
	varopt struct {
		name string
		val  Value
	}
	varsopt   map[string]Value
	defopt    map[string]Builtin
	nodefopt  struct{}
	loggeropt struct {
		log zerolog.Logger
	}
)

func (varopt) evalOption()    {}
func (varsopt) evalOption()   {}
func (defopt) evalOption()    {}
func (nodefopt) evalOption()  {}
func (loggeropt) evalOption() {}

// SetVar sets the value of a variable in the evaluator.
func SetVar(name string, val Value) Option {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the evaluator.
func SetVars(vars map[string]Value) Option {
	return varsopt(vars)
}

// Define adds a builtin to the evaluator, replacing any builtin of the same
// name. Passing the zero Builtin removes the name.
func Define(name string, b Builtin) Option {
	return defopt{name: b}
}

// Defines adds any number of builtins, as for Define.
func Defines(builtins map[string]Builtin) Option {
	return defopt(builtins)
}

// DisableDefaultFuncs removes all default builtins. Builtins given with
// Define are kept regardless of option order.
func DisableDefaultFuncs() Option {
	return nodefopt{}
}

// Logger sets the logger to which the evaluator reports assignments and
// failed calls at debug level. The default discards everything.
func Logger(log zerolog.Logger) Option {
	return loggeropt{log}
}

// NewEvaluator creates a new evaluator with the default builtins.
func NewEvaluator(opts ...Option) *Evaluator {
	e := Evaluator{builtins: globalfuncs, log: zerolog.Nop()}
	return e.Clone(opts...)
}

// Clone creates a copy of an evaluator and applies options to it. Variables
// assigned in either afterward are not seen by the other.
func (e *Evaluator) Clone(opts ...Option) *Evaluator {
	n := Evaluator{
		builtins: e.builtins,
		vars:     make(map[string]Value, len(e.vars)),
		log:      e.log,
	}
	for name, val := range e.vars {
		n.vars[name] = val
	}
	// Builtins are shared until an option changes them.
	var defs []defopt
	nodefs := false
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			n.vars[opt.name] = opt.val
		case varsopt:
			for k, v := range opt {
				n.vars[k] = v
			}
		case defopt:
			defs = append(defs, opt)
		case nodefopt:
			nodefs = true
		case loggeropt:
			n.log = opt.log
		default:
			panic("calc: unknown option type")
		}
	}
	if nodefs || len(defs) != 0 {
		b := make(map[string]Builtin, len(n.builtins))
		if !nodefs {
			for k, v := range n.builtins {
				b[k] = v
			}
		}
		for _, d := range defs {
			for k, v := range d {
				if v.ok {
					b[k] = v
				} else {
					delete(b, k)
				}
			}
		}
		n.builtins = b
	}
	return &n
}

// Eval parses a program and evaluates each statement as it is parsed. The
// result is the value of the last statement. Failures to evaluate, such as an
// undefined variable or a bad function call, are Error values rather than
// errors; the error result is an InputError describing why src could not be
// parsed, or an error reading src. Assignments made before a parse error
// remain in effect.
func (e *Evaluator) Eval(src io.RuneScanner, opts ...ParseOption) (Value, error) {
	return parse[Value](src, e, opts...)
}

// EvalString is a shortcut to evaluate a program in a string.
func (e *Evaluator) EvalString(src string, opts ...ParseOption) (Value, error) {
	return e.Eval(strings.NewReader(src), opts...)
}

// Set sets the value of a variable. Returns e for chaining.
func (e *Evaluator) Set(name string, val Value) *Evaluator {
	e.vars[name] = val
	return e
}

// Lookup returns the value of a variable. ok is false if no program or option
// has set it. Builtins are not variables.
func (e *Evaluator) Lookup(name string) (val Value, ok bool) {
	val, ok = e.vars[name]
	return val, ok
}

// Vars returns the names of all variables in sorted order.
func (e *Evaluator) Vars() []string {
	names := make([]string, 0, len(e.vars))
	for k := range e.vars {
		names = append(names, k)
	}
	sortstrs(names)
	return names
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// reduce evaluates one production.
func (e *Evaluator) reduce(r rule, text string, args ...Value) Value {
	switch r {
	case ruleNum:
		return number(text)
	case ruleName:
		return e.lookup(text)
	case ruleCall:
		return e.call(text, args)
	case ruleAssign:
		v := args[0]
		e.vars[text] = v
		e.log.Debug().Str("name", text).Stringer("value", v).Msg("assign")
		return v
	case ruleAdd:
		return add(args[0], args[1])
	case ruleSub:
		return sub(args[0], args[1])
	case ruleMul:
		return mul(args[0], args[1])
	case ruleDiv:
		return div(args[0], args[1])
	case rulePow:
		return pow(args[0], args[1])
	case ruleGt, ruleGe, ruleLt, ruleLe, ruleNe, ruleEq:
		return comparison(r, args[0], args[1])
	case ruleStart:
		return args[len(args)-1]
	default:
		panic("calc: invalid reduction " + r.String())
	}
}

// splitsign separates a leading sign from a name. sign is 0 if there is none.
func splitsign(name string) (sign byte, bare string) {
	if c := name[0]; c == '+' || c == '-' {
		return c, name[1:]
	}
	return 0, name
}

// signed applies a sign from a name to a value.
func signed(sign byte, v Value) Value {
	if sign == '-' {
		return neg(v)
	}
	return v
}

// lookup resolves a bare name: a builtin, a sign-stripped builtin, a
// variable, then a sign-stripped variable.
func (e *Evaluator) lookup(name string) Value {
	if b, ok := e.builtins[name]; ok {
		return b.value(name)
	}
	sign, bare := splitsign(name)
	if sign != 0 {
		if b, ok := e.builtins[bare]; ok {
			return signed(sign, b.value(bare))
		}
	}
	if v, ok := e.vars[name]; ok {
		return v
	}
	if sign != 0 {
		if v, ok := e.vars[bare]; ok {
			return signed(sign, v)
		}
	}
	return errValue(&NameError{Name: name})
}

// call calls the builtin function named by name without its sign, then
// applies the sign to the result.
func (e *Evaluator) call(name string, args []Value) Value {
	for _, v := range args {
		if v.kind == Error {
			return v
		}
	}
	sign, bare := splitsign(name)
	v, err := e.invoke(bare, args)
	if err != nil {
		err = &CallError{Func: bare, Len: len(args), Err: err}
		e.log.Debug().Err(err).Str("func", name).Msg("call failed")
		return errValue(err)
	}
	return signed(sign, v)
}

func (e *Evaluator) invoke(name string, args []Value) (v Value, err error) {
	b, ok := e.builtins[name]
	switch {
	case !ok:
		return Value{}, ErrUndefined
	case b.fn == nil:
		return Value{}, ErrNotFunc
	case !b.fn.CanCall(len(args)):
		return Value{}, ErrArity
	}
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(error); ok {
				err = fmt.Errorf("panic: %w", rerr)
			} else {
				err = fmt.Errorf("panic: %v", r)
			}
		}
	}()
	return b.fn.Call(args)
}

// Eval is a shortcut to evaluate a program with a new evaluator.
func Eval(src io.RuneScanner, opts ...Option) (Value, error) {
	return NewEvaluator(opts...).Eval(src)
}

// EvalString is a shortcut to evaluate a program in a string with a new
// evaluator.
func EvalString(src string, opts ...Option) (Value, error) {
	return Eval(strings.NewReader(src), opts...)
}

// NameError is the error in an Error value from a lookup for a name that is
// neither a builtin nor a variable.
type NameError struct {
	// Name is the name as written, including any sign.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

// CallError is the error in an Error value from a function call that failed
// for any reason: no such function, the wrong number of arguments, arguments
// outside the function's domain, or the function panicking. It unwraps to the
// cause.
type CallError struct {
	// Func is the function name without its sign.
	Func string
	// Len is the number of arguments in the call. It is 0 when the error is
	// from a function name used without a call.
	Len int
	// Err is the cause.
	Err error
}

func (err *CallError) Error() string {
	if err.Err == ErrArity {
		return "cannot call " + err.Func + " with " + strconv.Itoa(err.Len) + " arguments"
	}
	return err.Func + ": " + err.Err.Error()
}

func (err *CallError) Unwrap() error {
	return err.Err
}
