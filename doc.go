// Package calc implements a small calculator language.
//
// A program is any number of assignments, "name = expr", optionally followed
// by one more expression. Its value is the value of the last statement.
// Statements need no separators; "x = 2 y = x^10 y > 1000" is a program of
// three statements whose value is true. Whitespace and comments from # to the
// end of a line are ignored.
//
// Expressions have numbers, names, calls like "max(x, 2)", parentheses, the
// arithmetic operators + - * / and ^, and at most one comparison among
// < <= > >= != ==. Exponentiation is right-associative, so "2^3^2" is 512.
// There are no unary operators. Instead, a number or name may be written with
// a sign in front: "-3", "-pi", "-abs(x)". A signed name that is not a builtin
// or variable itself has the value of the unsigned name, negated if the sign
// is -. A sign that follows a complete operand is an operator, so "2-x" is a
// subtraction and a statement that begins with a signed name must be separated
// from the one before it, as in "y = 2 (-x)". GreedySigns makes signs attach to
// whatever follows them everywhere instead.
//
// Programs are evaluated while they are parsed, without building a syntax
// tree. Integers have arbitrary precision; other numbers are float64.
// Evaluation never fails outright: an undefined name or a bad function call
// produces an Error value, which carries a *NameError or *CallError and
// poisons any arithmetic it takes part in. Only input that cannot be parsed
// is reported as an error.
package calc
