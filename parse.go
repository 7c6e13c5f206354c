package calc

import "io"

// parser drives a reducer over the productions in the input.
type parser[T any] struct {
	scan  *lexer
	red   reducer[T]
	cfg   parsecfg
	depth int
}

// parse reduces an entire program. The result is the reduction of ruleStart.
// Reductions made before a parse error are not undone.
func parse[T any](src io.RuneScanner, red reducer[T], opts ...ParseOption) (T, error) {
	p := parser[T]{scan: lex(src), red: red, cfg: defaultcfg()}
	for _, opt := range opts {
		p.cfg = opt.parseOption(p.cfg)
	}
	return p.program()
}

// next scans a token. operand tells whether an operand may start here.
func (p *parser[T]) next(operand bool) (lexToken, error) {
	return p.scan.next(operand || p.cfg.greedy)
}

func (p *parser[T]) program() (T, error) {
	var zero T
	var stmts []T
	for {
		tok, err := p.next(true)
		if err != nil {
			return zero, err
		}
		switch tok.kind {
		case tokenEOF:
			if len(stmts) == 0 {
				return zero, &EmptyExpressionError{Col: tok.pos}
			}
			return p.red.reduce(ruleStart, "", stmts...), nil
		case tokenName:
			eq, err := p.next(false)
			if err != nil {
				return zero, err
			}
			if eq.kind == tokenOp && eq.text == "=" {
				v, err := p.assign(tok)
				if err != nil {
					return zero, err
				}
				stmts = append(stmts, v)
				continue
			}
			p.scan.push(eq)
		}
		// Anything other than an assignment is the final statement.
		p.scan.push(tok)
		v, err := p.comparison()
		if err != nil {
			return zero, err
		}
		stmts = append(stmts, v)
		end := p.scan.must()
		if end.kind != tokenEOF {
			return zero, itShouldNotHaveEndedThisWay(end, false)
		}
		return p.red.reduce(ruleStart, "", stmts...), nil
	}
}

// assign parses the right-hand side of an assignment to name. The = is
// already consumed. On success, the token after the statement is not pushed.
func (p *parser[T]) assign(name lexToken) (T, error) {
	var zero T
	if c := name.text[0]; c == '+' || c == '-' {
		return zero, &AssignError{Col: name.pos, Name: name.text}
	}
	v, err := p.comparison()
	if err != nil {
		return zero, err
	}
	// The next statement begins with whatever ended this one.
	end := p.scan.must()
	switch end.kind {
	case tokenEOF, tokenName, tokenNum, tokenOpen:
		p.scan.push(end)
	default:
		return zero, itShouldNotHaveEndedThisWay(end, false)
	}
	return p.red.reduce(ruleAssign, name.text, v), nil
}

// comparison parses an arithmetic expression optionally compared to another.
// It pushes the token following the comparison.
func (p *parser[T]) comparison() (T, error) {
	var zero T
	lhs, err := p.term(exprprec)
	if err != nil {
		return zero, err
	}
	tok := p.scan.must()
	r := ruleNone
	if tok.kind == tokenOp {
		r = cmpop(tok.text)
	}
	if r == ruleNone {
		p.scan.push(tok)
		return lhs, nil
	}
	rhs, err := p.term(exprprec)
	if err != nil {
		return zero, err
	}
	return p.red.reduce(r, tok.text, lhs, rhs), nil
}

// term parses an arithmetic expression containing only operators more binding
// than until. It pushes the token that ends the expression.
func (p *parser[T]) term(until operator) (T, error) {
	var zero T
	if p.depth >= p.cfg.maxdepth {
		return zero, &DepthError{Col: p.scan.rune + 1, Max: p.cfg.maxdepth}
	}
	p.depth++
	defer func() { p.depth-- }()
	lhs, err := p.atom()
	if err != nil {
		return zero, err
	}
	for {
		tok, err := p.next(false)
		if err != nil {
			return zero, err
		}
		if tok.kind != tokenOp {
			// Close, separator, EOF, or the start of the next statement.
			p.scan.push(tok)
			return lhs, nil
		}
		prec := binop(tok.text)
		if prec.op == ruleNone || !prec.moreBinding(until) {
			p.scan.push(tok)
			return lhs, nil
		}
		rhs, err := p.term(prec)
		if err != nil {
			return zero, err
		}
		lhs = p.red.reduce(prec.op, tok.text, lhs, rhs)
	}
}

// atom parses a number, name, call, or parenthesized expression.
func (p *parser[T]) atom() (T, error) {
	var zero T
	tok, err := p.next(true)
	if err != nil {
		return zero, err
	}
	switch tok.kind {
	case tokenNum:
		return p.red.reduce(ruleNum, tok.text), nil
	case tokenName:
		open, err := p.next(false)
		if err != nil {
			return zero, err
		}
		if open.kind != tokenOpen {
			p.scan.push(open)
			return p.red.reduce(ruleName, tok.text), nil
		}
		args, err := p.arglist(open)
		if err != nil {
			return zero, err
		}
		return p.red.reduce(ruleCall, tok.text, args...), nil
	case tokenOpen:
		v, err := p.term(exprprec)
		if err != nil {
			return zero, err
		}
		end := p.scan.must()
		if end.kind != tokenClose {
			return zero, itShouldNotHaveEndedThisWay(end, true)
		}
		return v, nil
	case tokenClose:
		return zero, &EmptyExpressionError{Col: tok.pos, End: tok.text}
	case tokenSep:
		return zero, &SeparatorError{Col: tok.pos, Sep: tok.text}
	case tokenOp:
		return zero, &OperatorError{Col: tok.pos, Operator: tok.text}
	case tokenEOF:
		return zero, &EmptyExpressionError{Col: tok.pos}
	default:
		panic("calc: unknown token: " + tok.String())
	}
}

// arglist parses a list of one or more arguments following the open bracket.
func (p *parser[T]) arglist(open lexToken) ([]T, error) {
	var args []T
	for {
		v, err := p.term(exprprec)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
		end := p.scan.must()
		switch end.kind {
		case tokenClose:
			return args, nil
		case tokenSep:
			// Next argument.
		case tokenEOF:
			return nil, &BracketError{Col: end.pos, Left: open.text}
		default:
			return nil, itShouldNotHaveEndedThisWay(end, true)
		}
	}
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. inside tells whether the subexpression
// is enclosed in brackets.
func itShouldNotHaveEndedThisWay(tok lexToken, inside bool) error {
	switch tok.kind {
	case tokenEOF:
		if !inside {
			panic("calc: EOF is a fine way to end")
		}
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: tok.pos, Left: "("}
	case tokenClose:
		// Only a close bracket with no open bracket can end this way.
		return &BracketError{Col: tok.pos, Right: tok.text}
	case tokenSep:
		// Separator outside a function call.
		return &SeparatorError{Col: tok.pos, Sep: tok.text}
	default:
		return &TokenError{Col: tok.pos, Text: tok.text}
	}
}
