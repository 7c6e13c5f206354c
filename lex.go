package calc

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is an integer or real literal, possibly with a leading minus.
	tokenNum
	// tokenName is a variable or function name, possibly with a leading sign.
	tokenName
	// tokenOp is an arithmetic, comparison, or assignment operator.
	tokenOp
	// tokenOpen is an open parenthesis.
	tokenOpen
	// tokenClose is a close parenthesis.
	tokenClose
	// tokenSep is the function argument separator.
	tokenSep
)

//go:generate stringer -type=tokenKind -trimprefix=token

// Operators contains the runes which begin operators. The two-rune operators
// are <=, >=, !=, and ==.
const Operators = "+-*/^<>=!"

// eofRune is the lookahead value past the end of the input.
const eofRune rune = -1

type lexer struct {
	src io.RuneScanner
	// la holds runes read from src but not yet consumed.
	la   []rune
	err  error
	buf  strings.Builder
	rune int
	p    []lexToken
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{src: src}
}

// push unreads a token so that it is the next token returned from next.
// Tokens pushed later are returned first.
func (l *lexer) push(tok lexToken) {
	if tok.kind == tokenNone {
		panic("calc: push of empty token")
	}
	l.p = append(l.p, tok)
}

// must scans the pushed token. Panics if there is no pushed token.
func (l *lexer) must() lexToken {
	if len(l.p) == 0 {
		panic("calc: no pushed token")
	}
	tok := l.p[len(l.p)-1]
	l.p = l.p[:len(l.p)-1]
	return tok
}

// peek returns the rune i positions past the next unconsumed one, or eofRune.
func (l *lexer) peek(i int) rune {
	for len(l.la) <= i {
		if l.err != nil {
			return eofRune
		}
		r, _, err := l.src.ReadRune()
		if err != nil {
			l.err = err
			return eofRune
		}
		l.la = append(l.la, r)
	}
	return l.la[i]
}

// take consumes n runes into the token buffer.
func (l *lexer) take(n int) {
	for _, r := range l.la[:n] {
		l.buf.WriteRune(r)
	}
	l.skip(n)
}

// skip consumes n runes without recording them.
func (l *lexer) skip(n int) {
	l.la = l.la[n:]
	l.rune += n
}

// next scans the next token from the input. When glue is true, a + or -
// immediately followed by a name or digit rune is scanned as part of the
// following number or name. Once the input is exhausted, next returns EOF
// tokens indefinitely.
func (l *lexer) next(glue bool) (lexToken, error) {
	if len(l.p) != 0 {
		return l.must(), nil
	}
	defer l.buf.Reset()
	for {
		tok := lexToken{pos: l.rune + 1}
		r := l.peek(0)
		switch {
		case r == eofRune:
			if l.err != nil && !errors.Is(l.err, io.EOF) {
				return tok, l.err
			}
			tok.kind = tokenEOF
			return tok, nil
		case unicode.IsSpace(r):
			l.skip(1)
		case r == '#':
			for r != eofRune && r != '\n' {
				l.skip(1)
				r = l.peek(0)
			}
		case isword(r):
			return l.word(tok), nil
		case r == '+' || r == '-':
			if glue && isword(l.peek(1)) {
				return l.word(tok), nil
			}
			l.take(1)
			tok.text = l.buf.String()
			tok.kind = tokenOp
			return tok, nil
		case r == '*', r == '/', r == '^':
			l.take(1)
			tok.text = l.buf.String()
			tok.kind = tokenOp
			return tok, nil
		case r == '<', r == '>', r == '=', r == '!':
			n := 1
			if l.peek(1) == '=' {
				n = 2
			}
			l.take(n)
			if n == 1 && r == '!' {
				return tok, l.error(tok.pos, "operator")
			}
			tok.text = l.buf.String()
			tok.kind = tokenOp
			return tok, nil
		case r == '(':
			l.take(1)
			tok.text = "("
			tok.kind = tokenOpen
			return tok, nil
		case r == ')':
			l.take(1)
			tok.text = ")"
			tok.kind = tokenClose
			return tok, nil
		case r == ',':
			l.take(1)
			tok.text = ","
			tok.kind = tokenSep
			return tok, nil
		default:
			// Take the rune so that it shows up in the error message.
			l.take(1)
			return tok, l.error(tok.pos, "")
		}
	}
}

// word scans the longer of a number or a name. A number wins a tie, so 1e5
// and -3 are numbers while 1e and -x are names.
func (l *lexer) word(tok lexToken) lexToken {
	num, name := l.numlen(), l.namelen()
	if num > 0 && num >= name {
		l.take(num)
		tok.kind = tokenNum
	} else {
		l.take(name)
		tok.kind = tokenName
	}
	tok.text = l.buf.String()
	return tok
}

// numlen returns the length of the number at the start of the lookahead, or 0.
func (l *lexer) numlen() int {
	i := 0
	if l.peek(0) == '-' {
		i++
	}
	switch r := l.peek(i); {
	case r == '0':
		i++
	case '1' <= r && r <= '9':
		i = l.digits(i)
	default:
		return 0
	}
	if l.peek(i) == '.' && isdigit(l.peek(i+1)) {
		i = l.digits(i + 1)
	}
	if r := l.peek(i); r == 'e' || r == 'E' {
		j := i + 1
		if s := l.peek(j); s == '+' || s == '-' {
			j++
		}
		if isdigit(l.peek(j)) {
			i = l.digits(j)
		}
	}
	return i
}

// namelen returns the length of the name at the start of the lookahead, or 0.
func (l *lexer) namelen() int {
	i := 0
	if r := l.peek(0); r == '+' || r == '-' {
		i++
	}
	j := i
	for isword(l.peek(j)) {
		j++
	}
	if j == i {
		return 0
	}
	return j
}

func (l *lexer) digits(i int) int {
	for isdigit(l.peek(i)) {
		i++
	}
	return i
}

func isdigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isword(r rune) bool {
	return r == '_' || isdigit(r) || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

func (l *lexer) error(pos int, kind string) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  pos,
	}
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the text of the invalid token.
	Text string
	// Kind is the type of token the lexer was scanning. This may be "operator"
	// or the empty string if no token kind matched.
	Kind string
	// Col is the position of the start of the invalid token, counted in runes
	// from 1.
	Col int
}

func (err *LexError) Error() string {
	if err.Kind == "" {
		return errpos(err.Col, "invalid token "+strconv.Quote(err.Text))
	}
	return errpos(err.Col, "invalid "+err.Kind+" token "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}
