// Package parse converts calculator style text into expression trees.
//
// The accepted syntax is the one used to write identities:
//
//	2Csin(X)cos(X      -> 2*C*sin(X)*cos(X)
//	logb(X,B)_logb(Y,B) -> logb(X,B)-logb(Y,B)
//	ipi/2              -> i*pi/2
//
// Multiplication may be implicit, "_" is subtraction, a prefix "-" is
// negation and parentheses left open at the end of the text are
// closed automatically.
package parse

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"unicode"

	"zappem.net/pub/math/casid/ast"
)

var (
	ErrEmpty   = errors.New("empty expression")
	ErrSyntax  = errors.New("syntax problem")
	ErrUnknown = errors.New("unknown name")
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokSymbol
	tokFunc
	tokRoot
	tokPunct
)

type token struct {
	kind tokenKind
	pos  int
	num  *big.Rat
	sym  rune
	op   ast.Op
	text string
}

// words is the lowercase vocabulary. Lowercase text is split by
// longest match against it, so "isin" is i*sin.
var words = map[string]token{
	"sin":   {kind: tokFunc, op: ast.Sin},
	"cos":   {kind: tokFunc, op: ast.Cos},
	"tan":   {kind: tokFunc, op: ast.Tan},
	"asin":  {kind: tokFunc, op: ast.Asin},
	"acos":  {kind: tokFunc, op: ast.Acos},
	"atan":  {kind: tokFunc, op: ast.Atan},
	"sinh":  {kind: tokFunc, op: ast.Sinh},
	"cosh":  {kind: tokFunc, op: ast.Cosh},
	"tanh":  {kind: tokFunc, op: ast.Tanh},
	"asinh": {kind: tokFunc, op: ast.Asinh},
	"acosh": {kind: tokFunc, op: ast.Acosh},
	"atanh": {kind: tokFunc, op: ast.Atanh},
	"ln":    {kind: tokFunc, op: ast.Ln},
	"log":   {kind: tokFunc, op: ast.Log},
	"logb":  {kind: tokFunc, op: ast.LogBase},
	"sqrt":  {kind: tokFunc, op: ast.Sqrt},
	"abs":   {kind: tokFunc, op: ast.Abs},
	"root":  {kind: tokRoot},
	"pi":    {kind: tokSymbol, sym: ast.Pi},
	"e":     {kind: tokSymbol, sym: ast.Euler},
	"i":     {kind: tokSymbol, sym: ast.Imag},
}

// longestWord is the length of the longest entry in words.
const longestWord = 5

const allDigits = "0123456789"

// lex splits text into tokens.
func lex(text string) ([]token, error) {
	var toks []token
	rs := []rune(text)
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case strings.ContainsRune(allDigits+".", r):
			j := i
			for j < len(rs) && strings.ContainsRune(allDigits+".", rs[j]) {
				j++
			}
			s := string(rs[i:j])
			num, ok := new(big.Rat).SetString(s)
			if !ok || s == "." {
				return nil, fmt.Errorf("%q, %w", s, ErrSyntax)
			}
			toks = append(toks, token{kind: tokNumber, pos: i, num: num, text: s})
			i = j
		case ast.IsVariable(r), r == ast.Pi:
			toks = append(toks, token{kind: tokSymbol, pos: i, sym: r, text: string(r)})
			i++
		case r >= 'a' && r <= 'z':
			n := 0
			for k := longestWord; k > 0; k-- {
				if i+k > len(rs) {
					continue
				}
				if _, ok := words[string(rs[i:i+k])]; ok {
					n = k
					break
				}
			}
			if n == 0 {
				return nil, fmt.Errorf("%q, %w", string(rs[i:]), ErrUnknown)
			}
			s := string(rs[i : i+n])
			t := words[s]
			t.pos = i
			t.text = s
			toks = append(toks, t)
			i += n
		case strings.ContainsRune("+-_*/^(),", r):
			toks = append(toks, token{kind: tokPunct, pos: i, text: string(r)})
			i++
		default:
			return nil, fmt.Errorf("%q, %w", string(rs[i:]), ErrSyntax)
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(rs)}), nil
}

type parser struct {
	text string
	toks []token
	at   int
}

func (p *parser) peek() token {
	return p.toks[p.at]
}

func (p *parser) next() token {
	t := p.toks[p.at]
	if t.kind != tokEOF {
		p.at++
	}
	return t
}

// is confirms the next token is the punctuation s.
func (p *parser) is(s string) bool {
	t := p.peek()
	return t.kind == tokPunct && t.text == s
}

// fail reports a syntax problem at the current token.
func (p *parser) fail() error {
	rs := []rune(p.text)
	pos := p.peek().pos
	if pos > len(rs) {
		pos = len(rs)
	}
	return fmt.Errorf("%q, %w", string(rs[pos:]), ErrSyntax)
}

// Parse converts text into an un-normalized expression tree.
func Parse(text string) (*ast.Node, error) {
	toks, err := lex(text)
	if err != nil {
		return nil, err
	}
	if len(toks) == 1 {
		return nil, ErrEmpty
	}
	p := &parser{text: text, toks: toks}
	n, err := p.sum()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, p.fail()
	}
	return n, nil
}

// MustParse is Parse for text known to be valid. It panics otherwise.
func MustParse(text string) *ast.Node {
	n, err := Parse(text)
	if err != nil {
		panic(fmt.Sprintf("parse %q: %v", text, err))
	}
	return n
}

// sum parses terms joined by +, - or _.
func (p *parser) sum() (*ast.Node, error) {
	n, err := p.product()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.Op
		switch {
		case p.is("+"):
			op = ast.Add
		case p.is("-"), p.is("_"):
			op = ast.Sub
		default:
			return n, nil
		}
		p.next()
		m, err := p.product()
		if err != nil {
			return nil, err
		}
		n = ast.NewBinary(op, n, m)
	}
}

// startsOperand confirms the next token can begin an implicit
// multiplication operand.
func (p *parser) startsOperand() bool {
	switch t := p.peek(); t.kind {
	case tokNumber, tokSymbol, tokFunc:
		return true
	case tokPunct:
		return t.text == "("
	}
	return false
}

// product parses factors joined by *, / or juxtaposition.
func (p *parser) product() (*ast.Node, error) {
	n, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		op := ast.Mult
		switch {
		case p.is("*"):
			p.next()
		case p.is("/"):
			op = ast.Div
			p.next()
		case p.startsOperand():
		default:
			return n, nil
		}
		m, err := p.unary()
		if err != nil {
			return nil, err
		}
		n = ast.NewBinary(op, n, m)
	}
}

// unary parses prefix negation.
func (p *parser) unary() (*ast.Node, error) {
	if p.is("-") || p.is("_") {
		p.next()
		n, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnary(ast.Neg, n), nil
	}
	return p.power()
}

// power parses the right associative ^ and root operators.
func (p *parser) power() (*ast.Node, error) {
	n, err := p.primary()
	if err != nil {
		return nil, err
	}
	op := ast.Pow
	switch {
	case p.is("^"):
	case p.peek().kind == tokRoot:
		op = ast.Root
	default:
		return n, nil
	}
	p.next()
	m, err := p.unary()
	if err != nil {
		return nil, err
	}
	return ast.NewBinary(op, n, m), nil
}

// closing consumes a ")" which is optional at the end of the text.
func (p *parser) closing() error {
	if p.is(")") {
		p.next()
		return nil
	}
	if p.peek().kind == tokEOF {
		return nil
	}
	return p.fail()
}

// primary parses numbers, symbols, function calls and parenthesized
// expressions.
func (p *parser) primary() (*ast.Node, error) {
	t := p.peek()
	switch t.kind {
	case tokNumber:
		p.next()
		return ast.NewNumber(t.num), nil
	case tokSymbol:
		p.next()
		return ast.NewSymbol(t.sym), nil
	case tokFunc:
		p.next()
		if !p.is("(") {
			return nil, p.fail()
		}
		p.next()
		var args []*ast.Node
		for {
			a, err := p.sum()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if !p.is(",") {
				break
			}
			p.next()
		}
		if err := p.closing(); err != nil {
			return nil, err
		}
		if len(args) != t.op.Arity() {
			return nil, fmt.Errorf("%s takes %d argument(s), not %d: %w", t.text, t.op.Arity(), len(args), ErrSyntax)
		}
		return ast.NewOperator(t.op, args...), nil
	case tokPunct:
		if t.text == "(" {
			p.next()
			n, err := p.sum()
			if err != nil {
				return nil, err
			}
			if err := p.closing(); err != nil {
				return nil, err
			}
			return n, nil
		}
	}
	return nil, p.fail()
}
