package simplify

import (
	"math/big"
	"testing"

	"zappem.net/pub/math/casid/ast"
	"zappem.net/pub/math/casid/parse"
)

func TestSimplify(t *testing.T) {
	vs := []struct {
		text  string
		flags Flags
		s     string
	}{
		{text: "1_2sin(X)^2+C", flags: Normalize | Commutative, s: "1+C-2*sin(X)^2"},
		{text: "A-B", flags: Normalize, s: "A-B"},
		{text: "2+3*4", flags: All, s: "14"},
		{text: "X+X", flags: All, s: "2*X"},
		{text: "4pi/6", flags: All, s: "2*pi/3"},
		{text: "X/2+X/2", flags: All, s: "X"},
		{text: "i^2", flags: All, s: "-1"},
		{text: "i*i*i", flags: All, s: "-i"},
		{text: "-(-X)", flags: All, s: "X"},
		{text: "2^-2", flags: All, s: "1/4"},
		{text: "sqrt(9/4)", flags: All, s: "3/2"},
		{text: "X*X^2", flags: All, s: "X^3"},
		{text: "sin(X)-sin(X)", flags: All, s: "0"},
		{text: "X*(1/2)", flags: All, s: "X/2"},
		{text: "(2+X)3", flags: All, s: "3*(2+X)"},
		{text: "cos(X)+sin(X)+3+Y", flags: All, s: "3+Y+sin(X)+cos(X)"},
		{text: "X/(Y/2)", flags: All, s: "2*X/Y"},
		{text: "1+5", flags: All, s: "6"},
		{text: "0X+Y", flags: All, s: "Y"},
		{text: "abs(-7/2)", flags: All, s: "7/2"},
		{text: "(X^2)^3", flags: All, s: "X^6"},
		{text: "2ln(e)", flags: All, s: "2"},
		{text: "-2Y", flags: All, s: "-2*Y"},
		{text: "sin(-3Y)", flags: All, s: "sin(-3*Y)"},
		{text: "(0/0)/2", flags: All, s: "0/0"},
		{text: "0/(0*2)", flags: All, s: "0/0"},
	}
	for i, v := range vs {
		n := parse.MustParse(v.text)
		Simplify(n, v.flags)
		if s := n.String(); s != v.s {
			t.Errorf("[%d] %q got=%q want=%q", i, v.text, s, v.s)
		}
	}
}

func TestIdempotent(t *testing.T) {
	for i, text := range []string{
		"sin(Y)^2+cos(Y)^2+5",
		"2sin(X)cos(X)",
		"logb(X,B)_logb(Y,B)+C",
		"e^(X(3+4i))",
		"7pi/6",
	} {
		n := parse.MustParse(text)
		Simplify(n, All)
		m := n.Copy()
		Simplify(m, All)
		if !n.Equal(m) {
			t.Errorf("[%d] %q not stable: %v then %v", i, text, n, m)
		}
	}
}

func TestCoefficient(t *testing.T) {
	vs := []struct {
		text string
		c    *big.Rat
	}{
		{text: "-3X", c: big.NewRat(-3, 1)},
		{text: "X/2", c: big.NewRat(1, 2)},
		{text: "X", c: big.NewRat(1, 1)},
		{text: "5", c: big.NewRat(5, 1)},
		{text: "4sin(X)cos(X)", c: big.NewRat(4, 1)},
	}
	for i, v := range vs {
		n := parse.MustParse(v.text)
		Simplify(n, All)
		if c := Coefficient(n); c.Cmp(v.c) != 0 {
			t.Errorf("[%d] %q got=%v want=%v", i, v.text, c, v.c)
		}
	}
}

func TestNegate(t *testing.T) {
	x := ast.NewSymbol('X')
	vs := []struct {
		n *ast.Node
		s string
	}{
		{n: x, s: "-X"},
		{n: ast.NewOperator(ast.Mult, ast.NewInt(2), x), s: "-2*X"},
		{n: ast.NewInt(4), s: "-4"},
		{n: ast.NewBinary(ast.Div, x, ast.NewInt(2)), s: "-X/2"},
	}
	for i, v := range vs {
		before := v.n.String()
		if s := Negate(v.n).String(); s != v.s {
			t.Errorf("[%d] got=%q want=%q", i, s, v.s)
		}
		if after := v.n.String(); after != before {
			t.Errorf("[%d] Negate modified its argument: %q -> %q", i, before, after)
		}
	}
}
