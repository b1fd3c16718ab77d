package match

import (
	"testing"

	"zappem.net/pub/math/casid/ast"
	"zappem.net/pub/math/casid/parse"
	"zappem.net/pub/math/casid/simplify"
)

// pattern compiles identity text the way an identity does.
func pattern(text string) *ast.Node {
	n := parse.MustParse(text)
	simplify.Simplify(n, simplify.Normalize|simplify.Commutative)
	Mark(n)
	return n
}

// subject prepares user input the way the rewrite driver sees it.
func subject(text string) *ast.Node {
	n := parse.MustParse(text)
	simplify.Simplify(n, simplify.All)
	return n
}

func TestMatches(t *testing.T) {
	vs := []struct {
		p, s string
		ok   bool
		env  string
	}{
		{p: "sin(asin(X", s: "sin(asin(7))", ok: true, env: "{X=7}"},
		{p: "sin(A)^2+cos(A)^2", s: "sin(Y)^2+cos(Y)^2", ok: true, env: "{A=Y}"},
		{p: "sin(A)^2+cos(A)^2", s: "cos(Y+1)^2+sin(Y+1)^2", ok: true, env: "{A=1+Y}"},
		{p: "sin(A)^2+cos(A)^2", s: "sin(Y)^2+cos(Z)^2"},
		{p: "2Csin(X)cos(X", s: "2sin(Y)cos(Y)", ok: true, env: "{C=1, X=Y}"},
		{p: "2Csin(X)cos(X", s: "4sin(Y)cos(Y)", ok: true, env: "{C=2, X=Y}"},
		{p: "2Csin(X)cos(X", s: "6Zsin(Y)cos(Y)", ok: true, env: "{C=3*Z, X=Y}"},
		{p: "2Csin(X)cos(X", s: "sin(Y)cos(Y)"},
		{p: "sin(X)^2+cos(X)^2+C", s: "sin(Y)^2+cos(Y)^2+5", ok: true, env: "{C=5, X=Y}"},
		{p: "sin(X)^2+cos(X)^2+C", s: "sin(Y)^2+cos(Y)^2", ok: true, env: "{C=0, X=Y}"},
		{p: "sin(X)^2+cos(X)^2+C", s: "sin(Y)^2+cos(Y)^2+Z+5", ok: true, env: "{C=5+Z, X=Y}"},
		{p: "sin(X)^2+cos(X)^2+C", s: "sin(Y)^2+5"},
		{p: "2N", s: "4", ok: true, env: "{N=2}"},
		{p: "2N", s: "3"},
		{p: "2N", s: "X"},
		{p: "2N", s: "0/0"},
		{p: "N", s: "X"},
		{p: "A^logb(B,A", s: "2^logb(X,2)", ok: true, env: "{A=2, B=X}"},
		{p: "A^logb(B,A", s: "2^logb(X,3)"},
		{p: "A^logb(B,A", s: "(X*Y)^logb(Z,Y*X)", ok: true, env: "{A=X*Y, B=Z}"},
		{p: "A^logb(B,A", s: "(Y*X)^logb(Z,X*Y)", ok: true, env: "{A=X*Y, B=Z}"},
		{p: "sin(-C", s: "sin(-Y)", ok: true, env: "{C=Y}"},
		{p: "sin(-C", s: "sin(-2Y)", ok: true, env: "{C=2*Y}"},
		{p: "sin(-C", s: "sin(Y)"},
		{p: "sin(C+2piN", s: "sin(X+4pi)", ok: true, env: "{C=X, N=2}"},
		{p: "sin(C+2piN", s: "sin(X+3pi)"},
		{p: "sin(C+2pi", s: "sin(X+2pi)", ok: true, env: "{C=X}"},
		{p: "sin(pi/6", s: "sin(2pi/12)", ok: true, env: "{}"},
		{p: "sin(pi/6", s: "sin(pi/3)"},
		{p: "logb(X,B)+logb(Y,B)+C", s: "logb(P,3)+logb(Q,3)+1", ok: true, env: "{B=3, C=1, X=P, Y=Q}"},
		{p: "logb(X,B)_logb(Y,B)+C", s: "logb(P,3)-logb(Q,3)", ok: true, env: "{B=3, C=0, X=P, Y=Q}"},
		{p: "1_2sin(X)^2+C", s: "1-2sin(Y)^2", ok: true, env: "{C=0, X=Y}"},
		{p: "1_2sin(X)^2+C", s: "1+2sin(Y)^2"},
		{p: "sin(pi/2_X+C", s: "sin(pi/2-3Y)", ok: true, env: "{C=0, X=3*Y}"},
		{p: "I+Ji", s: "3+4i", ok: true, env: "{I=3, J=4}"},
		{p: "I+Ji", s: "5i", ok: true, env: "{I=0, J=5}"},
		{p: "I+Ji", s: "3+4X"},
		{p: "ln(I", s: "ln(2)", ok: true, env: "{I=2}"},
		{p: "ln(I", s: "ln(2i)"},
		{p: "1/i", s: "1/i", ok: true, env: "{}"},
	}
	for i, v := range vs {
		env := NewBindings()
		ok := Matches(pattern(v.p), subject(v.s), env)
		if ok != v.ok {
			t.Errorf("[%d] %q ~ %q got=%v want=%v (%v)", i, v.p, v.s, ok, v.ok, env)
			continue
		}
		if !ok {
			if env.Len() != 0 {
				t.Errorf("[%d] failed match leaked %v", i, env)
			}
			continue
		}
		if s := env.String(); s != v.env {
			t.Errorf("[%d] %q ~ %q got=%q want=%q", i, v.p, v.s, s, v.env)
		}
	}
}

func TestNoLeakOnFailure(t *testing.T) {
	vs := []struct {
		p, s string
	}{
		{p: "sin(A)^2+cos(A)^2", s: "sin(Y)^2+cos(Z)^2"},
		{p: "2Csin(X)cos(X", s: "sin(Y)cos(Y)"},
		{p: "A^logb(B,A", s: "2^logb(X,3)"},
		{p: "2N", s: "0/0"},
		{p: "logb(X,B)+logb(Y,B)+C", s: "logb(P,2)+logb(Q,3)"},
		{p: "sin(X)^2+cos(X)^2+C", s: "sin(Y)^2+cos(Y)^3+1"},
	}
	for i, v := range vs {
		env := NewBindings()
		env.Bind('Z', subject("9+W"))
		before := env.Clone()
		if Matches(pattern(v.p), subject(v.s), env) {
			t.Errorf("[%d] %q unexpectedly matched %q: %v", i, v.p, v.s, env)
			continue
		}
		if !env.Equal(before) {
			t.Errorf("[%d] environment changed: got=%v want=%v", i, env, before)
		}
	}
}

func TestBindings(t *testing.T) {
	env := NewBindings()
	env.Bind('X', subject("Y+1"))
	env.Bind('C', subject("5"))
	if got, want := env.String(), "{C=5, X=1+Y}"; got != want {
		t.Errorf("got=%q want=%q", got, want)
	}
	c := env.Clone()
	if !c.Equal(env) {
		t.Fatalf("clone %v differs from %v", c, env)
	}
	x, _ := c.Get('X')
	x.Children[0].Num.SetInt64(2)
	if c.Equal(env) {
		t.Errorf("clone shares storage with %v", env)
	}
	env.Clear()
	if env.Len() != 0 {
		t.Errorf("cleared environment holds %v", env)
	}
	if _, ok := env.Get('X'); ok {
		t.Error("X still bound after Clear")
	}
	env.Bind('X', subject("Z"))
	if got, want := env.String(), "{X=Z}"; got != want {
		t.Errorf("rebinding after Clear: got=%q want=%q", got, want)
	}
	if c.Len() != 2 {
		t.Errorf("Clear changed the clone: %v", c)
	}
}

func TestPriorBindingConstrains(t *testing.T) {
	env := NewBindings()
	env.Bind('X', subject("Y"))
	if Matches(pattern("sin(X"), subject("sin(Z)"), env) {
		t.Errorf("X=Y should not match sin(Z)")
	}
	if !Matches(pattern("sin(X"), subject("sin(Y)"), env) {
		t.Errorf("X=Y should match sin(Y)")
	}
	if got, want := env.String(), "{X=Y}"; got != want {
		t.Errorf("got=%q want=%q", got, want)
	}
}

func TestUnmarkedSymbolsAreLiteral(t *testing.T) {
	p := parse.MustParse("sin(X)")
	if Matches(p, subject("sin(Y)"), NewBindings()) {
		t.Error("unmarked X matched Y")
	}
	if !Matches(p, subject("sin(X)"), NewBindings()) {
		t.Error("unmarked X failed to match itself")
	}
}

func TestFill(t *testing.T) {
	vs := []struct {
		p, s, to string
		want     string
	}{
		{p: "sin(X)^2+cos(X)^2+C", s: "sin(Y)^2+cos(Y)^2+5", to: "1+C", want: "1+5"},
		{p: "2Csin(X)cos(X", s: "4sin(Y)cos(Y)", to: "Csin(2X", want: "2*sin(2*Y)"},
		{p: "logb(X^D,B", s: "logb(Q^3,2)", to: "Dlogb(X,B", want: "3*logb(Q,2)"},
		{p: "sin(X", s: "sin(7)", to: "X+Z", want: "7+Z"},
	}
	for i, v := range vs {
		env := NewBindings()
		if !Matches(pattern(v.p), subject(v.s), env) {
			t.Errorf("[%d] %q did not match %q", i, v.p, v.s)
			continue
		}
		to := pattern(v.to)
		Fill(to, env)
		if s := to.String(); s != v.want {
			t.Errorf("[%d] got=%q want=%q", i, s, v.want)
		}
	}
}

func TestPlaceholders(t *testing.T) {
	s := Placeholders(pattern("logb(X^D,B)+ipi+2"))
	for _, r := range "XDB" {
		if !s.Contains(r) {
			t.Errorf("missing %q", r)
		}
	}
	if s.Size() != 3 {
		t.Errorf("got %d placeholders, want 3", s.Size())
	}
}
