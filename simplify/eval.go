package simplify

import (
	"math/big"

	"zappem.net/pub/math/casid/ast"
)

// maxExponent bounds the integer powers that are expanded exactly.
const maxExponent = 1024

// eval folds the exact arithmetic of a single operator node whose
// children have already been evaluated.
func eval(n *ast.Node) {
	switch n.Op {
	case ast.Add:
		evalSum(n)
	case ast.Mult:
		evalProduct(n)
	case ast.Div:
		evalQuotient(n)
	case ast.Pow:
		evalPower(n)
	case ast.Sqrt:
		if r, ok := exactSqrt(n.Children[0]); ok {
			n.Replace(ast.NewNumber(r))
		}
	case ast.Ln:
		if a := n.Children[0]; a.Kind == ast.Symbol && a.Sym == ast.Euler {
			n.Replace(ast.NewInt(1))
		}
	case ast.Abs:
		if a := n.Children[0]; a.Kind == ast.Number {
			n.Replace(ast.NewNumber(new(big.Rat).Abs(a.Num)))
		}
	}
}

// term is a non-numeric core with its accumulated coefficient.
type term struct {
	coeff *big.Rat
	core  *ast.Node
}

// evalSum adds the numbers of a sum and collects like terms.
func evalSum(n *ast.Node) {
	total := new(big.Rat)
	var ts []*term
outer:
	for _, c := range n.Children {
		k, core := split(c)
		if core == nil {
			total.Add(total, k)
			continue
		}
		for _, t := range ts {
			if t.core.Equal(core) {
				t.coeff.Add(t.coeff, k)
				continue outer
			}
		}
		ts = append(ts, &term{coeff: k, core: core})
	}
	var cs []*ast.Node
	if total.Sign() != 0 {
		cs = append(cs, ast.NewNumber(total))
	}
	for _, t := range ts {
		if t.coeff.Sign() == 0 {
			continue
		}
		cs = append(cs, build(t.coeff, t.core))
	}
	switch len(cs) {
	case 0:
		n.Replace(ast.NewInt(0))
	case 1:
		n.Replace(cs[0])
	default:
		n.Children = cs
	}
}

// evalProduct multiplies the numbers of a product and merges the
// numeric exponents of equal bases.
func evalProduct(n *ast.Node) {
	c := new(big.Rat).Set(one)
	var ps []*term
outer:
	for _, f := range n.Children {
		if f.Kind == ast.Number {
			c.Mul(c, f.Num)
			continue
		}
		base, exp := f, new(big.Rat).Set(one)
		if f.IsOp(ast.Pow) && f.Children[1].Kind == ast.Number {
			base = f.Children[0]
			exp.Set(f.Children[1].Num)
		}
		for _, p := range ps {
			if p.core.Equal(base) {
				p.coeff.Add(p.coeff, exp)
				continue outer
			}
		}
		ps = append(ps, &term{coeff: exp, core: base})
	}
	if c.Sign() == 0 {
		n.Replace(ast.NewInt(0))
		return
	}
	var cs []*ast.Node
	for _, p := range ps {
		switch {
		case p.coeff.Sign() == 0:
		case p.coeff.Cmp(one) == 0:
			cs = append(cs, p.core)
		default:
			cs = append(cs, ast.NewBinary(ast.Pow, p.core, ast.NewNumber(p.coeff)))
		}
	}
	var core *ast.Node
	switch len(cs) {
	case 0:
	case 1:
		core = cs[0]
	default:
		core = ast.NewOperator(ast.Mult, cs...)
	}
	n.Replace(build(c, core))
}

// evalQuotient divides out numeric coefficients.
func evalQuotient(n *ast.Node) {
	a, b := n.Children[0], n.Children[1]
	cb, coreB := split(b)
	if cb.Sign() == 0 {
		// Possibly zero, so nothing is folded.
		return
	}
	if a.Kind == ast.Number && a.Num.Sign() == 0 {
		n.Replace(ast.NewInt(0))
		return
	}
	ca, coreA := split(a)
	if coreB == nil {
		n.Replace(build(ca.Quo(ca, cb), coreA))
		return
	}
	if cb.Cmp(one) == 0 && ca.IsInt() {
		return
	}
	r := ca.Quo(ca, cb)
	num := build(new(big.Rat).SetInt(r.Num()), coreA)
	den := build(new(big.Rat).SetInt(r.Denom()), coreB)
	n.Replace(ast.NewBinary(ast.Div, num, den))
}

// evalPower folds numeric exponents.
func evalPower(n *ast.Node) {
	b, x := n.Children[0], n.Children[1]
	if b.IsInt(1) {
		n.Replace(ast.NewInt(1))
		return
	}
	if x.Kind != ast.Number {
		return
	}
	switch {
	case x.Num.Sign() == 0:
		n.Replace(ast.NewInt(1))
	case x.Num.Cmp(one) == 0:
		n.Replace(b)
	case b.Kind == ast.Number && x.Num.IsInt():
		if r, ok := intPower(b.Num, x.Num.Num()); ok {
			n.Replace(ast.NewNumber(r))
		}
	case b.Kind == ast.Number && x.Num.Cmp(big.NewRat(1, 2)) == 0:
		if r, ok := exactSqrt(b); ok {
			n.Replace(ast.NewNumber(r))
		}
	case b.Kind == ast.Symbol && b.Sym == ast.Imag && x.Num.IsInt():
		n.Replace(imagPower(x.Num.Num()))
	case b.IsOp(ast.Pow) && b.Children[1].Kind == ast.Number && x.Num.IsInt():
		e := new(big.Rat).Mul(b.Children[1].Num, x.Num)
		n.Replace(ast.NewBinary(ast.Pow, b.Children[0], ast.NewNumber(e)))
	}
}

// intPower computes r^k exactly for modest integer k.
func intPower(r *big.Rat, k *big.Int) (*big.Rat, bool) {
	if !k.IsInt64() {
		return nil, false
	}
	e := k.Int64()
	neg := e < 0
	if neg {
		e = -e
	}
	if e > maxExponent || (neg && r.Sign() == 0) {
		return nil, false
	}
	en := big.NewInt(e)
	num := new(big.Int).Exp(r.Num(), en, nil)
	den := new(big.Int).Exp(r.Denom(), en, nil)
	if neg {
		num, den = den, num
	}
	return new(big.Rat).SetFrac(num, den), true
}

// imagPower reduces i^k using the period of four.
func imagPower(k *big.Int) *ast.Node {
	m := new(big.Int).Mod(k, big.NewInt(4)).Int64()
	switch m {
	case 0:
		return ast.NewInt(1)
	case 1:
		return ast.NewSymbol(ast.Imag)
	case 2:
		return ast.NewInt(-1)
	}
	return ast.NewOperator(ast.Mult, ast.NewInt(-1), ast.NewSymbol(ast.Imag))
}

// exactSqrt returns the square root of a non-negative rational when
// both its numerator and denominator are perfect squares.
func exactSqrt(n *ast.Node) (*big.Rat, bool) {
	if n.Kind != ast.Number || n.Num.Sign() < 0 {
		return nil, false
	}
	num := new(big.Int).Sqrt(n.Num.Num())
	den := new(big.Int).Sqrt(n.Num.Denom())
	if new(big.Int).Mul(num, num).Cmp(n.Num.Num()) != 0 || new(big.Int).Mul(den, den).Cmp(n.Num.Denom()) != 0 {
		return nil, false
	}
	return new(big.Rat).SetFrac(num, den), true
}
