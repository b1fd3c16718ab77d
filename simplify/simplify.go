// Package simplify rewrites expression trees into a canonical form
// and folds exact rational arithmetic.
package simplify

import (
	"math/big"
	"sort"

	"zappem.net/pub/math/casid/ast"
)

// Flags select which rewrites Simplify performs.
type Flags int

const (
	// Normalize removes subtraction and negation, flattens nested
	// sums and products and gathers quotients into a single
	// numerator/denominator pair.
	Normalize Flags = 1 << iota
	// Commutative flattens sums and products and sorts their
	// children into canonical order.
	Commutative
	// Eval folds numbers, collects like terms and merges powers of
	// equal bases.
	Eval
)

// All is the set of every rewrite.
const All = Normalize | Commutative | Eval

// maxPasses bounds the number of passes Simplify makes over a tree.
const maxPasses = 64

// one is a constant one for comparisons.
var one = big.NewRat(1, 1)

// Simplify rewrites n in place until a pass over it changes nothing.
func Simplify(n *ast.Node, flags Flags) {
	for i := 0; i < maxPasses; i++ {
		before := n.Copy()
		pass(n, flags)
		if before.Equal(n) {
			return
		}
	}
}

// pass simplifies the children of n and then n itself.
func pass(n *ast.Node, flags Flags) {
	if n.Kind != ast.Operator {
		return
	}
	for _, c := range n.Children {
		pass(c, flags)
	}
	if flags&Normalize != 0 {
		normalize(n)
	}
	if n.Kind != ast.Operator {
		return
	}
	if flags&(Normalize|Commutative) != 0 {
		flatten(n)
	}
	if flags&Eval != 0 && n.Kind == ast.Operator {
		eval(n)
	}
	if flags&Commutative != 0 && n.Kind == ast.Operator && n.Op.Commutative() {
		sort.Stable(byOrder(n.Children))
	}
}

// byOrder sorts children into the canonical order of ast.Compare.
type byOrder []*ast.Node

func (a byOrder) Len() int           { return len(a) }
func (a byOrder) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byOrder) Less(i, j int) bool { return ast.Compare(a[i], a[j]) < 0 }

// Negate returns a new tree for -x, folding the sign into a numeric
// coefficient when x has one.
func Negate(x *ast.Node) *ast.Node {
	switch {
	case x.Kind == ast.Number:
		return ast.NewNumber(new(big.Rat).Neg(x.Num))
	case x.IsOp(ast.Mult):
		m := x.Copy()
		for _, c := range m.Children {
			if c.Kind == ast.Number {
				c.Num.Neg(c.Num)
				return m
			}
		}
		m.Children = append([]*ast.Node{ast.NewInt(-1)}, m.Children...)
		return m
	case x.IsOp(ast.Div):
		return ast.NewBinary(ast.Div, Negate(x.Children[0]), x.Children[1].Copy())
	}
	return ast.NewOperator(ast.Mult, ast.NewInt(-1), x.Copy())
}

// normalize removes the parser's sugar operators and gathers
// quotients.
func normalize(n *ast.Node) {
	switch n.Op {
	case ast.Sub:
		n.Replace(ast.NewOperator(ast.Add, n.Children[0], Negate(n.Children[1])))
	case ast.Neg:
		n.Replace(Negate(n.Children[0]))
	case ast.Div:
		a, b := n.Children[0], n.Children[1]
		switch {
		case a.IsOp(ast.Div):
			n.Replace(ast.NewBinary(ast.Div, a.Children[0], ast.NewOperator(ast.Mult, a.Children[1], b)))
		case b.IsOp(ast.Div):
			n.Replace(ast.NewBinary(ast.Div, ast.NewOperator(ast.Mult, a, b.Children[1]), b.Children[0]))
		}
	case ast.Mult:
		for i, c := range n.Children {
			if !c.IsOp(ast.Div) {
				continue
			}
			num := make([]*ast.Node, 0, len(n.Children))
			num = append(num, n.Children[:i]...)
			num = append(num, c.Children[0])
			num = append(num, n.Children[i+1:]...)
			n.Replace(ast.NewBinary(ast.Div, ast.NewOperator(ast.Mult, num...), c.Children[1]))
			return
		}
	}
}

// flatten merges nested sums (products) into their parent and
// collapses sums and products of fewer than two children.
func flatten(n *ast.Node) {
	if !n.Op.Commutative() {
		return
	}
	var cs []*ast.Node
	changed := false
	for _, c := range n.Children {
		if c.IsOp(n.Op) {
			cs = append(cs, c.Children...)
			changed = true
			continue
		}
		cs = append(cs, c)
	}
	if changed {
		n.Children = cs
	}
	switch len(n.Children) {
	case 0:
		if n.Op == ast.Add {
			n.Replace(ast.NewInt(0))
		} else {
			n.Replace(ast.NewInt(1))
		}
	case 1:
		n.Replace(n.Children[0])
	}
}

// Coefficient returns the numeric multiplier of a term: the value of
// a number, the product of a product's numeric factors, or that of a
// numerator over a numeric denominator. Other terms have coefficient 1.
func Coefficient(n *ast.Node) *big.Rat {
	c, _ := split(n)
	return c
}

// split separates a term into its numeric coefficient and the
// remaining non-numeric factors. The core is nil for a plain number.
func split(n *ast.Node) (*big.Rat, *ast.Node) {
	switch {
	case n.Kind == ast.Number:
		return new(big.Rat).Set(n.Num), nil
	case n.IsOp(ast.Mult):
		c := new(big.Rat).Set(one)
		var rest []*ast.Node
		for _, f := range n.Children {
			if f.Kind == ast.Number {
				c.Mul(c, f.Num)
				continue
			}
			rest = append(rest, f)
		}
		switch len(rest) {
		case 0:
			return c, nil
		case 1:
			return c, rest[0]
		}
		return c, ast.NewOperator(ast.Mult, rest...)
	case n.IsOp(ast.Div) && n.Children[1].Kind == ast.Number && n.Children[1].Num.Sign() != 0:
		c, core := split(n.Children[0])
		return c.Quo(c, n.Children[1].Num), core
	}
	return new(big.Rat).Set(one), n
}

// build is the inverse of split. A coefficient that is not an integer
// is expressed as a quotient by its denominator.
func build(c *big.Rat, core *ast.Node) *ast.Node {
	if core == nil {
		return ast.NewNumber(c)
	}
	if c.Sign() == 0 {
		return ast.NewInt(0)
	}
	if !c.IsInt() {
		num := build(new(big.Rat).SetInt(c.Num()), core)
		return ast.NewBinary(ast.Div, num, ast.NewNumber(new(big.Rat).SetInt(c.Denom())))
	}
	if c.Cmp(one) == 0 {
		return core.Copy()
	}
	m := ast.NewOperator(ast.Mult, ast.NewNumber(c))
	if core.IsOp(ast.Mult) {
		for _, f := range core.Children {
			m.Append(f.Copy())
		}
	} else {
		m.Append(core.Copy())
	}
	return m
}
