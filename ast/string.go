package ast

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

const (
	precSum = iota + 1
	precProduct
	precPower
	precAtom
)

// precedence returns how tightly the rendered form of n binds.
func (n *Node) precedence() int {
	switch n.Kind {
	case Number:
		if n.Num.Sign() < 0 {
			return precSum
		}
		if !n.Num.IsInt() {
			return precProduct
		}
		return precAtom
	case Symbol:
		return precAtom
	}
	switch n.Op {
	case Add, Sub:
		return precSum
	case Mult, Div, Neg:
		return precProduct
	case Pow, Root:
		return precPower
	}
	return precAtom
}

// wrap renders n, parenthesized when it binds more loosely than prec.
func (n *Node) wrap(prec int) string {
	s := n.String()
	if n.precedence() < prec {
		return "(" + s + ")"
	}
	return s
}

// symbolString renders a symbol character in its input form.
func symbolString(r rune) string {
	if r == Pi {
		return "pi"
	}
	return string(r)
}

// negated returns a copy of a negative coefficient term with its sign
// flipped, or nil if n does not render with a leading minus sign.
func (n *Node) negated() *Node {
	switch {
	case n.Kind == Number && n.Num.Sign() < 0:
		m := n.Copy()
		m.Num.Neg(m.Num)
		return m
	case n.IsOp(Mult) && len(n.Children) > 1 && n.Children[0].Kind == Number && n.Children[0].Num.Sign() < 0:
		m := n.Copy()
		m.Children[0].Num.Neg(m.Children[0].Num)
		if m.Children[0].IsInt(1) {
			m.RemoveChild(0)
			if len(m.Children) == 1 {
				return m.Children[0]
			}
		}
		return m
	case n.IsOp(Neg):
		return n.Children[0]
	}
	return nil
}

// String renders an expression in the calculator input syntax.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.Kind {
	case Number:
		return n.Num.RatString()
	case Symbol:
		return symbolString(n.Sym)
	}
	switch n.Op {
	case Add:
		if len(n.Children) == 0 {
			return "0"
		}
		var b strings.Builder
		for i, c := range n.Children {
			if m := c.negated(); m != nil && i != 0 {
				b.WriteString("-" + m.wrap(precProduct))
				continue
			}
			if i != 0 {
				b.WriteString("+")
			}
			b.WriteString(c.wrap(precSum))
		}
		return b.String()
	case Mult:
		if len(n.Children) == 0 {
			return "1"
		}
		if m := n.negated(); m != nil {
			return "-" + m.wrap(precProduct)
		}
		return strings.Join(lo.Map(n.Children, func(c *Node, _ int) string {
			return c.wrap(precPower)
		}), "*")
	case Div:
		return n.Children[0].wrap(precProduct) + "/" + n.Children[1].wrap(precPower)
	case Sub:
		return n.Children[0].wrap(precSum) + "-" + n.Children[1].wrap(precProduct)
	case Neg:
		return "-" + n.Children[0].wrap(precPower)
	case Pow:
		return n.Children[0].wrap(precAtom) + "^" + n.Children[1].wrap(precAtom)
	case Root:
		return n.Children[0].wrap(precAtom) + "root" + n.Children[1].wrap(precAtom)
	}
	if n.Op.Function() {
		return fmt.Sprintf("%s(%s)", n.Op.Name(), strings.Join(lo.Map(n.Children, func(c *Node, _ int) string {
			return c.String()
		}), ","))
	}
	return "<ERROR>"
}
