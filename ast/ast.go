// Package ast defines expression trees: rational numbers, single
// character symbols and operators over ordered child lists.
package ast

import (
	"math/big"
)

// Kind distinguishes the three sorts of Node.
type Kind int

const (
	Number Kind = iota
	Symbol
	Operator
)

// Op identifies the function or operator of an Operator node.
type Op int

const (
	Add Op = iota
	Mult
	Div
	Pow
	Root
	LogBase
	Sub
	Neg
	Sin
	Cos
	Tan
	Asin
	Acos
	Atan
	Sinh
	Cosh
	Tanh
	Asinh
	Acosh
	Atanh
	Ln
	Log
	Sqrt
	Abs
)

var opNames = map[Op]string{
	Add:     "+",
	Mult:    "*",
	Div:     "/",
	Pow:     "^",
	Root:    "root",
	LogBase: "logb",
	Sub:     "-",
	Neg:     "-",
	Sin:     "sin",
	Cos:     "cos",
	Tan:     "tan",
	Asin:    "asin",
	Acos:    "acos",
	Atan:    "atan",
	Sinh:    "sinh",
	Cosh:    "cosh",
	Tanh:    "tanh",
	Asinh:   "asinh",
	Acosh:   "acosh",
	Atanh:   "atanh",
	Ln:      "ln",
	Log:     "log",
	Sqrt:    "sqrt",
	Abs:     "abs",
}

// Name returns the text used for o by the parser and printer.
func (o Op) Name() string {
	if s, ok := opNames[o]; ok {
		return s
	}
	return "<ERROR>"
}

// Commutative indicates the order of o's children is irrelevant.
// Such operators are also associative and variadic.
func (o Op) Commutative() bool {
	return o == Add || o == Mult
}

// Function indicates o is written name(args...).
func (o Op) Function() bool {
	return o == LogBase || o >= Sin
}

// Arity returns the fixed number of children of o, or -1 for
// variadic operators.
func (o Op) Arity() int {
	switch o {
	case Add, Mult:
		return -1
	case Div, Pow, Root, LogBase, Sub:
		return 2
	}
	return 1
}

// Reserved constant symbols.
const (
	Pi    = 'π'
	Euler = 'e'
	Imag  = 'i'
	Theta = 'θ'
)

// IsVariable reports whether r names a variable rather than a
// constant.
func IsVariable(r rune) bool {
	return (r >= 'A' && r <= 'Z') || r == Theta
}

// Bindable reports whether r may act as a placeholder inside an
// identity pattern.
func Bindable(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// Placeholder classifies what a pattern symbol may stand for. Subject
// trees only ever carry NotPlaceholder.
type Placeholder int

const (
	NotPlaceholder Placeholder = iota
	AnyValue
	IntegerValue
	RealValue
)

// PlaceholderFor returns the placeholder kind conventionally
// associated with a pattern symbol: N holds integers, I and J hold
// real numbers and all other bindable letters hold anything.
func PlaceholderFor(r rune) Placeholder {
	switch {
	case !Bindable(r):
		return NotPlaceholder
	case r == 'N':
		return IntegerValue
	case r == 'I', r == 'J':
		return RealValue
	}
	return AnyValue
}

// Node is a single vertex of an expression tree. A Node is owned by
// exactly one parent (or caller); sharing is done with Copy.
type Node struct {
	Kind Kind

	// Num holds the value of a Number.
	Num *big.Rat

	// Sym and Hole describe a Symbol.
	Sym  rune
	Hole Placeholder

	// Op and Children describe an Operator.
	Op       Op
	Children []*Node
}

// NewNumber copies a rational value into a Number node.
func NewNumber(r *big.Rat) *Node {
	return &Node{Kind: Number, Num: new(big.Rat).Set(r)}
}

// NewInt creates an integer Number node.
func NewInt(n int64) *Node {
	return &Node{Kind: Number, Num: big.NewRat(n, 1)}
}

// NewFrac creates the Number node num/den.
func NewFrac(num, den int64) *Node {
	return &Node{Kind: Number, Num: big.NewRat(num, den)}
}

// NewSymbol creates a Symbol node.
func NewSymbol(r rune) *Node {
	return &Node{Kind: Symbol, Sym: r}
}

// NewOperator creates an Operator node holding the supplied children.
func NewOperator(op Op, children ...*Node) *Node {
	return &Node{Kind: Operator, Op: op, Children: children}
}

// NewUnary creates a single child Operator node.
func NewUnary(op Op, a *Node) *Node {
	return NewOperator(op, a)
}

// NewBinary creates a two child Operator node.
func NewBinary(op Op, a, b *Node) *Node {
	return NewOperator(op, a, b)
}

// Copy returns a deep clone of n.
func (n *Node) Copy() *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		Kind: n.Kind,
		Sym:  n.Sym,
		Hole: n.Hole,
		Op:   n.Op,
	}
	if n.Num != nil {
		c.Num = new(big.Rat).Set(n.Num)
	}
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, ch := range n.Children {
			c.Children[i] = ch.Copy()
		}
	}
	return c
}

// Replace overwrites the content of n with that of m. The identity of
// n is preserved, so a parent holding n observes the new content. m
// must not be used afterwards.
func (n *Node) Replace(m *Node) {
	*n = *m
}

// Equal performs a deep, order sensitive, structural comparison. The
// placeholder tag of a symbol does not take part in the comparison.
func (n *Node) Equal(m *Node) bool {
	if n == nil || m == nil {
		return n == m
	}
	if n.Kind != m.Kind {
		return false
	}
	switch n.Kind {
	case Number:
		return n.Num.Cmp(m.Num) == 0
	case Symbol:
		return n.Sym == m.Sym
	}
	if n.Op != m.Op || len(n.Children) != len(m.Children) {
		return false
	}
	for i, c := range n.Children {
		if !c.Equal(m.Children[i]) {
			return false
		}
	}
	return true
}

// IsOp confirms n is an Operator node of type op.
func (n *Node) IsOp(op Op) bool {
	return n != nil && n.Kind == Operator && n.Op == op
}

// Len returns the number of children of n.
func (n *Node) Len() int {
	return len(n.Children)
}

// Append adds children to the end of n's child list.
func (n *Node) Append(cs ...*Node) {
	n.Children = append(n.Children, cs...)
}

// RemoveChild detaches and returns the i'th child of n.
func (n *Node) RemoveChild(i int) *Node {
	c := n.Children[i]
	n.Children = append(n.Children[:i:i], n.Children[i+1:]...)
	return c
}

// IsInteger confirms n is a Number holding an integer.
func (n *Node) IsInteger() bool {
	return n != nil && n.Kind == Number && n.Num.IsInt()
}

// IsInt confirms n is a Number equal to the integer v.
func (n *Node) IsInt(v int64) bool {
	return n.IsInteger() && n.Num.Cmp(big.NewRat(v, 1)) == 0
}

// ContainsSymbol reports whether the symbol r occurs anywhere in n.
func (n *Node) ContainsSymbol(r rune) bool {
	switch n.Kind {
	case Symbol:
		return n.Sym == r
	case Operator:
		for _, c := range n.Children {
			if c.ContainsSymbol(r) {
				return true
			}
		}
	}
	return false
}

// Walk calls fn on n and then on each descendant of n, depth first.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Compare defines the canonical total order of trees: numbers by
// value, then symbols by character, then operators by type, child
// count and children. It returns -1, 0 or +1.
func Compare(a, b *Node) int {
	if a.Kind != b.Kind {
		if a.Kind < b.Kind {
			return -1
		}
		return 1
	}
	switch a.Kind {
	case Number:
		return a.Num.Cmp(b.Num)
	case Symbol:
		switch {
		case a.Sym < b.Sym:
			return -1
		case a.Sym > b.Sym:
			return 1
		}
		return 0
	}
	switch {
	case a.Op < b.Op:
		return -1
	case a.Op > b.Op:
		return 1
	case len(a.Children) < len(b.Children):
		return -1
	case len(a.Children) > len(b.Children):
		return 1
	}
	for i, c := range a.Children {
		if d := Compare(c, b.Children[i]); d != 0 {
			return d
		}
	}
	return 0
}
