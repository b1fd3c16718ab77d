package match

import (
	"math/big"

	"github.com/hashicorp/go-set/v3"
	"github.com/samber/lo"

	"zappem.net/pub/math/casid/ast"
	"zappem.net/pub/math/casid/simplify"
)

// one is a constant one for comparisons.
var one = big.NewRat(1, 1)

// Mark tags every bindable symbol of a pattern tree with its
// placeholder kind. Unmarked symbols only match themselves.
func Mark(pattern *ast.Node) {
	pattern.Walk(func(n *ast.Node) {
		if n.Kind == ast.Symbol && ast.Bindable(n.Sym) {
			n.Hole = ast.PlaceholderFor(n.Sym)
		}
	})
}

// Placeholders returns the set of placeholder symbols in a marked
// pattern.
func Placeholders(pattern *ast.Node) *set.Set[rune] {
	s := set.New[rune](0)
	pattern.Walk(func(n *ast.Node) {
		if isPlaceholder(n) {
			s.Insert(n.Sym)
		}
	})
	return s
}

// isPlaceholder confirms n is a marked pattern symbol.
func isPlaceholder(n *ast.Node) bool {
	return n.Kind == ast.Symbol && n.Hole != ast.NotPlaceholder
}

// admits confirms a subtree is an acceptable value for a placeholder
// of kind h.
func admits(h ast.Placeholder, n *ast.Node) bool {
	switch h {
	case ast.IntegerValue:
		return n.IsInteger()
	case ast.RealValue:
		return !n.ContainsSymbol(ast.Imag)
	}
	return true
}

// Matches reports whether pattern matches subject. On success env
// holds bindings from which Fill can rebuild subject out of pattern.
// On failure env is left unchanged.
func Matches(pattern, subject *ast.Node, env *Bindings) bool {
	switch {
	case isPlaceholder(pattern):
		return matchPlaceholder(pattern, subject, env)
	case pattern.Kind == ast.Operator && pattern.Op.Commutative():
		return matchCommutative(pattern, subject, env)
	case pattern.Kind == ast.Operator:
		return matchOrdered(pattern, subject, env)
	}
	// Numbers and constant symbols.
	return pattern.Equal(subject)
}

// matchPlaceholder binds a pattern symbol on first sight and compares
// against the binding after that.
func matchPlaceholder(p, s *ast.Node, env *Bindings) bool {
	if bound, ok := env.Get(p.Sym); ok {
		return bound.Equal(s)
	}
	if !admits(p.Hole, s) {
		return false
	}
	env.Bind(p.Sym, s)
	return true
}

// matchOrdered matches operators whose children are positional.
func matchOrdered(p, s *ast.Node, env *Bindings) bool {
	if s.Kind != ast.Operator || s.Op != p.Op || len(s.Children) != len(p.Children) {
		return false
	}
	work := env.Clone()
	for i, c := range p.Children {
		if !Matches(c, s.Children[i], work) {
			return false
		}
	}
	env.commit(work)
	return true
}

// divide replaces n with n/k and re-evaluates it.
func divide(n *ast.Node, k *big.Rat) {
	n.Replace(ast.NewBinary(ast.Div, n.Copy(), ast.NewNumber(k)))
	simplify.Simplify(n, simplify.All)
}

// divideCoefficient divides a numeric factor of the product p out of
// both p and s, so 2N against 4 becomes N against 2. A negative factor
// is only divided out in full when s is itself negative; against a
// positive s only its magnitude is, so -C never matches a bare term.
// It reports whether a division took place.
func divideCoefficient(p, s *ast.Node) bool {
	if !p.IsOp(ast.Mult) || s.IsInt(0) {
		return false
	}
	for _, c := range p.Children {
		if c.Kind != ast.Number {
			continue
		}
		if c.Num.Sign() == 0 {
			return false
		}
		k := new(big.Rat).Set(c.Num)
		if k.Sign() < 0 && simplify.Coefficient(s).Sign() > 0 {
			k.Neg(k)
		}
		if k.Cmp(one) == 0 {
			return false
		}
		divide(p, k)
		divide(s, k)
		return true
	}
	return false
}

// identityElement returns the value of an empty sum or product.
func identityElement(op ast.Op) *ast.Node {
	if op == ast.Add {
		return ast.NewInt(0)
	}
	return ast.NewInt(1)
}

// matchCommutative matches sums and products irrespective of the
// order of their terms. One unbound placeholder among the pattern's
// terms may act as a collector that absorbs every subject term the
// other pattern terms leave unmatched.
//
// Pairing is greedy: the first pattern term to match a subject term
// claims it and the claim is never revisited.
func matchCommutative(p, s *ast.Node, env *Bindings) bool {
	op := p.Op
	work := env.Clone()
	pc, sc := p.Copy(), s.Copy()

	divided := false
	for divideCoefficient(pc, sc) {
		divided = true
	}
	if divided && sc.IsOp(ast.Div) {
		// The pattern carries a coefficient the subject lacks.
		return false
	}

	if !sc.IsOp(op) {
		sc.Replace(ast.NewOperator(op, sc.Copy()))
	}
	if !pc.IsOp(op) {
		pc.Replace(ast.NewOperator(op, pc.Copy()))
	}

	var collector *ast.Node
	for i, c := range pc.Children {
		if !isPlaceholder(c) || c.Hole == ast.IntegerValue {
			continue
		}
		if _, bound := work.Get(c.Sym); bound {
			continue
		}
		collector = pc.RemoveChild(i)
		work.set(collector.Sym, identityElement(op))
		break
	}

	if len(pc.Children) > len(sc.Children) {
		return false
	}
	if collector == nil && len(pc.Children) != len(sc.Children) {
		return false
	}

	matchedP := set.New[int](len(pc.Children))
	matchedS := set.New[int](len(sc.Children))
	for progress := true; progress; {
		progress = false
	scan:
		for i, sChild := range sc.Children {
			if matchedS.Contains(i) {
				continue
			}
			for j, pChild := range pc.Children {
				if matchedP.Contains(j) {
					continue
				}
				if Matches(pChild, sChild, work) {
					matchedS.Insert(i)
					matchedP.Insert(j)
					progress = true
					break scan
				}
			}
		}
	}
	if matchedP.Size() != len(pc.Children) {
		return false
	}

	if collector != nil {
		rest := lo.Filter(sc.Children, func(_ *ast.Node, i int) bool {
			return !matchedS.Contains(i)
		})
		if len(rest) != 0 {
			g := ast.NewOperator(op, rest...)
			simplify.Simplify(g, simplify.Commutative)
			if !admits(collector.Hole, g) {
				return false
			}
			work.set(collector.Sym, g)
		}
	}

	env.commit(work)
	return true
}
