// Package match unifies identity patterns with expression trees.
//
// A pattern is an expression tree whose bindable symbols (A..Z) are
// placeholders. Matching a pattern against a subject records, in a
// Bindings environment, the subtree each placeholder stands for. The
// first occurrence of a placeholder binds it and every later
// occurrence must be structurally equal to that binding. Sums and
// products are matched without regard to the order of their terms.
package match

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"zappem.net/pub/math/casid/ast"
)

// Bindings maps placeholder symbols to the subtrees bound to them.
// Every bound subtree is owned by the Bindings.
type Bindings struct {
	slots map[rune]*ast.Node
}

// NewBindings returns an empty environment.
func NewBindings() *Bindings {
	return &Bindings{slots: make(map[rune]*ast.Node)}
}

// Get returns the subtree bound to sym.
func (b *Bindings) Get(sym rune) (*ast.Node, bool) {
	n, ok := b.slots[sym]
	return n, ok
}

// Bind binds sym to a copy of n. Only unbound, bindable symbols may
// be bound; anything else is a programming error.
func (b *Bindings) Bind(sym rune, n *ast.Node) {
	if !ast.Bindable(sym) {
		panic(fmt.Sprintf("symbol %q is not bindable", sym))
	}
	if _, ok := b.slots[sym]; ok {
		panic(fmt.Sprintf("symbol %q is already bound", sym))
	}
	b.slots[sym] = n.Copy()
}

// set overwrites the slot for sym, taking ownership of n.
func (b *Bindings) set(sym rune, n *ast.Node) {
	b.slots[sym] = n
}

// Clone deep copies every bound slot.
func (b *Bindings) Clone() *Bindings {
	c := NewBindings()
	for s, n := range b.slots {
		c.slots[s] = n.Copy()
	}
	return c
}

// Clear releases every bound slot.
func (b *Bindings) Clear() {
	b.slots = make(map[rune]*ast.Node)
}

// commit replaces the content of b with that of o.
func (b *Bindings) commit(o *Bindings) {
	b.slots = o.slots
}

// Len returns the number of bound symbols.
func (b *Bindings) Len() int {
	return len(b.slots)
}

// Names returns the bound symbols in alphabetical order.
func (b *Bindings) Names() []rune {
	names := maps.Keys(b.slots)
	slices.Sort(names)
	return names
}

// Equal confirms two environments bind the same symbols to
// structurally equal subtrees.
func (b *Bindings) Equal(o *Bindings) bool {
	if len(b.slots) != len(o.slots) {
		return false
	}
	for s, n := range b.slots {
		m, ok := o.slots[s]
		if !ok || !n.Equal(m) {
			return false
		}
	}
	return true
}

// String displays the bindings as "{A=x, B=y}".
func (b *Bindings) String() string {
	var s []string
	for _, name := range b.Names() {
		s = append(s, fmt.Sprintf("%c=%v", name, b.slots[name]))
	}
	return "{" + strings.Join(s, ", ") + "}"
}
