// Package identity compiles textual rewrite rules and applies them to
// expression trees.
//
// An identity is a pair of expressions in the calculator syntax: a
// pattern and its replacement. Upper case letters in the pattern are
// placeholders (see package match). An identity is compiled lazily, on
// first use, and an identity whose text fails to compile is logged
// once and is inert from then on.
package identity

import (
	"errors"
	"fmt"
	"log"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"

	"zappem.net/pub/math/casid/ast"
	"zappem.net/pub/math/casid/match"
	"zappem.net/pub/math/casid/parse"
	"zappem.net/pub/math/casid/simplify"
)

// ErrUnbound indicates a replacement uses a placeholder that its
// pattern never binds.
var ErrUnbound = errors.New("replacement placeholder not bound by pattern")

// CompileError records why an identity could not be compiled.
type CompileError struct {
	From, To string
	Err      error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("identity %q -> %q: %v", e.From, e.To, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// Identity is a single rewrite rule. The zero value is not useful, use
// New.
type Identity struct {
	from, to string

	// pattern and replacement are nil until the identity is loaded.
	pattern, replacement *ast.Node

	// err is the recorded compile failure of an inert identity.
	err error
}

// New returns an unloaded identity rewriting from into to.
func New(from, to string) *Identity {
	return &Identity{from: from, to: to}
}

// String displays the identity as "from -> to".
func (id *Identity) String() string {
	return fmt.Sprintf("%s -> %s", id.from, id.to)
}

// Loaded indicates the identity's trees are compiled and cached.
func (id *Identity) Loaded() bool {
	return id.pattern != nil
}

// Err returns the compile error of an inert identity, or nil.
func (id *Identity) Err() error {
	return id.err
}

// compile parses one side of an identity into canonical pattern form.
func compile(text string) (*ast.Node, error) {
	n, err := parse.Parse(text)
	if err != nil {
		return nil, err
	}
	simplify.Simplify(n, simplify.Normalize|simplify.Commutative)
	match.Mark(n)
	return n, nil
}

// Load compiles and caches the identity's trees. Loading a loaded
// identity does nothing. A failure is returned as a *CompileError and
// is remembered by Err until the identity is unloaded.
func (id *Identity) Load() error {
	if id.Loaded() {
		return nil
	}
	from, err := compile(id.from)
	if err != nil {
		id.err = &CompileError{From: id.from, To: id.to, Err: err}
		return id.err
	}
	to, err := compile(id.to)
	if err != nil {
		id.err = &CompileError{From: id.from, To: id.to, Err: err}
		return id.err
	}
	bound := match.Placeholders(from)
	if missing := match.Placeholders(to).Difference(bound); missing.Size() != 0 {
		rs := missing.Slice()
		slices.Sort(rs)
		names := lo.Map(rs, func(r rune, _ int) string { return string(r) })
		id.err = &CompileError{From: id.from, To: id.to, Err: fmt.Errorf("%w: %v", ErrUnbound, names)}
		return id.err
	}
	id.pattern, id.replacement, id.err = from, to, nil
	return nil
}

// Unload releases the identity's cached trees and forgets any compile
// error. It is safe to call at any time.
func (id *Identity) Unload() {
	id.pattern, id.replacement, id.err = nil, nil, nil
}

// Execute rewrites e, and then each of its descendants, wherever the
// identity's pattern matches. It reports whether anything changed.
func (id *Identity) Execute(e *ast.Node) bool {
	if id.err != nil {
		return false
	}
	if err := id.Load(); err != nil {
		log.Printf("ignoring identity: %v", err)
		return false
	}
	return id.rewrite(e)
}

// rewrite is Execute for a loaded identity.
func (id *Identity) rewrite(e *ast.Node) bool {
	changed := false
	env := match.NewBindings()
	if match.Matches(id.pattern, e, env) {
		r := id.replacement.Copy()
		match.Fill(r, env)
		e.Replace(r)
		changed = true
	}
	for _, c := range e.Children {
		if id.rewrite(c) {
			changed = true
		}
	}
	return changed
}
