package match

import (
	"zappem.net/pub/math/casid/ast"
)

// Fill replaces, in place, every placeholder of template with a copy
// of its binding in env. Placeholders without a binding are left as
// they are.
func Fill(template *ast.Node, env *Bindings) {
	if isPlaceholder(template) {
		if n, ok := env.Get(template.Sym); ok {
			template.Replace(n.Copy())
		}
		return
	}
	for _, c := range template.Children {
		Fill(c, env)
	}
}
