package resolver

import (
	"github.com/timu-lang/timu/internal/ast"
	"github.com/timu-lang/timu/internal/diagnostics"
	"github.com/timu-lang/timu/internal/tir"
)

// resolveUses is pass 2 (§4.3): bind each `use` clause's local alias
// to either a registered AST signature or a module, then check
// accessibility against the rule table in §4.5.
func (r *Resolver) resolveUses() {
	for _, m := range r.ctx.Modules.Ordered() {
		if !m.IsReal() {
			continue
		}
		for _, stmt := range m.AST.Statements {
			use, ok := stmt.(*ast.Use)
			if !ok {
				continue
			}
			r.resolveUse(m, use)
		}
		m.UsesResolved = true
	}
}

func (r *Resolver) resolveUse(m *tir.Module, use *ast.Use) {
	path := dottedJoin(use.Path)
	alias := use.AliasOrLast()

	if _, exists := m.Aliases[alias]; exists {
		r.diags.Add(diagnostics.New(diagnostics.ModuleAlreadyImported, use.Span(),
			"alias \""+alias+"\" is already bound by another use in this module"))
		return
	}

	if sigLoc, ok := r.ctx.AstSignatures.Location(path); ok {
		sig, _ := r.ctx.AstSignatures.GetAt(sigLoc)
		if !tir.IsAccessible(sig.Kind, isPublicNode(sig.Node)) {
			r.diags.Add(tir.CheckImportAccessibility(sig.Name, use.Span(), sig.Span))
			return
		}
		m.Aliases[alias] = tir.Alias{IsModule: false, Signature: sigLoc}
		return
	}

	if _, ok := r.ctx.Modules.Get(path); ok {
		// Modules are always accessible (§4.5).
		m.Aliases[alias] = tir.Alias{IsModule: true, ModulePath: path}
		return
	}

	r.diags.Add(diagnostics.New(diagnostics.ImportNotFound, use.Span(), "\""+path+"\" is not a registered declaration or module"))
}

// isPublicNode reports a declaration's `pub` flag for accessibility
// purposes. Interfaces fall to the default false here, which
// IsAccessible ignores because it treats KindInterface as always
// public; extensions can never be named in a `use` at all.
func isPublicNode(node ast.Statement) bool {
	switch n := node.(type) {
	case *ast.Class:
		return n.Public
	case *ast.Function:
		return n.Public
	default:
		return false
	}
}
