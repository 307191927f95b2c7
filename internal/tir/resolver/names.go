package resolver

import (
	"strings"

	"github.com/timu-lang/timu/internal/ast"
	"github.com/timu-lang/timu/internal/diagnostics"
	"github.com/timu-lang/timu/internal/tir"
)

// resolveTypeName implements the six-step lookup algorithm (§4.3) for
// a dotted type-name visible in scope of module m.
func (r *Resolver) resolveTypeName(m *tir.Module, tn *ast.TypeName) (tir.TypeLocation, *diagnostics.Diagnostic) {
	return r.resolveDotted(m, tn.Segments, tn)
}

func (r *Resolver) resolveDotted(m *tir.Module, segments []string, tn *ast.TypeName) (tir.TypeLocation, *diagnostics.Diagnostic) {
	first := segments[0]
	rest := segments[1:]

	// Step 1: local alias.
	if target, ok := m.Aliases[first]; ok {
		if len(rest) == 0 {
			if target.IsModule {
				return tir.UndefinedType(), typeNotFoundDiag(tn)
			}
			return r.resolveSignatureToType(target.Signature, tn)
		}
		if target.IsModule {
			if sub, ok := r.ctx.Modules.Get(target.ModulePath); ok {
				return r.resolveDotted(sub, rest, tn)
			}
		}
		return tir.UndefinedType(), typeNotFoundDiag(tn)
	}

	// Step 2: submodule of m.
	if childPath, ok := m.Children[first]; ok {
		if len(rest) == 0 {
			return tir.UndefinedType(), typeNotFoundDiag(tn)
		}
		child, _ := r.ctx.Modules.Get(childPath)
		return r.resolveDotted(child, rest, tn)
	}

	// Step 3: sibling top-level module in the global registry.
	if sib, ok := r.ctx.Modules.Sibling(first); ok {
		if len(rest) == 0 {
			return tir.UndefinedType(), typeNotFoundDiag(tn)
		}
		return r.resolveDotted(sib, rest, tn)
	}

	// Step 4: whole name resolves in M's local AST-signature or type table.
	if len(segments) == 1 {
		name := segments[0]
		if loc, ok := m.Locals[name]; ok {
			return r.resolveSignatureToType(loc, tn)
		}
		if loc, ok := m.Types[name]; ok {
			return loc, nil
		}
	}

	// Step 5: global primitive type table.
	if len(segments) == 1 {
		if loc, ok := r.ctx.Types.Location(segments[0]); ok {
			if _, published := r.ctx.Types.GetAt(loc); published {
				return loc, nil
			}
		}
	}

	// Step 6: type-not-found.
	return tir.UndefinedType(), typeNotFoundDiag(tn)
}

func typeNotFoundDiag(tn *ast.TypeName) *diagnostics.Diagnostic {
	return diagnostics.New(diagnostics.TypeNotFound, tn.Sp, "type \""+tn.Dotted()+"\" not found")
}

// resolveSignatureToType dereferences an AstSignatureLocation into a
// TypeLocation, resolving the referent now (on demand) if no pass has
// reached it yet — the mechanism that lets a forward reference to a
// not-yet-processed declaration still produce a usable handle (§4.1,
// §4.3 step 4: "resolving on demand if only an AST signature exists").
func (r *Resolver) resolveSignatureToType(loc tir.AstSignatureLocation, tn *ast.TypeName) (tir.TypeLocation, *diagnostics.Diagnostic) {
	sig, ok := r.ctx.AstSignatures.GetAt(loc)
	if !ok {
		return tir.UndefinedType(), typeNotFoundDiag(tn)
	}
	switch sig.Kind {
	case tir.KindClass:
		return r.resolveClassSignature(sig), nil
	case tir.KindInterface:
		return r.resolveInterfaceSignature(sig), nil
	case tir.KindFunction:
		return tir.UndefinedType(), diagnostics.New(diagnostics.InvalidType, tn.Sp, "\""+sig.Name+"\" is a function, not a type")
	default:
		return tir.UndefinedType(), typeNotFoundDiag(tn)
	}
}

func dottedJoin(segments []string) string {
	return strings.Join(segments, ".")
}
