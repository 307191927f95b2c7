package resolver

import (
	"strconv"

	"github.com/timu-lang/timu/internal/ast"
	"github.com/timu-lang/timu/internal/diagnostics"
	"github.com/timu-lang/timu/internal/tir"
)

// resolveBodies is pass 7 (§4.3 step 7): walk every queued function
// and method body. It runs last so every signature a body might
// reference — including a sibling method resolved on demand by an
// earlier pass — is already published.
func (r *Resolver) resolveBodies() {
	for _, pb := range r.pendingBodies {
		r.resolveBlock(pb.module, pb.fn.Body, pb.scope)
	}
	for _, m := range r.ctx.Modules.Ordered() {
		if m.IsReal() {
			m.BodiesResolved = true
		}
	}
}

func (r *Resolver) resolveBlock(m *tir.Module, stmts []ast.Statement, scope tir.ScopeLocation) {
	for _, stmt := range stmts {
		r.resolveStatement(m, stmt, scope)
	}
}

func (r *Resolver) resolveStatement(m *tir.Module, stmt ast.Statement, scope tir.ScopeLocation) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		r.resolveVarDecl(m, s, scope)
	case *ast.Assign:
		r.resolveAssign(m, s, scope)
	case *ast.ExprStatement:
		r.resolveExprValue(m, s.Value, scope)
	case *ast.If:
		r.resolveIf(m, s, scope)
	}
}

// resolveVarDecl binds Name in scope: its TypeLocation is the
// explicit annotation when given, else inferred from the
// initializer's expression type. A redefinition within the same
// scope is variable-already-defined (§7, invariant 6); shadowing an
// ancestor binding is fine because Define only checks this scope.
func (r *Resolver) resolveVarDecl(m *tir.Module, decl *ast.VarDecl, scope tir.ScopeLocation) {
	var valueType tir.TypeLocation = tir.UndefinedType()
	if decl.Value != nil {
		valueType, _ = r.resolveExprValue(m, decl.Value, scope)
	}
	declared := valueType
	if decl.Type != nil {
		loc, diag := r.resolveTypeName(m, decl.Type)
		if diag != nil {
			r.diags.Add(diag)
		}
		declared = loc
	}
	nullable, reference := false, false
	if decl.Type != nil {
		nullable, reference = decl.Type.Nullable, decl.Type.Reference
	}
	if err := r.ctx.Scopes.Define(scope, decl.Name, tir.Local{Span: decl.Sp, Type: declared, Nullable: nullable, Reference: reference}); err != nil {
		r.diags.Add(diagnostics.New(diagnostics.VariableAlreadyDefined, decl.Sp, "\""+decl.Name+"\" is already defined in this scope"))
	}
}

// resolveAssign resolves both sides of a `target = value;` statement.
// An assignment to an unrecognized target is not one of the error
// kinds spec §7 enumerates, so it is resolved best-effort and left
// silent when the target cannot be traced to a binding.
func (r *Resolver) resolveAssign(m *tir.Module, assign *ast.Assign, scope tir.ScopeLocation) {
	r.resolveExprValue(m, assign.Target, scope)
	r.resolveExprValue(m, assign.Value, scope)
}

// resolveIf recurses into each branch under its own child scope, so a
// variable defined inside one branch never leaks into a sibling
// branch or the enclosing scope.
func (r *Resolver) resolveIf(m *tir.Module, ifStmt *ast.If, scope tir.ScopeLocation) {
	r.resolveExprValue(m, ifStmt.Condition, scope)

	thenScope := r.ctx.Scopes.New(m.Path, scope, r.ctx.Scopes.CurrentTypeOf(scope))
	r.resolveBlock(m, ifStmt.Then, thenScope)

	switch {
	case ifStmt.ElseIf != nil:
		r.resolveIf(m, ifStmt.ElseIf, scope)
	case ifStmt.Else != nil:
		elseScope := r.ctx.Scopes.New(m.Path, scope, r.ctx.Scopes.CurrentTypeOf(scope))
		r.resolveBlock(m, ifStmt.Else, elseScope)
	}
}

// resolveExprValue resolves an expression's TypeLocation where
// possible. It reports no diagnostic of its own; diagnostics come only
// from what it delegates to (resolveCall for every call it reaches,
// and on-demand resolution of a referenced declaration). It is the
// shared primitive both statement resolution and argument-type
// resolution build on.
func (r *Resolver) resolveExprValue(m *tir.Module, expr ast.Expression, scope tir.ScopeLocation) (tir.TypeLocation, bool) {
	switch e := expr.(type) {
	case *ast.Literal:
		return r.literalType(e), true
	case *ast.This:
		t := r.ctx.Scopes.CurrentTypeOf(scope)
		if int(t) == tir.Undefined {
			return tir.UndefinedType(), false
		}
		return t, true
	case *ast.Identifier:
		if local, _, ok := r.ctx.Scopes.Lookup(scope, e.Name); ok {
			return local.Type, true
		}
		if loc, ok := m.Locals[e.Name]; ok {
			t, diag := r.resolveSignatureToType(loc, &ast.TypeName{Segments: []string{e.Name}, Sp: e.Sp})
			if diag == nil {
				return t, true
			}
		}
		return tir.UndefinedType(), false
	case *ast.MemberAccess:
		return r.resolveMemberType(m, e, scope)
	case *ast.Call:
		ret, ok := r.resolveCall(m, e, scope)
		return ret, ok
	case *ast.Binary:
		left, ok := r.resolveExprValue(m, e.Left, scope)
		r.resolveExprValue(m, e.Right, scope)
		return left, ok
	case *ast.Unary:
		return r.resolveExprValue(m, e.Operand, scope)
	default:
		return tir.UndefinedType(), false
	}
}

func (r *Resolver) literalType(lit *ast.Literal) tir.TypeLocation {
	name := primitiveNameForLiteral(lit.Kind)
	if kind, ok := tir.LookupPrimitive(name); ok {
		// Identical constants share one interned object across all of
		// their use sites.
		r.ctx.Objects.Intern(tir.Object{Kind: kind, Text: lit.Text})
	}
	loc, _ := r.ctx.Types.Location(name)
	return loc
}

func primitiveNameForLiteral(kind ast.LiteralKind) string {
	switch kind {
	case ast.LiteralBool:
		return "bool"
	case ast.LiteralString:
		return "string"
	case ast.LiteralI8:
		return "i8"
	case ast.LiteralU8:
		return "u8"
	case ast.LiteralI16:
		return "i16"
	case ast.LiteralU16:
		return "u16"
	case ast.LiteralI32:
		return "i32"
	case ast.LiteralU32:
		return "u32"
	case ast.LiteralI64:
		return "i64"
	case ast.LiteralU64:
		return "u64"
	case ast.LiteralFloat:
		return "float"
	default:
		return "double"
	}
}

// resolveMemberType resolves `target.name`: the target's type must be
// a class, and name must be one of its fields (including members
// merged in by an extend clause) or one of its own methods.
func (r *Resolver) resolveMemberType(m *tir.Module, access *ast.MemberAccess, scope tir.ScopeLocation) (tir.TypeLocation, bool) {
	targetLoc, ok := r.resolveExprValue(m, access.Target, scope)
	if !ok || int(targetLoc) == tir.Undefined {
		return tir.UndefinedType(), false
	}
	return r.memberOf(targetLoc, access.Name)
}

// memberOf looks up name on the class at classLoc: first among its
// field table (which already contains every extend-contributed
// member), then among its own natively declared methods, which are
// published individually under "<classPath>.<name>" rather than
// merged into the field table.
func (r *Resolver) memberOf(classLoc tir.TypeLocation, name string) (tir.TypeLocation, bool) {
	v, ok := r.ctx.Types.GetAt(classLoc)
	if !ok {
		return tir.UndefinedType(), false
	}
	class, ok := v.(*tir.Class)
	if !ok {
		return tir.UndefinedType(), false
	}
	if ft, ok := class.Fields[name]; ok {
		return ft, true
	}
	if loc, ok := r.ctx.Types.Location(class.Path + "." + name); ok {
		if _, published := r.ctx.Types.GetAt(loc); published {
			return loc, true
		}
	}
	return tir.UndefinedType(), false
}

// calleeSignature is the shape resolveCall needs from either a
// *tir.Function or a *tir.InterfaceMethod, with `this` already
// stripped from Parameters.
type calleeSignature struct {
	Parameters []tir.Param
	Return     tir.TypeLocation
}

func (r *Resolver) resolveCall(m *tir.Module, call *ast.Call, scope tir.ScopeLocation) (tir.TypeLocation, bool) {
	sig, ok := r.resolveCallee(m, call.Callee, scope)
	if !ok {
		return tir.UndefinedType(), false
	}

	if len(sig.Parameters) != len(call.Arguments) {
		r.diags.Add(diagnostics.New(diagnostics.FunctionCallArgumentCountMismatch, call.Sp,
			"expected "+strconv.Itoa(len(sig.Parameters))+" argument(s), found "+strconv.Itoa(len(call.Arguments))))
		return sig.Return, true
	}

	for _, arg := range call.Arguments {
		if !isSupportedArgumentExpr(arg) {
			r.diags.Add(diagnostics.New(diagnostics.UnsupportedArgumentType, arg.Span(),
				"this expression is not supported as a call argument"))
			continue
		}
		r.resolveExprValue(m, arg, scope)
	}
	return sig.Return, true
}

// resolveCallee resolves a call's callee expression to the signature
// it must match: a plain identifier naming a module-local or aliased
// function, or a member access whose target resolves to a class that
// owns (directly or via extend) the named method.
func (r *Resolver) resolveCallee(m *tir.Module, callee ast.Expression, scope tir.ScopeLocation) (calleeSignature, bool) {
	switch c := callee.(type) {
	case *ast.Identifier:
		if _, _, ok := r.ctx.Scopes.Lookup(scope, c.Name); ok {
			// A local variable is never callable in this language.
			return calleeSignature{}, false
		}
		loc, ok := m.Locals[c.Name]
		if !ok {
			if alias, ok := m.Aliases[c.Name]; ok && !alias.IsModule {
				loc = alias.Signature
			} else {
				return calleeSignature{}, false
			}
		}
		sig, ok := r.ctx.AstSignatures.GetAt(loc)
		if !ok || sig.Kind != tir.KindFunction {
			return calleeSignature{}, false
		}
		fnLoc := r.resolveFunctionSignature(sig)
		return r.functionSignature(fnLoc)
	case *ast.MemberAccess:
		targetLoc, ok := r.resolveExprValue(m, c.Target, scope)
		if !ok {
			return calleeSignature{}, false
		}
		memberLoc, ok := r.memberOf(targetLoc, c.Name)
		if !ok {
			return calleeSignature{}, false
		}
		return r.functionSignature(memberLoc)
	default:
		return calleeSignature{}, false
	}
}

func (r *Resolver) functionSignature(loc tir.TypeLocation) (calleeSignature, bool) {
	v, ok := r.ctx.Types.GetAt(loc)
	if !ok {
		return calleeSignature{}, false
	}
	switch fn := v.(type) {
	case *tir.Function:
		return calleeSignature{Parameters: stripThis(fn.Parameters), Return: fn.Return}, true
	case *tir.InterfaceMethod:
		return calleeSignature{Parameters: stripThis(fn.Parameters), Return: fn.Return}, true
	default:
		return calleeSignature{}, false
	}
}

func stripThis(params []tir.Param) []tir.Param {
	if len(params) > 0 && params[0].Name == "this" {
		return params[1:]
	}
	return params
}

// isSupportedArgumentExpr is the fixed set of expression kinds the
// argument-compatibility check understands (§7 unsupported-argument-type).
func isSupportedArgumentExpr(expr ast.Expression) bool {
	switch expr.(type) {
	case *ast.Literal, *ast.Identifier, *ast.This, *ast.MemberAccess, *ast.Call:
		return true
	default:
		return false
	}
}
