package tir

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/timu-lang/timu/internal/diagnostics"
	"github.com/timu-lang/timu/internal/source"
)

// Context is the single root state for one compilation (§3, §5). Every
// pass receives it explicitly; there are no package-level globals.
type Context struct {
	ID uuid.UUID

	Sources       *source.Map
	AstSignatures *AstSignatureTable
	Types         *Table
	Scopes        *ScopeArena
	Modules       *Registry
	Objects       *ObjectTable
	Diagnostics   *diagnostics.Collection

	tmpCounter int
}

// NewContext creates an empty Context over sources, with the standard
// primitive types already seeded into the type table (§9: "standard
// primitive types are seeded at startup").
func NewContext(sources *source.Map) *Context {
	id := uuid.New()
	ctx := &Context{
		ID:            id,
		Sources:       sources,
		AstSignatures: NewAstSignatureTable(),
		Types:         NewTable(),
		Scopes:        NewScopeArena(),
		Modules:       NewRegistry(),
		Objects:       NewObjectTable(),
		Diagnostics:   diagnostics.NewCollectionFor(id),
	}
	ctx.seedPrimitives()
	return ctx
}

func (ctx *Context) seedPrimitives() {
	for name, kind := range primitiveNames {
		// Add is single-step: primitive bodies are fully known up front,
		// there is nothing to reserve.
		if _, err := ctx.Types.Add(name, name, KindPrimitive, &Primitive{Kind: kind}); err != nil {
			panic(err) // seeding is internal and must never collide
		}
	}
}

// TempName returns a fresh synthetic name, e.g. for a scope created
// without a user-visible binding.
func (ctx *Context) TempName(prefix string) string {
	ctx.tmpCounter++
	return prefix + "$" + strconv.Itoa(ctx.tmpCounter)
}

// ModuleScope returns m's root scope, creating it on first use.
func (ctx *Context) ModuleScope(m *Module) ScopeLocation {
	if int(m.Scope) == Undefined {
		m.Scope = ctx.Scopes.New(m.Path, UndefinedScope(), UndefinedType())
	}
	return m.Scope
}

// GetAstSignature is the public query `get_ast_signature(path)` (§6).
func (ctx *Context) GetAstSignature(path string) (*AstSignature, bool) {
	return ctx.AstSignatures.Get(path)
}

// TypeOf is the public query `types.get(path)` (§6).
func (ctx *Context) TypeOf(path string) (Type, bool) {
	return ctx.Types.Get(path)
}

// ModuleMap is the public query `modules` — the full set of modules
// and their imports (§6).
func (ctx *Context) ModuleMap() map[string]*Module {
	out := make(map[string]*Module, len(ctx.Modules.order))
	for _, m := range ctx.Modules.Ordered() {
		out[m.Path] = m
	}
	return out
}
