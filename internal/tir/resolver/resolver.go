// Package resolver drives the multi-pass semantic analysis that turns
// registered AST signatures into the resolved TIR (§4.3). Pass order
// within a module is fixed: uses, interfaces, extensions, classes,
// functions, bodies. Across modules, any order works because
// cross-references are broken by the signature table's reserve step,
// not by iteration order (§5).
package resolver

import (
	"strings"

	"github.com/timu-lang/timu/internal/ast"
	"github.com/timu-lang/timu/internal/diagnostics"
	"github.com/timu-lang/timu/internal/tir"
)

// Resolver holds the demand-resolution guards that let a forward
// reference (e.g. a field of class A naming class B before B's own
// turn in the classes pass) trigger B's resolution early without
// resolving it twice.
type Resolver struct {
	ctx   *tir.Context
	diags *diagnostics.Collection

	classStarted     map[string]bool
	interfaceStarted map[string]bool
	functionStarted  map[string]bool

	// classScopes holds each class's root scope (keyed by its
	// declaration path) so the extensions pass can define the
	// variables it merges into the same scope its own fields live in.
	classScopes map[string]tir.ScopeLocation

	pendingBodies []pendingBody
}

type pendingBody struct {
	module *tir.Module
	fn     *ast.Function
	scope  tir.ScopeLocation
	path   string
}

// Resolve runs every pass over every module already registered in
// ctx.Modules (via Context.Modules.RegisterFile) and returns the
// diagnostics collected, which is empty on a fully successful build.
func Resolve(ctx *tir.Context) *diagnostics.Collection {
	r := &Resolver{
		ctx:              ctx,
		diags:            ctx.Diagnostics,
		classStarted:     make(map[string]bool),
		interfaceStarted: make(map[string]bool),
		functionStarted:  make(map[string]bool),
		classScopes:      make(map[string]tir.ScopeLocation),
	}
	r.registerSignatures()
	r.resolveUses()
	r.resolveInterfaces()
	r.resolveExtensions()
	r.resolveClasses()
	r.resolveFunctions()
	r.resolveBodies()
	return r.diags
}

func parentPath(path string) string {
	i := strings.LastIndex(path, ".")
	if i < 0 {
		return ""
	}
	return path[:i]
}

// registerSignatures is pass 1: for every real module, walk its
// top-level items and register an AST signature under
// "<modulepath>.<name>". Extend declarations have no name and are
// kept directly on the module instead.
func (r *Resolver) registerSignatures() {
	for _, m := range r.ctx.Modules.Ordered() {
		if !m.IsReal() {
			continue
		}
		for _, stmt := range m.AST.Statements {
			switch s := stmt.(type) {
			case *ast.Class:
				r.register(m, s.Name, tir.KindClass, s)
			case *ast.Interface:
				r.register(m, s.Name, tir.KindInterface, s)
			case *ast.Function:
				r.register(m, s.Name, tir.KindFunction, s)
			case *ast.Extend:
				m.Extends = append(m.Extends, s)
			case *ast.Use:
				// resolved in pass 2
			}
		}
	}
}

func (r *Resolver) register(m *tir.Module, name string, kind tir.Kind, node ast.Statement) {
	path := m.Path + "." + name
	sig := &tir.AstSignature{Path: path, Name: name, Kind: kind, Node: node, File: m.File, Span: node.Span()}
	loc, err := r.ctx.AstSignatures.Add(sig)
	if err != nil {
		existing, _ := r.ctx.AstSignatures.Get(path)
		d := diagnostics.New(diagnostics.AlreadyDefined, node.Span(), "\""+name+"\" is already defined in this module")
		if existing != nil {
			d = d.WithLabel(existing.Span, "previously defined here")
		}
		r.diags.Add(d)
		return
	}
	m.Locals[name] = loc
}
