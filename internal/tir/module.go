package tir

import (
	"github.com/timu-lang/timu/internal/ast"
	"github.com/timu-lang/timu/internal/source"
)

// Module is one entry in the dotted-path module tree. A module may be
// phantom — created purely as a parent container for a dotted
// descendant — until the file at its own path arrives, at which point
// it is upgraded in place without changing identity.
type Module struct {
	Path   string
	Name   string // last path segment
	File   source.FileHandle
	AST    *ast.File
	Parent string // "" for a top-level module

	// Aliases maps a local `use` alias to the module or declaration it
	// was bound to.
	Aliases map[string]Alias
	// Locals maps an unqualified declared name to its AST signature.
	Locals map[string]AstSignatureLocation
	// Types maps an unqualified declared name to its resolved type,
	// once the corresponding pass has published it.
	Types map[string]TypeLocation
	// Extends holds this module's extend declarations directly: they
	// have no name of their own and are never registered as an AST
	// signature (§4.5: "extensions are never importable").
	Extends []*ast.Extend

	Children map[string]string // child simple name -> child dotted path

	IsPhantom bool
	Scope     ScopeLocation

	UsesResolved      bool
	InterfacesResolved bool
	ExtensionsResolved bool
	ClassesResolved    bool
	FunctionsResolved  bool
	BodiesResolved     bool
}

// Alias is a `use` binding's target: either a module (reached via its
// dotted path) or a specific declaration (reached via its AST
// signature handle).
type Alias struct {
	IsModule   bool
	ModulePath string
	Signature  AstSignatureLocation
}

func newPhantomModule(path, name, parent string) *Module {
	return &Module{
		Path:      path,
		Name:      name,
		Parent:    parent,
		File:      source.UndefinedFile,
		Aliases:   make(map[string]Alias),
		Locals:    make(map[string]AstSignatureLocation),
		Types:     make(map[string]TypeLocation),
		Children:  make(map[string]string),
		IsPhantom: true,
		Scope:     UndefinedScope(),
	}
}

// IsReal reports whether this module owns a File AST of its own, as
// opposed to existing only as a phantom parent container.
func (m *Module) IsReal() bool {
	return !m.IsPhantom
}
