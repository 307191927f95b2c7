package tir

import (
	"fmt"
	"strings"

	"github.com/timu-lang/timu/internal/ast"
	"github.com/timu-lang/timu/internal/source"
)

// Registry maps dotted module paths to Modules, creating phantom
// parents on demand (§4.2). Modules are kept in insertion order so
// the resolver can iterate deterministically; recursive cross-module
// references are broken by reservation, not by ordering (§5).
type Registry struct {
	modules map[string]*Module
	order   []string
}

// NewRegistry creates an empty module registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]*Module)}
}

// GetOrCreate returns the module at path, creating it (and every
// missing phantom ancestor) if necessary.
func (r *Registry) GetOrCreate(path string) *Module {
	if m, ok := r.modules[path]; ok {
		return m
	}
	segments := strings.Split(path, ".")
	name := segments[len(segments)-1]
	parent := ""
	if len(segments) > 1 {
		parent = strings.Join(segments[:len(segments)-1], ".")
		parentModule := r.GetOrCreate(parent)
		parentModule.Children[name] = path
	}
	m := newPhantomModule(path, name, parent)
	r.modules[path] = m
	r.order = append(r.order, path)
	return m
}

// Get returns the module at path without creating it.
func (r *Registry) Get(path string) (*Module, bool) {
	m, ok := r.modules[path]
	return m, ok
}

// Ordered returns every module in first-touched order.
func (r *Registry) Ordered() []*Module {
	out := make([]*Module, len(r.order))
	for i, path := range r.order {
		out[i] = r.modules[path]
	}
	return out
}

// RegisterFile upgrades the module at path (creating it if needed)
// with a real File AST. Registering a second file at the same path is
// an ast-module-already-defined error (§7): two files resolving to one
// dotted module path.
func (r *Registry) RegisterFile(path string, file source.FileHandle, fileAst *ast.File) (*Module, error) {
	m := r.GetOrCreate(path)
	if m.IsReal() {
		return m, fmt.Errorf("ast-module-already-defined: %s", path)
	}
	m.IsPhantom = false
	m.File = file
	m.AST = fileAst
	return m, nil
}

// Sibling looks up a top-level module by its first path segment, used
// by step 3 of the type-name resolution algorithm.
func (r *Registry) Sibling(name string) (*Module, bool) {
	m, ok := r.modules[name]
	return m, ok
}
