package tir

import (
	"fmt"

	"github.com/timu-lang/timu/internal/source"
)

// Local is one variable binding in a scope: its declaration span, its
// resolved type and the modifiers carried on its type-name.
type Local struct {
	Span      source.Span
	Type      TypeLocation
	Nullable  bool
	Reference bool
	ReadOnly  bool
}

// Scope is one name-resolution frame. Scopes form a parent-linked
// tree rather than a stack: creating a child is O(1) and never
// invalidates a live handle to an ancestor (§9).
type Scope struct {
	Module      string
	Parent      ScopeLocation
	CurrentType TypeLocation // the enclosing class, for `this`; Undefined outside a method
	locals      map[string]Local
	order       []string
}

// ScopeArena owns every scope created during a compilation. It is
// append-only: scopes are never freed individually, only dropped en
// masse with the owning TirContext.
type ScopeArena struct {
	scopes []*Scope
}

// NewScopeArena creates an empty arena.
func NewScopeArena() *ScopeArena {
	return &ScopeArena{}
}

// New creates a scope under module, chained to parent (Undefined for
// a module's root scope), with currentType set for method bodies.
func (a *ScopeArena) New(module string, parent ScopeLocation, currentType TypeLocation) ScopeLocation {
	loc := ScopeLocation(len(a.scopes))
	a.scopes = append(a.scopes, &Scope{
		Module:      module,
		Parent:      parent,
		CurrentType: currentType,
		locals:      make(map[string]Local),
	})
	return loc
}

// Get returns the scope for a handle.
func (a *ScopeArena) Get(loc ScopeLocation) *Scope {
	if int(loc) < 0 || int(loc) >= len(a.scopes) {
		return nil
	}
	return a.scopes[loc]
}

// Define binds name in the scope at loc. Redefining a name already
// bound directly in this scope is an error (invariant 6); shadowing a
// binding from an ancestor scope is allowed.
func (a *ScopeArena) Define(loc ScopeLocation, name string, local Local) error {
	s := a.Get(loc)
	if s == nil {
		return fmt.Errorf("undefined scope %d", loc)
	}
	if _, exists := s.locals[name]; exists {
		return fmt.Errorf("variable already defined: %s", name)
	}
	s.locals[name] = local
	s.order = append(s.order, name)
	return nil
}

// IsDefinedLocally reports whether name is bound directly in the
// scope at loc, ignoring ancestors.
func (a *ScopeArena) IsDefinedLocally(loc ScopeLocation, name string) bool {
	s := a.Get(loc)
	if s == nil {
		return false
	}
	_, ok := s.locals[name]
	return ok
}

// Lookup walks loc and its ancestors for name, returning the nearest
// binding (child wins over parent, per shadowing rules).
func (a *ScopeArena) Lookup(loc ScopeLocation, name string) (Local, ScopeLocation, bool) {
	for cur := loc; int(cur) >= 0; {
		s := a.Get(cur)
		if s == nil {
			break
		}
		if local, ok := s.locals[name]; ok {
			return local, cur, true
		}
		cur = s.Parent
	}
	return Local{}, UndefinedScope(), false
}

// CurrentTypeOf walks loc and its ancestors for the nearest enclosing
// CurrentType, used to resolve `this` inside nested block scopes.
func (a *ScopeArena) CurrentTypeOf(loc ScopeLocation) TypeLocation {
	for cur := loc; int(cur) >= 0; {
		s := a.Get(cur)
		if s == nil {
			break
		}
		if int(s.CurrentType) != Undefined {
			return s.CurrentType
		}
		cur = s.Parent
	}
	return UndefinedType()
}
