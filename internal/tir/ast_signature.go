package tir

import (
	"fmt"

	"github.com/timu-lang/timu/internal/ast"
	"github.com/timu-lang/timu/internal/source"
)

// AstSignature is a registered, not-yet-resolved declaration: the raw
// AST node plus enough addressing metadata to reach it again by path.
type AstSignature struct {
	Path string
	Name string
	Kind Kind
	Node ast.Statement
	File source.FileHandle
	Span source.Span
}

// AstSignatureTable registers every top-level declaration under its
// dotted path exactly once (pass 1, §4.3); later passes consume it to
// build resolved types.
type AstSignatureTable struct {
	byPath map[string]AstSignatureLocation
	arena  []*AstSignature
}

// NewAstSignatureTable creates an empty table.
func NewAstSignatureTable() *AstSignatureTable {
	return &AstSignatureTable{byPath: make(map[string]AstSignatureLocation)}
}

// Add registers a new AST signature under path. A second registration
// under the same path is always an error — callers recover it as an
// "already defined" diagnostic carrying both spans.
func (t *AstSignatureTable) Add(sig *AstSignature) (AstSignatureLocation, error) {
	if existing, exists := t.byPath[sig.Path]; exists {
		return existing, fmt.Errorf("already defined: %s", sig.Path)
	}
	loc := AstSignatureLocation(len(t.arena))
	t.arena = append(t.arena, sig)
	t.byPath[sig.Path] = loc
	return loc, nil
}

// Get returns the signature registered under path.
func (t *AstSignatureTable) Get(path string) (*AstSignature, bool) {
	loc, ok := t.byPath[path]
	if !ok {
		return nil, false
	}
	return t.GetAt(loc)
}

// GetAt returns the signature for a handle. Handles are stable: the
// same handle always dereferences to the same node (testable property
// in §8).
func (t *AstSignatureTable) GetAt(loc AstSignatureLocation) (*AstSignature, bool) {
	if int(loc) < 0 || int(loc) >= len(t.arena) {
		return nil, false
	}
	return t.arena[loc], true
}

// Location returns the handle registered under path.
func (t *AstSignatureTable) Location(path string) (AstSignatureLocation, bool) {
	loc, ok := t.byPath[path]
	return loc, ok
}
