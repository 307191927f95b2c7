// Package diagnostics models compiler errors as structured values
// instead of formatted strings, so a caller can inspect a kind, walk
// labeled spans, or render a collection without re-parsing text.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/timu-lang/timu/internal/source"
)

// Code is a stable, enumerated error kind.
type Code string

const (
	ImportNotFound                     Code = "import-not-found"
	ModuleAlreadyImported              Code = "module-already-imported"
	AlreadyDefined                     Code = "already-defined"
	TypeNotFound                       Code = "type-not-found"
	InvalidType                        Code = "invalid-type"
	InterfaceFieldNotDefined           Code = "interface-field-not-defined"
	ExtraFieldInExtend                 Code = "extra-field-in-extend"
	TypesDoNotMatch                    Code = "types-do-not-match"
	ExtraAccessibilityIdentifier       Code = "extra-accessibility-identifier"
	AccessibilityViolation             Code = "accessibility-violation"
	ThisNotInClass                     Code = "this-not-in-class"
	FunctionCallArgumentCountMismatch  Code = "function-call-argument-count-mismatch"
	UnsupportedArgumentType            Code = "unsupported-argument-type"
	VariableAlreadyDefined             Code = "variable-already-defined"
	AstModuleAlreadyDefined            Code = "ast-module-already-defined"
	ModuleAlreadyDefined               Code = "module-already-defined"
)

// Label is a secondary span with its own message, e.g. "previously
// defined here".
type Label struct {
	Span    source.Span
	Message string
}

// Diagnostic is one structured error. Nested carries optional
// sub-diagnostics attached with WithNested; the resolver adds its
// diagnostics, conformance failures included, to a Collection one by
// one and does not nest them.
type Diagnostic struct {
	Code    Code
	Message string
	Primary source.Span
	Labels  []Label
	Help    string
	Nested  []*Diagnostic
}

// New creates a Diagnostic anchored at primary with message.
func New(code Code, primary source.Span, message string) *Diagnostic {
	return &Diagnostic{Code: code, Primary: primary, Message: message}
}

// WithLabel appends a secondary labeled span and returns the receiver
// for chaining.
func (d *Diagnostic) WithLabel(span source.Span, message string) *Diagnostic {
	d.Labels = append(d.Labels, Label{Span: span, Message: message})
	return d
}

// WithHelp attaches advice text and returns the receiver for chaining.
func (d *Diagnostic) WithHelp(help string) *Diagnostic {
	d.Help = help
	return d
}

// WithNested attaches sub-diagnostics and returns the receiver for
// chaining.
func (d *Diagnostic) WithNested(nested ...*Diagnostic) *Diagnostic {
	d.Nested = append(d.Nested, nested...)
	return d
}

func (d *Diagnostic) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", d.Code, d.Message)
	for _, l := range d.Labels {
		fmt.Fprintf(&b, "\n  %s: %s", l.Span, l.Message)
	}
	for _, n := range d.Nested {
		fmt.Fprintf(&b, "\n  - %s", n.Error())
	}
	return b.String()
}

// Collection is an ordered bag of diagnostics, returned by passes that
// gather unrelated failures instead of aborting on the first one. ID
// mirrors the tir.Context.ID of the Build call that produced it, so a
// host can correlate a returned Collection back to a specific
// compilation without threading an extra parameter through.
type Collection struct {
	ID    uuid.UUID
	Items []*Diagnostic
}

// NewCollection creates an empty diagnostic bag carrying a fresh id.
func NewCollection() *Collection {
	return &Collection{ID: uuid.New()}
}

// NewCollectionFor creates an empty diagnostic bag carrying the given
// session id, so it can be correlated back to the Context it was
// collected for.
func NewCollectionFor(id uuid.UUID) *Collection {
	return &Collection{ID: id}
}

// Add appends a diagnostic to the bag.
func (c *Collection) Add(d *Diagnostic) {
	if d == nil {
		return
	}
	c.Items = append(c.Items, d)
}

// HasErrors reports whether anything has been collected.
func (c *Collection) HasErrors() bool {
	return len(c.Items) > 0
}

// AsError returns the collection as an error, or nil if it is empty —
// the shape `build(files)` returns through the public API.
func (c *Collection) AsError() error {
	if !c.HasErrors() {
		return nil
	}
	return c
}

func (c *Collection) Error() string {
	parts := make([]string, len(c.Items))
	for i, d := range c.Items {
		parts[i] = d.Error()
	}
	return strings.Join(parts, "\n")
}
