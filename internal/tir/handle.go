// Package tir builds the Typed Intermediate Representation: resolved
// types, module registry and scope tree that the resolver produces
// from parsed files.
package tir

// AstSignatureLocation is a stable handle into the AST signature
// arena — a registered, unresolved declaration name.
type AstSignatureLocation int

// TypeLocation is a stable handle into the resolved-type arena. It
// never moves once assigned, even across a reserve -> publish
// transition.
type TypeLocation int

// ScopeLocation is a stable handle into the scope arena.
type ScopeLocation int

// ObjectLocation is a stable handle into the interned primitive
// constant table.
type ObjectLocation int

// Undefined is the sentinel value shared by every handle kind.
const Undefined = -1

func UndefinedAstSignature() AstSignatureLocation { return AstSignatureLocation(Undefined) }
func UndefinedType() TypeLocation                 { return TypeLocation(Undefined) }
func UndefinedScope() ScopeLocation               { return ScopeLocation(Undefined) }
func UndefinedObject() ObjectLocation             { return ObjectLocation(Undefined) }
