package tir

// Type is any resolved TIR type value. The set is closed and switched
// on by concrete kind rather than dispatched through methods, mirroring
// how the resolver treats every AST node category as a tagged variant.
type Type interface {
	typeNode()
}

// PrimitiveKind enumerates the fixed set of built-in primitive types.
type PrimitiveKind int

const (
	I8 PrimitiveKind = iota
	U8
	I16
	U16
	I32
	U32
	I64
	U64
	Float
	Double
	Bool
	String
	Void
)

var primitiveNames = map[string]PrimitiveKind{
	"i8": I8, "u8": U8, "i16": I16, "u16": U16,
	"i32": I32, "u32": U32, "i64": I64, "u64": U64,
	"float": Float, "double": Double, "bool": Bool,
	"string": String, "void": Void,
}

// LookupPrimitive maps a bare name to a primitive kind, used by the
// global primitive type table seeded at context startup.
func LookupPrimitive(name string) (PrimitiveKind, bool) {
	k, ok := primitiveNames[name]
	return k, ok
}

// Primitive is a built-in scalar type.
type Primitive struct {
	Kind PrimitiveKind
}

func (*Primitive) typeNode() {}

// Param is one resolved function/method parameter.
type Param struct {
	Name string
	Type TypeLocation
}

// Class is a resolved class: its field table plus the TypeLocations of
// every extension that was merged into it.
type Class struct {
	Name       string
	Path       string
	Fields     map[string]TypeLocation
	FieldOrder []string
	Extensions []TypeLocation
}

func (*Class) typeNode() {}

// Function is a resolved top-level function or method.
type Function struct {
	IsPublic   bool
	Name       string
	Path       string
	Parameters []Param
	HasThis    bool
	Return     TypeLocation
}

func (*Function) typeNode() {}

// Interface is a resolved interface: its own members plus every
// member inherited transitively from parent interfaces, already
// flattened at publish time.
type Interface struct {
	Name        string
	Path        string
	Members     map[string]TypeLocation
	MemberOrder []string
}

func (*Interface) typeNode() {}

// InterfaceMethod is a signature-only method declared inside an
// interface body (no implementation).
type InterfaceMethod struct {
	Name       string
	Parameters []Param
	Return     TypeLocation
}

func (*InterfaceMethod) typeNode() {}

// ModuleRef is a type value standing in for a module referenced as a
// value (e.g. in a future qualified-access extension); modules
// themselves are always accessible per §4.5.
type ModuleRef struct {
	Path string
}

func (*ModuleRef) typeNode() {}

// Extension is an extend declaration's resolved form: the set of
// interfaces it claims and the members it stages into its target
// class. It is never itself importable (§4.5) and never appears as
// the skeleton-compared value; it exists so the conformance checker
// and the class's Extensions list have something to point at.
type Extension struct {
	TargetPath string
	Interfaces []TypeLocation
	Members    map[string]TypeLocation
}

func (*Extension) typeNode() {}
