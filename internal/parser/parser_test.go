package parser_test

import (
	"reflect"
	"testing"

	"github.com/timu-lang/timu/internal/ast"
	"github.com/timu-lang/timu/internal/parser"
	"github.com/timu-lang/timu/internal/prettyprinter"
	"github.com/timu-lang/timu/internal/source"
)

func mustParse(t *testing.T, input string) *ast.File {
	t.Helper()
	sm := source.NewMap()
	handle := sm.Add("test", input)
	f, err := parser.Parse(handle, "test", input)
	if err != nil {
		t.Fatalf("parse error: %s", err.Error())
	}
	return f
}

func TestParseClassWithFieldsAndMethods(t *testing.T) {
	f := mustParse(t, `
pub class Point {
    pub x: i32;
    pub y: i32;
    func length(this): double {}
}
`)
	if len(f.Statements) != 1 {
		t.Fatalf("expected 1 top-level statement, got %d", len(f.Statements))
	}
	class, ok := f.Statements[0].(*ast.Class)
	if !ok {
		t.Fatalf("expected a Class, got %T", f.Statements[0])
	}
	if !class.Public {
		t.Errorf("expected class to be public")
	}
	if len(class.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(class.Fields))
	}
	if len(class.Methods) != 1 {
		t.Fatalf("expected 1 method, got %d", len(class.Methods))
	}
	if !class.Methods[0].HasThis() {
		t.Errorf("expected length() to carry a this receiver")
	}
}

func TestParseInterfaceWithParents(t *testing.T) {
	f := mustParse(t, `
interface Shape: Named, Sized {
    func area(): double;
}
`)
	iface := f.Statements[0].(*ast.Interface)
	if len(iface.Parents) != 2 {
		t.Fatalf("expected 2 parent interfaces, got %d", len(iface.Parents))
	}
	if iface.Parents[0].Dotted() != "Named" || iface.Parents[1].Dotted() != "Sized" {
		t.Errorf("unexpected parent names: %v", iface.Parents)
	}
}

func TestParseExtendWithMultipleInterfaces(t *testing.T) {
	f := mustParse(t, `
extend Point: Shape, Named {
    func area(): double {}
}
`)
	extend := f.Statements[0].(*ast.Extend)
	if extend.Target.Dotted() != "Point" {
		t.Errorf("expected target Point, got %s", extend.Target.Dotted())
	}
	if len(extend.Interfaces) != 2 {
		t.Fatalf("expected 2 interfaces, got %d", len(extend.Interfaces))
	}
}

func TestParseUseWithAlias(t *testing.T) {
	f := mustParse(t, `use pkg.sub.Thing as T;`)
	use := f.Statements[0].(*ast.Use)
	if use.AliasOrLast() != "T" {
		t.Errorf("expected alias T, got %s", use.AliasOrLast())
	}
	if use.Path[0] != "pkg" || use.Path[2] != "Thing" {
		t.Errorf("unexpected path: %v", use.Path)
	}
}

func TestParseNullableAndReferenceTypeName(t *testing.T) {
	f := mustParse(t, `class C { f: ?&pkg.Thing; }`)
	class := f.Statements[0].(*ast.Class)
	tn := class.Fields[0].Type
	if !tn.Nullable || !tn.Reference {
		t.Errorf("expected nullable+reference type name, got %+v", tn)
	}
	if tn.Dotted() != "pkg.Thing" {
		t.Errorf("expected dotted name pkg.Thing, got %s", tn.Dotted())
	}
}

func TestParseIfElseChain(t *testing.T) {
	f := mustParse(t, `
func f(): void {
    if (true) {
        var x: bool = true;
    } else if (false) {
        var y: bool = false;
    } else {
        var z: bool = true;
    }
}
`)
	fn := f.Statements[0].(*ast.Function)
	ifStmt := fn.Body[0].(*ast.If)
	if ifStmt.ElseIf == nil {
		t.Fatalf("expected an else-if branch")
	}
	if ifStmt.ElseIf.Else == nil {
		t.Fatalf("expected a final else branch")
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	f := mustParse(t, `
func f(): void {
    var x: bool = 1 + 2 * 3 == 7 && true;
}
`)
	fn := f.Statements[0].(*ast.Function)
	decl := fn.Body[0].(*ast.VarDecl)
	top, ok := decl.Value.(*ast.Binary)
	if !ok || top.Operator != ast.OpAnd {
		t.Fatalf("expected top-level && binary, got %#v", decl.Value)
	}
	eq, ok := top.Left.(*ast.Binary)
	if !ok || eq.Operator != ast.OpEq {
		t.Fatalf("expected == under &&, got %#v", top.Left)
	}
	add, ok := eq.Left.(*ast.Binary)
	if !ok || add.Operator != ast.OpAdd {
		t.Fatalf("expected + under ==, got %#v", eq.Left)
	}
	mul, ok := add.Right.(*ast.Binary)
	if !ok || mul.Operator != ast.OpMul {
		t.Fatalf("expected * to bind tighter than +, got %#v", add.Right)
	}
}

func TestParseCallChain(t *testing.T) {
	f := mustParse(t, `
func f(): void {
    this.helper(a, b).chained();
}
`)
	fn := f.Statements[0].(*ast.Function)
	stmt := fn.Body[0].(*ast.ExprStatement)
	outer, ok := stmt.Value.(*ast.Call)
	if !ok {
		t.Fatalf("expected outer Call, got %#v", stmt.Value)
	}
	member, ok := outer.Callee.(*ast.MemberAccess)
	if !ok || member.Name != "chained" {
		t.Fatalf("expected outer callee .chained, got %#v", outer.Callee)
	}
	inner, ok := member.Target.(*ast.Call)
	if !ok || len(inner.Arguments) != 2 {
		t.Fatalf("expected inner call with 2 arguments, got %#v", member.Target)
	}
}

func TestNumericLiteralSuffixInference(t *testing.T) {
	cases := []struct {
		lexeme string
		kind   ast.LiteralKind
	}{
		{"42", ast.LiteralI32},
		{"42i8", ast.LiteralI8},
		{"10u8", ast.LiteralU8},
		{"7i16", ast.LiteralI16},
		{"7u16", ast.LiteralU16},
		{"1u32", ast.LiteralU32},
		{"9i64", ast.LiteralI64},
		{"9u64", ast.LiteralU64},
		{"3.14", ast.LiteralDouble},
		{"3.14f", ast.LiteralFloat},
		{"2.0d", ast.LiteralDouble},
	}
	for _, c := range cases {
		f := mustParse(t, "func f(): void { var x = "+c.lexeme+"; }")
		fn := f.Statements[0].(*ast.Function)
		decl := fn.Body[0].(*ast.VarDecl)
		lit, ok := decl.Value.(*ast.Literal)
		if !ok {
			t.Fatalf("%s: expected a literal, got %#v", c.lexeme, decl.Value)
		}
		if lit.Kind != c.kind {
			t.Errorf("%s: expected kind %d, got %d", c.lexeme, c.kind, lit.Kind)
		}
		if lit.Text != c.lexeme {
			t.Errorf("%s: expected text preserved, got %q", c.lexeme, lit.Text)
		}
	}
}

func TestParseUnterminatedClassIsAParseError(t *testing.T) {
	sm := source.NewMap()
	handle := sm.Add("bad", "class C {")
	_, err := parser.Parse(handle, "bad", "class C {")
	if err == nil {
		t.Fatalf("expected a parse error for an unterminated class body")
	}
}

// Round-trip: parse, pretty-print, re-parse must yield an AST with the
// same statement shape (§8).
func TestRoundTripClassAndFunction(t *testing.T) {
	input := `
pub class Point {
    pub x: i32;
    func len(this): double {
        var total: double = 0.0d;
        if (true) {
            total = total;
        }
    }
}
`
	f := mustParse(t, input)
	printer := prettyprinter.New()
	printer.File(f)
	printed := printer.String()

	reparsed := mustParse(t, printed)
	if len(reparsed.Statements) != len(f.Statements) {
		t.Fatalf("round-trip changed statement count: %d vs %d", len(reparsed.Statements), len(f.Statements))
	}
	origClass := f.Statements[0].(*ast.Class)
	roundClass := reparsed.Statements[0].(*ast.Class)
	if origClass.Name != roundClass.Name {
		t.Errorf("round-trip changed class name: %s vs %s", origClass.Name, roundClass.Name)
	}
	if !reflect.DeepEqual(fieldNames(origClass), fieldNames(roundClass)) {
		t.Errorf("round-trip changed field names: %v vs %v", fieldNames(origClass), fieldNames(roundClass))
	}
	if len(origClass.Methods) != len(roundClass.Methods) {
		t.Errorf("round-trip changed method count: %d vs %d", len(origClass.Methods), len(roundClass.Methods))
	}
}

func fieldNames(c *ast.Class) []string {
	names := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		names[i] = f.Name
	}
	return names
}
