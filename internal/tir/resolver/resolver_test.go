package resolver_test

import (
	"strings"
	"testing"

	"github.com/timu-lang/timu/internal/diagnostics"
	"github.com/timu-lang/timu/internal/parser"
	"github.com/timu-lang/timu/internal/source"
	"github.com/timu-lang/timu/internal/tir"
	"github.com/timu-lang/timu/internal/tir/resolver"
)

// buildModules parses every named source and runs the resolver over
// all of them in one compilation, returning the collected diagnostics
// (empty on success) and the resulting Context for further assertions.
func buildModules(t *testing.T, sources map[string]string) (*tir.Context, *diagnostics.Collection) {
	t.Helper()
	pairs := make([][2]string, 0, len(sources))
	for path, text := range sources {
		pairs = append(pairs, [2]string{path, text})
	}
	return buildModulesOrdered(t, pairs)
}

// buildModulesOrdered is buildModules with an explicit registration
// order, used to exercise the order-invariance property (§8) against
// a deliberately chosen permutation rather than Go's randomized map
// iteration.
func buildModulesOrdered(t *testing.T, pairs [][2]string) (*tir.Context, *diagnostics.Collection) {
	t.Helper()
	sm := source.NewMap()
	ctx := tir.NewContext(sm)

	for _, pair := range pairs {
		path, text := pair[0], pair[1]
		handle := sm.Add(path, text)
		fileAst, perr := parser.Parse(handle, path, text)
		if perr != nil {
			t.Fatalf("parse %s: %s", path, perr.Error())
		}
		if _, err := ctx.Modules.RegisterFile(path, handle, fileAst); err != nil {
			t.Fatalf("register %s: %s", path, err)
		}
	}

	diags := resolver.Resolve(ctx)
	return ctx, diags
}

func findCode(diags *diagnostics.Collection, code diagnostics.Code) *diagnostics.Diagnostic {
	for _, d := range diags.Items {
		if d.Code == code {
			return d
		}
	}
	return nil
}

func expectNoErrors(t *testing.T, diags *diagnostics.Collection) {
	t.Helper()
	if diags.HasErrors() {
		t.Fatalf("expected no diagnostics, got:\n%s", diags.Error())
	}
}

func expectError(t *testing.T, diags *diagnostics.Collection, code diagnostics.Code) *diagnostics.Diagnostic {
	t.Helper()
	d := findCode(diags, code)
	if d == nil {
		t.Fatalf("expected diagnostic %s, got:\n%s", code, diags.Error())
	}
	return d
}

// S1 — private class rejected.
func TestPrivateClassRejected(t *testing.T) {
	_, diags := buildModules(t, map[string]string{
		"lib":  "class Priv {}",
		"main": "use lib.Priv;",
	})
	d := expectError(t, diags, diagnostics.AccessibilityViolation)
	if !strings.Contains(d.Message, "Priv") {
		t.Errorf("expected message to mention Priv, got %q", d.Message)
	}
	if len(d.Labels) == 0 {
		t.Errorf("expected a secondary label pointing at the declaration site")
	}
}

// S2 — public class accepted.
func TestPublicClassAccepted(t *testing.T) {
	ctx, diags := buildModules(t, map[string]string{
		"lib":  "pub class Pub {}",
		"main": "use lib.Pub;",
	})
	expectNoErrors(t, diags)
	if _, ok := ctx.GetAstSignature("lib.Pub"); !ok {
		t.Errorf("expected lib.Pub to be a registered AST signature")
	}
}

// S3 — interface conformance success.
func TestInterfaceConformanceSuccess(t *testing.T) {
	src := `
interface I {
    func f(): string;
    a: string;
}
extend C: I {
    func f(): string {}
    a: string;
}
class C {}
`
	ctx, diags := buildModules(t, map[string]string{"m": src})
	expectNoErrors(t, diags)

	v, ok := ctx.TypeOf("m.C")
	if !ok {
		t.Fatalf("expected m.C to be resolved")
	}
	class, ok := v.(*tir.Class)
	if !ok {
		t.Fatalf("expected m.C to resolve to a Class, got %T", v)
	}
	if _, ok := class.Fields["f"]; !ok {
		t.Errorf("expected class C to have field f merged in from extend")
	}
	if _, ok := class.Fields["a"]; !ok {
		t.Errorf("expected class C to have field a merged in from extend")
	}
	if len(class.Extensions) != 1 {
		t.Fatalf("expected class C to carry one extension, got %d", len(class.Extensions))
	}
}

// S4 — extra member rejected.
func TestExtraMemberRejected(t *testing.T) {
	src := `
interface I {
    func f(): string;
    a: string;
}
extend C: I {
    func f(): string {}
    a: string;
    b: string;
}
class C {}
`
	_, diags := buildModules(t, map[string]string{"m": src})
	d := expectError(t, diags, diagnostics.ExtraFieldInExtend)
	if !strings.Contains(d.Message, "b") {
		t.Errorf("expected message to mention b, got %q", d.Message)
	}
}

// S5 — missing member rejected.
func TestMissingMemberRejected(t *testing.T) {
	src := `
interface I {
    func f(): string;
    a: string;
}
extend C: I {
    func f(): string {}
}
class C {}
`
	_, diags := buildModules(t, map[string]string{"m": src})
	expectError(t, diags, diagnostics.InterfaceFieldNotDefined)
}

// S6 — mutual class reference via reservation.
func TestMutualClassReference(t *testing.T) {
	src := `
class A { b: B; }
class B { a: A; }
`
	ctx, diags := buildModules(t, map[string]string{"m": src})
	expectNoErrors(t, diags)

	av, _ := ctx.TypeOf("m.A")
	bv, _ := ctx.TypeOf("m.B")
	a, ok := av.(*tir.Class)
	if !ok {
		t.Fatalf("expected m.A to be a Class")
	}
	b, ok := bv.(*tir.Class)
	if !ok {
		t.Fatalf("expected m.B to be a Class")
	}
	bLoc, _ := ctx.Types.Location("m.B")
	aLoc, _ := ctx.Types.Location("m.A")
	if a.Fields["b"] != bLoc {
		t.Errorf("expected A.b to hold B's stable handle")
	}
	if b.Fields["a"] != aLoc {
		t.Errorf("expected B.a to hold A's stable handle")
	}
}

// S7 — alias preservation.
func TestAliasPreservation(t *testing.T) {
	ctx, diags := buildModules(t, map[string]string{
		"lib":  "pub class T {}",
		"main": "use lib.T as X; func f(a: X): X {}",
	})
	expectNoErrors(t, diags)

	libT, ok := ctx.Types.Location("lib.T")
	if !ok {
		t.Fatalf("expected lib.T to be registered")
	}
	fnValue, ok := ctx.TypeOf("main.f")
	if !ok {
		t.Fatalf("expected main.f to be resolved")
	}
	fn := fnValue.(*tir.Function)
	if fn.Parameters[0].Type != libT {
		t.Errorf("expected parameter a to resolve to lib.T's handle")
	}
	if fn.Return != libT {
		t.Errorf("expected return type to resolve to lib.T's handle")
	}
}

// already-defined carries both spans.
func TestAlreadyDefinedCarriesBothSpans(t *testing.T) {
	src := `
class A {}
class A {}
`
	_, diags := buildModules(t, map[string]string{"m": src})
	d := expectError(t, diags, diagnostics.AlreadyDefined)
	if len(d.Labels) == 0 {
		t.Errorf("expected already-defined to carry the original declaration as a label")
	}
}

// Empty interface: conformance requires no members.
func TestEmptyInterfaceConformance(t *testing.T) {
	src := `
interface Empty {}
extend C: Empty {}
class C {}
`
	_, diags := buildModules(t, map[string]string{"m": src})
	expectNoErrors(t, diags)
}

// Interface with parent interfaces: a member declared only in a
// parent must still be present in the extension.
func TestParentInterfaceMemberRequired(t *testing.T) {
	src := `
interface Parent {
    a: string;
}
interface Child: Parent {
    b: string;
}
extend C: Child {
    b: string;
}
class C {}
`
	_, diags := buildModules(t, map[string]string{"m": src})
	expectError(t, diags, diagnostics.InterfaceFieldNotDefined)
}

func TestParentInterfaceMemberSatisfied(t *testing.T) {
	src := `
interface Parent {
    a: string;
}
interface Child: Parent {
    b: string;
}
extend C: Child {
    a: string;
    b: string;
}
class C {}
`
	_, diags := buildModules(t, map[string]string{"m": src})
	expectNoErrors(t, diags)
}

// Multiple extensions on one class each implementing a different
// interface: duplicate method names across extensions of the same
// class are already-defined (methods are registered as independent
// TypeLocations per extend, so the second declaration collides).
func TestDuplicateExtensionMethodsRejected(t *testing.T) {
	src := `
interface I1 { func f(): string; }
interface I2 { func f(): string; }
extend C: I1 { func f(): string {} }
extend C: I2 { func f(): string {} }
class C {}
`
	_, diags := buildModules(t, map[string]string{"m": src})
	expectError(t, diags, diagnostics.AlreadyDefined)
}

// Duplicate field names across two extensions of one class are
// already-defined, not silently merged.
func TestDuplicateExtensionFieldsRejected(t *testing.T) {
	src := `
interface I1 { a: string; }
interface I2 { a: string; }
extend C: I1 { a: string; }
extend C: I2 { a: string; }
class C {}
`
	_, diags := buildModules(t, map[string]string{"m": src})
	expectError(t, diags, diagnostics.AlreadyDefined)
}

// An interface method declared with a `this` receiver is satisfied by
// an extension method carrying one: the receiver slot is positional,
// not part of the compared shape.
func TestConformanceWithThisReceiver(t *testing.T) {
	src := `
interface I { func f(this): string; }
extend C: I { func f(this): string {} }
class C {}
`
	_, diags := buildModules(t, map[string]string{"m": src})
	expectNoErrors(t, diags)
}

// this-not-in-class.
func TestThisNotInClassRejected(t *testing.T) {
	src := `func f(this): void {}`
	_, diags := buildModules(t, map[string]string{"m": src})
	expectError(t, diags, diagnostics.ThisNotInClass)
}

// this-not-in-class also fires for a `this` parameter that isn't
// first in a top-level function's parameter list.
func TestThisNotInClassRejectedNonFirstPosition(t *testing.T) {
	src := `func f(a: string, this): void {}`
	_, diags := buildModules(t, map[string]string{"m": src})
	expectError(t, diags, diagnostics.ThisNotInClass)
}

// extra-accessibility-identifier: pub on an interface member.
func TestPubOnInterfaceMemberRejected(t *testing.T) {
	src := `interface I { pub a: string; }`
	_, diags := buildModules(t, map[string]string{"m": src})
	expectError(t, diags, diagnostics.ExtraAccessibilityIdentifier)
}

// extra-accessibility-identifier: pub on an interface method.
func TestPubOnInterfaceMethodRejected(t *testing.T) {
	src := `interface I { pub func f(): void; }`
	_, diags := buildModules(t, map[string]string{"m": src})
	expectError(t, diags, diagnostics.ExtraAccessibilityIdentifier)
}

// extra-accessibility-identifier: pub on an extend method.
func TestPubOnExtendMethodRejected(t *testing.T) {
	src := `
interface I { func f(): void; }
extend C: I { pub func f(): void {} }
class C {}
`
	_, diags := buildModules(t, map[string]string{"m": src})
	expectError(t, diags, diagnostics.ExtraAccessibilityIdentifier)
}

// extra-accessibility-identifier: pub on an extend member.
func TestPubOnExtendMemberRejected(t *testing.T) {
	src := `
interface I {}
extend C: I { pub a: string; }
class C {}
`
	_, diags := buildModules(t, map[string]string{"m": src})
	expectError(t, diags, diagnostics.ExtraAccessibilityIdentifier)
}

// import-not-found.
func TestImportNotFoundRejected(t *testing.T) {
	_, diags := buildModules(t, map[string]string{
		"main": "use nope.Thing;",
	})
	expectError(t, diags, diagnostics.ImportNotFound)
}

// module-already-imported.
func TestModuleAlreadyImportedRejected(t *testing.T) {
	_, diags := buildModules(t, map[string]string{
		"lib":  "pub class A {} pub class B {}",
		"main": "use lib.A; use lib.B as A;",
	})
	expectError(t, diags, diagnostics.ModuleAlreadyImported)
}

// type-not-found.
func TestTypeNotFoundRejected(t *testing.T) {
	src := `class C { f: Nope; }`
	_, diags := buildModules(t, map[string]string{"m": src})
	expectError(t, diags, diagnostics.TypeNotFound)
}

// invalid-type: a function used as a type.
func TestFunctionUsedAsTypeRejected(t *testing.T) {
	src := `
func f(): void {}
class C { g: f; }
`
	_, diags := buildModules(t, map[string]string{"m": src})
	expectError(t, diags, diagnostics.InvalidType)
}

// variable-already-defined within one scope.
func TestVariableAlreadyDefinedRejected(t *testing.T) {
	src := `
func f(): void {
    var x: bool = true;
    var x: bool = false;
}
`
	_, diags := buildModules(t, map[string]string{"m": src})
	expectError(t, diags, diagnostics.VariableAlreadyDefined)
}

// Shadowing in a nested if-branch is allowed.
func TestShadowingInNestedScopeAllowed(t *testing.T) {
	src := `
func f(): void {
    var x: bool = true;
    if (x) {
        var x: bool = false;
    }
}
`
	_, diags := buildModules(t, map[string]string{"m": src})
	expectNoErrors(t, diags)
}

// function-call-argument-count-mismatch.
func TestFunctionCallArityMismatchRejected(t *testing.T) {
	src := `
func g(a: bool): void {}
func f(): void {
    g(true, false);
}
`
	_, diags := buildModules(t, map[string]string{"m": src})
	expectError(t, diags, diagnostics.FunctionCallArgumentCountMismatch)
}

func TestFunctionCallArityMatchAccepted(t *testing.T) {
	src := `
func g(a: bool): void {}
func f(): void {
    g(true);
}
`
	_, diags := buildModules(t, map[string]string{"m": src})
	expectNoErrors(t, diags)
}

// `use a.b.C as X` resolves to the same handle as `a.b.C` inside a
// class field declaration as well as a function signature (S7),
// covering the type-name algorithm's step 1.
func TestAliasResolvesInsideClassField(t *testing.T) {
	ctx, diags := buildModules(t, map[string]string{
		"lib":  "pub class T {}",
		"main": "use lib.T as X; class Holder { field: X; }",
	})
	expectNoErrors(t, diags)
	libT, _ := ctx.Types.Location("lib.T")
	v, _ := ctx.TypeOf("main.Holder")
	holder := v.(*tir.Class)
	if holder.Fields["field"] != libT {
		t.Errorf("expected field to resolve through the alias to lib.T's handle")
	}
}

// Order-invariance: building the same two files in either order
// yields the same resolved shape (field types resolve regardless of
// which module's pass touches the cross-reference first).
func TestBuildOrderInvariant(t *testing.T) {
	libSrc := "pub class T {}"
	mainSrc := "use lib.T; class Holder { field: T; }"
	first := [][2]string{{"lib", libSrc}, {"main", mainSrc}}
	second := [][2]string{{"main", mainSrc}, {"lib", libSrc}}
	ctx1, diags1 := buildModulesOrdered(t, first)
	ctx2, diags2 := buildModulesOrdered(t, second)
	expectNoErrors(t, diags1)
	expectNoErrors(t, diags2)

	v1, _ := ctx1.TypeOf("main.Holder")
	v2, _ := ctx2.TypeOf("main.Holder")
	h1 := v1.(*tir.Class)
	h2 := v2.(*tir.Class)
	if !tir.SkeletonEqual(ctx1, h1.Fields["field"], mustLoc(t, ctx1, "lib.T")) {
		t.Errorf("order 1: expected Holder.field to match lib.T's skeleton")
	}
	if !tir.SkeletonEqual(ctx2, h2.Fields["field"], mustLoc(t, ctx2, "lib.T")) {
		t.Errorf("order 2: expected Holder.field to match lib.T's skeleton")
	}
}

func mustLoc(t *testing.T, ctx *tir.Context, path string) tir.TypeLocation {
	t.Helper()
	loc, ok := ctx.Types.Location(path)
	if !ok {
		t.Fatalf("expected %s to be registered", path)
	}
	return loc
}

// Every reservation is published by the time a successful build
// returns: a residual reservation would be an internal error.
func TestNoResidualReservationsAfterSuccessfulBuild(t *testing.T) {
	src := `
interface I { func f(): string; }
extend C: I { func f(): string {} }
class C { other: D; }
class D { c: C; }
func main(): void {}
`
	ctx, diags := buildModules(t, map[string]string{"m": src})
	expectNoErrors(t, diags)
	if pending := ctx.Types.PendingReservations(); len(pending) != 0 {
		t.Errorf("expected no residual reservations, found %d", len(pending))
	}
}

// Identical primitive constants in different bodies intern to one
// shared object.
func TestLiteralConstantsInterned(t *testing.T) {
	src := `
func f(): void {
    var a: string = "shared";
}
func g(): void {
    var b: string = "shared";
    var c: bool = true;
}
`
	ctx, diags := buildModules(t, map[string]string{"m": src})
	expectNoErrors(t, diags)
	if got := ctx.Objects.Len(); got != 2 {
		t.Errorf("expected 2 distinct interned constants, got %d", got)
	}
}

// Duplicate parameter names are a duplicate binding in one scope.
func TestDuplicateParameterNamesRejected(t *testing.T) {
	src := `func f(a: bool, a: bool): void {}`
	_, diags := buildModules(t, map[string]string{"m": src})
	expectError(t, diags, diagnostics.VariableAlreadyDefined)
}

// A syntax error never reaches Resolve: it is returned directly from
// the parser as its own error value (§6).
func TestParseErrorReturnedDirectly(t *testing.T) {
	sm := source.NewMap()
	handle := sm.Add("bad", "class {")
	_, perr := parser.Parse(handle, "bad", "class {")
	if perr == nil {
		t.Fatalf("expected a parse error for a malformed class declaration")
	}
}
