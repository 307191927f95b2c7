package tir_test

import (
	"testing"

	"github.com/timu-lang/timu/internal/source"
	"github.com/timu-lang/timu/internal/tir"
)

func TestReserveThenPublishKeepsHandleStable(t *testing.T) {
	table := tir.NewTable()
	span := source.Span{File: 0, Start: 3, End: 8}
	loc, err := table.Reserve("m.A", "A", tir.KindClass, 0, span)
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if _, ok := table.GetAt(loc); ok {
		t.Fatalf("expected a reservation to have no value before publish")
	}
	res, ok := table.ReservationAt(loc)
	if !ok || res.Name != "A" || res.Kind != tir.KindClass || res.Span != span {
		t.Fatalf("unexpected reservation metadata: %+v", res)
	}

	published, err := table.Publish("m.A", &tir.Class{Name: "A", Path: "m.A"})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if published != loc {
		t.Errorf("expected publish to keep handle %d, got %d", loc, published)
	}
	if v, ok := table.GetAt(loc); !ok {
		t.Errorf("expected a published value at the reserved handle")
	} else if c := v.(*tir.Class); c.Name != "A" {
		t.Errorf("unexpected published value: %+v", c)
	}
}

func TestReserveSamePathTwiceFails(t *testing.T) {
	table := tir.NewTable()
	if _, err := table.Reserve("m.A", "A", tir.KindClass, 0, source.Span{}); err != nil {
		t.Fatalf("first reserve: %v", err)
	}
	if _, err := table.Reserve("m.A", "A", tir.KindClass, 0, source.Span{}); err == nil {
		t.Fatalf("expected second reserve of the same path to fail")
	}
}

func TestPublishWithoutReserveFails(t *testing.T) {
	table := tir.NewTable()
	if _, err := table.Publish("m.A", &tir.Class{Name: "A", Path: "m.A"}); err == nil {
		t.Fatalf("expected publish of an unreserved path to fail")
	}
}

func TestPendingReservations(t *testing.T) {
	table := tir.NewTable()
	a, _ := table.Reserve("m.A", "A", tir.KindClass, 0, source.Span{})
	b, _ := table.Reserve("m.B", "B", tir.KindClass, 0, source.Span{})
	pending := table.PendingReservations()
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending reservations, got %d", len(pending))
	}
	table.Publish("m.A", &tir.Class{Name: "A", Path: "m.A"})
	pending = table.PendingReservations()
	if len(pending) != 1 || pending[0] != b {
		t.Fatalf("expected only %d pending after publishing %d, got %v", b, a, pending)
	}
}

func TestFindByValueInternsPrimitives(t *testing.T) {
	table := tir.NewTable()
	loc, _ := table.Add("bool", "bool", tir.KindPrimitive, &tir.Primitive{Kind: tir.Bool})
	found, ok := table.FindByValue(&tir.Primitive{Kind: tir.Bool})
	if !ok || found != loc {
		t.Errorf("expected reverse lookup to find the interned bool at %d, got %d", loc, found)
	}
	if _, ok := table.FindByValue(&tir.Primitive{Kind: tir.I64}); ok {
		t.Errorf("expected reverse lookup of an absent primitive to fail")
	}
}

func TestObjectInterningSharesHandles(t *testing.T) {
	objects := tir.NewObjectTable()
	a := objects.Intern(tir.Object{Kind: tir.I32, Text: "42"})
	b := objects.Intern(tir.Object{Kind: tir.I32, Text: "42"})
	c := objects.Intern(tir.Object{Kind: tir.I64, Text: "42"})
	if a != b {
		t.Errorf("expected identical constants to share one handle, got %d and %d", a, b)
	}
	if a == c {
		t.Errorf("expected constants of different kinds to get distinct handles")
	}
	if objects.Len() != 2 {
		t.Errorf("expected 2 distinct interned objects, got %d", objects.Len())
	}
	if v, ok := objects.Get(a); !ok || v.Text != "42" {
		t.Errorf("unexpected object at %d: %+v", a, v)
	}
}

func TestScopeShadowingAndLocalUniqueness(t *testing.T) {
	scopes := tir.NewScopeArena()
	parent := scopes.New("m", tir.UndefinedScope(), tir.UndefinedType())
	child := scopes.New("m", parent, tir.UndefinedType())

	if err := scopes.Define(parent, "x", tir.Local{Type: 1}); err != nil {
		t.Fatalf("define in parent: %v", err)
	}
	if err := scopes.Define(parent, "x", tir.Local{Type: 2}); err == nil {
		t.Fatalf("expected redefinition in the same scope to fail")
	}
	if err := scopes.Define(child, "x", tir.Local{Type: 3}); err != nil {
		t.Fatalf("expected shadowing in a child scope to be allowed: %v", err)
	}
	local, at, ok := scopes.Lookup(child, "x")
	if !ok || at != child || local.Type != 3 {
		t.Errorf("expected child binding to win, got type %d from scope %d", local.Type, at)
	}
	local, at, ok = scopes.Lookup(parent, "x")
	if !ok || at != parent || local.Type != 1 {
		t.Errorf("expected parent lookup to see its own binding, got type %d from scope %d", local.Type, at)
	}
}

func TestGetAstSignatureIsStableAcrossCalls(t *testing.T) {
	table := tir.NewAstSignatureTable()
	sig := &tir.AstSignature{Path: "m.A", Name: "A", Kind: tir.KindClass}
	if _, err := table.Add(sig); err != nil {
		t.Fatalf("add: %v", err)
	}
	first, _ := table.Get("m.A")
	second, _ := table.Get("m.A")
	if first != second {
		t.Errorf("expected repeated lookups to return the same node")
	}
}
