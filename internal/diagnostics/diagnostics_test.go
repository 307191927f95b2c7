package diagnostics_test

import (
	"testing"

	"github.com/google/uuid"

	"github.com/timu-lang/timu/internal/diagnostics"
	"github.com/timu-lang/timu/internal/source"
)

func TestNewCollectionGetsAFreshID(t *testing.T) {
	a := diagnostics.NewCollection()
	b := diagnostics.NewCollection()
	if a.ID == uuid.Nil {
		t.Errorf("expected a non-nil id")
	}
	if a.ID == b.ID {
		t.Errorf("expected two independently created collections to carry distinct ids")
	}
}

func TestNewCollectionForCarriesGivenID(t *testing.T) {
	id := uuid.New()
	c := diagnostics.NewCollectionFor(id)
	if c.ID != id {
		t.Errorf("expected collection id %s, got %s", id, c.ID)
	}
}

func TestCollectionAsErrorNilWhenEmpty(t *testing.T) {
	c := diagnostics.NewCollection()
	if err := c.AsError(); err != nil {
		t.Errorf("expected AsError to be nil for an empty collection, got %v", err)
	}
	c.Add(diagnostics.New(diagnostics.TypeNotFound, source.Span{}, "not found"))
	if err := c.AsError(); err == nil {
		t.Errorf("expected AsError to be non-nil once a diagnostic is added")
	}
}
