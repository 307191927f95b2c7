package tir

import (
	"fmt"

	"github.com/timu-lang/timu/internal/source"
)

// Kind tags what a reservation will eventually publish, so that a
// consumer holding only a reservation still knows enough to
// type-check structural references to it (§4.1).
type Kind int

const (
	KindPrimitive Kind = iota
	KindClass
	KindFunction
	KindInterface
	KindInterfaceMethod
	KindExtension
	KindModuleRef
)

// Reservation is the metadata recorded for a handle before its body
// is known.
type Reservation struct {
	Path string
	Name string
	Kind Kind
	File source.FileHandle
	Span source.Span
}

type entry struct {
	reservation Reservation
	value       Type
	published   bool
}

// Table is the two-phase signature table: reserve(path) yields a
// stable handle immediately; publish(path, value) fills it in place.
// Every entry is addressable both by path and by handle, so mutually
// recursive definitions never need a live pointer to an unfinished
// neighbor.
type Table struct {
	byPath map[string]TypeLocation
	arena  []entry
}

// NewTable creates an empty signature table.
func NewTable() *Table {
	return &Table{byPath: make(map[string]TypeLocation)}
}

// Reserve allocates a handle for path before its value is known.
func (t *Table) Reserve(path, name string, kind Kind, file source.FileHandle, span source.Span) (TypeLocation, error) {
	if _, exists := t.byPath[path]; exists {
		return UndefinedType(), fmt.Errorf("already defined: %s", path)
	}
	loc := TypeLocation(len(t.arena))
	t.arena = append(t.arena, entry{reservation: Reservation{Path: path, Name: name, Kind: kind, File: file, Span: span}})
	t.byPath[path] = loc
	return loc, nil
}

// Publish fills in the value for a path that was previously reserved.
// The handle does not move.
func (t *Table) Publish(path string, value Type) (TypeLocation, error) {
	loc, exists := t.byPath[path]
	if !exists {
		return UndefinedType(), fmt.Errorf("publish of unreserved path: %s", path)
	}
	e := t.arena[loc]
	e.value = value
	e.published = true
	t.arena[loc] = e
	return loc, nil
}

// Add is a single-step reserve+publish, used when the value is
// already fully known at registration time (e.g. seeded primitives).
func (t *Table) Add(path, name string, kind Kind, value Type) (TypeLocation, error) {
	if _, exists := t.byPath[path]; exists {
		return UndefinedType(), fmt.Errorf("already defined: %s", path)
	}
	loc := TypeLocation(len(t.arena))
	t.arena = append(t.arena, entry{
		reservation: Reservation{Path: path, Name: name, Kind: kind},
		value:       value,
		published:   true,
	})
	t.byPath[path] = loc
	return loc, nil
}

// Get returns the resolved value for path, or ok=false if the path is
// unknown or still only a reservation.
func (t *Table) Get(path string) (Type, bool) {
	loc, exists := t.byPath[path]
	if !exists {
		return nil, false
	}
	return t.GetAt(loc)
}

// GetAt returns the resolved value for a handle, or ok=false if it is
// still only a reservation.
func (t *Table) GetAt(loc TypeLocation) (Type, bool) {
	if int(loc) < 0 || int(loc) >= len(t.arena) {
		return nil, false
	}
	e := t.arena[loc]
	if !e.published {
		return nil, false
	}
	return e.value, true
}

// ReservationAt returns the reservation metadata recorded for a
// handle, published or not — used by diagnostics that need the
// original declaration span.
func (t *Table) ReservationAt(loc TypeLocation) (Reservation, bool) {
	if int(loc) < 0 || int(loc) >= len(t.arena) {
		return Reservation{}, false
	}
	return t.arena[loc].reservation, true
}

// Location returns the handle registered for path, reserved or
// published.
func (t *Table) Location(path string) (TypeLocation, bool) {
	loc, ok := t.byPath[path]
	return loc, ok
}

// IsPublished reports whether a handle's reservation has been filled.
func (t *Table) IsPublished(loc TypeLocation) bool {
	if int(loc) < 0 || int(loc) >= len(t.arena) {
		return false
	}
	return t.arena[loc].published
}

// FindByValue is a reverse lookup by structural value equality, used
// only for intern-on-equality tables such as primitive constants.
func (t *Table) FindByValue(value Type) (TypeLocation, bool) {
	p, ok := value.(*Primitive)
	if !ok {
		return UndefinedType(), false
	}
	for i, e := range t.arena {
		if !e.published {
			continue
		}
		if op, ok := e.value.(*Primitive); ok && op.Kind == p.Kind {
			return TypeLocation(i), true
		}
	}
	return UndefinedType(), false
}

// PendingReservations returns every handle whose reservation has not
// yet been published — a non-empty result at the end of a pass is an
// internal error per invariant 3.
func (t *Table) PendingReservations() []TypeLocation {
	var pending []TypeLocation
	for i, e := range t.arena {
		if !e.published {
			pending = append(pending, TypeLocation(i))
		}
	}
	return pending
}
