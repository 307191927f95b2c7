package tir

// Object is one primitive constant value. Objects are interned on
// equality: the same (kind, lexeme) pair always yields the same
// ObjectLocation, shared across every use site.
type Object struct {
	Kind PrimitiveKind
	Text string
}

// ObjectTable is the intern-on-equality store for primitive constant
// values.
type ObjectTable struct {
	byValue map[Object]ObjectLocation
	arena   []Object
}

// NewObjectTable creates an empty object table.
func NewObjectTable() *ObjectTable {
	return &ObjectTable{byValue: make(map[Object]ObjectLocation)}
}

// Intern returns the existing handle for obj, or allocates one if the
// value was never seen before.
func (t *ObjectTable) Intern(obj Object) ObjectLocation {
	if loc, ok := t.byValue[obj]; ok {
		return loc
	}
	loc := ObjectLocation(len(t.arena))
	t.arena = append(t.arena, obj)
	t.byValue[obj] = loc
	return loc
}

// Get returns the value at a handle.
func (t *ObjectTable) Get(loc ObjectLocation) (Object, bool) {
	if int(loc) < 0 || int(loc) >= len(t.arena) {
		return Object{}, false
	}
	return t.arena[loc], true
}

// Len reports how many distinct values have been interned.
func (t *ObjectTable) Len() int {
	return len(t.arena)
}
