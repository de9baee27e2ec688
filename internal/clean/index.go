package clean

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrUnknownOption   = errors.New("option is not registered")
	ErrAmbiguousOption = errors.New("option is registered in more than one table")
)

// Target is what an option id resolves to: a filesystem path, or the
// recycle bin which has none.
type Target struct {
	Path       string
	RecycleBin bool
}

// PathTable is an id-keyed table of targets that remembers insertion order.
// It is not safe for concurrent mutation; workers only read it.
type PathTable struct {
	name    string
	order   []uuid.UUID
	targets map[uuid.UUID]Target
}

func newPathTable(name string) *PathTable {
	return &PathTable{name: name, targets: make(map[uuid.UUID]Target)}
}

// Name returns the table name used in errors and logs.
func (t *PathTable) Name() string { return t.name }

// Put registers or replaces the target of id.
func (t *PathTable) Put(id uuid.UUID, target Target) {
	if _, ok := t.targets[id]; !ok {
		t.order = append(t.order, id)
	}
	t.targets[id] = target
}

// Get returns the target of id.
func (t *PathTable) Get(id uuid.UUID) (Target, bool) {
	target, ok := t.targets[id]
	return target, ok
}

// Delete removes id and reports whether it was present.
func (t *PathTable) Delete(id uuid.UUID) bool {
	if _, ok := t.targets[id]; !ok {
		return false
	}
	delete(t.targets, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of registered ids.
func (t *PathTable) Len() int { return len(t.targets) }

// Each calls fn for every entry in insertion order.
func (t *PathTable) Each(fn func(id uuid.UUID, target Target)) {
	for _, id := range t.order {
		fn(id, t.targets[id])
	}
}

// Reset drops every entry.
func (t *PathTable) Reset() {
	t.order = nil
	t.targets = make(map[uuid.UUID]Target)
}

// PathIndex holds the two id tables: fixed targets rediscovered every
// session and custom targets persisted across sessions.
type PathIndex struct {
	Fixed  *PathTable
	Custom *PathTable
}

// NewPathIndex returns an empty index.
func NewPathIndex() *PathIndex {
	return &PathIndex{
		Fixed:  newPathTable("fixed"),
		Custom: newPathTable("custom"),
	}
}

// Resolve looks id up in both tables. An id must live in exactly one.
func (x *PathIndex) Resolve(id uuid.UUID) (Target, error) {
	fixed, inFixed := x.Fixed.Get(id)
	custom, inCustom := x.Custom.Get(id)
	switch {
	case inFixed && inCustom:
		return Target{}, fmt.Errorf("%s: %w", id, ErrAmbiguousOption)
	case inFixed:
		return fixed, nil
	case inCustom:
		return custom, nil
	default:
		return Target{}, fmt.Errorf("%s: %w", id, ErrUnknownOption)
	}
}
