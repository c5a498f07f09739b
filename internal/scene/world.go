// Package scene owns the set of live celestial bodies and the shared scenery
// around them. The world is the only writer of the live-body mapping; bodies
// enter through Reconcile and leave through Reconcile or Dispose, never any
// other way.
package scene

import (
	"starsystem/internal/body"
)

// Factory turns a record plus its snapshot index into a live body. The real
// implementation is body.Factory; tests substitute a fake.
type Factory interface {
	Create(rec body.Record, index int) *body.Body
}

// World is the scene registry: the live bodies keyed by record id, in stable
// draw order.
type World struct {
	factory Factory
	bodies  map[string]*body.Body
	order   []string
	list    []*body.Body // cached Bodies() result, rebuilt on change
}

// NewWorld returns an empty world that builds bodies through factory.
func NewWorld(factory Factory) *World {
	return &World{
		factory: factory,
		bodies:  make(map[string]*body.Body),
	}
}

// Reconcile brings the live set in line with the snapshot: bodies whose id is
// absent from the snapshot are disposed and dropped, records not yet live are
// created with their current snapshot position as orbit index. Records whose
// id is already live are left untouched (bodies are write-once; content
// changes for a live id are ignored). Duplicate ids inside one snapshot keep
// the first occurrence. Returns the number of bodies added and removed.
func (w *World) Reconcile(snapshot []body.Record) (added, removed int) {
	want := make(map[string]bool, len(snapshot))
	for _, rec := range snapshot {
		if rec.ID != "" {
			want[rec.ID] = true
		}
	}

	// Remove first so disposal happens before anything references the frame's
	// new set.
	kept := w.order[:0]
	for _, id := range w.order {
		if want[id] {
			kept = append(kept, id)
			continue
		}
		w.bodies[id].Visual.Dispose()
		delete(w.bodies, id)
		removed++
	}
	w.order = kept

	for i, rec := range snapshot {
		if rec.ID == "" {
			continue
		}
		if _, live := w.bodies[rec.ID]; live {
			continue
		}
		b := w.factory.Create(rec, i)
		w.bodies[rec.ID] = b
		w.order = append(w.order, rec.ID)
		added++
	}

	if added > 0 || removed > 0 {
		w.list = nil
	}
	return added, removed
}

// Bodies returns the live bodies in stable insertion order. The slice is
// cached between changes; callers must not hold it across a Reconcile.
func (w *World) Bodies() []*body.Body {
	if w.list == nil {
		w.list = make([]*body.Body, 0, len(w.order))
		for _, id := range w.order {
			w.list = append(w.list, w.bodies[id])
		}
	}
	return w.list
}

// Get returns the live body for id, if any.
func (w *World) Get(id string) (*body.Body, bool) {
	b, ok := w.bodies[id]
	return b, ok
}

// Len returns the number of live bodies.
func (w *World) Len() int {
	return len(w.bodies)
}

// Dispose releases every live body and empties the world.
func (w *World) Dispose() {
	for _, id := range w.order {
		w.bodies[id].Visual.Dispose()
		delete(w.bodies, id)
	}
	w.order = nil
	w.list = nil
}
