package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starsystem/internal/body"
)

type fakeVisual struct {
	disposed int
}

func (f *fakeVisual) Draw(b *body.Body, camPos [3]float32) {}
func (f *fakeVisual) Dispose()                             { f.disposed++ }

// fakeFactory builds bodies with no GPU resources and remembers every create
// so tests can assert on write-once semantics.
type fakeFactory struct {
	visuals map[string]*fakeVisual
	creates int
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{visuals: make(map[string]*fakeVisual)}
}

func (f *fakeFactory) Create(rec body.Record, index int) *body.Body {
	f.creates++
	v := &fakeVisual{}
	f.visuals[rec.ID] = v
	core := body.StandardRadius
	if rec.IsGasClass() {
		core = body.GasRadius
	}
	b := &body.Body{
		Record:      rec,
		OrbitRadius: body.OrbitRadiusFor(index),
		OrbitSpeed:  0.3,
		CoreRadius:  core,
		Visual:      v,
	}
	if rec.Visual.Rings {
		b.RingRadius = core * body.RingOuterScale
	}
	return b
}

func rec(id string) body.Record {
	return body.Record{ID: id, Name: id, Class: "rocky"}
}

func TestReconcileAddsAndRemoves(t *testing.T) {
	f := newFakeFactory()
	w := NewWorld(f)

	added, removed := w.Reconcile([]body.Record{rec("a"), rec("b"), rec("c")})
	assert.Equal(t, 3, added)
	assert.Equal(t, 0, removed)
	assert.Equal(t, 3, w.Len())

	added, removed = w.Reconcile([]body.Record{rec("a"), rec("c"), rec("d")})
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 3, w.Len())

	_, ok := w.Get("b")
	assert.False(t, ok)
	assert.Equal(t, 1, f.visuals["b"].disposed)
	assert.Equal(t, 0, f.visuals["a"].disposed)
}

func TestReconcileIsWriteOncePerID(t *testing.T) {
	f := newFakeFactory()
	w := NewWorld(f)

	w.Reconcile([]body.Record{rec("a")})
	require.Equal(t, 1, f.creates)
	orig, _ := w.Get("a")

	changed := rec("a")
	changed.Name = "Renamed"
	changed.Visual.Primary = "#ff0000"
	added, removed := w.Reconcile([]body.Record{changed})
	assert.Equal(t, 0, added)
	assert.Equal(t, 0, removed)
	assert.Equal(t, 1, f.creates, "live body must not be rebuilt")

	b, ok := w.Get("a")
	require.True(t, ok)
	assert.Same(t, orig, b)
	assert.Equal(t, "a", b.Record.Name, "content changes for a live id are ignored")
}

func TestReconcileOrbitConstantsSurviveNeighborRemoval(t *testing.T) {
	f := newFakeFactory()
	w := NewWorld(f)

	w.Reconcile([]body.Record{rec("a"), rec("b")})
	b, _ := w.Get("b")
	require.Equal(t, body.OrbitRadiusFor(1), b.OrbitRadius)
	speed := b.OrbitSpeed

	// Drop "a": "b" moves to snapshot index 0 but its orbit must not change.
	w.Reconcile([]body.Record{rec("b")})
	b, ok := w.Get("b")
	require.True(t, ok)
	assert.Equal(t, body.OrbitRadiusFor(1), b.OrbitRadius)
	assert.Equal(t, speed, b.OrbitSpeed)
}

func TestReconcileSkipsEmptyAndDuplicateIDs(t *testing.T) {
	f := newFakeFactory()
	w := NewWorld(f)

	dup := rec("a")
	dup.Name = "Second A"
	added, removed := w.Reconcile([]body.Record{rec("a"), {ID: ""}, dup, rec("b")})
	assert.Equal(t, 2, added)
	assert.Equal(t, 0, removed)

	b, ok := w.Get("a")
	require.True(t, ok)
	assert.Equal(t, "a", b.Record.Name, "first occurrence wins")
}

func TestReconcileEmptySnapshotClearsWorld(t *testing.T) {
	f := newFakeFactory()
	w := NewWorld(f)

	w.Reconcile([]body.Record{rec("a"), rec("b")})
	added, removed := w.Reconcile(nil)
	assert.Equal(t, 0, added)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 0, w.Len())
	assert.Empty(t, w.Bodies())
}

func TestDisposeReleasesEachVisualExactlyOnce(t *testing.T) {
	f := newFakeFactory()
	w := NewWorld(f)

	w.Reconcile([]body.Record{rec("a"), rec("b"), rec("c")})
	w.Reconcile([]body.Record{rec("a"), rec("b")}) // disposes c
	w.Dispose()

	for id, v := range f.visuals {
		assert.Equal(t, 1, v.disposed, "visual %s", id)
	}
	assert.Equal(t, 0, w.Len())
}

func TestTwoBodyLifecycle(t *testing.T) {
	f := newFakeFactory()
	w := NewWorld(f)

	ringed := body.Record{ID: "halcyon", Name: "Halcyon", Class: "gas giant"}
	ringed.Visual.Rings = true
	plain := body.Record{ID: "cinder", Name: "Cinder", Class: "rocky"}

	added, removed := w.Reconcile([]body.Record{plain, ringed})
	require.Equal(t, 2, added)
	require.Equal(t, 0, removed)

	var ringCount int
	for _, b := range w.Bodies() {
		if b.RingRadius > 0 {
			ringCount++
		}
	}
	assert.Equal(t, 1, ringCount)

	gas, _ := w.Get("halcyon")
	assert.Equal(t, body.GasRadius, gas.CoreRadius)
	assert.Equal(t, body.GasRadius*body.RingOuterScale, gas.PickRadius())

	// Drop the ringed body; the other survives untouched.
	added, removed = w.Reconcile([]body.Record{plain})
	assert.Equal(t, 0, added)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, f.visuals["halcyon"].disposed)
	assert.Equal(t, 0, f.visuals["cinder"].disposed)
}

func TestBodiesStableOrder(t *testing.T) {
	f := newFakeFactory()
	w := NewWorld(f)

	w.Reconcile([]body.Record{rec("a"), rec("b"), rec("c")})
	w.Reconcile([]body.Record{rec("c"), rec("a"), rec("d")})

	var ids []string
	for _, b := range w.Bodies() {
		ids = append(ids, b.Record.ID)
	}
	// Survivors keep insertion order; new bodies append.
	assert.Equal(t, []string{"a", "c", "d"}, ids)
}
