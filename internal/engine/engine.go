// Package engine is the frame scheduler: one continuous loop that, each tick,
// applies any pending snapshot, advances orbits and the camera, re-runs the
// pointer hit test against the current (already-interpolated) camera, feeds
// the shading uniforms, and submits the composed frame through the bloom
// stage. All engine state lives on this context object; nothing is ambient.
package engine

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"starsystem/internal/audio"
	"starsystem/internal/body"
	"starsystem/internal/camera"
	"starsystem/internal/entity"
	"starsystem/internal/logger"
	"starsystem/internal/orbit"
	"starsystem/internal/picking"
	"starsystem/internal/post"
	"starsystem/internal/scene"
	"starsystem/internal/shading"
)

// Engine owns the scene, its sub-simulators, and the GPU pipeline. Not safe
// for concurrent use except where noted: SubmitSnapshot and the audio bridge
// are the only cross-goroutine entry points.
type Engine struct {
	log *logger.Logger

	lib     *shading.Library
	factory *body.Factory
	world   *scene.World
	scenery *scene.Scenery
	rig     *camera.Rig
	bridge  *audio.Bridge
	capture *audio.Capture
	ent     *entity.Entity
	bloom   *post.Bloom

	// pending holds at most one snapshot, applied at the top of the next tick
	// so the live set never changes mid-frame.
	pending chan []body.Record

	elapsed    float32
	hoveredID  string
	selectedID string
	closing    bool

	// OnSelect, if set, receives the body id whenever the user confirms a
	// hovered body with a click. The collaborator owns what selection means.
	OnSelect func(id string)
}

// New assembles an engine. No GPU work happens here; everything GPU-side is
// deferred until the loop runs with the window/GL context current.
func New(log *logger.Logger) *Engine {
	lib := shading.NewLibrary()
	e := &Engine{
		log:     log,
		lib:     lib,
		factory: body.NewFactory(lib),
		rig:     camera.NewRig(),
		bridge:  audio.NewBridge(),
		ent:     entity.New(lib),
		bloom:   post.New(0, 0, true),
		pending: make(chan []body.Record, 1),
	}
	e.world = scene.NewWorld(e.factory)
	e.scenery = scene.NewScenery()
	return e
}

// SubmitSnapshot hands the engine a new snapshot. Safe from any goroutine;
// replaces an undelivered older snapshot, and the engine applies it at the
// start of the next tick.
func (e *Engine) SubmitSnapshot(records []body.Record) {
	select {
	case <-e.pending:
	default:
	}
	e.pending <- records
}

// Select focuses the camera on the given live body id. Unknown ids are
// ignored.
func (e *Engine) Select(id string) {
	if _, ok := e.world.Get(id); !ok {
		return
	}
	e.selectedID = id
}

// ClearSelection reverts to the free wide view.
func (e *Engine) ClearSelection() {
	e.selectedID = ""
	e.rig.ClearFocus()
}

// SelectedID returns the currently focused body id, or "".
func (e *Engine) SelectedID() string { return e.selectedID }

// Selected returns the focused body's record, if any.
func (e *Engine) Selected() (body.Record, bool) {
	if e.selectedID == "" {
		return body.Record{}, false
	}
	b, ok := e.world.Get(e.selectedID)
	if !ok {
		return body.Record{}, false
	}
	return b.Record, true
}

// Hovered returns the record under the pointer, if any.
func (e *Engine) Hovered() (body.Record, bool) {
	if e.hoveredID == "" {
		return body.Record{}, false
	}
	b, ok := e.world.Get(e.hoveredID)
	if !ok {
		return body.Record{}, false
	}
	return b.Record, true
}

// SetInteractionState sets the entity's interaction state.
func (e *Engine) SetInteractionState(s shading.State) { e.ent.SetState(s) }

// InteractionState returns the entity's interaction state.
func (e *Engine) InteractionState() shading.State { return e.ent.State() }

// SetScanning toggles the ambient data-trail decoration.
func (e *Engine) SetScanning(on bool) { e.scenery.Scanning = on }

// SetOrbitRingsVisible toggles the orbit ring guides.
func (e *Engine) SetOrbitRingsVisible(on bool) { e.scenery.OrbitRingsVisible = on }

// SetBloomEnabled toggles the glow post-process.
func (e *Engine) SetBloomEnabled(on bool) { e.bloom.Enabled = on }

// EnableMic starts microphone capture feeding the audio field. A device
// failure leaves the bridge detached (zero field) and is returned for logging
// only; the frame loop is unaffected.
func (e *Engine) EnableMic() error {
	if e.capture != nil {
		return nil
	}
	cap, err := audio.StartCapture(e.bridge)
	if err != nil {
		return err
	}
	e.capture = cap
	return nil
}

// DisableMic stops capture and resets the field to neutral.
func (e *Engine) DisableMic() {
	if e.capture == nil {
		return
	}
	e.capture.Close()
	e.capture = nil
}

// RequestClose asks the main loop to exit after the current frame.
func (e *Engine) RequestClose() { e.closing = true }

// Closing reports whether teardown has been requested.
func (e *Engine) Closing() bool { return e.closing }

// Step runs one simulation tick. Call once per frame, before Draw, with the
// window open.
func (e *Engine) Step() {
	select {
	case records := <-e.pending:
		added, removed := e.world.Reconcile(records)
		if added > 0 || removed > 0 {
			e.log.Logf("scene: %d added, %d removed, %d live", added, removed, e.world.Len())
			if e.selectedID != "" {
				if _, ok := e.world.Get(e.selectedID); !ok {
					e.ClearSelection()
				}
			}
		}
	default:
	}

	dt := rl.GetFrameTime()
	e.elapsed += dt

	orbit.Step(e.world.Bodies(), dt, e.elapsed)

	// The commanded pose tracks the selected body along its orbit; the free
	// pose drifts on its own inside the rig.
	if e.selectedID != "" {
		if b, ok := e.world.Get(e.selectedID); ok {
			e.rig.Focus(b.Position)
		}
	}
	e.rig.Step(dt)

	// Resize must apply this same frame or the aspect ratio is visibly stale.
	if rl.IsWindowResized() {
		e.bloom.Resize(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
	}

	e.updatePointer()
	e.ent.UpdateAudio(e.bridge.Field())
}

// updatePointer projects the pointer through the current camera pose (what the
// user actually sees, not the commanded one) and resolves hover/selection.
func (e *Engine) updatePointer() {
	cam := e.camera3D()
	r := rl.GetScreenToWorldRay(rl.GetMousePosition(), cam)
	ray := picking.Ray{
		Origin: [3]float32{r.Position.X, r.Position.Y, r.Position.Z},
		Dir:    [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z},
	}

	id, ok := picking.Pick(ray, e.world.Bodies())
	if !ok {
		id = ""
	}
	if id != e.hoveredID {
		e.hoveredID = id
		if id != "" {
			rl.SetMouseCursor(rl.MouseCursorPointingHand)
		} else {
			rl.SetMouseCursor(rl.MouseCursorDefault)
		}
	}

	if e.hoveredID != "" && rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		e.Select(e.hoveredID)
		if e.OnSelect != nil {
			e.OnSelect(e.hoveredID)
		}
	}
}

func (e *Engine) camera3D() rl.Camera3D {
	cur := e.rig.Current
	return rl.Camera3D{
		Position:   rl.NewVector3(cur.Position[0], cur.Position[1], cur.Position[2]),
		Target:     rl.NewVector3(cur.Target[0], cur.Target[1], cur.Target[2]),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}

// Draw submits one frame: scene into the bloom target, then composition to
// the backbuffer. Call between BeginDrawing and EndDrawing.
func (e *Engine) Draw() {
	e.bloom.Begin()

	cam := e.camera3D()
	camPos := e.rig.Current.Position
	rl.BeginMode3D(cam)
	bodies := e.world.Bodies()
	e.scenery.Draw(bodies)
	for _, b := range bodies {
		b.Visual.Draw(b, camPos)
	}
	e.ent.Draw(e.elapsed, camPos)
	rl.EndMode3D()

	e.bloom.End()
	e.bloom.Compose()
}

// Close tears the engine down. Order matters: the loop must already have
// stopped (no further ticks), then audio capture stops, then per-body and
// shared GPU resources are released, and the shared programs go last since
// every material references them.
func (e *Engine) Close() {
	e.closing = true
	e.DisableMic()
	rl.SetMouseCursor(rl.MouseCursorDefault)
	e.world.Dispose()
	e.scenery.Dispose()
	e.ent.Dispose()
	e.bloom.Dispose()
	e.lib.Dispose()
}
