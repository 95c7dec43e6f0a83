package tilecore

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Updatable objects advance once per frame. dt is measured in nominal frames
// (elapsed wall time divided by the nominal frame duration), so 1.0 means the
// frame took exactly as long as planned.
type Updatable interface {
	Update(dt float64)
}

// UpdateFunc adapts a function to Updatable.
type UpdateFunc func(dt float64)

// Update calls f(dt).
func (f UpdateFunc) Update(dt float64) { f(dt) }

// Drawable objects render onto the frame's target once per frame.
type Drawable interface {
	Draw(target *ebiten.Image)
}

type capability uint8

const (
	capUpdate capability = 1 << iota
	capDraw
	capInteract
	capCollide
)

func capabilitiesOf(obj any) capability {
	var c capability
	if _, ok := obj.(Updatable); ok {
		c |= capUpdate
	}
	if _, ok := obj.(Drawable); ok {
		c |= capDraw
	}
	if _, ok := obj.(Interactable); ok {
		c |= capInteract
	}
	if _, ok := obj.(Collidable); ok {
		c |= capCollide
	}
	return c
}

// Handle identifies an object registered with a Scene. Handles are
// generational: once the object is removed the handle goes stale and every
// operation on it is a no-op. The zero Handle is never valid.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the zero handle.
func (h Handle) IsZero() bool { return h.gen == 0 }

func (h Handle) String() string {
	return fmt.Sprintf("handle(%d:%d)", h.index, h.gen)
}

type sceneSlot struct {
	obj  any
	gen  uint32
	caps capability
	live bool
}

type entry[T any] struct {
	h        Handle
	v        T
	priority int
}

// Scene is the registry of simulated objects. Each registered object is fanned
// out into one collection per capability it implements (update, draw,
// interact, collide); the Scene never copies object state. Collections keep
// insertion order, except collidables, which are ordered by priority first.
//
// A Scene is not safe for concurrent use: it is mutated during setup and from
// within the single update pass only.
type Scene struct {
	slots []sceneSlot
	free  []uint32

	updatables    []entry[Updatable]
	drawables     []entry[Drawable]
	interactables []entry[Interactable]
	collidables   []entry[Collidable]

	// collidableView is rebuilt whenever collidables change so the
	// collision checker can iterate it without allocating.
	collidableView []Collidable

	sink        EventSink
	debug       bool
	sizeWarned  bool // over debugMaxObjects and already reported
	dispatching int
	pending     bool // removals waiting for compaction
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{}
}

// Add registers obj with every collection whose capability it implements and
// returns its handle. Objects implementing none of the capabilities are not
// registered and the zero Handle is returned.
//
// Objects added during Update or Draw start receiving calls on the next pass.
func (s *Scene) Add(obj any) Handle {
	caps := capabilitiesOf(obj)
	if caps == 0 {
		Log.WithField("type", fmt.Sprintf("%T", obj)).Warn("scene: object has no capability, not registered")
		return Handle{}
	}

	var idx uint32
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		idx = uint32(len(s.slots))
		s.slots = append(s.slots, sceneSlot{})
	}
	slot := &s.slots[idx]
	slot.gen++
	slot.obj = obj
	slot.caps = caps
	slot.live = true
	h := Handle{index: idx, gen: slot.gen}

	if caps&capUpdate != 0 {
		s.updatables = append(s.updatables, entry[Updatable]{h: h, v: obj.(Updatable)})
	}
	if caps&capDraw != 0 {
		s.drawables = append(s.drawables, entry[Drawable]{h: h, v: obj.(Drawable)})
	}
	if caps&capInteract != 0 {
		s.interactables = append(s.interactables, entry[Interactable]{h: h, v: obj.(Interactable)})
	}
	if caps&capCollide != 0 {
		c := obj.(Collidable)
		s.insertCollidable(entry[Collidable]{h: h, v: c, priority: collisionPriority(c)})
	}
	if s.debug {
		s.debugCheckSize()
	}
	return h
}

// insertCollidable keeps collidables sorted by descending priority, with equal
// priorities in insertion order.
func (s *Scene) insertCollidable(e entry[Collidable]) {
	i := len(s.collidables)
	for i > 0 && s.collidables[i-1].priority < e.priority {
		i--
	}
	s.collidables = append(s.collidables, entry[Collidable]{})
	copy(s.collidables[i+1:], s.collidables[i:])
	s.collidables[i] = e
	s.rebuildCollidableView()
}

func (s *Scene) rebuildCollidableView() {
	view := make([]Collidable, 0, len(s.collidables))
	for _, e := range s.collidables {
		if s.valid(e.h) {
			view = append(view, e.v)
		}
	}
	s.collidableView = view
}

func (s *Scene) valid(h Handle) bool {
	if h.gen == 0 || int(h.index) >= len(s.slots) {
		return false
	}
	slot := &s.slots[h.index]
	return slot.live && slot.gen == h.gen
}

// Contains reports whether h refers to a registered object.
func (s *Scene) Contains(h Handle) bool {
	return s != nil && s.valid(h)
}

// Get returns the object registered under h.
func (s *Scene) Get(h Handle) (any, bool) {
	if !s.Contains(h) {
		return nil, false
	}
	return s.slots[h.index].obj, true
}

// Remove unregisters the object behind h from every collection it joined.
// Stale or zero handles are ignored and report false. Removing during Update
// or Draw is allowed; the object is skipped for the rest of the pass.
func (s *Scene) Remove(h Handle) bool {
	if !s.valid(h) {
		return false
	}
	slot := &s.slots[h.index]
	caps := slot.caps
	slot.live = false
	slot.obj = nil
	slot.caps = 0
	s.free = append(s.free, h.index)

	if caps&capCollide != 0 {
		s.rebuildCollidableView()
	}
	if s.debug {
		s.debugCheckSize()
	}
	if s.dispatching > 0 {
		s.pending = true
		return true
	}
	s.compact()
	return true
}

// compact drops entries whose handles went stale.
func (s *Scene) compact() {
	s.updatables = compactEntries(s, s.updatables)
	s.drawables = compactEntries(s, s.drawables)
	s.interactables = compactEntries(s, s.interactables)
	s.collidables = compactEntries(s, s.collidables)
	s.pending = false
}

func compactEntries[T any](s *Scene, list []entry[T]) []entry[T] {
	out := list[:0]
	for _, e := range list {
		if s.valid(e.h) {
			out = append(out, e)
		}
	}
	var zero entry[T]
	for i := len(out); i < len(list); i++ {
		list[i] = zero
	}
	return out
}

// Len returns the number of registered objects.
func (s *Scene) Len() int {
	if s == nil {
		return 0
	}
	return len(s.slots) - len(s.free)
}

func (s *Scene) beginDispatch() { s.dispatching++ }

func (s *Scene) endDispatch() {
	s.dispatching--
	if s.dispatching == 0 && s.pending {
		s.compact()
	}
}

// Update calls Update(dt) on every updatable in insertion order.
func (s *Scene) Update(dt float64) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.beginDispatch()
	n := len(s.updatables)
	for i := 0; i < n; i++ {
		e := s.updatables[i]
		if !s.valid(e.h) {
			continue
		}
		e.v.Update(dt)
	}
	s.endDispatch()

	if s.debug {
		s.debugLogPass("update", time.Since(t0), n)
	}
}

// Draw calls Draw(target) on every drawable in insertion order, so later
// registrations paint over earlier ones.
func (s *Scene) Draw(target *ebiten.Image) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.beginDispatch()
	n := len(s.drawables)
	for i := 0; i < n; i++ {
		e := s.drawables[i]
		if !s.valid(e.h) {
			continue
		}
		e.v.Draw(target)
	}
	s.endDispatch()

	if s.debug {
		s.debugLogPass("draw", time.Since(t0), n)
	}
}

// Collidables returns the registered blockers in check order: higher priority
// first, then insertion order. The returned slice MUST NOT be mutated. A nil
// Scene has no blockers.
func (s *Scene) Collidables() []Collidable {
	if s == nil {
		return nil
	}
	return s.collidableView
}

// Updatables returns a snapshot of the registered updatables in order.
func (s *Scene) Updatables() []Updatable {
	return liveValues(s, s.updatables)
}

// Drawables returns a snapshot of the registered drawables in order.
func (s *Scene) Drawables() []Drawable {
	return liveValues(s, s.drawables)
}

// Interactables returns a snapshot of the registered interactables in order.
func (s *Scene) Interactables() []Interactable {
	return liveValues(s, s.interactables)
}

func liveValues[T any](s *Scene, list []entry[T]) []T {
	out := make([]T, 0, len(list))
	for _, e := range list {
		if s.valid(e.h) {
			out = append(out, e.v)
		}
	}
	return out
}

// SetEventSink sets where gameplay events emitted through the scene go.
func (s *Scene) SetEventSink(sink EventSink) {
	s.sink = sink
}

// EmitEvent forwards event to the scene's sink, if any. Scene therefore
// satisfies EventSink itself and can be handed to actors directly.
func (s *Scene) EmitEvent(event Event) {
	if s == nil || s.sink == nil {
		return
	}
	s.sink.EmitEvent(event)
}

// SetDebugMode enables or disables per-pass timing logs at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}
