package tilecore

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// recorder logs every dispatch into a shared journal.
type recorder struct {
	name    string
	journal *[]string
}

func (r *recorder) Update(dt float64)         { *r.journal = append(*r.journal, "u:"+r.name) }
func (r *recorder) Draw(target *ebiten.Image) { *r.journal = append(*r.journal, "d:"+r.name) }

type updateOnly struct{ n int }

func (u *updateOnly) Update(dt float64) { u.n++ }

type drawOnly struct{ n int }

func (d *drawOnly) Draw(target *ebiten.Image) { d.n++ }

type inert struct{}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSceneFanOut(t *testing.T) {
	var journal []string
	s := NewScene()
	a := &recorder{name: "a", journal: &journal}
	b := &recorder{name: "b", journal: &journal}
	s.Add(a)
	s.Add(b)

	s.Update(1)
	s.Draw(nil)

	want := []string{"u:a", "u:b", "d:a", "d:b"}
	if !equalStrings(journal, want) {
		t.Errorf("journal = %v, want %v", journal, want)
	}
	if n := len(s.Updatables()); n != 2 {
		t.Errorf("Updatables = %d, want 2", n)
	}
	if n := len(s.Drawables()); n != 2 {
		t.Errorf("Drawables = %d, want 2", n)
	}
	if n := len(s.Collidables()); n != 0 {
		t.Errorf("Collidables = %d, want 0", n)
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
}

func TestSceneCapabilitySubsets(t *testing.T) {
	s := NewScene()
	u := &updateOnly{}
	d := &drawOnly{}
	s.Add(u)
	s.Add(d)

	for i := 0; i < 3; i++ {
		s.Update(1)
		s.Draw(nil)
	}
	if u.n != 3 || d.n != 3 {
		t.Errorf("calls = update %d draw %d, want 3 each", u.n, d.n)
	}
	if len(s.Updatables()) != 1 || len(s.Drawables()) != 1 {
		t.Error("object joined a collection it has no capability for")
	}
}

func TestSceneAddWithoutCapability(t *testing.T) {
	s := NewScene()
	h := s.Add(&inert{})
	if !h.IsZero() {
		t.Errorf("handle = %v, want zero", h)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

func TestSceneRemove(t *testing.T) {
	var journal []string
	s := NewScene()
	a := &recorder{name: "a", journal: &journal}
	b := &recorder{name: "b", journal: &journal}
	ha := s.Add(a)
	s.Add(b)

	if !s.Remove(ha) {
		t.Fatal("Remove = false for a live handle")
	}
	if s.Remove(ha) {
		t.Error("Remove = true for a stale handle")
	}
	if s.Contains(ha) {
		t.Error("Contains = true after Remove")
	}
	if _, ok := s.Get(ha); ok {
		t.Error("Get succeeded after Remove")
	}

	s.Update(1)
	s.Draw(nil)
	want := []string{"u:b", "d:b"}
	if !equalStrings(journal, want) {
		t.Errorf("journal = %v, want %v", journal, want)
	}
}

func TestSceneHandleReuse(t *testing.T) {
	s := NewScene()
	h1 := s.Add(&updateOnly{})
	s.Remove(h1)
	h2 := s.Add(&updateOnly{})
	if h1 == h2 {
		t.Fatal("reused slot produced an identical handle")
	}
	if s.Contains(h1) {
		t.Error("stale handle resolves to the new object")
	}
	if !s.Contains(h2) {
		t.Error("new handle not valid")
	}
	if s.Remove(Handle{}) {
		t.Error("Remove(zero handle) = true")
	}
}

func TestSceneRemoveBlocker(t *testing.T) {
	s := NewScene()
	h := s.Add(&stubBlocker{solid: true})
	c := NewCollisionChecker(nil, s)
	if c.CanMove(Vec(0, 0), 8, 8, CollisionContext{}) {
		t.Fatal("blocker not consulted")
	}
	s.Remove(h)
	if !c.CanMove(Vec(0, 0), 8, 8, CollisionContext{}) {
		t.Error("removed blocker still consulted")
	}
}

// mutator changes the scene from inside its own Update.
type mutator struct {
	scene  *Scene
	victim Handle
	spawn  *updateOnly
	calls  int
}

func (m *mutator) Update(dt float64) {
	m.calls++
	if !m.victim.IsZero() {
		m.scene.Remove(m.victim)
		m.victim = Handle{}
	}
	if m.spawn != nil {
		m.scene.Add(m.spawn)
		m.spawn = nil
	}
}

func TestSceneMutationDuringUpdate(t *testing.T) {
	s := NewScene()
	m := &mutator{scene: s, spawn: &updateOnly{}}
	s.Add(m)
	later := &updateOnly{}
	m.victim = s.Add(later)
	spawned := m.spawn

	s.Update(1)
	if later.n != 0 {
		t.Errorf("object removed earlier in the pass was still updated %d times", later.n)
	}
	if spawned.n != 0 {
		t.Errorf("object added during the pass was updated %d times in that pass", spawned.n)
	}

	s.Update(1)
	if spawned.n != 1 {
		t.Errorf("spawned updates = %d after next pass, want 1", spawned.n)
	}
	if m.calls != 2 {
		t.Errorf("mutator calls = %d, want 2", m.calls)
	}
	if got := len(s.Updatables()); got != 2 {
		t.Errorf("Updatables = %d, want 2", got)
	}
}

func TestSceneNilReceiver(t *testing.T) {
	var s *Scene
	if s.Collidables() != nil {
		t.Error("nil scene has collidables")
	}
	if s.Len() != 0 {
		t.Error("nil scene has objects")
	}
	s.EmitEvent(Event{Type: EventJumped})
}

func TestSceneEventForwarding(t *testing.T) {
	var got []EventType
	s := NewScene()
	s.EmitEvent(Event{Type: EventLanded})
	s.SetEventSink(EventFunc(func(e Event) { got = append(got, e.Type) }))
	s.EmitEvent(Event{Type: EventJumped})
	if len(got) != 1 || got[0] != EventJumped {
		t.Errorf("events = %v, want [jumped]", got)
	}
}

func TestSceneDebugMode(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	s.Add(&updateOnly{})
	s.Update(1)
	s.Draw(nil)
}

// focusable is a minimal Interactable.
type focusable struct {
	bounds  Rect
	rng     float32
	enabled bool
	focused bool
	used    int
}

func (f *focusable) Bounds() Rect            { return f.bounds }
func (f *focusable) InteractRange() float32  { return f.rng }
func (f *focusable) CanInteract() bool       { return f.enabled }
func (f *focusable) Focused() bool           { return f.focused }
func (f *focusable) SetFocused(focused bool) { f.focused = focused }
func (f *focusable) Interact()               { f.used++ }

type mover struct {
	pos  Vector2D
	w, h int
}

func (m mover) Position() Vector2D { return m.pos }
func (m mover) Size() (int, int)   { return m.w, m.h }

func TestSceneUpdateFocus(t *testing.T) {
	s := NewScene()
	near := &focusable{bounds: Rect{X: 20, Y: 0, Width: 10, Height: 10}, rng: 60, enabled: true}
	far := &focusable{bounds: Rect{X: 40, Y: 0, Width: 10, Height: 10}, rng: 60, enabled: true}
	off := &focusable{bounds: Rect{X: 0, Y: 0, Width: 10, Height: 10}, rng: 60}
	s.Add(far)
	s.Add(near)
	s.Add(off)

	m := mover{pos: Vec(0, 0), w: 10, h: 10}
	if got := s.UpdateFocus(m); got != Interactable(near) {
		t.Fatalf("UpdateFocus = %v, want nearest", got)
	}
	if !near.focused || far.focused || off.focused {
		t.Errorf("focus = near %v far %v off %v", near.focused, far.focused, off.focused)
	}
	if !s.InteractFocused() || near.used != 1 {
		t.Error("InteractFocused did not use the focused object")
	}

	m.pos = Vec(1000, 0)
	if got := s.UpdateFocus(m); got != nil {
		t.Errorf("UpdateFocus out of range = %v, want nil", got)
	}
	if near.focused || s.Focused() != nil {
		t.Error("focus not cleared out of range")
	}
	if s.InteractFocused() {
		t.Error("InteractFocused = true with nothing focused")
	}
}

func TestInRangeStrict(t *testing.T) {
	it := &focusable{bounds: Rect{X: 60, Y: 0, Width: 10, Height: 10}, rng: 60}
	if InRange(it, Vec(0, 0), 10, 10) {
		t.Error("distance equal to range counts as in range")
	}
	if !InRange(it, Vec(1, 0), 10, 10) {
		t.Error("distance below range not in range")
	}
}

func TestUpdateFunc(t *testing.T) {
	s := NewScene()
	var total float64
	s.Add(UpdateFunc(func(dt float64) { total += dt }))
	s.Update(0.5)
	s.Update(1)
	if total != 1.5 {
		t.Errorf("total dt = %v, want 1.5", total)
	}
}
