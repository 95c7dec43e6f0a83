package tilecore

// Interactable objects can be focused and used by a nearby actor. The core
// never triggers interaction itself; the input/UI layer asks the scene which
// interactable is in range and then calls Interact on it.
type Interactable interface {
	// Bounds is the object's box in world pixels.
	Bounds() Rect
	// InteractRange is the maximum centre-to-centre distance, in pixels, at
	// which the object can be used.
	InteractRange() float32
	// CanInteract reports whether the object currently accepts interaction.
	CanInteract() bool
	Focused() bool
	SetFocused(focused bool)
	Interact()
}

// InRange reports whether a mover of size w x h at pos is close enough to use
// it: the distance between the two box centres must be strictly less than the
// object's interaction range.
func InRange(it Interactable, pos Vector2D, w, h int) bool {
	d := it.Bounds().Center().DistanceTo(RectAt(pos, w, h).Center())
	return d < it.InteractRange()
}

// UpdateFocus focuses the nearest interactable the mover is in range of and
// clears focus on every other one. It returns the focused object, or nil.
func (s *Scene) UpdateFocus(mover Positioned) Interactable {
	pos := mover.Position()
	w, h := mover.Size()
	center := RectAt(pos, w, h).Center()

	var (
		best     Interactable
		bestIdx  = -1
		bestDist float32
	)
	for i, e := range s.interactables {
		if !s.valid(e.h) {
			continue
		}
		it := e.v
		if !it.CanInteract() || !InRange(it, pos, w, h) {
			continue
		}
		d := it.Bounds().Center().DistanceTo(center)
		if best == nil || d < bestDist {
			best, bestIdx, bestDist = it, i, d
		}
	}
	for i, e := range s.interactables {
		if !s.valid(e.h) {
			continue
		}
		e.v.SetFocused(i == bestIdx)
	}
	return best
}

// Focused returns the currently focused interactable, or nil.
func (s *Scene) Focused() Interactable {
	for _, e := range s.interactables {
		if s.valid(e.h) && e.v.Focused() {
			return e.v
		}
	}
	return nil
}

// InteractFocused calls Interact on the focused interactable. It reports
// whether anything was used.
func (s *Scene) InteractFocused() bool {
	it := s.Focused()
	if it == nil || !it.CanInteract() {
		return false
	}
	it.Interact()
	return true
}

// Pauser can suspend the simulation. *Loop implements it.
type Pauser interface {
	Pause()
}

// GamePauser is implemented by interactables whose use should pause the game,
// such as an NPC opening a dialogue.
type GamePauser interface {
	PausesGame() bool
}

// InteractionDriver is the glue between the player's input and the scene's
// interactables. Registered after the player, it refocuses the nearest
// interactable every frame and uses it when the player pressed interact.
type InteractionDriver struct {
	scene  *Scene
	player *Player
	pauser Pauser
}

// NewInteractionDriver creates a driver for player in scene. pauser may be
// nil; otherwise it is paused when a GamePauser is used.
func NewInteractionDriver(scene *Scene, player *Player, pauser Pauser) *InteractionDriver {
	return &InteractionDriver{scene: scene, player: player, pauser: pauser}
}

// Update implements Updatable.
func (d *InteractionDriver) Update(dt float64) {
	focused := d.scene.UpdateFocus(d.player)
	if focused == nil || !d.player.LastIntent().Interact {
		return
	}
	if !d.scene.InteractFocused() {
		return
	}
	if gp, ok := focused.(GamePauser); ok && gp.PausesGame() && d.pauser != nil {
		d.pauser.Pause()
	}
}
