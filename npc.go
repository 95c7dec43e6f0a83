package tilecore

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// DefaultInteractRange is the centre distance at which NPCs can be used.
const DefaultInteractRange = 60

const npcAnimSpeed = 15

// DialogueSink shows a speaker's lines. The dialogue box itself lives outside
// the engine.
type DialogueSink func(speaker string, lines []string)

// NPC is a non-player character that can be talked to. It is Updatable,
// Drawable and Interactable.
type NPC struct {
	name     string
	position Vector2D
	width    int
	height   int
	dialogue []string

	enabled    bool
	interacted bool
	focused    bool
	rng        float32

	idleFrames []*ebiten.Image
	animFrame  int
	animCount  int

	indicator Vector2D
	bob       *Yoyo

	sink   DialogueSink
	events EventSink
}

// NewNPC creates an NPC with a w x h box at pos.
func NewNPC(name string, pos Vector2D, w, h int) *NPC {
	n := &NPC{
		name:     name,
		position: pos,
		width:    w,
		height:   h,
		enabled:  true,
		rng:      DefaultInteractRange,
	}
	n.bob = NewYoyo(&n.indicator, Vec(0, -14), Vec(0, -8), 20, ease.InOutSine)
	return n
}

// Name returns the NPC's display name.
func (n *NPC) Name() string { return n.name }

// SetDialogue replaces the NPC's lines.
func (n *NPC) SetDialogue(lines ...string) { n.dialogue = lines }

// Dialogue returns the NPC's lines.
func (n *NPC) Dialogue() []string { return n.dialogue }

// SetIdleFrames sets the idle animation, usually SpriteSheet.Row(2, 0).
func (n *NPC) SetIdleFrames(frames []*ebiten.Image) {
	n.idleFrames = frames
	n.animFrame = 0
}

// SetDialogueSink sets where Interact sends the NPC's lines.
func (n *NPC) SetDialogueSink(sink DialogueSink) { n.sink = sink }

// SetEventSink sets where Interact reports EventInteracted.
func (n *NPC) SetEventSink(sink EventSink) { n.events = sink }

// SetEnabled turns interaction on or off.
func (n *NPC) SetEnabled(enabled bool) { n.enabled = enabled }

// SetInteractRange overrides DefaultInteractRange.
func (n *NPC) SetInteractRange(r float32) { n.rng = r }

// Interacted reports whether the NPC has been talked to.
func (n *NPC) Interacted() bool { return n.interacted }

// PausesGame reports that talking to an NPC pauses the simulation.
func (n *NPC) PausesGame() bool { return true }

// Position returns the NPC's top-left corner.
func (n *NPC) Position() Vector2D { return n.position }

// Size returns the NPC's size in pixels.
func (n *NPC) Size() (w, h int) { return n.width, n.height }

// Bounds implements Interactable.
func (n *NPC) Bounds() Rect { return RectAt(n.position, n.width, n.height) }

// InteractRange implements Interactable.
func (n *NPC) InteractRange() float32 { return n.rng }

// CanInteract implements Interactable.
func (n *NPC) CanInteract() bool { return n.enabled }

// Focused implements Interactable.
func (n *NPC) Focused() bool { return n.focused }

// SetFocused implements Interactable.
func (n *NPC) SetFocused(focused bool) { n.focused = focused }

// Interact marks the NPC as talked to and hands its lines to the dialogue
// sink.
func (n *NPC) Interact() {
	n.interacted = true
	if n.sink != nil {
		n.sink(n.name, n.dialogue)
	}
	if n.events != nil {
		n.events.EmitEvent(Event{
			Type:   EventInteracted,
			Source: n,
			X:      n.position.X,
			Y:      n.position.Y,
			Name:   n.name,
		})
	}
}

// Update advances the idle animation and the focus indicator.
func (n *NPC) Update(dt float64) {
	n.animCount++
	if n.animCount >= npcAnimSpeed {
		n.animCount = 0
		if len(n.idleFrames) > 0 {
			n.animFrame = (n.animFrame + 1) % len(n.idleFrames)
		}
	}
	if n.focused {
		n.bob.Update(float32(dt))
	}
}

// AnimationFrame returns the index of the idle frame being shown.
func (n *NPC) AnimationFrame() int { return n.animFrame }

// Draw renders the NPC and, when focused, a marker above its head.
func (n *NPC) Draw(target *ebiten.Image) {
	if len(n.idleFrames) > 0 {
		img := n.idleFrames[n.animFrame]
		b := img.Bounds()
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(float64(n.width)/float64(b.Dx()), float64(n.height)/float64(b.Dy()))
		op.GeoM.Translate(float64(n.position.X), float64(n.position.Y))
		target.DrawImage(img, &op)
	} else {
		fillRect(target, n.position.X, n.position.Y, float32(n.width), float32(n.height), ColorMagenta)
	}

	if n.focused && n.enabled {
		x := n.position.X + float32(n.width)/2 - 3
		y := n.position.Y + n.indicator.Y
		fillRect(target, x, y, 6, 6, Color{1, 0.85, 0.2, 1})
	}
}
