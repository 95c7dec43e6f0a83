package tilecore

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeyState reads the keyboard. The default implementation asks ebiten; tests
// substitute a fake.
type KeyState interface {
	IsKeyPressed(k ebiten.Key) bool
	IsKeyJustPressed(k ebiten.Key) bool
}

type ebitenKeys struct{}

func (ebitenKeys) IsKeyPressed(k ebiten.Key) bool     { return ebiten.IsKeyPressed(k) }
func (ebitenKeys) IsKeyJustPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }

// KeyBindings maps actions to keys. Any key of a slice triggers the action.
type KeyBindings struct {
	Left     []ebiten.Key
	Right    []ebiten.Key
	Jump     []ebiten.Key
	Interact []ebiten.Key
	Elements [4][]ebiten.Key // fire, water, earth, air
}

// DefaultKeyBindings: arrows or A/D to walk, W/Up/Space to jump, E to
// interact and 1..4 to pick an element.
var DefaultKeyBindings = KeyBindings{
	Left:     []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft},
	Right:    []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight},
	Jump:     []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp, ebiten.KeySpace},
	Interact: []ebiten.Key{ebiten.KeyE},
	Elements: [4][]ebiten.Key{
		{ebiten.Key1, ebiten.KeyNumpad1},
		{ebiten.Key2, ebiten.KeyNumpad2},
		{ebiten.Key3, ebiten.KeyNumpad3},
		{ebiten.Key4, ebiten.KeyNumpad4},
	},
}

// KeyboardController turns key state into player intents.
type KeyboardController struct {
	Bindings KeyBindings
	keys     KeyState
}

// NewKeyboardController reads the real keyboard with DefaultKeyBindings.
func NewKeyboardController() *KeyboardController {
	return &KeyboardController{Bindings: DefaultKeyBindings, keys: ebitenKeys{}}
}

// NewKeyboardControllerWith reads keys from ks.
func NewKeyboardControllerWith(ks KeyState, b KeyBindings) *KeyboardController {
	return &KeyboardController{Bindings: b, keys: ks}
}

// Intent implements Controller. Holding both directions cancels out.
func (c *KeyboardController) Intent() Intent {
	var in Intent
	if c.anyPressed(c.Bindings.Left) {
		in.Move--
	}
	if c.anyPressed(c.Bindings.Right) {
		in.Move++
	}
	in.Jump = c.anyPressed(c.Bindings.Jump)
	in.Interact = c.anyJustPressed(c.Bindings.Interact)
	for i, keys := range c.Bindings.Elements {
		if c.anyJustPressed(keys) {
			in.Element = ElementFire + Element(i)
		}
	}
	return in
}

func (c *KeyboardController) anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if c.keys.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func (c *KeyboardController) anyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if c.keys.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}
