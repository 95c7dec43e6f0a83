package term

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/tilecore"
)

// DefaultHoldFrames is how long a single key press keeps a direction held.
// Terminal key repeat fires every ~30ms, so a few frames bridge the gaps.
const DefaultHoldFrames = 6

// Action is a non-movement command read from the keyboard.
type Action uint8

const (
	ActionNone Action = iota
	ActionQuit
	ActionPause
)

// KeyController implements tilecore.Controller from tcell key events. Events
// arrive on the polling goroutine while Intent is called from the loop, so
// both sides lock.
type KeyController struct {
	mu         sync.Mutex
	HoldFrames int

	left, right int // frames left of the held direction
	jump        int
	interact    bool
	element     tilecore.Element
}

// NewKeyController creates a controller with DefaultHoldFrames.
func NewKeyController() *KeyController {
	return &KeyController{HoldFrames: DefaultHoldFrames}
}

// HandleKey records a key press and returns any non-movement action it
// stands for.
func (c *KeyController) HandleKey(ev *tcell.EventKey) Action {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyLeft:
		c.left, c.right = c.HoldFrames, 0
	case tcell.KeyRight:
		c.right, c.left = c.HoldFrames, 0
	case tcell.KeyUp:
		c.jump = c.HoldFrames
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A':
			c.left, c.right = c.HoldFrames, 0
		case 'd', 'D':
			c.right, c.left = c.HoldFrames, 0
		case 'w', 'W', ' ':
			c.jump = c.HoldFrames
		case 'e', 'E':
			c.interact = true
		case '1':
			c.element = tilecore.ElementFire
		case '2':
			c.element = tilecore.ElementWater
		case '3':
			c.element = tilecore.ElementEarth
		case '4':
			c.element = tilecore.ElementAir
		case 'p', 'P':
			return ActionPause
		case 'q', 'Q':
			return ActionQuit
		}
	}
	return ActionNone
}

// Intent implements tilecore.Controller. Held directions count down one frame
// per call; one-shot presses are cleared once read.
func (c *KeyController) Intent() tilecore.Intent {
	c.mu.Lock()
	defer c.mu.Unlock()

	var in tilecore.Intent
	if c.left > 0 {
		in.Move--
		c.left--
	}
	if c.right > 0 {
		in.Move++
		c.right--
	}
	if c.jump > 0 {
		in.Jump = true
		c.jump--
	}
	in.Interact = c.interact
	in.Element = c.element
	c.interact = false
	c.element = tilecore.ElementNone
	return in
}

// Resumer is what Poll needs from the loop. *tilecore.Loop implements it.
type Resumer interface {
	TogglePause() bool
	Paused() bool
	Resume()
	Stop()
}

// Poll reads events from screen until the screen is finalized or the player
// quits, feeding key presses to c and pause or quit to loop. Run it on its own
// goroutine.
func Poll(screen tcell.Screen, c *KeyController, loop Resumer) {
	for {
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if loop.Paused() && ev.Key() == tcell.KeyRune && (ev.Rune() == 'e' || ev.Rune() == 'E') {
				loop.Resume()
				continue
			}
			switch c.HandleKey(ev) {
			case ActionQuit:
				loop.Stop()
				return
			case ActionPause:
				loop.TogglePause()
			}
		}
	}
}
