package tilecore

// ScriptedController is a Controller fed from a queue of intents, one per
// frame. When the queue is empty it defers to Fallback, or reports no input.
// Tests and demos use it to drive the player without a keyboard.
type ScriptedController struct {
	queue    []Intent
	Fallback Controller
}

// NewScriptedController creates a controller that falls back to fallback,
// which may be nil.
func NewScriptedController(fallback Controller) *ScriptedController {
	return &ScriptedController{Fallback: fallback}
}

// Intent implements Controller. It pops one queued intent per call.
func (c *ScriptedController) Intent() Intent {
	if len(c.queue) == 0 {
		if c.Fallback != nil {
			return c.Fallback.Intent()
		}
		return Intent{}
	}
	in := c.queue[0]
	copy(c.queue, c.queue[1:])
	c.queue = c.queue[:len(c.queue)-1]
	return in
}

// Pending returns the number of queued intents.
func (c *ScriptedController) Pending() int { return len(c.queue) }

// Inject queues a raw intent for one frame.
func (c *ScriptedController) Inject(in Intent) {
	c.queue = append(c.queue, in)
}

// InjectHold queues frames of walking in direction move (-1 or +1).
func (c *ScriptedController) InjectHold(move, frames int) {
	for i := 0; i < frames; i++ {
		c.Inject(Intent{Move: move})
	}
}

// InjectJump queues one frame with jump pressed.
func (c *ScriptedController) InjectJump() {
	c.Inject(Intent{Jump: true})
}

// InjectElement queues one frame switching to e.
func (c *ScriptedController) InjectElement(e Element) {
	c.Inject(Intent{Element: e})
}

// InjectInteract queues one frame with the interact key pressed.
func (c *ScriptedController) InjectInteract() {
	c.Inject(Intent{Interact: true})
}

// InjectIdle queues frames without input.
func (c *ScriptedController) InjectIdle(frames int) {
	for i := 0; i < frames; i++ {
		c.Inject(Intent{})
	}
}
