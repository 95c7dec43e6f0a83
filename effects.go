package tilecore

import "math"

// DefaultEffectsConfig is the emitter used by NewEffects: short-lived squares
// thrown upward and pulled back by gravity.
var DefaultEffectsConfig = EmitterConfig{
	MaxParticles: 256,
	Lifetime:     Range{18, 30},
	Speed:        Range{1, 3},
	Angle:        Range{-math.Pi, 0},
	Size:         Range{2, 4},
	Gravity:      Vector2D{Y: 0.15},
	Color:        ColorWhite,
}

var dustColor = Color{0.75, 0.7, 0.6, 0.8}

// Effects turns gameplay events into particle bursts: dust on landing and
// sparks in the new element's colour on an element switch. It is an
// EventSink, an Updatable and a Drawable; register it after the actors so
// the particles draw on top.
type Effects struct {
	*ParticleEmitter
}

// NewEffects creates an effects layer with DefaultEffectsConfig.
func NewEffects() *Effects {
	return &Effects{ParticleEmitter: NewParticleEmitter(DefaultEffectsConfig)}
}

// EmitEvent implements EventSink. Events are positioned at the actor's
// top-left; bursts start at its feet or centre.
func (fx *Effects) EmitEvent(ev Event) {
	w, h := eventSize(ev)
	switch ev.Type {
	case EventLanded:
		fx.Burst(Vec(ev.X+w/2, ev.Y+h), 8, dustColor)
	case EventElementChanged:
		fx.Burst(Vec(ev.X+w/2, ev.Y+h/2), 16, ev.Element.GlowColor())
	}
}

func eventSize(ev Event) (w, h float32) {
	if p, ok := ev.Source.(Positioned); ok {
		iw, ih := p.Size()
		return float32(iw), float32(ih)
	}
	return 0, 0
}
