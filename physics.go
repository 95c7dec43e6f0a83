package tilecore

// Physics holds the per-frame movement constants of an actor. Values are
// applied once per update, in pixels per frame; they are plain values and are
// never shared as mutable vectors.
type Physics struct {
	Gravity      float32 `mapstructure:"gravity"`        // added to vertical velocity every frame
	JumpImpulse  float32 `mapstructure:"jump_impulse"`   // vertical velocity set on jump (negative is up)
	MaxFallSpeed float32 `mapstructure:"max_fall_speed"` // terminal downward velocity
	MoveSpeed    float32 `mapstructure:"move_speed"`     // horizontal speed while walking
}

// DefaultPhysics are the platformer tunings the engine ships with.
var DefaultPhysics = Physics{
	Gravity:      0.5,
	JumpImpulse:  -14,
	MaxFallSpeed: 15,
	MoveSpeed:    4,
}

// withDefaults fills zero fields from DefaultPhysics.
func (p Physics) withDefaults() Physics {
	if p.Gravity == 0 {
		p.Gravity = DefaultPhysics.Gravity
	}
	if p.JumpImpulse == 0 {
		p.JumpImpulse = DefaultPhysics.JumpImpulse
	}
	if p.MaxFallSpeed == 0 {
		p.MaxFallSpeed = DefaultPhysics.MaxFallSpeed
	}
	if p.MoveSpeed == 0 {
		p.MoveSpeed = DefaultPhysics.MoveSpeed
	}
	return p
}
