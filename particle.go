package tilecore

import (
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
)

// Range is a min/max range sampled uniformly.
type Range struct {
	Min, Max float32
}

// Random returns a value in [Min, Max] drawn from rng.
func (r Range) Random(rng *rand.Rand) float32 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float32()*(r.Max-r.Min)
}

// particle holds per-particle simulation state.
type particle struct {
	x, y    float32
	vx, vy  float32
	life    float32 // remaining frames
	maxLife float32
	size    float32
	alpha   float32
	color   Color
}

// EmitterConfig controls how particles are spawned and behave. Times are in
// frames and speeds in pixels per frame, like the rest of the simulation.
type EmitterConfig struct {
	// MaxParticles is the pool size. New particles are dropped when full.
	MaxParticles int
	// EmitRate is the number of particles spawned per frame while active.
	EmitRate float32
	Lifetime Range
	Speed    Range
	// Angle is the range of emission angles in radians; 0 points right and
	// -π/2 points up.
	Angle Range
	// Size is the particle square's edge in pixels at birth. It shrinks to
	// zero over the lifetime.
	Size Range
	// Gravity is added to every particle's velocity each frame.
	Gravity Vector2D
	Color   Color
}

// ParticleEmitter manages a pool of particles. It emits continuously while
// active and in bursts on demand.
type ParticleEmitter struct {
	config    EmitterConfig
	particles []particle
	alive     int
	emitAccum float32
	active    bool
	origin    Vector2D
	rng       *rand.Rand
}

// NewParticleEmitter creates an emitter with a preallocated pool.
func NewParticleEmitter(cfg EmitterConfig) *ParticleEmitter {
	n := cfg.MaxParticles
	if n <= 0 {
		n = 128
	}
	return &ParticleEmitter{
		config:    cfg,
		particles: make([]particle, n),
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// Seed makes the emitter's randomness reproducible.
func (e *ParticleEmitter) Seed(seed uint64) {
	e.rng = rand.New(rand.NewPCG(seed, seed))
}

// SetOrigin moves the point continuous emission spawns from.
func (e *ParticleEmitter) SetOrigin(pos Vector2D) { e.origin = pos }

// Start begins continuous emission.
func (e *ParticleEmitter) Start() { e.active = true }

// Stop ends continuous emission. Live particles play out.
func (e *ParticleEmitter) Stop() { e.active = false }

// Reset stops emission and kills every particle.
func (e *ParticleEmitter) Reset() {
	e.active = false
	e.alive = 0
	e.emitAccum = 0
}

// IsActive reports whether the emitter emits continuously.
func (e *ParticleEmitter) IsActive() bool { return e.active }

// AliveCount returns the number of live particles.
func (e *ParticleEmitter) AliveCount() int { return e.alive }

// Config returns the emitter's config for live tuning.
func (e *ParticleEmitter) Config() *EmitterConfig { return &e.config }

// Burst spawns up to n particles at pos tinted c.
func (e *ParticleEmitter) Burst(pos Vector2D, n int, c Color) {
	for i := 0; i < n && e.alive < len(e.particles); i++ {
		e.spawn(pos, c)
	}
}

// Update advances the simulation by dt frames.
func (e *ParticleEmitter) Update(dt float64) {
	step := float32(dt)
	gx, gy := e.config.Gravity.X*step, e.config.Gravity.Y*step

	i := 0
	for i < e.alive {
		p := &e.particles[i]
		p.life -= step
		if p.life <= 0 {
			e.alive--
			e.particles[i] = e.particles[e.alive]
			continue
		}
		p.vx += gx
		p.vy += gy
		p.x += p.vx * step
		p.y += p.vy * step
		p.alpha = p.life / p.maxLife
		i++
	}

	if e.active && e.config.EmitRate > 0 {
		e.emitAccum += e.config.EmitRate * step
		for e.emitAccum >= 1 {
			e.emitAccum--
			if e.alive < len(e.particles) {
				e.spawn(e.origin, e.config.Color)
			}
		}
	}
}

func (e *ParticleEmitter) spawn(pos Vector2D, c Color) {
	p := &e.particles[e.alive]
	angle := float64(e.config.Angle.Random(e.rng))
	speed := e.config.Speed.Random(e.rng)
	p.x, p.y = pos.X, pos.Y
	p.vx = float32(math.Cos(angle)) * speed
	p.vy = float32(math.Sin(angle)) * speed
	p.life = e.config.Lifetime.Random(e.rng)
	if p.life <= 0 {
		p.life = 1
	}
	p.maxLife = p.life
	p.size = e.config.Size.Random(e.rng)
	p.alpha = 1
	p.color = c
	e.alive++
}

// Draw implements Drawable. Each particle is a square that fades and shrinks
// with age.
func (e *ParticleEmitter) Draw(target *ebiten.Image) {
	for i := 0; i < e.alive; i++ {
		p := &e.particles[i]
		s := p.size * p.alpha
		fillRect(target, p.x-s/2, p.y-s/2, s, s, p.color.WithAlpha(p.color.A*float64(p.alpha)))
	}
}
