package tilecore

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float fields simultaneously. Create one via the
// convenience constructors (TweenVector, TweenValue, TweenAlpha) and call
// Update(dt) each frame; values are written back on every update.
//
// There is no global animation manager; owners call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	set    [4]func(float32)
	count  int
	Done   bool
}

// Update advances all tweens by dt and writes the values to the target fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.set[i](val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

func (g *TweenGroup) add(from, to, duration float32, fn ease.TweenFunc, set func(float32)) {
	g.tweens[g.count] = gween.New(from, to, duration, fn)
	g.set[g.count] = set
	g.count++
}

// TweenVector animates v toward to over duration.
func TweenVector(v *Vector2D, to Vector2D, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(v.X, to.X, duration, fn, func(x float32) { v.X = x })
	g.add(v.Y, to.Y, duration, fn, func(y float32) { v.Y = y })
	return g
}

// TweenValue animates a single float32 toward to over duration.
func TweenValue(field *float32, to, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(*field, to, duration, fn, func(x float32) { *field = x })
	return g
}

// TweenAlpha animates the alpha of c toward to over duration.
func TweenAlpha(c *Color, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(float32(c.A), float32(to), duration, fn, func(a float32) { c.A = float64(a) })
	return g
}

// Yoyo moves a vector back and forth between two points forever, easing each
// leg with fn. Durations are in the same unit the caller passes to Update.
type Yoyo struct {
	from, to Vector2D
	duration float32
	fn       ease.TweenFunc
	target   *Vector2D
	group    *TweenGroup
	forward  bool
	legs     int
}

// NewYoyo starts target at from and sends it toward to.
func NewYoyo(target *Vector2D, from, to Vector2D, duration float32, fn ease.TweenFunc) *Yoyo {
	if fn == nil {
		fn = ease.Linear
	}
	*target = from
	y := &Yoyo{from: from, to: to, duration: duration, fn: fn, target: target, forward: true}
	y.group = TweenVector(target, to, duration, fn)
	return y
}

// Update advances the current leg and turns around at either end.
func (y *Yoyo) Update(dt float32) {
	y.group.Update(dt)
	if !y.group.Done {
		return
	}
	y.forward = !y.forward
	y.legs++
	dest := y.from
	if y.forward {
		dest = y.to
	}
	y.group = TweenVector(y.target, dest, y.duration, y.fn)
}

// Forward reports whether the current leg heads toward the second point.
func (y *Yoyo) Forward() bool { return y.forward }

// Legs returns the number of completed legs.
func (y *Yoyo) Legs() int { return y.legs }
