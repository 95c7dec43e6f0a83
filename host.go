package tilecore

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
)

// HostKeys are the keys the host handles itself, outside the simulation.
type HostKeys struct {
	Pause      ebiten.Key
	Resume     ebiten.Key // also dismisses a dialogue that paused the game
	Screenshot ebiten.Key
	Quit       ebiten.Key
}

// DefaultHostKeys: P pauses, E resumes, F12 captures the screen and Escape
// quits.
var DefaultHostKeys = HostKeys{
	Pause:      ebiten.KeyP,
	Resume:     ebiten.KeyE,
	Screenshot: ebiten.KeyF12,
	Quit:       ebiten.KeyEscape,
}

// Host adapts a Scene and its Loop to ebiten.Game. ebiten calls Update at the
// configured TPS; each call steps the loop once, so the scene sees the same
// wall-clock deltas it would under Loop.Run.
type Host struct {
	scene      *Scene
	loop       *Loop
	settings   Settings
	keys       KeyState
	bindings   HostKeys
	shots      *ScreenshotQueue
	background Color
	quit       bool

	camera   *Camera
	world    *ebiten.Image
	overlays []Drawable
}

// NewHost creates a host drawing scene and stepping loop. loop must have been
// created with scene (or a wrapper around it) as its Updatable.
func NewHost(scene *Scene, loop *Loop, settings *Settings) *Host {
	s := DefaultSettings()
	if settings != nil {
		s = *settings
	}
	h := &Host{
		scene:      scene,
		loop:       loop,
		settings:   s,
		keys:       ebitenKeys{},
		bindings:   DefaultHostKeys,
		shots:      NewScreenshotQueue(s.ScreenshotDir),
		background: Color{0.08, 0.08, 0.12, 1},
	}
	if s.Debug {
		h.AddOverlay(NewFPSOverlay(loop))
	}
	return h
}

// SetKeyState replaces the keyboard the host reads.
func (h *Host) SetKeyState(ks KeyState) { h.keys = ks }

// SetBindings replaces the host keys.
func (h *Host) SetBindings(b HostKeys) { h.bindings = b }

// SetBackground sets the color the screen is cleared to.
func (h *Host) SetBackground(c Color) { h.background = c }

// SetCamera draws the scene onto a worldW x worldH offscreen image and shows
// the part cam looks at. The camera must also be added to the scene so it
// updates. A nil camera draws the scene straight to the screen.
func (h *Host) SetCamera(cam *Camera, worldW, worldH int) {
	h.camera = cam
	h.world = nil
	if cam != nil {
		h.world = ebiten.NewImage(worldW, worldH)
	}
}

// AddOverlay draws d in screen coordinates after the scene, unaffected by
// the camera. Overlays draw in the order added.
func (h *Host) AddOverlay(d Drawable) { h.overlays = append(h.overlays, d) }

// Screenshots returns the queue flushed at the end of every Draw. Hand it to
// a TestRunner to capture scripted frames.
func (h *Host) Screenshots() *ScreenshotQueue { return h.shots }

// Quit ends the game after the current frame.
func (h *Host) Quit() { h.quit = true }

// Update implements ebiten.Game.
func (h *Host) Update() error {
	if h.quit || h.keys.IsKeyJustPressed(h.bindings.Quit) {
		Log.WithField("frames", h.loop.Frames()).Info("quit")
		return ebiten.Termination
	}
	switch {
	case h.keys.IsKeyJustPressed(h.bindings.Pause):
		paused := h.loop.TogglePause()
		Log.WithField("paused", paused).Debug("pause toggled")
	case h.loop.Paused() && h.keys.IsKeyJustPressed(h.bindings.Resume):
		// The resume key doubles as interact; skip the frame so the player
		// does not read the same press and reopen the dialogue.
		h.loop.Resume()
		return nil
	}
	if h.keys.IsKeyJustPressed(h.bindings.Screenshot) {
		h.shots.Screenshot("manual")
	}
	h.loop.Step()
	return nil
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	screen.Fill(h.background.RGBA())
	if h.camera == nil {
		h.scene.Draw(screen)
	} else {
		h.world.Clear()
		h.scene.Draw(h.world)
		op := &ebiten.DrawImageOptions{GeoM: h.camera.GeoM()}
		screen.DrawImage(h.world, op)
	}
	for _, o := range h.overlays {
		o.Draw(screen)
	}
	h.shots.Flush(screen)
}

// Layout implements ebiten.Game. The logical screen has the configured size
// regardless of the window.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	return h.settings.ScreenWidth, h.settings.ScreenHeight
}

// Run opens a window configured by settings and runs the host until the
// window closes or Quit is called.
func (h *Host) Run() error {
	s := h.settings
	ebiten.SetWindowTitle(s.Title)
	ebiten.SetWindowSize(s.ScreenWidth, s.ScreenHeight)
	ebiten.SetTPS(s.FPS)
	if s.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	Log.WithFields(logrus.Fields{
		"title":  s.Title,
		"width":  s.ScreenWidth,
		"height": s.ScreenHeight,
		"fps":    s.FPS,
	}).Info("window opening")

	err := ebiten.RunGame(h)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Run is shorthand for NewHost(scene, loop, settings).Run().
func Run(scene *Scene, loop *Loop, settings *Settings) error {
	return NewHost(scene, loop, settings).Run()
}
