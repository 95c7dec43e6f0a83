package tilecore

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RateSource reports the measured frame rate and pause state. *Loop
// implements it.
type RateSource interface {
	ActualFPS() float64
	Paused() bool
}

// FPSOverlay draws the measured frame rate in the top-left corner. It is a
// Drawable; register it last so it lands on top.
type FPSOverlay struct {
	src RateSource
	img *ebiten.Image
}

// NewFPSOverlay creates an overlay reading from src.
func NewFPSOverlay(src RateSource) *FPSOverlay {
	return &FPSOverlay{src: src}
}

// Text returns the overlay's current contents.
func (o *FPSOverlay) Text() string {
	s := fmt.Sprintf("FPS: %.1f\nTPS: %.1f", o.src.ActualFPS(), ebiten.ActualTPS())
	if o.src.Paused() {
		s += "\nPAUSED"
	}
	return s
}

// Draw implements Drawable.
func (o *FPSOverlay) Draw(target *ebiten.Image) {
	if o.img == nil {
		// 100x48 fits three lines of debug text.
		o.img = ebiten.NewImage(100, 48)
	}
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, o.Text())
	target.DrawImage(o.img, nil)
}
