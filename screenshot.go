package tilecore

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
)

// ScreenshotQueue collects labeled screenshot requests during a frame and
// writes them as PNG files once the frame has been drawn. It implements
// Screenshotter, so a TestRunner can feed it directly.
type ScreenshotQueue struct {
	// Dir is where PNG files are written. Created on demand.
	Dir string

	queue []string
	now   func() time.Time
}

// NewScreenshotQueue creates a queue writing into dir.
func NewScreenshotQueue(dir string) *ScreenshotQueue {
	return &ScreenshotQueue{Dir: dir, now: time.Now}
}

// Screenshot queues a labeled capture of the next drawn frame. Safe to call
// from Update or Draw.
func (q *ScreenshotQueue) Screenshot(label string) {
	q.queue = append(q.queue, label)
}

// Pending returns the number of queued captures.
func (q *ScreenshotQueue) Pending() int { return len(q.queue) }

// Flush captures screen once for every queued label. Call it at the end of
// Draw.
func (q *ScreenshotQueue) Flush(screen *ebiten.Image) {
	if len(q.queue) == 0 {
		return
	}
	defer func() { q.queue = q.queue[:0] }()

	if err := os.MkdirAll(q.Dir, 0o755); err != nil {
		Log.WithError(err).WithField("dir", q.Dir).Error("screenshot dir")
		return
	}

	size := screen.Bounds().Size()
	pixels := make([]byte, 4*size.X*size.Y)
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, size.X, size.Y)

	stamp := q.now().Format("20060102_150405")
	for _, label := range q.queue {
		path := q.path(stamp, label)
		if err := writePNG(path, img); err != nil {
			Log.WithError(err).Error("screenshot")
			continue
		}
		Log.WithFields(logrus.Fields{
			"label": label,
			"path":  path,
		}).Info("screenshot saved")
	}
}

func (q *ScreenshotQueue) path(stamp, label string) string {
	return filepath.Join(q.Dir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
}

// unpremultiply converts the premultiplied pixels ReadPixels returns into a
// straight-alpha image that PNG encoders expect.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	copy(src.Pix, pixels)
	dst := image.NewNRGBA(src.Rect)
	draw.Draw(dst, dst.Rect, src, image.Point{}, draw.Src)
	return dst
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// sanitizeLabel keeps ASCII letters, digits, '-' and '.', mapping anything
// else to '_'. Blank labels become "unlabeled".
func sanitizeLabel(label string) string {
	if label = strings.TrimSpace(label); label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		if r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.') {
			return r
		}
		return '_'
	}, label)
}
