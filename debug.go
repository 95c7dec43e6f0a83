package tilecore

import (
	"time"

	"github.com/sirupsen/logrus"
)

// debugLogPass logs the timing of one update or draw pass. Only called when
// the scene is in debug mode.
func (s *Scene) debugLogPass(pass string, elapsed time.Duration, objects int) {
	if !s.debug {
		return
	}
	Log.WithFields(logrus.Fields{
		"pass":    pass,
		"elapsed": elapsed,
		"objects": objects,
	}).Debug("scene pass")
}

// debugMaxObjects is the registration count above which a debug scene warns.
const debugMaxObjects = 10000

// debugCheckSize warns when the scene grows past debugMaxObjects, which in
// practice means something is being registered every frame and never removed.
// It warns once per crossing; dropping back to the threshold re-arms it.
func (s *Scene) debugCheckSize() {
	n := s.Len()
	if n <= debugMaxObjects {
		s.sizeWarned = false
		return
	}
	if s.sizeWarned {
		return
	}
	s.sizeWarned = true
	Log.WithFields(logrus.Fields{
		"objects":   n,
		"threshold": debugMaxObjects,
	}).Warn("scene object count exceeds threshold")
}
