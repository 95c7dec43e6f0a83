package tilecore

import (
	"encoding/json"
	"fmt"
	"strings"
)

// testStep represents a single action in an input script.
type testStep struct {
	Action    string `json:"action"`
	Label     string `json:"label,omitempty"`
	Direction string `json:"direction,omitempty"`
	Element   string `json:"element,omitempty"`
	Frames    int    `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for an input script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// Screenshotter captures labelled screenshots. *ScreenshotQueue implements it.
type Screenshotter interface {
	Screenshot(label string)
}

// TestRunner sequences scripted input and screenshots across frames for
// automated play-throughs. Registered before the player, each frame's input is
// queued before the player reads it; registered after, input lags one frame.
//
// Supported actions: hold (direction left/right, frames), jump, element
// (fire, water, earth, air), interact, wait (frames) and screenshot (label).
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool

	ctrl  *ScriptedController
	shots Screenshotter
}

// LoadTestScript parses a JSON input script that will feed ctrl.
func LoadTestScript(jsonData []byte, ctrl *ScriptedController) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: script.Steps, ctrl: ctrl}, nil
}

func (st testStep) validate() error {
	switch st.Action {
	case "hold":
		if _, err := parseDirection(st.Direction); err != nil {
			return err
		}
	case "element":
		if _, err := parseElement(st.Element); err != nil {
			return err
		}
	case "jump", "interact", "wait", "screenshot":
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

func parseDirection(s string) (int, error) {
	switch strings.ToLower(s) {
	case "left":
		return -1, nil
	case "right":
		return 1, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

func parseElement(s string) (Element, error) {
	for e := ElementFire; e <= ElementAir; e++ {
		if strings.EqualFold(e.String(), s) {
			return e, nil
		}
	}
	return ElementNone, fmt.Errorf("unknown element %q", s)
}

// SetScreenshotter sets where screenshot steps are sent.
func (r *TestRunner) SetScreenshotter(s Screenshotter) { r.shots = s }

// Done reports whether all steps have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Update advances the runner by one frame.
func (r *TestRunner) Update(dt float64) {
	if r.done {
		return
	}
	// Wait for queued input to drain before advancing.
	if r.ctrl.Pending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		if r.shots != nil {
			r.shots.Screenshot(st.Label)
		} else {
			Log.WithField("label", st.Label).Warn("test script screenshot without a screenshotter")
		}
	case "hold":
		dir, _ := parseDirection(st.Direction)
		frames := st.Frames
		if frames < 1 {
			frames = 1
		}
		r.ctrl.InjectHold(dir, frames)
	case "jump":
		r.ctrl.InjectJump()
	case "element":
		e, _ := parseElement(st.Element)
		r.ctrl.InjectElement(e)
	case "interact":
		r.ctrl.InjectInteract()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && r.ctrl.Pending() == 0 {
		r.done = true
	}
}
