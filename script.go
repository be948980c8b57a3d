package reel

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in an input script.
type scriptStep struct {
	Action string  `json:"action"`
	Button string  `json:"button,omitempty"`
	Axis   string  `json:"axis,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// inputScript is the top-level JSON structure for an input script.
type inputScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner drives a controller from a JSON script of synthetic input,
// one step per tick. It is mostly useful for producing reference
// recordings and for automated gameplay tests. Attach it with
// Controller.SetScriptRunner.
//
// Supported actions: "press", "release", "tap" (button), "axis" (axis, x,
// y), "wait" (frames), "record" and "stop".
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadInputScript parses a JSON input script and returns a runner ready to
// be attached to a controller.
func LoadInputScript(jsonData []byte) (*ScriptRunner, error) {
	var script inputScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "press", "release", "tap":
			if st.Button == "" {
				return nil, fmt.Errorf("parse input script: step %d: %s needs a button", i, st.Action)
			}
		case "axis":
			if st.Axis == "" {
				return nil, fmt.Errorf("parse input script: step %d: axis needs an axis", i)
			}
		case "wait", "record", "stop":
		default:
			return nil, fmt.Errorf("parse input script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// SetScriptRunner attaches a runner to the controller. The runner's step
// method is called from Controller.Update before injected input is
// consumed. Pass nil to detach.
func (c *Controller) SetScriptRunner(runner *ScriptRunner) {
	c.runner = runner
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one tick. Called from Controller.Update.
func (r *ScriptRunner) step(c *Controller) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(c.injectQueue) > 0 {
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
	case "press":
		c.InjectPress(st.Button)
	case "release":
		c.InjectRelease(st.Button)
	case "tap":
		c.InjectTap(st.Button)
	case "axis":
		c.InjectAxis(st.Axis, st.X, st.Y)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "record":
		c.Record()
	case "stop":
		c.Stop()
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(c.injectQueue) == 0 {
		r.done = true
	}
}
