package bongo

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in an input script.
type scriptStep struct {
	Action string `json:"action"`
	Key    string `json:"key,omitempty"`
	Face   string `json:"face,omitempty"`
	Mode   string `json:"mode,omitempty"`
	Label  string `json:"label,omitempty"`
	Frames int    `json:"frames,omitempty"`

	code uint32
}

// script is the top-level JSON structure for an input script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner plays a JSON input script against a Source, one step per
// frame: key presses go through an InjectedInput, face and mode steps call
// the source directly, and screenshot steps write PNG files.
//
//	{"steps": [
//	  {"action": "press", "key": "a"},
//	  {"action": "wait", "frames": 10},
//	  {"action": "screenshot", "label": "a-held"},
//	  {"action": "release", "key": "a"},
//	  {"action": "tap", "key": "2"},
//	  {"action": "mode", "mode": "standard"},
//	  {"action": "face", "face": "f3"}
//	]}
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool

	input *InjectedInput

	// Screenshots lists the files written so far.
	Screenshots []string
}

// LoadScript parses a JSON input script. Unknown actions and key names are
// rejected up front.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	for i := range sc.Steps {
		st := &sc.Steps[i]
		switch st.Action {
		case "press", "release", "tap":
			code, ok := KeyCode(st.Key)
			if !ok {
				return nil, fmt.Errorf("parse input script: step %d: unknown key %q", i, st.Key)
			}
			st.code = code
		case "wait", "face", "mode", "screenshot":
		default:
			return nil, fmt.Errorf("parse input script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: sc.Steps, input: NewInjectedInput()}, nil
}

// Input returns the source the runner injects key events into. Pass it to
// NewSource, alone or combined with a capture through MultiInput.
func (r *ScriptRunner) Input() InputSource {
	return r.input
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame. Call it before Source.Tick.
func (r *ScriptRunner) Step(s *Source) error {
	if r.done {
		return nil
	}
	// Wait for pending injections to drain before advancing.
	if r.input.Pending() > 0 {
		return nil
	}
	if r.waitCount > 0 {
		r.waitCount--
		return nil
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return nil
	}

	st := r.steps[r.cursor]
	r.cursor++

	var err error
	switch st.Action {
	case "press":
		r.input.InjectPress(st.code)
	case "release":
		r.input.InjectRelease(st.code)
	case "tap":
		r.input.InjectTap(st.code)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "face":
		if !s.SetFace(st.Face) {
			err = fmt.Errorf("script step %d: no face %q", r.cursor-1, st.Face)
		}
	case "mode":
		s.SetMode(st.Mode)
	case "screenshot":
		var path string
		path, err = s.Screenshot(st.Label)
		if err == nil {
			r.Screenshots = append(r.Screenshots, path)
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && r.input.Pending() == 0 {
		r.done = true
	}
	return err
}
