// Package gesture interprets raw multi-touch trackpad frames as horizontal
// swipe gestures. A gesture session starts when exactly three fingers are
// down, accumulates horizontal displacement while they move together, and
// resolves to a swipe direction when the fingers lift.
package gesture

import (
	"encoding/json"
	"fmt"
)

// Phase describes a touch point's lifecycle within a frame.
type Phase int

const (
	PhaseBegan Phase = iota
	PhaseMoved
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseBegan:
		return "began"
	case PhaseMoved:
		return "moved"
	case PhaseEnded:
		return "ended"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts the phase names emitted by the touch helper.
func (p *Phase) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "began":
		*p = PhaseBegan
	case "moved":
		*p = PhaseMoved
	case "ended":
		*p = PhaseEnded
	default:
		return fmt.Errorf("unknown touch phase %q", s)
	}
	return nil
}

// sessionFingers is the finger count that opens a gesture session.
const sessionFingers = 3

// Touch is a single finger observation in one frame. ID is stable for the
// lifetime of the finger contact; X and Y are normalized to [0,1].
type Touch struct {
	ID    int     `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Phase Phase   `json:"phase"`
}

// Delta is the per-finger movement between two consecutive frames.
type Delta struct {
	DX float64
	DY float64
}

type point struct {
	x float64
	y float64
}

// Tracker turns touch frames into per-finger deltas and drives a Classifier
// through gesture begin/update/end. It is not safe for concurrent use; the
// engine feeds it from a single goroutine.
type Tracker struct {
	classifier *Classifier
	last       map[int]point
	active     bool
}

func NewTracker(classifier *Classifier) *Tracker {
	return &Tracker{
		classifier: classifier,
		last:       make(map[int]point),
	}
}

// Active reports whether a gesture session is in progress.
func (t *Tracker) Active() bool {
	return t.active
}

// IngestFrame processes one raw frame. Empty frames are ignored. A frame in
// which every touch has ended closes the session; a frame with exactly three
// live touches opens one.
func (t *Tracker) IngestFrame(touches []Touch) {
	if len(touches) == 0 {
		return
	}

	if allEnded(touches) {
		if t.active {
			t.classifier.End()
			t.active = false
		}
		clear(t.last)
		return
	}

	if !t.active && len(touches) == sessionFingers {
		t.active = true
		t.classifier.Begin()
	}
	if !t.active {
		return
	}

	deltas := make([]Delta, 0, len(touches))
	for _, tp := range touches {
		var d Delta
		if p, ok := t.last[tp.ID]; ok {
			d = Delta{DX: tp.X - p.x, DY: tp.Y - p.y}
		}
		deltas = append(deltas, d)

		if tp.Phase == PhaseEnded {
			delete(t.last, tp.ID)
		} else {
			t.last[tp.ID] = point{x: tp.X, y: tp.Y}
		}
	}
	t.classifier.Update(deltas)
}

func allEnded(touches []Touch) bool {
	for _, tp := range touches {
		if tp.Phase != PhaseEnded {
			return false
		}
	}
	return true
}
