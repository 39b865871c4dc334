package gesture

import "math"

// Direction is the resolved swipe direction.
type Direction int

const (
	DirectionNext Direction = iota
	DirectionPrevious
)

func (d Direction) String() string {
	if d == DirectionNext {
		return "next"
	}
	return "previous"
}

func (d Direction) invert() Direction {
	if d == DirectionNext {
		return DirectionPrevious
	}
	return DirectionNext
}

// Settings supplies the tunables the classifier reads at decision time, so
// configuration changes apply without rebuilding the pipeline.
type Settings interface {
	// SwipeThreshold is the minimum absolute accumulated horizontal
	// displacement required to emit a swipe.
	SwipeThreshold() float64

	// NaturalSwipe selects swipe polarity: when false the resolved
	// direction is inverted.
	NaturalSwipe() bool
}

// SwipeHandler receives the resolved direction when a gesture completes
// above the threshold.
type SwipeHandler func(Direction)

// Classifier accumulates horizontal displacement over one gesture session.
// Frame contributions are accepted only when all fingers move horizontally
// in the same direction and the motion is predominantly horizontal;
// vertical, diagonal, and divergent (pinch-like) frames contribute nothing.
type Classifier struct {
	settings Settings
	onSwipe  SwipeHandler

	active bool
	accum  float64
}

func NewClassifier(settings Settings, onSwipe SwipeHandler) *Classifier {
	return &Classifier{
		settings: settings,
		onSwipe:  onSwipe,
	}
}

// Begin opens a gesture session. The accumulator is zero outside sessions.
func (c *Classifier) Begin() {
	c.active = true
	c.accum = 0
}

// Update folds one frame's per-finger deltas into the session accumulator.
func (c *Classifier) Update(deltas []Delta) {
	if !c.active || len(deltas) == 0 {
		return
	}
	c.accum += contribution(deltas)
}

// End closes the session. If the accumulated displacement clears the
// threshold the handler is invoked with the resolved direction; otherwise
// the gesture is dropped. The accumulator is reset either way.
func (c *Classifier) End() {
	accum := c.accum
	c.accum = 0
	c.active = false

	if math.Abs(accum) < c.settings.SwipeThreshold() {
		return
	}

	dir := DirectionPrevious
	if accum < 0 {
		dir = DirectionNext
	}
	if !c.settings.NaturalSwipe() {
		dir = dir.invert()
	}
	c.onSwipe(dir)
}

// Accumulated returns the current session accumulator.
func (c *Classifier) Accumulated() float64 {
	return c.accum
}

// contribution returns sumDx when all horizontal deltas share a sign and
// the frame is predominantly horizontal, and 0 otherwise.
func contribution(deltas []Delta) float64 {
	var sumDx, sumDy float64
	allNonNeg, allNonPos := true, true
	for _, d := range deltas {
		sumDx += d.DX
		sumDy += d.DY
		if d.DX < 0 {
			allNonNeg = false
		}
		if d.DX > 0 {
			allNonPos = false
		}
	}
	if !allNonNeg && !allNonPos {
		return 0
	}
	if math.Abs(sumDx) <= math.Abs(sumDy) {
		return 0
	}
	return sumDx
}
