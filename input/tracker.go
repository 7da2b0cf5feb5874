// Package input turns per-frame pointer samples into slice gestures.
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/slicerman/common"
)

type Phase int

const (
	PhaseStart Phase = iota
	PhaseMove
	PhaseEnd
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseMove:
		return "move"
	case PhaseEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Event is a gesture step in world coordinates (y-up).
type Event struct {
	Phase Phase
	X     float64
	Y     float64
}

// Sample is the pointer state for one frame in screen coordinates.
type Sample struct {
	Pressed bool
	X       int
	Y       int
}

// Tracker remembers whether a gesture is in progress.
type Tracker struct {
	down  bool
	lastX int
	lastY int
	touch ebiten.TouchID
}

// Step compares s with the previous frame and returns the resulting events.
// A held pointer that did not move produces nothing.
func (t *Tracker) Step(s Sample) []Event {
	switch {
	case s.Pressed && !t.down:
		t.down = true
		t.lastX, t.lastY = s.X, s.Y
		return []Event{worldEvent(PhaseStart, s.X, s.Y)}
	case s.Pressed && t.down:
		if s.X == t.lastX && s.Y == t.lastY {
			return nil
		}
		t.lastX, t.lastY = s.X, s.Y
		return []Event{worldEvent(PhaseMove, s.X, s.Y)}
	case !s.Pressed && t.down:
		t.down = false
		return []Event{worldEvent(PhaseEnd, t.lastX, t.lastY)}
	}
	return nil
}

// Active reports whether a gesture is in progress.
func (t *Tracker) Active() bool {
	return t.down
}

// Reset drops any gesture in progress without emitting an end event.
func (t *Tracker) Reset() {
	t.down = false
}

// Poll reads the first touch, or the left mouse button when nothing touches
// the screen.
func (t *Tracker) Poll() Sample {
	touches := ebiten.AppendTouchIDs(nil)
	if len(touches) > 0 {
		id := touches[0]
		for _, candidate := range touches {
			if candidate == t.touch {
				id = candidate
				break
			}
		}
		t.touch = id
		x, y := ebiten.TouchPosition(id)
		return Sample{Pressed: true, X: x, Y: y}
	}

	x, y := ebiten.CursorPosition()
	return Sample{Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), X: x, Y: y}
}

func worldEvent(p Phase, x, y int) Event {
	return Event{Phase: p, X: float64(x), Y: common.ToWorldY(float64(y))}
}
