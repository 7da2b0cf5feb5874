package scene

import "github.com/milk9111/slicerman/common"

const (
	TrailLength   = 12
	TrailFadeTime = 0.25
)

// trail is the swipe ribbon. It keeps the most recent points and fades out
// after the gesture ends.
type trail struct {
	points  []Point
	alpha   float64
	fading  bool
	visible bool
}

func (t *trail) start() {
	t.points = t.points[:0]
	t.alpha = 1
	t.fading = false
	t.visible = true
}

func (t *trail) add(p Point) {
	t.points = append(t.points, p)
	if over := len(t.points) - TrailLength; over > 0 {
		t.points = append(t.points[:0], t.points[over:]...)
	}
}

func (t *trail) end() {
	if t.visible {
		t.fading = true
	}
}

func (t *trail) update(dt float64) {
	if !t.fading {
		return
	}
	t.alpha = common.Clamp01(t.alpha - dt/TrailFadeTime)
	if t.alpha == 0 {
		t.fading = false
		t.visible = false
	}
}
