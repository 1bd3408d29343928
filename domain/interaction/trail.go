package interaction

import (
	"time"

	"github.com/google/uuid"
)

// TrailPoint is one sampled pointer position.
type TrailPoint struct {
	ID        string    `json:"id"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	CreatedAt time.Time `json:"created_at"`
}

// MouseTrail keeps the most recent pointer positions, oldest first.
type MouseTrail struct {
	points []TrailPoint
	max    int
}

// NewMouseTrail creates a trail holding at most max points
func NewMouseTrail(max int) *MouseTrail {
	return &MouseTrail{points: []TrailPoint{}, max: max}
}

// Add appends a point, dropping the oldest ones beyond the limit.
func (t *MouseTrail) Add(x, y float64) TrailPoint {
	p := TrailPoint{ID: uuid.NewString(), X: x, Y: y, CreatedAt: time.Now()}
	if t.max <= 0 {
		return p
	}
	t.points = append(t.points, p)
	if over := len(t.points) - t.max; over > 0 {
		t.points = append([]TrailPoint(nil), t.points[over:]...)
	}
	return p
}

// Points returns a copy of the trail
func (t *MouseTrail) Points() []TrailPoint {
	out := make([]TrailPoint, len(t.points))
	copy(out, t.points)
	return out
}

// Len returns the number of points held
func (t *MouseTrail) Len() int {
	return len(t.points)
}

// Clear drops every point
func (t *MouseTrail) Clear() {
	t.points = []TrailPoint{}
}
