package layout

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"whiteboard/domain/core/entities"
)

// PanAnimation eases a collection's pan offset towards a target. There is no
// background ticker: the host calls Update with the elapsed seconds of each
// frame until Done is set.
type PanAnimation struct {
	collection     *entities.Node
	tweenX, tweenY *gween.Tween
	targetX        float64
	targetY        float64
	Done           bool
}

// AnimateCenterOn starts an eased pan that ends with node centered in a
// viewport of the given size. A nil easing function uses OutCubic; a
// non-positive duration pans immediately.
func AnimateCenterOn(collection, node *entities.Node, viewportWidth, viewportHeight float64, duration time.Duration, fn ease.TweenFunc) *PanAnimation {
	toX, toY := entities.PanToCenter(node, viewportWidth, viewportHeight)
	return AnimatePanTo(collection, toX, toY, duration, fn)
}

// AnimatePanTo starts an eased pan to (toX, toY).
func AnimatePanTo(collection *entities.Node, toX, toY float64, duration time.Duration, fn ease.TweenFunc) *PanAnimation {
	if fn == nil {
		fn = ease.OutCubic
	}
	a := &PanAnimation{collection: collection, targetX: toX, targetY: toY}

	if duration <= 0 {
		a.finish()
		return a
	}

	secs := float32(duration.Seconds())
	a.tweenX = gween.New(float32(collection.PanX()), float32(toX), secs, fn)
	a.tweenY = gween.New(float32(collection.PanY()), float32(toY), secs, fn)
	return a
}

// Update advances the animation by dt seconds and applies the new offset.
func (a *PanAnimation) Update(dt float32) {
	if a.Done {
		return
	}

	x, doneX := a.tweenX.Update(dt)
	y, doneY := a.tweenY.Update(dt)
	if doneX && doneY {
		a.finish()
		return
	}
	a.collection.SetPan(float64(x), float64(y))
}

// Target returns the final pan offset
func (a *PanAnimation) Target() (float64, float64) {
	return a.targetX, a.targetY
}

// finish lands exactly on the target, avoiding float32 rounding.
func (a *PanAnimation) finish() {
	a.collection.SetPan(a.targetX, a.targetY)
	a.Done = true
}
