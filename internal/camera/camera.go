// Package camera maps world coordinates to the viewport and follows a target
// with exponential smoothing, clamped to the level bounds.
package camera

import (
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// DefaultFollowSpeed is the fraction of the remaining distance covered per Follow call.
const DefaultFollowSpeed = 0.1

// Camera is the top-left corner of the viewport in world space.
type Camera struct {
	X, Y float64

	ViewportW float64
	ViewportH float64
	WorldW    float64
	WorldH    float64

	// FollowSpeed in (0, 1]; 1 snaps onto the target.
	FollowSpeed float64
}

// New creates a camera at the world origin.
func New(viewportW, viewportH, worldW, worldH float64) *Camera {
	return &Camera{
		ViewportW:   viewportW,
		ViewportH:   viewportH,
		WorldW:      worldW,
		WorldH:      worldH,
		FollowSpeed: DefaultFollowSpeed,
	}
}

// SetViewport updates the viewport size and re-clamps the position.
func (c *Camera) SetViewport(w, h float64) {
	c.ViewportW = w
	c.ViewportH = h
	c.clamp()
}

// Follow eases the camera toward centering (targetX, targetY) and clamps the
// result into the level bounds.
func (c *Camera) Follow(targetX, targetY float64) {
	wantX := targetX - c.ViewportW/2
	wantY := targetY - c.ViewportH/2

	c.X += (wantX - c.X) * c.FollowSpeed
	c.Y += (wantY - c.Y) * c.FollowSpeed

	c.clamp()
}

// CenterOn snaps the camera onto the target without easing.
func (c *Camera) CenterOn(targetX, targetY float64) {
	c.X = targetX - c.ViewportW/2
	c.Y = targetY - c.ViewportH/2
	c.clamp()
}

// clamp keeps the viewport inside [0, World-Viewport] on both axes.
// When the viewport is larger than the world the origin wins.
func (c *Camera) clamp() {
	c.X = core.ClampF(c.X, 0, c.WorldW-c.ViewportW)
	c.Y = core.ClampF(c.Y, 0, c.WorldH-c.ViewportH)
}

// WorldToScreen converts a world point to viewport coordinates.
func (c *Camera) WorldToScreen(x, y float64) (float64, float64) {
	return x - c.X, y - c.Y
}

// ScreenToWorld converts a viewport point to world coordinates.
func (c *Camera) ScreenToWorld(x, y float64) (float64, float64) {
	return x + c.X, y + c.Y
}

// View returns the viewport rectangle in world space.
func (c *Camera) View() core.Rect {
	return core.NewRect(c.X, c.Y, c.ViewportW, c.ViewportH)
}

// IsVisible reports whether r overlaps the viewport. Only used for culling.
func (c *Camera) IsVisible(r core.Rect) bool {
	return c.View().Intersects(r)
}
