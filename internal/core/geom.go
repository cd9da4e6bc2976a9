// Package core provides fundamental types and utilities for the tank game.
// It contains no external dependencies (especially no Bubble Tea) to keep
// simulation logic pure and testable.
package core

import "math"

// Rect represents an axis-aligned bounding box used for collision detection.
// Hitboxes are never rotated, even for entities that render rotated.
type Rect struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
// Uses standard AABB collision detection; touching edges do not overlap.
func (r Rect) Intersects(other Rect) bool {
	// No overlap if one rect is completely to the left, right, above, or below
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Pad grows the rectangle by n on every side.
func (r Rect) Pad(n float64) Rect {
	return Rect{X: r.X - n, Y: r.Y - n, W: r.W + 2*n, H: r.H + 2*n}
}

// Translate returns the rectangle moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Separation computes the minimum translation vector that moves r out of other.
// The push happens along the axis with the smaller overlap, by the full overlap,
// in the direction of the center-to-center delta. ok is false when the
// rectangles do not overlap on both axes.
func Separation(r, other Rect) (dx, dy float64, ok bool) {
	rcx, rcy := r.Center()
	ocx, ocy := other.Center()
	deltaX := rcx - ocx
	deltaY := rcy - ocy

	overlapX := (r.W+other.W)/2 - math.Abs(deltaX)
	overlapY := (r.H+other.H)/2 - math.Abs(deltaY)
	if overlapX <= 0 || overlapY <= 0 {
		return 0, 0, false
	}

	if overlapX < overlapY {
		if deltaX > 0 {
			return overlapX, 0, true
		}
		return -overlapX, 0, true
	}
	if deltaY > 0 {
		return 0, overlapY, true
	}
	return 0, -overlapY, true
}

// Distance returns the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// NormalizeAngle maps an angle in radians into (-pi, pi].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// Sign returns -1, 0 or 1 according to the sign of v.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
