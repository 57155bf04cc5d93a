package layout

import (
	"math"

	"github.com/jwnbm/familytree/internal/tree"
)

// Rect is an axis-aligned rectangle in screen coordinates, anchored at its
// top-left corner.
type Rect struct {
	X, Y, W, H float32
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float32 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float32 { return r.Y + r.H }

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(p tree.Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// SnapToGrid rounds each axis independently to the nearest multiple of
// gridSize, with halves rounding away from zero.
func SnapToGrid(p tree.Point, gridSize float32) tree.Point {
	return tree.Point{
		X: float32(math.Round(float64(p.X/gridSize))) * gridSize,
		Y: float32(math.Round(float64(p.Y/gridSize))) * gridSize,
	}
}

// toScreen maps a world position to screen space for the given zoom and pan.
func toScreen(p, origin tree.Point, zoom float32, pan tree.Point) tree.Point {
	return tree.Point{
		X: origin.X + (p.X-origin.X)*zoom + pan.X,
		Y: origin.Y + (p.Y-origin.Y)*zoom + pan.Y,
	}
}
