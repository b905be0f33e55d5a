package wlkit

// Point is a position in surface-local coordinates.
type Point struct {
	X, Y float64
}

// Vec2 is a 2D displacement, used for scroll wheel deltas.
type Vec2 struct {
	X, Y float64
}

// Size is a width/height pair in surface-local coordinates.
type Size struct {
	Width, Height float64
}
