package entity

// Size is a width/height pair in layout units.
type Size struct {
	W, H float64
}

// FloatGeometry is the position and size of a floating panel group,
// relative to the shell window.
type FloatGeometry struct {
	X, Y float64
	W, H float64
}

// Center returns the center point of the geometry.
func (g FloatGeometry) Center() (cx, cy float64) {
	return g.X + g.W/2, g.Y + g.H/2
}

// DefaultFloatGeometry is used when a panel is floated without an
// explicit geometry.
var DefaultFloatGeometry = FloatGeometry{X: 120, Y: 90, W: 480, H: 360}
