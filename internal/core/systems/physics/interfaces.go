package physics

// Body is a circular body in the plane. Collision tests only need the
// centre and the radius.
type Body interface {
	Center() Vec2
	Radius() float64
}
