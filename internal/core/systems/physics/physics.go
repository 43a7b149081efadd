package physics

import "math"

// Vec2 is a point or displacement in the plane.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (v Vec2) Add(o Vec2) Vec2                { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2                { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }
func (v Vec2) Scale(k float64) Vec2           { return Vec2{X: v.X * k, Y: v.Y * k} }
func (v Vec2) Norm() float64                  { return math.Hypot(v.X, v.Y) }
func (v Vec2) Append(dst []float64) []float64 { return append(dst, v.X, v.Y) }

// Distance2 computes Euclidean distance between two points.
func Distance2(a, b Vec2) float64 { return math.Hypot(b.X-a.X, b.Y-a.Y) }

// Distance computes the distance between the centres of two bodies.
func Distance(a, b Body) float64 { return Distance2(a.Center(), b.Center()) }

// IsCollision reports whether two bodies overlap, i.e. their centre distance
// is strictly less than the sum of their radii.
func IsCollision(a, b Body) bool {
	return Distance(a, b) < a.Radius()+b.Radius()
}

// MaxPairwiseDistance returns the largest distance between any two points.
// It returns 0 for fewer than two points.
func MaxPairwiseDistance(points []Vec2) float64 {
	maxDist := 0.0
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			if d := Distance2(points[i], points[j]); d > maxDist {
				maxDist = d
			}
		}
	}
	return maxDist
}
