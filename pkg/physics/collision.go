// pkg/physics/collision.go
package physics

import "github.com/go-gl/mathgl/mgl64"

// Sphere represents a spherical collision shape
type Sphere struct {
	Center mgl64.Vec3
	Radius float64
}

// Box is an axis-aligned bounding box
type Box struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// Contains reports whether p lies inside or on the box.
func (b Box) Contains(p mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// ClosestPoint returns the point of the box nearest to p.
func (b Box) ClosestPoint(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		mgl64.Clamp(p[0], b.Min[0], b.Max[0]),
		mgl64.Clamp(p[1], b.Min[1], b.Max[1]),
		mgl64.Clamp(p[2], b.Min[2], b.Max[2]),
	}
}

// Collides checks if two spheres are overlapping
func (s Sphere) Collides(other Sphere) bool {
	r := s.Radius + other.Radius
	return LengthSquared(s.Center.Sub(other.Center)) < r*r
}

// CollisionResult contains information about a collision
type CollisionResult struct {
	Collided     bool
	Normal       mgl64.Vec3
	Penetration  float64
	ContactPoint mgl64.Vec3
}

// CheckSphereBox performs detailed collision detection between a sphere and a box.
// Normal points from the box toward the sphere center.
func CheckSphereBox(s Sphere, b Box) CollisionResult {
	closest := b.ClosestPoint(s.Center)
	delta := s.Center.Sub(closest)
	distSq := LengthSquared(delta)

	if distSq >= s.Radius*s.Radius {
		return CollisionResult{Collided: false}
	}

	// Center inside the box: push out along Y
	if distSq == 0 {
		return CollisionResult{
			Collided:     true,
			Normal:       Vertical(1),
			Penetration:  s.Radius + b.Max[AxisVertical] - s.Center[AxisVertical],
			ContactPoint: closest,
		}
	}

	dist := delta.Len()
	return CollisionResult{
		Collided:     true,
		Normal:       delta.Mul(1 / dist),
		Penetration:  s.Radius - dist,
		ContactPoint: closest,
	}
}
