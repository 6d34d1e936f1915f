package geometry

import (
	"fmt"
	"math"

	"github.com/derros/go-diffuse-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere. The radius must be positive.
func NewSphere(center core.Vec3, radius float64) (*Sphere, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("geometry: sphere radius must be positive, got %g", radius)
	}
	return &Sphere{Center: center, Radius: radius}, nil
}

// Hit tests if a ray intersects with the sphere within (tMin, tMax)
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients with b halved: at² + 2bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant <= 0 {
		return nil, false
	}

	// Try the closer intersection point first so the near surface wins
	// when both roots are in range
	sqrtD := math.Sqrt(discriminant)
	root := (-halfB - sqrtD) / a
	if root <= tMin || root >= tMax {
		root = (-halfB + sqrtD) / a
		if root <= tMin || root >= tMax {
			return nil, false
		}
	}

	point := ray.At(root)
	return &HitRecord{
		T:     root,
		Point: point,
		// Radius is validated positive at construction, so this divide
		// needs no guard
		Normal: point.Subtract(s.Center).Multiply(1.0 / s.Radius),
	}, true
}
