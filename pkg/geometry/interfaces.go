package geometry

import "github.com/derros/go-diffuse-raytracer/pkg/core"

// HitRecord contains information about a ray-object intersection.
// It is only valid when the intersection query that produced it
// reported a hit.
type HitRecord struct {
	Point  core.Vec3 // Point of intersection
	Normal core.Vec3 // Outward unit surface normal at Point
	T      float64   // Parameter t along the ray
}

// Shape interface for objects that can be hit by rays. Hit reports the
// nearest intersection strictly inside the open interval (tMin, tMax).
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool)
}
