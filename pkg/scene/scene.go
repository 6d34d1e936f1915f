package scene

import (
	"github.com/derros/go-diffuse-raytracer/pkg/core"
	"github.com/derros/go-diffuse-raytracer/pkg/geometry"
	"github.com/derros/go-diffuse-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering. The shape list
// is built once and read-only while rendering.
type Scene struct {
	Camera      *renderer.Camera
	Shapes      []geometry.Shape
	TopColor    core.Vec3 // Background gradient color at unit direction y=+1
	BottomColor core.Vec3 // Background gradient color at unit direction y=-1
}

// NewDefaultScene creates the fixed two-sphere scene: a small sphere in
// front of the camera and a very large sphere acting as the ground plane
func NewDefaultScene() *Scene {
	return &Scene{
		Camera: renderer.NewCamera(),
		Shapes: []geometry.Shape{
			mustSphere(core.NewVec3(0, 0, -1), 0.5),
			mustSphere(core.NewVec3(0, -100.5, -1), 100.0),
		},
		TopColor:    core.NewVec3(0.5, 0.7, 1.0),
		BottomColor: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// mustSphere wraps NewSphere for fixed scene constants that are known
// to be valid
func mustSphere(center core.Vec3, radius float64) *geometry.Sphere {
	s, err := geometry.NewSphere(center, radius)
	if err != nil {
		panic(err)
	}
	return s
}

// GetCamera returns the scene's camera
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetBackgroundColors returns the background gradient colors
func (s *Scene) GetBackgroundColors() (topColor, bottomColor core.Vec3) {
	return s.TopColor, s.BottomColor
}

// Hit returns the nearest intersection among all shapes within the open
// interval (tMin, tMax). The search window's upper bound shrinks to the
// best hit found so far, so any farther surface is rejected by its own
// intersection test without extra bookkeeping. Iteration order does not
// affect the result.
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*geometry.HitRecord, bool) {
	var closestHit *geometry.HitRecord
	closestSoFar := tMax
	hitAnything := false

	for _, shape := range s.Shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}
