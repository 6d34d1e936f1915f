package renderer

import (
	"github.com/derros/go-diffuse-raytracer/pkg/core"
)

// Camera generates rays for rendering from a fixed pinhole geometry
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
}

// NewCamera creates a simple camera matching the reference viewport:
// a 2:1 image plane spanning [-2,2]x[-1,1] at focal distance 1.
// The geometry is not parameterized; rendering to a non-2:1 pixel grid
// stretches the image.
func NewCamera() *Camera {
	aspectRatio := 2.0
	viewportHeight := 2.0
	viewportWidth := aspectRatio * viewportHeight
	focalLength := 1.0

	origin := core.NewVec3(0, 0, 0)
	horizontal := core.NewVec3(viewportWidth, 0, 0)
	vertical := core.NewVec3(0, viewportHeight, 0)
	lowerLeftCorner := origin.Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(core.NewVec3(0, 0, focalLength))

	return &Camera{
		origin:          origin,
		horizontal:      horizontal,
		vertical:        vertical,
		lowerLeftCorner: lowerLeftCorner,
	}
}

// GetRay generates a ray for normalized image-plane coordinates (u, v).
// The direction is intentionally not normalized; intersection math does
// not require it.
func (c *Camera) GetRay(u, v float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(u)).
		Add(c.vertical.Multiply(v)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}
