package renderer

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/derros/go-diffuse-raytracer/pkg/core"
	"github.com/derros/go-diffuse-raytracer/pkg/geometry"
)

// tMinEpsilon suppresses self-intersection of bounce rays with the
// surface they originate from (shadow acne)
const tMinEpsilon = 0.001

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns the reference values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// Scene is what the renderer needs from a scene: a camera, a nearest-hit
// query and the background gradient colors
type Scene interface {
	GetCamera() *Camera
	GetBackgroundColors() (topColor, bottomColor core.Vec3)
	Hit(ray core.Ray, tMin, tMax float64) (*geometry.HitRecord, bool)
}

// Raytracer handles the rendering process
type Raytracer struct {
	scene  Scene
	width  int
	height int
	config SamplingConfig
	seed   int64
}

// NewRaytracer creates a new raytracer with a deterministic default seed
func NewRaytracer(scene Scene, width, height int) *Raytracer {
	return &Raytracer{
		scene:  scene,
		width:  width,
		height: height,
		config: DefaultSamplingConfig(),
		seed:   42,
	}
}

// SetSamplingConfig updates the sampling configuration
func (rt *Raytracer) SetSamplingConfig(config SamplingConfig) {
	rt.config = config
}

// SetSeed updates the base seed used to derive per-band generators
func (rt *Raytracer) SetSeed(seed int64) {
	rt.seed = seed
}

// backgroundGradient returns a gradient color based on ray direction
func (rt *Raytracer) backgroundGradient(r core.Ray) core.Vec3 {
	topColor, bottomColor := rt.scene.GetBackgroundColors()

	unitDirection := r.Direction.Normalize()

	// Map the y-component from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*bottom + t*top
	return bottomColor.Multiply(1.0 - t).Add(topColor.Multiply(t))
}

// RayColor returns the color seen along a ray. Each diffuse bounce keeps
// half the energy, so the recursive definition collapses to a loop with
// a multiplicative throughput. A ray that escapes returns the attenuated
// background gradient; an exhausted bounce budget returns black.
func (rt *Raytracer) RayColor(r core.Ray, depth int, random *rand.Rand) core.Vec3 {
	throughput := 1.0
	for ; depth > 0; depth-- {
		hit, isHit := rt.scene.Hit(r, tMinEpsilon, math.Inf(1))
		if !isHit {
			return rt.backgroundGradient(r).Multiply(throughput)
		}

		// Diffuse bounce toward a random point in the unit sphere
		// centered on the normal tip
		target := hit.Point.Add(hit.Normal).Add(core.RandomInUnitSphere(random))
		r = core.NewRay(hit.Point, target.Subtract(hit.Point))
		throughput *= 0.5
	}
	return core.Vec3{}
}

// vec3ToColor converts a Vec3 color to RGBA with gamma correction and clamping
func (rt *Raytracer) vec3ToColor(colorVec core.Vec3) color.RGBA {
	// Gamma-2 correction (square root) before quantization
	colorVec = colorVec.GammaCorrect(2.0)
	colorVec = colorVec.Clamp(0.0, 1.0)

	// 255.99 keeps full-scale channels at 255 under truncation without
	// dimming near-full channels one step
	return color.RGBA{
		R: uint8(255.99 * colorVec.X),
		G: uint8(255.99 * colorVec.Y),
		B: uint8(255.99 * colorVec.Z),
		A: 255,
	}
}

// RenderBounds renders the pixels inside bounds into img and returns
// statistics for that region. Callers must pass non-overlapping bounds
// when rendering concurrently; each pixel is written exactly once.
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, img *image.RGBA, random *rand.Rand) RenderStats {
	camera := rt.scene.GetCamera()
	stats := RenderStats{}
	invSamples := 1.0 / float64(rt.config.SamplesPerPixel)

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			colorAccum := core.Vec3{}

			for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
				// Image rows grow downward, viewport v grows upward
				u := (float64(i) + random.Float64()) / float64(rt.width)
				v := (float64(rt.height-1-j) + random.Float64()) / float64(rt.height)

				ray := camera.GetRay(u, v)
				colorAccum = colorAccum.Add(rt.RayColor(ray, rt.config.MaxDepth, random))
			}

			colorVec := colorAccum.Multiply(invSamples)
			stats.addPixel(colorVec.Luminance(), rt.config.SamplesPerPixel)
			img.SetRGBA(i, j, rt.vec3ToColor(colorVec))
		}
	}

	return stats
}

// RenderPass renders a single full-frame pass serially
func (rt *Raytracer) RenderPass() (*image.RGBA, RenderStats) {
	img := image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))
	random := rand.New(rand.NewSource(rt.seed))
	stats := rt.RenderBounds(img.Bounds(), img, random)
	return img, stats
}
