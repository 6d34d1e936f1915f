package geometry

import (
	"math"
	"testing"

	"github.com/derros/go-diffuse-raytracer/pkg/core"
)

func mustSphere(t *testing.T, center core.Vec3, radius float64) *Sphere {
	t.Helper()
	s, err := NewSphere(center, radius)
	if err != nil {
		t.Fatalf("NewSphere failed: %v", err)
	}
	return s
}

func TestNewSphere_Validation(t *testing.T) {
	tests := []struct {
		name        string
		radius      float64
		expectError bool
	}{
		{"positive radius", 0.5, false},
		{"zero radius", 0, true},
		{"negative radius", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSphere(core.NewVec3(0, 0, 0), tt.radius)
			if tt.expectError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Expected success, got error: %v", err)
			}
		})
	}
}

func TestSphere_Hit_CenterAim(t *testing.T) {
	// A ray aimed at the center from distance d hits at t = d - r
	sphere := mustSphere(t, core.NewVec3(0, 0, -5), 1.0)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.T-4.0) > 1e-9 {
		t.Errorf("Expected entry root t=4, got t=%f", hit.T)
	}

	expectedPoint := core.NewVec3(0, 0, -4)
	if hit.Point.Subtract(expectedPoint).Length() > 1e-9 {
		t.Errorf("Expected hit point %v, got %v", expectedPoint, hit.Point)
	}

	expectedNormal := core.NewVec3(0, 0, 1)
	if hit.Normal.Subtract(expectedNormal).Length() > 1e-9 {
		t.Errorf("Expected outward normal %v, got %v", expectedNormal, hit.Normal)
	}
	if math.Abs(hit.Normal.Length()-1.0) > 1e-9 {
		t.Errorf("Expected unit normal, got length %f", hit.Normal.Length())
	}
}

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := mustSphere(t, core.NewVec3(0, 0, 0), 1.0)
	// Perpendicular offset greater than the radius
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	if hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1)); isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_IntervalExclusion(t *testing.T) {
	sphere := mustSphere(t, core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))
	// Unconstrained roots are t=1 (entry) and t=3 (exit)

	tests := []struct {
		name      string
		tMin      float64
		tMax      float64
		expectHit bool
		expectedT float64
	}{
		{"both roots in range prefers entry", 0.001, 1000, true, 1.0},
		{"window excludes entry, accepts exit", 2.0, 1000, true, 3.0},
		{"window excludes both roots", 3.5, 1000, false, 0},
		{"tMax below entry", 0.001, 0.5, false, 0},
		{"open interval rejects root on boundary", 1.0, 3.0, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := sphere.Hit(ray, tt.tMin, tt.tMax)
			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%t, got hit=%t", tt.expectHit, isHit)
			}
			if isHit && math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
		})
	}
}

func TestSphere_Hit_UnnormalizedDirection(t *testing.T) {
	// Intersection math must not assume a unit direction
	sphere := mustSphere(t, core.NewVec3(0, 0, -5), 1.0)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -2))

	hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	// Same geometric point, parameter halved
	if math.Abs(hit.T-2.0) > 1e-9 {
		t.Errorf("Expected t=2 for doubled direction, got t=%f", hit.T)
	}
	expectedPoint := core.NewVec3(0, 0, -4)
	if hit.Point.Subtract(expectedPoint).Length() > 1e-9 {
		t.Errorf("Expected hit point %v, got %v", expectedPoint, hit.Point)
	}
}

func TestSphere_Hit_PointOnRay(t *testing.T) {
	sphere := mustSphere(t, core.NewVec3(1, 2, 3), 0.75)
	ray := core.NewRay(core.NewVec3(-2, 1, 0), core.NewVec3(1, 0.5, 1))

	hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	// The hit point must equal origin + t*direction exactly
	if hit.Point.Subtract(ray.At(hit.T)).Length() > 1e-12 {
		t.Errorf("Expected hit point on the ray, got %v vs %v", hit.Point, ray.At(hit.T))
	}
}
