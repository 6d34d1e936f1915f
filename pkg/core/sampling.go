package core

import "math/rand"

// RandomInUnitSphere generates a random point strictly inside the unit
// sphere by rejection sampling: draw from the [-1,1]³ cube until the
// draw lands inside the sphere. Expected iterations ≈ 2 (cube to
// sphere volume ratio), so the unbounded loop is fine in practice.
func RandomInUnitSphere(random *rand.Rand) Vec3 {
	for {
		p := NewVec3(
			2*random.Float64()-1,
			2*random.Float64()-1,
			2*random.Float64()-1,
		)
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}
