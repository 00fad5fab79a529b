package parameter

// Particle field
const (
	// ParticleCountDefault is the fixed particle set size when config does not override it
	ParticleCountDefault = 15000
	// ParticleCountMin/Max bound configured particle counts
	ParticleCountMin = 100
	ParticleCountMax = 200000

	// MorphRate is the per-tick fraction of the remaining gap each particle closes toward its target
	MorphRate = 0.06
	// ExpansionRate is the per-tick smoothing fraction for the uniform scale factor
	ExpansionRate = 0.08
	// TintRate is the per-tick lerp factor from current tint to target tint
	TintRate = 0.08

	// ExpansionDefault is the starting uniform scale
	ExpansionDefault = 1.0
	// TintDefault is the starting tint
	TintDefault = "#ff00cc"
)
