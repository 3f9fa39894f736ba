package particle

// EmitterConfig is the on-disk description of one phase's particle style.
//
// Numeric fields that may vary use the compact notation understood by
// ParseRange and ParseCurve:
//   - Fixed values: "0.5"
//   - Ranges: "[1 2]" (animation duration picked per particle)
//   - Curves: "0,0 .3,1 1,0" (alpha over the particle's lifetime)
type EmitterConfig struct {
	// Kind is the animation type: mist, spark or plasma
	Kind string `yaml:"kind"`

	// Duration is the lifetime range in seconds
	Duration string `yaml:"duration"`

	// Spread is the angular spread around the emission point (degrees)
	Spread float64 `yaml:"spread"`

	// RadiusJitter is the radial jitter around the emission circle (pixels)
	RadiusJitter float64 `yaml:"radiusJitter"`

	// Alpha is the opacity curve over the normalized lifetime
	Alpha string `yaml:"alpha,omitempty"`
}
