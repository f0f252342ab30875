package rng

import "devrand/ports"

// Real constrains distribution element types to the two floating widths the
// backend exposes entry points for. The float/double dispatch below is keyed
// purely on this static type; there is no runtime selection flag and no
// implicit conversion between element types.
type Real interface {
	float32 | float64
}

// UniformIntDistribution produces values uniformly distributed over the
// full unsigned 32-bit range. Only uint32 storage exists for it; requesting
// any other element type does not compile.
type UniformIntDistribution struct{}

// NewUniformInt returns a uniform integer distribution.
func NewUniformInt() UniformIntDistribution {
	return UniformIntDistribution{}
}

// Reset exists for interface symmetry with the other distributions and
// does nothing.
func (UniformIntDistribution) Reset() {}

// Apply fills out with exactly len(out) full-range uint32 values drawn from
// g's current seed/offset/stream state, issuing exactly one backend call.
func (UniformIntDistribution) Apply(g *Generator, out []uint32) error {
	backend, handle, err := g.resource()
	if err != nil {
		return err
	}
	return errorFrom(backend.GenerateUint32(handle, out))
}

// UniformRealDistribution produces values in the canonical (0, 1] interval,
// independent per element. T selects the backend entry point at compile
// time: float32 and float64 storage dispatch to distinct calls.
type UniformRealDistribution[T Real] struct{}

// NewUniformReal returns a uniform real distribution for element type T.
func NewUniformReal[T Real]() UniformRealDistribution[T] {
	return UniformRealDistribution[T]{}
}

// Reset exists for interface symmetry and does nothing.
func (UniformRealDistribution[T]) Reset() {}

// Apply fills out with exactly len(out) values in (0, 1] drawn from g's
// current seed/offset/stream state, issuing exactly one backend call.
func (UniformRealDistribution[T]) Apply(g *Generator, out []T) error {
	backend, handle, err := g.resource()
	if err != nil {
		return err
	}
	var status ports.Status
	switch buf := any(out).(type) {
	case []float32:
		status = backend.GenerateUniformFloat32(handle, buf)
	case []float64:
		status = backend.GenerateUniformFloat64(handle, buf)
	}
	return errorFrom(status)
}
