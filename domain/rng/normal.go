package rng

import "devrand/ports"

// NormalParams holds a normal distribution's mean and standard deviation
// as one immutable value that can be read and wholesale-replaced. Two
// NormalParams are equal iff both fields match exactly.
type NormalParams[T Real] struct {
	Mean   T
	StdDev T
}

// NormalDistribution produces values drawn from a Gaussian with the
// configured mean and standard deviation, independent per element. T
// selects the backend entry point at compile time. The params persist
// across Apply calls until replaced via SetParam.
type NormalDistribution[T Real] struct {
	params NormalParams[T]
}

// NewNormal returns a normal distribution with mean 0 and stddev 1.
func NewNormal[T Real]() *NormalDistribution[T] {
	return &NormalDistribution[T]{params: NormalParams[T]{Mean: 0, StdDev: 1}}
}

// NewNormalWithParams returns a normal distribution with the given params.
func NewNormalWithParams[T Real](params NormalParams[T]) *NormalDistribution[T] {
	return &NormalDistribution[T]{params: params}
}

// Mean returns the configured mean.
func (d *NormalDistribution[T]) Mean() T {
	return d.params.Mean
}

// StdDev returns the configured standard deviation.
func (d *NormalDistribution[T]) StdDev() T {
	return d.params.StdDev
}

// Param returns the current parameter value.
func (d *NormalDistribution[T]) Param() NormalParams[T] {
	return d.params
}

// SetParam replaces the distribution's parameters wholesale.
func (d *NormalDistribution[T]) SetParam(params NormalParams[T]) {
	d.params = params
}

// Reset exists for interface symmetry and does nothing; the params are the
// distribution's only state and persist until replaced.
func (d *NormalDistribution[T]) Reset() {}

// Apply fills out with exactly len(out) Gaussian values drawn from g's
// current seed/offset/stream state using the distribution's current mean
// and stddev, issuing exactly one backend call.
func (d *NormalDistribution[T]) Apply(g *Generator, out []T) error {
	backend, handle, err := g.resource()
	if err != nil {
		return err
	}
	var status ports.Status
	switch buf := any(out).(type) {
	case []float32:
		status = backend.GenerateNormalFloat32(handle, buf, float32(d.params.Mean), float32(d.params.StdDev))
	case []float64:
		status = backend.GenerateNormalFloat64(handle, buf, float64(d.params.Mean), float64(d.params.StdDev))
	}
	return errorFrom(status)
}
