// Package rng is the host-side control facade over a device-resident
// pseudorandom generation backend: engine handle lifecycle, typed
// distribution dispatch and error propagation around every backend call.
// Bit generation itself lives behind ports.Backend.
package rng

import (
	"fmt"

	"devrand/ports"
)

// Default seed constants for the three engine variants, applied when the
// caller does not supply a seed. Values match the backend's documented
// per-algorithm defaults.
const (
	DefaultSeedPhilox4x32_10 uint64 = 0xdeadbeefdeadbeef
	DefaultSeedXorwow        uint64 = 0
	DefaultSeedMrg32k3a      uint64 = 12345
)

// Kind names an engine variant for surfaces that select one at runtime
// (configuration, HTTP requests, CLI flags).
type Kind string

const (
	KindPhilox4x32_10 Kind = "philox4x32-10"
	KindXorwow        Kind = "xorwow"
	KindMrg32k3a      Kind = "mrg32k3a"
)

// DefaultSeed returns the documented default seed of the engine variant
// named by kind, or zero for unknown kinds.
func DefaultSeed(kind Kind) uint64 {
	switch kind {
	case KindPhilox4x32_10:
		return DefaultSeedPhilox4x32_10
	case KindXorwow:
		return DefaultSeedXorwow
	case KindMrg32k3a:
		return DefaultSeedMrg32k3a
	default:
		return 0
	}
}

// Generator owns exactly one backend generator resource together with its
// seed, offset and stream configuration. A Generator is single-owner: it is
// not safe for concurrent use, but independent Generators are fully
// independent and may be driven from independent goroutines.
type Generator struct {
	backend   ports.Backend
	handle    ports.Handle
	algorithm ports.Algorithm
	stream    ports.Stream
	closed    bool
}

type settings struct {
	seed      uint64
	offset    uint64
	stream    ports.Stream
	hasStream bool
}

// Option configures a Generator at construction time.
type Option func(*settings)

// WithSeed overrides the engine variant's default seed.
func WithSeed(seed uint64) Option {
	return func(s *settings) { s.seed = seed }
}

// WithOffset skips the first offset elements of the output stream, letting
// independent callers partition one logical stream into disjoint,
// reproducible sub-streams. A zero offset issues no backend call.
func WithOffset(offset uint64) Option {
	return func(s *settings) { s.offset = offset }
}

// WithStream binds the generator to an execution queue at construction.
func WithStream(stream ports.Stream) Option {
	return func(s *settings) {
		s.stream = stream
		s.hasStream = true
	}
}

// NewPhilox4x32_10 creates a Philox4x32-10 engine.
func NewPhilox4x32_10(backend ports.Backend, opts ...Option) (*Generator, error) {
	return newGenerator(backend, ports.AlgorithmPhilox4x32_10, DefaultSeedPhilox4x32_10, opts)
}

// NewXorwow creates an XORWOW engine.
func NewXorwow(backend ports.Backend, opts ...Option) (*Generator, error) {
	return newGenerator(backend, ports.AlgorithmXorwow, DefaultSeedXorwow, opts)
}

// NewMrg32k3a creates an MRG32k3a engine.
func NewMrg32k3a(backend ports.Backend, opts ...Option) (*Generator, error) {
	return newGenerator(backend, ports.AlgorithmMrg32k3a, DefaultSeedMrg32k3a, opts)
}

// NewGenerator creates the engine variant named by kind. It is the runtime
// counterpart of the named constructors.
func NewGenerator(kind Kind, backend ports.Backend, opts ...Option) (*Generator, error) {
	switch kind {
	case KindPhilox4x32_10:
		return NewPhilox4x32_10(backend, opts...)
	case KindXorwow:
		return NewXorwow(backend, opts...)
	case KindMrg32k3a:
		return NewMrg32k3a(backend, opts...)
	default:
		return nil, fmt.Errorf("unknown engine kind %q", kind)
	}
}

func newGenerator(backend ports.Backend, algorithm ports.Algorithm, defaultSeed uint64, opts []Option) (*Generator, error) {
	s := settings{seed: defaultSeed}
	for _, opt := range opts {
		opt(&s)
	}

	handle, status := backend.Create(algorithm)
	if !status.OK() {
		// Construction failure leaves no resource to destroy.
		return nil, NewError(status)
	}

	g := &Generator{
		backend:   backend,
		handle:    handle,
		algorithm: algorithm,
	}

	if err := g.Seed(s.seed); err != nil {
		g.release()
		return nil, err
	}
	if s.offset > 0 {
		if err := g.Offset(s.offset); err != nil {
			g.release()
			return nil, err
		}
	}
	if s.hasStream {
		if err := g.SetStream(s.stream); err != nil {
			g.release()
			return nil, err
		}
	}
	return g, nil
}

// Seed reinitializes the generator's state from a 64-bit seed. Previously
// generated values are unaffected.
func (g *Generator) Seed(seed uint64) error {
	backend, handle, err := g.resource()
	if err != nil {
		return err
	}
	return errorFrom(backend.SetSeed(handle, seed))
}

// Offset advances the output stream by offset elements before the next
// value is emitted.
func (g *Generator) Offset(offset uint64) error {
	backend, handle, err := g.resource()
	if err != nil {
		return err
	}
	return errorFrom(backend.SetOffset(handle, offset))
}

// SetStream rebinds which execution queue subsequent generation calls run
// on. It has no effect on values already emitted.
func (g *Generator) SetStream(stream ports.Stream) error {
	backend, handle, err := g.resource()
	if err != nil {
		return err
	}
	if err := errorFrom(backend.SetStream(handle, stream)); err != nil {
		return err
	}
	g.stream = stream
	return nil
}

// Algorithm returns the engine's fixed algorithm identifier.
func (g *Generator) Algorithm() ports.Algorithm {
	return g.algorithm
}

// Kind returns the engine variant's runtime name.
func (g *Generator) Kind() Kind {
	return Kind(g.algorithm.String())
}

// Stream returns the currently bound execution queue.
func (g *Generator) Stream() ports.Stream {
	return g.stream
}

// Close releases the backend resource. The handle is considered closed
// even when the backend reports a release failure; the failure is returned
// so the caller can record it, but the resource is never released twice.
// Closing an already closed Generator is a no-op.
func (g *Generator) Close() error {
	if g.closed {
		return nil
	}
	return errorFrom(g.release())
}

func (g *Generator) release() ports.Status {
	g.closed = true
	return g.backend.Destroy(g.handle)
}

// resource hands a distribution the minimal backend reference it needs to
// issue one generation call. Closed generators yield StatusNotCreated.
func (g *Generator) resource() (ports.Backend, ports.Handle, error) {
	if g.closed {
		return nil, 0, NewError(ports.StatusNotCreated)
	}
	return g.backend, g.handle, nil
}
