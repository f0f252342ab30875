// Package soft is an in-process reference implementation of the backend
// call surface. It stands in for the device-resident engine so the facade
// can run and be tested without device hardware: same call surface, same
// status taxonomy, deterministic output per (algorithm, seed, offset).
//
// It does not reimplement the device algorithms' bit-generation internals.
// Each handle draws from a seedable software source whose effective seed
// folds the algorithm identifier into the caller's seed, so the three
// engine variants produce distinct but individually reproducible streams.
package soft

import (
	"hash/fnv"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat/distuv"

	"devrand/ports"
)

// seqIncrement is the fixed PCG sequence selector; only the state seed
// varies per handle so that seed alone determines the stream.
const seqIncrement = 0x9e3779b97f4a7c15

type generatorState struct {
	id        uuid.UUID
	algorithm ports.Algorithm
	seed      uint64
	offset    uint64
	stream    ports.Stream

	src   *rand.PCG
	rng   *rand.Rand
	dirty bool
}

// Backend is a software ports.Backend. Unlike individual generator
// handles, the Backend itself is safe for concurrent use; each call locks
// the registry for its duration.
type Backend struct {
	mu      sync.Mutex
	log     zerolog.Logger
	handles map[ports.Handle]*generatorState
	next    ports.Handle
}

// New returns an empty software backend logging through log.
func New(log zerolog.Logger) *Backend {
	return &Backend{
		log:     log,
		handles: make(map[ports.Handle]*generatorState),
	}
}

func (b *Backend) Create(algorithm ports.Algorithm) (ports.Handle, ports.Status) {
	switch algorithm {
	case ports.AlgorithmPhilox4x32_10, ports.AlgorithmXorwow, ports.AlgorithmMrg32k3a:
	default:
		return 0, ports.StatusTypeError
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	state := &generatorState{
		id:        uuid.New(),
		algorithm: algorithm,
		dirty:     true,
	}
	b.handles[b.next] = state
	b.log.Debug().
		Str("id", state.id.String()).
		Str("algorithm", algorithm.String()).
		Uint64("handle", uint64(b.next)).
		Msg("generator created")
	return b.next, ports.StatusSuccess
}

func (b *Backend) Destroy(h ports.Handle) ports.Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	state, ok := b.handles[h]
	if !ok {
		return ports.StatusNotCreated
	}
	delete(b.handles, h)
	b.log.Debug().
		Str("id", state.id.String()).
		Uint64("handle", uint64(h)).
		Msg("generator destroyed")
	return ports.StatusSuccess
}

func (b *Backend) SetStream(h ports.Handle, stream ports.Stream) ports.Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	state, ok := b.handles[h]
	if !ok {
		return ports.StatusNotCreated
	}
	// Execution streams order device work; the software backend runs
	// synchronously, so the binding is recorded and nothing more.
	state.stream = stream
	return ports.StatusSuccess
}

func (b *Backend) SetSeed(h ports.Handle, seed uint64) ports.Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	state, ok := b.handles[h]
	if !ok {
		return ports.StatusNotCreated
	}
	state.seed = seed
	state.dirty = true
	return ports.StatusSuccess
}

func (b *Backend) SetOffset(h ports.Handle, offset uint64) ports.Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	state, ok := b.handles[h]
	if !ok {
		return ports.StatusNotCreated
	}
	state.offset = offset
	state.dirty = true
	return ports.StatusSuccess
}

func (b *Backend) GenerateUint32(h ports.Handle, out []uint32) ports.Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	state, ok := b.handles[h]
	if !ok {
		return ports.StatusNotCreated
	}
	state.rewind()
	for i := range out {
		out[i] = state.rng.Uint32()
	}
	return ports.StatusSuccess
}

func (b *Backend) GenerateUniformFloat32(h ports.Handle, out []float32) ports.Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	state, ok := b.handles[h]
	if !ok {
		return ports.StatusNotCreated
	}
	state.rewind()
	for i := range out {
		// Float32 is in [0, 1); flipping the interval yields (0, 1].
		out[i] = 1 - state.rng.Float32()
	}
	return ports.StatusSuccess
}

func (b *Backend) GenerateUniformFloat64(h ports.Handle, out []float64) ports.Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	state, ok := b.handles[h]
	if !ok {
		return ports.StatusNotCreated
	}
	state.rewind()
	for i := range out {
		out[i] = 1 - state.rng.Float64()
	}
	return ports.StatusSuccess
}

func (b *Backend) GenerateNormalFloat32(h ports.Handle, out []float32, mean, stddev float32) ports.Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	state, ok := b.handles[h]
	if !ok {
		return ports.StatusNotCreated
	}
	if stddev < 0 {
		return ports.StatusOutOfRange
	}
	state.rewind()
	normal := distuv.Normal{Mu: float64(mean), Sigma: float64(stddev), Src: state.src}
	for i := range out {
		out[i] = float32(normal.Rand())
	}
	return ports.StatusSuccess
}

func (b *Backend) GenerateNormalFloat64(h ports.Handle, out []float64, mean, stddev float64) ports.Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	state, ok := b.handles[h]
	if !ok {
		return ports.StatusNotCreated
	}
	if stddev < 0 {
		return ports.StatusOutOfRange
	}
	state.rewind()
	normal := distuv.Normal{Mu: mean, Sigma: stddev, Src: state.src}
	for i := range out {
		out[i] = normal.Rand()
	}
	return ports.StatusSuccess
}

// rewind rebuilds the source after a seed or offset change. The offset is
// realized as a skip of one raw draw per element position, which matches
// the per-element draw count of the uniform generators exactly.
func (s *generatorState) rewind() {
	if !s.dirty {
		return
	}
	s.src = rand.NewPCG(effectiveSeed(s.algorithm, s.seed), seqIncrement)
	s.rng = rand.New(s.src)
	for i := uint64(0); i < s.offset; i++ {
		s.src.Uint64()
	}
	s.dirty = false
}

// effectiveSeed folds the algorithm identity into the caller's seed so
// variants seeded identically still emit distinct streams.
func effectiveSeed(algorithm ports.Algorithm, seed uint64) uint64 {
	h := fnv.New64a()
	h.Write([]byte(algorithm.String()))
	return h.Sum64() ^ seed
}
