package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"devrand/domain/rng"
	"devrand/ports"
)

// PartitionService splits one logical random stream across several
// independent engines at disjoint offsets and fills the parts
// concurrently. Because each worker owns its generator outright, no
// cross-goroutine handle sharing ever occurs; the stitched result equals
// what a single engine would produce sequentially for the uniform
// distributions.
type PartitionService struct {
	backend ports.Backend
	log     zerolog.Logger
}

// NewPartitionService builds a service issuing work against backend.
func NewPartitionService(backend ports.Backend, log zerolog.Logger) *PartitionService {
	return &PartitionService{backend: backend, log: log}
}

// UniformFloat64 generates count uniform (0, 1] values for the given
// engine kind and seed, split across parts concurrent workers.
func (s *PartitionService) UniformFloat64(ctx context.Context, kind rng.Kind, seed uint64, count, parts int) ([]float64, error) {
	out := make([]float64, count)
	err := s.partition(ctx, kind, seed, count, parts, func(g *rng.Generator, lo, hi int) error {
		return rng.NewUniformReal[float64]().Apply(g, out[lo:hi])
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UniformUint32 generates count full-range uint32 values for the given
// engine kind and seed, split across parts concurrent workers.
func (s *PartitionService) UniformUint32(ctx context.Context, kind rng.Kind, seed uint64, count, parts int) ([]uint32, error) {
	out := make([]uint32, count)
	err := s.partition(ctx, kind, seed, count, parts, func(g *rng.Generator, lo, hi int) error {
		return rng.NewUniformInt().Apply(g, out[lo:hi])
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// partition runs fill over parts contiguous slices of [0, count), each
// against its own identically-seeded generator offset to the slice start.
func (s *PartitionService) partition(ctx context.Context, kind rng.Kind, seed uint64, count, parts int, fill func(g *rng.Generator, lo, hi int) error) error {
	if count < 0 {
		return fmt.Errorf("count must not be negative, got %d", count)
	}
	if parts < 1 {
		return fmt.Errorf("parts must be positive, got %d", parts)
	}
	if parts > count {
		parts = count
	}
	if count == 0 {
		return nil
	}

	chunk := count / parts
	group, ctx := errgroup.WithContext(ctx)
	for part := 0; part < parts; part++ {
		lo := part * chunk
		hi := lo + chunk
		if part == parts-1 {
			hi = count
		}
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			g, err := rng.NewGenerator(kind, s.backend,
				rng.WithSeed(seed),
				rng.WithOffset(uint64(lo)),
			)
			if err != nil {
				return fmt.Errorf("create %s engine for part [%d:%d): %w", kind, lo, hi, err)
			}
			defer func() {
				if err := g.Close(); err != nil {
					s.log.Warn().Err(err).
						Str("engine", string(kind)).
						Msg("generator release failed")
				}
			}()
			if err := fill(g, lo, hi); err != nil {
				return fmt.Errorf("generate part [%d:%d): %w", lo, hi, err)
			}
			return nil
		})
	}
	return group.Wait()
}
