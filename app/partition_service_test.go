package app

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"devrand/adapters/backend/soft"
	"devrand/domain/rng"
	"devrand/internal/testkit"
	"devrand/ports"
)

// TestPartitionEqualsSequential verifies the stitched concurrent result
// is element-for-element identical to a single engine's sequential output.
func TestPartitionEqualsSequential(t *testing.T) {
	backend := soft.New(zerolog.Nop())
	service := NewPartitionService(backend, zerolog.Nop())

	const count = 1000
	sequential, err := service.UniformFloat64(context.Background(), rng.KindPhilox4x32_10, 12345, count, 1)
	if err != nil {
		t.Fatalf("sequential: %v", err)
	}

	for _, parts := range []int{2, 3, 7} {
		concurrent, err := service.UniformFloat64(context.Background(), rng.KindPhilox4x32_10, 12345, count, parts)
		if err != nil {
			t.Fatalf("parts=%d: %v", parts, err)
		}
		for i := range sequential {
			if concurrent[i] != sequential[i] {
				t.Fatalf("parts=%d: element %d diverges: %v vs %v", parts, i, concurrent[i], sequential[i])
			}
		}
	}
}

// TestPartitionUint32 verifies the uint32 path fills every element.
func TestPartitionUint32(t *testing.T) {
	backend := soft.New(zerolog.Nop())
	service := NewPartitionService(backend, zerolog.Nop())

	out, err := service.UniformUint32(context.Background(), rng.KindXorwow, 5, 513, 4)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(out) != 513 {
		t.Fatalf("expected 513 elements, got %d", len(out))
	}
}

// TestPartitionValidation verifies argument validation and the zero-count
// short circuit.
func TestPartitionValidation(t *testing.T) {
	service := NewPartitionService(testkit.NewMockBackend(), zerolog.Nop())

	if _, err := service.UniformFloat64(context.Background(), rng.KindXorwow, 1, -1, 2); err == nil {
		t.Fatal("expected error for negative count")
	}
	if _, err := service.UniformFloat64(context.Background(), rng.KindXorwow, 1, 10, 0); err == nil {
		t.Fatal("expected error for zero parts")
	}
	out, err := service.UniformFloat64(context.Background(), rng.KindXorwow, 1, 0, 2)
	if err != nil {
		t.Fatalf("zero count: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty result, got %d elements", len(out))
	}
}

// TestPartitionReleasesHandles verifies every worker releases its engine,
// including when generation fails mid-flight.
func TestPartitionReleasesHandles(t *testing.T) {
	backend := testkit.NewMockBackend()
	service := NewPartitionService(backend, zerolog.Nop())

	if _, err := service.UniformUint32(context.Background(), rng.KindMrg32k3a, 9, 100, 4); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if backend.LiveHandles() != 0 {
		t.Fatalf("expected all handles released, %d still live", backend.LiveHandles())
	}

	backend.FailNext(testkit.OpGenerateUint32, ports.StatusLaunchFailure)
	if _, err := service.UniformUint32(context.Background(), rng.KindMrg32k3a, 9, 100, 4); err == nil {
		t.Fatal("expected propagated generation failure")
	}
	if backend.LiveHandles() != 0 {
		t.Fatalf("expected all handles released after failure, %d still live", backend.LiveHandles())
	}
}
