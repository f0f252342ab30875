package rng

import (
	"errors"
	"testing"

	"devrand/internal/testkit"
	"devrand/ports"
)

// TestDefaultSeeds verifies each engine variant seeds the backend with its
// documented default when the caller supplies none.
func TestDefaultSeeds(t *testing.T) {
	tests := []struct {
		name      string
		construct func(ports.Backend, ...Option) (*Generator, error)
		algorithm ports.Algorithm
		seed      uint64
	}{
		{"philox", NewPhilox4x32_10, ports.AlgorithmPhilox4x32_10, DefaultSeedPhilox4x32_10},
		{"xorwow", NewXorwow, ports.AlgorithmXorwow, DefaultSeedXorwow},
		{"mrg32k3a", NewMrg32k3a, ports.AlgorithmMrg32k3a, DefaultSeedMrg32k3a},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := testkit.NewMockBackend()
			g, err := tt.construct(backend)
			if err != nil {
				t.Fatalf("construct: %v", err)
			}
			defer g.Close()

			creates := backend.Calls(testkit.OpCreate)
			if len(creates) != 1 || creates[0].Algorithm != tt.algorithm {
				t.Fatalf("expected one create with algorithm %v, got %+v", tt.algorithm, creates)
			}
			seeds := backend.Calls(testkit.OpSetSeed)
			if len(seeds) != 1 || seeds[0].Seed != tt.seed {
				t.Fatalf("expected one set_seed with %d, got %+v", tt.seed, seeds)
			}
		})
	}
}

// TestOffsetSkippedWhenZero verifies a zero offset issues no backend call,
// while a positive offset issues exactly one carrying that value.
func TestOffsetSkippedWhenZero(t *testing.T) {
	backend := testkit.NewMockBackend()
	g, err := NewPhilox4x32_10(backend, WithSeed(777))
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	defer g.Close()

	if calls := backend.Calls(testkit.OpSetOffset); len(calls) != 0 {
		t.Fatalf("expected no set_offset calls for zero offset, got %+v", calls)
	}

	backend2 := testkit.NewMockBackend()
	g2, err := NewPhilox4x32_10(backend2, WithSeed(777), WithOffset(4096))
	if err != nil {
		t.Fatalf("construct with offset: %v", err)
	}
	defer g2.Close()

	calls := backend2.Calls(testkit.OpSetOffset)
	if len(calls) != 1 || calls[0].Offset != 4096 {
		t.Fatalf("expected one set_offset call with 4096, got %+v", calls)
	}
}

// TestCreateFailure verifies a failed create surfaces the backend status
// and leaves no resource behind to destroy.
func TestCreateFailure(t *testing.T) {
	backend := testkit.NewMockBackend()
	backend.FailNext(testkit.OpCreate, ports.StatusAllocationFailed)

	g, err := NewXorwow(backend)
	if g != nil {
		t.Fatal("expected nil generator on create failure")
	}
	var rngErr *Error
	if !errors.As(err, &rngErr) {
		t.Fatalf("expected *rng.Error, got %T: %v", err, err)
	}
	if rngErr.ErrorCode() != ports.StatusAllocationFailed {
		t.Fatalf("expected status %d, got %d", ports.StatusAllocationFailed, rngErr.ErrorCode())
	}
	if calls := backend.Calls(testkit.OpDestroy); len(calls) != 0 {
		t.Fatalf("destroy must not be attempted after failed create, got %+v", calls)
	}
}

// TestSeedFailureReleasesResource verifies that a configuration failure
// during construction releases the already created backend resource.
func TestSeedFailureReleasesResource(t *testing.T) {
	backend := testkit.NewMockBackend()
	backend.FailNext(testkit.OpSetSeed, ports.StatusInternalError)

	if _, err := NewMrg32k3a(backend); err == nil {
		t.Fatal("expected error when seeding fails")
	}
	if backend.LiveHandles() != 0 {
		t.Fatalf("expected no live handles, got %d", backend.LiveHandles())
	}
}

// TestCloseIdempotent verifies the resource is released exactly once and a
// second Close is a no-op.
func TestCloseIdempotent(t *testing.T) {
	backend := testkit.NewMockBackend()
	g, err := NewXorwow(backend)
	if err != nil {
		t.Fatalf("construct: %v", err)
	}

	if err := g.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := g.Close(); err != nil {
		t.Fatalf("second close must be a no-op, got %v", err)
	}
	if calls := backend.Calls(testkit.OpDestroy); len(calls) != 1 {
		t.Fatalf("expected exactly one destroy, got %d", len(calls))
	}
}

// TestCloseReportsReleaseFailure verifies a failing release is returned to
// the caller while the handle is still considered closed.
func TestCloseReportsReleaseFailure(t *testing.T) {
	backend := testkit.NewMockBackend()
	g, err := NewXorwow(backend)
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	backend.FailNext(testkit.OpDestroy, ports.StatusInternalError)

	err = g.Close()
	var rngErr *Error
	if !errors.As(err, &rngErr) || rngErr.ErrorCode() != ports.StatusInternalError {
		t.Fatalf("expected release failure to surface, got %v", err)
	}
	// Handle is closed regardless: no second destroy may be issued.
	if err := g.Close(); err != nil {
		t.Fatalf("close after failed release must be a no-op, got %v", err)
	}
	if calls := backend.Calls(testkit.OpDestroy); len(calls) != 1 {
		t.Fatalf("expected exactly one destroy, got %d", len(calls))
	}
}

// TestSetStream verifies stream rebinding reaches the backend and updates
// the handle's bound stream.
func TestSetStream(t *testing.T) {
	backend := testkit.NewMockBackend()
	g, err := NewPhilox4x32_10(backend)
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	defer g.Close()

	if g.Stream() != ports.DefaultStream {
		t.Fatalf("expected default stream, got %d", g.Stream())
	}
	if err := g.SetStream(ports.Stream(3)); err != nil {
		t.Fatalf("set stream: %v", err)
	}
	if g.Stream() != ports.Stream(3) {
		t.Fatalf("expected stream 3, got %d", g.Stream())
	}
	calls := backend.Calls(testkit.OpSetStream)
	if len(calls) != 1 || calls[0].Stream != ports.Stream(3) {
		t.Fatalf("expected one set_stream with 3, got %+v", calls)
	}
}

// TestUseAfterClose verifies operations on a closed generator report
// StatusNotCreated instead of reaching the backend.
func TestUseAfterClose(t *testing.T) {
	backend := testkit.NewMockBackend()
	g, err := NewXorwow(backend)
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	if err := g.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	err = g.Seed(1)
	var rngErr *Error
	if !errors.As(err, &rngErr) || rngErr.ErrorCode() != ports.StatusNotCreated {
		t.Fatalf("expected StatusNotCreated after close, got %v", err)
	}
}

// TestNewGeneratorByKind verifies the runtime kind selector matches the
// named constructors and rejects unknown kinds.
func TestNewGeneratorByKind(t *testing.T) {
	backend := testkit.NewMockBackend()
	for _, kind := range []Kind{KindPhilox4x32_10, KindXorwow, KindMrg32k3a} {
		g, err := NewGenerator(kind, backend)
		if err != nil {
			t.Fatalf("kind %s: %v", kind, err)
		}
		if g.Kind() != kind {
			t.Fatalf("expected kind %s, got %s", kind, g.Kind())
		}
		g.Close()
	}
	if _, err := NewGenerator(Kind("mt19937"), backend); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}
