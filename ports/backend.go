package ports

// Algorithm identifies a pseudorandom bit-generation algorithm implemented
// by the backend. Values mirror the backend's own enumeration so they can be
// passed through unchanged.
type Algorithm uint32

const (
	AlgorithmXorwow        Algorithm = 401
	AlgorithmMrg32k3a      Algorithm = 402
	AlgorithmPhilox4x32_10 Algorithm = 404
)

// String returns the canonical lowercase name of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case AlgorithmXorwow:
		return "xorwow"
	case AlgorithmMrg32k3a:
		return "mrg32k3a"
	case AlgorithmPhilox4x32_10:
		return "philox4x32-10"
	default:
		return "unknown"
	}
}

// Status is the result code returned by every backend call. Zero means
// success; everything else is a failure. Values mirror the backend's
// status enumeration.
type Status int32

const (
	StatusSuccess                 Status = 0
	StatusVersionMismatch         Status = 100
	StatusNotCreated              Status = 101
	StatusAllocationFailed        Status = 102
	StatusTypeError               Status = 103
	StatusOutOfRange              Status = 104
	StatusLengthNotMultiple       Status = 105
	StatusDoublePrecisionRequired Status = 106
	StatusLaunchFailure           Status = 107
	StatusInternalError           Status = 108
)

// OK reports whether the status indicates success.
func (s Status) OK() bool {
	return s == StatusSuccess
}

// Handle is an opaque token for one backend-created generator resource.
// A zero Handle never refers to a live resource.
type Handle uint64

// Stream is an opaque token for a backend execution queue. The zero value
// selects the backend's default queue ("no stream").
type Stream uint64

// DefaultStream is the zero Stream value, selecting the backend's default
// execution queue.
const DefaultStream Stream = 0

// Backend is the call surface of the device-resident PRNG engine this
// library configures and invokes. Bit generation, kernel scheduling and
// device memory movement all live behind this interface; every method
// reports failure through its Status return and never panics.
//
// Generate calls may enqueue device work on the handle's bound stream and
// return before the device finishes; synchronizing that stream before
// reading the output buffer is the caller's responsibility.
type Backend interface {
	// Create allocates a generator resource for the given algorithm.
	// On any status other than StatusSuccess the returned Handle is dead.
	Create(algorithm Algorithm) (Handle, Status)

	// Destroy releases a generator resource. Destroying a handle that was
	// never created (or was already destroyed) returns StatusNotCreated.
	Destroy(h Handle) Status

	// SetStream rebinds the execution queue subsequent generate calls for
	// this handle are issued on.
	SetStream(h Handle, stream Stream) Status

	// SetSeed reinitializes the generator's state from a 64-bit seed.
	SetSeed(h Handle, seed uint64) Status

	// SetOffset advances the output stream by the given number of elements
	// before any value is emitted.
	SetOffset(h Handle, offset uint64) Status

	// GenerateUint32 fills out with values uniform over the full uint32 range.
	GenerateUint32(h Handle, out []uint32) Status

	// GenerateUniformFloat32 fills out with values in (0, 1].
	GenerateUniformFloat32(h Handle, out []float32) Status

	// GenerateUniformFloat64 fills out with values in (0, 1].
	GenerateUniformFloat64(h Handle, out []float64) Status

	// GenerateNormalFloat32 fills out with normally distributed values.
	GenerateNormalFloat32(h Handle, out []float32, mean, stddev float32) Status

	// GenerateNormalFloat64 fills out with normally distributed values.
	GenerateNormalFloat64(h Handle, out []float64, mean, stddev float64) Status
}
