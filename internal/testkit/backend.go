package testkit

import (
	"sync"

	"devrand/ports"
)

// Op names one backend entry point for call recording and scripting.
type Op string

const (
	OpCreate             Op = "create"
	OpDestroy            Op = "destroy"
	OpSetStream          Op = "set_stream"
	OpSetSeed            Op = "set_seed"
	OpSetOffset          Op = "set_offset"
	OpGenerateUint32     Op = "generate_uint32"
	OpGenerateUniformF32 Op = "generate_uniform_f32"
	OpGenerateUniformF64 Op = "generate_uniform_f64"
	OpGenerateNormalF32  Op = "generate_normal_f32"
	OpGenerateNormalF64  Op = "generate_normal_f64"
)

// Call records one backend invocation with every argument that crossed the
// boundary. Fields that don't apply to the op are zero.
type Call struct {
	Op        Op
	Algorithm ports.Algorithm
	Handle    ports.Handle
	Stream    ports.Stream
	Seed      uint64
	Offset    uint64
	Count     int
	Mean      float64
	StdDev    float64
}

// MockBackend is a scriptable in-memory ports.Backend for contract tests.
// Every call is recorded; statuses can be scripted per op and are consumed
// in FIFO order, falling back to StatusSuccess. Generate calls fill the
// output buffer with a ramp so callers can assert exact element counts.
type MockBackend struct {
	mu         sync.Mutex
	calls      []Call
	scripted   map[Op][]ports.Status
	nextHandle ports.Handle
	live       map[ports.Handle]bool
}

// NewMockBackend returns an empty mock backend.
func NewMockBackend() *MockBackend {
	return &MockBackend{
		scripted: make(map[Op][]ports.Status),
		live:     make(map[ports.Handle]bool),
	}
}

// FailNext scripts the next call to op to return status instead of success.
// Repeated calls queue up further statuses.
func (m *MockBackend) FailNext(op Op, status ports.Status) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scripted[op] = append(m.scripted[op], status)
}

// Calls returns every recorded call to op, in order.
func (m *MockBackend) Calls(op Op) []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Call
	for _, c := range m.calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// AllCalls returns every recorded call, in order.
func (m *MockBackend) AllCalls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// LiveHandles returns the number of created-but-not-destroyed handles.
func (m *MockBackend) LiveHandles() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, alive := range m.live {
		if alive {
			n++
		}
	}
	return n
}

func (m *MockBackend) record(c Call) ports.Status {
	m.calls = append(m.calls, c)
	if queue := m.scripted[c.Op]; len(queue) > 0 {
		status := queue[0]
		m.scripted[c.Op] = queue[1:]
		return status
	}
	return ports.StatusSuccess
}

func (m *MockBackend) Create(algorithm ports.Algorithm) (ports.Handle, ports.Status) {
	m.mu.Lock()
	defer m.mu.Unlock()
	status := m.record(Call{Op: OpCreate, Algorithm: algorithm})
	if !status.OK() {
		return 0, status
	}
	m.nextHandle++
	m.live[m.nextHandle] = true
	return m.nextHandle, ports.StatusSuccess
}

func (m *MockBackend) Destroy(h ports.Handle) ports.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	status := m.record(Call{Op: OpDestroy, Handle: h})
	if !status.OK() {
		return status
	}
	if !m.live[h] {
		return ports.StatusNotCreated
	}
	m.live[h] = false
	return ports.StatusSuccess
}

func (m *MockBackend) SetStream(h ports.Handle, stream ports.Stream) ports.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.record(Call{Op: OpSetStream, Handle: h, Stream: stream})
}

func (m *MockBackend) SetSeed(h ports.Handle, seed uint64) ports.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.record(Call{Op: OpSetSeed, Handle: h, Seed: seed})
}

func (m *MockBackend) SetOffset(h ports.Handle, offset uint64) ports.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.record(Call{Op: OpSetOffset, Handle: h, Offset: offset})
}

func (m *MockBackend) GenerateUint32(h ports.Handle, out []uint32) ports.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	status := m.record(Call{Op: OpGenerateUint32, Handle: h, Count: len(out)})
	if status.OK() {
		for i := range out {
			out[i] = uint32(i + 1)
		}
	}
	return status
}

func (m *MockBackend) GenerateUniformFloat32(h ports.Handle, out []float32) ports.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	status := m.record(Call{Op: OpGenerateUniformF32, Handle: h, Count: len(out)})
	if status.OK() {
		for i := range out {
			out[i] = float32(i+1) / float32(len(out)+1)
		}
	}
	return status
}

func (m *MockBackend) GenerateUniformFloat64(h ports.Handle, out []float64) ports.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	status := m.record(Call{Op: OpGenerateUniformF64, Handle: h, Count: len(out)})
	if status.OK() {
		for i := range out {
			out[i] = float64(i+1) / float64(len(out)+1)
		}
	}
	return status
}

func (m *MockBackend) GenerateNormalFloat32(h ports.Handle, out []float32, mean, stddev float32) ports.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	status := m.record(Call{
		Op: OpGenerateNormalF32, Handle: h, Count: len(out),
		Mean: float64(mean), StdDev: float64(stddev),
	})
	if status.OK() {
		for i := range out {
			out[i] = mean
		}
	}
	return status
}

func (m *MockBackend) GenerateNormalFloat64(h ports.Handle, out []float64, mean, stddev float64) ports.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	status := m.record(Call{
		Op: OpGenerateNormalF64, Handle: h, Count: len(out),
		Mean: mean, StdDev: stddev,
	})
	if status.OK() {
		for i := range out {
			out[i] = mean
		}
	}
	return status
}
