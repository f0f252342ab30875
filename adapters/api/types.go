package api

// SampleRequest is the body of a sampling request. Engine defaults to the
// server's configured engine; Seed defaults to the engine's documented
// default seed when absent.
type SampleRequest struct {
	Engine string  `json:"engine,omitempty"`
	Seed   *uint64 `json:"seed,omitempty"`
	Offset uint64  `json:"offset,omitempty"`
	Count  int     `json:"count"`

	// Normal distribution only.
	Mean   *float64 `json:"mean,omitempty"`
	StdDev *float64 `json:"stddev,omitempty"`
}

// SampleSummary carries descriptive statistics of one generated batch.
type SampleSummary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// SampleResponse returns a generated batch with its summary.
type SampleResponse struct {
	Engine  string        `json:"engine"`
	Count   int           `json:"count"`
	Samples []float64     `json:"samples"`
	Summary SampleSummary `json:"summary"`
}

// UintSampleResponse returns a full-range uint32 batch.
type UintSampleResponse struct {
	Engine  string   `json:"engine"`
	Count   int      `json:"count"`
	Samples []uint32 `json:"samples"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
