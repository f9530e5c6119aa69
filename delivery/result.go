package delivery

// Kind classifies a failed submission.
type Kind string

const (
	// KindTransport is a connection-level failure: name resolution,
	// refused connection, aborted transfer, cancelled context.
	KindTransport Kind = "transport"

	// KindResponse is a non-2xx status or a 2xx body that is not JSON.
	KindResponse Kind = "response"
)

// Result is the outcome of one submission attempt.
type Result struct {
	// Success is true for a 2xx response whose body decoded as JSON.
	Success bool `json:"success"`

	// Message is the diagnostic of a failed attempt. Empty on success.
	Message string `json:"message,omitempty"`

	// Response is the decoded JSON body of a successful response.
	Response any `json:"response,omitempty"`

	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int `json:"status_code,omitempty"`

	// LatencyMs is the wall time of the HTTP exchange.
	LatencyMs int `json:"latency_ms"`

	// Kind is set on failure.
	Kind Kind `json:"kind,omitempty"`
}
