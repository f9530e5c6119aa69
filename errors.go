package salehook

import "errors"

// Sentinel errors returned by Result.Err.
var (
	// ErrValidation is returned when the form fails its field rules.
	ErrValidation = errors.New("salehook: validation failed")

	// ErrContract is returned when a composed event does not satisfy the
	// sale:created schema.
	ErrContract = errors.New("salehook: payload contract violated")

	// ErrResolution is returned when no delivery URL can be determined.
	ErrResolution = errors.New("salehook: endpoint resolution failed")

	// ErrTransport is returned when the request never got a response.
	ErrTransport = errors.New("salehook: transport failure")

	// ErrResponse is returned for a non-2xx status or a non-JSON body.
	ErrResponse = errors.New("salehook: unexpected webhook response")

	// ErrRateLimited is returned when the target's submission budget is
	// spent. The request is not sent.
	ErrRateLimited = errors.New("salehook: rate limited")
)

// ErrorKind classifies a failed Result by the stage that failed.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindResolution ErrorKind = "resolution"
	KindTransport  ErrorKind = "transport"
	KindResponse   ErrorKind = "response"
	KindRateLimit  ErrorKind = "rate_limit"
)
