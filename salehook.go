package salehook

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xraph/salehook/delivery"
	"github.com/xraph/salehook/endpoint"
	"github.com/xraph/salehook/form"
	"github.com/xraph/salehook/id"
	"github.com/xraph/salehook/payload"
)

// Result is the uniform outcome of one submission attempt, whichever stage
// produced it.
type Result struct {
	// ID identifies the submission attempt.
	ID id.ID `json:"id"`

	Success bool   `json:"success"`
	Message string `json:"message"`

	// Target and URL are set once known.
	Target endpoint.Target `json:"target,omitempty"`
	URL    string          `json:"url,omitempty"`

	// Response is the decoded JSON body returned by the webhook.
	Response any `json:"response,omitempty"`

	StatusCode int `json:"status_code,omitempty"`
	LatencyMs  int `json:"latency_ms,omitempty"`

	// Kind names the failed stage; empty on success.
	Kind ErrorKind `json:"error_kind,omitempty"`

	// Errors lists field violations when Kind is KindValidation.
	Errors form.Errors `json:"errors,omitempty"`

	// RetryAfter is how long until the target accepts another submission
	// when Kind is KindRateLimit.
	RetryAfter time.Duration `json:"-"`

	err error
}

// Err returns nil for a successful result, otherwise an error matching one
// of the package sentinels via errors.Is.
func (r Result) Err() error {
	return r.err
}

// Run validates raw, composes the event, resolves the target and submits
// it. Every failure is reported through the returned Result.
func (s *Submitter) Run(ctx context.Context, raw form.Input) Result {
	res := Result{
		ID:     id.NewSubmissionID(),
		Target: endpoint.Target(raw.Endpoint),
	}

	if s.tracer != nil {
		spanCtx, span := s.tracer.StartSubmissionSpan(ctx, res.ID.String(), raw.Endpoint)
		res = s.run(spanCtx, res, raw)
		s.tracer.EndSubmissionSpan(span, res.StatusCode, res.LatencyMs, string(res.Kind), res.Message)
	} else {
		res = s.run(ctx, res, raw)
	}

	s.record(ctx, res)

	return res
}

func (s *Submitter) run(ctx context.Context, res Result, raw form.Input) Result {
	in, err := form.Validate(raw)
	if err != nil {
		var ferrs form.Errors
		if errors.As(err, &ferrs) {
			res.Errors = ferrs
		}
		return fail(res, KindValidation, fmt.Errorf("%w: %w", ErrValidation, err))
	}

	evt := payload.Compose(in, s.clock(), s.rng)
	if err := s.contract.Validate(evt); err != nil {
		return fail(res, KindValidation, fmt.Errorf("%w: %w", ErrContract, err))
	}

	url, err := s.resolver.Resolve(res.Target, in.CustomURL)
	if err != nil {
		return fail(res, KindResolution, fmt.Errorf("%w: %w", ErrResolution, err))
	}
	res.URL = url

	if ok, wait := s.limiter.Reserve(string(res.Target)); !ok {
		res.RetryAfter = wait
		return fail(res, KindRateLimit, fmt.Errorf("%w: too many submissions to %s", ErrRateLimited, res.Target))
	}

	dr := s.sender.Submit(ctx, url, evt, res.ID)
	res.StatusCode = dr.StatusCode
	res.LatencyMs = dr.LatencyMs

	if !dr.Success {
		if dr.Kind == delivery.KindResponse {
			return fail(res, KindResponse, fmt.Errorf("%w: %s", ErrResponse, dr.Message))
		}
		return fail(res, KindTransport, fmt.Errorf("%w: %s", ErrTransport, dr.Message))
	}

	res.Success = true
	res.Response = dr.Response
	res.Message = fmt.Sprintf("Successfully sent to %s webhook!", strings.ToUpper(string(res.Target)))
	return res
}

// fail marks res as failed. The message carries the diagnostic without
// the sentinel prefix.
func fail(res Result, kind ErrorKind, err error) Result {
	res.Success = false
	res.Kind = kind
	res.err = err
	res.Message = "Failed to send webhook: " + diagnostic(err)
	return res
}

// diagnostic strips the leading "salehook: ...: " sentinel text.
func diagnostic(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{ErrValidation, ErrContract, ErrResolution, ErrTransport, ErrResponse, ErrRateLimited} {
		if rest, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
			return rest
		}
	}
	return msg
}

func (s *Submitter) record(ctx context.Context, res Result) {
	outcome := "success"
	if !res.Success {
		outcome = string(res.Kind)
	}

	if s.metrics != nil {
		// Unknown selectors come straight from callers; keep them out of
		// the label set.
		target := string(res.Target)
		if !res.Target.Valid() {
			target = "unknown"
		}
		latency := -1.0
		if res.URL != "" {
			latency = float64(res.LatencyMs) / 1000
		}
		s.metrics.RecordSubmission(target, outcome, latency)
	}

	if res.Success {
		s.logger.InfoContext(ctx, "submission delivered",
			"submission_id", res.ID,
			"target", res.Target,
			"status_code", res.StatusCode,
			"latency_ms", res.LatencyMs,
		)
		return
	}

	s.logger.WarnContext(ctx, "submission failed",
		"submission_id", res.ID,
		"target", res.Target,
		"error_kind", res.Kind,
		"status_code", res.StatusCode,
		"error", res.Message,
	)
}
