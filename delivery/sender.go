// Package delivery posts composed events to a webhook URL and classifies
// the outcome.
package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/xraph/salehook/id"
	"github.com/xraph/salehook/payload"
)

const maxResponseBody = 1 << 20 // 1MB cap on decoded response bodies

// SubmissionIDHeader carries the submission ID on every request.
const SubmissionIDHeader = "X-Salehook-Submission-ID"

const userAgent = "salehook/1.0"

// Sender performs HTTP webhook delivery. It makes exactly one attempt per
// call and applies no timeout of its own.
type Sender struct {
	client *http.Client
}

// NewSender creates a sender using client. A nil client gets a plain
// http.Client without a timeout.
func NewSender(client *http.Client) *Sender {
	if client == nil {
		client = &http.Client{}
	}
	return &Sender{client: client}
}

// Submit posts evt as JSON to url and returns the classified result. subID
// may be id.Nil, in which case the submission ID header is omitted.
func (s *Sender) Submit(ctx context.Context, url string, evt payload.Event, subID id.ID) Result {
	body, err := json.Marshal(evt)
	if err != nil {
		return Result{Kind: KindTransport, Message: fmt.Sprintf("marshal payload: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Result{Kind: KindTransport, Message: fmt.Sprintf("create request: %v", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if !subID.IsNil() {
		req.Header.Set(SubmissionIDHeader, subID.String())
	}

	start := time.Now()
	resp, err := s.client.Do(req) //nolint:gosec // G704: the URL is an operator-chosen webhook destination.
	latency := int(time.Since(start).Milliseconds())

	if err != nil {
		return Result{
			Kind:      KindTransport,
			Message:   err.Error(),
			LatencyMs: latency,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{
			Kind:       KindResponse,
			Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, reason(resp)),
			StatusCode: resp.StatusCode,
			LatencyMs:  latency,
		}
	}

	respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody+1))
	if readErr != nil {
		return Result{
			Kind:       KindTransport,
			Message:    fmt.Sprintf("read response: %v", readErr),
			StatusCode: resp.StatusCode,
			LatencyMs:  latency,
		}
	}
	if len(respBody) > maxResponseBody {
		return Result{
			Kind:       KindResponse,
			Message:    fmt.Sprintf("HTTP %d: response body exceeds 1MB", resp.StatusCode),
			StatusCode: resp.StatusCode,
			LatencyMs:  latency,
		}
	}

	var decoded any
	if decodeErr := json.Unmarshal(respBody, &decoded); decodeErr != nil {
		return Result{
			Kind:       KindResponse,
			Message:    fmt.Sprintf("HTTP %d: invalid JSON response: %v", resp.StatusCode, decodeErr),
			StatusCode: resp.StatusCode,
			LatencyMs:  latency,
		}
	}

	return Result{
		Success:    true,
		Response:   decoded,
		StatusCode: resp.StatusCode,
		LatencyMs:  latency,
	}
}

// reason returns the textual part of the status line.
func reason(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
