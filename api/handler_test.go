package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/xraph/salehook"
	"github.com/xraph/salehook/api"
	"github.com/xraph/salehook/endpoint"
	"github.com/xraph/salehook/form"
)

// webhookStub is the downstream automation platform.
type webhookStub struct {
	*httptest.Server
	calls  atomic.Int32
	status int
}

func newWebhookStub(t *testing.T, status int, body string) *webhookStub {
	t.Helper()
	ws := &webhookStub{status: status}
	ws.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		ws.calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(ws.status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ws.Close)
	return ws
}

// testServer creates a Handler whose make target points at hook.
func testServer(t *testing.T, hook string, rateLimit int) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := salehook.DefaultConfig()
	cfg.RateLimit = rateLimit
	cfg.Endpoints = endpoint.Config{URLs: map[endpoint.Target]string{
		endpoint.TargetMake: hook,
	}}

	sub, err := salehook.New(salehook.WithConfig(cfg), salehook.WithLogger(logger))
	if err != nil {
		t.Fatalf("new submitter: %v", err)
	}

	srv := httptest.NewServer(api.NewHandler(sub, logger))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, url, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

// --- Submissions ---

func TestSubmissions_Success(t *testing.T) {
	hook := newWebhookStub(t, http.StatusOK, `{"accepted":true}`)
	srv := testServer(t, hook.URL, 0)

	resp := doJSON(t, "POST", srv.URL+"/submissions", form.Defaults())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var res map[string]any
	decodeBody(t, resp, &res)
	if res["success"] != true {
		t.Fatalf("expected success, got %v", res)
	}
	if res["message"] != "Successfully sent to MAKE webhook!" {
		t.Fatalf("unexpected message %v", res["message"])
	}
	if got := res["response"].(map[string]any)["accepted"]; got != true {
		t.Fatalf("response not passed through: %v", res["response"])
	}
	if !strings.HasPrefix(res["id"].(string), "sub_") {
		t.Fatalf("unexpected id %v", res["id"])
	}
	if hook.calls.Load() != 1 {
		t.Fatalf("expected 1 webhook call, got %d", hook.calls.Load())
	}
}

func TestSubmissions_ValidationFailure(t *testing.T) {
	hook := newWebhookStub(t, http.StatusOK, `{}`)
	srv := testServer(t, hook.URL, 0)

	in := form.Defaults()
	in.Email = "not-an-email"
	in.City = ""

	resp := doJSON(t, "POST", srv.URL+"/submissions", in)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}

	var res struct {
		Success bool              `json:"success"`
		Kind    string            `json:"error_kind"`
		Errors  []form.FieldError `json:"errors"`
	}
	decodeBody(t, resp, &res)
	if res.Success || res.Kind != "validation" {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(res.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %+v", res.Errors)
	}
	if hook.calls.Load() != 0 {
		t.Fatal("invalid submission reached the webhook")
	}
}

func TestSubmissions_UpstreamFailure(t *testing.T) {
	hook := newWebhookStub(t, http.StatusServiceUnavailable, `{"error":"down"}`)
	srv := testServer(t, hook.URL, 0)

	resp := doJSON(t, "POST", srv.URL+"/submissions", form.Defaults())
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}

	var res map[string]any
	decodeBody(t, resp, &res)
	if res["error_kind"] != "response" {
		t.Fatalf("expected response kind, got %v", res["error_kind"])
	}
	if !strings.Contains(res["message"].(string), "503") {
		t.Fatalf("message should carry the status: %v", res["message"])
	}
}

func TestSubmissions_CustomTarget(t *testing.T) {
	hook := newWebhookStub(t, http.StatusOK, `{"custom":true}`)
	srv := testServer(t, "http://127.0.0.1:1/unused", 0)

	in := form.Defaults()
	in.Endpoint = "custom"
	in.CustomURL = hook.URL

	resp := doJSON(t, "POST", srv.URL+"/submissions", in)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()
	if hook.calls.Load() != 1 {
		t.Fatalf("expected custom hook to be called once, got %d", hook.calls.Load())
	}
}

func TestSubmissions_RateLimited(t *testing.T) {
	hook := newWebhookStub(t, http.StatusOK, `{}`)
	srv := testServer(t, hook.URL, 1)

	resp := doJSON(t, "POST", srv.URL+"/submissions", form.Defaults())
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first: expected 200, got %d", resp.StatusCode)
	}

	resp = doJSON(t, "POST", srv.URL+"/submissions", form.Defaults())
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("second: expected 429, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Retry-After"); got != "1" {
		t.Fatalf("Retry-After: got %q, want %q", got, "1")
	}
	var res map[string]any
	decodeBody(t, resp, &res)
	if res["success"] != false || res["error_kind"] != "rate_limit" {
		t.Fatalf("unexpected result %v", res)
	}
	if hook.calls.Load() != 1 {
		t.Fatalf("limited submission reached the webhook: %d calls", hook.calls.Load())
	}
}

func TestSubmissions_BadBody(t *testing.T) {
	srv := testServer(t, "http://127.0.0.1:1/unused", 0)

	resp, err := http.Post(srv.URL+"/submissions", "application/json", strings.NewReader("{not json"))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	var body map[string]string
	decodeBody(t, resp, &body)
	if body["error"] == "" {
		t.Fatal("expected error message")
	}
}

// --- Catalog ---

func TestSamples(t *testing.T) {
	srv := testServer(t, "http://127.0.0.1:1/unused", 0)

	resp := doJSON(t, "GET", srv.URL+"/samples", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Defaults form.Input    `json:"defaults"`
		Samples  []form.Sample `json:"samples"`
	}
	decodeBody(t, resp, &body)
	if body.Defaults != form.Defaults() {
		t.Fatalf("unexpected defaults %+v", body.Defaults)
	}
	if len(body.Samples) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(body.Samples))
	}
}

func TestTargets(t *testing.T) {
	srv := testServer(t, "https://make.test/hook", 0)

	resp := doJSON(t, "GET", srv.URL+"/targets", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var targets []struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	}
	decodeBody(t, resp, &targets)
	if len(targets) != 3 {
		t.Fatalf("expected 3 targets, got %d", len(targets))
	}
	if targets[0].Name != "make" || targets[0].URL != "https://make.test/hook" {
		t.Fatalf("unexpected make target %+v", targets[0])
	}
	if targets[1].Name != "n8n" || targets[1].URL != endpoint.DefaultN8NURL {
		t.Fatalf("unexpected n8n target %+v", targets[1])
	}
	if targets[2].Name != "custom" || targets[2].URL != "" {
		t.Fatalf("unexpected custom target %+v", targets[2])
	}
}

func TestHealth(t *testing.T) {
	srv := testServer(t, "http://127.0.0.1:1/unused", 0)

	resp := doJSON(t, "GET", srv.URL+"/health", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestUnknownRoute(t *testing.T) {
	srv := testServer(t, "http://127.0.0.1:1/unused", 0)

	resp := doJSON(t, "GET", srv.URL+"/submissions", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.StatusCode)
	}
}
