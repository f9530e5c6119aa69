// Package api exposes the submitter over HTTP: the submission endpoint,
// the sample catalog and the configured targets.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/xraph/salehook"
	"github.com/xraph/salehook/endpoint"
	"github.com/xraph/salehook/form"
)

// maxBodyBytes bounds the submission request body.
const maxBodyBytes = 64 << 10

// Handler is the root HTTP handler of the salehook API.
type Handler struct {
	submitter *salehook.Submitter
	logger    *slog.Logger
	mux       *http.ServeMux
}

// NewHandler creates an API handler around sub.
func NewHandler(sub *salehook.Submitter, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	h := &Handler{
		submitter: sub,
		logger:    logger,
		mux:       http.NewServeMux(),
	}

	h.registerRoutes()
	return h
}

func (h *Handler) registerRoutes() {
	h.mux.HandleFunc("POST /submissions", h.createSubmission)
	h.mux.HandleFunc("GET /samples", h.listSamples)
	h.mux.HandleFunc("GET /targets", h.listTargets)
	h.mux.HandleFunc("GET /health", h.health)
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.withMiddleware(h.mux).ServeHTTP(w, r)
}

func (h *Handler) withMiddleware(next http.Handler) http.Handler {
	return h.panicRecovery(h.logging(next))
}

func (h *Handler) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		h.logger.InfoContext(r.Context(), "api request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (h *Handler) panicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.logger.ErrorContext(r.Context(), "panic recovered",
					"error", rec,
					"stack", string(debug.Stack()),
				)
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// --- Submissions ---

func (h *Handler) createSubmission(w http.ResponseWriter, r *http.Request) {
	var in form.Input
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	res := h.submitter.Run(r.Context(), in)
	if res.Kind == salehook.KindRateLimit {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(res.RetryAfter)))
	}
	writeJSON(w, statusFor(res), res)
}

// statusFor maps a Result to the HTTP status of the submission endpoint.
func statusFor(res salehook.Result) int {
	if res.Success {
		return http.StatusOK
	}
	switch res.Kind {
	case salehook.KindValidation, salehook.KindResolution:
		return http.StatusUnprocessableEntity
	case salehook.KindRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusBadGateway
	}
}

// retryAfterSeconds rounds d up to whole seconds, at least one.
func retryAfterSeconds(d time.Duration) int {
	secs := int((d + time.Second - 1) / time.Second)
	return max(secs, 1)
}

// --- Catalog ---

type samplesResponse struct {
	Defaults form.Input    `json:"defaults"`
	Samples  []form.Sample `json:"samples"`
}

func (h *Handler) listSamples(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, samplesResponse{
		Defaults: form.Defaults(),
		Samples:  form.Samples(),
	})
}

type targetResponse struct {
	Name endpoint.Target `json:"name"`
	URL  string          `json:"url,omitempty"`
}

func (h *Handler) listTargets(w http.ResponseWriter, _ *http.Request) {
	urls := h.submitter.Resolver().URLs()

	out := make([]targetResponse, 0, len(urls)+1)
	for _, t := range endpoint.Named() {
		out = append(out, targetResponse{Name: t, URL: urls[t]})
	}
	out = append(out, targetResponse{Name: endpoint.TargetCustom})

	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// JSON helpers.

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best effort
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty body")
		}
		return err
	}
	return nil
}
