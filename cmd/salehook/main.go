// Command salehook sends test "sale:created" events to a webhook, either
// once from the command line or through a small HTTP API.
//
//	salehook serve [--addr :8080] [--rate-limit N] [--timeout 10s]
//	salehook send  [--target make|n8n|custom] [--url URL] [--sample N] [field flags]
//
// Environment variables (optionally from a .env file) provide defaults:
// MAKE_WEBHOOK_URL, N8N_WEBHOOK_URL, SALEHOOK_ADDR, SALEHOOK_RATE_LIMIT and
// SALEHOOK_REQUEST_TIMEOUT.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"

	"github.com/xraph/salehook"
	"github.com/xraph/salehook/api"
	"github.com/xraph/salehook/form"
	"github.com/xraph/salehook/observability"
)

const usage = `usage: salehook <command> [flags]

commands:
  serve   run the HTTP API
  send    submit one event and print the result
`

// errFailed signals a submission that ran but did not succeed.
var errFailed = errors.New("submission failed")

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "salehook: loading .env:", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.LookupEnv, os.Stdout, logger); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "salehook:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, lookup func(string) (string, bool), stdout io.Writer, logger *slog.Logger) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	cfg, err := salehook.ConfigFromEnv(lookup)
	if err != nil {
		return err
	}

	switch args[0] {
	case "serve":
		return serve(ctx, cfg, args[1:], logger)
	case "send":
		return send(ctx, cfg, args[1:], stdout, logger)
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

func serve(ctx context.Context, cfg salehook.Config, args []string, logger *slog.Logger) error {
	fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.IntVar(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "submissions per second per target (0 = unlimited)")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "webhook request timeout (0 = none)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	sub, err := salehook.New(
		salehook.WithConfig(cfg),
		salehook.WithLogger(logger),
		salehook.WithMetrics(observability.NewMetrics(reg)),
		salehook.WithTracer(observability.NewTracer()),
	)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	mux.Handle("/", api.NewHandler(sub, logger))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("salehook listening", "addr", cfg.Addr, "rate_limit", cfg.RateLimit)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("salehook shutting down")
	return srv.Shutdown(shutdownCtx)
}

func send(ctx context.Context, cfg salehook.Config, args []string, stdout io.Writer, logger *slog.Logger) error {
	in := form.Defaults()

	fs := pflag.NewFlagSet("send", pflag.ContinueOnError)
	sample := fs.Int("sample", 0, "use the phone number of sample N (1-based, see GET /samples)")
	fs.StringVar(&in.Endpoint, "target", in.Endpoint, "webhook target: make, n8n or custom")
	fs.StringVar(&in.CustomURL, "url", "", "webhook URL for the custom target")
	fs.StringVar(&in.FirstName, "first-name", in.FirstName, "first name")
	fs.StringVar(&in.LastName, "last-name", in.LastName, "last name")
	fs.StringVar(&in.Phone, "phone", in.Phone, "phone number")
	fs.StringVar(&in.Email, "email", in.Email, "email address")
	fs.StringVar(&in.Street, "street", in.Street, "street address")
	fs.StringVar(&in.Zipcode, "zipcode", in.Zipcode, "zip code")
	fs.StringVar(&in.City, "city", in.City, "city")
	fs.StringVar(&in.Nutzflaeche, "nutzflaeche", in.Nutzflaeche, "usable area")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "webhook request timeout (0 = none)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *sample != 0 {
		samples := form.Samples()
		if *sample < 1 || *sample > len(samples) {
			return fmt.Errorf("--sample must be between 1 and %d", len(samples))
		}
		// An explicit --phone wins over the sample.
		if !fs.Changed("phone") {
			in.Phone = samples[*sample-1].Phone
		}
	}

	sub, err := salehook.New(salehook.WithConfig(cfg), salehook.WithLogger(logger))
	if err != nil {
		return err
	}

	res := sub.Run(ctx, in)

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return err
	}
	if !res.Success {
		return errFailed
	}
	return nil
}
