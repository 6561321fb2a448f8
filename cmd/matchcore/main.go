// Command matchcore runs the order book core against a line-oriented input
// source, writing trade/fill events and diagnostics to two independent
// sinks, per spec §6/§11. It is the concrete process entry point the core
// itself declares only an interface for.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"fenrir/internal/driver"
	"fenrir/internal/engine"
	"fenrir/internal/metrics"
)

func main() {
	inputPath := flag.String("input", "-", "input file of order messages, one per line; '-' for stdin")
	outputPath := flag.String("output", "-", "output file for trade/fill events; '-' for stdout")
	errorsPath := flag.String("errors", "-", "output file for diagnostics; '-' for stderr")
	metricsAddr := flag.String("metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. ':9100')")
	logLevel := flag.String("log-level", "info", "zerolog level: debug, info, warn, error")
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "matchcore: invalid -log-level %q: %v\n", *logLevel, err)
		os.Exit(2)
	}
	zerolog.SetGlobalLevel(level)

	input, closeInput, err := openInput(*inputPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *inputPath).Msg("unable to open input")
	}
	defer closeInput()

	output, closeOutput, err := openOutput(*outputPath, os.Stdout)
	if err != nil {
		log.Fatal().Err(err).Str("path", *outputPath).Msg("unable to open output")
	}
	defer closeOutput()

	errOut, closeErrOut, err := openOutput(*errorsPath, os.Stderr)
	if err != nil {
		log.Fatal().Err(err).Str("path", *errorsPath).Msg("unable to open errors sink")
	}
	defer closeErrOut()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	t, ctx := tomb.WithContext(ctx)
	eng := engine.New()

	if *metricsAddr != "" {
		t.Go(func() error {
			return serveMetrics(t, *metricsAddr)
		})
	}

	t.Go(func() error {
		source := driver.NewScannerLineSource(input)
		events := driver.NewWriterSink(output)
		diags := driver.NewWriterSink(errOut)
		return eng.Start(ctx, source, events, diags)
	})

	log.Info().Str("engineId", eng.Id).Msg("matchcore running")
	if err := t.Wait(); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("matchcore exited with error")
		os.Exit(1)
	}
}

func serveMetrics(t *tomb.Tomb, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-t.Dying():
		return srv.Close()
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func openInput(path string) (*os.File, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, func() {}, err
	}
	return f, func() { _ = f.Close() }, nil
}

func openOutput(path string, std *os.File) (*os.File, func(), error) {
	if path == "-" {
		return std, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, func() {}, err
	}
	return f, func() { _ = f.Close() }, nil
}
