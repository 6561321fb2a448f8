// Package engine provides the "enclosing engine object" spec §5/§9
// describe: a one-shot-startup wrapper around a single matching.OrderBook,
// with the structured logging and run correlation a production instance of
// this idiom always carries.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"fenrir/internal/matching"
	"fenrir/internal/metrics"
	"fenrir/internal/model"
	"fenrir/internal/parser"
)

// ErrAlreadyStarted is returned by Start when a prior call has already
// claimed the engine's single-shot start flag, per spec §5/§9.
var ErrAlreadyStarted = errors.New("engine: already started")

// LineSource yields one input line at a time. ok is false at end-of-stream.
// This is the only interface the core requires of its external input
// collaborator (spec §1, §6, §11).
type LineSource interface {
	ReadLine() (line string, ok bool)
}

// Engine owns a single order book plus the one-shot start guarantee and
// run-scoped logging spec §5's "startup exclusion" describes. Id is a
// per-instance run identifier, not part of the wire protocol: it exists
// solely to correlate log lines when more than one Engine exists in a
// process (e.g. under test).
type Engine struct {
	Id   string
	book *matching.OrderBook
	log  zerolog.Logger

	started atomic.Bool
}

// New constructs an Engine around a fresh, empty order book.
func New() *Engine {
	id := uuid.NewString()
	return &Engine{
		Id:   id,
		book: matching.NewOrderBook(),
		log:  log.With().Str("engineId", id).Logger(),
	}
}

// Process runs a single request through the order book directly, bypassing
// the one-shot start guard. This is the entry point tests use; Start is the
// entry point a driver program uses.
func (e *Engine) Process(req model.Request, events model.EventSink, diags model.DiagnosticSink) {
	e.book.Process(req, events, diags)
}

// Snapshot returns the current resting-order ladder, for diagnostics.
func (e *Engine) Snapshot() matching.BookSnapshot {
	return e.book.Snapshot()
}

// LogBook writes the current book state to the structured logger at debug
// level, mirroring the teacher's LogBook plumbing. It emits nothing to the
// output sink.
func (e *Engine) LogBook() {
	snap := e.book.Snapshot()
	e.log.Debug().
		Int("bidLevels", len(snap.Bids)).
		Int("askLevels", len(snap.Asks)).
		Int("restingOrders", e.book.RestingOrderCount()).
		Msg("order book snapshot")
}

// Start is the one-shot entry point: only the first call on an Engine
// proceeds past the atomic guard. Concurrent or later callers observe
// ErrAlreadyStarted and the book is left completely untouched.
//
// It drives source to completion (or until ctx is cancelled), parsing each
// line and dispatching it to the book, writing events to events and
// diagnostics (parse errors included) to diags.
func (e *Engine) Start(ctx context.Context, source LineSource, events model.EventSink, diags model.DiagnosticSink) error {
	if !e.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	e.log.Info().Msg("engine starting")
	defer e.log.Info().Msg("engine stopped")

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, ok := source.ReadLine()
		if !ok {
			return nil
		}

		req, perr := parser.Parse(line)
		if perr != nil {
			diags.Diagnose(perr.Error())
			metrics.ParseErrors.Inc()
			e.log.Debug().Str("line", line).Str("reason", perr.Reason).Msg("rejected malformed message")
			continue
		}

		e.dispatch(req, events, diags)
	}
}

func (e *Engine) dispatch(req model.Request, events model.EventSink, diags model.DiagnosticSink) {
	countingDiags := model.DiagnosticSinkFunc(func(msg string) {
		metrics.SoftErrors.Inc()
		diags.Diagnose(msg)
	})

	switch r := req.(type) {
	case model.AddOrder:
		metrics.RequestsByKind.WithLabelValues("add").Inc()
		e.book.Process(r, countingEvents(events), countingDiags)
	case model.CancelOrder:
		metrics.RequestsByKind.WithLabelValues("cancel").Inc()
		e.book.Process(r, countingEvents(events), countingDiags)
	default:
		panic(fmt.Sprintf("engine: unrecognized request type %T", req))
	}

	metrics.RestingOrders.Set(float64(e.book.RestingOrderCount()))
	if best, ok := e.book.BestBid(); ok {
		metrics.BestBid.Set(float64(best))
	}
	if best, ok := e.book.BestAsk(); ok {
		metrics.BestAsk.Set(float64(best))
	}
}

func countingEvents(events model.EventSink) model.EventSink {
	return model.EventSinkFunc(func(ev model.Event) {
		if _, ok := ev.(model.Trade); ok {
			metrics.TradesExecuted.Inc()
		}
		events.Emit(ev)
	})
}
