// Package agent implements the message-to-action resolution pipeline: the
// two-tier intent resolver, the action executor and the aggregation engine,
// composed by the orchestrator that the transport layer calls.
package agent

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"finagent/internal/events"
	"finagent/internal/ledger"
	"finagent/internal/llm"
)

// apologyMessage answers any internal failure. Nothing in the pipeline is
// fatal to the process.
const apologyMessage = "Sorry, I encountered an error processing your request. Please try again."

// Orchestrator is the single entry point for a ledger. Its mutex serializes
// message processing end to end, which makes the executor's
// read-append-write pattern safe without storage-level locking. Snapshot
// reads bypass the mutex; they never mutate.
type Orchestrator struct {
	mu        sync.Mutex
	ledger    *ledger.Ledger
	llm       llm.Client
	executor  *Executor
	aggregate *Aggregator

	now func() time.Time
}

// New wires the pipeline for one ledger. client and publisher may be nil:
// without a client every message goes straight to the fallback resolver,
// without a publisher mutation events are skipped.
func New(l *ledger.Ledger, client llm.Client, publisher events.Publisher) *Orchestrator {
	aggregate := NewAggregator(l)
	return &Orchestrator{
		ledger:    l,
		llm:       client,
		executor:  NewExecutor(l, aggregate, publisher),
		aggregate: aggregate,
		now:       time.Now,
	}
}

// HandleMessage resolves one chat message and executes the resulting action.
// The primary resolver gets exactly one attempt; any failure downgrades to
// the fallback. Every path returns a well-formed response.
func (o *Orchestrator) HandleMessage(ctx context.Context, message string) Response {
	o.mu.Lock()
	defer o.mu.Unlock()

	now := o.now()

	if err := o.ledger.Init(ctx); err != nil {
		slog.ErrorContext(ctx, "Ledger initialization failed", "error", err)
		return Response{Message: apologyMessage, Timestamp: now}
	}

	resolution, ok := o.resolvePrimary(ctx, message)
	if !ok {
		var guidance string
		resolution, guidance = resolveFallback(message, now)
		if guidance != "" {
			return Response{Message: guidance, Timestamp: now}
		}
	}

	response, err := o.executor.Execute(ctx, resolution, now)
	if err != nil {
		slog.ErrorContext(ctx, "Action execution failed",
			"action", resolution.Action, "error", err)
		return Response{Message: apologyMessage, Timestamp: now}
	}
	return response
}

// FinancialData serves the read-only overview path.
func (o *Orchestrator) FinancialData(ctx context.Context) (Overview, error) {
	if err := o.ledger.Init(ctx); err != nil {
		return Overview{}, err
	}
	return o.aggregate.Collect(ctx, o.now())
}
