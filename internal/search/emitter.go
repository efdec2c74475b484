package search

import (
	"context"
	"time"

	"git.home.luguber.info/inful/pibary/internal/eventstore"
	"git.home.luguber.info/inful/pibary/internal/locate"
)

// EventEmitter persists search lifecycle events and keeps the history
// projection current. A zero EventEmitter drops events.
type EventEmitter struct {
	store      eventstore.Store
	projection *eventstore.SearchHistoryProjection
}

// NewEventEmitter creates a new EventEmitter with the given store and projection.
func NewEventEmitter(store eventstore.Store, projection *eventstore.SearchHistoryProjection) *EventEmitter {
	return &EventEmitter{
		store:      store,
		projection: projection,
	}
}

// EmitEvent persists an event to the event store and updates the projection.
func (e *EventEmitter) EmitEvent(ctx context.Context, event eventstore.Event) error {
	if e == nil || e.store == nil {
		return nil
	}
	// Store writes outlive request cancellation so a canceled search is still recorded.
	if err := eventstore.AppendEvent(context.WithoutCancel(ctx), e.store, event); err != nil {
		return err
	}
	if e.projection != nil {
		e.projection.Apply(event)
	}
	return nil
}

// EmitSearchStarted records the start of a run.
func (e *EventEmitter) EmitSearchStarted(ctx context.Context, runID string, meta eventstore.SearchStartedMeta) error {
	event, err := eventstore.NewSearchStarted(runID, meta)
	if err != nil {
		return err
	}
	return e.EmitEvent(ctx, event)
}

// EmitSearchCompleted records a located pattern.
func (e *EventEmitter) EmitSearchCompleted(ctx context.Context, runID string, res locate.Result, duration time.Duration) error {
	event, err := eventstore.NewSearchCompleted(runID, res.Match.Start, res.Match.End, res.Scanned, duration)
	if err != nil {
		return err
	}
	return e.EmitEvent(ctx, event)
}

// EmitSearchFailed records a run that ended without a match.
func (e *EventEmitter) EmitSearchFailed(ctx context.Context, runID, outcome string, cause error, scanned int64, duration time.Duration) error {
	event, err := eventstore.NewSearchFailed(runID, outcome, cause.Error(), scanned, duration)
	if err != nil {
		return err
	}
	return e.EmitEvent(ctx, event)
}

// Projection returns the history read model, or nil when history is disabled.
func (e *EventEmitter) Projection() *eventstore.SearchHistoryProjection {
	if e == nil {
		return nil
	}
	return e.projection
}

// Close releases the underlying store.
func (e *EventEmitter) Close() error {
	if e == nil || e.store == nil {
		return nil
	}
	return e.store.Close()
}
