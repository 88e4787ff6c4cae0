package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Publisher captures structured audit events. Persistence goes through the
// store on the request path; the optional sink (Kafka) receives events
// asynchronously and never blocks or fails the caller.
type Publisher struct {
	store  Store
	sink   chan<- Event
	logger *slog.Logger
}

type PublisherOption func(*Publisher)

// WithSink attaches an asynchronous event sink channel, serviced by a
// background worker.
func WithSink(sink chan<- Event) PublisherOption {
	return func(p *Publisher) { p.sink = sink }
}

func NewPublisher(store Store, logger *slog.Logger, opts ...PublisherOption) *Publisher {
	p := &Publisher{store: store, logger: logger}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit appends the event. A full sink drops the asynchronous copy rather
// than stalling the request; the store copy is authoritative.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	if err := p.store.Append(ctx, event); err != nil {
		return err
	}
	if p.sink != nil {
		select {
		case p.sink <- event:
		default:
			p.logger.WarnContext(ctx, "audit sink full, dropping event", "action", event.Action)
		}
	}
	return nil
}

// List returns a posting's audit trail in append order.
func (p *Publisher) List(ctx context.Context, jobID uuid.UUID) ([]Event, error) {
	return p.store.ListByJob(ctx, jobID)
}
