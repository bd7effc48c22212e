// Package analytics emits well-formed tracking events to an opaque sink.
// Emission is best effort: a missing, failing or panicking sink never
// reaches the caller.
package analytics

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// CategoryEvent is the category every tracker uses.
const CategoryEvent = "event"

// Event is one tracking call.
type Event struct {
	Category  string
	Name      string
	Props     map[string]any
	VisitorID string
	At        time.Time
}

// Sink receives events.
type Sink interface {
	Emit(ctx context.Context, e Event) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, e Event) error

func (f SinkFunc) Emit(ctx context.Context, e Event) error {
	return f(ctx, e)
}

// Multi fans an event out to every non-nil sink and joins their errors.
func Multi(sinks ...Sink) Sink {
	return SinkFunc(func(ctx context.Context, e Event) error {
		var errs []error
		for _, s := range sinks {
			if s == nil {
				continue
			}
			if err := s.Emit(ctx, e); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}

// LogSink writes events to a zap logger.
func LogSink(logger *zap.Logger) Sink {
	return SinkFunc(func(_ context.Context, e Event) error {
		logger.Debug("analytics event",
			zap.String("category", e.Category),
			zap.String("name", e.Name),
			zap.String("visitor_id", e.VisitorID),
			zap.Any("props", e.Props),
		)
		return nil
	})
}

type visitorKey struct{}

// WithVisitor attaches the visitor identifier that emitted events carry.
func WithVisitor(ctx context.Context, visitorID string) context.Context {
	return context.WithValue(ctx, visitorKey{}, visitorID)
}

// VisitorFrom returns the identifier set by WithVisitor.
func VisitorFrom(ctx context.Context) string {
	id, _ := ctx.Value(visitorKey{}).(string)
	return id
}

// Emitter is the best-effort front of a Sink. A nil *Emitter is valid and
// drops everything.
type Emitter struct {
	sink   Sink
	logger *zap.Logger
	now    func() time.Time
}

// NewEmitter wraps sink. Both arguments may be nil.
func NewEmitter(sink Sink, logger *zap.Logger) *Emitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Emitter{sink: sink, logger: logger, now: time.Now}
}

// Emit sends (category, name, props) to the sink. It never panics and
// never returns an error.
func (e *Emitter) Emit(ctx context.Context, category, name string, props map[string]any) {
	if e == nil || e.sink == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("analytics sink panicked", zap.String("name", name), zap.Any("panic", r))
		}
	}()

	ev := Event{
		Category:  category,
		Name:      name,
		Props:     props,
		VisitorID: VisitorFrom(ctx),
		At:        e.now(),
	}
	if err := e.sink.Emit(ctx, ev); err != nil {
		e.logger.Warn("analytics emit failed", zap.String("name", name), zap.Error(err))
	}
}
