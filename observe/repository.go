/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package observe

import (
	"context"
	"time"

	"github.com/suparena/adminstore/datastore"
	"github.com/suparena/adminstore/errors"
	"github.com/suparena/adminstore/storagemodels"
	"github.com/suparena/adminstore/update"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Operation status labels.
const (
	StatusOK          = "ok"
	StatusNotFound    = "not_found"
	StatusInvalid     = "invalid"
	StatusEmptyUpdate = "empty_update"
	StatusError       = "error"
)

// TracerName is the instrumentation name of the default tracer.
const TracerName = "adminstore"

type settings struct {
	logger  *zap.Logger
	metrics *Metrics
	tracer  trace.Tracer
}

// Option configures Wrap.
type Option func(*settings)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records every operation in m.
func WithMetrics(m *Metrics) Option {
	return func(s *settings) {
		s.metrics = m
	}
}

// WithTracer sets the tracer spans are started with.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *settings) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// repository decorates a datastore.Repository with logs, metrics and spans.
type repository[T any] struct {
	next   datastore.Repository[T]
	entity string
	settings
}

// Wrap returns repo instrumented under the given entity name. Results and
// errors pass through unchanged.
func Wrap[T any](repo datastore.Repository[T], entity string, opts ...Option) datastore.Repository[T] {
	s := settings{
		logger: zap.NewNop(),
		tracer: otel.Tracer(TracerName),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return &repository[T]{
		next:     repo,
		entity:   entity,
		settings: s,
	}
}

func (r *repository[T]) start(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span, time.Time) {
	attrs = append([]attribute.KeyValue{
		attribute.String("db.system", "dynamodb"),
		attribute.String("repository.entity", r.entity),
		attribute.String("repository.operation", operation),
	}, attrs...)
	ctx, span := r.tracer.Start(ctx, r.entity+"."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
	return ctx, span, time.Now()
}

func (r *repository[T]) finish(span trace.Span, operation string, started time.Time, err error, fields ...zap.Field) {
	defer span.End()
	elapsed := time.Since(started)
	status := Status(err)
	r.metrics.record(r.entity, operation, status, elapsed)

	fields = append(fields,
		zap.String("entity", r.entity),
		zap.String("operation", operation),
		zap.Duration("duration", elapsed),
	)

	switch status {
	case StatusOK:
		span.SetStatus(codes.Ok, "")
		r.logger.Debug("repository operation completed", fields...)
	case StatusError:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if code := errors.StoreErrorCode(err); code != "" {
			fields = append(fields, zap.String("errorCode", code))
		}
		r.logger.Error("repository operation failed", append(fields, zap.Error(err))...)
	default:
		span.SetAttributes(attribute.String("repository.status", status))
		r.logger.Warn("repository operation rejected", append(fields, zap.String("status", status), zap.Error(err))...)
	}
}

// Status classifies err into an operation status label.
func Status(err error) string {
	switch {
	case err == nil:
		return StatusOK
	case errors.IsNotFound(err):
		return StatusNotFound
	case errors.IsEmptyUpdate(err):
		return StatusEmptyUpdate
	case errors.IsValidationError(err), errors.IsMalformedKey(err):
		return StatusInvalid
	default:
		return StatusError
	}
}

func idAttr(ids []string) attribute.KeyValue {
	return attribute.StringSlice("repository.ids", ids)
}

func (r *repository[T]) Get(ctx context.Context, ids ...string) (*T, error) {
	ctx, span, started := r.start(ctx, "get", idAttr(ids))
	item, err := r.next.Get(ctx, ids...)
	r.finish(span, "get", started, err, zap.Strings("ids", ids), zap.Bool("found", item != nil))
	return item, err
}

func (r *repository[T]) Create(ctx context.Context, entity T) (T, error) {
	ctx, span, started := r.start(ctx, "create")
	created, err := r.next.Create(ctx, entity)
	r.finish(span, "create", started, err)
	return created, err
}

func (r *repository[T]) Update(ctx context.Context, changes update.ChangeSet, ids ...string) (T, error) {
	fieldNames := changes.Fields()
	ctx, span, started := r.start(ctx, "update", idAttr(ids), attribute.StringSlice("repository.fields", fieldNames))
	updated, err := r.next.Update(ctx, changes, ids...)
	r.finish(span, "update", started, err, zap.Strings("ids", ids), zap.Strings("fields", fieldNames))
	return updated, err
}

func (r *repository[T]) Delete(ctx context.Context, ids ...string) error {
	ctx, span, started := r.start(ctx, "delete", idAttr(ids))
	err := r.next.Delete(ctx, ids...)
	r.finish(span, "delete", started, err, zap.Strings("ids", ids))
	return err
}

func (r *repository[T]) List(ctx context.Context, opts storagemodels.ListOptions, parents ...string) (*storagemodels.Page[T], error) {
	ctx, span, started := r.start(ctx, "list", attribute.StringSlice("repository.parents", parents), attribute.Int("repository.count", int(opts.Count)))
	page, err := r.next.List(ctx, opts, parents...)
	fields := []zap.Field{zap.Strings("parents", parents), zap.Int32("count", opts.Count)}
	if page != nil {
		fields = append(fields, zap.Int("items", len(page.Items)), zap.Bool("hasMore", page.HasMore()))
	}
	r.finish(span, "list", started, err, fields...)
	return page, err
}

// Stream forwards the underlying stream and finishes its span once the
// stream is closed.
func (r *repository[T]) Stream(ctx context.Context, parents []string, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	ctx, span, started := r.start(ctx, "stream", attribute.StringSlice("repository.parents", parents))
	in := r.next.Stream(ctx, parents, opts...)
	out := make(chan storagemodels.StreamResult[T], cap(in))

	go func() {
		defer close(out)
		var items int64
		var lastErr error
		for result := range in {
			if result.Error != nil {
				lastErr = result.Error
			} else {
				items++
			}
			select {
			case out <- result:
			case <-ctx.Done():
				// drain so the producer can exit
				for range in {
				}
				r.finish(span, "stream", started, ctx.Err(), zap.Int64("items", items))
				return
			}
		}
		if lastErr == nil {
			// the producer stops without an error result when ctx ends
			lastErr = ctx.Err()
		}
		span.SetAttributes(attribute.Int64("repository.items", items))
		r.finish(span, "stream", started, lastErr, zap.Strings("parents", parents), zap.Int64("items", items))
	}()
	return out
}
