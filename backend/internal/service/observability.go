package service

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/itchan-dev/boards/backend/internal/service")

var (
	topicsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "boards_topics_created_total",
		Help: "Total number of topics created",
	})
	repliesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "boards_replies_created_total",
		Help: "Total number of replies posted to existing topics",
	})
	postsEdited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "boards_posts_edited_total",
		Help: "Total number of post edits",
	})
	permissionDenied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "boards_permission_denied_total",
		Help: "Total number of edits rejected by the edit policy",
	})
)

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// endSpan is meant to be deferred with a pointer to the named error result.
func endSpan(span trace.Span, err *error) {
	if *err != nil {
		span.RecordError(*err)
		span.SetStatus(codes.Error, (*err).Error())
	}
	span.End()
}
