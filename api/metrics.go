package api

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName       = "taskdesk/api"
	tasksEventName   = "tasks.list"
	tasksEventDomain = "taskdesk"
	tasksRoute       = "/api/tasks"
)

// listRequestMetrics collects per-request timings for the task listing route
// and emits them both as an OpenTelemetry span and as a structured log event.
type listRequestMetrics struct {
	logger         *log.Logger
	span           trace.Span
	start          time.Time
	fetchDuration  time.Duration
	encodeDuration time.Duration
	tasksReturned  int
	errorStage     string
}

func newListRequestMetrics(ctx context.Context, logger *log.Logger) (*listRequestMetrics, context.Context) {
	spanCtx, span := otel.Tracer(tracerName).Start(ctx, "GET "+tasksRoute,
		trace.WithSpanKind(trace.SpanKindServer))
	return &listRequestMetrics{
		logger: logger,
		span:   span,
		start:  time.Now(),
	}, spanCtx
}

func (m *listRequestMetrics) ObserveFetch(duration time.Duration) {
	if duration <= 0 {
		return
	}
	m.fetchDuration = duration
}

func (m *listRequestMetrics) ObserveEncode(duration time.Duration) {
	if duration <= 0 {
		return
	}
	m.encodeDuration = duration
}

func (m *listRequestMetrics) SetTasksReturned(count int) {
	if count < 0 {
		count = 0
	}
	m.tasksReturned = count
}

func (m *listRequestMetrics) SetErrorStage(stage string) {
	if stage == "" {
		return
	}
	m.errorStage = stage
}

// Log finishes the span and emits one observability event for the request.
func (m *listRequestMetrics) Log(status int, err error) {
	if m == nil {
		return
	}

	totalMs := durationToMillis(time.Since(m.start))
	attrs := map[string]any{
		"http.route":                    tasksRoute,
		"http.status_code":              status,
		"taskdesk.tasks.total_ms":       totalMs,
		"taskdesk.tasks.tasks_returned": m.tasksReturned,
	}
	if m.fetchDuration > 0 {
		attrs["taskdesk.tasks.fetch_ms"] = durationToMillis(m.fetchDuration)
	}
	if m.encodeDuration > 0 {
		attrs["taskdesk.tasks.encode_ms"] = durationToMillis(m.encodeDuration)
	}
	if m.errorStage != "" {
		attrs["taskdesk.tasks.error_stage"] = m.errorStage
	}

	if m.span != nil {
		m.span.SetAttributes(
			attribute.String("http.route", tasksRoute),
			attribute.Int("http.status_code", status),
			attribute.Float64("taskdesk.tasks.total_ms", totalMs),
			attribute.Int("taskdesk.tasks.tasks_returned", m.tasksReturned),
		)
		if m.errorStage != "" {
			m.span.SetAttributes(attribute.String("taskdesk.tasks.error_stage", m.errorStage))
		}
		if err != nil {
			m.span.SetStatus(codes.Error, err.Error())
			m.span.RecordError(err)
		} else {
			m.span.SetStatus(codes.Ok, "")
		}
		m.span.End()
	}

	if m.logger == nil {
		return
	}
	severity := "INFO"
	fields := log.Fields{
		"event.name":    tasksEventName,
		"event.domain":  tasksEventDomain,
		"attributes":    attrs,
		"severity_text": severity,
	}
	if err != nil {
		fields["error"] = err.Error()
		fields["severity_text"] = "ERROR"
		m.logger.WithFields(fields).Error("observability.event")
		return
	}
	m.logger.WithFields(fields).Info("observability.event")
}

func durationToMillis(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(d) / float64(time.Millisecond)
}
