package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestStartSpan(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	require.NoError(t, InitWithExporter("bpm", "0.0.1", exporter))

	ctx, parent := StartSpan(context.Background(), "engine.start", KindInternal)
	parent.WithAttributes(map[string]string{"definition": "holidayRequest"})
	_, child := StartSpan(ctx, "engine.delegate", KindInternal)
	child.AddEvent("delegate.failed", map[string]string{"node": "sendRejectionMail"})
	EndSpan(child, errors.New("smtp down"))
	EndSpan(parent, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "engine.delegate", spans[0].Name)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
	assert.Equal(t, "engine.start", spans[1].Name)
	assert.Equal(t, codes.Ok, spans[1].Status.Code)
}

func TestNilSpan(t *testing.T) {
	var span *Span
	assert.NotPanics(t, func() {
		span.WithAttributes(map[string]string{"k": "v"})
		span.AddEvent("e", nil)
		EndSpan(span, nil)
	})
}
