package otel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/logger"
)

func TestSpanCarriesTraceID(t *testing.T) {
	tp, shutdown, err := InitTracing(logger.Nop(), Config{ServiceName: "storefront-test", Probability: 1})
	require.NoError(t, err)
	defer shutdown(context.Background())

	ctx := InjectTracing(context.Background(), tp.Tracer("test"))
	ctx, span := AddSpan(ctx, "applyDiscount")
	defer span.End()

	assert.Len(t, GetTraceID(ctx), 32)
}

func TestAddSpanWithoutTracer(t *testing.T) {
	ctx, span := AddSpan(context.Background(), "orphan")
	span.End()
	assert.Empty(t, GetTraceID(ctx))
}
