package observability

import (
	"context"

	"go.uber.org/zap"
)

// WithContext adds trace_id and span_id to logger when ctx carries a valid span.
func WithContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	tc := ExtractTrace(ctx)
	if tc == nil {
		return logger
	}

	return logger.With(
		zap.String("trace_id", tc.TraceID),
		zap.String("span_id", tc.SpanID),
	)
}
