package analyses

import "context"

type requestIDKey struct{}

// WithRequestID attaches a request ID to the context so that asynchronous
// processing logs can be correlated with the originating request.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func requestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// backgroundWithRequestID detaches from the request lifetime but keeps its ID.
func backgroundWithRequestID(ctx context.Context) context.Context {
	return WithRequestID(context.Background(), requestIDFromContext(ctx))
}

func logFields(ctx context.Context, a Analysis) map[string]any {
	return map[string]any{
		"request_id":  requestIDFromContext(ctx),
		"user_id":     a.UserID,
		"document_id": a.DocumentID,
		"analysis_id": a.ID,
	}
}
