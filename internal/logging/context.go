package logging

import (
	"context"
	"maps"
)

type contextKey string

const (
	contextFieldsKey contextKey = "course.logging.fields"
	fieldRequestID              = "request_id"
)

// ContextWithFields returns a context carrying structured logging fields that
// console loggers merge into subsequent entries. Existing fields are kept;
// new values win on key collisions.
func ContextWithFields(ctx context.Context, fields map[string]any) context.Context {
	if ctx == nil || len(fields) == 0 {
		return ctx
	}

	existing := ContextFields(ctx)
	merged := make(map[string]any, len(existing)+len(fields))
	maps.Copy(merged, existing)
	maps.Copy(merged, fields)
	return context.WithValue(ctx, contextFieldsKey, merged)
}

// ContextFields extracts previously annotated logging fields. The returned
// map is a copy.
func ContextFields(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	fields, ok := ctx.Value(contextFieldsKey).(map[string]any)
	if !ok || len(fields) == 0 {
		return nil
	}
	return maps.Clone(fields)
}

// ContextWithRequestID stores the request id as a logging field.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		return ctx
	}
	return ContextWithFields(ctx, map[string]any{fieldRequestID: requestID})
}

// RequestID returns the request id previously stored on ctx.
func RequestID(ctx context.Context) string {
	id, _ := ContextFields(ctx)[fieldRequestID].(string)
	return id
}
