package logger

import "context"

type ctxKey struct{}

func into(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// C returns the logger carried by ctx, or the root logger
func C(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok && l != nil {
		return l
	}
	return Get()
}

// WithRequest returns ctx carrying a child of C(ctx) with request_id and target set
// Empty values are left off; nested calls accumulate fields
func WithRequest(ctx context.Context, reqID, target string) context.Context {
	fields := C(ctx).With()
	if reqID != "" {
		fields = fields.Str("request_id", reqID)
	}
	if target != "" {
		fields = fields.Str("target", target)
	}
	l := fields.Logger()
	return into(ctx, &l)
}
