package trace

import "context"

type ctxKey struct{}

// scoped is what a context carries: the tracer and the innermost open span.
type scoped struct {
	tracer Tracer
	span   uint64
}

func scopedFrom(ctx context.Context) scoped {
	if ctx != nil {
		if s, ok := ctx.Value(ctxKey{}).(scoped); ok {
			return s
		}
	}
	return scoped{tracer: Nop}
}

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	return scopedFrom(ctx).tracer
}

// WithTracer attaches t to ctx. Spans opened on the parent context are not
// inherited.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, scoped{tracer: t})
}

// CurrentSpan returns the ID of the innermost span opened with Start, or 0.
func CurrentSpan(ctx context.Context) uint64 {
	return scopedFrom(ctx).span
}

func withSpan(ctx context.Context, id uint64) context.Context {
	s := scopedFrom(ctx)
	s.span = id
	return context.WithValue(ctx, ctxKey{}, s)
}
