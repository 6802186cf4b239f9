package trace

import (
	"context"
	"sync/atomic"
	"time"
)

var (
	seqs  atomic.Uint64
	spans atomic.Uint64
)

// NextSeq returns the next global event sequence number.
func NextSeq() uint64 {
	return seqs.Add(1)
}

// Span is an open span. The zero-ID span returned for a filtered scope is
// inert: End and WithExtra do nothing.
type Span struct {
	tracer  Tracer
	head    Event // the begin event, reused as the template of the end event
	started time.Time
	extra   map[string]string
}

// Begin opens a span under parent (0 for a root span).
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return &Span{}
	}
	now := time.Now()
	sp := &Span{
		tracer: t,
		head: Event{
			Kind:     KindSpanBegin,
			Scope:    scope,
			SpanID:   spans.Add(1),
			ParentID: parent,
			Name:     name,
		},
		started: now,
	}
	ev := sp.head
	ev.Time, ev.Seq = now, NextSeq()
	t.Emit(&ev)
	return sp
}

// Start opens a span under the current span of ctx and returns a context
// in which the new span is current.
func Start(ctx context.Context, scope Scope, name string) (*Span, context.Context) {
	sp := Begin(FromContext(ctx), scope, name, CurrentSpan(ctx))
	if sp.ID() == 0 {
		return sp, ctx
	}
	return sp, withSpan(ctx, sp.ID())
}

// End closes the span and reports how long it was open.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.tracer == nil {
		return 0
	}
	now := time.Now()
	ev := s.head
	ev.Kind = KindSpanEnd
	ev.Time, ev.Seq = now, NextSeq()
	ev.Detail = detail
	ev.Extra = s.extra
	s.tracer.Emit(&ev)
	return now.Sub(s.started)
}

// WithExtra records key=value on the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.tracer == nil {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

// ID returns the span ID, 0 for an inert span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.head.SpanID
}

// Point emits an instantaneous event under parent.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Seq:      NextSeq(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent,
		Name:     name,
		Detail:   detail,
	})
}
