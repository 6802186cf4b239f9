package trace

import "time"

type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	KindHeartbeat
)

var kindNames = []string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
	KindHeartbeat: "heartbeat",
}

func (k Kind) String() string { return nameOf(kindNames, k) }

// Scope is the granularity of an event. Lower values are coarser.
type Scope uint8

const (
	ScopeDriver  Scope = iota + 1 // the whole `cargo expand` run
	ScopePass                     // one pipeline stage
	ScopeNode                     // a node the renderer fell back on
	ScopeAttempt                  // a single render attempt
)

var scopeNames = []string{
	ScopeDriver:  "driver",
	ScopePass:    "pass",
	ScopeNode:    "node",
	ScopeAttempt: "attempt",
}

func (s Scope) String() string { return nameOf(scopeNames, s) }

// Event is one trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // global, monotonic
	Kind     Kind
	Scope    Scope
	SpanID   uint64 // begin and end events only
	ParentID uint64 // 0 for roots
	Name     string // "parse", "unparse.placeholder"
	Detail   string
	Extra    map[string]string
}
