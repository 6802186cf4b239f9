// Package trace records what the expand pipeline did and how long it took.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	cargo expand --trace=- --trace-level=detail
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes every event immediately (file or stderr)
//   - RingTracer: keeps the last events in memory for crash dumps
//   - MultiTracer: fans events out to several tracers
//
// # Levels and scopes
//
// Every event belongs to a scope. The level decides which scopes are kept:
//
//   - LevelPhase: ScopeDriver and ScopePass (cargo run, parse, sanitize,
//     filter, unparse, rustfmt, highlight)
//   - LevelDetail: adds ScopeNode, the fallbacks and placeholders of the
//     resilient renderer
//   - LevelDebug: adds ScopeAttempt, every single render attempt
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//
//	span, ctx := trace.Start(ctx, trace.ScopePass, "parse")
//	defer span.End("")
//
// Spans started from the returned context nest under span.
package trace
