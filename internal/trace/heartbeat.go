package trace

import (
	"context"
	"sync"
	"time"
)

// StartHeartbeat emits a heartbeat event every interval until the returned
// stop function is called or ctx is done. Heartbeats with no span ends in
// between point at a stuck cargo child or a pathological render. The
// detail of each heartbeat is the time since it was started.
func StartHeartbeat(ctx context.Context, t Tracer, interval time.Duration) (stop func()) {
	if t == nil || !t.Enabled() || interval <= 0 {
		return func() {}
	}
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		beat(ctx, t, interval)
	}()
	return func() {
		cancel()
		wg.Wait()
	}
}

func beat(ctx context.Context, t Tracer, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	began := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			t.Emit(&Event{
				Time:   now,
				Seq:    NextSeq(),
				Kind:   KindHeartbeat,
				Scope:  ScopeDriver,
				Name:   "heartbeat",
				Detail: now.Sub(began).Round(time.Millisecond).String(),
			})
		}
	}
}
