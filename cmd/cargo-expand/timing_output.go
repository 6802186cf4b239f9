package main

import (
	"cargo-expand/internal/driver"
	"cargo-expand/internal/observ"
)

// timingObserver records every finished pipeline phase in timer.
func timingObserver(timer *observ.Timer) driver.PhaseObserver {
	return func(ev driver.PhaseEvent) {
		if ev.Status == driver.PhaseEnd {
			timer.Record(ev.Name, ev.Elapsed, "")
		}
	}
}
