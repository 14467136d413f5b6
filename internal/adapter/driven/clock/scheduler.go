// Package clock adapts the wall clock to the driven.Scheduler port.
package clock

import (
	"time"

	"github.com/ericfisherdev/keypanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.Scheduler = Scheduler{}

// Scheduler runs deferred calls with time.AfterFunc.
type Scheduler struct{}

// AfterFunc calls f in its own goroutine after d.
func (Scheduler) AfterFunc(d time.Duration, f func()) driven.Timer {
	return time.AfterFunc(d, f)
}
