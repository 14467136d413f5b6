package driven

import "time"

// Timer is a pending scheduled call that can be cancelled.
type Timer interface {
	// Stop prevents the call from running. It returns false if the call has
	// already run or was already stopped.
	Stop() bool
}

// Scheduler defers a function call. Production code uses the wall clock;
// tests substitute a fake that fires on demand.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}
