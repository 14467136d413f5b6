package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_AfterFuncRuns(t *testing.T) {
	done := make(chan struct{})
	Scheduler{}.AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduled function did not run")
	}
}

func TestScheduler_StopCancels(t *testing.T) {
	fired := make(chan struct{}, 1)
	timer := Scheduler{}.AfterFunc(50*time.Millisecond, func() { fired <- struct{}{} })

	assert.True(t, timer.Stop())

	select {
	case <-fired:
		t.Fatal("stopped timer fired")
	case <-time.After(100 * time.Millisecond):
	}
}
