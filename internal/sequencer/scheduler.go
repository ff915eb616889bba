/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package sequencer

import "time"

// Scheduler runs fn once, after d, on the same loop that drives the
// sequencer.
type Scheduler interface {
	After(d time.Duration, fn func())
}

type timerScheduler struct {
	post func(fn func())
}

// NewTimerScheduler returns a Scheduler backed by time.AfterFunc. Expired
// callbacks are handed to post, which must queue them onto the event loop
// rather than running them on the timer goroutine.
func NewTimerScheduler(post func(fn func())) Scheduler {
	return &timerScheduler{post: post}
}

func (t *timerScheduler) After(d time.Duration, fn func()) {
	time.AfterFunc(d, func() {
		t.post(fn)
	})
}
