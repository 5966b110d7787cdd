package cache

import "time"

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// Timer is a scheduled task that can be stopped before it fires.
type Timer interface {
	Stop() bool
}

// Scheduler runs a function after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
