package notify

import "time"

// Timer is the cancellable handle returned by a Clock.
type Timer interface {
	Stop() bool
}

// Clock abstracts timer scheduling so tests can drive auto-hide
// deterministically.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemClock returns the wall-clock backed Clock used outside of tests.
func SystemClock() Clock {
	return realClock{}
}
