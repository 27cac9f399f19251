/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package waiter

import "time"

// Clock is the time source of a Waiter.
type Clock interface {
	Now() time.Time
	// Sleep pauses for d and reports whether interrupt fired first.
	// A nil interrupt never fires.
	Sleep(d time.Duration, interrupt <-chan struct{}) bool
}

type realClock struct{}

// RealClock returns a Clock backed by the time package.
func RealClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) Sleep(d time.Duration, interrupt <-chan struct{}) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return false
	case <-interrupt:
		return true
	}
}
