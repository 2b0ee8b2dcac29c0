// Package utils contains small helpers shared by the other packages.
package utils

import "time"

// A Clock reads the current time. It is injected wherever wall-clock
// time feeds a decision, so that expiry boundaries are testable.
type Clock interface {
	Now() time.Time
}

// DefaultClock reads the system clock.
type DefaultClock struct{}

var _ Clock = DefaultClock{}

// Now gets the current time
func (DefaultClock) Now() time.Time { return time.Now() }
