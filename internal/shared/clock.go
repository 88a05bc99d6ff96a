// Package shared provides small collaborators used across venom packages.
package shared

import "time"

// Clock provides the current time. Sorting and view derivation compare
// tasks without a due date against Now, so tests pin it with FixedClock.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant.
type FixedClock struct {
	T time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time { return c.T }
