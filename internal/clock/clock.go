// Package clock abstracts wall-clock time so periodic workers can be
// driven deterministically in tests.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
