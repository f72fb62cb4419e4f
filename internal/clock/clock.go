// Package clock supplies the current time to services so tests can pin it.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

// Func turns a plain function into a Clock.
type Func func() time.Time

func (f Func) Now() time.Time { return f() }

// NewSystem reads the wall clock, in UTC.
func NewSystem() Clock {
	return Func(func() time.Time { return time.Now().UTC() })
}

// NewFixed reports t on every call.
func NewFixed(t time.Time) Clock {
	t = t.UTC()
	return Func(func() time.Time { return t })
}
