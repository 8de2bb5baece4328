package clock

import "time"

// Clock provides time-related functions that can be mocked for testing
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using actual system time
type RealClock struct{}

// Now returns the current system time
func (RealClock) Now() time.Time {
	return time.Now()
}

// Fixed is a Clock that reports a set time, advanced explicitly
type Fixed struct {
	T time.Time
}

// Now returns the fixed time
func (f *Fixed) Now() time.Time {
	return f.T
}

// Advance moves the fixed time forward by d
func (f *Fixed) Advance(d time.Duration) {
	f.T = f.T.Add(d)
}

// Since returns the time elapsed on c since t
func Since(c Clock, t time.Time) time.Duration {
	return c.Now().Sub(t)
}
