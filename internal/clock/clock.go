// Package clock provides the wall-clock value threaded through every engine
// entry point. Commands capture one instant at startup and pass it down, so
// tests can substitute a fixed instant instead of racing the real clock.
package clock

import (
	"time"

	"github.com/shopspring/decimal"
)

// Clock yields the current instant as decimal seconds since the epoch.
type Clock interface {
	Now() decimal.Decimal
}

// System reads the real wall clock.
type System struct{}

func (System) Now() decimal.Decimal {
	return FromTime(time.Now())
}

// Fixed always returns the same instant.
type Fixed struct {
	Instant decimal.Decimal
}

func (f Fixed) Now() decimal.Decimal { return f.Instant }

// FromTime converts a time.Time to decimal seconds since the epoch.
func FromTime(t time.Time) decimal.Decimal {
	return decimal.New(t.UnixNano(), -9)
}

// ToTime converts decimal seconds since the epoch to a time.Time in loc.
func ToTime(ts decimal.Decimal, loc *time.Location) time.Time {
	sec := ts.IntPart()
	nsec := ts.Sub(decimal.NewFromInt(sec)).Mul(decimal.NewFromInt(1e9)).IntPart()
	return time.Unix(sec, nsec).In(loc)
}
