// Package timespec resolves the terse duration shorthand used when logging
// time. Three forms are accepted:
//
//   - ""       the activity ran from the reference time until now
//   - "30"     elapsed minutes (negative minutes mean "ended N minutes ago")
//   - "H:M"    clock time the activity ended, today ("D:H:M" for D days back)
package timespec

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkrylov/goalie/internal/apperrors"
	"github.com/mkrylov/goalie/internal/clock"
)

var sixty = decimal.NewFromInt(60)

// Resolve converts a duration spec into elapsed seconds relative to ref.
// The clock-time form is interpreted against now rendered in loc. A negative
// intermediate duration is a marker meaning "ended this many seconds before
// now" and is converted to the actual span from ref. The result is meant to
// be applied as end = ref + duration; callers reject end < ref.
func Resolve(input string, ref, now decimal.Decimal, loc *time.Location) (decimal.Decimal, error) {
	input = strings.TrimSpace(input)
	dur := decimal.Zero
	if input != "" {
		var err error
		if strings.Contains(input, ":") {
			dur, err = resolveClockTime(input, now, loc)
		} else {
			dur, err = resolveMinutes(input)
		}
		if err != nil {
			return decimal.Decimal{}, err
		}
		// Negative durations mark "until N seconds ago".
		if dur.IsNegative() {
			dur = now.Sub(ref).Add(dur)
		}
	}
	if dur.IsZero() {
		dur = now.Sub(ref)
	}
	return dur, nil
}

// resolveClockTime handles "H:M" and "D:H:M", producing a negative marker
// duration of seconds before now.
func resolveClockTime(input string, now decimal.Decimal, loc *time.Location) (decimal.Decimal, error) {
	fields := strings.Split(input, ":")
	var dayField, hourField, minuteField string
	switch len(fields) {
	case 2:
		dayField, hourField, minuteField = "0", fields[0], fields[1]
	case 3:
		dayField, hourField, minuteField = fields[0], fields[1], fields[2]
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidTimeSpec, input)
	}
	days, err := strconv.Atoi(strings.TrimSpace(dayField))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: bad day count in %q", apperrors.ErrInvalidTimeSpec, input)
	}
	hour, err := strconv.Atoi(strings.TrimSpace(hourField))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: bad hour in %q", apperrors.ErrInvalidTimeSpec, input)
	}
	minute, err := strconv.Atoi(strings.TrimSpace(minuteField))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: bad minute in %q", apperrors.ErrInvalidTimeSpec, input)
	}

	local := clock.ToTime(now, loc)
	minutesAgo := (local.Hour()*60 + local.Minute()) - (hour*60 + minute) + days*24*60
	if minutesAgo <= 0 {
		return decimal.Decimal{}, fmt.Errorf("%w: cannot record into the future", apperrors.ErrInvalidTimeSpec)
	}
	return decimal.NewFromInt(int64(-minutesAgo)).Mul(sixty), nil
}

// resolveMinutes handles the plain elapsed-minutes form.
func resolveMinutes(input string) (decimal.Decimal, error) {
	minutes, err := strconv.Atoi(input)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q is not a duration", apperrors.ErrInvalidTimeSpec, input)
	}
	return decimal.NewFromInt(int64(minutes)).Mul(sixty), nil
}
