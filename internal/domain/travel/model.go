package travel

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the stored and submitted date format.
const DateLayout = "2006-01-02"

// Domain errors
var (
	ErrMissingStart   = errors.New("travel start date is required")
	ErrMissingEnd     = errors.New("travel end date is required")
	ErrEndBeforeStart = errors.New("travel end date cannot be before the start date")
)

var koreanWeekdays = [...]string{"일", "월", "화", "수", "목", "금", "토"}

// Period is the saved trip window. Both dates are calendar dates (time of day ignored).
// Only complete periods are persisted; a start-only period exists while the user is picking.
type Period struct {
	AccountID string
	Start     time.Time
	End       time.Time
	UpdatedAt time.Time
}

// ParsePeriod builds a Period from form values. Empty strings leave the date zero.
func ParsePeriod(start, end string) (Period, error) {
	var p Period
	var err error
	if start != "" {
		if p.Start, err = time.Parse(DateLayout, start); err != nil {
			return Period{}, fmt.Errorf("invalid start date %q: %w", start, err)
		}
	}
	if end != "" {
		if p.End, err = time.Parse(DateLayout, end); err != nil {
			return Period{}, fmt.Errorf("invalid end date %q: %w", end, err)
		}
	}
	return p, nil
}

// Validate checks the period is complete and ordered.
// PRE: Period struct is populated
// POST: Returns nil if both dates are set and End >= Start
func (p *Period) Validate() error {
	if p.Start.IsZero() {
		return ErrMissingStart
	}
	if p.End.IsZero() {
		return ErrMissingEnd
	}
	if dateOnly(p.End).Before(dateOnly(p.Start)) {
		return ErrEndBeforeStart
	}
	return nil
}

// IsComplete reports whether both ends are chosen.
func (p *Period) IsComplete() bool {
	return !p.Start.IsZero() && !p.End.IsZero()
}

// Nights returns the number of nights in the trip.
// PRE: Validate() == nil
func (p *Period) Nights() int {
	return int(dateOnly(p.End).Sub(dateOnly(p.Start)).Hours() / 24)
}

// Contains reports whether d falls within the period, inclusive on both ends.
func (p *Period) Contains(d time.Time) bool {
	if !p.IsComplete() {
		return false
	}
	day := dateOnly(d)
	return !day.Before(dateOnly(p.Start)) && !day.After(dateOnly(p.End))
}

// DisplayText renders the travel bar label, e.g. "3월 5일 (목) ~ 3월 9일 (월)".
// A start-only period renders the end as "종료일 선택"; an empty period renders "".
func (p *Period) DisplayText() string {
	if p.Start.IsZero() {
		return ""
	}
	if p.End.IsZero() {
		return FormatDate(p.Start) + " ~ 종료일 선택"
	}
	return FormatDate(p.Start) + " ~ " + FormatDate(p.End)
}

// FormatDate renders "M월 D일 (요일)".
func FormatDate(d time.Time) string {
	return fmt.Sprintf("%d월 %d일 (%s)", int(d.Month()), d.Day(), koreanWeekdays[d.Weekday()])
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
