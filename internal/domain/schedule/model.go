package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"beautrip/internal/domain/travel"
)

// DateLayout is the date format used by the schedule modal and storage.
const DateLayout = "2006-01-02"

// WeekdayLabels are the grid column headers, Sunday first.
var WeekdayLabels = []string{"일", "월", "화", "수", "목", "금", "토"}

// Domain errors
var (
	ErrEmptyAccountID = errors.New("account ID cannot be empty")
	ErrEmptyTreatment = errors.New("treatment cannot be empty")
	ErrEmptyDate      = errors.New("date cannot be empty")
	ErrPastDate       = errors.New("date cannot be in the past")
	ErrInvalidMonth   = errors.New("month must be between 1 and 12")
	ErrNoteTooLong    = errors.New("note cannot exceed 500 characters")
)

// MaxNoteLength bounds the free-text note on an entry.
const MaxNoteLength = 500

// Day is one selectable cell in the month grid.
type Day struct {
	Date    time.Time
	Number  int
	Weekday time.Weekday
	IsPast  bool
	IsToday bool
}

// Key renders the cell date as YYYY-MM-DD.
func (d Day) Key() string {
	return d.Date.Format(DateLayout)
}

// Month is a calendar page of the add-to-schedule modal.
// Cells holds nil for the leading blanks before the 1st, then one Day per date.
type Month struct {
	Year  int
	Month time.Month
	Cells []*Day
}

// MonthGrid builds the Sunday-first grid for year/month relative to today.
// PRE: 1 <= month <= 12
// POST: len(Cells) == weekday(1st) + days in month; leading cells are nil
// POST: IsPast is set for dates strictly before today, comparing dates only
func MonthGrid(year int, month time.Month, today time.Time) Month {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()
	offset := int(first.Weekday())
	todayDate := dateOnly(today)

	cells := make([]*Day, offset, offset+days)
	for n := 1; n <= days; n++ {
		d := time.Date(year, month, n, 0, 0, 0, 0, time.UTC)
		cells = append(cells, &Day{
			Date:    d,
			Number:  n,
			Weekday: d.Weekday(),
			IsPast:  d.Before(todayDate),
			IsToday: d.Equal(todayDate),
		})
	}
	return Month{Year: year, Month: month, Cells: cells}
}

// Weeks splits Cells into rows of seven, padding the final row with nil.
func (m Month) Weeks() [][]*Day {
	var weeks [][]*Day
	for i := 0; i < len(m.Cells); i += 7 {
		end := i + 7
		row := make([]*Day, 7)
		if end > len(m.Cells) {
			end = len(m.Cells)
		}
		copy(row, m.Cells[i:end])
		weeks = append(weeks, row)
	}
	return weeks
}

// Title renders the grid heading, e.g. "2026년 3월".
func (m Month) Title() string {
	return fmt.Sprintf("%d년 %d월", m.Year, int(m.Month))
}

// Prev returns the year and month before m.
func (m Month) Prev() (int, time.Month) {
	p := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return p.Year(), p.Month()
}

// Next returns the year and month after m.
func (m Month) Next() (int, time.Month) {
	n := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return n.Year(), n.Month()
}

// ValidateMonth checks a month number from a query string.
func ValidateMonth(month int) error {
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// Entry is a procedure the user plans to have on a given date.
type Entry struct {
	ID            string
	AccountID     string
	TreatmentID   int64
	TreatmentName string
	HospitalName  string
	Date          time.Time
	Note          string
	CreatedAt     time.Time
}

// Validate checks if the Entry has valid data relative to today.
// PRE: Entry struct is populated
// POST: Returns nil if valid; dates before today are rejected
func (e *Entry) Validate(today time.Time) error {
	if strings.TrimSpace(e.AccountID) == "" {
		return ErrEmptyAccountID
	}
	if e.TreatmentID == 0 && strings.TrimSpace(e.TreatmentName) == "" {
		return ErrEmptyTreatment
	}
	if e.Date.IsZero() {
		return ErrEmptyDate
	}
	if dateOnly(e.Date).Before(dateOnly(today)) {
		return ErrPastDate
	}
	if len([]rune(e.Note)) > MaxNoteLength {
		return ErrNoteTooLong
	}
	return nil
}

// InPeriod reports whether the entry falls inside the saved travel period.
func (e *Entry) InPeriod(p travel.Period) bool {
	return p.Contains(e.Date)
}

// DateKey renders the entry date as YYYY-MM-DD.
func (e *Entry) DateKey() string {
	return e.Date.Format(DateLayout)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
