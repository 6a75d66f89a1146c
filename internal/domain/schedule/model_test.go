package schedule_test

import (
	"strings"
	"testing"
	"time"

	"beautrip/internal/domain/schedule"
	"beautrip/internal/domain/travel"
)

// TestMonthGrid tests the layout of the Sunday-first grid.
func TestMonthGrid(t *testing.T) {
	today := time.Date(2026, 3, 10, 15, 4, 0, 0, time.UTC)
	tests := []struct {
		name       string
		year       int
		month      time.Month
		wantOffset int
		wantDays   int
	}{
		{"march 2026 starts sunday", 2026, time.March, 0, 31},
		{"february 2026", 2026, time.February, 0, 28},
		{"february 2028 leap", 2028, time.February, 2, 29},
		{"april 2026 starts wednesday", 2026, time.April, 3, 30},
		{"august 2026 starts saturday", 2026, time.August, 6, 31},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := schedule.MonthGrid(tt.year, tt.month, today)
			if got, want := len(m.Cells), tt.wantOffset+tt.wantDays; got != want {
				t.Fatalf("len(Cells) = %d, want %d", got, want)
			}
			for i := 0; i < tt.wantOffset; i++ {
				if m.Cells[i] != nil {
					t.Errorf("cell %d should be blank", i)
				}
			}
			first := m.Cells[tt.wantOffset]
			if first == nil || first.Number != 1 || int(first.Weekday) != tt.wantOffset {
				t.Errorf("first day cell = %+v", first)
			}
		})
	}
}

// TestMonthGrid_PastAndToday tests the flags relative to today.
func TestMonthGrid_PastAndToday(t *testing.T) {
	today := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
	m := schedule.MonthGrid(2026, time.March, today)
	for _, d := range m.Cells {
		if d == nil {
			continue
		}
		if wantPast := d.Number < 10; d.IsPast != wantPast {
			t.Errorf("day %d IsPast = %v, want %v", d.Number, d.IsPast, wantPast)
		}
		if wantToday := d.Number == 10; d.IsToday != wantToday {
			t.Errorf("day %d IsToday = %v, want %v", d.Number, d.IsToday, wantToday)
		}
	}
	if got := m.Cells[9].Key(); got != "2026-03-10" {
		t.Errorf("Key() = %q, want 2026-03-10", got)
	}

	future := schedule.MonthGrid(2026, time.April, today)
	for _, d := range future.Cells {
		if d != nil && (d.IsPast || d.IsToday) {
			t.Errorf("april day %d flagged past/today", d.Number)
		}
	}
}

// TestMonth_Navigation tests prev/next across year boundaries.
func TestMonth_Navigation(t *testing.T) {
	today := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	jan := schedule.MonthGrid(2026, time.January, today)
	if y, m := jan.Prev(); y != 2025 || m != time.December {
		t.Errorf("Prev() = %d-%d, want 2025-12", y, m)
	}
	dec := schedule.MonthGrid(2026, time.December, today)
	if y, m := dec.Next(); y != 2027 || m != time.January {
		t.Errorf("Next() = %d-%d, want 2027-01", y, m)
	}
	if got := jan.Title(); got != "2026년 1월" {
		t.Errorf("Title() = %q", got)
	}
}

// TestMonth_Weeks tests row splitting and padding.
func TestMonth_Weeks(t *testing.T) {
	m := schedule.MonthGrid(2026, time.April, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	weeks := m.Weeks()
	if len(weeks) != 5 {
		t.Fatalf("len(Weeks) = %d, want 5", len(weeks))
	}
	for i, w := range weeks {
		if len(w) != 7 {
			t.Errorf("week %d has %d cells", i, len(w))
		}
	}
	last := weeks[4]
	if last[5] != nil || last[6] != nil {
		t.Error("trailing cells should be padded with nil")
	}
}

// TestValidateMonth tests month bounds.
func TestValidateMonth(t *testing.T) {
	for _, m := range []int{1, 12} {
		if err := schedule.ValidateMonth(m); err != nil {
			t.Errorf("ValidateMonth(%d) = %v", m, err)
		}
	}
	for _, m := range []int{0, 13} {
		if err := schedule.ValidateMonth(m); err != schedule.ErrInvalidMonth {
			t.Errorf("ValidateMonth(%d) = %v, want ErrInvalidMonth", m, err)
		}
	}
}

// TestEntry_Validate tests validation of Entry.
func TestEntry_Validate(t *testing.T) {
	today := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		entry   schedule.Entry
		wantErr error
	}{
		{"today", schedule.Entry{AccountID: "a", TreatmentID: 1, Date: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)}, nil},
		{"future by name", schedule.Entry{AccountID: "a", TreatmentName: "울쎄라", Date: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)}, nil},
		{"past", schedule.Entry{AccountID: "a", TreatmentID: 1, Date: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)}, schedule.ErrPastDate},
		{"no account", schedule.Entry{TreatmentID: 1, Date: today}, schedule.ErrEmptyAccountID},
		{"no treatment", schedule.Entry{AccountID: "a", Date: today}, schedule.ErrEmptyTreatment},
		{"no date", schedule.Entry{AccountID: "a", TreatmentID: 1}, schedule.ErrEmptyDate},
		{"long note", schedule.Entry{AccountID: "a", TreatmentID: 1, Date: today, Note: strings.Repeat("x", 501)}, schedule.ErrNoteTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.entry.Validate(today); err != tt.wantErr {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestEntry_InPeriod tests the travel period flag.
func TestEntry_InPeriod(t *testing.T) {
	p := travel.Period{
		Start: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
	}
	in := schedule.Entry{Date: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)}
	out := schedule.Entry{Date: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)}
	if !in.InPeriod(p) || out.InPeriod(p) {
		t.Error("InPeriod mismatch")
	}
	if in.DateKey() != "2026-03-09" {
		t.Errorf("DateKey() = %q", in.DateKey())
	}
}
