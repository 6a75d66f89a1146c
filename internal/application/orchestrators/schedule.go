package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	domainSchedule "beautrip/internal/domain/schedule"
)

// ScheduleStoreForUpdate defines the store interface needed by the schedule orchestrators.
type ScheduleStoreForUpdate interface {
	Save(ctx context.Context, e domainSchedule.Entry) error
	Delete(ctx context.Context, accountID, id string) error
}

// AddScheduleEntryInput carries the date picked in the schedule modal.
type AddScheduleEntryInput struct {
	AccountID   string
	TreatmentID int64
	Date        string // YYYY-MM-DD
	Note        string
}

// ScheduleDeps holds dependencies for the schedule orchestrators.
type ScheduleDeps struct {
	Schedule   ScheduleStoreForUpdate
	Treatments TreatmentLookup
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteAddScheduleEntry plans a procedure on a date.
// PRE: TreatmentID names an existing treatment
// POST: Entry persisted with the treatment and hospital names copied in
// INVARIANT: Dates before today are rejected
func ExecuteAddScheduleEntry(ctx context.Context, input AddScheduleEntryInput, deps ScheduleDeps) (domainSchedule.Entry, error) {
	if strings.TrimSpace(input.Date) == "" {
		return domainSchedule.Entry{}, domainSchedule.ErrEmptyDate
	}
	date, err := time.Parse(domainSchedule.DateLayout, input.Date)
	if err != nil {
		return domainSchedule.Entry{}, fmt.Errorf("invalid date %q: %w", input.Date, err)
	}
	t, err := deps.Treatments.GetByID(ctx, input.TreatmentID)
	if err != nil {
		return domainSchedule.Entry{}, lookupErr("treatment", err)
	}

	now := deps.Now()
	entry := domainSchedule.Entry{
		ID:            deps.GenerateID(),
		AccountID:     input.AccountID,
		TreatmentID:   t.ID,
		TreatmentName: t.Name,
		HospitalName:  t.HospitalName,
		Date:          date,
		Note:          strings.TrimSpace(input.Note),
		CreatedAt:     now,
	}
	if err := entry.Validate(now); err != nil {
		return domainSchedule.Entry{}, err
	}
	if err := deps.Schedule.Save(ctx, entry); err != nil {
		return domainSchedule.Entry{}, err
	}
	slog.Info("schedule_entry_added", "account_id", entry.AccountID, "treatment_id", entry.TreatmentID, "date", entry.DateKey())
	return entry, nil
}

// ExecuteRemoveScheduleEntry deletes one of the account's entries.
func ExecuteRemoveScheduleEntry(ctx context.Context, accountID, entryID string, deps ScheduleDeps) error {
	if err := deps.Schedule.Delete(ctx, accountID, entryID); err != nil {
		return err
	}
	slog.Info("schedule_entry_removed", "account_id", accountID, "entry_id", entryID)
	return nil
}
