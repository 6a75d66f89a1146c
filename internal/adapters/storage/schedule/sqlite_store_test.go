package schedule

import (
	"context"
	"testing"
	"time"

	"beautrip/internal/adapters/storage/storagetest"
	domain "beautrip/internal/domain/schedule"
)

func day(d int) time.Time {
	return time.Date(2026, 9, d, 0, 0, 0, 0, time.UTC)
}

func TestSQLiteStore_ListByAccountRange(t *testing.T) {
	ctx := context.Background()
	db := storagetest.OpenDB(t)
	storagetest.InsertAccount(t, db, "acc")
	storagetest.InsertAccount(t, db, "other")
	store := NewSQLiteStore(db)

	entries := []domain.Entry{
		{ID: "e1", AccountID: "acc", TreatmentID: 3, TreatmentName: "쌍꺼풀", Date: day(20), CreatedAt: time.Now()},
		{ID: "e2", AccountID: "acc", TreatmentID: 4, TreatmentName: "보톡스", Date: day(5), CreatedAt: time.Now()},
		{ID: "e3", AccountID: "acc", TreatmentID: 5, TreatmentName: "리프팅", Date: day(28), CreatedAt: time.Now()},
		{ID: "e4", AccountID: "other", TreatmentID: 5, TreatmentName: "리프팅", Date: day(10), CreatedAt: time.Now()},
	}
	for _, e := range entries {
		if err := store.Save(ctx, e); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	all, err := store.ListByAccount(ctx, "acc", time.Time{}, time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].ID != "e2" || !all[0].Date.Equal(day(5)) {
		t.Errorf("ListByAccount = %+v", all)
	}

	ranged, _ := store.ListByAccount(ctx, "acc", day(6), day(20))
	if len(ranged) != 1 || ranged[0].ID != "e1" {
		t.Errorf("ranged = %+v", ranged)
	}

	if err := store.Delete(ctx, "other", "e1"); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, "acc", "e1"); err != nil {
		t.Fatal(err)
	}
	if all, _ := store.ListByAccount(ctx, "acc", time.Time{}, time.Time{}); len(all) != 2 {
		t.Errorf("after delete = %d entries, want 2", len(all))
	}
}
