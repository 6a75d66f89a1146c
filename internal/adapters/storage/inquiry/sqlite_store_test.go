package inquiry

import (
	"context"
	"testing"
	"time"

	"beautrip/internal/adapters/storage/storagetest"
	domain "beautrip/internal/domain/inquiry"
)

func TestSQLiteStore_SaveAndUpdate(t *testing.T) {
	ctx := context.Background()
	db := storagetest.OpenDB(t)
	storagetest.InsertAccount(t, db, "acc")
	store := NewSQLiteStore(db)

	q := domain.Inquiry{ID: "q1", AccountID: "acc", HospitalID: 10, HospitalName: "A의원",
		Channel: domain.ChannelEmail, Contact: "me@example.com", Message: "상담 가능한가요?",
		Status: domain.StatusQueued, CreatedAt: time.Now()}
	if err := store.Save(ctx, q); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.UpdateStatus(ctx, "q1", domain.StatusSent); err != nil {
		t.Fatal(err)
	}
	list, err := store.ListByAccount(ctx, "acc", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Status != domain.StatusSent || list[0].HospitalName != "A의원" {
		t.Errorf("ListByAccount = %+v", list)
	}
}
