package hospital

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"beautrip/internal/adapters/storage/storagetest"
	domain "beautrip/internal/domain/hospital"
)

func TestSQLiteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewSQLiteStore(storagetest.OpenDB(t))
	want := domain.Hospital{
		ID: 10, Name: "A의원", Address: "서울 강남구", Intro: "눈 전문",
		Departments: []string{"성형외과", "피부과"}, Rating: 4.5, ReviewCount: 30,
		Phone: "02-000-0000", Email: "a@clinic.kr",
	}
	if err := store.Upsert(ctx, []domain.Hospital{want, {ID: 11, Name: "B"}}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, err := store.GetByID(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetByID (-want +got):\n%s", diff)
	}

	list, err := store.List(ctx, 1)
	if err != nil || len(list) != 1 || list[0].ID != 10 {
		t.Errorf("List(1) = %+v, %v", list, err)
	}
	if n, _ := store.Count(ctx); n != 2 {
		t.Errorf("Count = %d", n)
	}
}
