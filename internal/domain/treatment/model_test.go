package treatment_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"beautrip/internal/domain/treatment"
)

// TestTreatment_HashtagList tests splitting the raw hashtag field.
func TestTreatment_HashtagList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"hash prefixed", "#쌍꺼풀 #자연유착", []string{"쌍꺼풀", "자연유착"}},
		{"comma separated", "리프팅, 탄력,  윤곽", []string{"리프팅", "탄력", "윤곽"}},
		{"mixed", "#a,#b c", []string{"a", "b", "c"}},
		{"empty", "", []string{}},
		{"only separators", " ,# ", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := treatment.Treatment{Hashtags: tt.raw}
			if diff := cmp.Diff(tt.want, tr.HashtagList()); diff != "" {
				t.Errorf("HashtagList() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestTreatment_MatchesCategory tests the fuzzy category match.
func TestTreatment_MatchesCategory(t *testing.T) {
	tests := []struct {
		name     string
		tr       treatment.Treatment
		selected string
		want     bool
	}{
		{"empty selection", treatment.Treatment{}, "", true},
		{"large exact", treatment.Treatment{CategoryLarge: "필러"}, "필러", true},
		{"selection contains large", treatment.Treatment{CategoryLarge: "윤곽"}, "안면윤곽/양악", true},
		{"large contains selection", treatment.Treatment{CategoryLarge: "코성형/재수술"}, "코성형", true},
		{"mid match", treatment.Treatment{CategoryLarge: "기타", CategoryMid: "보톡스"}, "보톡스", true},
		{"name fallback", treatment.Treatment{Name: "Ultra Lifting 300"}, "lifting", true},
		{"no match", treatment.Treatment{CategoryLarge: "피부", Name: "레이저"}, "가슴성형", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tr.MatchesCategory(tt.selected); got != tt.want {
				t.Errorf("MatchesCategory(%q) = %v, want %v", tt.selected, got, tt.want)
			}
		})
	}
}

// TestTreatment_MatchesSearch tests search over name, hospital and hashtags.
func TestTreatment_MatchesSearch(t *testing.T) {
	tr := treatment.Treatment{Name: "Thermage FLX", HospitalName: "강남 클리닉", Hashtags: "#탄력"}
	tests := []struct {
		term string
		want bool
	}{
		{"", true},
		{"thermage", true},
		{"FLX", true},
		{"강남", true},
		{"탄력", true},
		{"울쎄라", false},
	}
	for _, tt := range tests {
		if got := tr.MatchesSearch(tt.term); got != tt.want {
			t.Errorf("MatchesSearch(%q) = %v, want %v", tt.term, got, tt.want)
		}
	}
}

// TestTreatment_MatchesHashtag tests case-insensitive hashtag filtering.
func TestTreatment_MatchesHashtag(t *testing.T) {
	tr := treatment.Treatment{Hashtags: "#Skin, #Glow"}
	if !tr.MatchesHashtag("glow") {
		t.Error("expected case-insensitive match")
	}
	if tr.MatchesHashtag("matte") {
		t.Error("unexpected match")
	}
	if !tr.MatchesHashtag("") {
		t.Error("empty tag should match everything")
	}
}

// TestSortBy tests every sort key and that the input is not mutated.
func TestSortBy(t *testing.T) {
	list := []treatment.Treatment{
		{ID: 1, SellingPrice: 300, Rating: 4.1, ReviewCount: 5},
		{ID: 2, SellingPrice: 100, Rating: 4.9, ReviewCount: 1},
		{ID: 3, SellingPrice: 200, Rating: 3.0, ReviewCount: 40},
	}
	tests := []struct {
		key  string
		want []int64
	}{
		{treatment.SortDefault, []int64{1, 2, 3}},
		{"bogus", []int64{1, 2, 3}},
		{treatment.SortPriceLow, []int64{2, 3, 1}},
		{treatment.SortPriceHigh, []int64{1, 3, 2}},
		{treatment.SortRating, []int64{2, 1, 3}},
		{treatment.SortReview, []int64{3, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got := ids(treatment.SortBy(list, tt.key))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SortBy(%q) mismatch (-want +got):\n%s", tt.key, diff)
			}
		})
	}
	if list[0].ID != 1 || list[1].ID != 2 {
		t.Error("SortBy mutated its input")
	}
}

// TestLargeAndMidCategories tests filter option extraction.
func TestLargeAndMidCategories(t *testing.T) {
	list := []treatment.Treatment{
		{CategoryLarge: "피부", CategoryMid: "레이저"},
		{CategoryLarge: "필러", CategoryMid: "입술"},
		{CategoryLarge: "피부", CategoryMid: "관리"},
		{CategoryLarge: "피부", CategoryMid: "레이저"},
		{CategoryLarge: ""},
	}
	if diff := cmp.Diff([]string{"피부", "필러"}, treatment.LargeCategories(list)); diff != "" {
		t.Errorf("LargeCategories mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"관리", "레이저"}, treatment.MidCategories(list, "피부")); diff != "" {
		t.Errorf("MidCategories mismatch (-want +got):\n%s", diff)
	}
	if got := treatment.MidCategories(list, ""); got != nil {
		t.Errorf("MidCategories with no large category = %v, want nil", got)
	}
}

// TestCollectHashtags tests uniqueness, ordering and the limit.
func TestCollectHashtags(t *testing.T) {
	list := []treatment.Treatment{
		{Hashtags: "#c #a"},
		{Hashtags: "b, a"},
		{Hashtags: "#d"},
	}
	if diff := cmp.Diff([]string{"a", "b", "c", "d"}, treatment.CollectHashtags(list, 20)); diff != "" {
		t.Errorf("CollectHashtags mismatch (-want +got):\n%s", diff)
	}
	if got := treatment.CollectHashtags(list, 2); len(got) != 2 || got[0] != "a" {
		t.Errorf("CollectHashtags limit = %v", got)
	}
}

// TestSuggestSmallCategories tests the review form autocomplete.
func TestSuggestSmallCategories(t *testing.T) {
	list := []treatment.Treatment{
		{CategoryLarge: "눈성형", CategorySmall: "매몰법"},
		{CategoryLarge: "눈성형", CategorySmall: "절개법"},
		{CategoryLarge: "눈성형", CategorySmall: "매몰법"},
		{CategoryLarge: "코성형", CategorySmall: "절개 코끝"},
		{CategoryLarge: "눈성형", CategorySmall: "Ptosis Correction"},
	}
	tests := []struct {
		name  string
		large string
		term  string
		limit int
		want  []string
	}{
		{"empty term", "눈성형", "", 10, nil},
		{"restricted to large", "눈성형", "절개", 10, []string{"절개법"}},
		{"any large", "", "절개", 10, []string{"절개법", "절개 코끝"}},
		{"dedup", "눈성형", "법", 10, []string{"매몰법", "절개법"}},
		{"case-insensitive", "", "ptosis", 10, []string{"Ptosis Correction"}},
		{"limit", "", "법", 1, []string{"매몰법"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := treatment.SuggestSmallCategories(list, tt.large, tt.term, tt.limit)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SuggestSmallCategories mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestCategoryDescription tests fixed descriptions and the fallback.
func TestCategoryDescription(t *testing.T) {
	if got := treatment.CategoryDescription("필러"); got == "" || got == "필러 시술로 피부와 외모를 개선할 수 있어요." {
		t.Errorf("expected fixed description for 필러, got %q", got)
	}
	if got, want := treatment.CategoryDescription("물광"), "물광 시술로 피부와 외모를 개선할 수 있어요."; got != want {
		t.Errorf("CategoryDescription fallback = %q, want %q", got, want)
	}
}

// TestIsMainCategory tests the fixed category list.
func TestIsMainCategory(t *testing.T) {
	if len(treatment.MainCategories) != 10 {
		t.Fatalf("len(MainCategories) = %d, want 10", len(treatment.MainCategories))
	}
	if !treatment.IsMainCategory("안면윤곽/양악") {
		t.Error("expected 안면윤곽/양악 to be a main category")
	}
	if treatment.IsMainCategory("기타") {
		t.Error("기타 should not be a main category")
	}
}

func ids(list []treatment.Treatment) []int64 {
	out := make([]int64, len(list))
	for i, t := range list {
		out[i] = t.ID
	}
	return out
}
