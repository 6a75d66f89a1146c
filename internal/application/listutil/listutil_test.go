package listutil

import (
	"net/url"
	"testing"
)

// TestParseWindowParams verifies the "more" counter is parsed and clamped.
func TestParseWindowParams(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 0},
		{"3", 3},
		{"-2", 0},
		{"abc", 0},
		{"100000", MaxLoads},
	}
	for _, tt := range tests {
		got := ParseWindowParams(url.Values{"more": {tt.raw}})
		if got.Loads != tt.want {
			t.Errorf("more=%q: Loads = %d, want %d", tt.raw, got.Loads, tt.want)
		}
	}
}

// TestNewWindow verifies Shown = min(N, 12*(K+1)) and HasMore iff rows remain.
func TestNewWindow(t *testing.T) {
	tests := []struct {
		loads, total int
		wantShown    int
		wantMore     bool
	}{
		{0, 0, 0, false},
		{0, 5, 5, false},
		{0, 12, 12, false},
		{0, 13, 12, true},
		{1, 13, 13, false},
		{1, 30, 24, true},
		{2, 30, 30, false},
		{5, 30, 30, false},
	}
	for _, tt := range tests {
		w := NewWindow(tt.loads, tt.total)
		if w.Shown != tt.wantShown || w.HasMore() != tt.wantMore {
			t.Errorf("NewWindow(%d, %d) = shown %d more %v, want %d %v",
				tt.loads, tt.total, w.Shown, w.HasMore(), tt.wantShown, tt.wantMore)
		}
		if w.Remaining() != tt.total-tt.wantShown {
			t.Errorf("Remaining = %d", w.Remaining())
		}
	}
}

// TestNewSizedWindow verifies a custom first page and step.
func TestNewSizedWindow(t *testing.T) {
	tests := []struct {
		loads, total int
		wantShown    int
	}{
		{0, 8, 5},
		{1, 8, 8},
		{1, 20, 10},
		{-1, 3, 3},
	}
	for _, tt := range tests {
		w := NewSizedWindow(tt.loads, tt.total, 5, 5)
		if w.Shown != tt.wantShown {
			t.Errorf("NewSizedWindow(%d, %d, 5, 5).Shown = %d, want %d", tt.loads, tt.total, w.Shown, tt.wantShown)
		}
	}
}

// TestApply verifies the visible prefix.
func TestApply(t *testing.T) {
	list := make([]int, 30)
	for i := range list {
		list[i] = i
	}
	got := Apply(NewWindow(1, len(list)), list)
	if len(got) != 24 || got[23] != 23 {
		t.Errorf("Apply len = %d", len(got))
	}
	short := []int{1, 2}
	if got := Apply(NewWindow(0, 2), short); len(got) != 2 {
		t.Errorf("Apply short len = %d", len(got))
	}
}

// TestParseSort verifies unknown sorts fall back.
func TestParseSort(t *testing.T) {
	allowed := []string{"default", "rating"}
	if got := ParseSort(url.Values{"sort": {"rating"}}, allowed, "default"); got != "rating" {
		t.Errorf("got %q", got)
	}
	if got := ParseSort(url.Values{"sort": {"drop table"}}, allowed, "default"); got != "default" {
		t.Errorf("got %q", got)
	}
}

// TestParseFilterParams_OnlyKnownKeys verifies unknown and blank keys are dropped.
func TestParseFilterParams_OnlyKnownKeys(t *testing.T) {
	q := url.Values{"q": {"  쌍꺼풀 "}, "category": {"눈성형"}, "mid": {" "}, "evil": {"x"}}
	fp := ParseFilterParams(q, []string{"category", "mid"})
	if fp.Search != "쌍꺼풀" {
		t.Errorf("Search = %q", fp.Search)
	}
	if len(fp.Filters) != 1 || fp.Filters["category"] != "눈성형" {
		t.Errorf("Filters = %v", fp.Filters)
	}
}

// TestListParams_Query verifies the load-more link keeps filters.
func TestListParams_Query(t *testing.T) {
	p := ParseListParams(url.Values{"q": {"코"}, "category": {"코성형"}, "sort": {"rating"}},
		[]string{"default", "rating"}, "default", []string{"category"})
	got, _ := url.ParseQuery(p.Query(2))
	if got.Get("q") != "코" || got.Get("category") != "코성형" || got.Get("sort") != "rating" || got.Get("more") != "2" {
		t.Errorf("Query = %v", got)
	}
}
