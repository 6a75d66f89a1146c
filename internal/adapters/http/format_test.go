package web

import (
	"net/http/httptest"
	"testing"
	"time"

	"beautrip/internal/adapters/http/middleware"
)

func TestLocalePrice(t *testing.T) {
	tests := []struct {
		code string
		krw  int64
		want string
	}{
		{"KR", 1290000, "1,290,000원"},
		{"EN", 1290000, "₩1,290,000"},
		{"KR", 0, "가격 문의"},
		{"XX", 500, "500원"},
	}
	for _, tt := range tests {
		if got := NewLocale(tt.code).Price(tt.krw); got != tt.want {
			t.Errorf("NewLocale(%q).Price(%d) = %q, want %q", tt.code, tt.krw, got, tt.want)
		}
	}
}

func TestNegotiateLocale(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	if got := NegotiateLocale(r).Code; got != "KR" {
		t.Errorf("no preference = %s, want KR", got)
	}

	r.Header.Set("Accept-Language", "ja-JP,ja;q=0.9,en;q=0.5")
	if got := NegotiateLocale(r); got.Code != "JP" || got.HTMLLang() != "ja" {
		t.Errorf("Accept-Language = %s/%s, want JP/ja", got.Code, got.HTMLLang())
	}

	r = httptest.NewRequest("GET", "/?lang=cn", nil)
	r.Header.Set("Accept-Language", "ja")
	if got := NegotiateLocale(r).Code; got != "CN" {
		t.Errorf("?lang override = %s, want CN", got)
	}

	r = r.WithContext(middleware.ContextWithSession(r.Context(), middleware.Session{AccountID: "a", Language: "EN"}))
	if got := NegotiateLocale(r).Code; got != "EN" {
		t.Errorf("session language = %s, want EN", got)
	}
}

func TestCompactCount(t *testing.T) {
	tests := map[int]string{
		0:       "0",
		9999:    "9,999",
		10000:   "1만",
		12345:   "1.2만",
		1500000: "150만",
	}
	for n, want := range tests {
		if got := compactCount(n); got != want {
			t.Errorf("compactCount(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestKoreanRelTime(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "방금"},
		{5 * time.Minute, "5분 전"},
		{3 * time.Hour, "3시간 전"},
		{2 * 24 * time.Hour, "2일 전"},
	}
	for _, tt := range tests {
		if got := koreanRelTime(now.Add(-tt.ago), now); got != tt.want {
			t.Errorf("koreanRelTime(-%s) = %q, want %q", tt.ago, got, tt.want)
		}
	}
}

func TestStarsAndDate(t *testing.T) {
	if got := stars(4); got != "★★★★☆" {
		t.Errorf("stars(4) = %q", got)
	}
	if got := stars(9); got != "★★★★★" {
		t.Errorf("stars(9) = %q", got)
	}
	if got := formatDate(time.Time{}); got != "" {
		t.Errorf("formatDate(zero) = %q", got)
	}
	if got := formatDate(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)); got != "2026.03.01" {
		t.Errorf("formatDate = %q", got)
	}
}
