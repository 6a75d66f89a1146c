package web

import (
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"beautrip/internal/adapters/http/middleware"
	domainAccount "beautrip/internal/domain/account"
)

// supportedTags is ordered to line up with supportedLanguages.
var supportedTags = []language.Tag{
	language.Korean,
	language.English,
	language.Japanese,
	language.Chinese,
}

var supportedLanguages = []string{
	domainAccount.LanguageKR,
	domainAccount.LanguageEN,
	domainAccount.LanguageJP,
	domainAccount.LanguageCN,
}

var languageMatcher = language.NewMatcher(supportedTags)

// Locale is the resolved display language for one request.
type Locale struct {
	Code    string // account language code: KR, EN, JP, CN
	Tag     language.Tag
	printer *message.Printer
}

// NewLocale resolves an account language code, defaulting to Korean.
func NewLocale(code string) Locale {
	for i, c := range supportedLanguages {
		if c == code {
			return Locale{Code: c, Tag: supportedTags[i], printer: message.NewPrinter(supportedTags[i])}
		}
	}
	return Locale{Code: domainAccount.LanguageKR, Tag: language.Korean, printer: message.NewPrinter(language.Korean)}
}

// NegotiateLocale picks the session language, then the ?lang= override,
// then the best Accept-Language match.
func NegotiateLocale(r *http.Request) Locale {
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok && sess.Language != "" {
		return NewLocale(sess.Language)
	}
	if code := strings.ToUpper(r.URL.Query().Get("lang")); code != "" {
		return NewLocale(code)
	}
	_, idx := language.MatchStrings(languageMatcher, r.Header.Get("Accept-Language"))
	return NewLocale(supportedLanguages[idx])
}

// HTMLLang is the BCP 47 tag for the <html lang> attribute.
func (l Locale) HTMLLang() string {
	base, _ := l.Tag.Base()
	return base.String()
}

// Price formats a KRW amount with locale grouping. Zero renders as a prompt
// to ask the clinic.
func (l Locale) Price(krw int64) string {
	if krw <= 0 {
		return "가격 문의"
	}
	if l.Code == domainAccount.LanguageKR {
		return l.printer.Sprintf("%d원", krw)
	}
	return l.printer.Sprintf("₩%d", krw)
}

func (s *Server) locale(r *http.Request) Locale {
	return NegotiateLocale(r)
}

// koreanMagnitudes drives humanize.CustomRelTime for review timestamps.
var koreanMagnitudes = []humanize.RelTimeMagnitude{
	{D: time.Minute, Format: "방금", DivBy: time.Second},
	{D: time.Hour, Format: "%d분 %s", DivBy: time.Minute},
	{D: humanize.Day, Format: "%d시간 %s", DivBy: time.Hour},
	{D: humanize.Week, Format: "%d일 %s", DivBy: humanize.Day},
	{D: humanize.Month, Format: "%d주 %s", DivBy: humanize.Week},
	{D: humanize.Year, Format: "%d개월 %s", DivBy: humanize.Month},
	{D: math.MaxInt64, Format: "%d년 %s", DivBy: humanize.Year},
}

// relativeTime renders "3일 전" style labels against the server clock.
func (s *Server) relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return koreanRelTime(t, s.now())
}

func koreanRelTime(then, now time.Time) string {
	return humanize.CustomRelTime(then, now, "전", "후", koreanMagnitudes)
}

// compactCount renders review and popularity counts: exact with separators
// below ten thousand, then in 만 units.
func compactCount(n int) string {
	if n < 10000 {
		return humanize.Comma(int64(n))
	}
	man := float64(n) / 10000
	if man >= 100 {
		return humanize.Comma(int64(man)) + "만"
	}
	return strings.TrimSuffix(fmt.Sprintf("%.1f", man), ".0") + "만"
}

// formatDate renders a date as YYYY.MM.DD, or "" for the zero time.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006.01.02")
}

// stars renders a 1-5 review rating as filled and empty stars.
func stars(rating int) string {
	full := min(max(rating, 0), 5)
	return strings.Repeat("★", full) + strings.Repeat("☆", 5-full)
}
