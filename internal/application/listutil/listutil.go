package listutil

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Load-more defaults: the first render shows InitialCount rows and each "더보기" adds Step.
const (
	InitialCount = 12
	Step         = 12
	// MaxLoads bounds the "more" parameter so a crafted URL cannot request the whole catalog.
	MaxLoads = 100
)

// WindowParams carries the load-more state parsed from a request.
type WindowParams struct {
	Loads int // number of "load more" clicks so far
}

// FilterParams carries search and filter parameters.
type FilterParams struct {
	Search  string            // free-text search query, trimmed
	Filters map[string]string // exact-match filters (e.g. category=눈성형)
}

// ListParams combines all list view parameters.
type ListParams struct {
	WindowParams
	FilterParams
	Sort string
}

// ParseWindowParams extracts the "more" counter from URL query values.
// PRE: none
// POST: 0 <= Loads <= MaxLoads
func ParseWindowParams(q url.Values) WindowParams {
	loads, _ := strconv.Atoi(q.Get("more"))
	return WindowParams{Loads: min(max(loads, 0), MaxLoads)}
}

// ParseSort returns q["sort"] when allowed, else fallback.
func ParseSort(q url.Values, allowed []string, fallback string) string {
	sort := q.Get("sort")
	if slices.Contains(allowed, sort) {
		return sort
	}
	return fallback
}

// ParseFilterParams extracts search and named filters from URL query values.
// PRE: filterKeys lists the allowed filter parameter names
// POST: returns FilterParams with only recognised, non-blank keys
func ParseFilterParams(q url.Values, filterKeys []string) FilterParams {
	fp := FilterParams{
		Search:  strings.TrimSpace(q.Get("q")),
		Filters: make(map[string]string),
	}
	for _, key := range filterKeys {
		if v := strings.TrimSpace(q.Get(key)); v != "" {
			fp.Filters[key] = v
		}
	}
	return fp
}

// ParseListParams parses all list parameters from URL query values.
func ParseListParams(q url.Values, allowedSorts []string, defaultSort string, filterKeys []string) ListParams {
	return ListParams{
		WindowParams: ParseWindowParams(q),
		FilterParams: ParseFilterParams(q, filterKeys),
		Sort:         ParseSort(q, allowedSorts, defaultSort),
	}
}

// Window describes the visible prefix of a filtered list.
type Window struct {
	Loads int // load-more clicks applied
	Shown int // rows visible
	Total int // rows matching the filters
}

// NewWindow computes the window after loads clicks over total rows.
// PRE: total >= 0
// POST: Shown = min(total, InitialCount + Step*loads)
func NewWindow(loads, total int) Window {
	return NewSizedWindow(loads, total, InitialCount, Step)
}

// NewSizedWindow is NewWindow with a caller-chosen first page and step.
// PRE: initial > 0, step > 0
// POST: Shown = min(total, initial + step*loads)
func NewSizedWindow(loads, total, initial, step int) Window {
	loads = max(loads, 0)
	return Window{Loads: loads, Shown: min(total, initial+step*loads), Total: total}
}

// HasMore reports whether rows remain hidden.
func (w Window) HasMore() bool {
	return w.Total > w.Shown
}

// Remaining is the number of hidden rows.
func (w Window) Remaining() int {
	return w.Total - w.Shown
}

// NextLoads is the "more" value for the load-more link.
func (w Window) NextLoads() int {
	return w.Loads + 1
}

// Apply returns the visible prefix of list.
func Apply[T any](w Window, list []T) []T {
	if w.Shown >= len(list) {
		return list
	}
	return list[:w.Shown]
}

// Query rebuilds a list URL query for the next window, keeping filters and sort.
func (p ListParams) Query(loads int) string {
	v := url.Values{}
	if p.Search != "" {
		v.Set("q", p.Search)
	}
	for k, f := range p.Filters {
		v.Set(k, f)
	}
	if p.Sort != "" {
		v.Set("sort", p.Sort)
	}
	if loads > 0 {
		v.Set("more", strconv.Itoa(loads))
	}
	return v.Encode()
}
