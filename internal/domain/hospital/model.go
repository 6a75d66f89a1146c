package hospital

import (
	"encoding/json"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Hospital is a clinic mirrored from the catalog table.
type Hospital struct {
	ID           int64
	Name         string
	Address      string
	Intro        string
	Departments  []string
	Rating       float64
	ReviewCount  int
	Phone        string
	Email        string
	Website      string
	OpeningHours string
	ImageURL     string
}

// ParseDepartments normalises the departments column, which the catalog stores
// inconsistently: a JSON array, a JSON-encoded string, comma separated text, or a single value.
// POST: entries are trimmed and non-empty; order is preserved
func ParseDepartments(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var arr []string
	if err := json.Unmarshal([]byte(raw), &arr); err == nil {
		return clean(arr)
	}
	var s string
	if err := json.Unmarshal([]byte(raw), &s); err == nil {
		return clean(strings.Split(s, ","))
	}
	if strings.Contains(raw, ",") {
		return clean(strings.Split(raw, ","))
	}
	return []string{raw}
}

// MatchesSearch reports whether term occurs in the name, address or introduction.
func (h *Hospital) MatchesSearch(term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	folder := cases.Fold()
	needle := folder.String(term)
	for _, field := range []string{h.Name, h.Address, h.Intro} {
		if strings.Contains(folder.String(field), needle) {
			return true
		}
	}
	return false
}

// HasDepartment reports whether the hospital lists dept. An empty dept matches all.
func (h *Hospital) HasDepartment(dept string) bool {
	if dept == "" {
		return true
	}
	for _, d := range h.Departments {
		if d == dept {
			return true
		}
	}
	return false
}

// DisplayName falls back to a placeholder when the catalog row has no name.
func (h *Hospital) DisplayName() string {
	if h.Name == "" {
		return "병원명 없음"
	}
	return h.Name
}

// CollectDepartments returns the sorted distinct departments across list.
func CollectDepartments(list []Hospital) []string {
	set := make(map[string]struct{})
	for _, h := range list {
		for _, d := range h.Departments {
			set[d] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

func clean(parts []string) []string {
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
