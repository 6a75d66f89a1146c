// Package perf keeps a bounded in-memory history of request, query and catalog-load
// timings for the admin performance page.
package perf

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultRingSize is the default capacity of the ring buffer.
const DefaultRingSize = 10000

// Kind distinguishes what was timed.
type Kind uint8

const (
	KindRequest Kind = iota
	KindQuery
	KindCatalogLoad
)

// String names the kind for display.
func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindQuery:
		return "query"
	case KindCatalogLoad:
		return "catalog"
	}
	return "unknown"
}

// Entry is one timing sample.
type Entry struct {
	Kind       Kind
	Name       string // route pattern ("GET /treatments/{id}"), query op or catalog source
	StatusCode int    // requests only
	Failed     bool   // queries and catalog loads that returned an error
	DurationMs float64
	Timestamp  time.Time
}

// Collector is a fixed-size ring buffer of entries. When full the oldest entry is
// overwritten; aggregation happens only in Snapshot.
type Collector struct {
	mu      sync.Mutex
	entries []Entry
	pos     int
	total   atomic.Int64
}

// NewCollector creates a collector holding at most size entries.
// POST: a non-positive size falls back to DefaultRingSize
func NewCollector(size int) *Collector {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Collector{entries: make([]Entry, size)}
}

// Record stores e, overwriting the oldest entry when full. Safe on a nil collector.
func (c *Collector) Record(e Entry) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries[c.pos] = e
	c.pos = (c.pos + 1) % len(c.entries)
	c.mu.Unlock()
	c.total.Add(1)
}

// TotalRecorded returns how many entries were ever recorded.
func (c *Collector) TotalRecorded() int64 {
	if c == nil {
		return 0
	}
	return c.total.Load()
}

// Stat aggregates samples sharing a kind and name.
type Stat struct {
	Kind   Kind
	Name   string
	Count  int
	Errors int // 5xx responses or failed operations
	AvgMs  float64
	MaxMs  float64
	SumMs  float64
}

// ErrorRate is Errors/Count.
func (s Stat) ErrorRate() float64 {
	if s.Count == 0 {
		return 0
	}
	return float64(s.Errors) / float64(s.Count)
}

// Snapshot is the aggregated view rendered on the admin page.
type Snapshot struct {
	TotalRecorded  int64
	Requests       int
	RequestP50Ms   float64
	RequestP95Ms   float64
	RequestP99Ms   float64
	SlowestRoutes  []Stat
	SlowestQueries []Stat
	CatalogLoads   []Stat
}

// Snapshot aggregates entries at or after since. Each list keeps the topN slowest by average.
func (c *Collector) Snapshot(since time.Time, topN int) Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.Lock()
	buf := make([]Entry, len(c.entries))
	copy(buf, c.entries)
	c.mu.Unlock()

	type key struct {
		kind Kind
		name string
	}
	stats := make(map[key]*Stat)
	var requestMs []float64

	for _, e := range buf {
		if e.Timestamp.IsZero() || e.Timestamp.Before(since) {
			continue
		}
		k := key{e.Kind, e.Name}
		s, ok := stats[k]
		if !ok {
			s = &Stat{Kind: e.Kind, Name: e.Name}
			stats[k] = s
		}
		s.Count++
		s.SumMs += e.DurationMs
		s.MaxMs = math.Max(s.MaxMs, e.DurationMs)
		if e.Failed || e.StatusCode >= 500 {
			s.Errors++
		}
		if e.Kind == KindRequest {
			requestMs = append(requestMs, e.DurationMs)
		}
	}

	byKind := make(map[Kind][]Stat)
	for _, s := range stats {
		s.AvgMs = s.SumMs / float64(s.Count)
		byKind[s.Kind] = append(byKind[s.Kind], *s)
	}

	snap := Snapshot{
		TotalRecorded:  c.TotalRecorded(),
		Requests:       len(requestMs),
		SlowestRoutes:  slowest(byKind[KindRequest], topN),
		SlowestQueries: slowest(byKind[KindQuery], topN),
		CatalogLoads:   slowest(byKind[KindCatalogLoad], topN),
	}
	if len(requestMs) > 0 {
		sort.Float64s(requestMs)
		snap.RequestP50Ms = percentile(requestMs, 50)
		snap.RequestP95Ms = percentile(requestMs, 95)
		snap.RequestP99Ms = percentile(requestMs, 99)
	}
	return snap
}

// percentile interpolates the p-th percentile of a sorted slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (p / 100) * float64(len(sorted)-1)
	lo, hi := int(math.Floor(idx)), int(math.Ceil(idx))
	if lo == hi {
		return sorted[lo]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func slowest(list []Stat, n int) []Stat {
	sort.Slice(list, func(i, j int) bool {
		if list[i].AvgMs != list[j].AvgMs {
			return list[i].AvgMs > list[j].AvgMs
		}
		return list[i].Name < list[j].Name
	})
	if n >= 0 && len(list) > n {
		list = list[:n]
	}
	return list
}
