package record

import (
	"sort"
	"strconv"
	"sync"
	"time"
)

// Recent returns up to n records ordered most recent first by Moment.
// Records without a usable moment sort last. The input is not modified.
func Recent(records []Record, n int, loc *time.Location) []Record {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	SortNewestFirst(sorted, loc)
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// SortNewestFirst sorts records in place, most recent first.
func SortNewestFirst(records []Record, loc *time.Location) {
	sort.SliceStable(records, func(i, j int) bool {
		ti, oki := records[i].Moment(loc)
		tj, okj := records[j].Moment(loc)
		if oki != okj {
			return oki
		}
		return ti.After(tj)
	})
}

// IDSource issues record ids from the creation time in milliseconds.
// Two ids issued within the same millisecond are kept distinct by bumping.
type IDSource struct {
	mu   sync.Mutex
	last int64
}

// Next returns a new id for a record created at now
func (s *IDSource) Next(now time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms := now.UnixMilli()
	if ms <= s.last {
		ms = s.last + 1
	}
	s.last = ms
	return strconv.FormatInt(ms, 10)
}
