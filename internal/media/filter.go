package media

import (
	"strings"
	"time"
)

// FilterCriteria holds the optional item predicates.
// Zero values mean unconstrained.
type FilterCriteria struct {
	// Creator matches case-insensitively anywhere in the creator name
	Creator string
	// MinDuration keeps items at least this long
	MinDuration *time.Duration
	// MaxDuration keeps items at most this long
	MaxDuration *time.Duration
	// AfterDate is an RFC 3339 timestamp; unparseable values are ignored
	AfterDate string
}

// IsEmpty reports whether no predicate is active
func (f FilterCriteria) IsEmpty() bool {
	_, hasDate := f.After()
	return f.Creator == "" && f.MinDuration == nil && f.MaxDuration == nil && !hasDate
}

// After parses AfterDate. The bool is false when the date is empty or invalid.
func (f FilterCriteria) After() (time.Time, bool) {
	if f.AfterDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(f.AfterDate))
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// Seconds returns a pointer to a duration of n seconds, for building criteria
func Seconds(n uint64) *time.Duration {
	d := time.Duration(n) * time.Second
	return &d
}
