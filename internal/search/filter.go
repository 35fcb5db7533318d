package search

import (
	"sort"
	"strconv"
	"strings"

	"github.com/mergington/activities/internal/catalog"
)

// Filters holds the structured search criteria. Zero values (nil pointers,
// empty strings) impose no constraint.
type Filters struct {
	// Category matches case-insensitively against the activity category.
	Category string `json:"category,omitempty"`
	// Schedule matches the schedule field exactly.
	Schedule string `json:"schedule,omitempty"`
	// Day is a case-insensitive substring match against the schedule, for
	// day-of-week style filtering.
	Day string `json:"day,omitempty"`
	// Availability true keeps activities with open spots; false keeps full ones.
	Availability *bool `json:"availability,omitempty"`
	// MinPopularity keeps activities whose popularity is at least this value.
	MinPopularity *int `json:"min_popularity,omitempty"`
}

// Active reports whether any criterion is set.
func (f Filters) Active() bool {
	return f.Category != "" || f.Schedule != "" || f.Day != "" ||
		f.Availability != nil || f.MinPopularity != nil
}

// Matches reports whether the activity satisfies every active criterion.
func (f Filters) Matches(a catalog.Activity) bool {
	if f.Category != "" && !strings.EqualFold(a.Category, f.Category) {
		return false
	}
	if f.Schedule != "" && a.Schedule != f.Schedule {
		return false
	}
	if f.Day != "" && !strings.Contains(strings.ToLower(a.Schedule), strings.ToLower(f.Day)) {
		return false
	}
	if f.Availability != nil && a.Available() != *f.Availability {
		return false
	}
	if f.MinPopularity != nil && a.Popularity < *f.MinPopularity {
		return false
	}
	return true
}

// Sanitize builds Filters from loosely-typed input, dropping anything it
// cannot use. Validation here is best-effort: a wrong-typed or unrecognized
// value is omitted from the effective filter set and reported in the second
// return value, never surfaced as an error.
func Sanitize(raw map[string]any) (Filters, []string) {
	var f Filters
	var dropped []string

	for key, val := range raw {
		switch key {
		case "category":
			if s, ok := val.(string); ok && s != "" {
				f.Category = s
				continue
			}
		case "schedule":
			if s, ok := val.(string); ok && s != "" {
				f.Schedule = s
				continue
			}
		case "day":
			if s, ok := val.(string); ok && s != "" {
				f.Day = s
				continue
			}
		case "availability":
			if b, ok := val.(bool); ok {
				f.Availability = &b
				continue
			}
		case "min_popularity":
			if n, ok := toInt(val); ok && n >= 0 {
				f.MinPopularity = &n
				continue
			}
		}
		dropped = append(dropped, key)
	}

	sort.Strings(dropped)
	return f, dropped
}

// toInt accepts the numeric shapes min_popularity can arrive in: native ints,
// JSON numbers (float64), and numeric strings from query parameters.
func toInt(val any) (int, bool) {
	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
