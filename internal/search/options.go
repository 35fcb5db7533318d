package search

import (
	"sort"

	"github.com/mergington/activities/internal/catalog"
)

// Options is the discoverable filter vocabulary: every category and schedule
// value seen across indexed activities, plus the fixed sort-key list.
type Options struct {
	Categories  []string `json:"categories"`
	Schedules   []string `json:"schedules"`
	SortOptions []string `json:"sort_options"`
}

// optionSet accumulates distinct category and schedule values. It only ever
// grows; there is no removal path.
type optionSet struct {
	categories map[string]struct{}
	schedules  map[string]struct{}
}

func newOptionSet() *optionSet {
	return &optionSet{
		categories: make(map[string]struct{}),
		schedules:  make(map[string]struct{}),
	}
}

func (o *optionSet) register(a catalog.Activity) {
	if a.Category != "" {
		o.categories[a.Category] = struct{}{}
	}
	if a.Schedule != "" {
		o.schedules[a.Schedule] = struct{}{}
	}
}

func (o *optionSet) snapshot() Options {
	return Options{
		Categories:  sortedKeys(o.categories),
		Schedules:   sortedKeys(o.schedules),
		SortOptions: SortKeys(),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
