package search

import (
	"sort"
	"strings"

	"github.com/mergington/activities/internal/catalog"
)

// SortKey selects an explicit result ordering. The two historical filter
// vocabularies are unified here: "alphabetical" orders the same way as "name".
type SortKey string

const (
	SortNone         SortKey = ""
	SortName         SortKey = "name"
	SortParticipants SortKey = "participants"
	SortAvailability SortKey = "availability"
	SortDate         SortKey = "date"
	SortAlphabetical SortKey = "alphabetical"
	SortPopularity   SortKey = "popularity"
)

// SortKeys lists every recognized key, in the order surfaced to clients.
func SortKeys() []string {
	return []string{
		string(SortName),
		string(SortParticipants),
		string(SortAvailability),
		string(SortDate),
		string(SortAlphabetical),
		string(SortPopularity),
	}
}

// ParseSortKey validates a client-supplied sort key. Unrecognized values
// return SortNone and false.
func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(s) {
	case SortName, SortParticipants, SortAvailability, SortDate, SortAlphabetical, SortPopularity:
		return SortKey(s), true
	case SortNone:
		return SortNone, true
	}
	return SortNone, false
}

// sortActivities orders items in place by the given key. All sorts are
// stable, so ties keep their prior relative order.
func sortActivities(items []catalog.Activity, key SortKey) {
	switch key {
	case SortName, SortAlphabetical:
		sort.SliceStable(items, func(i, j int) bool {
			return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
		})
	case SortParticipants:
		sort.SliceStable(items, func(i, j int) bool {
			return len(items[i].Participants) > len(items[j].Participants)
		})
	case SortAvailability:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].SpotsLeft() > items[j].SpotsLeft()
		})
	case SortDate:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		})
	case SortPopularity:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Popularity > items[j].Popularity
		})
	}
}
