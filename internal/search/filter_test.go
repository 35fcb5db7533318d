package search

import (
	"reflect"
	"testing"

	"github.com/mergington/activities/internal/catalog"
)

func boolPtr(b bool) *bool { return &b }
func intPtr(n int) *int    { return &n }

func filterActivity() catalog.Activity {
	return catalog.Activity{
		ID:              "a1",
		Name:            "Chess Club",
		Category:        "Academic",
		Schedule:        "Fridays, 3:30 PM - 5:00 PM",
		MaxParticipants: 12,
		Participants:    []string{"michael@mergington.edu"},
		Popularity:      42,
	}
}

func TestFilters_Matches(t *testing.T) {
	a := filterActivity()

	tests := []struct {
		name string
		f    Filters
		want bool
	}{
		{"no criteria", Filters{}, true},
		{"category exact", Filters{Category: "Academic"}, true},
		{"category case-insensitive", Filters{Category: "academic"}, true},
		{"category mismatch", Filters{Category: "Sports"}, false},
		{"schedule exact", Filters{Schedule: "Fridays, 3:30 PM - 5:00 PM"}, true},
		{"schedule partial is not exact", Filters{Schedule: "Fridays"}, false},
		{"day substring", Filters{Day: "friday"}, true},
		{"day mismatch", Filters{Day: "Monday"}, false},
		{"available true", Filters{Availability: boolPtr(true)}, true},
		{"available false", Filters{Availability: boolPtr(false)}, false},
		{"min popularity met", Filters{MinPopularity: intPtr(40)}, true},
		{"min popularity unmet", Filters{MinPopularity: intPtr(50)}, false},
		{"all criteria AND", Filters{Category: "Academic", Day: "Fridays", MinPopularity: intPtr(40)}, true},
		{"one failing criterion fails all", Filters{Category: "Academic", Day: "Monday"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.Matches(a); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilters_Matches_AvailabilityFull(t *testing.T) {
	a := filterActivity()
	a.MaxParticipants = 1

	if (Filters{Availability: boolPtr(true)}).Matches(a) {
		t.Errorf("full activity matched availability=true")
	}
	if !(Filters{Availability: boolPtr(false)}).Matches(a) {
		t.Errorf("full activity should match availability=false")
	}
}

func TestSanitize_ValidValues(t *testing.T) {
	f, dropped := Sanitize(map[string]any{
		"category":       "Sports",
		"schedule":       "Fridays, 3:30 PM - 5:00 PM",
		"day":            "Monday",
		"availability":   true,
		"min_popularity": 10,
	})
	if len(dropped) != 0 {
		t.Fatalf("dropped = %v, want none", dropped)
	}
	if f.Category != "Sports" || f.Schedule != "Fridays, 3:30 PM - 5:00 PM" || f.Day != "Monday" {
		t.Errorf("string filters not carried: %+v", f)
	}
	if f.Availability == nil || !*f.Availability {
		t.Errorf("availability not carried")
	}
	if f.MinPopularity == nil || *f.MinPopularity != 10 {
		t.Errorf("min_popularity not carried")
	}
}

func TestSanitize_DropsInvalidValues(t *testing.T) {
	f, dropped := Sanitize(map[string]any{
		"category":       42,
		"availability":   "maybe",
		"min_popularity": "lots",
		"unknown_key":    "x",
	})
	if f.Active() {
		t.Errorf("sanitized filters should be empty, got %+v", f)
	}
	want := []string{"availability", "category", "min_popularity", "unknown_key"}
	if !reflect.DeepEqual(dropped, want) {
		t.Errorf("dropped = %v, want %v", dropped, want)
	}
}

func TestSanitize_NumericShapes(t *testing.T) {
	for name, val := range map[string]any{
		"int":            7,
		"float64":        7.0,
		"numeric string": "7",
	} {
		f, dropped := Sanitize(map[string]any{"min_popularity": val})
		if len(dropped) != 0 || f.MinPopularity == nil || *f.MinPopularity != 7 {
			t.Errorf("%s: min_popularity=%v dropped=%v", name, f.MinPopularity, dropped)
		}
	}

	f, dropped := Sanitize(map[string]any{"min_popularity": -3})
	if f.MinPopularity != nil || len(dropped) != 1 {
		t.Errorf("negative popularity should be dropped, got %+v %v", f, dropped)
	}
}
