// Seed populates a catalog store with the stock Mergington High activity set.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Seed writes the default activity catalog into the store. IDs are generated
// fresh on every seed; callers that need stable IDs should look activities up
// by name afterwards.
func Seed(ctx context.Context, store Store) error {
	base := time.Date(2025, time.August, 18, 9, 0, 0, 0, time.UTC)

	seedSet := []Activity{
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			Category:        "Academic",
			Tags:            []string{"strategy", "competition"},
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
			Popularity:      42,
		},
		{
			Name:            "Programming Class",
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			Category:        "Academic",
			Tags:            []string{"coding", "technology"},
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
			Popularity:      55,
		},
		{
			Name:            "Gym Class",
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			Category:        "Sports",
			Tags:            []string{"fitness"},
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
			Popularity:      30,
		},
		{
			Name:            "Soccer Team",
			Description:     "Join the school soccer team and compete in matches",
			Schedule:        "Tuesdays and Thursdays, 4:00 PM - 5:30 PM",
			Category:        "Sports",
			Tags:            []string{"team", "competition"},
			MaxParticipants: 22,
			Participants:    []string{"liam@mergington.edu", "noah@mergington.edu"},
			Popularity:      61,
		},
		{
			Name:            "Basketball Team",
			Description:     "Practice and play basketball with the school team",
			Schedule:        "Wednesdays and Fridays, 3:30 PM - 5:00 PM",
			Category:        "Sports",
			Tags:            []string{"team"},
			MaxParticipants: 15,
			Participants:    []string{"ava@mergington.edu", "mia@mergington.edu"},
			Popularity:      48,
		},
		{
			Name:            "Art Club",
			Description:     "Explore your creativity through painting and drawing",
			Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
			Category:        "Arts",
			Tags:            []string{"painting", "drawing"},
			MaxParticipants: 15,
			Participants:    []string{"amelia@mergington.edu", "harper@mergington.edu"},
			Popularity:      25,
		},
		{
			Name:            "Drama Club",
			Description:     "Act, direct, and produce plays and performances",
			Schedule:        "Mondays and Wednesdays, 4:00 PM - 5:30 PM",
			Category:        "Arts",
			Tags:            []string{"theater", "performance"},
			MaxParticipants: 20,
			Participants:    []string{"ella@mergington.edu", "scarlett@mergington.edu"},
			Popularity:      37,
		},
		{
			Name:            "Math Club",
			Description:     "Solve challenging problems and participate in math competitions",
			Schedule:        "Tuesdays, 3:30 PM - 4:30 PM",
			Category:        "Academic",
			Tags:            []string{"competition"},
			MaxParticipants: 10,
			Participants:    []string{"james@mergington.edu", "benjamin@mergington.edu"},
			Popularity:      19,
		},
		{
			Name:            "Debate Team",
			Description:     "Develop public speaking and argumentation skills",
			Schedule:        "Fridays, 4:00 PM - 5:30 PM",
			Category:        "Academic",
			Tags:            []string{"speaking", "competition"},
			MaxParticipants: 12,
			Participants:    []string{"charlotte@mergington.edu", "henry@mergington.edu"},
			Popularity:      28,
		},
		{
			Name: "GitHub Skills",
			Description: "Learn practical coding and collaboration skills through GitHub. " +
				"Part of our GitHub Certifications program to help with college applications",
			Schedule:        "Mondays and Wednesdays, 3:30 PM - 5:00 PM",
			Category:        "Academic",
			Tags:            []string{"coding", "collaboration"},
			MaxParticipants: 25,
			Participants:    []string{},
			Popularity:      50,
		},
	}

	for i, a := range seedSet {
		a.ID = uuid.NewString()
		a.CreatedAt = base.AddDate(0, 0, i)
		if err := store.Put(ctx, a); err != nil {
			return fmt.Errorf("seeding %q: %w", a.Name, err)
		}
	}
	return nil
}
