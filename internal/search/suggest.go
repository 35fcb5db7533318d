package search

import (
	"context"
	"fmt"
	"strings"
)

const (
	maxSuggestions = 10
	maxCompletions = 5
)

// Suggestion is one autocomplete candidate. Type is "activity" for a
// matching activity name and "keyword" for a description word.
type Suggestion struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// Suggest returns catalog-derived autocomplete candidates for a non-empty
// partial query: activity names containing it (catalog order) followed by
// description words longer than three characters containing it, deduplicated,
// capped at ten entries.
func (e *Engine) Suggest(ctx context.Context, partial string) ([]Suggestion, error) {
	suggestions := []Suggestion{}
	if partial == "" {
		return suggestions, nil
	}
	q := strings.ToLower(partial)

	activities, err := e.cat.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing catalog: %w", err)
	}

	for _, a := range activities {
		if strings.Contains(strings.ToLower(a.Name), q) {
			suggestions = append(suggestions, Suggestion{Text: a.Name, Type: "activity"})
		}
	}

	seen := make(map[string]struct{})
	for _, a := range activities {
		for _, word := range strings.Fields(strings.ToLower(a.Description)) {
			if len(word) <= 3 || !strings.Contains(word, q) {
				continue
			}
			if _, ok := seen[word]; ok {
				continue
			}
			seen[word] = struct{}{}
			suggestions = append(suggestions, Suggestion{Text: capitalize(word), Type: "keyword"})
		}
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions, nil
}

// CompleteQuery returns index-derived completions. An empty partial yields
// the most recent searches; otherwise recent searches containing the partial
// come first, then indexed words starting with it, capped at five.
func (e *Engine) CompleteQuery(partial string) []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if partial == "" {
		n := min(len(e.recent), maxCompletions)
		out := make([]string, n)
		copy(out, e.recent[:n])
		return out
	}

	q := strings.ToLower(partial)
	out := []string{}
	for _, recent := range e.recent {
		if strings.Contains(strings.ToLower(recent), q) {
			out = append(out, recent)
		}
	}
	for _, word := range e.index.Words() {
		if strings.HasPrefix(word, q) && !containsString(out, word) {
			out = append(out, word)
		}
	}

	if len(out) > maxCompletions {
		out = out[:maxCompletions]
	}
	return out
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
