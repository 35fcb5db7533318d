// Package search implements the activity query engine: an inverted text
// index, structured filters, relevance ranking, sorting, autocomplete
// suggestions, and the filter-option registry.
package search

import (
	"sort"
	"strings"

	"github.com/mergington/activities/internal/catalog"
)

// Index maps each lowercase word of an activity's searchable text to the set
// of activity IDs containing it.
//
// Indexing is additive only: re-indexing an activity appends postings and
// never removes stale ones. Posting sets dedupe IDs, so repeated indexing of
// unchanged text is harmless.
type Index struct {
	postings map[string]map[string]struct{}
	words    []string // sorted; kept alongside for deterministic iteration
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{postings: make(map[string]map[string]struct{})}
}

// Add indexes one activity. Searchable text is the name, description,
// category, and tags joined with single spaces, blanks skipped.
func (ix *Index) Add(a catalog.Activity) {
	for _, word := range strings.Fields(strings.ToLower(searchableText(a))) {
		set, ok := ix.postings[word]
		if !ok {
			set = make(map[string]struct{})
			ix.postings[word] = set
			ix.insertWord(word)
		}
		set[a.ID] = struct{}{}
	}
}

// Lookup returns the posting set for a term, or nil if the term is unknown.
// Callers must not mutate the returned set.
func (ix *Index) Lookup(term string) map[string]struct{} {
	return ix.postings[term]
}

// Candidates intersects the posting sets of all terms (AND semantics). An
// empty term list, or any term with no postings, yields an empty set.
func (ix *Index) Candidates(terms []string) map[string]struct{} {
	if len(terms) == 0 {
		return map[string]struct{}{}
	}

	out := make(map[string]struct{})
	for id := range ix.postings[terms[0]] {
		out[id] = struct{}{}
	}
	for _, term := range terms[1:] {
		set := ix.postings[term]
		for id := range out {
			if _, ok := set[id]; !ok {
				delete(out, id)
			}
		}
	}
	return out
}

// Words returns every indexed word in ascending lexical order.
func (ix *Index) Words() []string {
	return ix.words
}

func (ix *Index) insertWord(word string) {
	i := sort.SearchStrings(ix.words, word)
	ix.words = append(ix.words, "")
	copy(ix.words[i+1:], ix.words[i:])
	ix.words[i] = word
}

func searchableText(a catalog.Activity) string {
	fields := []string{a.Name, a.Description, a.Category, strings.Join(a.Tags, " ")}
	parts := fields[:0]
	for _, f := range fields {
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, " ")
}
