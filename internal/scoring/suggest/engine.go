package suggest

import (
	"sort"
	"strings"
)

// Generate builds the deterministic, ranked suggestion list for one analysis.
func Generate(input Input) []Suggestion {
	candidates := make([]Suggestion, 0, 16)
	mappers := []func(Input) []Suggestion{
		func(in Input) []Suggestion {
			return fromMissingSections(in.MissingSections)
		},
		func(in Input) []Suggestion {
			return fromPresentSections(in.PresentSections)
		},
		fromContactEntities,
		fromScores,
		func(in Input) []Suggestion {
			return fromKeywordGaps(in.KeywordGaps)
		},
	}
	for _, mapper := range mappers {
		candidates = append(candidates, mapper(input)...)
	}
	return Rank(candidates)
}

// Rank orders suggestions by priority then ATS impact, both descending, and
// collapses duplicate messages keeping the first occurrence in ranked order.
// Equal keys keep their input order. The input slice is not modified.
func Rank(items []Suggestion) []Suggestion {
	ranked := make([]Suggestion, len(items))
	copy(ranked, items)
	sort.SliceStable(ranked, func(i, j int) bool {
		a := ranked[i]
		b := ranked[j]
		if a.Priority.rank() != b.Priority.rank() {
			return a.Priority.rank() > b.Priority.rank()
		}
		return a.ATSImpact > b.ATSImpact
	})
	return dedupe(ranked)
}

// Messages returns the suggestion messages in order.
func Messages(items []Suggestion) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Message)
	}
	return out
}

// UniqueStrings trims and drops blank or repeated entries (case-insensitive), keeping first occurrences.
func UniqueStrings(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, trimmed)
	}
	return out
}

func dedupe(items []Suggestion) []Suggestion {
	seen := make(map[string]bool, len(items))
	out := make([]Suggestion, 0, len(items))
	for _, item := range items {
		key := messageKey(item.Message)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}

func messageKey(message string) string {
	return strings.ToLower(strings.Join(strings.Fields(message), " "))
}
