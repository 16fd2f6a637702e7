// Package fuzzy ranks argument names by edit distance for "did you mean"
// suggestions on undefined arguments.
package fuzzy

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// DefaultMaxDistance is the edit distance used by Suggest.
const DefaultMaxDistance = 2

// Matcher finds close candidates for a misspelled name.
type Matcher struct {
	maxDistance   int
	minLength     int
	caseSensitive bool
	fold          cases.Caser
}

// NewMatcher creates a case-insensitive matcher with the given max edit distance.
func NewMatcher(maxDistance int) *Matcher {
	return &Matcher{
		maxDistance: maxDistance,
		minLength:   2,
		fold:        cases.Fold(),
	}
}

// CaseSensitive switches between exact and folded comparison.
func (m *Matcher) CaseSensitive(enabled bool) *Matcher {
	m.caseSensitive = enabled
	return m
}

// Match is one ranked candidate.
type Match struct {
	Value    string
	Distance int
	Score    float64 // 0.0 to 1.0, higher is better
}

// FindBest returns the best candidate, or "" when nothing is close enough.
func (m *Matcher) FindBest(input string, candidates []string) string {
	matches := m.FindMatches(input, candidates)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Value
}

// FindMatches returns every candidate within the distance limit, best first.
// Candidates equal to input are skipped.
func (m *Matcher) FindMatches(input string, candidates []string) []Match {
	in := []rune(m.normalize(input))
	if len(in) < m.minLength {
		return nil
	}

	var matches []Match
	seen := make(map[string]bool, len(candidates))
	for _, candidate := range candidates {
		if seen[candidate] {
			continue
		}
		seen[candidate] = true

		c := []rune(m.normalize(candidate))
		if string(in) == string(c) {
			continue
		}
		distance := m.distance(in, c)
		if distance > m.maxDistance {
			continue
		}
		matches = append(matches, Match{
			Value:    candidate,
			Distance: distance,
			Score:    score(in, c, distance),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score == matches[j].Score {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].Score > matches[j].Score
	})
	return matches
}

func (m *Matcher) normalize(s string) string {
	s = strings.ReplaceAll(s, "-", "")
	if m.caseSensitive {
		return s
	}
	return m.fold.String(s)
}

// score weighs edit distance, shared prefix and length similarity.
func score(a, b []rune, distance int) float64 {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 1.0
	}
	s := 1.0 - float64(distance)/float64(longest)

	prefix := 0
	for prefix < min(len(a), len(b)) && a[prefix] == b[prefix] {
		prefix++
	}
	if shortest := min(len(a), len(b)); shortest > 0 {
		s += float64(prefix) / float64(shortest) * 0.3
	}

	diff := len(a) - len(b)
	if diff < 0 {
		diff = -diff
	}
	s += (1.0 - float64(diff)/float64(longest)) * 0.2
	return min(s, 1.0)
}

// distance is Levenshtein over runes with two rows and early exit once every
// cell in a row exceeds the limit.
func (m *Matcher) distance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	if d := len(a) - len(b); d > m.maxDistance || -d > m.maxDistance {
		return m.maxDistance + 1
	}
	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	cur := make([]int, len(a)+1)
	for i := range prev {
		prev[i] = i
	}
	for i := 1; i <= len(b); i++ {
		cur[0] = i
		rowMin := i
		for j := 1; j <= len(a); j++ {
			cost := 1
			if a[j-1] == b[i-1] {
				cost = 0
			}
			cur[j] = min(cur[j-1]+1, prev[j]+1, prev[j-1]+cost)
			rowMin = min(rowMin, cur[j])
		}
		if rowMin > m.maxDistance {
			return m.maxDistance + 1
		}
		prev, cur = cur, prev
	}
	return prev[len(a)]
}

// Suggest returns the closest argument name to input within
// DefaultMaxDistance, or "".
func Suggest(input string, names []string, caseSensitive bool) string {
	return NewMatcher(DefaultMaxDistance).CaseSensitive(caseSensitive).FindBest(input, names)
}

// Suggestions returns up to limit close names, best first.
func Suggestions(input string, names []string, maxDistance, limit int) []string {
	matches := NewMatcher(maxDistance).FindMatches(input, names)
	n := max(0, min(len(matches), limit))
	out := make([]string, 0, n)
	for _, match := range matches[:n] {
		out = append(out, match.Value)
	}
	return out
}
