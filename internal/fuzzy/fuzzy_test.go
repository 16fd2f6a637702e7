//nolint:testpackage // using package name 'fuzzy' to access unexported fields for testing
package fuzzy

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMatcher_FindBest(t *testing.T) {
	matcher := NewMatcher(2)

	tests := []struct {
		name       string
		input      string
		candidates []string
		expected   string
	}{
		{
			name:       "exact match excluded",
			input:      "Files",
			candidates: []string{"Files", "Recurse"},
			expected:   "",
		},
		{
			name:       "simple typo",
			input:      "Recrse",
			candidates: []string{"Files", "Recurse", "Verbose"},
			expected:   "Recurse",
		},
		{
			name:       "closest wins",
			input:      "port",
			candidates: []string{"host", "post", "part"},
			expected:   "post",
		},
		{
			name:       "no good match",
			input:      "xyz",
			candidates: []string{"Files", "Recurse"},
			expected:   "",
		},
		{
			name:       "too short",
			input:      "x",
			candidates: []string{"xy"},
			expected:   "",
		},
		{
			name:       "case folded",
			input:      "FILSE",
			candidates: []string{"Files", "Force"},
			expected:   "Files",
		},
		{
			name:       "dashes ignored",
			input:      "dry-rn",
			candidates: []string{"dryrun", "debug"},
			expected:   "dryrun",
		},
		{
			name:       "unicode folding",
			input:      "STRASE",
			candidates: []string{"Straße"},
			expected:   "Straße",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := matcher.FindBest(tt.input, tt.candidates)
			if result != tt.expected {
				t.Errorf("FindBest(%q, %v) = %q, want %q", tt.input, tt.candidates, result, tt.expected)
			}
		})
	}
}

func TestMatcher_FindMatchesOrdering(t *testing.T) {
	matches := NewMatcher(2).FindMatches("hep", []string{"help", "heap", "deep", "version", "help"})
	if len(matches) < 2 {
		t.Fatalf("expected at least two matches, got %v", matches)
	}
	if matches[0].Value != "help" && matches[0].Value != "heap" {
		t.Errorf("unexpected best match %q", matches[0].Value)
	}
	seen := map[string]bool{}
	for i, m := range matches {
		if seen[m.Value] {
			t.Errorf("duplicate candidate %q", m.Value)
		}
		seen[m.Value] = true
		if i > 0 && matches[i-1].Score < m.Score {
			t.Errorf("matches not sorted by score: %v", matches)
		}
	}
}

func TestMatcher_CaseSensitive(t *testing.T) {
	m := NewMatcher(1).CaseSensitive(true)
	if got := m.FindBest("FILES", []string{"files"}); got != "" {
		t.Errorf("case-sensitive matcher suggested %q", got)
	}
	if got := m.FindBest("filse", []string{"files"}); got != "" {
		t.Errorf("transposition costs 2, got suggestion %q", got)
	}
	if got := m.FindBest("fles", []string{"files"}); got != "files" {
		t.Errorf("FindBest = %q, want files", got)
	}
}

func TestDistance(t *testing.T) {
	m := NewMatcher(10)
	tests := []struct {
		a, b string
		want int
	}{
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"straße", "strasse", 2},
		{"same", "same", 0},
	}
	for _, tt := range tests {
		if got := m.distance([]rune(tt.a), []rune(tt.b)); got != tt.want {
			t.Errorf("distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}

	limited := NewMatcher(1)
	if got := limited.distance([]rune("abcdef"), []rune("uvwxyz")); got != 2 {
		t.Errorf("early exit distance = %d, want 2", got)
	}
}

func TestSuggestions(t *testing.T) {
	got := Suggestions("verbos", []string{"verbose", "verbosity", "version", "quiet"}, 3, 2)
	if diff := cmp.Diff([]string{"verbose", "verbosity"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if got := Suggest("Recures", []string{"Recurse", "Files"}, false); got != "Recurse" {
		t.Errorf("Suggest = %q", got)
	}
	for _, limit := range []int{0, -1} {
		if got := Suggestions("verbos", []string{"verbose"}, 3, limit); len(got) != 0 {
			t.Errorf("limit %d: got %v, want none", limit, got)
		}
	}
}
