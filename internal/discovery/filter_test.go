package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_FilterByName(t *testing.T) {
	filter := NewFilter()

	tests := []struct {
		name     string
		fixtures []string
		pattern  string
		expected int // Expected number of matches
	}{
		{
			name:     "empty pattern returns all",
			fixtures: []string{"cmd-accounts.test", "opt-budget.test", "1234.test"},
			pattern:  "",
			expected: 3,
		},
		{
			name:     "wildcard pattern matches suffix",
			fixtures: []string{"cmd-accounts.test", "opt-budget.test", "1234.test"},
			pattern:  "*accounts.test",
			expected: 1,
		},
		{
			name:     "wildcard pattern matches substring",
			fixtures: []string{"cmd-accounts.test", "opt-budget.test", "opt-budget-monthly.test", "1234.test"},
			pattern:  "*budget*",
			expected: 2,
		},
		{
			name:     "simple contains match",
			fixtures: []string{"cmd-accounts.test", "opt-budget.test", "1234.test"},
			pattern:  "opt-",
			expected: 1,
		},
		{
			name:     "no matches",
			fixtures: []string{"cmd-accounts.test", "opt-budget.test"},
			pattern:  "*NonExistent*",
			expected: 0,
		},
		{
			name:     "full path with wildcard",
			fixtures: []string{"/path/to/cmd-accounts.test", "/path/to/opt-budget.test"},
			pattern:  "cmd-*",
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := filter.FilterByName(tt.fixtures, tt.pattern)
			assert.Len(t, result, tt.expected)
		})
	}
}

func TestFilter_FilterByName_EdgeCases(t *testing.T) {
	filter := NewFilter()

	t.Run("empty fixture list", func(t *testing.T) {
		assert.Empty(t, filter.FilterByName([]string{}, "*.test"))
	})

	t.Run("pattern with multiple wildcards", func(t *testing.T) {
		fixtures := []string{"opt-budget-monthly.test", "opt-budget-yearly.test", "cmd-accounts.test"}
		assert.Len(t, filter.FilterByName(fixtures, "*budget*.test"), 2)
	})

	t.Run("only wildcards match nothing via parts", func(t *testing.T) {
		assert.False(t, matchesParts("a.test", "**"))
	})
}
