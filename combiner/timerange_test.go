package combiner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeRangeReconcile(t *testing.T) {
	base := TimeRange{Start: 0, End: 10}
	variantA := TimeRange{Start: 5, End: 20}
	variantB := TimeRange{Start: -5, End: 8}

	tests := []struct {
		name     string
		policy   TimeRangePolicy
		expected TimeRange
	}{
		{
			name:     "widen takes min start and max end",
			policy:   Widen,
			expected: TimeRange{Start: -5, End: 20},
		},
		{
			name:     "narrow takes max start and min end",
			policy:   Narrow,
			expected: TimeRange{Start: 5, End: 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := base
			window = tt.policy.Reconcile(window, variantA)
			window = tt.policy.Reconcile(window, variantB)
			assert.Equal(t, tt.expected, window)
		})
	}
}

func TestTimeRangePolicyString(t *testing.T) {
	assert.Equal(t, "widen", Widen.String())
	assert.Equal(t, "narrow", Narrow.String())
}
