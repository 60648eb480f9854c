package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPattern(t *testing.T) {
	now := time.Now()

	p, err := NewPattern("pat-1", "1710034065", []int{1, 1, 2, 3, 5, 8}, now,
		[]float64{0.4, 0.5, 0.4, 0.6, 0.5})
	require.NoError(t, err)
	assert.Len(t, p.Intervals, 5)

	_, err = NewPattern("pat-1", "1710034065", nil, now, nil)
	assert.Error(t, err, "empty gesture sequence")

	_, err = NewPattern("pat-1", "1710034065", []int{1, 40}, now, nil)
	assert.Error(t, err, "gesture out of range")

	_, err = NewPattern("pat-1", "1710034065", []int{1, 2, 3}, now, []float64{0.5})
	assert.Error(t, err, "interval array must have len(gestures)-1 entries")

	_, err = NewPattern("pat-1", "1710034065", []int{1, 2, 3}, now, []float64{0.5, -0.1})
	assert.Error(t, err, "negative interval")
}

func TestNewPattern_CopiesSlices(t *testing.T) {
	gestures := []int{1, 2, 3}
	intervals := []float64{0.5, 0.5}
	p, err := NewPattern("pat-1", "1710034065", gestures, time.Now(), intervals)
	require.NoError(t, err)

	gestures[0] = 31
	intervals[0] = 9.9
	assert.Equal(t, 1, p.Gestures[0])
	assert.Equal(t, 0.5, p.Intervals[0])
}

func TestPatternSimilarity(t *testing.T) {
	p, err := NewPattern("pat-1", "1710034065", []int{1, 2, 3, 4}, time.Now(), nil)
	require.NoError(t, err)

	cases := []struct {
		name     string
		captured []int
		want     float64
	}{
		{"exact", []int{1, 2, 3, 4}, 1.0},
		{"one mismatch", []int{1, 2, 3, 7}, 0.75},
		{"all mismatch", []int{9, 9, 9, 9}, 0.0},
		{"short capture", []int{1, 2}, 0.5},
		{"long capture penalized by denominator", []int{1, 2, 3, 4, 5, 6, 7, 8}, 0.5},
		{"empty capture", nil, 0.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, p.Similarity(tc.captured), 1e-9)
		})
	}
}
