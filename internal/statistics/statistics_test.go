package statistics

import (
	"math"
	"testing"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticsEmpty(t *testing.T) {
	stats := &Statistics{}

	assert.Zero(t, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Zero(t, stats.StdDev())
	assert.Zero(t, stats.StdError())
	assert.Zero(t, stats.Median())
	assert.Zero(t, stats.Percentile(0.5))
	assert.Zero(t, stats.Rate(stats.Wins))
	assert.Error(t, stats.Validate())
}

func TestStatisticsSingleValue(t *testing.T) {
	stats := &Statistics{}
	stats.Add(RoundResult{Net: 1.5, State: blackjack.Win})

	assert.Equal(t, 1, stats.Rounds)
	assert.Equal(t, 1.5, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Equal(t, 1.5, stats.Median())
	assert.Equal(t, 1, stats.Wins)
	assert.NoError(t, stats.Validate())
}

func TestStatisticsMultipleValues(t *testing.T) {
	stats := &Statistics{}
	results := []RoundResult{
		{Net: 1.5, State: blackjack.Win},
		{Net: -1, State: blackjack.Lose},
		{Net: 0, State: blackjack.Push},
		{Net: -1, State: blackjack.Lose},
		{Net: 0, State: blackjack.GameOver},
	}
	for _, r := range results {
		stats.Add(r)
	}

	require.NoError(t, stats.Validate())
	assert.Equal(t, 5, stats.Rounds)
	assert.Equal(t, 1, stats.Wins)
	assert.Equal(t, 2, stats.Losses)
	assert.Equal(t, 1, stats.Pushes)
	assert.Equal(t, 1, stats.GameOvers)
	assert.InDelta(t, -0.1, stats.Mean(), 1e-9)

	// Sum of squares 2.25 + 1 + 0 + 1 + 0 = 4.25; (4.25 - 5*0.01) / 4 = 1.05
	assert.InDelta(t, 1.05, stats.Variance(), 1e-9)
	assert.InDelta(t, math.Sqrt(1.05), stats.StdDev(), 1e-9)
	assert.InDelta(t, math.Sqrt(1.05)/math.Sqrt(5), stats.StdError(), 1e-9)

	low, high := stats.ConfidenceInterval95()
	assert.InDelta(t, stats.Mean()-1.96*stats.StdError(), low, 1e-9)
	assert.InDelta(t, stats.Mean()+1.96*stats.StdError(), high, 1e-9)

	assert.Equal(t, 0.0, stats.Median())
	assert.InDelta(t, 0.2, stats.Rate(stats.Wins), 1e-9)
}

func TestStatisticsPercentile(t *testing.T) {
	stats := &Statistics{}
	for _, v := range []float64{4, 1, 3, 2} {
		stats.Add(RoundResult{Net: v, State: blackjack.Win})
	}

	tests := []struct {
		p    float64
		want float64
	}{
		{p: 0, want: 1},
		{p: 0.5, want: 2.5},
		{p: 1, want: 4},
		{p: 0.25, want: 1.75},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, stats.Percentile(tt.p), 1e-9, "p=%v", tt.p)
	}
	// Values are left in insertion order
	assert.Equal(t, []float64{4, 1, 3, 2}, stats.Values)
}

func TestStatisticsMerge(t *testing.T) {
	a := &Statistics{}
	a.Add(RoundResult{Net: 1.5, State: blackjack.Win})
	a.Add(RoundResult{Net: -1, State: blackjack.Lose})

	b := &Statistics{}
	b.Add(RoundResult{Net: 0, State: blackjack.Push})
	b.Add(RoundResult{Net: 0, State: blackjack.Active})

	a.Merge(b)

	require.NoError(t, a.Validate())
	assert.Equal(t, 4, a.Rounds)
	assert.Equal(t, 1, a.Wins)
	assert.Equal(t, 1, a.Losses)
	assert.Equal(t, 1, a.Pushes)
	assert.Equal(t, 1, a.Unsettled)
	assert.InDelta(t, 0.125, a.Mean(), 1e-9)
	assert.Len(t, a.Values, 4)
}

func TestStatisticsValidate(t *testing.T) {
	stats := &Statistics{}
	stats.Add(RoundResult{Net: 1, State: blackjack.Win})
	require.NoError(t, stats.Validate())

	stats.Wins++
	assert.ErrorContains(t, stats.Validate(), "outcome total")

	stats.Wins--
	stats.Values = nil
	assert.ErrorContains(t, stats.Validate(), "values array length")
}
