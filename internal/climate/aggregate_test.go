package climate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnualMeans(t *testing.T) {
	records := []Record{
		{Year: 2001, Month: 1, Country: "X", Temperature: 10, Anomaly: 1},
		{Year: 2000, Month: 1, Country: "X", Temperature: 4, Anomaly: -1},
		{Year: 2000, Month: 2, Country: "X", Temperature: 6, Anomaly: 0},
		{Year: 2001, Month: 2, Country: "X", Temperature: 12, Anomaly: 2},
	}

	points := AnnualMeans(records)

	require.Len(t, points, 2)
	assert.Equal(t, AnnualPoint{Year: 2000, Temperature: 5, Anomaly: -0.5, Months: 2}, points[0])
	assert.Equal(t, AnnualPoint{Year: 2001, Temperature: 11, Anomaly: 1.5, Months: 2}, points[1])
}

func TestAggregationOnEmptyInput(t *testing.T) {
	assert.Empty(t, AnnualMeans(nil))
	assert.NotNil(t, AnnualMeans(nil))
	assert.Empty(t, DecadeMeans(nil))
	assert.Empty(t, RollingMean(nil, 3))
	assert.Empty(t, FilterYears(nil, YearRange{From: 1900, To: 2000}))

	_, ok := Summarize(nil)
	assert.False(t, ok)
	_, ok = Trend(nil)
	assert.False(t, ok)
}

func TestDecadeOf(t *testing.T) {
	tests := []struct {
		year, decade int
	}{
		{1987, 1980},
		{1980, 1980},
		{2009, 2000},
		{2020, 2020},
		{-5, -10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.decade, DecadeOf(tt.year), "year %d", tt.year)
	}
}

func TestDecadeMeans(t *testing.T) {
	points := []AnomalyPoint{
		{Year: 1998, Anomaly: 0.2, Temperature: 10},
		{Year: 1999, Anomaly: 0.4, Temperature: 12},
		{Year: 2000, Anomaly: 1.0, Temperature: 14},
	}

	decades := DecadeMeans(points)

	require.Len(t, decades, 2)
	assert.Equal(t, 1990, decades[0].Decade)
	assert.InDelta(t, 0.3, decades[0].Anomaly, 1e-9)
	assert.InDelta(t, 11.0, decades[0].Temperature, 1e-9)
	assert.Equal(t, 2, decades[0].Years)
	assert.Equal(t, 2000, decades[1].Decade)

	assert.Len(t, DecadesFrom(decades, 1995), 1)
}

func TestTrend(t *testing.T) {
	series := []YearValue{{2000, 1}, {2001, 3}, {2002, 5}}

	line, ok := Trend(series)

	require.True(t, ok)
	assert.InDelta(t, 2.0, line.Slope, 1e-9)
	assert.InDelta(t, 20.0, line.PerDecade(), 1e-9)
	assert.InDelta(t, 5.0, line.At(2002), 1e-6)

	_, ok = Trend([]YearValue{{2000, 1}, {2000, 2}})
	assert.False(t, ok)
}

func TestSummarize(t *testing.T) {
	points := []AnomalyPoint{
		{Year: 2000, Anomaly: 0.5},
		{Year: 2001, Anomaly: 1.5},
		{Year: 2002, Anomaly: -0.5},
		{Year: 2003, Anomaly: 1.5},
	}

	s, ok := Summarize(points)

	require.True(t, ok)
	assert.Equal(t, Extreme{Year: 2003, Anomaly: 1.5}, s.Latest)
	assert.Equal(t, Extreme{Year: 2001, Anomaly: 1.5}, s.Hottest)
	assert.Equal(t, Extreme{Year: 2002, Anomaly: -0.5}, s.Coldest)
	assert.InDelta(t, 0.75, s.Average, 1e-9)
	assert.Equal(t, 4, s.DataPoints)
}

func TestSplitHalves(t *testing.T) {
	points := []AnomalyPoint{
		{Year: 2000, Anomaly: 0},
		{Year: 2001, Anomaly: 1},
		{Year: 2002, Anomaly: 2},
		{Year: 2003, Anomaly: 3},
	}

	early, recent, ok := SplitHalves(points, YearRange{From: 2000, To: 2003})

	require.True(t, ok)
	assert.InDelta(t, 0.0, early, 1e-9)
	assert.InDelta(t, 2.0, recent, 1e-9)

	_, _, ok = SplitHalves(points[:1], YearRange{From: 2000, To: 2003})
	assert.False(t, ok)
}

func TestCompleteYears(t *testing.T) {
	points := []AnnualPoint{
		{Year: 2000, Months: 12},
		{Year: 2001, Months: 11},
		{Year: 2002, Months: 12},
		{Year: 2003, Months: 2},
	}

	got := CompleteYears(points)

	require.Len(t, got, 2)
	assert.Equal(t, 2000, got[0].Year)
	assert.Equal(t, 2002, got[1].Year)
	assert.Empty(t, CompleteYears(nil))
}
