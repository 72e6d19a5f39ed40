package climate

import (
	"errors"
	"fmt"
)

var (
	// ErrNoData is returned when a filter selection matches no records.
	ErrNoData = errors.New("no data available")
	// ErrUnknownCountry is returned for a country absent from the dataset.
	ErrUnknownCountry = errors.New("unknown country")
	// ErrNoDataset is returned before any dataset has been loaded.
	ErrNoDataset = errors.New("dataset not loaded")
)

// Messages reported alongside empty results.
const (
	MsgInsufficientData = "insufficient data"
	MsgInvalidWindow    = "invalid smoothing window"
)

// MonthsPerYear is the number of monthly records in a complete year.
const MonthsPerYear = 12

// ParisTarget is the Paris Agreement warming threshold in °C.
const ParisTarget = 1.5

// Record is one row of the source dataset: a monthly mean for a country.
type Record struct {
	Year             int     `json:"year"`
	Month            int     `json:"month"` // 1..12
	Country          string  `json:"country"`
	Temperature      float64 `json:"temperature"` // °C
	MonthlyVariation float64 `json:"monthlyVariation"`
	Anomaly          float64 `json:"anomaly"`
}

// YearValue is a single (year, value) sample of a yearly series.
type YearValue struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// AnnualPoint is the yearly mean of a country's monthly records.
// Anomaly is the mean of the recorded anomaly column, not a recomputation.
type AnnualPoint struct {
	Year        int     `json:"year"`
	Temperature float64 `json:"temperature"`
	Anomaly     float64 `json:"anomaly"`
	Months      int     `json:"months"`
}

// Complete reports whether every month of the year was recorded.
func (p AnnualPoint) Complete() bool {
	return p.Months >= MonthsPerYear
}

// AnomalyPoint is a year of a series expressed against a baseline.
// Rolling is nil until the smoothing window has filled.
type AnomalyPoint struct {
	Year        int      `json:"year"`
	Temperature float64  `json:"temperature"`
	Anomaly     float64  `json:"anomaly"`
	Rolling     *float64 `json:"rolling,omitempty"`
}

// DecadePoint aggregates the years of one decade.
type DecadePoint struct {
	Decade      int     `json:"decade"`
	Anomaly     float64 `json:"anomaly"`
	Temperature float64 `json:"temperature"`
	Years       int     `json:"years"`
}

// Baseline is the inclusive year range used as the anomaly reference.
type Baseline struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// DefaultBaseline is the 1951-1980 reference period.
var DefaultBaseline = Baseline{Start: 1951, End: 1980}

// Contains reports whether year lies inside the baseline.
func (b Baseline) Contains(year int) bool {
	return year >= b.Start && year <= b.End
}

func (b Baseline) String() string {
	return fmt.Sprintf("%d-%d", b.Start, b.End)
}

// YearRange is an inclusive filter on years.
type YearRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Contains reports whether year lies inside the range.
func (r YearRange) Contains(year int) bool {
	return year >= r.From && year <= r.To
}

// Mid splits the range into an early and a recent half.
func (r YearRange) Mid() int {
	return (r.From + r.To) / 2
}

// Extreme is a year paired with its anomaly.
type Extreme struct {
	Year    int     `json:"year"`
	Anomaly float64 `json:"anomaly"`
}

// Summary holds the headline metrics for a filtered series.
type Summary struct {
	Latest     Extreme `json:"latest"`
	Hottest    Extreme `json:"hottest"`
	Coldest    Extreme `json:"coldest"`
	Average    float64 `json:"average"`
	DataPoints int     `json:"dataPoints"`
}

// CountryStats is one row of the country comparison table.
type CountryStats struct {
	Country     string  `json:"country"`
	AvgAnomaly  float64 `json:"avgAnomaly"`
	MaxAnomaly  float64 `json:"maxAnomaly"`
	MinAnomaly  float64 `json:"minAnomaly"`
	HottestYear int     `json:"hottestYear"`
	DataPoints  int     `json:"dataPoints"`
}

// TrendLine is a least-squares fit of value against year.
type TrendLine struct {
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"` // per year
}

// At evaluates the line at year.
func (t TrendLine) At(year int) float64 {
	return t.Intercept + t.Slope*float64(year)
}

// PerDecade is the slope scaled to ten years.
func (t TrendLine) PerDecade() float64 {
	return t.Slope * 10
}
