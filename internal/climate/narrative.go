package climate

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Section is one titled paragraph of a story.
type Section struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Findings are the numbers a story is built from.
type Findings struct {
	Summary        Summary `json:"summary"`
	EarlyMean      float64 `json:"earlyMean"`
	RecentMean     float64 `json:"recentMean"`
	Change         float64 `json:"change"`
	HalvesCompared bool    `json:"halvesCompared"`
	Midpoint       int     `json:"midpoint"`
	TrendPerDecade float64 `json:"trendPerDecade"`
	HasTrend       bool    `json:"hasTrend"`
	ParisProgress  float64 `json:"parisProgress"` // percent of the 1.5°C target
	ParisExceeded  bool    `json:"parisExceeded"`
	ParisRemaining float64 `json:"parisRemaining"`
}

// ProgressFraction clamps the Paris progress to [0, 1] for progress bars.
func (f Findings) ProgressFraction() float64 {
	return math.Max(0, math.Min(f.ParisProgress/100, 1))
}

// Story is the Hook/Context/Evidence/Meaning/Action narrative of a series.
type Story struct {
	Country  string    `json:"country"`
	Period   YearRange `json:"period"`
	Baseline Baseline  `json:"baseline"`
	Hook     string    `json:"hook"`
	Context  string    `json:"context"`
	Evidence []string  `json:"evidence"`
	Meaning  string    `json:"meaning"`
	Action   string    `json:"action"`
	Findings Findings  `json:"findings"`
}

// Sections flattens the story in reading order.
func (s Story) Sections() []Section {
	evidence := ""
	for i, e := range s.Evidence {
		if i > 0 {
			evidence += "\n"
		}
		evidence += "- " + e
	}
	return []Section{
		{Title: "Hook", Body: s.Hook},
		{Title: "Context", Body: s.Context},
		{Title: "Evidence", Body: evidence},
		{Title: "Meaning", Body: s.Meaning},
		{Title: "Action", Body: s.Action},
	}
}

// BuildStory fills the narrative template from an anomaly result restricted
// to period. It returns false when there is nothing to tell.
func BuildStory(country string, period YearRange, res AnomalyResult) (Story, bool) {
	if !res.OK() {
		return Story{}, false
	}
	summary, ok := Summarize(res.Points)
	if !ok {
		return Story{}, false
	}

	f := Findings{Summary: summary, Midpoint: period.Mid()}
	if early, recent, ok := SplitHalves(res.Points, period); ok {
		f.EarlyMean, f.RecentMean = early, recent
		f.Change = recent - early
		f.HalvesCompared = true
	} else {
		first := res.Points[0]
		f.Change = summary.Latest.Anomaly - first.Anomaly
	}
	if trend, ok := Trend(AnomalySeries(res.Points)); ok {
		f.TrendPerDecade = trend.PerDecade()
		f.HasTrend = true
	}
	f.ParisProgress = summary.Latest.Anomaly / ParisTarget * 100
	f.ParisExceeded = summary.Latest.Anomaly >= ParisTarget
	f.ParisRemaining = ParisTarget - summary.Latest.Anomaly

	first := res.Points[0].Year
	st := Story{
		Country:  country,
		Period:   period,
		Baseline: res.Baseline,
		Findings: f,
	}

	st.Hook = fmt.Sprintf("Temperatures in %s %s %.2f°C since %d.",
		country, direction(f.Change, "rose", "fell"), math.Abs(f.Change), first)

	st.Context = fmt.Sprintf(
		"Anomalies are measured against the %d-%d average of %.2f°C, using %s years of records between %d and %d.",
		res.Baseline.Start, res.Baseline.End, res.BaselineMean, FormatCount(summary.DataPoints), period.From, period.To)

	st.Evidence = []string{
		fmt.Sprintf("In %d, the temperature anomaly was %.2f°C.", summary.Latest.Year, summary.Latest.Anomaly),
		fmt.Sprintf("The hottest year was %d with an anomaly of %.2f°C.", summary.Hottest.Year, summary.Hottest.Anomaly),
		fmt.Sprintf("The coldest year was %d with an anomaly of %.2f°C.", summary.Coldest.Year, summary.Coldest.Anomaly),
		fmt.Sprintf("The average anomaly for this period is %.2f°C.", summary.Average),
	}
	if f.HalvesCompared {
		st.Evidence = append(st.Evidence,
			fmt.Sprintf("Early period (%d-%d) average: %.2f°C; recent period (%d-%d) average: %.2f°C; change %+.2f°C.",
				period.From, f.Midpoint-1, f.EarlyMean, f.Midpoint, period.To, f.RecentMean, f.Change))
	}

	st.Meaning = fmt.Sprintf("%s is %s.", country, direction(f.Change, "warming", "cooling"))
	if f.HasTrend {
		st.Meaning += fmt.Sprintf(" The linear trend is %+.2f°C per decade.", f.TrendPerDecade)
	}
	st.Meaning += fmt.Sprintf(" The latest anomaly reaches %.1f%% of the Paris Agreement %.1f°C target.", f.ParisProgress, ParisTarget)

	if f.ParisExceeded {
		st.Action = fmt.Sprintf("The current anomaly (%.2f°C) has exceeded the Paris Agreement %.1f°C target.",
			summary.Latest.Anomaly, ParisTarget)
	} else {
		st.Action = fmt.Sprintf("Remaining budget: %.2f°C until the %.1f°C threshold.", f.ParisRemaining, ParisTarget)
	}

	return st, true
}

func direction(change float64, up, down string) string {
	if change > 0 {
		return up
	}
	return down
}

// FormatCount renders an integer with thousands separators.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}
