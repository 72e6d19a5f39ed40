package climate

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// AnnualMeans groups monthly records by year. Temperature and the recorded
// anomaly are averaged over the months present. The result is sorted by year.
func AnnualMeans(records []Record) []AnnualPoint {
	if len(records) == 0 {
		return []AnnualPoint{}
	}

	type acc struct {
		temp, anomaly float64
		n             int
	}
	byYear := make(map[int]*acc)
	for _, r := range records {
		a, ok := byYear[r.Year]
		if !ok {
			a = &acc{}
			byYear[r.Year] = a
		}
		a.temp += r.Temperature
		a.anomaly += r.Anomaly
		a.n++
	}

	points := make([]AnnualPoint, 0, len(byYear))
	for year, a := range byYear {
		n := float64(a.n)
		points = append(points, AnnualPoint{
			Year:        year,
			Temperature: a.temp / n,
			Anomaly:     a.anomaly / n,
			Months:      a.n,
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Year < points[j].Year })
	return points
}

// FilterYears keeps the points inside r.
func FilterYears(points []AnnualPoint, r YearRange) []AnnualPoint {
	out := make([]AnnualPoint, 0, len(points))
	for _, p := range points {
		if r.Contains(p.Year) {
			out = append(out, p)
		}
	}
	return out
}

// TemperatureSeries projects annual points onto their mean temperature.
func TemperatureSeries(points []AnnualPoint) []YearValue {
	out := make([]YearValue, len(points))
	for i, p := range points {
		out[i] = YearValue{Year: p.Year, Value: p.Temperature}
	}
	return out
}

// CompleteYears keeps the years that have all twelve months. A partial
// year's mean temperature is skewed by the season it covers.
func CompleteYears(points []AnnualPoint) []AnnualPoint {
	out := make([]AnnualPoint, 0, len(points))
	for _, p := range points {
		if p.Complete() {
			out = append(out, p)
		}
	}
	return out
}

// DecadeOf floors year to its decade, e.g. 1987 -> 1980.
func DecadeOf(year int) int {
	d := year / 10 * 10
	if year < 0 && year%10 != 0 {
		d -= 10
	}
	return d
}

// DecadeMeans buckets anomaly points by decade, sorted ascending.
func DecadeMeans(points []AnomalyPoint) []DecadePoint {
	if len(points) == 0 {
		return []DecadePoint{}
	}

	byDecade := make(map[int]*DecadePoint)
	for _, p := range points {
		d := DecadeOf(p.Year)
		dp, ok := byDecade[d]
		if !ok {
			dp = &DecadePoint{Decade: d}
			byDecade[d] = dp
		}
		dp.Anomaly += p.Anomaly
		dp.Temperature += p.Temperature
		dp.Years++
	}

	out := make([]DecadePoint, 0, len(byDecade))
	for _, dp := range byDecade {
		n := float64(dp.Years)
		dp.Anomaly /= n
		dp.Temperature /= n
		out = append(out, *dp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Decade < out[j].Decade })
	return out
}

// DecadesFrom drops decades that start before year.
func DecadesFrom(decades []DecadePoint, year int) []DecadePoint {
	out := make([]DecadePoint, 0, len(decades))
	for _, d := range decades {
		if d.Decade >= year {
			out = append(out, d)
		}
	}
	return out
}

// Trend fits a least-squares line through the series. At least two
// distinct years are needed.
func Trend(series []YearValue) (TrendLine, bool) {
	if len(series) < 2 {
		return TrendLine{}, false
	}
	xs := make([]float64, len(series))
	ys := make([]float64, len(series))
	distinct := false
	for i, s := range series {
		xs[i] = float64(s.Year)
		ys[i] = s.Value
		if s.Year != series[0].Year {
			distinct = true
		}
	}
	if !distinct {
		return TrendLine{}, false
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(alpha) || math.IsNaN(beta) {
		return TrendLine{}, false
	}
	return TrendLine{Intercept: alpha, Slope: beta}, true
}

// Summarize computes the headline metrics of a series. Ties for hottest and
// coldest resolve to the earliest year.
func Summarize(points []AnomalyPoint) (Summary, bool) {
	if len(points) == 0 {
		return Summary{}, false
	}

	s := Summary{DataPoints: len(points)}
	anomalies := make([]float64, len(points))
	for i, p := range points {
		anomalies[i] = p.Anomaly
		e := Extreme{Year: p.Year, Anomaly: p.Anomaly}
		if i == 0 {
			s.Latest, s.Hottest, s.Coldest = e, e, e
			continue
		}
		if p.Year > s.Latest.Year {
			s.Latest = e
		}
		if p.Anomaly > s.Hottest.Anomaly {
			s.Hottest = e
		}
		if p.Anomaly < s.Coldest.Anomaly {
			s.Coldest = e
		}
	}
	s.Average = stat.Mean(anomalies, nil)
	return s, true
}

// SplitHalves compares the mean anomaly before the midpoint of r with the
// mean from the midpoint on. ok is false when either half is empty.
func SplitHalves(points []AnomalyPoint, r YearRange) (early, recent float64, ok bool) {
	mid := r.Mid()
	var e, rc []float64
	for _, p := range points {
		if p.Year < mid {
			e = append(e, p.Anomaly)
		} else {
			rc = append(rc, p.Anomaly)
		}
	}
	if len(e) == 0 || len(rc) == 0 {
		return 0, 0, false
	}
	return stat.Mean(e, nil), stat.Mean(rc, nil), true
}

// AnomalySeries projects anomaly points onto their anomaly.
func AnomalySeries(points []AnomalyPoint) []YearValue {
	out := make([]YearValue, len(points))
	for i, p := range points {
		out[i] = YearValue{Year: p.Year, Value: p.Anomaly}
	}
	return out
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
