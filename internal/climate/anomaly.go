package climate

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// AnomalyResult is the outcome of an anomaly computation. When Message is
// set the computation could not run and Points is empty.
type AnomalyResult struct {
	Baseline     Baseline       `json:"baseline"`
	BaselineMean float64        `json:"baselineMean"`
	Window       int            `json:"window"`
	Points       []AnomalyPoint `json:"points"`
	Message      string         `json:"message,omitempty"`
}

// OK reports whether the result carries data.
func (r AnomalyResult) OK() bool {
	return r.Message == "" && len(r.Points) > 0
}

// BaselineMean averages the values whose year falls in the baseline.
func BaselineMean(series []YearValue, baseline Baseline) (float64, bool) {
	var in []float64
	for _, s := range series {
		if baseline.Contains(s.Year) {
			in = append(in, s.Value)
		}
	}
	if len(in) == 0 {
		return 0, false
	}
	return stat.Mean(in, nil), true
}

// RollingMean is the trailing mean over window consecutive points. The first
// window-1 points have no value and are omitted, never partially averaged.
func RollingMean(series []YearValue, window int) []YearValue {
	if window < 1 || len(series) < window {
		return []YearValue{}
	}

	out := make([]YearValue, 0, len(series)-window+1)
	var sum float64
	for i, s := range series {
		sum += s.Value
		if i >= window {
			sum -= series[i-window].Value
		}
		if i >= window-1 {
			out = append(out, YearValue{Year: s.Year, Value: sum / float64(window)})
		}
	}
	return out
}

// ComputeAnomalies expresses a yearly temperature series against the mean of
// its own baseline window and smooths it with a trailing rolling mean.
func ComputeAnomalies(series []YearValue, baseline Baseline, window int) AnomalyResult {
	res := AnomalyResult{Baseline: baseline, Window: window, Points: []AnomalyPoint{}}
	if len(series) == 0 {
		res.Message = MsgInsufficientData
		return res
	}
	mean, ok := BaselineMean(series, baseline)
	if !ok {
		res.Message = MsgInsufficientData
		return res
	}
	return AnomaliesFrom(series, baseline, mean, window)
}

// AnomaliesFrom applies an already computed baseline mean to series. This
// lets a year-filtered series share the baseline of the full record.
func AnomaliesFrom(series []YearValue, baseline Baseline, mean float64, window int) AnomalyResult {
	res := AnomalyResult{Baseline: baseline, BaselineMean: mean, Window: window, Points: []AnomalyPoint{}}
	if window < 1 {
		res.Message = MsgInvalidWindow
		return res
	}
	if len(series) == 0 {
		res.Message = MsgInsufficientData
		return res
	}

	sorted := make([]YearValue, len(series))
	copy(sorted, series)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Year < sorted[j].Year })

	rolling := RollingMean(sorted, window)

	res.Points = make([]AnomalyPoint, len(sorted))
	for i, s := range sorted {
		p := AnomalyPoint{
			Year:        s.Year,
			Temperature: s.Value,
			Anomaly:     s.Value - mean,
		}
		if i >= window-1 {
			v := rolling[i-(window-1)].Value
			p.Rolling = &v
		}
		res.Points[i] = p
	}
	return res
}

// RollingAnomaly is the rolling mean expressed against the baseline.
func (r AnomalyResult) RollingAnomaly(p AnomalyPoint) (float64, bool) {
	if p.Rolling == nil {
		return 0, false
	}
	return *p.Rolling - r.BaselineMean, true
}
