package chart

import (
	"fmt"
	"math"
	"sort"

	"github.com/i474232898/climate-data-explorer/internal/climate"
)

const schemaURL = "https://vega.github.io/schema/vega-lite/v5.json"

// Spec is a Vega-Lite specification, serialised as-is to the browser.
type Spec map[string]interface{}

// Options toggles optional layers of the time series chart.
type Options struct {
	ShowTrend         bool
	ShowMovingAverage bool
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func tooltip(field, typ, title, format string) map[string]interface{} {
	t := map[string]interface{}{"field": field, "type": typ, "title": title}
	if format != "" {
		t["format"] = format
	}
	return t
}

func rule(y float64, color string, dash []int, width float64) Spec {
	mark := map[string]interface{}{"type": "rule", "color": color, "strokeWidth": width}
	if len(dash) > 0 {
		mark["strokeDash"] = dash
	}
	return Spec{
		"data":     map[string]interface{}{"values": []map[string]float64{{"y": y}}},
		"mark":     mark,
		"encoding": map[string]interface{}{"y": map[string]interface{}{"field": "y", "type": "quantitative"}},
	}
}

// TimeSeries layers anomaly points, the moving average, the linear trend,
// a zero baseline and the Paris 1.5°C target.
func TimeSeries(country string, period climate.YearRange, res climate.AnomalyResult, trend climate.TrendLine, hasTrend bool, opts Options) Spec {
	values := make([]map[string]interface{}, 0, len(res.Points))
	for _, p := range res.Points {
		row := map[string]interface{}{
			"Year":    p.Year,
			"Anomaly": round(p.Anomaly, 4),
		}
		if ma, ok := res.RollingAnomaly(p); ok {
			row["MA"] = round(ma, 4)
		}
		if hasTrend {
			row["Trend"] = round(trend.At(p.Year), 4)
		}
		values = append(values, row)
	}

	x := map[string]interface{}{
		"field": "Year",
		"type":  "quantitative",
		"title": "Year",
		"axis":  map[string]interface{}{"format": "d"},
		"scale": map[string]interface{}{"domain": []int{period.From, period.To}},
	}

	layers := []Spec{{
		"mark": map[string]interface{}{"type": "circle", "size": 40, "opacity": 0.6, "color": ColorPoints},
		"encoding": map[string]interface{}{
			"x": x,
			"y": map[string]interface{}{"field": "Anomaly", "type": "quantitative", "title": "Temperature Anomaly (°C)"},
			"tooltip": []map[string]interface{}{
				tooltip("Year", "quantitative", "Year", ""),
				tooltip("Anomaly", "quantitative", "Anomaly", ".2f"),
			},
		},
	}}

	if opts.ShowMovingAverage {
		layers = append(layers, Spec{
			"mark":     map[string]interface{}{"type": "line", "color": ColorMovingAvg, "strokeWidth": 2.5},
			"encoding": map[string]interface{}{"x": x, "y": map[string]interface{}{"field": "MA", "type": "quantitative"}},
		})
	}
	if opts.ShowTrend && hasTrend {
		layers = append(layers, Spec{
			"mark":     map[string]interface{}{"type": "line", "color": ColorTrend, "strokeDash": []int{5, 5}, "strokeWidth": 2},
			"encoding": map[string]interface{}{"x": x, "y": map[string]interface{}{"field": "Trend", "type": "quantitative"}},
		})
	}
	layers = append(layers,
		rule(0, ColorBaseline, []int{3, 3}, 1),
		rule(climate.ParisTarget, ColorParis, nil, 2),
	)

	return Spec{
		"$schema": schemaURL,
		"title":   fmt.Sprintf("Temperature Anomaly Over Time: %s", country),
		"width":   "container",
		"height":  450,
		"data":    map[string]interface{}{"values": values},
		"layer":   layers,
		"params":  []map[string]interface{}{{"name": "zoom", "select": "interval", "bind": "scales"}},
	}
}

// Stripes is the warming stripes heatmap: one rect per year colored by anomaly.
func Stripes(country string, period climate.YearRange, points []climate.AnomalyPoint) Spec {
	values := make([]map[string]interface{}, 0, len(points))
	for _, p := range points {
		values = append(values, map[string]interface{}{"Year": p.Year, "Anomaly": round(p.Anomaly, 4)})
	}

	var ticks []int
	for y := period.From; y <= period.To; y += 10 {
		ticks = append(ticks, y)
	}

	return Spec{
		"$schema": schemaURL,
		"title":   fmt.Sprintf("Warming Stripes: %s (%d-%d)", country, period.From, period.To),
		"width":   "container",
		"height":  150,
		"data":    map[string]interface{}{"values": values},
		"mark":    "rect",
		"encoding": map[string]interface{}{
			"x": map[string]interface{}{
				"field": "Year",
				"type":  "ordinal",
				"title": nil,
				"axis":  map[string]interface{}{"labels": true, "labelAngle": -45, "values": ticks},
			},
			"color": map[string]interface{}{
				"field": "Anomaly",
				"type":  "quantitative",
				"scale": map[string]interface{}{
					"scheme":  "redblue",
					"reverse": true,
					"domain":  []float64{-StripeDomainLimit, StripeDomainLimit},
				},
				"legend": map[string]interface{}{"title": "Anomaly (°C)", "orient": "bottom"},
			},
			"tooltip": []map[string]interface{}{
				tooltip("Year", "ordinal", "Year", ""),
				tooltip("Anomaly", "quantitative", "Anomaly", ".2f"),
			},
		},
	}
}

// Decades draws one bar per decade, red above zero and blue below.
func Decades(decades []climate.DecadePoint) Spec {
	values := make([]map[string]interface{}, 0, len(decades))
	for _, d := range decades {
		values = append(values, map[string]interface{}{"Decade": d.Decade, "Anomaly": round(d.Anomaly, 4)})
	}

	return Spec{
		"$schema": schemaURL,
		"title":   "Temperature by Decade",
		"width":   "container",
		"height":  400,
		"data":    map[string]interface{}{"values": values},
		"mark":    "bar",
		"encoding": map[string]interface{}{
			"x": map[string]interface{}{"field": "Decade", "type": "ordinal", "title": "Decade"},
			"y": map[string]interface{}{"field": "Anomaly", "type": "quantitative", "title": "Average Anomaly (°C)"},
			"color": map[string]interface{}{
				"condition": map[string]interface{}{"test": "datum.Anomaly > 0", "value": ColorDecadeWarm},
				"value":     ColorDecadeCool,
			},
			"tooltip": []map[string]interface{}{
				tooltip("Decade", "ordinal", "Decade", ""),
				tooltip("Anomaly", "quantitative", "Avg Anomaly", ".2f"),
			},
		},
	}
}

// Comparison draws one anomaly line per country.
func Comparison(cmp climate.Comparison) Spec {
	countries := make([]string, 0, len(cmp.Series))
	for c := range cmp.Series {
		countries = append(countries, c)
	}
	sort.Strings(countries)

	var values []map[string]interface{}
	for _, c := range countries {
		for _, p := range cmp.Series[c] {
			values = append(values, map[string]interface{}{"Years": p.Year, "Country": c, "Anomaly": round(p.Anomaly, 4)})
		}
	}

	return Spec{
		"$schema": schemaURL,
		"title":   "Compare Multiple Countries",
		"width":   "container",
		"height":  450,
		"data":    map[string]interface{}{"values": values},
		"mark":    map[string]interface{}{"type": "line", "strokeWidth": 2},
		"encoding": map[string]interface{}{
			"x":     map[string]interface{}{"field": "Years", "type": "quantitative", "title": "Year", "axis": map[string]interface{}{"format": "d"}},
			"y":     map[string]interface{}{"field": "Anomaly", "type": "quantitative", "title": "Temperature Anomaly (°C)"},
			"color": map[string]interface{}{"field": "Country", "type": "nominal", "legend": map[string]interface{}{"title": "Country"}},
			"tooltip": []map[string]interface{}{
				tooltip("Years", "quantitative", "Year", ""),
				tooltip("Country", "nominal", "Country", ""),
				tooltip("Anomaly", "quantitative", "Anomaly", ".2f"),
			},
		},
		"params": []map[string]interface{}{{"name": "zoom", "select": "interval", "bind": "scales"}},
	}
}
