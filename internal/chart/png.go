package chart

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/i474232898/climate-data-explorer/internal/climate"
)

// ErrTooFewPoints is returned when a raster chart would have no extent.
var ErrTooFewPoints = errors.New("at least two years are needed to draw a chart")

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func yearFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return strconv.Itoa(int(f))
	}
	return fmt.Sprint(v)
}

// RenderTimeSeriesPNG draws the anomaly chart as a PNG image.
func RenderTimeSeriesPNG(w io.Writer, country string, res climate.AnomalyResult, trend climate.TrendLine, hasTrend bool, opts Options) error {
	if len(res.Points) < 2 {
		return ErrTooFewPoints
	}

	var xs, ys, maXs, maYs, trendYs []float64
	for _, p := range res.Points {
		xs = append(xs, float64(p.Year))
		ys = append(ys, p.Anomaly)
		if ma, ok := res.RollingAnomaly(p); ok {
			maXs = append(maXs, float64(p.Year))
			maYs = append(maYs, ma)
		}
		if hasTrend {
			trendYs = append(trendYs, trend.At(p.Year))
		}
	}
	first, last := xs[0], xs[len(xs)-1]

	series := []gochart.Series{
		gochart.ContinuousSeries{
			Name: "Annual anomaly",
			Style: gochart.Style{
				StrokeColor: drawing.ColorTransparent,
				DotColor:    hexColor(ColorPoints),
				DotWidth:    3,
			},
			XValues: xs,
			YValues: ys,
		},
	}
	if opts.ShowMovingAverage && len(maXs) > 1 {
		series = append(series, gochart.ContinuousSeries{
			Name:    "Moving average",
			Style:   gochart.Style{StrokeColor: hexColor(ColorMovingAvg), StrokeWidth: 2.5},
			XValues: maXs,
			YValues: maYs,
		})
	}
	if opts.ShowTrend && hasTrend {
		series = append(series, gochart.ContinuousSeries{
			Name:    "Linear trend",
			Style:   gochart.Style{StrokeColor: hexColor(ColorTrend), StrokeWidth: 2, StrokeDashArray: []float64{5, 5}},
			XValues: xs,
			YValues: trendYs,
		})
	}
	series = append(series,
		gochart.ContinuousSeries{
			Name:    "Zero baseline",
			Style:   gochart.Style{StrokeColor: hexColor(ColorBaseline), StrokeWidth: 1, StrokeDashArray: []float64{3, 3}},
			XValues: []float64{first, last},
			YValues: []float64{0, 0},
		},
		gochart.ContinuousSeries{
			Name:    "Paris 1.5°C target",
			Style:   gochart.Style{StrokeColor: hexColor(ColorParis), StrokeWidth: 2},
			XValues: []float64{first, last},
			YValues: []float64{climate.ParisTarget, climate.ParisTarget},
		},
	)

	graph := gochart.Chart{
		Title:  "Temperature Anomaly: " + country,
		Width:  1200,
		Height: 450,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: gochart.XAxis{
			Name:           "Year",
			ValueFormatter: yearFormatter,
		},
		YAxis: gochart.YAxis{
			Name: "Temperature Anomaly (°C)",
		},
		Series: series,
	}
	graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}

	return graph.Render(gochart.PNG, w)
}

const (
	stripesWidth   = 1200
	stripesHeight  = 220
	stripesPadding = 20
	stripeSpacing  = 1
	// stripesSlack leaves room for the axis gutter go-chart reserves.
	stripesSlack = 40
)

// stripesLayout sizes the bars so n stripes span the canvas edge to edge.
// The image only grows past stripesWidth when bars would drop below 1px.
func stripesLayout(n int) (width, barWidth int) {
	avail := stripesWidth - 2*stripesPadding - stripesSlack
	barWidth = avail/n - stripeSpacing
	if barWidth < 1 {
		barWidth = 1
	}
	width = n*(barWidth+stripeSpacing) + 2*stripesPadding + stripesSlack
	if width < stripesWidth {
		width = stripesWidth
	}
	return width, barWidth
}

// RenderStripesPNG draws the warming stripes as a PNG image.
func RenderStripesPNG(w io.Writer, country string, period climate.YearRange, points []climate.AnomalyPoint) error {
	if len(points) < 2 {
		return ErrTooFewPoints
	}

	width, barWidth := stripesLayout(len(points))
	bars := make([]gochart.Value, 0, len(points))
	for _, p := range points {
		c := hexColor(StripeColor(p.Anomaly))
		label := ""
		if (p.Year-period.From)%10 == 0 {
			label = strconv.Itoa(p.Year)
		}
		bars = append(bars, gochart.Value{
			Value: 1,
			Label: label,
			Style: gochart.Style{FillColor: c, StrokeColor: c},
		})
	}

	bc := gochart.BarChart{
		Title:      fmt.Sprintf("Warming Stripes: %s (%d-%d)", country, period.From, period.To),
		Width:      width,
		Height:     stripesHeight,
		BarWidth:   barWidth,
		BarSpacing: stripeSpacing,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: stripesPadding, Right: stripesPadding, Bottom: 20},
		},
		YAxis: gochart.YAxis{
			Style: gochart.Style{Hidden: true},
			Range: &gochart.ContinuousRange{Min: 0, Max: 1},
		},
		Bars: bars,
	}
	return bc.Render(gochart.PNG, w)
}
