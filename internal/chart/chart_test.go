package chart

import (
	"bytes"
	"encoding/json"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/climate-data-explorer/internal/climate"
)

func sampleResult() climate.AnomalyResult {
	var series []climate.YearValue
	for y := 1990; y <= 2020; y++ {
		series = append(series, climate.YearValue{Year: y, Value: 14 + float64(y-1990)*0.03})
	}
	return climate.AnomaliesFrom(series, climate.DefaultBaseline, 14.2, 5)
}

func TestStripeColor(t *testing.T) {
	assert.Equal(t, "#f7f7f7", StripeColor(0))
	assert.Equal(t, "#b2182b", StripeColor(2))
	assert.Equal(t, "#b2182b", StripeColor(5))
	assert.Equal(t, "#2166ac", StripeColor(-2))
	assert.Equal(t, "#2166ac", StripeColor(-10))

	r, _, b := StripeRGB(1)
	assert.Greater(t, r, b)
	r, _, b = StripeRGB(-1)
	assert.Less(t, r, b)
}

func TestDecadeColor(t *testing.T) {
	assert.Equal(t, ColorDecadeWarm, DecadeColor(0.1))
	assert.Equal(t, ColorDecadeCool, DecadeColor(0))
	assert.Equal(t, ColorDecadeCool, DecadeColor(-0.4))
}

func TestTimeSeriesLayers(t *testing.T) {
	res := sampleResult()
	trend, ok := climate.Trend(climate.AnomalySeries(res.Points))
	require.True(t, ok)
	period := climate.YearRange{From: 1990, To: 2020}

	full := TimeSeries("Japan", period, res, trend, true, Options{ShowTrend: true, ShowMovingAverage: true})
	assert.Len(t, full["layer"], 5)

	bare := TimeSeries("Japan", period, res, trend, true, Options{})
	assert.Len(t, bare["layer"], 3)

	b, err := json.Marshal(full)
	require.NoError(t, err)

	var decoded struct {
		Data struct {
			Values []map[string]float64 `json:"values"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Len(t, decoded.Data.Values, 31)
	_, hasMA := decoded.Data.Values[3]["MA"]
	assert.False(t, hasMA)
	_, hasMA = decoded.Data.Values[4]["MA"]
	assert.True(t, hasMA)
}

func TestStripesSpec(t *testing.T) {
	res := sampleResult()
	spec := Stripes("Japan", climate.YearRange{From: 1990, To: 2020}, res.Points)

	assert.Equal(t, "rect", spec["mark"])
	assert.Equal(t, "Warming Stripes: Japan (1990-2020)", spec["title"])

	b, err := json.Marshal(spec)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"scheme":"redblue"`)
	assert.Contains(t, string(b), `"values":[1990,2000,2010,2020]`)
}

func TestDecadesAndComparisonSpecs(t *testing.T) {
	res := sampleResult()
	decades := climate.DecadeMeans(res.Points)

	spec := Decades(decades)
	assert.Equal(t, "bar", spec["mark"])

	cmp := climate.Comparison{Series: map[string][]climate.AnomalyPoint{
		"Japan": res.Points,
		"Chile": res.Points[:3],
	}}
	spec = Comparison(cmp)
	values := spec["data"].(map[string]interface{})["values"].([]map[string]interface{})
	assert.Len(t, values, 34)
	assert.Equal(t, "Chile", values[0]["Country"])
}

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestRenderTimeSeriesPNG(t *testing.T) {
	res := sampleResult()
	trend, _ := climate.Trend(climate.AnomalySeries(res.Points))

	var buf bytes.Buffer
	err := RenderTimeSeriesPNG(&buf, "Japan", res, trend, true, Options{ShowTrend: true, ShowMovingAverage: true})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestRenderStripesPNG(t *testing.T) {
	res := sampleResult()

	var buf bytes.Buffer
	err := RenderStripesPNG(&buf, "Japan", climate.YearRange{From: 1990, To: 2020}, res.Points)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestStripesLayout(t *testing.T) {
	for _, n := range []int{2, 31, 70, 170, 2000} {
		width, bar := stripesLayout(n)
		used := n * (bar + stripeSpacing)
		assert.GreaterOrEqual(t, bar, 1, "n=%d", n)
		assert.LessOrEqual(t, used+2*stripesPadding+stripesSlack, width, "n=%d", n)
		if width == stripesWidth {
			assert.Greater(t, float64(used), 0.9*float64(width-2*stripesPadding-stripesSlack), "n=%d", n)
		}
	}
}

func TestRenderStripesPNGFillsWidth(t *testing.T) {
	var points []climate.AnomalyPoint
	for y := 1950; y <= 2019; y++ {
		a := 3.0
		if y%2 == 0 {
			a = -3.0
		}
		points = append(points, climate.AnomalyPoint{Year: y, Anomaly: a})
	}

	var buf bytes.Buffer
	require.NoError(t, RenderStripesPNG(&buf, "Japan", climate.YearRange{From: 1950, To: 2019}, points))

	img, err := png.Decode(&buf)
	require.NoError(t, err)

	width, bar := stripesLayout(len(points))
	b := img.Bounds()
	assert.Equal(t, width, b.Dx())

	y := b.Min.Y + stripesHeight/2
	colored := 0
	for x := b.Min.X; x < b.Max.X; x++ {
		r, g, bl, _ := img.At(x, y).RGBA()
		if r < 0xf000 || g < 0xf000 || bl < 0xf000 {
			colored++
		}
	}
	assert.GreaterOrEqual(t, colored, len(points)*bar*9/10)
	assert.Greater(t, colored, b.Dx()*3/4)
}

func TestRenderNeedsTwoPoints(t *testing.T) {
	res := sampleResult()
	res.Points = res.Points[:1]

	var buf bytes.Buffer
	assert.ErrorIs(t, RenderTimeSeriesPNG(&buf, "Japan", res, climate.TrendLine{}, false, Options{}), ErrTooFewPoints)
	assert.ErrorIs(t, RenderStripesPNG(&buf, "Japan", climate.YearRange{From: 1990, To: 1990}, res.Points), ErrTooFewPoints)
}
