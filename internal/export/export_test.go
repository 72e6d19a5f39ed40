package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/i474232898/climate-data-explorer/internal/chart"
	"github.com/i474232898/climate-data-explorer/internal/climate"
	"github.com/i474232898/climate-data-explorer/internal/logger"
)

func sampleView(t *testing.T) climate.View {
	t.Helper()
	var records []climate.Record
	for y := 1950; y <= 2000; y++ {
		for m := 1; m <= 12; m++ {
			records = append(records, climate.Record{Year: y, Month: m, Country: "South Korea", Temperature: 10 + float64(y-1950)*0.05})
		}
	}
	svc := climate.NewServiceWithDataset(climate.NewDataset(records), nil, logger.Discard())
	v, err := svc.View(climate.Query{
		Country:  "South Korea",
		Range:    climate.YearRange{From: 1980, To: 2000},
		Baseline: climate.DefaultBaseline,
		Window:   3,
	})
	require.NoError(t, err)
	require.True(t, v.Result.OK())
	return v
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "South_Korea_annual_anomaly.csv", FileName("South Korea", "annual_anomaly", "csv"))
}

func TestNewSnapshot(t *testing.T) {
	s, err := NewSnapshot(sampleView(t), nil)
	require.NoError(t, err)
	assert.Len(t, s.ID, 36)
	assert.Equal(t, "South Korea", s.Country)

	_, err = NewSnapshot(climate.View{}, nil)
	assert.ErrorIs(t, err, ErrNothingToExport)
}

func TestWriteAnnualCSV(t *testing.T) {
	points := []climate.AnomalyPoint{
		{Year: 2000, Temperature: 14, Anomaly: 0},
		{Year: 2001, Temperature: 14.5, Anomaly: 0.5},
	}
	var buf bytes.Buffer

	require.NoError(t, WriteAnnualCSV(&buf, points))

	assert.Equal(t, "Year,Anomaly,Temperature\n2000,0,14\n2001,0.5,14.5\n", buf.String())
}

func TestWriteDecadeCSV(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteDecadeCSV(&buf, []climate.DecadePoint{{Decade: 1990, Anomaly: -0.25}}))

	assert.Equal(t, "Decade,Anomaly\n1990,-0.25\n", buf.String())
}

func TestWriteHTML(t *testing.T) {
	v := sampleView(t)
	charts := map[string]chart.Spec{"decades": chart.Decades(v.Decades)}
	s, err := NewSnapshot(v, charts)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, s))

	html := buf.String()
	assert.Contains(t, html, "<h1>Climate Data: South Korea</h1>")
	assert.Contains(t, html, s.ID)
	assert.Contains(t, html, `id="chart-decades"`)
	assert.Contains(t, html, v.Story.Hook)
	assert.Contains(t, html, "baseline 1951-1980")
	assert.Equal(t, len(v.Result.Points), strings.Count(html, `<span title=`))
}

func TestWriteXLSX(t *testing.T) {
	s, err := NewSnapshot(sampleView(t), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, s))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Annual", "Decades", "Summary", "Story"}, f.GetSheetList())

	rows, err := f.GetRows("Annual")
	require.NoError(t, err)
	assert.Len(t, rows, 22)
	assert.Equal(t, "Year", rows[0][0])
	assert.Equal(t, "1980", rows[1][0])
}
