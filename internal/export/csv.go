package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/i474232898/climate-data-explorer/internal/climate"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteAnnualCSV writes Year,Anomaly,Temperature rows.
func WriteAnnualCSV(w io.Writer, points []climate.AnomalyPoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Year", "Anomaly", "Temperature"}); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{strconv.Itoa(p.Year), formatFloat(p.Anomaly), formatFloat(p.Temperature)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDecadeCSV writes Decade,Anomaly rows.
func WriteDecadeCSV(w io.Writer, decades []climate.DecadePoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Decade", "Anomaly"}); err != nil {
		return err
	}
	for _, d := range decades {
		if err := cw.Write([]string{strconv.Itoa(d.Decade), formatFloat(d.Anomaly)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
