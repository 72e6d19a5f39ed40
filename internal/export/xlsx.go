package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX renders the snapshot as a workbook with Annual, Decades,
// Summary and Story sheets.
func WriteXLSX(w io.Writer, s Snapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetDocProps(&excelize.DocProperties{
		Title:       fmt.Sprintf("Climate Report - %s", s.Country),
		Subject:     "Temperature anomalies",
		Creator:     "Climate Data Explorer",
		Description: fmt.Sprintf("Export %s for %s, %d-%d", s.ID, s.Country, s.Period.From, s.Period.To),
		Created:     s.GeneratedAt.Format("2006-01-02T15:04:05Z"),
	})

	if err := writeAnnualSheet(f, s); err != nil {
		return fmt.Errorf("failed to create annual sheet: %w", err)
	}
	if err := writeDecadeSheet(f, s); err != nil {
		return fmt.Errorf("failed to create decade sheet: %w", err)
	}
	if err := writeSummarySheet(f, s); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if s.View.HasStory {
		if err := writeStorySheet(f, s); err != nil {
			return fmt.Errorf("failed to create story sheet: %w", err)
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}
	if idx, err := f.GetSheetIndex("Annual"); err == nil {
		f.SetActiveSheet(idx)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	for r, row := range rows {
		if err := f.SetSheetRow(sheet, cell(1, r+1), &row); err != nil {
			return err
		}
	}
	return nil
}

func writeAnnualSheet(f *excelize.File, s Snapshot) error {
	rows := [][]interface{}{{"Year", "Temperature (°C)", "Anomaly (°C)", "Rolling mean (°C)"}}
	for _, p := range s.View.Result.Points {
		var rolling interface{} = ""
		if p.Rolling != nil {
			rolling = *p.Rolling
		}
		rows = append(rows, []interface{}{p.Year, p.Temperature, p.Anomaly, rolling})
	}
	return writeRows(f, "Annual", rows)
}

func writeDecadeSheet(f *excelize.File, s Snapshot) error {
	rows := [][]interface{}{{"Decade", "Avg Anomaly (°C)", "Avg Temperature (°C)", "Years"}}
	for _, d := range s.View.Decades {
		rows = append(rows, []interface{}{d.Decade, d.Anomaly, d.Temperature, d.Years})
	}
	return writeRows(f, "Decades", rows)
}

func writeSummarySheet(f *excelize.File, s Snapshot) error {
	sum := s.View.Summary
	rows := [][]interface{}{
		{"Metric", "Year", "Value"},
		{"Latest", sum.Latest.Year, sum.Latest.Anomaly},
		{"Hottest", sum.Hottest.Year, sum.Hottest.Anomaly},
		{"Coldest", sum.Coldest.Year, sum.Coldest.Anomaly},
		{"Period average", "", sum.Average},
		{"Baseline mean", s.View.Result.Baseline.String(), s.View.Result.BaselineMean},
		{"Data points", "", sum.DataPoints},
	}
	if s.View.HasTrend {
		rows = append(rows, []interface{}{"Trend per decade", "", s.View.Trend.PerDecade()})
	}
	return writeRows(f, "Summary", rows)
}

func writeStorySheet(f *excelize.File, s Snapshot) error {
	rows := [][]interface{}{{"Section", "Text"}}
	for _, sec := range s.View.Story.Sections() {
		rows = append(rows, []interface{}{sec.Title, sec.Body})
	}
	return writeRows(f, "Story", rows)
}
