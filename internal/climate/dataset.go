package climate

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/i474232898/climate-data-explorer/internal/logger"
)

// Column names of the source CSV.
const (
	ColYears            = "Years"
	ColMonth            = "Month"
	ColCountry          = "Country"
	ColTemperature      = "Temperature"
	ColMonthlyVariation = "Monthly_variation"
	ColAnomaly          = "Anomaly"
)

var requiredColumns = []string{ColYears, ColMonth, ColCountry, ColTemperature, ColMonthlyVariation, ColAnomaly}

// LoadReport counts what happened to the rows of a CSV load.
type LoadReport struct {
	Rows    int `json:"rows"`
	Kept    int `json:"kept"`
	Skipped int `json:"skipped"`
}

// Dataset is the read-only, in-memory set of records.
// It is never mutated after Load returns.
type Dataset struct {
	byCountry map[string][]Record
	countries []string
	minYear   int
	maxYear   int
	size      int
}

// NewDataset indexes records by country.
func NewDataset(records []Record) *Dataset {
	d := &Dataset{byCountry: make(map[string][]Record)}
	for _, r := range records {
		if _, ok := d.byCountry[r.Country]; !ok {
			d.countries = append(d.countries, r.Country)
		}
		d.byCountry[r.Country] = append(d.byCountry[r.Country], r)

		if d.size == 0 || r.Year < d.minYear {
			d.minYear = r.Year
		}
		if d.size == 0 || r.Year > d.maxYear {
			d.maxYear = r.Year
		}
		d.size++
	}
	sort.Strings(d.countries)
	return d
}

// Load parses the climate CSV. Malformed rows and rows without an anomaly
// are skipped with a warning; only an unreadable header is fatal.
func Load(r io.Reader, log logger.Logger) (*Dataset, LoadReport, error) {
	var report LoadReport

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, report, fmt.Errorf("read csv header: empty input")
		}
		return nil, report, fmt.Errorf("read csv header: %w", err)
	}

	idx, err := columnIndex(header)
	if err != nil {
		return nil, report, err
	}

	var records []Record
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		report.Rows++
		if err != nil {
			report.Skipped++
			log.Warnf("skipping malformed csv row %d: %v", line, err)
			continue
		}

		rec, err := parseRow(row, idx)
		if err != nil {
			report.Skipped++
			log.Warnf("skipping csv row %d: %v", line, err)
			continue
		}
		records = append(records, rec)
		report.Kept++
	}

	return NewDataset(records), report, nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		for _, col := range requiredColumns {
			if strings.EqualFold(h, col) {
				idx[col] = i
			}
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("csv header missing columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

func parseRow(row []string, idx map[string]int) (Record, error) {
	field := func(col string) (string, error) {
		i := idx[col]
		if i >= len(row) {
			return "", fmt.Errorf("missing %s", col)
		}
		return strings.TrimSpace(row[i]), nil
	}

	var rec Record

	s, err := field(ColYears)
	if err != nil {
		return rec, err
	}
	if rec.Year, err = parseInt(s); err != nil {
		return rec, fmt.Errorf("invalid %s %q", ColYears, s)
	}

	if s, err = field(ColMonth); err != nil {
		return rec, err
	}
	if rec.Month, err = parseInt(s); err != nil || rec.Month < 1 || rec.Month > 12 {
		return rec, fmt.Errorf("invalid %s %q", ColMonth, s)
	}

	if rec.Country, err = field(ColCountry); err != nil {
		return rec, err
	}
	if rec.Country == "" {
		return rec, fmt.Errorf("empty %s", ColCountry)
	}

	// A missing monthly variation keeps the row at 0; nothing derives from it.
	floats := []struct {
		col      string
		dst      *float64
		optional bool
	}{
		{ColTemperature, &rec.Temperature, false},
		{ColMonthlyVariation, &rec.MonthlyVariation, true},
		{ColAnomaly, &rec.Anomaly, false},
	}
	for _, f := range floats {
		if s, err = field(f.col); err != nil {
			if f.optional {
				continue
			}
			return rec, err
		}
		v, ok := parseFloat(s)
		if !ok {
			if f.optional && isMissing(s) {
				continue
			}
			return rec, fmt.Errorf("invalid %s %q", f.col, s)
		}
		*f.dst = v
	}

	return rec, nil
}

// parseInt accepts "1990" as well as "1990.0", which pandas exports produce.
func parseInt(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return int(f), nil
}

func isMissing(s string) bool {
	switch strings.ToLower(s) {
	case "", "na", "nan", "null":
		return true
	}
	return false
}

// parseFloat rejects missing markers and non-finite values such as "Inf".
func parseFloat(s string) (float64, bool) {
	if isMissing(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Len is the number of records.
func (d *Dataset) Len() int {
	return d.size
}

// Countries returns the sorted distinct countries.
func (d *Dataset) Countries() []string {
	out := make([]string, len(d.countries))
	copy(out, d.countries)
	return out
}

// HasCountry reports whether country has any records.
func (d *Dataset) HasCountry(country string) bool {
	_, ok := d.byCountry[country]
	return ok
}

// YearBounds returns the first and last year present.
func (d *Dataset) YearBounds() YearRange {
	return YearRange{From: d.minYear, To: d.maxYear}
}

// Records returns the records of one country. Callers must not modify the slice.
func (d *Dataset) Records(country string) []Record {
	return d.byCountry[country]
}
