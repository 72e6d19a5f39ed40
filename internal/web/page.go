package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strconv"

	"github.com/i474232898/climate-data-explorer/internal/climate"
	"github.com/i474232898/climate-data-explorer/internal/export"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var funcs = template.FuncMap{
	"stripeColor": export.Funcs["stripeColor"],
	"decadeColor": export.Funcs["decadeColor"],
	"count":       climate.FormatCount,
	"contains": func(list []string, s string) bool {
		for _, v := range list {
			if v == s {
				return true
			}
		}
		return false
	},
}

var dashboardTemplate = template.Must(
	template.New("dashboard.html.tmpl").Funcs(funcs).ParseFS(templateFS, "templates/dashboard.html.tmpl"),
)

// Filters are the sidebar selections echoed back into the form.
type Filters struct {
	Country           string
	From              int
	To                int
	Window            int
	ShowTrend         bool
	ShowMovingAverage bool
	Compare           []string
	Baseline          climate.Baseline
}

// Link appends the filters to path as a query string.
func (f Filters) Link(path string) template.URL {
	v := url.Values{}
	v.Set("country", f.Country)
	v.Set("from", strconv.Itoa(f.From))
	v.Set("to", strconv.Itoa(f.To))
	v.Set("window", strconv.Itoa(f.Window))
	v.Set("trend", strconv.FormatBool(f.ShowTrend))
	v.Set("ma", strconv.FormatBool(f.ShowMovingAverage))
	v.Set("baselineStart", strconv.Itoa(f.Baseline.Start))
	v.Set("baselineEnd", strconv.Itoa(f.Baseline.End))
	return template.URL(path + "?" + v.Encode())
}

// Page is everything the dashboard template renders.
type Page struct {
	Countries      []string
	Bounds         climate.YearRange
	Status         climate.Status
	Filters        Filters
	View           *climate.View
	Warning        string
	Comparison     *climate.Comparison
	CompareWarning string
	ChartsJSON     template.JS
}

// Render writes the dashboard HTML.
func Render(w io.Writer, p Page) error {
	if p.ChartsJSON == "" {
		p.ChartsJSON = "{}"
	}
	if err := dashboardTemplate.Execute(w, p); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	return nil
}
