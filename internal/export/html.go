package export

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/i474232898/climate-data-explorer/internal/chart"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Funcs are the template helpers shared with the dashboard page.
var Funcs = template.FuncMap{
	"stripeColor": func(v float64) template.CSS { return template.CSS(chart.StripeColor(v)) },
	"decadeColor": func(v float64) template.CSS { return template.CSS(chart.DecadeColor(v)) },
}

var reportTemplate = template.Must(
	template.New("report.html.tmpl").Funcs(Funcs).ParseFS(templateFS, "templates/report.html.tmpl"),
)

// ChartsJSON marshals chart specs for inline embedding in a script tag.
func ChartsJSON(charts map[string]chart.Spec) (template.JS, error) {
	if charts == nil {
		charts = map[string]chart.Spec{}
	}
	b, err := json.Marshal(charts)
	if err != nil {
		return "", fmt.Errorf("marshal chart specs: %w", err)
	}
	return template.JS(b), nil
}

// WriteHTML renders a standalone HTML report of the snapshot.
func WriteHTML(w io.Writer, s Snapshot) error {
	chartsJSON, err := ChartsJSON(s.Charts)
	if err != nil {
		return err
	}
	data := struct {
		Snapshot
		ChartsJSON template.JS
	}{s, chartsJSON}

	if err := reportTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}
