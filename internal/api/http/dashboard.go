package httpapi

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/climate-data-explorer/internal/chart"
	"github.com/i474232898/climate-data-explorer/internal/climate"
	"github.com/i474232898/climate-data-explorer/internal/export"
	"github.com/i474232898/climate-data-explorer/internal/web"
)

// dashboard re-renders the whole page for the current filters. Filter
// combinations without data produce a warning panel, not an error page.
func (h *handler) dashboard(c *fiber.Ctx) error {
	countries, err := h.svc.Countries()
	if err != nil {
		return h.domainError("", err)
	}
	status, err := h.svc.Status()
	if err != nil {
		return h.domainError("", err)
	}

	var q filterQuery
	bindErr := q.bind(c, h.svc, h.opts)

	page := web.Page{
		Countries: countries,
		Bounds:    status.Years,
		Status:    status,
		Filters: web.Filters{
			Country:           q.Country,
			From:              q.From,
			To:                q.To,
			Window:            q.Window,
			ShowTrend:         q.ShowTrend,
			ShowMovingAverage: q.ShowMovingAverage,
			Baseline:          climate.Baseline{Start: q.BaselineStart, End: q.BaselineEnd},
		},
	}
	charts := make(map[string]chart.Spec)

	if bindErr != nil {
		page.Warning = filterWarning(q, bindErr)
		page.Filters.Compare = h.compareSelection(c)
	} else {
		if err := h.dashboardView(q, &page, charts); err != nil {
			return err
		}
		h.dashboardComparison(c, q, &page, charts)
	}

	chartsJSON, err := export.ChartsJSON(charts)
	if err != nil {
		h.log.Errorf("dashboard charts: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render dashboard")
	}
	page.ChartsJSON = chartsJSON

	var buf bytes.Buffer
	if err := web.Render(&buf, page); err != nil {
		h.log.Errorf("dashboard: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render dashboard")
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// filterWarning explains rejected filters on the page. An inverted year
// range selects nothing, so it reads as missing data.
func filterWarning(q filterQuery, err error) string {
	if q.From > q.To {
		return noDataMessage(q.Country)
	}
	return "Invalid filters: " + err.Error() + "."
}

func (h *handler) dashboardView(q filterQuery, page *web.Page, charts map[string]chart.Spec) error {
	v, err := h.svc.View(q.query())
	switch {
	case errors.Is(err, climate.ErrNoData):
		page.Warning = noDataMessage(q.Country)
	case errors.Is(err, climate.ErrUnknownCountry):
		page.Warning = fmt.Sprintf("Unknown country: %s.", q.Country)
	case err != nil:
		return h.domainError(q.Country, err)
	case !v.Result.OK():
		page.Warning = fmt.Sprintf("Insufficient data to compute anomalies for %s against the %s baseline.", q.Country, page.Filters.Baseline)
	default:
		page.View = &v
		for name, spec := range chartsFor(q, v) {
			charts[name] = spec
		}
	}
	return nil
}

func (h *handler) compareSelection(c *fiber.Ctx) []string {
	selected := queryList(c, "compare")
	if len(selected) == 0 {
		selected = h.svc.DefaultComparison()
	}
	return selected
}

func (h *handler) dashboardComparison(c *fiber.Ctx, q filterQuery, page *web.Page, charts map[string]chart.Spec) {
	selected := h.compareSelection(c)
	page.Filters.Compare = selected

	if len(selected) > climate.MaxCompared {
		page.CompareWarning = fmt.Sprintf("Select at most %d countries to compare.", climate.MaxCompared)
		return
	}

	cmp, err := h.svc.Compare(selected, climate.YearRange{From: q.From, To: q.To}, page.Filters.Baseline)
	switch {
	case errors.Is(err, climate.ErrUnknownCountry):
		page.CompareWarning = err.Error()
	case err != nil:
		h.log.Errorf("dashboard comparison: %v", err)
		page.CompareWarning = "Comparison unavailable."
	case len(cmp.Stats) == 0:
		page.CompareWarning = "No data available for the selected countries."
	default:
		page.Comparison = &cmp
		charts["compare"] = chart.Comparison(cmp)
	}
}
