package httpapi

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/climate-data-explorer/internal/chart"
	"github.com/i474232898/climate-data-explorer/internal/climate"
	"github.com/i474232898/climate-data-explorer/internal/export"
)

// chartsFor builds the Vega-Lite specs of a single-country view.
func chartsFor(q filterQuery, v climate.View) map[string]chart.Spec {
	return map[string]chart.Spec{
		"timeseries": chart.TimeSeries(q.Country, v.Query.Range, v.Result, v.Trend, v.HasTrend, q.chartOptions()),
		"stripes":    chart.Stripes(q.Country, v.Query.Range, v.Result.Points),
		"decades":    chart.Decades(v.Decades),
	}
}

func (h *handler) chartSpec(c *fiber.Ctx) error {
	kind := c.Params("kind")
	if kind == "compare" {
		_, cmp, err := h.comparison(c)
		if err != nil {
			return err
		}
		return c.JSON(chart.Comparison(cmp))
	}

	q, v, err := h.viewFor(c)
	if err != nil {
		return err
	}
	if err := requireResult(v); err != nil {
		return err
	}
	spec, ok := chartsFor(q, v)[kind]
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "unknown chart: "+kind)
	}
	return c.JSON(spec)
}

func (h *handler) chartPNG(c *fiber.Ctx) error {
	kind := c.Params("kind")
	if kind != "timeseries" && kind != "stripes" {
		return fiber.NewError(fiber.StatusNotFound, "no image for chart: "+kind)
	}

	q, v, err := h.viewFor(c)
	if err != nil {
		return err
	}
	if err := requireResult(v); err != nil {
		return err
	}

	var buf bytes.Buffer
	if kind == "timeseries" {
		err = chart.RenderTimeSeriesPNG(&buf, q.Country, v.Result, v.Trend, v.HasTrend, q.chartOptions())
	} else {
		err = chart.RenderStripesPNG(&buf, q.Country, v.Query.Range, v.Result.Points)
	}
	if err != nil {
		if errors.Is(err, chart.ErrTooFewPoints) {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
		h.log.Errorf("render %s chart for %s: %v", kind, q.Country, err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render chart")
	}

	c.Attachment(export.FileName(q.Country, kind, "png"))
	return c.Send(buf.Bytes())
}
