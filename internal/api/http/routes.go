package httpapi

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/climate-data-explorer/internal/climate"
	"github.com/i474232898/climate-data-explorer/internal/logger"
)

var validate = validator.New()

// Options carries the configured defaults for unset filters.
type Options struct {
	Baseline climate.Baseline
	Window   int
}

type handler struct {
	svc  *climate.Service
	opts Options
	log  logger.Logger
}

// ErrorHandler is the centralized Fiber error handler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *climate.Service, opts Options, log logger.Logger) {
	if opts.Window < 1 {
		opts.Window = climate.DefaultWindow
	}
	if opts.Baseline == (climate.Baseline{}) {
		opts.Baseline = climate.DefaultBaseline
	}
	h := &handler{svc: service, opts: opts, log: log.WithField("component", "http")}

	app.Get("/", h.dashboard)

	v1 := app.Group("/api/v1")
	v1.Get("/countries", h.countries)

	cl := v1.Group("/climate")
	cl.Get("/annual", h.annual)
	cl.Get("/anomalies", h.anomalies)
	cl.Get("/decades", h.decades)
	cl.Get("/summary", h.summary)
	cl.Get("/story", h.story)
	cl.Get("/compare", h.compare)

	v1.Get("/charts/:kind", h.chartSpec)
	v1.Get("/charts/:kind/png", h.chartPNG)

	ex := v1.Group("/export")
	ex.Get("/annual.csv", h.exportAnnualCSV)
	ex.Get("/decades.csv", h.exportDecadeCSV)
	ex.Get("/report.html", h.exportHTML)
	ex.Get("/report.xlsx", h.exportXLSX)
}

func noDataMessage(country string) string {
	return fmt.Sprintf("No data available for %s in the selected year range.", country)
}

// viewFor binds the filters and computes the view, mapping domain errors to
// HTTP errors.
func (h *handler) viewFor(c *fiber.Ctx) (filterQuery, climate.View, error) {
	var q filterQuery
	if _, err := h.svc.Bounds(); err != nil {
		return q, climate.View{}, h.domainError("", err)
	}
	if err := q.bind(c, h.svc, h.opts); err != nil {
		return q, climate.View{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	v, err := h.svc.View(q.query())
	if err != nil {
		return q, v, h.domainError(q.Country, err)
	}
	return q, v, nil
}

func (h *handler) domainError(country string, err error) error {
	switch {
	case errors.Is(err, climate.ErrNoDataset):
		return fiber.NewError(fiber.StatusServiceUnavailable, "dataset not loaded")
	case errors.Is(err, climate.ErrUnknownCountry):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, climate.ErrNoData):
		return fiber.NewError(fiber.StatusNotFound, noDataMessage(country))
	default:
		h.log.Errorf("query for %s failed: %v", country, err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to compute climate data")
	}
}

// requireResult rejects views whose anomalies could not be computed.
func requireResult(v climate.View) error {
	if v.Result.OK() {
		return nil
	}
	msg := v.Result.Message
	if msg == "" {
		msg = climate.MsgInsufficientData
	}
	return fiber.NewError(fiber.StatusUnprocessableEntity, msg)
}

func (h *handler) countries(c *fiber.Ctx) error {
	countries, err := h.svc.Countries()
	if err != nil {
		return h.domainError("", err)
	}
	status, err := h.svc.Status()
	if err != nil {
		return h.domainError("", err)
	}
	return c.JSON(fiber.Map{
		"countries": countries,
		"years":     status.Years,
		"status":    status,
		"defaults": fiber.Map{
			"country":  h.svc.DefaultCountry(),
			"range":    h.svc.DefaultRange(),
			"window":   h.opts.Window,
			"baseline": h.opts.Baseline,
			"compare":  h.svc.DefaultComparison(),
		},
	})
}

func (h *handler) annual(c *fiber.Ctx) error {
	q, v, err := h.viewFor(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"country": q.Country,
		"period":  v.Query.Range,
		"annual":  v.Annual,
	})
}

func (h *handler) anomalies(c *fiber.Ctx) error {
	q, v, err := h.viewFor(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"country": q.Country,
		"period":  v.Query.Range,
		"result":  v.Result,
	})
}

func (h *handler) decades(c *fiber.Ctx) error {
	q, v, err := h.viewFor(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"country": q.Country,
		"period":  v.Query.Range,
		"decades": v.Decades,
		"message": v.Result.Message,
	})
}

func (h *handler) summary(c *fiber.Ctx) error {
	q, v, err := h.viewFor(c)
	if err != nil {
		return err
	}
	if err := requireResult(v); err != nil {
		return err
	}
	resp := fiber.Map{
		"country":  q.Country,
		"period":   v.Query.Range,
		"baseline": v.Result.Baseline,
		"summary":  v.Summary,
	}
	if v.HasTrend {
		resp["trend"] = fiber.Map{"slope": v.Trend.Slope, "perDecade": v.Trend.PerDecade()}
	}
	return c.JSON(resp)
}

func (h *handler) story(c *fiber.Ctx) error {
	_, v, err := h.viewFor(c)
	if err != nil {
		return err
	}
	if err := requireResult(v); err != nil {
		return err
	}
	if !v.HasStory {
		return fiber.NewError(fiber.StatusUnprocessableEntity, climate.MsgInsufficientData)
	}
	return c.JSON(fiber.Map{
		"story":    v.Story,
		"sections": v.Story.Sections(),
	})
}

func (h *handler) comparison(c *fiber.Ctx) (compareQuery, climate.Comparison, error) {
	var q compareQuery
	if _, err := h.svc.Bounds(); err != nil {
		return q, climate.Comparison{}, h.domainError("", err)
	}
	if err := q.bind(c, h.svc); err != nil {
		return q, climate.Comparison{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	cmp, err := h.svc.Compare(q.Countries, climate.YearRange{From: q.From, To: q.To}, h.opts.Baseline)
	if err != nil {
		return q, cmp, h.domainError("", err)
	}
	if len(cmp.Stats) == 0 {
		return q, cmp, fiber.NewError(fiber.StatusNotFound, "No data available for the selected countries in the selected year range.")
	}
	return q, cmp, nil
}

func (h *handler) compare(c *fiber.Ctx) error {
	q, cmp, err := h.comparison(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"countries": q.Countries,
		"period":    climate.YearRange{From: q.From, To: q.To},
		"series":    cmp.Series,
		"stats":     cmp.Stats,
	})
}
