package httpapi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/climate-data-explorer/internal/chart"
	"github.com/i474232898/climate-data-explorer/internal/climate"
	"github.com/i474232898/climate-data-explorer/internal/common"
)

// filterQuery holds the dashboard filters shared by every endpoint.
type filterQuery struct {
	Country           string `validate:"required"`
	From              int    `validate:"gte=0"`
	To                int    `validate:"gtefield=From"`
	Window            int    `validate:"min=1,max=50"`
	BaselineStart     int    `validate:"gte=0"`
	BaselineEnd       int    `validate:"gtefield=BaselineStart"`
	ShowTrend         bool
	ShowMovingAverage bool
}

func (q filterQuery) query() climate.Query {
	return climate.Query{
		Country:  q.Country,
		Range:    climate.YearRange{From: q.From, To: q.To},
		Baseline: climate.Baseline{Start: q.BaselineStart, End: q.BaselineEnd},
		Window:   q.Window,
	}
}

func (q filterQuery) chartOptions() chart.Options {
	return chart.Options{ShowTrend: q.ShowTrend, ShowMovingAverage: q.ShowMovingAverage}
}

// bind fills unset filters from the dataset and configured defaults.
func (q *filterQuery) bind(c *fiber.Ctx, svc *climate.Service, opts Options) error {
	q.Country = strings.TrimSpace(c.Query("country"))
	if q.Country == "" {
		q.Country = svc.DefaultCountry()
	}

	r := svc.DefaultRange()
	var err error
	if q.From, err = queryInt(c, "from", r.From); err != nil {
		return err
	}
	if q.To, err = queryInt(c, "to", r.To); err != nil {
		return err
	}
	if q.Window, err = queryInt(c, "window", opts.Window); err != nil {
		return err
	}
	if q.BaselineStart, err = queryInt(c, "baselineStart", opts.Baseline.Start); err != nil {
		return err
	}
	if q.BaselineEnd, err = queryInt(c, "baselineEnd", opts.Baseline.End); err != nil {
		return err
	}
	if q.ShowTrend, err = queryBool(c, "trend", true); err != nil {
		return err
	}
	if q.ShowMovingAverage, err = queryBool(c, "ma", true); err != nil {
		return err
	}
	if err := validate.Struct(q); err != nil {
		return validationError(err)
	}
	return nil
}

// compareQuery holds the parameters of the comparison endpoints.
type compareQuery struct {
	Countries []string `validate:"min=1,dive,required"`
	From      int      `validate:"gte=0"`
	To        int      `validate:"gtefield=From"`
}

func (q *compareQuery) bind(c *fiber.Ctx, svc *climate.Service) error {
	q.Countries = queryList(c, "countries")
	if len(q.Countries) == 0 {
		q.Countries = queryList(c, "compare")
	}
	if len(q.Countries) == 0 {
		q.Countries = svc.DefaultComparison()
	}
	if len(q.Countries) > climate.MaxCompared {
		return fmt.Errorf("at most %d countries can be compared", climate.MaxCompared)
	}

	r := svc.DefaultRange()
	var err error
	if q.From, err = queryInt(c, "from", r.From); err != nil {
		return err
	}
	if q.To, err = queryInt(c, "to", r.To); err != nil {
		return err
	}
	if err := validate.Struct(q); err != nil {
		return validationError(err)
	}
	return nil
}

func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q is not a whole number", key, s)
	}
	return n, nil
}

// queryBool reads the first value of key, so a checkbox followed by a
// hidden "false" input resolves to the checkbox when it is ticked.
func queryBool(c *fiber.Ctx, key string, def bool) (bool, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return def, nil
	}
	if s == "on" {
		return true, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %q is not a boolean", key, s)
	}
	return b, nil
}

// queryList collects a repeated key. Values are not split on commas since
// some country names contain one.
func queryList(c *fiber.Ctx, key string) []string {
	var values []string
	for _, v := range c.Context().QueryArgs().PeekMulti(key) {
		values = append(values, string(v))
	}
	return common.Distinct(values)
}
