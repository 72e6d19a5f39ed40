package export

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/climate-data-explorer/internal/chart"
	"github.com/i474232898/climate-data-explorer/internal/climate"
	"github.com/i474232898/climate-data-explorer/internal/common"
)

// ErrNothingToExport is returned when the view carries no anomaly data.
var ErrNothingToExport = errors.New("nothing to export")

// Snapshot freezes a dashboard view for export.
type Snapshot struct {
	ID          string
	GeneratedAt time.Time
	Country     string
	Period      climate.YearRange
	View        climate.View
	Charts      map[string]chart.Spec
}

// NewSnapshot stamps a view with a fresh export ID.
func NewSnapshot(v climate.View, charts map[string]chart.Spec) (Snapshot, error) {
	if !v.Result.OK() {
		return Snapshot{}, ErrNothingToExport
	}
	return Snapshot{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Country:     v.Query.Country,
		Period:      v.Query.Range,
		View:        v,
		Charts:      charts,
	}, nil
}

// FileName builds "<Country>_<suffix>.<ext>", e.g. South_Korea_annual_anomaly.csv.
func FileName(country, suffix, ext string) string {
	return common.FileSlug(country) + "_" + suffix + "." + ext
}
