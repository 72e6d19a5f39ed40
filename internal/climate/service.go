package climate

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/i474232898/climate-data-explorer/internal/logger"
)

// Defaults used when a request leaves a filter unset.
const (
	DefaultCountry   = "South Korea"
	DefaultFromYear  = 1900
	DefaultWindow    = 10
	MaxCompared      = 5
	fallbackCompared = 3
)

// DefaultComparison lists the countries preselected for comparison.
var DefaultComparison = []string{"South Korea", "Japan", "United Kingdom", "Germany", "Australia"}

// Query is a filter selection from the dashboard.
type Query struct {
	Country  string
	Range    YearRange
	Baseline Baseline
	Window   int
}

// View is everything the dashboard renders for one query.
type View struct {
	Query    Query         `json:"-"`
	Annual   []AnnualPoint `json:"annual"`
	Result   AnomalyResult `json:"result"`
	Decades  []DecadePoint `json:"decades"`
	Summary  Summary       `json:"summary"`
	Trend    TrendLine     `json:"trend"`
	HasTrend bool          `json:"hasTrend"`
	Story    Story         `json:"story"`
	HasStory bool          `json:"hasStory"`
}

// Service owns the loaded dataset and answers aggregation queries.
type Service struct {
	source Source
	cache  Cache
	log    logger.Logger

	mu         sync.RWMutex
	dataset    *Dataset
	report     LoadReport
	loadedAt   time.Time
	generation int
}

// NewService creates a Service. Call Reload before serving queries.
func NewService(source Source, cache Cache, log logger.Logger) *Service {
	return &Service{
		source: source,
		cache:  cache,
		log:    log.WithField("component", "climate_service"),
	}
}

// NewServiceWithDataset creates a Service around an already loaded dataset.
func NewServiceWithDataset(d *Dataset, cache Cache, log logger.Logger) *Service {
	s := NewService(nil, cache, log)
	s.swap(d, LoadReport{Rows: d.Len(), Kept: d.Len()})
	return s
}

// Reload reads the source again and atomically replaces the dataset.
// On failure the previous dataset stays in place.
func (s *Service) Reload(ctx context.Context) error {
	if s.source == nil {
		return fmt.Errorf("no dataset source configured")
	}

	rc, err := s.source.Open(ctx)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.source.Name(), err)
	}
	defer rc.Close()

	d, report, err := Load(rc, s.log.WithField("source", s.source.Name()))
	if err != nil {
		return fmt.Errorf("load %s: %w", s.source.Name(), err)
	}

	s.swap(d, report)
	s.log.Infof("dataset loaded from %s: %s records, %d countries, %d rows skipped",
		s.source.Name(), FormatCount(report.Kept), len(d.Countries()), report.Skipped)
	return nil
}

func (s *Service) swap(d *Dataset, report LoadReport) {
	s.mu.Lock()
	s.dataset = d
	s.report = report
	s.loadedAt = time.Now().UTC()
	s.generation++
	s.mu.Unlock()

	if s.cache != nil {
		s.cache.Purge()
	}
}

func (s *Service) current() (*Dataset, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dataset == nil {
		return nil, 0, ErrNoDataset
	}
	return s.dataset, s.generation, nil
}

// Status describes the loaded dataset.
type Status struct {
	Records   int        `json:"records"`
	Countries int        `json:"countries"`
	Years     YearRange  `json:"years"`
	Report    LoadReport `json:"report"`
	LoadedAt  time.Time  `json:"loadedAt"`
}

// Status reports on the current dataset. The dataset and its load report
// are read together so a concurrent reload cannot mix them.
func (s *Service) Status() (Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dataset == nil {
		return Status{}, ErrNoDataset
	}
	return Status{
		Records:   s.dataset.Len(),
		Countries: len(s.dataset.Countries()),
		Years:     s.dataset.YearBounds(),
		Report:    s.report,
		LoadedAt:  s.loadedAt,
	}, nil
}

// Countries returns the sorted country list.
func (s *Service) Countries() ([]string, error) {
	d, _, err := s.current()
	if err != nil {
		return nil, err
	}
	return d.Countries(), nil
}

// Bounds returns the year span of the dataset.
func (s *Service) Bounds() (YearRange, error) {
	d, _, err := s.current()
	if err != nil {
		return YearRange{}, err
	}
	return d.YearBounds(), nil
}

// DefaultCountry picks South Korea when present, else the first country.
func (s *Service) DefaultCountry() string {
	d, _, err := s.current()
	if err != nil || d.Len() == 0 {
		return ""
	}
	if d.HasCountry(DefaultCountry) {
		return DefaultCountry
	}
	return d.Countries()[0]
}

// DefaultRange is 1900 to the last year, clamped to the data.
func (s *Service) DefaultRange() YearRange {
	d, _, err := s.current()
	if err != nil {
		return YearRange{}
	}
	b := d.YearBounds()
	from := DefaultFromYear
	if from < b.From {
		from = b.From
	}
	if from > b.To {
		from = b.From
	}
	return YearRange{From: from, To: b.To}
}

// DefaultComparison returns the preselected countries present in the data,
// falling back to the first three countries.
func (s *Service) DefaultComparison() []string {
	d, _, err := s.current()
	if err != nil {
		return nil
	}
	var out []string
	for _, c := range DefaultComparison {
		if d.HasCountry(c) {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		all := d.Countries()
		if len(all) > fallbackCompared {
			all = all[:fallbackCompared]
		}
		out = all
	}
	if len(out) > MaxCompared {
		out = out[:MaxCompared]
	}
	return out
}

// Annual returns the memoized yearly means of a country over all years.
func (s *Service) Annual(country string) ([]AnnualPoint, error) {
	d, gen, err := s.current()
	if err != nil {
		return nil, err
	}
	if !d.HasCountry(country) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCountry, country)
	}

	key := strconv.Itoa(gen) + ":" + country
	if s.cache != nil {
		if points, ok := s.cache.Get(key); ok {
			return points, nil
		}
	}

	points := AnnualMeans(d.Records(country))
	for _, p := range points {
		if !p.Complete() {
			s.log.Warnf("%s %d has %d of %d months; excluded from anomalies", country, p.Year, p.Months, MonthsPerYear)
		}
	}
	if s.cache != nil {
		s.cache.Put(key, points)
	}
	return points, nil
}

// View computes every derived series for q. ErrNoData means the country has
// no years inside the range. A baseline missing from the data is not an
// error: the result carries the insufficient data message instead.
func (s *Service) View(q Query) (View, error) {
	annual, err := s.Annual(q.Country)
	if err != nil {
		return View{}, err
	}

	v := View{Query: q, Annual: FilterYears(annual, q.Range), Decades: []DecadePoint{}}
	if len(v.Annual) == 0 {
		return v, fmt.Errorf("%w for %s in %d-%d", ErrNoData, q.Country, q.Range.From, q.Range.To)
	}

	v.Result = s.anomalies(annual, v.Annual, q)
	if !v.Result.OK() {
		s.log.Debugf("anomalies for %s: %s", q.Country, v.Result.Message)
		return v, nil
	}

	v.Decades = DecadesFrom(DecadeMeans(v.Result.Points), q.Range.From)
	v.Summary, _ = Summarize(v.Result.Points)
	v.Trend, v.HasTrend = Trend(AnomalySeries(v.Result.Points))
	v.Story, v.HasStory = BuildStory(q.Country, q.Range, v.Result)
	return v, nil
}

// anomalies uses the baseline of the full record so narrowing the year
// range never moves the reference point. Partial years are left out of
// both the baseline and the series.
func (s *Service) anomalies(full, filtered []AnnualPoint, q Query) AnomalyResult {
	mean, ok := BaselineMean(TemperatureSeries(CompleteYears(full)), q.Baseline)
	if !ok {
		return AnomalyResult{Baseline: q.Baseline, Window: q.Window, Points: []AnomalyPoint{}, Message: MsgInsufficientData}
	}
	return AnomaliesFrom(TemperatureSeries(CompleteYears(filtered)), q.Baseline, mean, q.Window)
}

// Comparison is the multi-country view.
type Comparison struct {
	Series map[string][]AnomalyPoint `json:"series"`
	Stats  []CountryStats            `json:"stats"`
}

// Compare computes anomalies for several countries over the same range.
// Countries without data in range are left out of the stats.
func (s *Service) Compare(countries []string, r YearRange, baseline Baseline) (Comparison, error) {
	cmp := Comparison{Series: make(map[string][]AnomalyPoint), Stats: []CountryStats{}}
	for _, c := range countries {
		v, err := s.View(Query{Country: c, Range: r, Baseline: baseline, Window: 1})
		if err != nil {
			if errors.Is(err, ErrNoData) {
				continue
			}
			return Comparison{}, err
		}
		if !v.Result.OK() {
			continue
		}
		cmp.Series[c] = v.Result.Points
		cmp.Stats = append(cmp.Stats, CountryStats{
			Country:     c,
			AvgAnomaly:  round3(v.Summary.Average),
			MaxAnomaly:  round3(v.Summary.Hottest.Anomaly),
			MinAnomaly:  round3(v.Summary.Coldest.Anomaly),
			HottestYear: v.Summary.Hottest.Year,
			DataPoints:  v.Summary.DataPoints,
		})
	}
	return cmp, nil
}
