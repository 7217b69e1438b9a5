package app

import (
	"context"
	"fmt"
	"slices"
	"time"

	"glucolog/internal/domain"
)

// ReportService encapsulates summary, trend and calendar use cases.
type ReportService struct {
	store domain.ReadingStore
}

// NewReportService creates a ReportService backed by the given store.
func NewReportService(store domain.ReadingStore) *ReportService {
	return &ReportService{store: store}
}

// Summary is an average ready for the wire. Mean is nil when there is no data.
type Summary struct {
	Count int      `json:"count"`
	Mean  *float64 `json:"mean"`
	Unit  string   `json:"unit"`
	Text  string   `json:"text"`
}

func newSummary(a domain.Average, unit string) Summary {
	s := Summary{Count: a.Count, Unit: unit, Text: a.Text()}
	if a.Valid() {
		m := domain.ConvertGlucose(a.Mean, domain.UnitMgdl, unit)
		s.Mean = &m
		if unit == domain.UnitMmol {
			s.Text = fmt.Sprintf("%.1f %s", m, unit)
		}
	}
	return s
}

// Trend is a percent change ready for the wire. Percent is nil when no
// comparison is available.
type Trend struct {
	Percent   *float64         `json:"percent"`
	Direction domain.Direction `json:"direction"`
	Text      string           `json:"text"`
}

func newTrend(c domain.Change) Trend {
	t := Trend{Direction: c.Direction(), Text: c.Text()}
	if c.Defined {
		p := c.Percent
		t.Percent = &p
	}
	return t
}

// ChartPoint is one bar of the weekly chart.
type ChartPoint struct {
	Day          string  `json:"day"`
	Time         string  `json:"time"`
	GlucoseLevel float64 `json:"glucoseLevel"`
	Abnormal     bool    `json:"abnormal"`
}

// WeeklyReport compares the trailing 7 days with the 7 days before them.
type WeeklyReport struct {
	MealContext    domain.MealContext `json:"mealContext"`
	Today          string             `json:"today"`
	CurrentWindow  domain.Window      `json:"currentWindow"`
	PreviousWindow domain.Window      `json:"previousWindow"`
	Current        Summary            `json:"current"`
	Previous       Summary            `json:"previous"`
	Change         Trend              `json:"change"`
	Chart          []ChartPoint       `json:"chart"`
}

// DayMark is one cell of the calendar.
type DayMark struct {
	Day      string `json:"day"`
	Count    int    `json:"count"`
	Abnormal bool   `json:"abnormal"`
}

// HistoryEntry is a reading with its classification.
type HistoryEntry struct {
	domain.Reading
	Status string `json:"status"`
}

// DailySummary averages one day's readings for a meal context.
func (s *ReportService) DailySummary(ctx context.Context, day string, mc domain.MealContext, unit string) (Summary, error) {
	if _, err := domain.ParseDay(day, time.UTC); err != nil {
		return Summary{}, err
	}
	unit, err := domain.ParseUnit(unit)
	if err != nil {
		return Summary{}, err
	}
	avg := domain.ComputeAverage(s.store.Filter(nil), domain.All(domain.OnDay(day), domain.WithMealContext(mc)))
	return newSummary(avg, unit), nil
}

// Weekly builds the 7-day report for a meal context, with values in unit.
func (s *ReportService) Weekly(ctx context.Context, today string, mc domain.MealContext, unit string) (*WeeklyReport, error) {
	unit, err := domain.ParseUnit(unit)
	if err != nil {
		return nil, err
	}
	cur, prev, err := domain.WeekWindows(today)
	if err != nil {
		return nil, err
	}
	byContext := domain.WithMealContext(mc)

	// One snapshot for the whole report so the numbers agree with the chart.
	snap := s.store.All()
	current := domain.ComputeAverage(slices.Values(snap), domain.All(cur.Predicate(), byContext))
	previous := domain.ComputeAverage(slices.Values(snap), domain.All(prev.Predicate(), byContext))

	var change domain.Change
	if current.Valid() {
		change = domain.PercentChange(current.Mean, previous.Mean)
	}

	var chartReadings []domain.Reading
	for _, r := range snap {
		if cur.Predicate()(r) && byContext(r) {
			chartReadings = append(chartReadings, r)
		}
	}
	slices.SortStableFunc(chartReadings, byDayTime)
	chart := make([]ChartPoint, 0, len(chartReadings))
	for _, r := range chartReadings {
		chart = append(chart, ChartPoint{
			Day:          r.Day,
			Time:         r.Time,
			GlucoseLevel: domain.ConvertGlucose(float64(r.GlucoseLevel), domain.UnitMgdl, unit),
			Abnormal:     domain.IsAbnormal(r),
		})
	}

	return &WeeklyReport{
		MealContext:    mc,
		Today:          today,
		CurrentWindow:  cur,
		PreviousWindow: prev,
		Current:        newSummary(current, unit),
		Previous:       newSummary(previous, unit),
		Change:         newTrend(change),
		Chart:          chart,
	}, nil
}

// Calendar returns one mark per day of month ("YYYY-MM"). Count covers every
// reading of the day; Abnormal only considers readings tagged mc.
func (s *ReportService) Calendar(ctx context.Context, month string, mc domain.MealContext) ([]DayMark, error) {
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidMonth, month)
	}
	next := first.AddDate(0, 1, 0)
	start, end := first.Format(domain.DayLayout), next.Format(domain.DayLayout)

	marks := make([]DayMark, 0, 31)
	index := make(map[string]int, 31)
	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		day := d.Format(domain.DayLayout)
		index[day] = len(marks)
		marks = append(marks, DayMark{Day: day})
	}

	for r := range s.store.Filter(domain.InRange(start, end)) {
		i, ok := index[r.Day]
		if !ok {
			continue
		}
		m := &marks[i]
		m.Count++
		if r.MealContext == mc && domain.IsAbnormal(r) {
			m.Abnormal = true
		}
	}
	return marks, nil
}

// History lists a day's readings ordered by time, each with its status.
func (s *ReportService) History(ctx context.Context, day string) ([]HistoryEntry, error) {
	if _, err := domain.ParseDay(day, time.UTC); err != nil {
		return nil, err
	}
	items := slices.Collect(s.store.Filter(domain.OnDay(day)))
	slices.SortStableFunc(items, byDayTime)
	out := make([]HistoryEntry, 0, len(items))
	for _, r := range items {
		out = append(out, HistoryEntry{Reading: r, Status: domain.Status(r)})
	}
	return out, nil
}
