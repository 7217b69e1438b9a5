// Package app holds the application services and business logic.
package app

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"glucolog/internal/domain"
)

// Metrics receives a callback for every recorded reading.
type Metrics interface {
	ReadingRecorded(r domain.Reading, abnormal bool)
}

type nopMetrics struct{}

func (nopMetrics) ReadingRecorded(domain.Reading, bool) {}

// RecordInput is the entry-form payload.
type RecordInput struct {
	Day          string `json:"day" validate:"required,day"`
	Time         string `json:"time" validate:"required,clock"`
	GlucoseLevel *int   `json:"glucoseLevel" validate:"required,min=0,max=1000"`
	MealContext  string `json:"mealContext" validate:"required,mealcontext"`
}

// Recorded is a stored reading together with its classification.
type Recorded struct {
	Reading  domain.Reading `json:"reading"`
	Abnormal bool           `json:"abnormal"`
}

// ReadingService encapsulates reading entry and listing use cases.
type ReadingService struct {
	store    domain.ReadingStore
	validate *validator.Validate
	metrics  Metrics
	log      *slog.Logger
}

// NewReadingService creates a ReadingService backed by the given store.
func NewReadingService(store domain.ReadingStore, log *slog.Logger) *ReadingService {
	if log == nil {
		log = slog.Default()
	}
	return &ReadingService{store: store, validate: newValidator(), metrics: nopMetrics{}, log: log}
}

// WithMetrics installs a metrics sink.
func (s *ReadingService) WithMetrics(m Metrics) *ReadingService {
	if m != nil {
		s.metrics = m
	}
	return s
}

// Record validates and stores a new reading.
func (s *ReadingService) Record(ctx context.Context, in RecordInput) (Recorded, error) {
	in.Day = strings.TrimSpace(in.Day)
	in.Time = strings.TrimSpace(in.Time)
	if err := s.validate.StructCtx(ctx, in); err != nil {
		return Recorded{}, validationError(err)
	}
	mc, err := domain.ParseMealContext(in.MealContext)
	if err != nil {
		return Recorded{}, err
	}

	r := s.store.Append(domain.Reading{
		Day:          in.Day,
		Time:         in.Time,
		GlucoseLevel: *in.GlucoseLevel,
		MealContext:  mc,
	})
	abnormal := domain.IsAbnormal(r)
	s.metrics.ReadingRecorded(r, abnormal)

	s.log.InfoContext(ctx, "reading recorded",
		"id", r.ID, "day", r.Day, "mealContext", r.MealContext,
		"glucoseLevel", r.GlucoseLevel, "abnormal", abnormal)
	return Recorded{Reading: r, Abnormal: abnormal}, nil
}

// ListDay returns the readings for one calendar day, optionally narrowed to
// a meal context, ordered by time of day.
func (s *ReadingService) ListDay(ctx context.Context, day string, mc *domain.MealContext) ([]domain.Reading, error) {
	if _, err := domain.ParseDay(day, time.UTC); err != nil {
		return nil, err
	}
	items := slices.Collect(s.store.Filter(domain.All(domain.OnDay(day), contextFilter(mc))))
	slices.SortStableFunc(items, byDayTime)
	return items, nil
}

// ListRange returns readings whose day is in [from, to), in insertion order.
func (s *ReadingService) ListRange(ctx context.Context, from, to string, mc *domain.MealContext) ([]domain.Reading, error) {
	if _, err := domain.ParseDay(from, time.UTC); err != nil {
		return nil, err
	}
	if _, err := domain.ParseDay(to, time.UTC); err != nil {
		return nil, err
	}
	return slices.Collect(s.store.Filter(domain.All(domain.InRange(from, to), contextFilter(mc)))), nil
}

// ListRecent returns up to limit readings, most recently appended first.
func (s *ReadingService) ListRecent(ctx context.Context, limit int) ([]domain.Reading, error) {
	all := s.store.All()
	slices.Reverse(all)
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// Subscribe exposes store change notifications to driving adapters.
func (s *ReadingService) Subscribe(buffer int) (<-chan domain.StoreEvent, func()) {
	return s.store.Subscribe(buffer)
}

func contextFilter(mc *domain.MealContext) domain.Predicate {
	if mc == nil {
		return nil
	}
	return domain.WithMealContext(*mc)
}

func byDayTime(a, b domain.Reading) int {
	if c := strings.Compare(a.Day, b.Day); c != 0 {
		return c
	}
	return strings.Compare(a.Time, b.Time)
}
