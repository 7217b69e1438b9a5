package app_test

import (
	"context"
	"errors"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glucolog/internal/adapter/memory"
	"glucolog/internal/app"
	"glucolog/internal/domain"
)

type mockStore struct {
	appendFn func(r domain.Reading) domain.Reading
	allFn    func() []domain.Reading
}

func (m *mockStore) Append(r domain.Reading) domain.Reading {
	if m.appendFn != nil {
		return m.appendFn(r)
	}
	return r
}

func (m *mockStore) All() []domain.Reading {
	if m.allFn != nil {
		return m.allFn()
	}
	return nil
}

func (m *mockStore) Filter(match domain.Predicate) iter.Seq[domain.Reading] {
	return func(yield func(domain.Reading) bool) {
		for _, r := range m.All() {
			if match != nil && !match(r) {
				continue
			}
			if !yield(r) {
				return
			}
		}
	}
}

func (m *mockStore) Len() int        { return len(m.All()) }
func (m *mockStore) Version() uint64 { return 0 }
func (m *mockStore) Subscribe(int) (<-chan domain.StoreEvent, func()) {
	ch := make(chan domain.StoreEvent)
	return ch, func() {}
}

type recordingMetrics struct {
	readings []domain.Reading
	abnormal []bool
}

func (m *recordingMetrics) ReadingRecorded(r domain.Reading, abnormal bool) {
	m.readings = append(m.readings, r)
	m.abnormal = append(m.abnormal, abnormal)
}

func intPtr(v int) *int { return &v }

func TestRecord_Validation(t *testing.T) {
	called := false
	svc := app.NewReadingService(&mockStore{
		appendFn: func(r domain.Reading) domain.Reading { called = true; return r },
	}, nil)

	tests := []struct {
		name  string
		in    app.RecordInput
		field string
	}{
		{"missing level", app.RecordInput{Day: "2026-10-16", Time: "07:00", MealContext: "fasting"}, "glucoseLevel"},
		{"level too high", app.RecordInput{Day: "2026-10-16", Time: "07:00", GlucoseLevel: intPtr(1001), MealContext: "fasting"}, "glucoseLevel"},
		{"negative level", app.RecordInput{Day: "2026-10-16", Time: "07:00", GlucoseLevel: intPtr(-1), MealContext: "fasting"}, "glucoseLevel"},
		{"bad day", app.RecordInput{Day: "16/10/2026", Time: "07:00", GlucoseLevel: intPtr(100), MealContext: "fasting"}, "day"},
		{"bad time", app.RecordInput{Day: "2026-10-16", Time: "7am", GlucoseLevel: intPtr(100), MealContext: "fasting"}, "time"},
		{"bad meal context", app.RecordInput{Day: "2026-10-16", Time: "07:00", GlucoseLevel: intPtr(100), MealContext: "brunch"}, "mealContext"},
		{"missing meal context", app.RecordInput{Day: "2026-10-16", Time: "07:00", GlucoseLevel: intPtr(100)}, "mealContext"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Record(context.Background(), tc.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidReading)

			var verr *app.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Fields, tc.field)
		})
	}
	assert.False(t, called, "invalid input must not reach the store")
}

func TestRecord_Success(t *testing.T) {
	store := memory.New()
	metrics := &recordingMetrics{}
	svc := app.NewReadingService(store, nil).WithMetrics(metrics)

	got, err := svc.Record(context.Background(), app.RecordInput{
		Day: "2026-10-16", Time: "13:05", GlucoseLevel: intPtr(185), MealContext: "After Meal",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AfterMeal, got.Reading.MealContext)
	assert.Equal(t, 185, got.Reading.GlucoseLevel)
	assert.True(t, got.Abnormal)

	require.Len(t, store.All(), 1)
	assert.Equal(t, got.Reading, store.All()[0])
	require.Len(t, metrics.readings, 1)
	assert.True(t, metrics.abnormal[0])
}

func TestRecord_ZeroLevelAccepted(t *testing.T) {
	svc := app.NewReadingService(memory.New(), nil)
	got, err := svc.Record(context.Background(), app.RecordInput{
		Day: "2026-10-16", Time: "07:00", GlucoseLevel: intPtr(0), MealContext: "other",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, got.Reading.GlucoseLevel)
	assert.True(t, got.Abnormal)
}

func TestListDay(t *testing.T) {
	store := memory.New()
	store.Append(domain.Reading{Day: "2026-10-16", Time: "13:00", GlucoseLevel: 150, MealContext: domain.AfterMeal})
	store.Append(domain.Reading{Day: "2026-10-16", Time: "07:00", GlucoseLevel: 95, MealContext: domain.Fasting})
	store.Append(domain.Reading{Day: "2026-10-15", Time: "07:00", GlucoseLevel: 99, MealContext: domain.Fasting})
	svc := app.NewReadingService(store, nil)

	items, err := svc.ListDay(context.Background(), "2026-10-16", nil)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "07:00", items[0].Time)
	assert.Equal(t, "13:00", items[1].Time)

	fasting := domain.Fasting
	items, err = svc.ListDay(context.Background(), "2026-10-16", &fasting)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 95, items[0].GlucoseLevel)

	_, err = svc.ListDay(context.Background(), "yesterday", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidDay)
}

func TestListRange(t *testing.T) {
	store := memory.New()
	for _, d := range []string{"2026-10-10", "2026-10-12", "2026-10-14"} {
		store.Append(domain.Reading{Day: d, Time: "07:00", GlucoseLevel: 100, MealContext: domain.Fasting})
	}
	svc := app.NewReadingService(store, nil)

	items, err := svc.ListRange(context.Background(), "2026-10-10", "2026-10-14", nil)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = svc.ListRange(context.Background(), "2026-10-10", "soon", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidDay)
}

func TestListRecent(t *testing.T) {
	store := memory.New()
	for i := range 5 {
		store.Append(domain.Reading{GlucoseLevel: 100 + i})
	}
	svc := app.NewReadingService(store, nil)

	items, err := svc.ListRecent(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, 104, items[0].GlucoseLevel)
	assert.Equal(t, 102, items[2].GlucoseLevel)
}
