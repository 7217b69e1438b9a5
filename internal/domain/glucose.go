// Package domain contains the core business entities and interfaces.
package domain

import (
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DayLayout is the wire and storage format of a calendar day.
const DayLayout = "2006-01-02"

// TimeLayout is the wire and storage format of a time of day.
const TimeLayout = "15:04"

// MealContext tags when, relative to eating, a reading was taken.
type MealContext string

const (
	Fasting   MealContext = "fasting"
	AfterMeal MealContext = "after_meal"
	Other     MealContext = "other"
)

// MealContexts lists every known context in display order.
var MealContexts = []MealContext{Fasting, AfterMeal, Other}

// Label returns the display label for the context.
func (m MealContext) Label() string {
	switch m {
	case Fasting:
		return "Fasting"
	case AfterMeal:
		return "After Meal"
	case Other:
		return "Other"
	}
	return string(m)
}

// Valid reports whether m is one of the known contexts.
func (m MealContext) Valid() bool {
	return m == Fasting || m == AfterMeal || m == Other
}

// ParseMealContext accepts the wire form, the display label, or the legacy
// "Post-meal" label, which is folded into AfterMeal.
func ParseMealContext(s string) (MealContext, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fasting":
		return Fasting, nil
	case "after_meal", "after meal", "aftermeal", "post-meal", "post_meal", "postmeal":
		return AfterMeal, nil
	case "other":
		return Other, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMealContext, s)
}

// Reading is a single recorded glucose measurement. Readings are never
// mutated after they are appended to a store.
type Reading struct {
	ID           uuid.UUID   `json:"id"`
	Day          string      `json:"day"`
	Time         string      `json:"time"`
	GlucoseLevel int         `json:"glucoseLevel"`
	MealContext  MealContext `json:"mealContext"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// StoreEvent is emitted to subscribers after every append.
type StoreEvent struct {
	Version uint64  `json:"version"`
	Reading Reading `json:"reading"`
}

// ReadingStore is the port for the append-only record store.
type ReadingStore interface {
	Append(r Reading) Reading
	All() []Reading
	Filter(match Predicate) iter.Seq[Reading]
	Len() int
	Version() uint64
	Subscribe(buffer int) (<-chan StoreEvent, func())
}

// Predicate selects readings.
type Predicate func(Reading) bool

// OnDay matches readings taken on the given calendar day.
func OnDay(day string) Predicate {
	return func(r Reading) bool { return r.Day == day }
}

// InRange matches readings whose day falls in the half-open range [start, end).
// Days compare lexically because DayLayout is zero padded.
func InRange(start, end string) Predicate {
	return func(r Reading) bool { return r.Day >= start && r.Day < end }
}

// WithMealContext matches readings tagged with mc.
func WithMealContext(mc MealContext) Predicate {
	return func(r Reading) bool { return r.MealContext == mc }
}

// All matches readings accepted by every predicate. A nil predicate is
// skipped, and All() with no predicates matches everything.
func All(preds ...Predicate) Predicate {
	return func(r Reading) bool {
		for _, p := range preds {
			if p != nil && !p(r) {
				return false
			}
		}
		return true
	}
}

// ParseDay validates a "YYYY-MM-DD" string in loc.
func ParseDay(day string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DayLayout, day, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDay, day)
	}
	return t, nil
}

// AddDays shifts a day string by n calendar days.
func AddDays(day string, n int) (string, error) {
	t, err := ParseDay(day, time.UTC)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(DayLayout), nil
}

// LocalDay formats t as a calendar day in loc.
func LocalDay(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DayLayout)
}
