package domain

import (
	"fmt"
	"iter"
	"math"
)

// Average is the result of aggregating glucose levels. Mean is only
// meaningful when Count > 0.
type Average struct {
	Count int
	Mean  float64
}

// Valid reports whether any readings contributed to the average.
func (a Average) Valid() bool {
	return a.Count > 0
}

// Text renders the average for display, rounding down to whole mg/dL.
func (a Average) Text() string {
	if !a.Valid() {
		return "No data"
	}
	return fmt.Sprintf("%d mg/dL", int(math.Floor(a.Mean)))
}

// ComputeAverage averages the glucose level of every reading accepted by match.
func ComputeAverage(readings iter.Seq[Reading], match Predicate) Average {
	var (
		count int
		sum   int
	)
	for r := range readings {
		if match != nil && !match(r) {
			continue
		}
		count++
		sum += r.GlucoseLevel
	}
	if count == 0 {
		return Average{}
	}
	return Average{Count: count, Mean: float64(sum) / float64(count)}
}

// Window is a half-open range of calendar days [Start, End).
type Window struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Predicate matches readings inside the window.
func (w Window) Predicate() Predicate {
	return InRange(w.Start, w.End)
}

// WeekWindows returns the trailing 7-day window ending with today and the
// 7-day window immediately before it.
func WeekWindows(today string) (current, previous Window, err error) {
	end, err := AddDays(today, 1)
	if err != nil {
		return Window{}, Window{}, err
	}
	mid, _ := AddDays(today, -6)
	start, _ := AddDays(today, -13)
	return Window{Start: mid, End: end}, Window{Start: start, End: mid}, nil
}
