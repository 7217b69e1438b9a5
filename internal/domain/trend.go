package domain

import (
	"fmt"
	"math"
)

// Change is a signed percentage change between two averages. Defined is
// false when no comparison is available.
type Change struct {
	Percent float64
	Defined bool
}

// Direction summarises the sign of a change.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionFlat Direction = "flat"
	DirectionNone Direction = "none"
)

// PercentChange returns ((current-previous)/previous)*100. The result is
// undefined when previous <= 0.
func PercentChange(current, previous float64) Change {
	if previous <= 0 {
		return Change{}
	}
	return Change{Percent: (current - previous) / previous * 100, Defined: true}
}

// Direction reports whether the change is an increase, a decrease, zero, or
// not comparable.
func (c Change) Direction() Direction {
	switch {
	case !c.Defined:
		return DirectionNone
	case c.Percent > 0:
		return DirectionUp
	case c.Percent < 0:
		return DirectionDown
	}
	return DirectionFlat
}

// Rounded returns the percentage rounded to one decimal place.
func (c Change) Rounded() float64 {
	return math.Round(c.Percent*10) / 10
}

// Text renders the change for display.
func (c Change) Text() string {
	switch c.Direction() {
	case DirectionUp:
		return fmt.Sprintf("↑ %.1f%%", c.Rounded())
	case DirectionDown:
		return fmt.Sprintf("↓ %.1f%%", -c.Rounded())
	case DirectionFlat:
		return "No change"
	}
	return "No comparison"
}
