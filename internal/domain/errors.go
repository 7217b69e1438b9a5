package domain

import "errors"

var (
	// ErrInvalidReading indicates a reading failed validation.
	ErrInvalidReading = errors.New("invalid reading")
	// ErrInvalidMealContext indicates an unknown meal context.
	ErrInvalidMealContext = errors.New("invalid meal context")
	// ErrInvalidDay indicates a malformed calendar day.
	ErrInvalidDay = errors.New("invalid day")
	// ErrInvalidMonth indicates a malformed calendar month.
	ErrInvalidMonth = errors.New("invalid month")
	// ErrInvalidUnit indicates an unsupported glucose unit.
	ErrInvalidUnit = errors.New("invalid unit")
)

// IsInvalid reports whether err is one of the input validation errors.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalidReading) ||
		errors.Is(err, ErrInvalidMealContext) ||
		errors.Is(err, ErrInvalidDay) ||
		errors.Is(err, ErrInvalidMonth) ||
		errors.Is(err, ErrInvalidUnit)
}
