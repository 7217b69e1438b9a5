package app

import (
	"math/rand/v2"

	"glucolog/internal/domain"
)

// band is an inclusive value range for demo readings.
type band struct{ lo, hi int }

func (b band) pick(rng *rand.Rand) int {
	return b.lo + rng.IntN(b.hi-b.lo+1)
}

// Seed fills store with demo data: a fasting reading at 07:00 and an
// after-meal reading at 13:00 for each of the last days days ending today.
// The middle week runs high so the weekly report has a visible trend.
// It returns the number of readings appended.
func Seed(store domain.ReadingStore, today string, days int, rng *rand.Rand) (int, error) {
	if _, err := domain.AddDays(today, 0); err != nil {
		return 0, err
	}
	n := 0
	for i := days - 1; i >= 0; i-- {
		day, _ := domain.AddDays(today, -i)

		var fasting, afterMeal band
		switch {
		case i < 7:
			fasting, afterMeal = band{80, 130}, band{110, 160}
		case i < 14:
			fasting, afterMeal = band{110, 150}, band{140, 200}
		default:
			fasting, afterMeal = band{90, 140}, band{120, 180}
		}

		store.Append(domain.Reading{Day: day, Time: "07:00", GlucoseLevel: fasting.pick(rng), MealContext: domain.Fasting})
		store.Append(domain.Reading{Day: day, Time: "13:00", GlucoseLevel: afterMeal.pick(rng), MealContext: domain.AfterMeal})
		n += 2
	}
	return n, nil
}
