package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"glucolog/internal/domain"
)

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name        string
		current     float64
		previous    float64
		wantDefined bool
		wantPercent float64
		wantText    string
		wantDir     domain.Direction
	}{
		{"increase", 110, 100, true, 10, "↑ 10.0%", domain.DirectionUp},
		{"decrease", 90, 120, true, -25, "↓ 25.0%", domain.DirectionDown},
		{"flat", 100, 100, true, 0, "No change", domain.DirectionFlat},
		{"zero baseline", 100, 0, false, 0, "No comparison", domain.DirectionNone},
		{"negative baseline", 100, -5, false, 0, "No comparison", domain.DirectionNone},
		{"no current data", 0, 100, true, -100, "↓ 100.0%", domain.DirectionDown},
		{"rounding", 101.26, 100, true, 1.26, "↑ 1.3%", domain.DirectionUp},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := domain.PercentChange(tc.current, tc.previous)
			assert.Equal(t, tc.wantDefined, c.Defined)
			assert.InDelta(t, tc.wantPercent, c.Percent, 1e-9)
			assert.Equal(t, tc.wantText, c.Text())
			assert.Equal(t, tc.wantDir, c.Direction())
		})
	}
}

func TestPercentChange_MatchesFormula(t *testing.T) {
	pairs := [][2]float64{{97.5, 120}, {150, 133.3}, {1, 1000}, {180, 0.5}}
	for _, p := range pairs {
		c := domain.PercentChange(p[0], p[1])
		assert.True(t, c.Defined)
		assert.InDelta(t, ((p[0]-p[1])/p[1])*100, c.Percent, 1e-9)
	}
}
