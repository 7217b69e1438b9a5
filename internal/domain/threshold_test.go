package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"glucolog/internal/domain"
)

func TestIsAbnormal(t *testing.T) {
	tests := []struct {
		mc    domain.MealContext
		level int
		want  bool
	}{
		{domain.Fasting, 79, true},
		{domain.Fasting, 80, false},
		{domain.Fasting, 130, false},
		{domain.Fasting, 131, true},
		{domain.AfterMeal, 60, false},
		{domain.AfterMeal, 179, false},
		{domain.AfterMeal, 180, true},
		{domain.Other, 69, true},
		{domain.Other, 70, false},
		{domain.Other, 200, false},
		{domain.Other, 201, true},
		{domain.MealContext("snack"), 999, false},
	}
	for _, tc := range tests {
		r := domain.Reading{MealContext: tc.mc, GlucoseLevel: tc.level}
		assert.Equal(t, tc.want, domain.IsAbnormal(r), "%s %d", tc.mc, tc.level)
		// Identity fields don't influence the verdict.
		r.Day, r.Time = "2020-01-01", "23:59"
		assert.Equal(t, tc.want, domain.IsAbnormal(r))
	}
}

func TestStatusAndTargets(t *testing.T) {
	assert.Equal(t, "abnormal", domain.Status(domain.Reading{MealContext: domain.Fasting, GlucoseLevel: 140}))
	assert.Equal(t, "normal", domain.Status(domain.Reading{MealContext: domain.Fasting, GlucoseLevel: 100}))
	assert.Contains(t, domain.TargetText(domain.Fasting), "80-130")
	assert.Contains(t, domain.TargetText(domain.AfterMeal), "< 180")
	assert.Contains(t, domain.TargetText(domain.Other), "healthy")
}

func TestSanitizeGlucoseInput(t *testing.T) {
	tests := []struct {
		raw    string
		want   int
		wantOK bool
	}{
		{"123", 123, true},
		{"1a2b3", 123, true},
		{" 95 mg/dL", 95, true},
		{"5000", 1000, true},
		{"1000", 1000, true},
		{"99999999999999999999999", 1000, true},
		{"007", 7, true},
		{"0", 0, true},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tc := range tests {
		got, ok := domain.SanitizeGlucoseInput(tc.raw)
		assert.Equal(t, tc.wantOK, ok, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}
}
