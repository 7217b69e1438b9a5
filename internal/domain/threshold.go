package domain

// Range is the inclusive normal band for a meal context. A zero Min means
// there is no lower bound.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether level is inside the band.
func (r Range) Contains(level int) bool {
	return level >= r.Min && level <= r.Max
}

// Thresholds is the single abnormality table. After-meal readings have no
// floor; anything at or above 180 is abnormal.
var Thresholds = map[MealContext]Range{
	Fasting:   {Min: 80, Max: 130},
	AfterMeal: {Min: 0, Max: 179},
	Other:     {Min: 70, Max: 200},
}

// IsAbnormal reports whether a reading falls outside the normal band for its
// meal context. Unknown contexts are never flagged.
func IsAbnormal(r Reading) bool {
	return IsAbnormalLevel(r.MealContext, r.GlucoseLevel)
}

// IsAbnormalLevel is IsAbnormal without a Reading.
func IsAbnormalLevel(mc MealContext, level int) bool {
	rng, ok := Thresholds[mc]
	if !ok {
		return false
	}
	return !rng.Contains(level)
}

// Status is the classification label of a reading.
func Status(r Reading) string {
	if IsAbnormal(r) {
		return "abnormal"
	}
	return "normal"
}

// TargetText is the guideline shown next to the entry form.
func TargetText(mc MealContext) string {
	switch mc {
	case Fasting:
		return "Target fasting blood glucose: 80-130mg/dL (American Diabetes Association)"
	case AfterMeal:
		return "Target post-meal blood glucose: < 180mg/dL (American Diabetes Association)"
	}
	return "Maintain a healthy blood glucose level for overall well-being."
}
