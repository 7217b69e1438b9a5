package domain

// mgdlPerMmol is the mg/dL equivalent of 1 mmol/L of glucose.
const mgdlPerMmol = 18.0182

const (
	UnitMgdl = "mg/dL"
	UnitMmol = "mmol/L"
)

// ConvertGlucose converts a glucose value between "mg/dL" and "mmol/L".
// Returns v unchanged if from == to or if the units are unrecognised.
func ConvertGlucose(v float64, from, to string) float64 {
	if from == to {
		return v
	}
	if from == UnitMgdl && to == UnitMmol {
		return v / mgdlPerMmol
	}
	if from == UnitMmol && to == UnitMgdl {
		return v * mgdlPerMmol
	}
	return v
}

// ParseUnit maps query-string spellings to a canonical unit.
func ParseUnit(s string) (string, error) {
	switch s {
	case "", "mgdl", "mg/dL", "mg/dl":
		return UnitMgdl, nil
	case "mmol", "mmol/L", "mmol/l":
		return UnitMmol, nil
	}
	return "", ErrInvalidUnit
}
