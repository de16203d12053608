// Package tco computes diesel-versus-electric running cost savings.
package tco

// Hours slider bounds on the product page.
const (
	MinHours  = 500
	MaxHours  = 3000
	StepHours = 500
)

// Years is the horizon of the long-run savings figure.
const Years = 7

// Inputs to the calculator.
type Inputs struct {
	AnnualHours            float64 `json:"annual_hours"`
	DieselCostPerHour      float64 `json:"diesel_cost_per_hour"`
	ElectricityCostPerHour float64 `json:"electricity_cost_per_hour"`
}

// Result of the calculator.
type Result struct {
	DieselAnnualCost      float64 `json:"diesel_annual_cost"`
	ElectricityAnnualCost float64 `json:"electricity_annual_cost"`
	AnnualSavings         float64 `json:"annual_savings"`
	SevenYearSavings      float64 `json:"seven_year_savings"`
}

// DefaultInputs returns the values the calculator opens with.
func DefaultInputs() Inputs {
	return Inputs{
		AnnualHours:            1000,
		DieselCostPerHour:      400,
		ElectricityCostPerHour: 100,
	}
}

// Calculate applies the cost formulas. Inputs are not bounds-checked.
func Calculate(in Inputs) Result {
	diesel := in.DieselCostPerHour * in.AnnualHours
	electric := in.ElectricityCostPerHour * in.AnnualHours
	annual := diesel - electric
	return Result{
		DieselAnnualCost:      diesel,
		ElectricityAnnualCost: electric,
		AnnualSavings:         annual,
		SevenYearSavings:      annual * Years,
	}
}

// SnapHours clamps hours to the slider range and rounds to the nearest step.
func SnapHours(hours float64) float64 {
	if hours <= MinHours {
		return MinHours
	}
	if hours >= MaxHours {
		return MaxHours
	}
	steps := int((hours-MinHours)/StepHours + 0.5)
	return float64(MinHours + steps*StepHours)
}
