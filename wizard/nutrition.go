package wizard

import "math"

// Activity levels accepted by the diet intake.
const (
	ActivitySedentary  = "sedentary"
	ActivityLight      = "light"
	ActivityModerate   = "moderate"
	ActivityActive     = "active"
	ActivityVeryActive = "veryActive"
)

// Goals accepted by the diet intake.
const (
	GoalLose = "lose"
	GoalGain = "gain"
)

// NutritionIntake is the completed diet-wizard field set.
type NutritionIntake struct {
	Height        float64 `json:"height"`
	Weight        float64 `json:"weight"`
	Age           float64 `json:"age"`
	Gender        string  `json:"gender"`
	ActivityLevel string  `json:"activity_level"`
	Goal          string  `json:"goal"`
	GoalWeight    float64 `json:"goal_weight"`
	SugarLevel    float64 `json:"sugar_level"`
}

// VitaminTargets are fixed daily micronutrient targets, independent of input.
type VitaminTargets struct {
	A   float64 `json:"a"`
	C   float64 `json:"c"`
	D   float64 `json:"d"`
	E   float64 `json:"e"`
	B12 float64 `json:"b12"`
}

// MineralTargets are fixed daily mineral targets, independent of input.
type MineralTargets struct {
	Zinc    float64 `json:"zinc"`
	Iron    float64 `json:"iron"`
	Calcium float64 `json:"calcium"`
}

// NutritionPlan is the derived daily plan. All macro values are grams per
// day, calories are kcal per day, sugar limit is grams per day.
type NutritionPlan struct {
	Calories   int            `json:"calories"`
	Protein    int            `json:"protein"`
	Carbs      int            `json:"carbs"`
	Fats       int            `json:"fats"`
	SugarLimit int            `json:"sugar_limit"`
	Vitamins   VitaminTargets `json:"vitamins"`
	Minerals   MineralTargets `json:"minerals"`
}

// activityMultiplier maps an activity level to its TDEE coefficient.
// Unknown levels fall back to moderate.
func activityMultiplier(level string) float64 {
	switch level {
	case ActivitySedentary:
		return 1.2
	case ActivityLight:
		return 1.375
	case ActivityModerate:
		return 1.55
	case ActivityActive:
		return 1.725
	case ActivityVeryActive:
		return 1.9
	default:
		return 1.55
	}
}

// DeriveNutritionPlan computes a daily nutrition plan from the completed
// intake. It is a pure function: identical inputs always yield identical
// output. The formula is Harris-Benedict BMR branched on declared gender,
// scaled by activity level, shifted 500 kcal toward the stated goal, with
// macros split 30/45/25 across protein, carbs and fat.
func DeriveNutritionPlan(intake NutritionIntake) NutritionPlan {
	var bmr float64
	if intake.Gender == "male" {
		bmr = 88.362 + 13.397*intake.Weight + 4.799*intake.Height - 5.677*intake.Age
	} else {
		bmr = 447.593 + 9.247*intake.Weight + 3.098*intake.Height - 4.33*intake.Age
	}

	tdee := bmr * activityMultiplier(intake.ActivityLevel)

	// The intake form starts with the lose goal selected, so anything
	// other than an explicit gain keeps the deficit.
	goalCalories := tdee - 500
	if intake.Goal == GoalGain {
		goalCalories = tdee + 500
	}

	// Blood sugar above the normal fasting range tightens the sugar allowance.
	const baseSugarLimit = 25.0
	sugarLimit := baseSugarLimit
	if intake.SugarLevel > 100 {
		sugarLimit = baseSugarLimit * 0.7
	}

	return NutritionPlan{
		Calories:   int(math.Round(goalCalories)),
		Protein:    int(math.Round(goalCalories * 0.3 / 4)),
		Carbs:      int(math.Round(goalCalories * 0.45 / 4)),
		Fats:       int(math.Round(goalCalories * 0.25 / 9)),
		SugarLimit: int(math.Round(sugarLimit)),
		Vitamins:   VitaminTargets{A: 900, C: 90, D: 15, E: 15, B12: 2.4},
		Minerals:   MineralTargets{Zinc: 11, Iron: 18, Calcium: 1000},
	}
}
