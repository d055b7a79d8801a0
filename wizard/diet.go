package wizard

// Diet wizard field names.
const (
	FieldHeight        = "height"
	FieldWeight        = "weight"
	FieldAge           = "age"
	FieldGender        = "gender"
	FieldActivityLevel = "activityLevel"
	FieldGoal          = "goal"
	FieldGoalWeight    = "goalWeight"
	FieldSugarLevel    = "sugarLevel"
)

// DietFlow is the diet-planner wizard: body metrics, goal, blood sugar, then
// a results-only step presenting the derived nutrition plan.
type DietFlow struct{}

func (DietFlow) Name() string { return "diet" }

func (DietFlow) StepCount() int { return 4 }

func (DietFlow) ResultsOnlyFinal() bool { return true }

// StepValid gates forward progress. Numeric fields must be non-zero: a zero
// reading is treated the same as missing input.
func (DietFlow) StepValid(step int, fields *FieldStore) bool {
	switch step {
	case 1:
		return fields.Number(FieldHeight) != 0 &&
			fields.Number(FieldWeight) != 0 &&
			fields.Number(FieldAge) != 0 &&
			fields.String(FieldGender) != ""
	case 2:
		return fields.Number(FieldGoalWeight) != 0
	case 3:
		return fields.Number(FieldSugarLevel) != 0
	case 4:
		return true
	default:
		return false
	}
}

// Derive builds the intake from the field store and computes the plan.
func (DietFlow) Derive(fields *FieldStore) (interface{}, error) {
	intake := NutritionIntake{
		Height:        fields.Number(FieldHeight),
		Weight:        fields.Number(FieldWeight),
		Age:           fields.Number(FieldAge),
		Gender:        fields.String(FieldGender),
		ActivityLevel: fields.String(FieldActivityLevel),
		Goal:          fields.String(FieldGoal),
		GoalWeight:    fields.Number(FieldGoalWeight),
		SugarLevel:    fields.Number(FieldSugarLevel),
	}
	return DeriveNutritionPlan(intake), nil
}

// DietFieldStore populates a field store from an intake struct, for callers
// that collect the whole intake at once rather than step by step.
func DietFieldStore(intake NutritionIntake) *FieldStore {
	fields := NewFieldStore()
	fields.SetNumberValue(FieldHeight, intake.Height)
	fields.SetNumberValue(FieldWeight, intake.Weight)
	fields.SetNumberValue(FieldAge, intake.Age)
	fields.SetString(FieldGender, intake.Gender)
	fields.SetString(FieldActivityLevel, intake.ActivityLevel)
	fields.SetString(FieldGoal, intake.Goal)
	fields.SetNumberValue(FieldGoalWeight, intake.GoalWeight)
	fields.SetNumberValue(FieldSugarLevel, intake.SugarLevel)
	return fields
}
