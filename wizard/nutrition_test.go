package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func baseIntake() NutritionIntake {
	return NutritionIntake{
		Height:        175,
		Weight:        70,
		Age:           30,
		Gender:        "male",
		ActivityLevel: ActivityModerate,
		Goal:          GoalLose,
		GoalWeight:    65,
		SugarLevel:    90,
	}
}

func TestDeriveNutritionPlanGolden(t *testing.T) {
	plan := DeriveNutritionPlan(baseIntake())

	assert.Equal(t, 2128, plan.Calories)
	assert.Equal(t, 160, plan.Protein)
	assert.Equal(t, 239, plan.Carbs)
	assert.Equal(t, 59, plan.Fats)
	assert.Equal(t, 25, plan.SugarLimit)
}

func TestDeriveNutritionPlanFemaleFormula(t *testing.T) {
	intake := baseIntake()
	intake.Gender = "female"
	plan := DeriveNutritionPlan(intake)

	// Female BMR base is lower than male for identical metrics.
	male := DeriveNutritionPlan(baseIntake())
	if plan.Calories >= male.Calories {
		t.Fatalf("expected female calories %d below male %d", plan.Calories, male.Calories)
	}
}

func TestDeriveNutritionPlanGainGoal(t *testing.T) {
	lose := DeriveNutritionPlan(baseIntake())

	intake := baseIntake()
	intake.Goal = GoalGain
	gain := DeriveNutritionPlan(intake)

	if gain.Calories != lose.Calories+1000 {
		t.Fatalf("expected gain to sit 1000 kcal above lose, got %d vs %d", gain.Calories, lose.Calories)
	}
}

func TestDeriveNutritionPlanEmptyGoalDefaultsToLose(t *testing.T) {
	lose := DeriveNutritionPlan(baseIntake())

	intake := baseIntake()
	intake.Goal = ""
	plan := DeriveNutritionPlan(intake)

	// The intake form preselects lose, so an omitted goal means lose.
	assert.Equal(t, lose.Calories, plan.Calories)
	assert.Equal(t, 2128, plan.Calories)
}

func TestDeriveNutritionPlanSugarLimit(t *testing.T) {
	intake := baseIntake()
	intake.SugarLevel = 120
	plan := DeriveNutritionPlan(intake)
	assert.Equal(t, 18, plan.SugarLimit)

	intake.SugarLevel = 100
	plan = DeriveNutritionPlan(intake)
	assert.Equal(t, 25, plan.SugarLimit)
}

func TestDeriveNutritionPlanFixedMicronutrients(t *testing.T) {
	plan := DeriveNutritionPlan(baseIntake())

	assert.Equal(t, VitaminTargets{A: 900, C: 90, D: 15, E: 15, B12: 2.4}, plan.Vitamins)
	assert.Equal(t, MineralTargets{Zinc: 11, Iron: 18, Calcium: 1000}, plan.Minerals)
}

func TestDeriveNutritionPlanPure(t *testing.T) {
	p1 := DeriveNutritionPlan(baseIntake())
	p2 := DeriveNutritionPlan(baseIntake())
	assert.Equal(t, p1, p2)
}

func TestActivityMultiplierUnknownDefaultsToModerate(t *testing.T) {
	intake := baseIntake()
	intake.ActivityLevel = "couch"
	unknown := DeriveNutritionPlan(intake)

	intake.ActivityLevel = ActivityModerate
	moderate := DeriveNutritionPlan(intake)

	assert.Equal(t, moderate.Calories, unknown.Calories)
}
