package endpoint

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/quickcare/quickcare-api/util"
	"github.com/quickcare/quickcare-api/wizard"
)

// DietPlanRequest carries the full diet-wizard intake in one submission.
type DietPlanRequest struct {
	Height        float64 `json:"height" example:"175"`
	Weight        float64 `json:"weight" example:"70"`
	Age           float64 `json:"age" example:"30"`
	Gender        string  `json:"gender" example:"male"`
	ActivityLevel string  `json:"activity_level" example:"moderate"`
	Goal          string  `json:"goal" example:"lose"`
	GoalWeight    float64 `json:"goal_weight" example:"65"`
	SugarLevel    float64 `json:"sugar_level" example:"90"`
}

// DietPlan godoc
// @Summary      Generate diet plan
// @Description  Validate the diet intake and derive a daily nutrition plan
// @Tags         Diet
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body DietPlanRequest true "Diet intake"
// @Success      200 {object} util.APIResponse{data=wizard.NutritionPlan} "Plan derived"
// @Failure      400 {object} util.APIResponse "Incomplete intake"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /diet/plan [post]
func DietPlan(c *gin.Context) {
	var req DietPlanRequest

	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	intake := wizard.NutritionIntake{
		Height:        req.Height,
		Weight:        req.Weight,
		Age:           req.Age,
		Gender:        req.Gender,
		ActivityLevel: req.ActivityLevel,
		Goal:          req.Goal,
		GoalWeight:    req.GoalWeight,
		SugarLevel:    req.SugarLevel,
	}

	// One-shot submissions replay the wizard's step validation so the API
	// rejects exactly what the interactive flow would refuse to advance past.
	fields := wizard.DietFieldStore(intake)
	if step := wizard.FirstInvalidStep(wizard.DietFlow{}, fields); step != 0 {
		util.CallUserError(c, util.APIErrorParams{
			Msg: fmt.Sprintf("Incomplete intake: step %d has missing or zero fields", step),
			Err: fmt.Errorf("step %d invalid", step),
		})
		return
	}

	plan := wizard.DeriveNutritionPlan(intake)

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Diet plan derived",
		Data: plan,
	})
}
