package endpoint

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func completeDietPayload() map[string]interface{} {
	return map[string]interface{}{
		"height":         175,
		"weight":         70,
		"age":            30,
		"gender":         "male",
		"activity_level": "moderate",
		"goal":           "lose",
		"goal_weight":    65,
		"sugar_level":    90,
	}
}

func TestDietPlanGolden(t *testing.T) {
	r, _ := setupEndpointTest(t)
	r.POST("/diet/plan", DietPlan)

	w := performJSON(r, "POST", "/diet/plan", completeDietPayload())

	resp := decodeResponse(t, w)
	assertSuccessResponse(t, w, resp)

	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(2128), data["calories"])
	assert.Equal(t, float64(160), data["protein"])
	assert.Equal(t, float64(239), data["carbs"])
	assert.Equal(t, float64(59), data["fats"])
	assert.Equal(t, float64(25), data["sugar_limit"])
}

func TestDietPlanOmittedGoalDefaultsToLose(t *testing.T) {
	r, _ := setupEndpointTest(t)
	r.POST("/diet/plan", DietPlan)

	payload := completeDietPayload()
	delete(payload, "goal")
	w := performJSON(r, "POST", "/diet/plan", payload)

	resp := decodeResponse(t, w)
	assertSuccessResponse(t, w, resp)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(2128), data["calories"])
}

func TestDietPlanTightensSugarLimit(t *testing.T) {
	r, _ := setupEndpointTest(t)
	r.POST("/diet/plan", DietPlan)

	payload := completeDietPayload()
	payload["sugar_level"] = 120
	w := performJSON(r, "POST", "/diet/plan", payload)

	resp := decodeResponse(t, w)
	assertSuccessResponse(t, w, resp)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(18), data["sugar_limit"])
}

func TestDietPlanRejectsIncompleteIntake(t *testing.T) {
	r, _ := setupEndpointTest(t)
	r.POST("/diet/plan", DietPlan)

	cases := []struct {
		name   string
		mutate func(map[string]interface{})
	}{
		{"zero height", func(p map[string]interface{}) { p["height"] = 0 }},
		{"missing gender", func(p map[string]interface{}) { p["gender"] = "" }},
		{"zero goal weight", func(p map[string]interface{}) { p["goal_weight"] = 0 }},
		{"zero sugar level", func(p map[string]interface{}) { p["sugar_level"] = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := completeDietPayload()
			tc.mutate(payload)
			w := performJSON(r, "POST", "/diet/plan", payload)
			assertStatus(t, w, http.StatusBadRequest)
		})
	}
}
