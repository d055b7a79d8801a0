package endpoint

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/quickcare/quickcare-api/model"
	"github.com/quickcare/quickcare-api/util"
	"github.com/quickcare/quickcare-api/wizard"
)

// LabTestRequest carries the full lab-booking wizard intake in one submission.
type LabTestRequest struct {
	Name       string `json:"name" example:"Jane Doe"`
	Age        string `json:"age" example:"30"`
	BloodGroup string `json:"blood_group" example:"O+"`
	Sex        string `json:"sex" example:"female"`
	Mobile     string `json:"mobile" example:"081234567890"`
	Address    string `json:"address" example:"123 Main St"`
	Landmark   string `json:"landmark" example:"Near city park"`

	SelectedTests   []string `json:"selected_tests" example:"Complete Blood Count (CBC)"`
	Date            string   `json:"date" example:"2026-09-14"`
	Time            string   `json:"time" example:"09:00 AM"`
	AlternativeTime string   `json:"alternative_time" example:"11:00 AM"`

	HealthIssues string `json:"health_issues"`
	Medications  string `json:"medications"`
	Allergies    string `json:"allergies"`
}

// LabTestCatalog godoc
// @Summary      List available lab tests
// @Description  Retrieve the lab test catalog grouped by category
// @Tags         LabTest
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse "Catalog retrieved"
// @Router       /labtest/catalog [get]
func LabTestCatalog(c *gin.Context) {
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Lab test catalog retrieved",
		Data: map[string]interface{}{
			"categories":   wizard.LabTestCatalog,
			"blood_groups": wizard.BloodGroups,
		},
	})
}

// BookLabTest godoc
// @Summary      Book lab tests
// @Description  Validate the lab-booking intake, persist it, and return the confirmation
// @Tags         LabTest
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Security     SessionToken
// @Param        request body LabTestRequest true "Lab booking intake"
// @Success      201 {object} util.APIResponse{data=wizard.LabConfirmation} "Booking recorded"
// @Failure      400 {object} util.APIResponse "Incomplete intake"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /labtest [post]
func BookLabTest(c *gin.Context) {
	var req LabTestRequest

	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	intake := wizard.LabIntake{
		Name:            req.Name,
		Age:             req.Age,
		BloodGroup:      req.BloodGroup,
		Sex:             req.Sex,
		Mobile:          req.Mobile,
		Address:         req.Address,
		Landmark:        req.Landmark,
		SelectedTests:   req.SelectedTests,
		Date:            req.Date,
		Time:            req.Time,
		AlternativeTime: req.AlternativeTime,
		HealthIssues:    req.HealthIssues,
		Medications:     req.Medications,
		Allergies:       req.Allergies,
	}

	fields := wizard.LabFieldStore(intake)
	if step := wizard.FirstInvalidStep(wizard.LabFlow{}, fields); step != 0 {
		util.CallUserError(c, util.APIErrorParams{
			Msg: fmt.Sprintf("Incomplete intake: step %d has missing fields", step),
			Err: fmt.Errorf("step %d invalid", step),
		})
		return
	}

	if !util.Contains(req.BloodGroup, wizard.BloodGroups) {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Unknown blood group",
			Err: fmt.Errorf("blood group %q not recognized", req.BloodGroup),
		})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	booking := model.LabBooking{
		UserID:          userID,
		Name:            util.NormalizeName(req.Name),
		Age:             req.Age,
		BloodGroup:      req.BloodGroup,
		Sex:             req.Sex,
		Mobile:          req.Mobile,
		Address:         req.Address,
		Landmark:        req.Landmark,
		Tests:           strings.Join(req.SelectedTests, ","),
		Date:            req.Date,
		Time:            req.Time,
		AlternativeTime: req.AlternativeTime,
		HealthIssues:    req.HealthIssues,
		Medications:     req.Medications,
		Allergies:       req.Allergies,
	}
	if err := db.Create(&booking).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to record lab booking",
			Err: err,
		})
		return
	}

	confirmation, err := wizard.LabFlow{}.Derive(fields)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to build confirmation",
			Err: err,
		})
		return
	}

	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg:  "Lab booking recorded",
		Data: map[string]interface{}{"booking_id": booking.ID, "confirmation": confirmation},
	})
}
