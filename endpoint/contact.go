package endpoint

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/quickcare/quickcare-api/model"
	"github.com/quickcare/quickcare-api/util"
)

type ContactRequest struct {
	Name          string `json:"name" example:"Jane Doe"`
	Email         string `json:"email" example:"jane@example.com"`
	Phone         string `json:"phone" example:"081234567890"`
	Subject       string `json:"subject" example:"Appointment rescheduling"`
	Message       string `json:"message" example:"I need to move my appointment."`
	Department    string `json:"department" example:"Cardiology"`
	PreferredDate string `json:"preferred_date" example:"2026-09-14"`
	Urgency       string `json:"urgency" example:"normal"`
	Symptoms      string `json:"symptoms"`
}

func validateContactRequest(req ContactRequest) error {
	requiredFields := map[string]string{
		"name":    req.Name,
		"email":   req.Email,
		"message": req.Message,
	}
	for fieldName, fieldValue := range requiredFields {
		if fieldValue == "" {
			return fmt.Errorf("%s is empty or missing", fieldName)
		}
	}
	return nil
}

// SubmitContact godoc
// @Summary      Submit contact inquiry
// @Description  Record a contact-page inquiry for staff follow-up
// @Tags         Contact
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ContactRequest true "Inquiry details"
// @Success      201 {object} util.APIResponse "Inquiry recorded"
// @Failure      400 {object} util.APIResponse "Missing required fields"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /contact [post]
func SubmitContact(c *gin.Context) {
	var req ContactRequest

	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	if err := validateContactRequest(req); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: err.Error(),
			Err: fmt.Errorf("invalid payload"),
		})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	contact := model.Contact{
		Name:          util.NormalizeName(req.Name),
		Email:         req.Email,
		Phone:         req.Phone,
		Subject:       req.Subject,
		Message:       req.Message,
		Department:    req.Department,
		PreferredDate: req.PreferredDate,
		Urgency:       req.Urgency,
		Symptoms:      req.Symptoms,
	}
	if err := db.Create(&contact).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to record inquiry",
			Err: err,
		})
		return
	}

	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg:  "Inquiry recorded",
		Data: map[string]interface{}{"contact_id": contact.ID},
	})
}
