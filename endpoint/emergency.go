package endpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quickcare/quickcare-api/model"
	"github.com/quickcare/quickcare-api/util"
	"gorm.io/datatypes"
)

type EmergencyRequestPayload struct {
	Name    string `json:"name" example:"Jane Doe"`
	Phone   string `json:"phone" example:"081234567890"`
	Address string `json:"address" example:"123 Main St"`
	Reason  string `json:"reason" example:"Severe chest pain"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
}

func validateEmergencyRequest(req EmergencyRequestPayload) error {
	requiredFields := map[string]string{
		"name":    req.Name,
		"phone":   req.Phone,
		"address": req.Address,
		"reason":  req.Reason,
	}
	for fieldName, fieldValue := range requiredFields {
		if fieldValue == "" {
			return fmt.Errorf("%s is empty or missing", fieldName)
		}
	}
	return nil
}

// newRequestCode builds the human-facing reference shown to the caller.
func newRequestCode() string {
	return fmt.Sprintf("EMG-%d", time.Now().UnixMilli())
}

// resolveCoordinates reverse-geocodes the caller's coordinates, best-effort.
// A geocoding failure never fails the emergency submission.
func resolveCoordinates(latitude, longitude float64) string {
	if latitude == 0 && longitude == 0 {
		return ""
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	address, err := util.ReverseGeocode(ctx, latitude, longitude)
	if err != nil {
		return ""
	}
	return address
}

// SubmitEmergency godoc
// @Summary      Submit emergency request
// @Description  Record an emergency assistance request and return its reference code
// @Tags         Emergency
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body EmergencyRequestPayload true "Emergency details"
// @Success      201 {object} util.APIResponse "Request recorded"
// @Failure      400 {object} util.APIResponse "Missing required fields"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /emergency [post]
func SubmitEmergency(c *gin.Context) {
	var req EmergencyRequestPayload

	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	if err := validateEmergencyRequest(req); err != nil {
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

	city, country := util.GetIPLocation(c.ClientIP())
	ipLocation := ""
	if city != "" || country != "" {
		ipLocation = fmt.Sprintf("%s/%s", city, country)
	}

	details, _ := json.Marshal(map[string]interface{}{
		"client_ip":  c.ClientIP(),
		"user_agent": c.Request.UserAgent(),
	})

	emergency := model.EmergencyRequest{
		RequestCode:     newRequestCode(),
		Name:            util.NormalizeName(req.Name),
		Phone:           req.Phone,
		Address:         req.Address,
		Reason:          req.Reason,
		Status:          "processing",
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		Accuracy:        req.Accuracy,
		ResolvedAddress: resolveCoordinates(req.Latitude, req.Longitude),
		IPLocation:      ipLocation,
		Details:         datatypes.JSON(details),
	}
	if err := db.Create(&emergency).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to record emergency request",
			Err: err,
		})
		return
	}

	util.LogSecurityEvent(util.SecurityEvent{
		EventType: util.EventEmergencyReceived,
		Username:  emergency.Name,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Message:   fmt.Sprintf("Emergency request %s received", emergency.RequestCode),
	})

	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg: "Emergency request received",
		Data: map[string]interface{}{
			"request_code":     emergency.RequestCode,
			"status":           emergency.Status,
			"resolved_address": emergency.ResolvedAddress,
		},
	})
}
