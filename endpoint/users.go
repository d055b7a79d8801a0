package endpoint

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/quickcare/quickcare-api/model"
	"github.com/quickcare/quickcare-api/util"
)

// GetProfile godoc
// @Summary      Get my profile
// @Description  Retrieve the authenticated user's profile
// @Tags         User
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Security     SessionToken
// @Success      200 {object} util.APIResponse{data=model.User} "Profile retrieved"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /profile [get]
func GetProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var user model.User
	if err := db.First(&user, userID).Error; err != nil {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "User not found",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Profile retrieved",
		Data: user,
	})
}

type UpdateProfileRequest struct {
	FullName   *string `json:"full_name"`
	Age        *int    `json:"age"`
	Gender     *string `json:"gender"`
	BloodGroup *string `json:"blood_group"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`

	// Changing the password requires the current one and invalidates every
	// other active session for the account.
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func applyProfilePatch(user *model.User, req UpdateProfileRequest) {
	if req.FullName != nil {
		user.FullName = util.NormalizeName(*req.FullName)
	}
	if req.Age != nil {
		user.Age = *req.Age
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}
	if req.BloodGroup != nil {
		user.BloodGroup = *req.BloodGroup
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
}

func changePasswordOrRespond(c *gin.Context, user *model.User, req UpdateProfileRequest) bool {
	if req.NewPassword == "" {
		return true
	}
	if len(req.NewPassword) < 8 {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "New password must be at least 8 characters",
			Err: fmt.Errorf("password too short"),
		})
		return false
	}

	match, err := util.VerifyPassword(req.CurrentPassword, user.Password, user.PasswordSalt)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Password verification failed", Err: err})
		return false
	}
	if !match {
		util.CallUserNotAuthorized(c, util.APIErrorParams{
			Msg: "Current password is incorrect",
			Err: fmt.Errorf("invalid password"),
		})
		return false
	}

	hashed, salt, ok := hashPasswordForSignup(c, req.NewPassword)
	if !ok {
		return false
	}
	user.Password = hashed
	user.PasswordSalt = salt
	return true
}

// UpdateProfile godoc
// @Summary      Update my profile
// @Description  Patch the authenticated user's profile details, optionally changing the password
// @Tags         User
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Security     SessionToken
// @Param        request body UpdateProfileRequest true "Fields to update"
// @Success      200 {object} util.APIResponse{data=model.User} "Profile updated"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /profile [patch]
func UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
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

	var user model.User
	if err := db.First(&user, userID).Error; err != nil {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "User not found",
			Err: err,
		})
		return
	}

	passwordChanged := req.NewPassword != ""
	if !changePasswordOrRespond(c, &user, req) {
		return
	}
	applyProfilePatch(&user, req)

	if err := db.Save(&user).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to update profile",
			Err: err,
		})
		return
	}

	if passwordChanged {
		// Force every other session for this account to re-authenticate.
		if err := db.Where("user_id = ?", user.ID).Delete(&model.Session{}).Error; err == nil {
			_ = util.InvalidateUserSessions(user.ID)
		}
		util.LogSecurityEvent(util.SecurityEvent{
			EventType: util.EventPasswordChanged,
			UserID:    fmt.Sprintf("%d", user.ID),
			Username:  user.Username,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Message:   "Password changed via profile update",
		})
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Profile updated",
		Data: user,
	})
}
