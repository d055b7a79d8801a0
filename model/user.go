package model

import "gorm.io/gorm"

// User is an account that can log in: a patient, a doctor-side account, or an admin.
type User struct {
	gorm.Model
	Username     string `json:"username" gorm:"uniqueIndex;size:191" example:"jane.doe"`
	Password     string `json:"-" gorm:"column:password"`
	PasswordSalt string `json:"-" gorm:"column:password_salt"`
	RoleID       uint32 `json:"role_id" gorm:"column:role_id"`

	// Profile details captured at signup; all optional.
	FullName   string `json:"full_name" example:"Jane Doe"`
	Age        int    `json:"age" example:"30"`
	Gender     string `json:"gender" example:"female"`
	BloodGroup string `json:"blood_group" example:"O+"`
	Phone      string `json:"phone" example:"081234567890"`
	Address    string `json:"address" example:"123 Main St"`

	FailedAttempts int    `json:"-" gorm:"default:0"`
	LockedUntil    *int64 `json:"-"`
}
