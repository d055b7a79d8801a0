package model

import "gorm.io/gorm"

// LabBooking is a submitted lab-test wizard intake. Tests holds the selected
// test names joined by commas, same storage convention as Doctor.Availability.
type LabBooking struct {
	gorm.Model
	UserID uint `json:"user_id" gorm:"index"`

	Name       string `json:"name"`
	Age        string `json:"age"`
	BloodGroup string `json:"blood_group"`
	Sex        string `json:"sex"`
	Mobile     string `json:"mobile"`
	Address    string `json:"address"`
	Landmark   string `json:"landmark"`

	Tests           string `json:"tests" gorm:"type:text"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	AlternativeTime string `json:"alternative_time"`

	HealthIssues string `json:"health_issues" gorm:"type:text"`
	Medications  string `json:"medications" gorm:"type:text"`
	Allergies    string `json:"allergies" gorm:"type:text"`
}
