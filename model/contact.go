package model

import "gorm.io/gorm"

// Contact is a free-form inquiry submitted through the contact page.
type Contact struct {
	gorm.Model
	Name          string `json:"name" example:"Jane Doe"`
	Email         string `json:"email" example:"jane@example.com"`
	Phone         string `json:"phone" example:"081234567890"`
	Subject       string `json:"subject" example:"Appointment rescheduling"`
	Message       string `json:"message" gorm:"type:text"`
	Department    string `json:"department" example:"Cardiology"`
	PreferredDate string `json:"preferred_date" example:"2026-09-14"`
	Urgency       string `json:"urgency" example:"normal"`
	Symptoms      string `json:"symptoms" gorm:"type:text"`
}
