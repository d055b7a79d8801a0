package model

import "gorm.io/gorm"

// Appointment statuses. "pending" is the state a fresh booking starts in;
// doctor-side actions move it forward or cancel it.
const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// ValidAppointmentStatus reports whether s is a member of the status enum.
func ValidAppointmentStatus(s string) bool {
	switch s {
	case AppointmentPending, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}

// Appointment links a user to a doctor on a calendar date and a time slot.
// The slot is a free-text token and is not validated against the doctor's
// availability. Appointments are soft-deleted only, never removed.
type Appointment struct {
	gorm.Model
	DoctorID uint   `json:"doctor_id" gorm:"index;not null"`
	UserID   uint   `json:"user_id" gorm:"index;not null"`
	Date     string `json:"date" gorm:"not null" example:"2026-09-14"`
	Time     string `json:"time" gorm:"not null" example:"10:30 AM"`
	Status   string `json:"status" gorm:"default:pending" example:"pending"`
}

// AppointmentWithDoctor is the typed result of joining an appointment with
// its doctor. Doctor fields stay empty when the referenced doctor no longer
// exists; a missing match must not fail the listing.
type AppointmentWithDoctor struct {
	ID       uint   `json:"id"`
	DoctorID uint   `json:"doctor_id"`
	UserID   uint   `json:"user_id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Status   string `json:"status"`

	DoctorName         string  `json:"doctor_name"`
	DoctorSpeciality   string  `json:"doctor_speciality"`
	DoctorFees         int     `json:"doctor_fees"`
	DoctorAvailability string  `json:"doctor_availability"`
	DoctorRating       float64 `json:"doctor_rating"`
	DoctorImage        string  `json:"doctor_image"`
}

// AppointmentWithPatient is the doctor-side view: an appointment joined with
// the booking user's profile details.
type AppointmentWithPatient struct {
	ID     uint   `json:"id"`
	UserID uint   `json:"user_id"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Status string `json:"status"`

	PatientUsername string `json:"patient_username"`
	PatientName     string `json:"patient_name"`
	PatientAge      int    `json:"patient_age"`
	PatientGender   string `json:"patient_gender"`
	PatientPhone    string `json:"patient_phone"`
}
