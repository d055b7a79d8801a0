package endpoint

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quickcare/quickcare-api/model"
	"github.com/quickcare/quickcare-api/util"
	"gorm.io/gorm"
)

type CreateAppointmentRequest struct {
	DoctorID uint   `json:"doctor_id" binding:"required" example:"3"`
	Date     string `json:"date" example:"2026-09-14"`
	Time     string `json:"time" example:"10:30 AM"`
}

func validateAppointmentRequest(req CreateAppointmentRequest) error {
	if req.Date == "" || req.Time == "" {
		return fmt.Errorf("missing required fields")
	}
	return nil
}

// CreateAppointment godoc
// @Summary      Book an appointment
// @Description  Book a slot with a doctor on behalf of the authenticated user
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Security     SessionToken
// @Param        request body CreateAppointmentRequest true "Booking details"
// @Success      201 {object} util.APIResponse "Appointment booked"
// @Failure      400 {object} util.APIResponse "Missing required fields"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /appointment [post]
func CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest

	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	// Validate before touching the database; a rejected booking must leave
	// no record behind.
	if err := validateAppointmentRequest(req); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Missing required fields",
			Err: err,
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

	var doctor model.Doctor
	if err := db.First(&doctor, req.DoctorID).Error; err != nil {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "Doctor not found",
			Err: err,
		})
		return
	}

	appointment := model.Appointment{
		DoctorID: req.DoctorID,
		UserID:   userID,
		Date:     req.Date,
		Time:     req.Time,
		Status:   model.AppointmentPending,
	}
	if err := db.Create(&appointment).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to book appointment",
			Err: err,
		})
		return
	}

	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg:  "Appointment booked",
		Data: map[string]interface{}{"appointment_id": appointment.ID},
	})
}

func fetchAppointmentsWithDoctor(db *gorm.DB, userID uint) ([]model.AppointmentWithDoctor, error) {
	var rows []model.AppointmentWithDoctor
	// LEFT JOIN so a removed doctor does not drop the appointment from the
	// listing; its doctor fields come back empty instead.
	err := db.Table("appointments").
		Select(`appointments.id, appointments.doctor_id, appointments.user_id,
			appointments.date, appointments.time, appointments.status,
			doctors.name as doctor_name, doctors.speciality as doctor_speciality,
			doctors.fees as doctor_fees, doctors.availability as doctor_availability,
			doctors.rating as doctor_rating, doctors.image as doctor_image`).
		Joins("LEFT JOIN doctors ON doctors.id = appointments.doctor_id AND doctors.deleted_at IS NULL").
		Where("appointments.user_id = ? AND appointments.deleted_at IS NULL", userID).
		Order("appointments.created_at desc").
		Scan(&rows).Error
	return rows, err
}

// ListAppointments godoc
// @Summary      List my appointments
// @Description  Retrieve the authenticated user's appointments with doctor details
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Security     SessionToken
// @Success      200 {object} util.APIResponse "Appointments retrieved"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /appointment [get]
func ListAppointments(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	rows, err := fetchAppointmentsWithDoctor(db, userID)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve appointments",
			Err: err,
		})
		return
	}
	if rows == nil {
		rows = []model.AppointmentWithDoctor{}
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Appointments retrieved",
		Data: map[string]interface{}{"total": len(rows), "appointments": rows},
	})
}

// doctorIDForUser maps a doctor-role account to its roster entry by username.
func doctorIDForUser(db *gorm.DB, userID uint) (uint, error) {
	var user model.User
	if err := db.First(&user, userID).Error; err != nil {
		return 0, err
	}
	var doctor model.Doctor
	if err := db.Where("username = ?", user.Username).First(&doctor).Error; err != nil {
		return 0, err
	}
	return doctor.ID, nil
}

func fetchAppointmentsWithPatient(db *gorm.DB, doctorID uint) ([]model.AppointmentWithPatient, error) {
	var rows []model.AppointmentWithPatient
	err := db.Table("appointments").
		Select(`appointments.id, appointments.user_id, appointments.date,
			appointments.time, appointments.status,
			users.username as patient_username, users.full_name as patient_name,
			users.age as patient_age, users.gender as patient_gender,
			users.phone as patient_phone`).
		Joins("LEFT JOIN users ON users.id = appointments.user_id AND users.deleted_at IS NULL").
		Where("appointments.doctor_id = ? AND appointments.deleted_at IS NULL", doctorID).
		Order("appointments.created_at desc").
		Scan(&rows).Error
	return rows, err
}

// DoctorAppointments godoc
// @Summary      List appointments for my practice
// @Description  Retrieve appointments booked with the authenticated doctor, with patient details
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Security     SessionToken
// @Success      200 {object} util.APIResponse "Appointments retrieved"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      403 {object} util.APIResponse "Doctor role required"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /doctor/appointments [get]
func DoctorAppointments(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	doctorID, err := doctorIDForUser(db, userID)
	if err != nil {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "No doctor profile linked to this account",
			Err: err,
		})
		return
	}

	rows, err := fetchAppointmentsWithPatient(db, doctorID)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve appointments",
			Err: err,
		})
		return
	}
	if rows == nil {
		rows = []model.AppointmentWithPatient{}
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Appointments retrieved",
		Data: map[string]interface{}{"total": len(rows), "appointments": rows},
	})
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required" example:"confirmed"`
}

// UpdateAppointmentStatus godoc
// @Summary      Update appointment status
// @Description  Move an appointment through its status lifecycle (doctor-side)
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Security     SessionToken
// @Param        id path int true "Appointment ID"
// @Param        request body UpdateAppointmentStatusRequest true "New status"
// @Success      200 {object} util.APIResponse "Status updated"
// @Failure      400 {object} util.APIResponse "Invalid status"
// @Failure      403 {object} util.APIResponse "Not the appointment's doctor"
// @Failure      404 {object} util.APIResponse "Appointment not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /appointment/{id}/status [patch]
func UpdateAppointmentStatus(c *gin.Context) {
	appointmentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid appointment id",
			Err: err,
		})
		return
	}

	var req UpdateAppointmentStatusRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	if !model.ValidAppointmentStatus(req.Status) {
		util.CallUserError(c, util.APIErrorParams{
			Msg: fmt.Sprintf("Invalid status %q", req.Status),
			Err: fmt.Errorf("invalid status"),
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

	var appointment model.Appointment
	if err := db.First(&appointment, uint(appointmentID)).Error; err != nil {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "Appointment not found",
			Err: err,
		})
		return
	}

	doctorID, err := doctorIDForUser(db, userID)
	if err != nil || doctorID != appointment.DoctorID {
		util.CallUserForbidden(c, util.APIErrorParams{
			Msg: "Only the appointment's doctor can update its status",
			Err: fmt.Errorf("doctor mismatch"),
		})
		return
	}

	appointment.Status = req.Status
	if err := db.Save(&appointment).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to update appointment",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Appointment status updated",
		Data: appointment,
	})
}
