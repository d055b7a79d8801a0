package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EmergencyRequest records an inbound emergency assistance submission.
// RequestCode is the human-facing reference (EMG-<unix millis>) shown to the
// caller while the request is routed to dispatchers out of band.
type EmergencyRequest struct {
	gorm.Model
	RequestCode string `json:"request_code" gorm:"uniqueIndex;size:32" example:"EMG-1756425600000"`
	Name        string `json:"name" example:"Jane Doe"`
	Phone       string `json:"phone" example:"081234567890"`
	Address     string `json:"address" example:"123 Main St"`
	Reason      string `json:"reason" gorm:"type:text"`
	Status      string `json:"status" gorm:"default:processing" example:"processing"`

	// Optional coordinates supplied by the caller's browser.
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`

	// ResolvedAddress is the reverse-geocoded formatted address when
	// coordinates were provided and the lookup succeeded.
	ResolvedAddress string `json:"resolved_address"`
	// IPLocation is "City/Country" derived from the caller IP, best-effort.
	IPLocation string `json:"ip_location" gorm:"size:255"`

	Details datatypes.JSON `json:"details" gorm:"type:json"`
}
