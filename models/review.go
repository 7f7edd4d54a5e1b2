package models

import (
	"fmt"
	"time"
)

// Review is written once per completed appointment and never changed.
type Review struct {
	ID            uint        `json:"id" gorm:"primaryKey"`
	AppointmentID uint        `json:"appointment_id" gorm:"uniqueIndex;not null"`
	Appointment   Appointment `json:"appointment,omitempty" gorm:"foreignKey:AppointmentID;constraint:OnDelete:CASCADE"`
	Rating        int         `json:"rating" gorm:"not null"`
	Comment       string      `json:"comment"`
	CreatedAt     time.Time   `json:"created_at"`
}

// ValidateRating checks the 1..5 range shared by the controller and tests.
func (r *Review) ValidateRating() error {
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", r.Rating)
	}
	return nil
}
