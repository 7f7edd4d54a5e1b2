package models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "PENDING"
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusCompleted AppointmentStatus = "COMPLETED"
	StatusCancelled AppointmentStatus = "CANCELLED"
	StatusRejected  AppointmentStatus = "REJECTED"
)

var (
	// ErrInvalidTransition means the requested status change is not in the
	// lifecycle table (e.g. anything out of a terminal state).
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrForbiddenTransition means the transition exists but the actor is
	// not allowed to perform it.
	ErrForbiddenTransition = errors.New("actor may not perform this transition")
)

// transitions is the appointment lifecycle. COMPLETED, CANCELLED and
// REJECTED are terminal.
var transitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusRejected, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

type Appointment struct {
	gorm.Model
	ClientID   uint              `json:"client_id" gorm:"not null;index"`
	Client     User              `json:"client,omitempty" gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	ProviderID uint              `json:"provider_id" gorm:"not null;index"`
	Provider   User              `json:"provider,omitempty" gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE"`
	ServiceID  uint              `json:"service_id" gorm:"not null"`
	Service    Service           `json:"service,omitempty" gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE"`
	Date       time.Time         `json:"date" gorm:"type:date;not null;index"`
	TimeSlot   string            `json:"time_slot" gorm:"not null"` // "HH:MM", 24h
	Status     AppointmentStatus `json:"status" gorm:"type:varchar(20);default:'PENDING'"`
	Notes      string            `json:"notes"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusPending
	}
	return nil
}

// StartsAt combines Date and TimeSlot into a point in time, in loc.
func (a *Appointment) StartsAt(loc *time.Location) (time.Time, error) {
	slot, err := time.Parse("15:04", a.TimeSlot)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time slot %q: %w", a.TimeSlot, err)
	}
	return time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(),
		slot.Hour(), slot.Minute(), 0, 0, loc), nil
}

// canTransition reports whether the lifecycle table allows from → to.
func canTransition(from, to AppointmentStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// UpdateStatus moves the appointment through its lifecycle on behalf of an
// actor. Only the owning provider may confirm, reject or complete; cancelling
// is open to the appointment's client as well.
func (a *Appointment) UpdateStatus(tx *gorm.DB, newStatus AppointmentStatus, actorID uint, actorRole Role) error {
	if !canTransition(a.Status, newStatus) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, newStatus)
	}

	switch newStatus {
	case StatusConfirmed, StatusRejected, StatusCompleted:
		if actorID != a.ProviderID {
			return fmt.Errorf("%w: only the provider may set %s", ErrForbiddenTransition, newStatus)
		}
	case StatusCancelled:
		if actorID != a.ClientID && actorID != a.ProviderID {
			return fmt.Errorf("%w: only the client or provider may cancel", ErrForbiddenTransition)
		}
	}

	a.Status = newStatus
	return tx.Save(a).Error
}
