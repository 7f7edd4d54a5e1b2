package booking

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/medibook/medibook-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Engine validates and creates appointments. The provider is always derived
// from the requested service; callers never supply it.
type Engine struct {
	db *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// Request describes a booking attempt by an authenticated client.
type Request struct {
	ClientID  uint
	ServiceID uint
	Date      time.Time // calendar date; clock portion ignored
	TimeSlot  string    // "HH:MM", 24h
	Notes     string
}

// Book runs the whole validation sequence and creates a PENDING appointment
// in a single transaction. The conflict check and the insert are atomic:
// on postgres the transaction is serializable and the provider's candidate
// rows are locked, so two concurrent overlapping bookings cannot both
// commit.
func (e *Engine) Book(req Request) (*models.Appointment, error) {
	startMin, err := ParseClock(req.TimeSlot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}
	date := DateOnly(req.Date)

	var appointment *models.Appointment
	opts := &sql.TxOptions{}
	if e.db.Dialector.Name() == "postgres" {
		opts.Isolation = sql.LevelSerializable
	}

	txErr := e.db.Transaction(func(tx *gorm.DB) error {
		var service models.Service
		if err := tx.First(&service, req.ServiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrServiceNotFound
			}
			return err
		}
		if !service.IsActive {
			return ErrServiceInactive
		}

		var windows []models.Availability
		if err := tx.Where("provider_id = ? AND day_of_week = ? AND is_active = ?",
			service.ProviderID, int(date.Weekday()), true).
			Find(&windows).Error; err != nil {
			return err
		}
		if !SlotWithinWindows(windows, date.Weekday(), startMin, service.Duration) {
			return ErrOutsideAvailability
		}

		if err := e.checkConflicts(tx, service.ProviderID, date, startMin, service.Duration); err != nil {
			return err
		}

		startAt := time.Date(date.Year(), date.Month(), date.Day(),
			startMin/60, startMin%60, 0, 0, time.Local)
		if startAt.Before(time.Now()) {
			return ErrPastSchedule
		}

		appointment = &models.Appointment{
			ClientID:   req.ClientID,
			ProviderID: service.ProviderID,
			ServiceID:  service.ID,
			Date:       date,
			TimeSlot:   req.TimeSlot,
			Status:     models.StatusPending,
			Notes:      req.Notes,
		}
		return tx.Create(appointment).Error
	}, opts)
	if txErr != nil {
		return nil, txErr
	}
	return appointment, nil
}

// checkConflicts scans the provider's pending and confirmed appointments on
// the given date for interval overlap, locking them so a concurrent booking
// serializes behind this one.
func (e *Engine) checkConflicts(tx *gorm.DB, providerID uint, date time.Time, startMin, durationMin int) error {
	// Unscoped preload: an appointment keeps occupying its slot even after
	// the service it was booked through is soft-deleted.
	query := tx.Preload("Service", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("provider_id = ? AND date = ? AND status IN ?",
			providerID, date,
			[]models.AppointmentStatus{models.StatusPending, models.StatusConfirmed})
	if tx.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var existing []models.Appointment
	if err := query.Find(&existing).Error; err != nil {
		return err
	}

	end := startMin + durationMin
	for _, appt := range existing {
		otherStart, err := ParseClock(appt.TimeSlot)
		if err != nil {
			continue
		}
		otherEnd := otherStart + appt.Service.Duration
		if Overlaps(startMin, end, otherStart, otherEnd) {
			return ErrSlotConflict
		}
	}
	return nil
}

// IsSlotAvailable answers whether the slot lies inside the provider's
// availability for that weekday. It only consults the recurring windows, not
// existing appointments, so it is a pure read suitable for calendar display.
func (e *Engine) IsSlotAvailable(providerID uint, date time.Time, timeSlot string, durationMin int) (bool, error) {
	startMin, err := ParseClock(timeSlot)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}
	day := DateOnly(date).Weekday()

	var windows []models.Availability
	if err := e.db.Where("provider_id = ? AND day_of_week = ? AND is_active = ?",
		providerID, int(day), true).
		Find(&windows).Error; err != nil {
		return false, err
	}
	return SlotWithinWindows(windows, day, startMin, durationMin), nil
}
