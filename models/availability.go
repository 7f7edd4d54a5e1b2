package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Availability is a recurring weekly window during which a provider accepts
// bookings. DayOfWeek follows time.Weekday numbering (0 = Sunday).
// A provider cannot declare two windows starting at the same time on the
// same day, hence the composite unique index.
type Availability struct {
	gorm.Model
	ProviderID uint         `json:"provider_id" gorm:"not null;uniqueIndex:idx_provider_day_start"`
	Provider   User         `json:"-" gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE"`
	DayOfWeek  time.Weekday `json:"day_of_week" gorm:"not null;uniqueIndex:idx_provider_day_start"`
	StartTime  string       `json:"start_time" gorm:"not null;uniqueIndex:idx_provider_day_start"` // "HH:MM", 24h
	EndTime    string       `json:"end_time" gorm:"not null"`                                      // "HH:MM", 24h
	IsActive   bool         `json:"is_active" gorm:"default:true"`
}

func (a *Availability) BeforeSave(tx *gorm.DB) error {
	if a.DayOfWeek < time.Sunday || a.DayOfWeek > time.Saturday {
		return fmt.Errorf("invalid day of week %d", a.DayOfWeek)
	}
	start, err := time.Parse("15:04", a.StartTime)
	if err != nil {
		return fmt.Errorf("invalid start time %q: want HH:MM", a.StartTime)
	}
	end, err := time.Parse("15:04", a.EndTime)
	if err != nil {
		return fmt.Errorf("invalid end time %q: want HH:MM", a.EndTime)
	}
	if !end.After(start) {
		return fmt.Errorf("end time must be after start time")
	}
	return nil
}
