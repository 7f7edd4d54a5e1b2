package booking

import "errors"

// Booking failures are sentinel errors so controllers can map each to its
// own HTTP status.
var (
	ErrServiceNotFound     = errors.New("service not found")
	ErrServiceInactive     = errors.New("service is not bookable")
	ErrOutsideAvailability = errors.New("slot falls outside the provider's availability")
	ErrSlotConflict        = errors.New("slot conflicts with an existing appointment")
	ErrPastSchedule        = errors.New("cannot book an appointment in the past")
	ErrInvalidSlot         = errors.New("invalid time slot")
)
