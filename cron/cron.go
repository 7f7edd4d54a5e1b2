package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/medibook/medibook-api/booking"
	"github.com/medibook/medibook-api/db"
	"github.com/medibook/medibook-api/models"
	"github.com/medibook/medibook-api/utils"
	"github.com/robfig/cron/v3"
)

// StartCronJobs starts the background scheduler: per-minute appointment
// reminders and an hourly sweep that completes finished appointments.
func StartCronJobs() {
	c := cron.New()
	if _, err := c.AddFunc("* * * * *", sendAppointmentReminders); err != nil {
		log.Fatalf("Failed to add reminder job: %v", err)
	}
	if _, err := c.AddFunc("0 * * * *", completeFinishedAppointments); err != nil {
		log.Fatalf("Failed to add completion job: %v", err)
	}
	c.Start()
	log.Println("Cron scheduler started")
}

// sendAppointmentReminders mails clients whose confirmed appointment starts
// in roughly an hour.
func sendAppointmentReminders() {
	now := time.Now()
	today := booking.DateOnly(now)

	var appointments []models.Appointment
	err := db.DB.Preload("Client").Preload("Service").Preload("Provider").
		Where("date = ? AND status = ?", today, models.StatusConfirmed).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	for _, appointment := range appointments {
		startAt, err := appointment.StartsAt(now.Location())
		if err != nil {
			continue
		}
		untilStart := startAt.Sub(now)
		if untilStart < 55*time.Minute || untilStart > 65*time.Minute {
			continue
		}
		if err := sendReminderEmail(&appointment, startAt); err != nil {
			log.Printf("Failed to send reminder for appointment %d: %v", appointment.ID, err)
			continue
		}
		log.Printf("Sent reminder for appointment %d to %s", appointment.ID, appointment.Client.Email)
	}
}

// completeFinishedAppointments transitions confirmed appointments whose slot
// has fully passed to COMPLETED, acting as the provider.
func completeFinishedAppointments() {
	now := time.Now()

	var appointments []models.Appointment
	err := db.DB.Preload("Service").
		Where("status = ? AND date <= ?", models.StatusConfirmed, booking.DateOnly(now)).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for completion: %v", err)
		return
	}

	for _, appointment := range appointments {
		startAt, err := appointment.StartsAt(now.Location())
		if err != nil {
			continue
		}
		endAt := startAt.Add(time.Duration(appointment.Service.Duration) * time.Minute)
		if endAt.After(now) {
			continue
		}
		if err := appointment.UpdateStatus(db.DB, models.StatusCompleted,
			appointment.ProviderID, models.RoleProvider); err != nil {
			log.Printf("Failed to complete appointment %d: %v", appointment.ID, err)
		}
	}
}

func sendReminderEmail(appointment *models.Appointment, startAt time.Time) error {
	subject := fmt.Sprintf("Reminder: Upcoming Appointment - %s", appointment.Service.Name)
	body := fmt.Sprintf(`
		<p>Dear %s %s,</p>
		<p>This is a reminder for your upcoming appointment scheduled in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Provider:</strong> %s %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
		</ul>
		<p>Please arrive on time. If you need to cancel, do so as soon as possible.</p>
	`, appointment.Client.FirstName, appointment.Client.LastName,
		appointment.Service.Name,
		appointment.Provider.FirstName, appointment.Provider.LastName,
		startAt.Format("2006-01-02"), appointment.TimeSlot)

	return utils.SendEmail(appointment.Client.Email, subject, body)
}
