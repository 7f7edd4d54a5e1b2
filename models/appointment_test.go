package models_test

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/medibook/medibook-api/db"
	"github.com/medibook/medibook-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type lifecycleFixture struct {
	db       *gorm.DB
	provider models.User
	client   models.User
	stranger models.User
}

func newLifecycleFixture(t *testing.T) *lifecycleFixture {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(database))

	f := &lifecycleFixture{db: database}
	f.provider = models.User{Email: "doc@example.com", Password: "x", Role: models.RoleProvider}
	require.NoError(t, database.Create(&f.provider).Error)
	f.client = models.User{Email: "pat@example.com", Password: "x", Role: models.RoleClient}
	require.NoError(t, database.Create(&f.client).Error)
	f.stranger = models.User{Email: "other@example.com", Password: "x", Role: models.RoleClient}
	require.NoError(t, database.Create(&f.stranger).Error)
	return f
}

func (f *lifecycleFixture) appointment(t *testing.T, status models.AppointmentStatus) *models.Appointment {
	t.Helper()
	service := models.Service{ProviderID: f.provider.ID, Name: "Consultation", Duration: 30, Price: 50}
	require.NoError(t, f.db.Create(&service).Error)
	appt := models.Appointment{
		ClientID:   f.client.ID,
		ProviderID: f.provider.ID,
		ServiceID:  service.ID,
		Date:       time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC),
		TimeSlot:   "09:00",
		Status:     status,
	}
	require.NoError(t, f.db.Create(&appt).Error)
	return &appt
}

func TestUpdateStatusProviderFlow(t *testing.T) {
	f := newLifecycleFixture(t)

	appt := f.appointment(t, models.StatusPending)
	require.NoError(t, appt.UpdateStatus(f.db, models.StatusConfirmed, f.provider.ID, models.RoleProvider))
	assert.Equal(t, models.StatusConfirmed, appt.Status)

	require.NoError(t, appt.UpdateStatus(f.db, models.StatusCompleted, f.provider.ID, models.RoleProvider))
	assert.Equal(t, models.StatusCompleted, appt.Status)

	var stored models.Appointment
	require.NoError(t, f.db.First(&stored, appt.ID).Error)
	assert.Equal(t, models.StatusCompleted, stored.Status)
}

func TestUpdateStatusRejectAndCancel(t *testing.T) {
	f := newLifecycleFixture(t)

	appt := f.appointment(t, models.StatusPending)
	require.NoError(t, appt.UpdateStatus(f.db, models.StatusRejected, f.provider.ID, models.RoleProvider))

	appt = f.appointment(t, models.StatusPending)
	require.NoError(t, appt.UpdateStatus(f.db, models.StatusCancelled, f.client.ID, models.RoleClient),
		"client may cancel a pending appointment")

	appt = f.appointment(t, models.StatusConfirmed)
	require.NoError(t, appt.UpdateStatus(f.db, models.StatusCancelled, f.provider.ID, models.RoleProvider),
		"provider may cancel a confirmed appointment")
}

func TestUpdateStatusInvalidTransitions(t *testing.T) {
	f := newLifecycleFixture(t)

	appt := f.appointment(t, models.StatusPending)
	err := appt.UpdateStatus(f.db, models.StatusCompleted, f.provider.ID, models.RoleProvider)
	assert.ErrorIs(t, err, models.ErrInvalidTransition, "pending cannot jump to completed")

	for _, terminal := range []models.AppointmentStatus{
		models.StatusCompleted, models.StatusCancelled, models.StatusRejected,
	} {
		appt := f.appointment(t, terminal)
		err := appt.UpdateStatus(f.db, models.StatusConfirmed, f.provider.ID, models.RoleProvider)
		assert.ErrorIs(t, err, models.ErrInvalidTransition, "terminal state %s", terminal)
		assert.Equal(t, terminal, appt.Status, "status unchanged after rejected transition")
	}
}

func TestUpdateStatusForbiddenActors(t *testing.T) {
	f := newLifecycleFixture(t)

	appt := f.appointment(t, models.StatusPending)
	err := appt.UpdateStatus(f.db, models.StatusConfirmed, f.client.ID, models.RoleClient)
	assert.ErrorIs(t, err, models.ErrForbiddenTransition, "only the provider confirms")

	err = appt.UpdateStatus(f.db, models.StatusCancelled, f.stranger.ID, models.RoleClient)
	assert.ErrorIs(t, err, models.ErrForbiddenTransition, "a third party cannot cancel")

	err = appt.UpdateStatus(f.db, models.StatusRejected, f.stranger.ID, models.RoleProvider)
	assert.ErrorIs(t, err, models.ErrForbiddenTransition, "another provider cannot reject")

	assert.Equal(t, models.StatusPending, appt.Status)
}
