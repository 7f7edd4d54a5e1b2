package booking

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/medibook/medibook-api/db"
	"github.com/medibook/medibook-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := database.DB()
	require.NoError(t, err)
	// one in-memory sqlite database per test; a second pooled connection
	// would silently open a fresh empty one
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(database))
	return database
}

type fixture struct {
	db       *gorm.DB
	engine   *Engine
	provider models.User
	client   models.User
	service  models.Service
}

// newFixture seeds a provider with a 30-minute service and a Monday
// 09:00-12:00 window, plus one client.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	database := newTestDB(t)

	f := &fixture{db: database, engine: NewEngine(database)}
	f.provider = models.User{Email: "doc@example.com", Password: "x", Role: models.RoleProvider, FirstName: "James", LastName: "Wilson"}
	require.NoError(t, database.Create(&f.provider).Error)
	f.client = models.User{Email: "pat@example.com", Password: "x", Role: models.RoleClient, FirstName: "Ann", LastName: "Lee"}
	require.NoError(t, database.Create(&f.client).Error)

	f.service = models.Service{ProviderID: f.provider.ID, Name: "Consultation", Duration: 30, Price: 50.00, IsActive: true}
	require.NoError(t, database.Create(&f.service).Error)

	window := models.Availability{ProviderID: f.provider.ID, DayOfWeek: time.Monday, StartTime: "09:00", EndTime: "12:00", IsActive: true}
	require.NoError(t, database.Create(&window).Error)
	return f
}

// nextWeekday returns the next future calendar date falling on day.
func nextWeekday(day time.Weekday) time.Time {
	d := time.Now().AddDate(0, 0, 1)
	for d.Weekday() != day {
		d = d.AddDate(0, 0, 1)
	}
	return DateOnly(d)
}

func (f *fixture) book(clientID uint, date time.Time, slot string) (*models.Appointment, error) {
	return f.engine.Book(Request{
		ClientID:  clientID,
		ServiceID: f.service.ID,
		Date:      date,
		TimeSlot:  slot,
	})
}

func TestBookHappyPath(t *testing.T) {
	f := newFixture(t)
	monday := nextWeekday(time.Monday)

	appt, err := f.book(f.client.ID, monday, "09:00")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, appt.Status)
	assert.Equal(t, f.provider.ID, appt.ProviderID, "provider derived from service")
	assert.Equal(t, f.client.ID, appt.ClientID)
	assert.Equal(t, "09:00", appt.TimeSlot)
}

func TestBookOverlapConflict(t *testing.T) {
	f := newFixture(t)
	monday := nextWeekday(time.Monday)

	_, err := f.book(f.client.ID, monday, "09:00")
	require.NoError(t, err)

	second := models.User{Email: "second@example.com", Password: "x", Role: models.RoleClient}
	require.NoError(t, f.db.Create(&second).Error)

	_, err = f.book(second.ID, monday, "09:15")
	assert.ErrorIs(t, err, ErrSlotConflict, "09:15 overlaps the 09:00-09:30 booking")

	appt, err := f.book(second.ID, monday, "10:00")
	require.NoError(t, err, "10:00 does not overlap and is inside the window")
	assert.Equal(t, models.StatusPending, appt.Status)
}

func TestBookConflictSurvivesServiceDeletion(t *testing.T) {
	f := newFixture(t)
	monday := nextWeekday(time.Monday)

	_, err := f.book(f.client.ID, monday, "09:00")
	require.NoError(t, err)

	// retiring the service must not free the slots already booked through it
	require.NoError(t, f.db.Delete(&f.service).Error)

	replacement := models.Service{ProviderID: f.provider.ID, Name: "Follow-up", Duration: 30, Price: 40.00, IsActive: true}
	require.NoError(t, f.db.Create(&replacement).Error)

	_, err = f.engine.Book(Request{
		ClientID:  f.client.ID,
		ServiceID: replacement.ID,
		Date:      monday,
		TimeSlot:  "09:15",
	})
	assert.ErrorIs(t, err, ErrSlotConflict, "09:15 still overlaps the 09:00-09:30 booking")
}

func TestBookConcurrentOverlap(t *testing.T) {
	f := newFixture(t)
	monday := nextWeekday(time.Monday)

	second := models.User{Email: "second@example.com", Password: "x", Role: models.RoleClient}
	require.NoError(t, f.db.Create(&second).Error)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for _, clientID := range []uint{f.client.ID, second.ID} {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			_, err := f.book(id, monday, "09:00")
			errs <- err
		}(clientID)
	}
	wg.Wait()
	close(errs)

	var booked, conflicted int
	for err := range errs {
		switch {
		case err == nil:
			booked++
		case errors.Is(err, ErrSlotConflict):
			conflicted++
		default:
			t.Fatalf("unexpected booking error: %v", err)
		}
	}
	assert.Equal(t, 1, booked, "exactly one concurrent booking wins")
	assert.Equal(t, 1, conflicted, "the other sees the conflict")

	var count int64
	require.NoError(t, f.db.Model(&models.Appointment{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestBookCancelledDoesNotConflict(t *testing.T) {
	f := newFixture(t)
	monday := nextWeekday(time.Monday)

	appt, err := f.book(f.client.ID, monday, "09:00")
	require.NoError(t, err)
	require.NoError(t, appt.UpdateStatus(f.db, models.StatusCancelled, f.client.ID, models.RoleClient))

	_, err = f.book(f.client.ID, monday, "09:00")
	assert.NoError(t, err, "cancelled appointments free their slot")
}

func TestBookOutsideAvailability(t *testing.T) {
	f := newFixture(t)

	_, err := f.book(f.client.ID, nextWeekday(time.Tuesday), "09:00")
	assert.ErrorIs(t, err, ErrOutsideAvailability, "no Tuesday window")

	monday := nextWeekday(time.Monday)
	_, err = f.book(f.client.ID, monday, "11:45")
	assert.ErrorIs(t, err, ErrOutsideAvailability, "ends at 12:15, past the window")

	_, err = f.book(f.client.ID, monday, "08:45")
	assert.ErrorIs(t, err, ErrOutsideAvailability, "starts before the window")

	appt, err := f.book(f.client.ID, monday, "11:30")
	require.NoError(t, err, "11:30-12:00 exactly fills the tail of the window")
	assert.Equal(t, models.StatusPending, appt.Status)
}

func TestBookInactiveService(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Model(&f.service).Update("is_active", false).Error)

	_, err := f.book(f.client.ID, nextWeekday(time.Monday), "09:00")
	assert.ErrorIs(t, err, ErrServiceInactive)
}

func TestBookUnknownService(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.Book(Request{
		ClientID:  f.client.ID,
		ServiceID: 9999,
		Date:      nextWeekday(time.Monday),
		TimeSlot:  "09:00",
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestBookPastDate(t *testing.T) {
	f := newFixture(t)

	yesterday := DateOnly(time.Now().AddDate(0, 0, -1))
	window := models.Availability{ProviderID: f.provider.ID, DayOfWeek: yesterday.Weekday(), StartTime: "00:00", EndTime: "23:59", IsActive: true}
	require.NoError(t, f.db.Create(&window).Error)

	_, err := f.book(f.client.ID, yesterday, "08:00")
	assert.ErrorIs(t, err, ErrPastSchedule)
}

func TestBookMalformedSlot(t *testing.T) {
	f := newFixture(t)

	_, err := f.book(f.client.ID, nextWeekday(time.Monday), "nine sharp")
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestIsSlotAvailable(t *testing.T) {
	f := newFixture(t)
	monday := nextWeekday(time.Monday)

	ok, err := f.engine.IsSlotAvailable(f.provider.ID, monday, "09:00", 30)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.engine.IsSlotAvailable(f.provider.ID, monday, "13:00", 30)
	require.NoError(t, err)
	assert.False(t, ok)

	// repeated identical queries with no intervening writes agree
	for i := 0; i < 3; i++ {
		again, err := f.engine.IsSlotAvailable(f.provider.ID, monday, "09:00", 30)
		require.NoError(t, err)
		assert.True(t, again)
	}

	// bookings do not affect the window probe; it only reads availability
	_, err = f.book(f.client.ID, monday, "09:00")
	require.NoError(t, err)
	ok, err = f.engine.IsSlotAvailable(f.provider.ID, monday, "09:00", 30)
	require.NoError(t, err)
	assert.True(t, ok)
}
