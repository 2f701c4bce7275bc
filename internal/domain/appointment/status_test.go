package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusLiberated, StatusBlocked},
		{StatusLiberated, StatusPending},
		{StatusLiberated, StatusScheduled},
		{StatusBlocked, StatusLiberated},
		{StatusPending, StatusScheduled},
		{StatusPending, StatusCancelled},
		{StatusScheduled, StatusCompleted},
		{StatusScheduled, StatusCancelled},
	}
	for _, tc := range allowed {
		assert.NoError(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct{ from, to Status }{
		{StatusBlocked, StatusPending},
		{StatusPending, StatusCompleted},
		{StatusCompleted, StatusCancelled},
		{StatusCancelled, StatusScheduled},
		{StatusLiberated, StatusCancelled},
		{StatusScheduled, StatusPending},
	}
	for _, tc := range denied {
		err := CanTransition(tc.from, tc.to)
		assert.True(t, httperr.IsBusiness(err, "invalid_state"), "%s -> %s", tc.from, tc.to)
	}
}

func TestStatusHelpers(t *testing.T) {
	assert.True(t, IsActive(StatusPending))
	assert.True(t, IsActive(StatusCompleted))
	assert.False(t, IsActive(StatusLiberated))
	assert.False(t, IsActive(StatusCancelled))

	assert.True(t, IsPlaceholder(StatusBlocked))
	assert.False(t, IsPlaceholder(StatusScheduled))

	assert.True(t, Status("pending").Valid())
	assert.False(t, Status("confirmed").Valid())

	assert.NoError(t, CanWithdraw(StatusLiberated))
	assert.Error(t, CanWithdraw(StatusPending))
}

func TestConfirmCancelComplete(t *testing.T) {
	now := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	ap := &models.Appointment{Status: string(StatusPending)}

	require.NoError(t, Confirm(ap, now))
	assert.Equal(t, string(StatusScheduled), ap.Status)
	require.NotNil(t, ap.ConfirmedAt)

	assert.Error(t, Confirm(ap, now))

	require.NoError(t, Complete(ap, now))
	assert.Equal(t, string(StatusCompleted), ap.Status)
	assert.Error(t, Cancel(ap, now, "late"))

	other := &models.Appointment{Status: string(StatusScheduled)}
	require.NoError(t, Cancel(other, now, "cliente desistiu"))
	assert.Equal(t, "cliente desistiu", other.CancelReason)
	assert.Equal(t, &now, other.CancelledAt)
}

func window(h, m, minutes int) (time.Time, time.Time) {
	start := time.Date(2026, 5, 4, h, m, 0, 0, time.UTC)
	return start, start.Add(time.Duration(minutes) * time.Minute)
}

func TestClaim(t *testing.T) {
	start, end := window(10, 0, 60)
	service := &models.Service{ID: 7, DurationMin: 45}

	ap := &models.Appointment{Status: string(StatusLiberated), StartTime: start, EndTime: end}
	require.NoError(t, Claim(ap, 3, service))

	assert.Equal(t, string(StatusPending), ap.Status)
	assert.Equal(t, string(SourceCustomer), ap.Source)
	assert.Equal(t, uint(3), *ap.ClientID)
	assert.Equal(t, uint(7), *ap.ServiceID)
	assert.Equal(t, start.Add(45*time.Minute), ap.EndTime)
	assert.True(t, ap.FromLiberation)

	err := Claim(ap, 4, service)
	assert.True(t, httperr.IsBusiness(err, "slot_not_available"))

	long := &models.Appointment{Status: string(StatusLiberated), StartTime: start, EndTime: end}
	err = Claim(long, 3, &models.Service{ID: 8, DurationMin: 90})
	assert.True(t, httperr.IsBusiness(err, "service_too_long"))
	assert.Equal(t, string(StatusLiberated), long.Status)
}

func TestOccupyBlockLiberate(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	start, end := window(14, 0, 30)

	ap := &models.Appointment{Status: string(StatusLiberated), StartTime: start, EndTime: end}
	require.NoError(t, Occupy(ap, 1, &models.Service{ID: 2, DurationMin: 30}, now))
	assert.Equal(t, string(StatusScheduled), ap.Status)
	assert.NotNil(t, ap.ConfirmedAt)
	assert.True(t, ap.FromLiberation)

	err := Block(ap)
	assert.True(t, httperr.IsBusiness(err, "slot_occupied"))

	slot := &models.Appointment{Status: string(StatusLiberated)}
	require.NoError(t, Block(slot))
	assert.Equal(t, string(StatusBlocked), slot.Status)
	require.NoError(t, Liberate(slot))
	assert.Equal(t, string(StatusLiberated), slot.Status)
}

func TestNewPlaceholderAndReopen(t *testing.T) {
	start, end := window(9, 0, 60)

	_, err := NewPlaceholder(1, 2, start, end, StatusPending)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	_, err = NewPlaceholder(1, 2, end, start, StatusLiberated)
	assert.True(t, httperr.IsBusiness(err, "invalid_window"))

	ph, err := NewPlaceholder(1, 2, start, end, StatusBlocked)
	require.NoError(t, err)
	assert.Equal(t, string(DepositNone), ph.DepositStatus)

	private := &models.Appointment{
		SalonID: 1, ProfessionalID: 2,
		StartTime: start, EndTime: end,
		Status: string(StatusCancelled),
	}
	_, err = Reopen(private, start.Add(-time.Hour))
	assert.True(t, httperr.IsBusiness(err, "invalid_state"), "never liberated")

	cancelled := *private
	cancelled.FromLiberation = true

	reopened, err := Reopen(&cancelled, start.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, string(StatusLiberated), reopened.Status)
	assert.Equal(t, start, reopened.StartTime)

	_, err = Reopen(&cancelled, start.Add(time.Minute))
	assert.True(t, httperr.IsBusiness(err, "slot_in_past"))
}
