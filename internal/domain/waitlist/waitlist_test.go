package waitlist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func TestApplyTransitions(t *testing.T) {
	now := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	e := &models.WaitlistEntry{Status: string(StatusWaiting)}

	require.NoError(t, Apply(e, StatusContacted, now))
	assert.Equal(t, &now, e.ContactedAt)
	assert.Nil(t, e.ResolvedAt)

	require.NoError(t, Apply(e, StatusBooked, now))
	assert.Equal(t, &now, e.ResolvedAt)

	err := Apply(e, StatusWaiting, now)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	assert.Error(t, CanTransition(StatusDismissed, StatusContacted))
	assert.Error(t, CanTransition(StatusContacted, StatusContacted))
}

func TestMatches(t *testing.T) {
	pro := uint(5)
	other := uint(6)
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	entries := []models.WaitlistEntry{
		{ID: 1, DesiredDate: "2026-05-10", Status: "waiting", CreatedAt: base.Add(2 * time.Hour)},
		{ID: 2, DesiredDate: "2026-05-10", Status: "waiting", ProfessionalID: &pro, CreatedAt: base},
		{ID: 3, DesiredDate: "2026-05-10", Status: "waiting", ProfessionalID: &other, CreatedAt: base},
		{ID: 4, DesiredDate: "2026-05-10", Status: "contacted", CreatedAt: base},
		{ID: 5, DesiredDate: "2026-05-11", Status: "waiting", CreatedAt: base},
	}

	got := Matches(entries, "2026-05-10", pro)
	require.Len(t, got, 2)
	assert.Equal(t, uint(2), got[0].ID)
	assert.Equal(t, uint(1), got[1].ID)

	anyPro := Matches(entries, "2026-05-10", 0)
	assert.Len(t, anyPro, 3)
}
