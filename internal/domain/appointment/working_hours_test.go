package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func mondayHours() *models.WorkingHours {
	return &models.WorkingHours{
		Weekday:    1,
		StartTime:  "09:00",
		EndTime:    "18:00",
		LunchStart: "12:00",
		LunchEnd:   "13:00",
		Active:     true,
	}
}

func TestIsWithinWorkingHours(t *testing.T) {
	wh := mondayHours()

	inside0, inside1 := window(9, 0, 60)
	assert.True(t, IsWithinWorkingHours(wh, inside0, inside1))

	early0, early1 := window(8, 30, 60)
	assert.False(t, IsWithinWorkingHours(wh, early0, early1))

	late0, late1 := window(17, 30, 60)
	assert.False(t, IsWithinWorkingHours(wh, late0, late1))

	lunch0, lunch1 := window(11, 30, 60)
	assert.False(t, IsWithinWorkingHours(wh, lunch0, lunch1))

	after0, after1 := window(13, 0, 60)
	assert.True(t, IsWithinWorkingHours(wh, after0, after1))
}

func TestWindowForRejectsBadConfig(t *testing.T) {
	date := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)

	_, ok := WindowFor(nil, date)
	assert.False(t, ok)

	inactive := mondayHours()
	inactive.Active = false
	_, ok = WindowFor(inactive, date)
	assert.False(t, ok)

	garbage := mondayHours()
	garbage.EndTime = "6pm"
	_, ok = WindowFor(garbage, date)
	assert.False(t, ok)

	inverted := mondayHours()
	inverted.StartTime, inverted.EndTime = "18:00", "09:00"
	_, ok = WindowFor(inverted, date)
	assert.False(t, ok)

	noLunch := mondayHours()
	noLunch.LunchEnd = ""
	w, ok := WindowFor(noLunch, date)
	assert.True(t, ok)
	assert.False(t, w.HasLunch)
}
