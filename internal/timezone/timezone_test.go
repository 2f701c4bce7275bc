package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("").String())
	assert.Equal(t, DefaultTimezone, Location("Mars/Olympus").String())
	assert.Equal(t, "Europe/Lisbon", Location("Europe/Lisbon").String())
}

func TestParseDateTimeUsesSalonZone(t *testing.T) {
	got, err := ParseDateTime("America/Sao_Paulo", "2026-03-10", "14:30")
	require.NoError(t, err)

	assert.Equal(t, 14, got.Hour())
	assert.Equal(t, "America/Sao_Paulo", got.Location().String())

	_, err = ParseDateTime("America/Sao_Paulo", "2026-03-10", "25:00")
	assert.Error(t, err)
}

func TestDayBounds(t *testing.T) {
	loc := Location("America/Sao_Paulo")
	start, end := DayBounds(time.Date(2026, 3, 10, 15, 4, 0, 0, loc))

	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, loc), end)
}
