package validators

import "time"

// IsClockValid valida horários no formato HH:MM.
func IsClockValid(hm string) bool {
	_, err := time.Parse("15:04", hm)
	return err == nil
}

// IsClockRange exige start < end, ambos HH:MM.
func IsClockRange(start, end string) bool {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return false
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return false
	}
	return s.Before(e)
}
