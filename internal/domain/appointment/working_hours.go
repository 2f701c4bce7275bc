package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// DayWindow é o expediente de um dia já materializado em horários absolutos.
type DayWindow struct {
	Start      time.Time
	End        time.Time
	LunchStart time.Time
	LunchEnd   time.Time
	HasLunch   bool
}

// WindowFor converte a configuração HH:MM para o dia de date.
// ok=false quando o dia não tem expediente válido.
func WindowFor(wh *models.WorkingHours, date time.Time) (DayWindow, bool) {
	if wh == nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return DayWindow{}, false
	}

	loc := date.Location()
	parseHM := func(hm string) (time.Time, bool) {
		t, err := time.Parse("15:04", hm)
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(
			date.Year(), date.Month(), date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		), true
	}

	var w DayWindow
	var ok bool
	if w.Start, ok = parseHM(wh.StartTime); !ok {
		return DayWindow{}, false
	}
	if w.End, ok = parseHM(wh.EndTime); !ok || !w.End.After(w.Start) {
		return DayWindow{}, false
	}

	if wh.LunchStart != "" && wh.LunchEnd != "" {
		ls, ok1 := parseHM(wh.LunchStart)
		le, ok2 := parseHM(wh.LunchEnd)
		if ok1 && ok2 && le.After(ls) {
			w.LunchStart, w.LunchEnd, w.HasLunch = ls, le, true
		}
	}

	return w, true
}

// IsWithinWorkingHours valida se um horário está dentro do expediente
// incluindo pausa de almoço (regra de domínio)
func IsWithinWorkingHours(wh *models.WorkingHours, start, end time.Time) bool {
	w, ok := WindowFor(wh, start)
	if !ok {
		return false
	}

	if start.Before(w.Start) || end.After(w.End) {
		return false
	}

	if w.HasLunch && Overlaps(start, end, w.LunchStart, w.LunchEnd) {
		return false
	}

	return true
}
