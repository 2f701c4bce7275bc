package appointment

import (
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/realtime"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// Deps agrupa a infraestrutura compartilhada pelos casos de uso da agenda.
type Deps struct {
	Repo    domain.Repository
	Audit   *audit.Dispatcher
	Events  realtime.Publisher
	Metrics *metrics.Metrics
	Log     *zap.Logger
	Clock   timezone.Clock
}

func (d Deps) now(tz string) time.Time {
	clock := d.Clock
	if clock == nil {
		clock = time.Now
	}
	return clock().In(timezone.Location(tz))
}

func (d Deps) logger() *zap.Logger {
	if d.Log == nil {
		return zap.NewNop()
	}
	return d.Log
}

func (d Deps) record(ev audit.Event) {
	if d.Audit != nil {
		d.Audit.Dispatch(ev)
	}
}

func (d Deps) publish(ap *models.Appointment, eventType string) {
	if d.Events != nil {
		d.Events.Publish(realtime.Event{
			Type:    eventType,
			SalonID: ap.SalonID,
			Payload: ap,
		})
	}
	d.Metrics.Published(eventType)
}

func auditEvent(ap *models.Appointment, actorID *uint, action string) audit.Event {
	id := ap.ID
	return audit.Event{
		SalonID:  ap.SalonID,
		UserID:   actorID,
		Action:   action,
		Entity:   "appointment",
		EntityID: &id,
	}
}

// changed concentra auditoria, evento em tempo real e métrica de uma transição.
func (d Deps) changed(ap *models.Appointment, actorID *uint, action string, meta any) {
	ev := auditEvent(ap, actorID, action)
	ev.Metadata = meta
	d.record(ev)
	d.publish(ap, action)
	d.Metrics.Transition(ap.Status)
}

func minAdvance(salon *models.Salon) time.Duration {
	minutes := salon.MinAdvanceMinutes
	if minutes < 0 {
		minutes = 0
	}
	return time.Duration(minutes) * time.Minute
}
