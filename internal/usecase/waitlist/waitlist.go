package waitlist

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	apdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/waitlist"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/realtime"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// Agenda é o recorte do repositório de agendamentos que a lista de espera consulta.
type Agenda interface {
	GetSalonByID(ctx context.Context, id uint) (*models.Salon, error)
	GetService(ctx context.Context, salonID, serviceID uint) (*models.Service, error)
	ListSalonRecords(ctx context.Context, salonID, professionalID uint, start, end time.Time) ([]models.Appointment, error)
}

type Service struct {
	entries domain.Repository
	agenda  Agenda
	audit   *audit.Dispatcher
	events  realtime.Publisher
	metrics *metrics.Metrics
	clock   timezone.Clock
}

func NewService(
	entries domain.Repository,
	agenda Agenda,
	dispatcher *audit.Dispatcher,
	events realtime.Publisher,
	m *metrics.Metrics,
	clock timezone.Clock,
) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		entries: entries,
		agenda:  agenda,
		audit:   dispatcher,
		events:  events,
		metrics: m,
		clock:   clock,
	}
}

// ======================================================
// JOIN (cliente)
// ======================================================

type JoinInput struct {
	SalonID        uint
	ClientID       uint
	ServiceID      uint
	ProfessionalID uint
	Date           string
	Notes          string
}

func (s *Service) Join(ctx context.Context, in JoinInput) (*models.WaitlistEntry, error) {
	salon, err := s.agenda.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, httperr.ErrBusiness("salon_not_found")
	}

	day, err := timezone.ParseDate(salon.Timezone, in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	now := s.clock().In(timezone.Location(salon.Timezone))
	dayStart, dayEnd := timezone.DayBounds(day)
	if !dayEnd.After(now) {
		return nil, httperr.ErrBusiness("date_in_past")
	}

	service, err := s.agenda.GetService(ctx, in.SalonID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	// ainda há vaga liberada que comporta o serviço: não faz sentido esperar
	records, err := s.agenda.ListSalonRecords(ctx, in.SalonID, in.ProfessionalID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	earliest := now.Add(time.Duration(salon.MinAdvanceMinutes) * time.Minute)
	duration := time.Duration(service.DurationMin) * time.Minute
	for _, slot := range openSlots(records, earliest) {
		if slot.EndTime.Sub(slot.StartTime) >= duration {
			return nil, httperr.ErrBusiness("slots_available")
		}
	}

	waiting, err := s.entries.HasWaiting(ctx, in.SalonID, in.ClientID, in.ServiceID, in.Date)
	if err != nil {
		return nil, err
	}
	if waiting {
		return nil, httperr.ErrBusiness("already_waitlisted")
	}

	entry := &models.WaitlistEntry{
		SalonID:     in.SalonID,
		ClientID:    in.ClientID,
		ServiceID:   in.ServiceID,
		DesiredDate: in.Date,
		Notes:       in.Notes,
		Status:      string(domain.StatusWaiting),
	}
	if in.ProfessionalID != 0 {
		pro := in.ProfessionalID
		entry.ProfessionalID = &pro
	}

	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.metrics.WaitlistJoined()
	s.changed(entry, nil, "waitlist_joined")

	return entry, nil
}

// openSlots agrupa por profissional antes de reconciliar.
func openSlots(records []models.Appointment, from time.Time) []models.Appointment {
	groups := map[uint][]models.Appointment{}
	for _, r := range records {
		groups[r.ProfessionalID] = append(groups[r.ProfessionalID], r)
	}

	var out []models.Appointment
	for _, g := range groups {
		out = append(out, apdomain.OpenSlots(g, from)...)
	}
	return out
}

// ======================================================
// STAFF
// ======================================================

func (s *Service) List(ctx context.Context, salonID uint, filter domain.ListFilter) ([]models.WaitlistEntry, error) {
	if filter.Status != "" {
		switch domain.Status(filter.Status) {
		case domain.StatusWaiting, domain.StatusContacted, domain.StatusBooked, domain.StatusDismissed:
		default:
			return nil, httperr.ErrBusiness("invalid_status")
		}
	}
	return s.entries.List(ctx, salonID, filter)
}

type UpdateStatusInput struct {
	SalonID uint
	EntryID uint
	ActorID uint
	Status  string
}

func (s *Service) UpdateStatus(ctx context.Context, in UpdateStatusInput) (*models.WaitlistEntry, error) {
	entry, err := s.entries.Get(ctx, in.SalonID, in.EntryID)
	if err != nil {
		return nil, httperr.ErrBusiness("waitlist_entry_not_found")
	}

	if err := domain.Apply(entry, domain.Status(in.Status), s.clock()); err != nil {
		return nil, err
	}

	if err := s.entries.Update(ctx, entry); err != nil {
		return nil, err
	}

	s.changed(entry, &in.ActorID, "waitlist_"+in.Status)

	return entry, nil
}

func (s *Service) changed(entry *models.WaitlistEntry, actorID *uint, action string) {
	id := entry.ID
	if s.audit != nil {
		s.audit.Dispatch(audit.Event{
			SalonID:  entry.SalonID,
			UserID:   actorID,
			Action:   action,
			Entity:   "waitlist_entry",
			EntityID: &id,
		})
	}
	if s.events != nil {
		s.events.Publish(realtime.Event{Type: action, SalonID: entry.SalonID, Payload: entry})
	}
	s.metrics.Published(action)
}
