package appointment

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/finance"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/payment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

var errNotFound = errors.New("record not found")

// fakeRepo guarda a agenda em memória. Transaction serializa as chamadas
// e desfaz alterações de agendamentos e lançamentos quando fn falha.
type fakeRepo struct {
	txMu sync.Mutex
	mu   sync.Mutex

	salons       map[uint]*models.Salon
	pros         map[uint]*models.User
	services     map[uint]*models.Service
	clients      map[uint]*models.Client
	hours        map[uint]map[int]*models.WorkingHours
	appointments map[uint]models.Appointment
	ledger       fakeLedger
	nextID       uint
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	r := &fakeRepo{
		salons:       map[uint]*models.Salon{},
		pros:         map[uint]*models.User{},
		services:     map[uint]*models.Service{},
		clients:      map[uint]*models.Client{},
		hours:        map[uint]map[int]*models.WorkingHours{},
		appointments: map[uint]models.Appointment{},
		nextID:       100,
	}

	r.salons[1] = &models.Salon{
		ID:                1,
		Name:              "Studio Bela",
		Slug:              "studio-bela",
		Timezone:          "UTC",
		MinAdvanceMinutes: 120,
		DepositPercent:    30,
	}
	r.pros[10] = &models.User{ID: 10, SalonID: 1, Name: "Ana"}
	r.services[20] = &models.Service{ID: 20, SalonID: 1, Name: "Corte", DurationMin: 60, PriceCents: 10000, Active: true}
	r.services[21] = &models.Service{ID: 21, SalonID: 1, Name: "Mechas", DurationMin: 180, PriceCents: 40000, Active: true}
	r.clients[30] = &models.Client{ID: 30, SalonID: 1, Name: "Carla", Phone: "11999990000"}
	r.clients[31] = &models.Client{ID: 31, SalonID: 1, Name: "Bia", Phone: "11988880000"}

	r.hours[10] = map[int]*models.WorkingHours{}
	for wd := 1; wd <= 5; wd++ {
		r.hours[10][wd] = &models.WorkingHours{
			ProfessionalID: 10,
			Weekday:        wd,
			StartTime:      "09:00",
			EndTime:        "18:00",
			LunchStart:     "12:00",
			LunchEnd:       "13:00",
			Active:         true,
		}
	}

	return r
}

func (r *fakeRepo) Transaction(ctx context.Context, fn func(repo domain.Repository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	r.mu.Lock()
	snapshot := make(map[uint]models.Appointment, len(r.appointments))
	for k, v := range r.appointments {
		snapshot[k] = v
	}
	entries := append([]models.FinancialEntry(nil), r.ledger.entries...)
	r.mu.Unlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		r.appointments = snapshot
		r.ledger.entries = entries
		r.mu.Unlock()
		return err
	}
	return nil
}

func (r *fakeRepo) GetSalonByID(_ context.Context, id uint) (*models.Salon, error) {
	if s, ok := r.salons[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, errNotFound
}

func (r *fakeRepo) GetSalonBySlug(_ context.Context, slug string) (*models.Salon, error) {
	for _, s := range r.salons {
		if s.Slug == slug {
			cp := *s
			return &cp, nil
		}
	}
	return nil, errNotFound
}

func (r *fakeRepo) GetProfessional(_ context.Context, salonID, id uint) (*models.User, error) {
	if p, ok := r.pros[id]; ok && p.SalonID == salonID {
		return p, nil
	}
	return nil, errNotFound
}

func (r *fakeRepo) DefaultProfessional(_ context.Context, salonID uint) (*models.User, error) {
	var best *models.User
	for _, p := range r.pros {
		if p.SalonID == salonID && (best == nil || p.ID < best.ID) {
			best = p
		}
	}
	if best == nil {
		return nil, errNotFound
	}
	return best, nil
}

func (r *fakeRepo) GetService(_ context.Context, salonID, id uint) (*models.Service, error) {
	if s, ok := r.services[id]; ok && s.SalonID == salonID {
		return s, nil
	}
	return nil, errNotFound
}

func (r *fakeRepo) GetOrCreateClient(_ context.Context, salonID uint, name, phone, email string) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.clients {
		if c.SalonID == salonID && c.Phone == phone {
			return c, nil
		}
	}
	r.nextID++
	c := &models.Client{ID: r.nextID, SalonID: salonID, Name: name, Phone: phone, Email: email}
	r.clients[c.ID] = c
	return c, nil
}

func (r *fakeRepo) GetClient(_ context.Context, salonID, id uint) (*models.Client, error) {
	if c, ok := r.clients[id]; ok && c.SalonID == salonID {
		return c, nil
	}
	return nil, errNotFound
}

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	ap.ID = r.nextID
	r.appointments[ap.ID] = r.strip(*ap)
	return nil
}

func (r *fakeRepo) AssertNoTimeConflict(_ context.Context, proID uint, start, end time.Time, skipID uint) error {
	if domain.HasActiveOverlap(r.all(proID), start, end, skipID) {
		return httperr.ErrBusiness("time_conflict")
	}
	return nil
}

func (r *fakeRepo) ClaimSlot(_ context.Context, ap *models.Appointment) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.appointments[ap.ID]
	if !ok || current.Status != string(domain.StatusLiberated) {
		return false, nil
	}
	r.appointments[ap.ID] = r.strip(*ap)
	return true, nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, salonID, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ap, ok := r.appointments[id]
	if !ok || ap.SalonID != salonID {
		return nil, errNotFound
	}
	return r.preload(ap), nil
}

func (r *fakeRepo) LockAppointment(ctx context.Context, salonID, id uint) (*models.Appointment, error) {
	return r.GetAppointment(ctx, salonID, id)
}

func (r *fakeRepo) GetAppointmentByDepositReference(_ context.Context, ref string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ap := range r.appointments {
		if ap.DepositReference == ref {
			return r.preload(ap), nil
		}
	}
	return nil, errNotFound
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appointments[ap.ID]; !ok {
		return errNotFound
	}
	r.appointments[ap.ID] = r.strip(*ap)
	return nil
}

func (r *fakeRepo) SetDepositCheckout(_ context.Context, id uint, url string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.appointments[id]
	if !ok || current.Status != string(domain.StatusPending) {
		return false, nil
	}
	current.DepositCheckout = url
	r.appointments[id] = current
	return true, nil
}

func (r *fakeRepo) CreateFinancialEntry(ctx context.Context, e *models.FinancialEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ledger.Create(ctx, e)
}

func (r *fakeRepo) DeleteAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.appointments, ap.ID)
	return nil
}

func (r *fakeRepo) GetWorkingHours(_ context.Context, proID uint, weekday int) (*models.WorkingHours, error) {
	if wh, ok := r.hours[proID][weekday]; ok {
		return wh, nil
	}
	return nil, errNotFound
}

func (r *fakeRepo) ListOverlapping(_ context.Context, proID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.all(proID) {
		if domain.Overlaps(ap.StartTime, ap.EndTime, start, end) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListSalonRecords(_ context.Context, salonID, proID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.all(proID) {
		if ap.SalonID == salonID && !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListAppointmentsForPeriod(ctx context.Context, proID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.all(proID) {
		if domain.IsActive(domain.Status(ap.Status)) && !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListClientAppointments(_ context.Context, salonID, clientID uint) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.SalonID == salonID && ap.ClientID != nil && *ap.ClientID == clientID {
			out = append(out, *r.preload(ap))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}

// all devolve registros não cancelados do profissional (0 = todos), ordenados.
func (r *fakeRepo) all(proID uint) []models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if proID != 0 && ap.ProfessionalID != proID {
			continue
		}
		if ap.Status == string(domain.StatusCancelled) {
			continue
		}
		out = append(out, *r.preload(ap))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out
}

func (r *fakeRepo) strip(ap models.Appointment) models.Appointment {
	ap.Client = nil
	ap.Service = nil
	return ap
}

func (r *fakeRepo) preload(ap models.Appointment) *models.Appointment {
	if ap.ClientID != nil {
		ap.Client = r.clients[*ap.ClientID]
	}
	if ap.ServiceID != nil {
		ap.Service = r.services[*ap.ServiceID]
	}
	return &ap
}

func (r *fakeRepo) seed(ap models.Appointment) *models.Appointment {
	if ap.SalonID == 0 {
		ap.SalonID = 1
	}
	if ap.ProfessionalID == 0 {
		ap.ProfessionalID = 10
	}
	_ = r.CreateAppointment(context.Background(), &ap)
	return &ap
}

func (r *fakeRepo) get(id uint) models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.appointments[id]
}

func (r *fakeRepo) count(status domain.Status) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, ap := range r.appointments {
		if ap.Status == string(status) {
			n++
		}
	}
	return n
}

// ======================================================
// Collaborators
// ======================================================

type fakeLocker struct {
	mu   sync.Mutex
	held map[string]bool
	deny bool
}

func (l *fakeLocker) Acquire(_ context.Context, key string, _ time.Duration) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.deny || l.held[key] {
		return nil, false, nil
	}
	if l.held == nil {
		l.held = map[string]bool{}
	}
	l.held[key] = true
	return func() {
		l.mu.Lock()
		delete(l.held, key)
		l.mu.Unlock()
	}, true, nil
}

type fakeGateway struct {
	inputs []payment.CheckoutInput
	fail   bool
	info   map[string]payment.Info

	// during roda antes da resposta, simulando uma ação concorrente
	during func()
}

func (g *fakeGateway) CreateCheckout(_ context.Context, in payment.CheckoutInput) (payment.Checkout, error) {
	if g.during != nil {
		g.during()
	}
	if g.fail {
		return payment.Checkout{}, errors.New("gateway down")
	}
	g.inputs = append(g.inputs, in)
	return payment.Checkout{ID: "pref-1", URL: "https://pay.example/" + in.Reference}, nil
}

func (g *fakeGateway) PaymentInfo(_ context.Context, id string) (payment.Info, error) {
	info, ok := g.info[id]
	if !ok {
		return payment.Info{}, errors.New("payment not found")
	}
	return info, nil
}

type fakeLedger struct {
	entries []models.FinancialEntry
	fail    bool
}

func (l *fakeLedger) Create(_ context.Context, e *models.FinancialEntry) error {
	if l.fail {
		return errors.New("ledger unavailable")
	}
	l.entries = append(l.entries, *e)
	return nil
}

func (l *fakeLedger) List(_ context.Context, salonID uint, f finance.ListFilter) ([]models.FinancialEntry, error) {
	var out []models.FinancialEntry
	for _, e := range l.entries {
		if e.SalonID != salonID {
			continue
		}
		if f.ClientID != 0 && (e.ClientID == nil || *e.ClientID != f.ClientID) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

type fakeWaitlist struct {
	entries []models.WaitlistEntry
}

func (w *fakeWaitlist) ListWaitingForDate(_ context.Context, salonID uint, date string) ([]models.WaitlistEntry, error) {
	var out []models.WaitlistEntry
	for _, e := range w.entries {
		if e.SalonID == salonID && e.DesiredDate == date && e.Status == "waiting" {
			out = append(out, e)
		}
	}
	return out, nil
}
