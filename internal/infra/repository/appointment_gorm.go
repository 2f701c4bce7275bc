package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func (r *AppointmentGormRepository) Transaction(
	ctx context.Context,
	fn func(repo domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (r *AppointmentGormRepository) GetSalonByID(
	ctx context.Context,
	id uint,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon, id).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

func (r *AppointmentGormRepository) GetSalonBySlug(
	ctx context.Context,
	slug string,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&salon).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

// --------------------------------------------------
// Professional / Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetProfessional(
	ctx context.Context,
	salonID uint,
	professionalID uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", professionalID, salonID).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// DefaultProfessional é o primeiro usuário do salão (o dono, no cadastro).
func (r *AppointmentGormRepository) DefaultProfessional(
	ctx context.Context,
	salonID uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("salon_id = ?", salonID).
		Order("id ASC").
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	salonID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", serviceID, salonID).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	salonID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND phone = ?", salonID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	client = models.Client{
		SalonID:        salonID,
		Name:           name,
		Phone:          phone,
		Email:          email,
		MarketingOptIn: true,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		// cadastro concorrente com o mesmo telefone
		if httperr.IsUniqueViolation(err) {
			if err := r.db.WithContext(ctx).
				Where("salon_id = ? AND phone = ?", salonID, phone).
				First(&client).Error; err == nil {
				return &client, nil
			}
		}
		return nil, err
	}

	return &client, nil
}

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	salonID uint,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", clientID, salonID).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error
}

// AssertNoTimeConflict trava as linhas conflitantes durante a transação.
func (r *AppointmentGormRepository) AssertNoTimeConflict(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
	skipID uint,
) error {

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"professional_id = ? AND status IN ? AND start_time < ? AND end_time > ? AND id <> ?",
			professionalID,
			domain.ActiveStatuses(),
			end,
			start,
			skipID,
		).
		Pluck("id", &ids).Error; err != nil {
		return err
	}

	if len(ids) > 0 {
		return httperr.ErrBusiness("time_conflict")
	}

	return nil
}

// ClaimSlot só grava se o registro ainda estiver liberado.
func (r *AppointmentGormRepository) ClaimSlot(
	ctx context.Context,
	ap *models.Appointment,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", ap.ID, string(domain.StatusLiberated)).
		Updates(map[string]any{
			"client_id":         ap.ClientID,
			"service_id":        ap.ServiceID,
			"end_time":          ap.EndTime,
			"status":            ap.Status,
			"source":            ap.Source,
			"from_liberation":   ap.FromLiberation,
			"notes":             ap.Notes,
			"deposit_status":    ap.DepositStatus,
			"deposit_cents":     ap.DepositCents,
			"deposit_reference": ap.DepositReference,
			"updated_at":        time.Now(),
		})
	if res.Error != nil {
		if httperr.IsExclusionConflict(res.Error) {
			return false, nil
		}
		return false, res.Error
	}

	return res.RowsAffected == 1, nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	salonID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("id = ? AND salon_id = ?", appointmentID, salonID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) LockAppointment(
	ctx context.Context,
	salonID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND salon_id = ?", appointmentID, salonID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	// só a linha do agendamento fica travada
	if ap.ClientID != nil {
		var client models.Client
		if err := r.db.WithContext(ctx).First(&client, *ap.ClientID).Error; err == nil {
			ap.Client = &client
		}
	}
	if ap.ServiceID != nil {
		var service models.Service
		if err := r.db.WithContext(ctx).First(&service, *ap.ServiceID).Error; err == nil {
			ap.Service = &service
		}
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentByDepositReference(
	ctx context.Context,
	reference string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("deposit_reference = ?", reference).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error
}

func (r *AppointmentGormRepository) SetDepositCheckout(
	ctx context.Context,
	appointmentID uint,
	url string,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", appointmentID, string(domain.StatusPending)).
		Updates(map[string]any{
			"deposit_checkout": url,
			"updated_at":       time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected == 1, nil
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Delete(&models.Appointment{}, ap.ID).Error
}

// --------------------------------------------------
// Finance
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateFinancialEntry(
	ctx context.Context,
	e *models.FinancialEntry,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) GetWorkingHours(
	ctx context.Context,
	professionalID uint,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("professional_id = ? AND weekday = ?", professionalID, weekday).
		First(&wh).Error; err != nil {
		return nil, err
	}

	return &wh, nil
}

func (r *AppointmentGormRepository) ListOverlapping(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"professional_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
			professionalID,
			string(domain.StatusCancelled),
			end,
			start,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListSalonRecords(
	ctx context.Context,
	salonID uint,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where(
			"salon_id = ? AND status <> ? AND start_time >= ? AND start_time < ?",
			salonID,
			string(domain.StatusCancelled),
			start,
			end,
		)

	if professionalID != 0 {
		q = q.Where("professional_id = ?", professionalID)
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where(
			"professional_id = ? AND status IN ? AND start_time >= ? AND start_time < ?",
			professionalID,
			domain.ActiveStatuses(),
			start,
			end,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListClientAppointments(
	ctx context.Context,
	salonID uint,
	clientID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where("salon_id = ? AND client_id = ?", salonID, clientID).
		Order("start_time DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
