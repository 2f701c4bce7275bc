package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/waitlist"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type WaitlistGormRepository struct {
	db *gorm.DB
}

func NewWaitlistGormRepository(db *gorm.DB) *WaitlistGormRepository {
	return &WaitlistGormRepository{db: db}
}

func (r *WaitlistGormRepository) Create(ctx context.Context, entry *models.WaitlistEntry) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(entry).Error
}

func (r *WaitlistGormRepository) Get(ctx context.Context, salonID, id uint) (*models.WaitlistEntry, error) {
	var entry models.WaitlistEntry
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *WaitlistGormRepository) Update(ctx context.Context, entry *models.WaitlistEntry) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(entry).Error
}

func (r *WaitlistGormRepository) List(
	ctx context.Context,
	salonID uint,
	filter domain.ListFilter,
) ([]models.WaitlistEntry, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("salon_id = ?", salonID)

	if filter.Date != "" {
		q = q.Where("desired_date = ?", filter.Date)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var entries []models.WaitlistEntry
	if err := q.Order("created_at ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *WaitlistGormRepository) HasWaiting(
	ctx context.Context,
	salonID, clientID, serviceID uint,
	date string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.WaitlistEntry{}).
		Where(
			"salon_id = ? AND client_id = ? AND service_id = ? AND desired_date = ? AND status = ?",
			salonID, clientID, serviceID, date, string(domain.StatusWaiting),
		).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *WaitlistGormRepository) ListWaitingForDate(
	ctx context.Context,
	salonID uint,
	date string,
) ([]models.WaitlistEntry, error) {
	return r.List(ctx, salonID, domain.ListFilter{Date: date, Status: string(domain.StatusWaiting)})
}

var _ domain.Repository = (*WaitlistGormRepository)(nil)
