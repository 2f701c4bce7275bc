package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/finance"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type FinanceGormRepository struct {
	db *gorm.DB
}

func NewFinanceGormRepository(db *gorm.DB) *FinanceGormRepository {
	return &FinanceGormRepository{db: db}
}

func (r *FinanceGormRepository) Create(ctx context.Context, e *models.FinancialEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *FinanceGormRepository) Get(ctx context.Context, salonID, id uint) (*models.FinancialEntry, error) {
	var e models.FinancialEntry
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *FinanceGormRepository) Update(ctx context.Context, e *models.FinancialEntry) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *FinanceGormRepository) List(
	ctx context.Context,
	salonID uint,
	filter domain.ListFilter,
) ([]models.FinancialEntry, error) {

	q := r.db.WithContext(ctx).Where("salon_id = ?", salonID)

	if filter.Kind != "" {
		q = q.Where("kind = ?", filter.Kind)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.ClientID != 0 {
		q = q.Where("client_id = ?", filter.ClientID)
	}
	if !filter.From.IsZero() {
		q = q.Where("due_date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		q = q.Where("due_date < ?", filter.To)
	}

	var entries []models.FinancialEntry
	if err := q.Order("due_date ASC, id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

var _ domain.Repository = (*FinanceGormRepository)(nil)
