package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/campaign"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type CampaignGormRepository struct {
	db *gorm.DB
}

func NewCampaignGormRepository(db *gorm.DB) *CampaignGormRepository {
	return &CampaignGormRepository{db: db}
}

func (r *CampaignGormRepository) Create(ctx context.Context, c *models.Campaign) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error
}

func (r *CampaignGormRepository) Get(ctx context.Context, salonID, id uint) (*models.Campaign, error) {
	var c models.Campaign
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CampaignGormRepository) Update(ctx context.Context, c *models.Campaign) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error
}

func (r *CampaignGormRepository) List(ctx context.Context, salonID uint) ([]models.Campaign, error) {
	var out []models.Campaign
	if err := r.db.WithContext(ctx).
		Where("salon_id = ?", salonID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CampaignGormRepository) ListClients(ctx context.Context, salonID uint) ([]models.Client, error) {
	var out []models.Client
	if err := r.db.WithContext(ctx).
		Where("salon_id = ?", salonID).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// LastVisits devolve o último atendimento concluído por cliente.
func (r *CampaignGormRepository) LastVisits(ctx context.Context, salonID uint) (map[uint]time.Time, error) {
	var rows []struct {
		ClientID  uint
		LastVisit time.Time
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("client_id, MAX(start_time) AS last_visit").
		Where("salon_id = ? AND status = ? AND client_id IS NOT NULL", salonID, string(apdomain.StatusCompleted)).
		Group("client_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[uint]time.Time, len(rows))
	for _, row := range rows {
		out[row.ClientID] = row.LastVisit
	}
	return out, nil
}

func (r *CampaignGormRepository) ReplaceRecipients(
	ctx context.Context,
	campaignID uint,
	recipients []models.CampaignRecipient,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("campaign_id = ?", campaignID).
			Delete(&models.CampaignRecipient{}).Error; err != nil {
			return err
		}
		if len(recipients) == 0 {
			return nil
		}
		return tx.CreateInBatches(recipients, 200).Error
	})
}

func (r *CampaignGormRepository) ListRecipients(ctx context.Context, campaignID uint) ([]models.CampaignRecipient, error) {
	var out []models.CampaignRecipient
	if err := r.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CampaignGormRepository) MarkRecipientSent(ctx context.Context, campaignID, recipientID uint, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&models.CampaignRecipient{}).
		Where("id = ? AND campaign_id = ?", recipientID, campaignID).
		Update("sent_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

var _ domain.Repository = (*CampaignGormRepository)(nil)
