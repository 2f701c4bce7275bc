package campaign

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/campaign"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/media"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

const maxImageBytes = 8 << 20

// ImageStore publica a arte da campanha e devolve a URL pública.
type ImageStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}

type Service struct {
	repo   domain.Repository
	images ImageStore
	audit  *audit.Dispatcher
	clock  timezone.Clock
}

func NewService(repo domain.Repository, images ImageStore, dispatcher *audit.Dispatcher, clock timezone.Clock) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{repo: repo, images: images, audit: dispatcher, clock: clock}
}

// ======================================================
// CREATE
// ======================================================

type CreateInput struct {
	Salon   *models.Salon
	ActorID uint

	Name         string
	Template     string
	Audience     string
	InactiveDays int
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Campaign, error) {
	c := &models.Campaign{
		SalonID:      in.Salon.ID,
		Name:         in.Name,
		Template:     in.Template,
		Audience:     in.Audience,
		InactiveDays: in.InactiveDays,
		CreatedBy:    in.ActorID,
	}

	if err := domain.Validate(c); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	if _, err := s.Rebuild(ctx, in.Salon, c); err != nil {
		return nil, err
	}

	s.record(c, in.ActorID, "campaign_created")
	return c, nil
}

// Rebuild recalcula o público e substitui os destinatários da campanha.
func (s *Service) Rebuild(ctx context.Context, salon *models.Salon, c *models.Campaign) ([]models.CampaignRecipient, error) {
	clients, err := s.repo.ListClients(ctx, salon.ID)
	if err != nil {
		return nil, err
	}

	visits, err := s.repo.LastVisits(ctx, salon.ID)
	if err != nil {
		return nil, err
	}

	now := s.clock().In(timezone.Location(salon.Timezone))
	audience := domain.SelectAudience(clients, visits, c, now)
	recipients := domain.BuildRecipients(c, audience, salon.Name)

	if err := s.repo.ReplaceRecipients(ctx, c.ID, recipients); err != nil {
		return nil, err
	}
	c.Recipients = recipients
	return recipients, nil
}

// ======================================================
// QUERIES / SENT
// ======================================================

func (s *Service) List(ctx context.Context, salonID uint) ([]models.Campaign, error) {
	return s.repo.List(ctx, salonID)
}

func (s *Service) Recipients(ctx context.Context, salonID, campaignID uint) ([]models.CampaignRecipient, error) {
	if _, err := s.repo.Get(ctx, salonID, campaignID); err != nil {
		return nil, httperr.ErrBusiness("campaign_not_found")
	}
	return s.repo.ListRecipients(ctx, campaignID)
}

func (s *Service) MarkSent(ctx context.Context, salonID, campaignID, recipientID uint) error {
	if _, err := s.repo.Get(ctx, salonID, campaignID); err != nil {
		return httperr.ErrBusiness("campaign_not_found")
	}
	if err := s.repo.MarkRecipientSent(ctx, campaignID, recipientID, s.clock()); err != nil {
		return httperr.ErrBusiness("recipient_not_found")
	}
	return nil
}

// ======================================================
// IMAGE
// ======================================================

type UploadImageInput struct {
	Salon      *models.Salon
	CampaignID uint
	ActorID    uint
	Data       []byte
}

// UploadImage converte a arte para WebP, publica no storage e reconstrói
// as mensagens com o link da imagem.
func (s *Service) UploadImage(ctx context.Context, in UploadImageInput) (*models.Campaign, error) {
	if s.images == nil {
		return nil, httperr.ErrBusiness("storage_disabled")
	}
	if len(in.Data) == 0 || len(in.Data) > maxImageBytes {
		return nil, httperr.ErrBusiness("invalid_image")
	}

	c, err := s.repo.Get(ctx, in.Salon.ID, in.CampaignID)
	if err != nil {
		return nil, httperr.ErrBusiness("campaign_not_found")
	}

	webp, err := media.ToWebP(in.Data)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_image")
	}

	key := fmt.Sprintf("campaigns/%d/%d-%s.webp", in.Salon.ID, c.ID, uuid.NewString())
	url, err := s.images.Put(ctx, key, "image/webp", webp)
	if err != nil {
		return nil, err
	}

	c.ImageURL = url
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	if _, err := s.Rebuild(ctx, in.Salon, c); err != nil {
		return nil, err
	}

	s.record(c, in.ActorID, "campaign_image_uploaded")
	return c, nil
}

func (s *Service) record(c *models.Campaign, actorID uint, action string) {
	if s.audit == nil {
		return
	}
	id := c.ID
	s.audit.Dispatch(audit.Event{
		SalonID:  c.SalonID,
		UserID:   &actorID,
		Action:   action,
		Entity:   "campaign",
		EntityID: &id,
	})
}
